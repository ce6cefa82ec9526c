package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookmarks-export/internal/entities"
)

func (a *app) newListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books that have matching annotations",
		Long: `List books with annotations, honouring the type and color filters.

Examples:
  bookmarks-export list
  bookmarks-export list --notes=true --highlights=false --bookmarks=false
  bookmarks-export list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := a.filter()
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}

			books, _, err := svc.Collect(cmd.Context(), a.stores(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if books == nil {
					books = []entities.Book{}
				}
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(books)
			}

			if len(books) == 0 {
				fmt.Fprintln(out, "ℹ️  No books with matching annotations found in Apple Books")
				return nil
			}

			printBooks(out, books)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print books and annotations as JSON")

	return cmd
}

// printBooks writes one numbered line per book with per-kind counts.
func printBooks(out io.Writer, books []entities.Book) {
	total := 0
	for i, book := range books {
		counts := book.CountByKind()
		var parts []string
		for _, kind := range entities.AnnotationKinds {
			if counts[kind] > 0 {
				parts = append(parts, fmt.Sprintf("%d %ss", counts[kind], kind))
			}
		}
		fmt.Fprintf(out, "%d. \"%s\" by %s (%s)\n", i+1, book.DisplayTitle(), book.DisplayAuthor(), strings.Join(parts, ", "))
		total += len(book.Annotations)
	}
	fmt.Fprintf(out, "\nTotal: %d book(s), %d annotation(s)\n", len(books), total)
}
