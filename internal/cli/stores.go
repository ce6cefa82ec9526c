package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookmarks-export/internal/applebooks"
	"github.com/mrlokans/bookmarks-export/internal/store"
)

func (a *app) newStoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stores",
		Short: "Show which Apple Books stores and SQLite binding would be used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if locator, ok := a.locator.(applebooks.Locator); ok {
				if dirs, err := locator.Dirs(); err == nil {
					fmt.Fprintf(out, "🔍 Annotation directory: %s\n", dirs.Annotations)
					fmt.Fprintf(out, "🔍 Library directory: %s\n", dirs.Library)
				}
			}

			opener, err := store.Select(a.cfg.Driver)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "🗄  SQLite binding: %s (requested %s)\n", opener.Name(), a.cfg.Driver)

			paths, err := a.locator.Find(a.stores())
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "📁 Annotation DB: %s\n", paths.Annotations)
			fmt.Fprintf(out, "📁 Book DB: %s\n", paths.Library)
			return nil
		},
	}
}
