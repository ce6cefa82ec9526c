package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/bookmarks-export/internal/config"
	"github.com/mrlokans/bookmarks-export/internal/entities"
	"github.com/mrlokans/bookmarks-export/internal/services"
)

func (a *app) newExportCmd() *cobra.Command {
	var dryRun, verbose bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export annotations to a file or directory",
		Long: `Export Apple Books annotations.

Formats:
  html      single interactive page with kind and color toggles (default)
  markdown  one Obsidian-compatible note per book
  json      one document with every book
  csv       one row per annotation

Examples:
  bookmarks-export export
  bookmarks-export export --format markdown --output ~/Obsidian/Highlights
  bookmarks-export export --bookmarks=false --colors yellow,pink
  bookmarks-export export --annotations-db ./AEAnnotation.sqlite --library-db ./BKLibrary.sqlite
  bookmarks-export export --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "📚 Apple Books Export")
			fmt.Fprintln(out, "=====================")
			if dryRun {
				fmt.Fprintln(out, "🔍 DRY RUN MODE - No files will be written")
			}

			req, err := a.request()
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}

			outputDir, err := filepath.Abs(req.OutputDir)
			if err != nil {
				return fmt.Errorf("failed to get absolute path for output: %w", err)
			}
			req.OutputDir = outputDir

			fmt.Fprintln(out, "\n📖 Reading annotations from Apple Books...")

			var result services.ExportResult
			if dryRun {
				var books []entities.Book
				books, result, err = svc.Collect(cmd.Context(), req.Stores, req.Filter)
				if err == nil && len(books) == 0 {
					err = services.ErrNoAnnotations
				}
				if err == nil && verbose {
					printBooks(out, books)
				}
			} else {
				result, err = svc.Run(cmd.Context(), req)
			}

			if result.Stores.Complete() {
				fmt.Fprintf(out, "📁 Annotation DB: %s\n", result.Stores.Annotations)
				fmt.Fprintf(out, "📁 Book DB: %s\n", result.Stores.Library)
			}

			switch {
			case errors.Is(err, services.ErrNoAnnotations):
				fmt.Fprintf(out, "📚 Found %d books with %d annotations\n", result.BooksFound, result.AnnotationsFound)
				fmt.Fprintln(out, "ℹ️  No annotations match the current filter, nothing written")
				return nil
			case err != nil:
				return err
			}

			fmt.Fprintf(out, "📚 Found %d books with %d annotations\n", result.BooksFound, result.AnnotationsFound)
			fmt.Fprintf(out, "🔎 %d annotations from %d books match the filter\n", result.AnnotationsExported, result.BooksExported)

			if dryRun {
				fmt.Fprintf(out, "\n✅ Dry run complete. Would write %s output to %s\n", a.cfg.Format, req.OutputDir)
				return nil
			}

			a.logger.Debug("export written", zap.Strings("files", result.Files))
			for _, file := range result.Files {
				fmt.Fprintf(out, "📄 %s\n", file)
			}
			fmt.Fprintln(out, "\n✅ Export complete!")
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", config.DefaultOutputDir, "Output directory")
	cmd.Flags().StringP("format", "f", "html", "Output format: html, markdown, json or csv")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be exported without writing files")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List matching books in dry-run mode")

	return cmd
}
