package services

import (
	"github.com/mrlokans/bookmarks-export/internal/applebooks"
	"github.com/mrlokans/bookmarks-export/internal/entities"
)

// StoreLocator resolves the Apple Books store files.
// applebooks.Locator is the production implementation.
type StoreLocator interface {
	Find(overrides applebooks.StorePaths) (applebooks.StorePaths, error)
}

// BookExporter renders books into an output directory.
type BookExporter interface {
	Export(books []entities.Book, outputDir string) ([]string, error)
}

// ExportResult contains the outcome of an export run.
type ExportResult struct {
	Stores              applebooks.StorePaths
	BooksFound          int
	AnnotationsFound    int
	BooksExported       int
	AnnotationsExported int
	Files               []string
}
