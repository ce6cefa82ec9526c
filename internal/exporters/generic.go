package exporters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/bookmarks-export/internal/entities"
)

type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
)

var Formats = []Format{FormatHTML, FormatMarkdown, FormatJSON, FormatCSV}

// BookExporter writes books into outputDir and returns the paths written.
type BookExporter interface {
	Export(books []entities.Book, outputDir string) ([]string, error)
}

// Renderer is implemented by exporters that produce a single document and
// can stream it, e.g. to an HTTP response.
type Renderer interface {
	Render(w io.Writer, books []entities.Book) error
}

// ForFormat returns the exporter for a format name.
func ForFormat(format string) (BookExporter, error) {
	switch Format(strings.ToLower(strings.TrimSpace(format))) {
	case FormatHTML, "":
		return NewHTMLExporter(), nil
	case FormatMarkdown, "md":
		return NewMarkdownExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatCSV:
		return NewCSVExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (choose html, markdown, json, csv)", format)
	}
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// writeSingle renders into dir/name through a Renderer.
func writeSingle(r Renderer, books []entities.Book, dir, name string) ([]string, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := r.Render(file, books); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func totalAnnotations(books []entities.Book) int {
	total := 0
	for _, book := range books {
		total += len(book.Annotations)
	}
	return total
}
