package exporters

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/bookmarks-export/internal/entities"
)

const jsonFileName = "annotations.json"

type JSONExporter struct {
	Now func() time.Time
}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{Now: time.Now}
}

type jsonDocument struct {
	ExportID        string          `json:"export_id"`
	ExportedAt      time.Time       `json:"exported_at"`
	BookCount       int             `json:"book_count"`
	AnnotationCount int             `json:"annotation_count"`
	Books           []entities.Book `json:"books"`
}

func (e *JSONExporter) Export(books []entities.Book, outputDir string) ([]string, error) {
	return writeSingle(e, books, outputDir, jsonFileName)
}

func (e *JSONExporter) Render(w io.Writer, books []entities.Book) error {
	if books == nil {
		books = []entities.Book{}
	}

	doc := jsonDocument{
		ExportID:        uuid.NewString(),
		ExportedAt:      e.Now().UTC(),
		BookCount:       len(books),
		AnnotationCount: totalAnnotations(books),
		Books:           books,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
