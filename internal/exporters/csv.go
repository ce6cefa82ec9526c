package exporters

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/mrlokans/bookmarks-export/internal/entities"
)

const csvFileName = "annotations.csv"

var csvHeader = []string{
	"asset_id", "title", "author", "genre",
	"annotation_id", "type", "color", "text", "note", "location", "chapter",
	"created_at", "modified_at",
}

// CSVExporter writes one row per annotation with the book columns repeated.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) Export(books []entities.Book, outputDir string) ([]string, error) {
	return writeSingle(e, books, outputDir, csvFileName)
}

func (e *CSVExporter) Render(w io.Writer, books []entities.Book) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, book := range books {
		for _, a := range book.Annotations {
			record := []string{
				book.AssetID,
				entities.Deref(book.Title),
				entities.Deref(book.Author),
				entities.Deref(book.Genre),
				strconv.FormatInt(a.ID, 10),
				string(a.Kind),
				string(a.Color),
				entities.Deref(a.Text),
				entities.Deref(a.Note),
				entities.Deref(a.Location),
				entities.Deref(a.Chapter),
				formatTime(a.CreatedAt),
				formatTime(a.ModifiedAt),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
