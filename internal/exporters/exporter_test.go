package exporters

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mrlokans/bookmarks-export/internal/entities"
)

var fixedNow = func() time.Time { return time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC) }

func sampleBooks() []entities.Book {
	created := time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC)
	return []entities.Book{
		{
			AssetID: "asset-1",
			Title:   entities.StringPtr(`Book with "Quotes"`),
			Author:  entities.StringPtr("Test Author"),
			Genre:   entities.StringPtr("Fiction"),
			Annotations: []entities.Annotation{
				{ID: 1, Kind: entities.AnnotationKindHighlight, Color: entities.AnnotationColorYellow, Text: entities.StringPtr("Line 1\nLine 2"), CreatedAt: created, ModifiedAt: created},
				{ID: 2, Kind: entities.AnnotationKindNote, Color: entities.AnnotationColorGreen, Text: entities.StringPtr("Quoted"), Note: entities.StringPtr("My personal note"), CreatedAt: created, ModifiedAt: created},
				{ID: 3, Kind: entities.AnnotationKindBookmark, Color: entities.AnnotationColorBlue, Location: entities.StringPtr("epubcfi(/6/8)"), CreatedAt: created, ModifiedAt: created},
			},
		},
		{
			AssetID: "orphan-1",
			Annotations: []entities.Annotation{
				{ID: 4, Kind: entities.AnnotationKindHighlight, Color: entities.AnnotationColorUnderline, Text: entities.StringPtr("<script>alert(1)</script>"), CreatedAt: created, ModifiedAt: created},
			},
		},
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format   string
		expected any
	}{
		{"html", &HTMLExporter{}},
		{"", &HTMLExporter{}},
		{"Markdown", &MarkdownExporter{}},
		{"md", &MarkdownExporter{}},
		{"json", &JSONExporter{}},
		{"csv", &CSVExporter{}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			exporter, err := ForFormat(tt.format)
			require.NoError(t, err)
			assert.IsType(t, tt.expected, exporter)
		})
	}

	_, err := ForFormat("pdf")
	assert.Error(t, err)
}

// --- GenerateMarkdown Tests ---

func TestGenerateMarkdown(t *testing.T) {
	books := sampleBooks()

	t.Run("frontmatter is valid yaml", func(t *testing.T) {
		markdown, err := GenerateMarkdown(&books[0], fixedNow())
		require.NoError(t, err)

		parts := strings.SplitN(markdown, "---\n", 3)
		require.Len(t, parts, 3)

		var meta frontmatter
		require.NoError(t, yaml.Unmarshal([]byte(parts[1]), &meta))
		assert.Equal(t, `Book with "Quotes"`, meta.Title)
		assert.Equal(t, "Test Author", meta.Author)
		assert.Equal(t, "Fiction", meta.Genre)
		assert.Equal(t, "asset-1", meta.AssetID)
		assert.Equal(t, "apple_books", meta.ContentSource)
		assert.Equal(t, "2024-06-15", meta.CreatedAt)
		assert.Equal(t, 1, meta.Highlights)
		assert.Equal(t, 1, meta.Notes)
		assert.Equal(t, 1, meta.Bookmarks)
	})

	t.Run("callouts per kind", func(t *testing.T) {
		markdown, err := GenerateMarkdown(&books[0], fixedNow())
		require.NoError(t, err)

		assert.Contains(t, markdown, "> [!quote] 2023-01-01 09:00 · highlight · yellow\n> Line 1\n> Line 2\n")
		assert.Contains(t, markdown, "> [!note] 2023-01-01 09:00 · note · green\n> Quoted\n>\n> **Note:** My personal note\n")
		assert.Contains(t, markdown, "> [!info] 2023-01-01 09:00 · bookmark · blue\n> Location: `epubcfi(/6/8)`\n")
	})

	t.Run("orphaned book uses fallbacks", func(t *testing.T) {
		markdown, err := GenerateMarkdown(&books[1], fixedNow())
		require.NoError(t, err)

		assert.Contains(t, markdown, "title: Unknown Title")
		assert.Contains(t, markdown, "author: Unknown Author")
		assert.NotContains(t, markdown, "genre:")
	})
}

func TestMarkdownExporter_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	books := sampleBooks()
	books = append(books, entities.Book{
		AssetID:     "asset-2",
		Title:       entities.StringPtr(`Book with "Quotes"`),
		Annotations: []entities.Annotation{{ID: 5, Kind: entities.AnnotationKindHighlight, Color: entities.AnnotationColorPink, Text: entities.StringPtr("dup")}},
	})

	exporter := &MarkdownExporter{Now: fixedNow}
	written, err := exporter.Export(books, dir)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "Book with Quotes.md"),
		filepath.Join(dir, "Unknown Title.md"),
		filepath.Join(dir, "Book with Quotes (2).md"),
	}, written)
	for _, path := range written {
		assert.FileExists(t, path)
	}
}

func TestJSONExporter(t *testing.T) {
	exporter := &JSONExporter{Now: fixedNow}

	written, err := exporter.Export(sampleBooks(), t.TempDir())
	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Equal(t, "annotations.json", filepath.Base(written[0]))

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)

	var doc struct {
		ExportID        string    `json:"export_id"`
		ExportedAt      time.Time `json:"exported_at"`
		BookCount       int       `json:"book_count"`
		AnnotationCount int       `json:"annotation_count"`
		Books           []struct {
			AssetID     string  `json:"asset_id"`
			Title       *string `json:"title"`
			Annotations []struct {
				ID    int64   `json:"id"`
				Type  string  `json:"type"`
				Color string  `json:"color"`
				Text  *string `json:"text"`
			} `json:"annotations"`
		} `json:"books"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	_, err = uuid.Parse(doc.ExportID)
	assert.NoError(t, err)
	assert.True(t, fixedNow().Equal(doc.ExportedAt))
	assert.Equal(t, 2, doc.BookCount)
	assert.Equal(t, 4, doc.AnnotationCount)
	require.Len(t, doc.Books, 2)
	assert.Nil(t, doc.Books[1].Title, "orphaned title stays null")
	assert.Equal(t, "note", doc.Books[0].Annotations[1].Type)
	assert.Equal(t, "green", doc.Books[0].Annotations[1].Color)
	assert.Nil(t, doc.Books[0].Annotations[2].Text)
}

func TestJSONExporter_EmptyListIsArray(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, (&JSONExporter{Now: fixedNow}).Render(&buf, nil))

	assert.Contains(t, buf.String(), `"books": []`)
}

func TestCSVExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter().Render(&buf, sampleBooks()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{
		"asset-1", `Book with "Quotes"`, "Test Author", "Fiction",
		"1", "highlight", "yellow", "Line 1\nLine 2", "", "", "",
		"2023-01-01T09:00:00Z", "2023-01-01T09:00:00Z",
	}, records[1])
	assert.Equal(t, "My personal note", records[2][8])
	assert.Equal(t, "epubcfi(/6/8)", records[3][9])
	assert.Equal(t, "orphan-1", records[4][0])
	assert.Equal(t, "", records[4][1])
}

func TestHTMLExporter(t *testing.T) {
	exporter := &HTMLExporter{Now: fixedNow}

	written, err := exporter.Export(sampleBooks(), t.TempDir())
	require.NoError(t, err)
	require.Len(t, written, 1)

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	page := string(data)

	assert.Contains(t, page, "4 annotations from 2 books · generated 2024-06-15 14:30")
	assert.Contains(t, page, `<h2>Book with &#34;Quotes&#34;</h2>`)
	assert.Contains(t, page, `data-kind="note" data-color="green"`)
	assert.Contains(t, page, `value="underline" checked> Underline`)
	assert.Contains(t, page, `<p class="note">My personal note</p>`)
	assert.Contains(t, page, "<h2>Unknown Title</h2>")
	assert.Contains(t, page, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, page, "<script>alert(1)</script>")
}
