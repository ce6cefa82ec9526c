package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/bookmarks-export/internal/entities"
	"github.com/mrlokans/bookmarks-export/internal/utils"
)

const contentSource = "apple_books"

// MarkdownExporter writes one Obsidian-compatible note per book.
type MarkdownExporter struct {
	Now func() time.Time
}

func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{Now: time.Now}
}

type frontmatter struct {
	Title         string   `yaml:"title"`
	Author        string   `yaml:"author"`
	Genre         string   `yaml:"genre,omitempty"`
	AssetID       string   `yaml:"asset_id"`
	ContentSource string   `yaml:"content_source"`
	ContentType   string   `yaml:"content_type"`
	CreatedAt     string   `yaml:"created_at"`
	Highlights    int      `yaml:"highlights"`
	Bookmarks     int      `yaml:"bookmarks"`
	Notes         int      `yaml:"notes"`
	Tags          []string `yaml:"tags"`
}

func (exporter *MarkdownExporter) Export(books []entities.Book, outputDir string) ([]string, error) {
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}

	used := make(map[string]bool)
	var written []string

	for i := range books {
		content, err := GenerateMarkdown(&books[i], exporter.Now())
		if err != nil {
			return written, fmt.Errorf("failed to render %q: %w", books[i].DisplayTitle(), err)
		}

		name := utils.UniqueFilename(utils.SanitizeFilename(books[i].DisplayTitle()), used)
		outputPath := filepath.Join(outputDir, name+".md")
		if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
			return written, err
		}
		written = append(written, outputPath)
	}

	return written, nil
}

// GenerateMarkdown renders a book as YAML frontmatter followed by one
// callout per annotation.
func GenerateMarkdown(book *entities.Book, now time.Time) (string, error) {
	counts := book.CountByKind()
	meta := frontmatter{
		Title:         book.DisplayTitle(),
		Author:        book.DisplayAuthor(),
		Genre:         entities.Deref(book.Genre),
		AssetID:       book.AssetID,
		ContentSource: contentSource,
		ContentType:   "book_annotations",
		CreatedAt:     now.Format("2006-01-02"),
		Highlights:    counts[entities.AnnotationKindHighlight],
		Bookmarks:     counts[entities.AnnotationKindBookmark],
		Notes:         counts[entities.AnnotationKindNote],
		Tags:          []string{"highlights", "books"},
	}

	header, err := yaml.Marshal(meta)
	if err != nil {
		return "", err
	}

	var builder strings.Builder

	fmt.Fprintf(&builder, "---\n%s---\n\n", header)
	fmt.Fprintf(&builder, "# %s\n\n", book.DisplayTitle())
	fmt.Fprintf(&builder, "*%s*\n\n", book.DisplayAuthor())
	fmt.Fprintf(&builder, "## Annotations\n\n")

	for _, a := range book.Annotations {
		writeCallout(&builder, a)
	}

	return builder.String(), nil
}

func writeCallout(builder *strings.Builder, a entities.Annotation) {
	fmt.Fprintf(builder, "> [!%s] %s · %s · %s\n",
		utils.CalloutType(a.Kind, a.Color), a.CreatedAt.Format("2006-01-02 15:04"), a.Kind, a.Color)

	if !entities.IsBlank(a.Text) {
		fmt.Fprintf(builder, "> %s\n", quoteLines(*a.Text))
	}
	if a.Kind == entities.AnnotationKindBookmark && a.Location != nil {
		fmt.Fprintf(builder, "> Location: `%s`\n", *a.Location)
	}
	if !entities.IsBlank(a.Note) {
		if !entities.IsBlank(a.Text) {
			fmt.Fprintf(builder, ">\n")
		}
		fmt.Fprintf(builder, "> **Note:** %s\n", quoteLines(*a.Note))
	}
	fmt.Fprintf(builder, "\n")
}

func quoteLines(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n> ")
}
