package applebooks

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mrlokans/bookmarks-export/internal/entities"
)

// FilterConfig selects which annotations end up in an export. An empty
// Colors list means any color.
type FilterConfig struct {
	Highlights bool
	Bookmarks  bool
	Notes      bool
	Colors     []entities.AnnotationColor
}

// AllowAll returns a config that keeps every annotation.
func AllowAll() FilterConfig {
	return FilterConfig{Highlights: true, Bookmarks: true, Notes: true}
}

func (c FilterConfig) allowsKind(kind entities.AnnotationKind) bool {
	switch kind {
	case entities.AnnotationKindHighlight:
		return c.Highlights
	case entities.AnnotationKindBookmark:
		return c.Bookmarks
	case entities.AnnotationKindNote:
		return c.Notes
	default:
		return false
	}
}

func (c FilterConfig) allowsColor(color entities.AnnotationColor) bool {
	return len(c.Colors) == 0 || slices.Contains(c.Colors, color)
}

// FilterAnnotations returns the annotations allowed by cfg, in their
// original order. The input slice is not modified.
func FilterAnnotations(annotations []entities.Annotation, cfg FilterConfig) []entities.Annotation {
	filtered := make([]entities.Annotation, 0, len(annotations))
	for _, a := range annotations {
		if cfg.allowsKind(a.Kind) && cfg.allowsColor(a.Color) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// FilterBooks applies FilterAnnotations to every book and drops books with
// nothing left. Returned books are copies.
func FilterBooks(books []entities.Book, cfg FilterConfig) []entities.Book {
	var result []entities.Book
	for _, book := range books {
		annotations := FilterAnnotations(book.Annotations, cfg)
		if len(annotations) == 0 {
			continue
		}
		book.Annotations = annotations
		result = append(result, book)
	}
	return result
}

// ParseColors validates user supplied color names.
func ParseColors(names []string) ([]entities.AnnotationColor, error) {
	var colors []entities.AnnotationColor
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		color := entities.AnnotationColor(name)
		if !slices.Contains(entities.AnnotationColors, color) {
			return nil, fmt.Errorf("unknown color %q", name)
		}
		if !slices.Contains(colors, color) {
			colors = append(colors, color)
		}
	}
	return colors, nil
}
