package entities

import (
	"strings"
	"time"
)

type AnnotationKind string

const (
	AnnotationKindHighlight AnnotationKind = "highlight"
	AnnotationKindBookmark  AnnotationKind = "bookmark"
	AnnotationKindNote      AnnotationKind = "note"
)

// AnnotationKinds lists every kind in display order.
var AnnotationKinds = []AnnotationKind{
	AnnotationKindHighlight,
	AnnotationKindBookmark,
	AnnotationKindNote,
}

type AnnotationColor string

const (
	AnnotationColorYellow    AnnotationColor = "yellow"
	AnnotationColorGreen     AnnotationColor = "green"
	AnnotationColorBlue      AnnotationColor = "blue"
	AnnotationColorPink      AnnotationColor = "pink"
	AnnotationColorPurple    AnnotationColor = "purple"
	AnnotationColorUnderline AnnotationColor = "underline"
)

// AnnotationColors lists every color category in display order.
var AnnotationColors = []AnnotationColor{
	AnnotationColorYellow,
	AnnotationColorGreen,
	AnnotationColorBlue,
	AnnotationColorPink,
	AnnotationColorPurple,
	AnnotationColorUnderline,
}

// Hex returns the swatch used by renderers. Underline has no fill.
func (c AnnotationColor) Hex() string {
	switch c {
	case AnnotationColorGreen:
		return "#00FF00"
	case AnnotationColorBlue:
		return "#0000FF"
	case AnnotationColorPink:
		return "#FF69B4"
	case AnnotationColorPurple:
		return "#800080"
	case AnnotationColorUnderline:
		return ""
	default:
		return "#FFFF00"
	}
}

// RawAnnotationRow is a single row of the annotation/library join, before
// classification. Timestamps are seconds since 2001-01-01 UTC.
type RawAnnotationRow struct {
	ID           int64
	AssetID      string
	SelectedText *string
	Note         *string
	Style        int
	Location     *string
	CreatedAt    int64
	ModifiedAt   int64
	Deleted      int
	Title        *string
	Author       *string
	Genre        *string
}

type Annotation struct {
	ID         int64           `json:"id"`
	Kind       AnnotationKind  `json:"type"`
	Color      AnnotationColor `json:"color"`
	Text       *string         `json:"text"`
	Note       *string         `json:"note"`
	Location   *string         `json:"location"`
	Chapter    *string         `json:"chapter"` // not populated by Apple Books yet
	CreatedAt  time.Time       `json:"created_at"`
	ModifiedAt time.Time       `json:"modified_at"`
}

type Book struct {
	AssetID     string       `json:"asset_id"`
	Title       *string      `json:"title"`
	Author      *string      `json:"author"`
	Genre       *string      `json:"genre"`
	Annotations []Annotation `json:"annotations"`
}

// IsOrphaned reports whether no library metadata was found for the book.
func (b Book) IsOrphaned() bool {
	return b.Title == nil && b.Author == nil && b.Genre == nil
}

func (b Book) DisplayTitle() string {
	return valueOr(b.Title, "Unknown Title")
}

func (b Book) DisplayAuthor() string {
	return valueOr(b.Author, "Unknown Author")
}

// CountByKind tallies the book's annotations per kind.
func (b Book) CountByKind() map[AnnotationKind]int {
	counts := make(map[AnnotationKind]int, len(AnnotationKinds))
	for _, a := range b.Annotations {
		counts[a.Kind]++
	}
	return counts
}

// StringPtr returns nil for empty input so callers can keep "absent" and
// "present" apart.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsBlank treats nil, empty and whitespace-only strings alike.
func IsBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func valueOr(s *string, fallback string) string {
	if IsBlank(s) {
		return fallback
	}
	return *s
}
