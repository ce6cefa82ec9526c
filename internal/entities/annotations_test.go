package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBook_IsOrphaned(t *testing.T) {
	assert.True(t, Book{AssetID: "b1"}.IsOrphaned())
	assert.False(t, Book{AssetID: "b1", Genre: StringPtr("Fiction")}.IsOrphaned())
}

func TestBook_DisplayFallbacks(t *testing.T) {
	book := Book{AssetID: "b1", Title: StringPtr("   ")}

	assert.Equal(t, "Unknown Title", book.DisplayTitle())
	assert.Equal(t, "Unknown Author", book.DisplayAuthor())

	book.Title = StringPtr("Dune")
	book.Author = StringPtr("Frank Herbert")
	assert.Equal(t, "Dune", book.DisplayTitle())
	assert.Equal(t, "Frank Herbert", book.DisplayAuthor())
}

func TestBook_CountByKind(t *testing.T) {
	book := Book{
		AssetID: "b1",
		Annotations: []Annotation{
			{ID: 1, Kind: AnnotationKindHighlight},
			{ID: 2, Kind: AnnotationKindHighlight},
			{ID: 3, Kind: AnnotationKindNote},
		},
	}

	counts := book.CountByKind()
	assert.Equal(t, 2, counts[AnnotationKindHighlight])
	assert.Equal(t, 1, counts[AnnotationKindNote])
	assert.Equal(t, 0, counts[AnnotationKindBookmark])
}

func TestStringHelpers(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	assert.Equal(t, "x", Deref(StringPtr("x")))
	assert.Equal(t, "", Deref(nil))
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank(StringPtr(" \n\t")))
	assert.False(t, IsBlank(StringPtr(" a ")))
}

func TestAnnotationColor_Hex(t *testing.T) {
	tests := []struct {
		color    AnnotationColor
		expected string
	}{
		{AnnotationColorUnderline, ""},
		{AnnotationColorGreen, "#00FF00"},
		{AnnotationColorBlue, "#0000FF"},
		{AnnotationColorYellow, "#FFFF00"},
		{AnnotationColorPink, "#FF69B4"},
		{AnnotationColorPurple, "#800080"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.color.Hex(), string(tt.color))
	}
}
