package utils

import "github.com/mrlokans/bookmarks-export/internal/entities"

// CalloutType maps an annotation to an Obsidian callout type. Notes and
// bookmarks get their own callouts; highlights are keyed by color.
// Default return is "quote".
func CalloutType(kind entities.AnnotationKind, color entities.AnnotationColor) string {
	switch kind {
	case entities.AnnotationKindNote:
		return "note"
	case entities.AnnotationKindBookmark:
		return "info"
	}

	colorMapping := map[entities.AnnotationColor]string{
		entities.AnnotationColorYellow: "quote",
		entities.AnnotationColorGreen:  "success",
		entities.AnnotationColorBlue:   "abstract",
		entities.AnnotationColorPink:   "tip",
		entities.AnnotationColorPurple: "example",
	}

	if calloutType, ok := colorMapping[color]; ok {
		return calloutType
	}
	return "quote"
}
