package applebooks

import "github.com/mrlokans/bookmarks-export/internal/entities"

// AnnotationStyle is the ZANNOTATIONSTYLE code Apple Books stores per
// annotation.
type AnnotationStyle int

const (
	AnnotationStyleUnderline AnnotationStyle = 0
	AnnotationStyleGreen     AnnotationStyle = 1
	AnnotationStyleBlue      AnnotationStyle = 2
	AnnotationStyleYellow    AnnotationStyle = 3
	AnnotationStylePink      AnnotationStyle = 4
	AnnotationStylePurple    AnnotationStyle = 5
)

// DefaultColor is used for style codes outside the known table. Real
// libraries do contain such codes, so they must not fail the export.
const DefaultColor = entities.AnnotationColorYellow

func ClassifyColor(code int) entities.AnnotationColor {
	switch AnnotationStyle(code) {
	case AnnotationStyleUnderline:
		return entities.AnnotationColorUnderline
	case AnnotationStyleGreen:
		return entities.AnnotationColorGreen
	case AnnotationStyleBlue:
		return entities.AnnotationColorBlue
	case AnnotationStyleYellow:
		return entities.AnnotationColorYellow
	case AnnotationStylePink:
		return entities.AnnotationColorPink
	case AnnotationStylePurple:
		return entities.AnnotationColorPurple
	default:
		return DefaultColor
	}
}
