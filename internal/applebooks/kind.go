package applebooks

import "github.com/mrlokans/bookmarks-export/internal/entities"

// ClassifyKind decides what an annotation row represents. A note always
// wins, even when the row also carries selected text; a row without any
// selected text is a bookmark.
func ClassifyKind(text, note *string) entities.AnnotationKind {
	if !entities.IsBlank(note) {
		return entities.AnnotationKindNote
	}
	if entities.IsBlank(text) {
		return entities.AnnotationKindBookmark
	}
	return entities.AnnotationKindHighlight
}
