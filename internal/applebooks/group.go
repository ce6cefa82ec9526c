package applebooks

import "github.com/mrlokans/bookmarks-export/internal/entities"

// GroupByBook turns joined rows into books, keeping the order in which asset
// IDs first appear. Book metadata comes from the first row seen for an asset;
// the join yields the same metadata for every row of a book anyway.
func GroupByBook(rows []entities.RawAnnotationRow) []entities.Book {
	bookIndex := make(map[string]int)
	var books []entities.Book

	for _, row := range rows {
		// The query already drops deleted rows; this keeps hand-built
		// row lists honest too.
		if row.Deleted != 0 {
			continue
		}

		idx, exists := bookIndex[row.AssetID]
		if !exists {
			books = append(books, entities.Book{
				AssetID:     row.AssetID,
				Title:       row.Title,
				Author:      row.Author,
				Genre:       row.Genre,
				Annotations: []entities.Annotation{},
			})
			idx = len(books) - 1
			bookIndex[row.AssetID] = idx
		}

		books[idx].Annotations = append(books[idx].Annotations, toAnnotation(row))
	}

	return books
}

func toAnnotation(row entities.RawAnnotationRow) entities.Annotation {
	return entities.Annotation{
		ID:         row.ID,
		Kind:       ClassifyKind(row.SelectedText, row.Note),
		Color:      ClassifyColor(row.Style),
		Text:       row.SelectedText,
		Note:       row.Note,
		Location:   row.Location,
		CreatedAt:  ConvertEpoch(row.CreatedAt),
		ModifiedAt: ConvertEpoch(row.ModifiedAt),
	}
}
