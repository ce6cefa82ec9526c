package applebooks

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrlokans/bookmarks-export/internal/entities"
	"github.com/mrlokans/bookmarks-export/internal/store"
)

const (
	annotationTable = "ZAEANNOTATION"
	bookTable       = "ZBKLIBRARYASSET"
	librarySchema   = "library"
)

// sourceColumn maps a column of the Apple Books schema to the expression
// used when the column is missing. Required columns have no fallback.
type sourceColumn struct {
	name     string
	fallback string
}

func (c sourceColumn) required() bool { return c.fallback == "" }

var (
	colPK         = sourceColumn{name: "Z_PK"}
	colAssetID    = sourceColumn{name: "ZANNOTATIONASSETID"}
	colSelected   = sourceColumn{name: "ZANNOTATIONSELECTEDTEXT", fallback: "NULL"}
	colNote       = sourceColumn{name: "ZANNOTATIONNOTE", fallback: "NULL"}
	colStyle      = sourceColumn{name: "ZANNOTATIONSTYLE", fallback: "NULL"}
	colLocation   = sourceColumn{name: "ZANNOTATIONLOCATION", fallback: "NULL"}
	colCreated    = sourceColumn{name: "ZANNOTATIONCREATIONDATE", fallback: "NULL"}
	colModified   = sourceColumn{name: "ZANNOTATIONMODIFICATIONDATE", fallback: "NULL"}
	colDeleted    = sourceColumn{name: "ZANNOTATIONDELETED", fallback: "0"}
	colBookID     = sourceColumn{name: "ZASSETID"}
	colBookTitle  = sourceColumn{name: "ZTITLE", fallback: "NULL"}
	colBookAuthor = sourceColumn{name: "ZAUTHOR", fallback: "NULL"}
	colBookGenre  = sourceColumn{name: "ZGENRE", fallback: "NULL"}
)

var (
	annotationColumns = []sourceColumn{colPK, colAssetID, colSelected, colNote, colStyle, colLocation, colCreated, colModified, colDeleted}
	bookColumns       = []sourceColumn{colBookID, colBookTitle, colBookAuthor, colBookGenre}
)

// Reader pulls annotations out of a pair of Apple Books stores.
type Reader struct {
	opener store.Opener
	paths  StorePaths
}

func NewReader(opener store.Opener, paths StorePaths) *Reader {
	return &Reader{opener: opener, paths: paths}
}

func (r *Reader) Paths() StorePaths {
	return r.paths
}

func (r *Reader) Rows(ctx context.Context) ([]entities.RawAnnotationRow, error) {
	return QueryRawAnnotations(ctx, r.opener, r.paths)
}

// Books returns every non-deleted annotation grouped per book.
func (r *Reader) Books(ctx context.Context) ([]entities.Book, error) {
	rows, err := r.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByBook(rows), nil
}

// QueryRawAnnotations opens the annotation store read-only, attaches the
// library store and returns the joined, non-deleted rows ordered by book
// title and creation date. The session is always closed before returning.
func QueryRawAnnotations(ctx context.Context, opener store.Opener, paths StorePaths) ([]entities.RawAnnotationRow, error) {
	session, err := opener.Open(ctx, paths.Annotations, true)
	if err != nil {
		return nil, &OpenError{Path: paths.Annotations, Err: err}
	}
	defer session.Close()

	if err := session.Exec(ctx, "ATTACH DATABASE ? AS "+librarySchema, store.DSN(paths.Library, true)); err != nil {
		return nil, &OpenError{Path: paths.Library, Err: err}
	}

	annotationExprs, err := resolveColumns(ctx, session, "main", annotationTable, "a", annotationColumns)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	bookExprs, err := resolveColumns(ctx, session, librarySchema, bookTable, "b", bookColumns)
	if err != nil {
		return nil, &QueryError{Err: err}
	}

	rows, err := session.Query(ctx, buildQuery(annotationExprs, bookExprs))
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	defer rows.Close()

	var result []entities.RawAnnotationRow
	for rows.Next() {
		var row entities.RawAnnotationRow
		if err := rows.Scan(
			&row.ID,
			&row.AssetID,
			&row.SelectedText,
			&row.Note,
			&row.Style,
			&row.Location,
			&row.CreatedAt,
			&row.ModifiedAt,
			&row.Deleted,
			&row.Title,
			&row.Author,
			&row.Genre,
		); err != nil {
			return nil, &QueryError{Err: fmt.Errorf("failed to scan row: %w", err)}
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, &QueryError{Err: fmt.Errorf("error iterating rows: %w", err)}
	}

	return result, nil
}

// resolveColumns returns a select expression per column, substituting the
// fallback for optional columns the table does not have.
func resolveColumns(ctx context.Context, session store.Session, schema, table, alias string, columns []sourceColumn) (map[string]string, error) {
	present, err := tableColumns(ctx, session, schema, table)
	if err != nil {
		return nil, err
	}

	exprs := make(map[string]string, len(columns))
	for _, col := range columns {
		switch {
		case present[col.name]:
			exprs[col.name] = alias + "." + col.name
		case col.required():
			return nil, fmt.Errorf("%s.%s is missing required column %s", schema, table, col.name)
		default:
			exprs[col.name] = col.fallback
		}
	}
	return exprs, nil
}

func tableColumns(ctx context.Context, session store.Session, schema, table string) (map[string]bool, error) {
	rows, err := session.Query(ctx, "SELECT name FROM pragma_table_info(?, ?)", table, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s.%s: %w", schema, table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to inspect %s.%s: %w", schema, table, err)
		}
		columns[strings.ToUpper(name)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to inspect %s.%s: %w", schema, table, err)
	}
	return columns, nil
}

func buildQuery(a, b map[string]string) string {
	return fmt.Sprintf(`
		SELECT
			%s AS id,
			%s AS asset_id,
			%s AS selected_text,
			%s AS note,
			COALESCE(CAST(%s AS INTEGER), -1) AS style,
			%s AS location,
			COALESCE(CAST(%s AS INTEGER), 0) AS created_at,
			COALESCE(CAST(%s AS INTEGER), 0) AS modified_at,
			COALESCE(%s, 0) AS deleted,
			%s AS title,
			%s AS author,
			%s AS genre
		FROM main.%s AS a
		LEFT JOIN %s.%s AS b
			ON %s = %s
		WHERE COALESCE(%s, 0) = 0
			AND %s IS NOT NULL AND %s != ''
		ORDER BY title, created_at, id
	`,
		a[colPK.name],
		a[colAssetID.name],
		a[colSelected.name],
		a[colNote.name],
		a[colStyle.name],
		a[colLocation.name],
		a[colCreated.name],
		a[colModified.name],
		a[colDeleted.name],
		b[colBookTitle.name],
		b[colBookAuthor.name],
		b[colBookGenre.name],
		annotationTable,
		librarySchema, bookTable,
		a[colAssetID.name], b[colBookID.name],
		a[colDeleted.name],
		a[colAssetID.name], a[colAssetID.name],
	)
}
