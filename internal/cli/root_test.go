package cli

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookmarks-export/internal/applebooks"
	"github.com/mrlokans/bookmarks-export/internal/entities"
)

func createStores(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	annotations := filepath.Join(dir, "AEAnnotation.sqlite")
	library := filepath.Join(dir, "BKLibrary.sqlite")

	exec := func(path string, statements ...string) {
		db, err := sql.Open("sqlite3", path)
		require.NoError(t, err)
		defer db.Close()
		for _, stmt := range statements {
			_, err := db.Exec(stmt)
			require.NoError(t, err)
		}
	}

	exec(annotations,
		`CREATE TABLE ZAEANNOTATION (
			Z_PK INTEGER PRIMARY KEY, ZANNOTATIONASSETID TEXT, ZANNOTATIONSELECTEDTEXT TEXT,
			ZANNOTATIONNOTE TEXT, ZANNOTATIONSTYLE INTEGER, ZANNOTATIONLOCATION TEXT,
			ZANNOTATIONCREATIONDATE REAL, ZANNOTATIONMODIFICATIONDATE REAL, ZANNOTATIONDELETED INTEGER)`,
		`INSERT INTO ZAEANNOTATION VALUES (1, 'dune', 'Fear is the mind-killer.', NULL, 3, NULL, 600000000, 600000000, 0)`,
		`INSERT INTO ZAEANNOTATION VALUES (2, 'dune', 'The spice must flow.', 'classic', 4, NULL, 600000100, 600000100, 0)`,
		`INSERT INTO ZAEANNOTATION VALUES (3, 'emma', NULL, NULL, 2, 'epubcfi(/6/4)', 600000200, 600000200, 0)`,
	)
	exec(library,
		`CREATE TABLE ZBKLIBRARYASSET (ZASSETID TEXT, ZTITLE TEXT, ZAUTHOR TEXT, ZGENRE TEXT)`,
		`INSERT INTO ZBKLIBRARYASSET VALUES ('dune', 'Dune', 'Frank Herbert', 'Science Fiction')`,
		`INSERT INTO ZBKLIBRARYASSET VALUES ('emma', 'Emma', 'Jane Austen', NULL)`,
	)

	return annotations, library
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd("test")
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestExportCommand(t *testing.T) {
	annotations, library := createStores(t)

	t.Run("writes json", func(t *testing.T) {
		out := t.TempDir()

		output, err := execute(t, "export",
			"--annotations-db", annotations, "--library-db", library,
			"--driver", "sqlite3", "--format", "json", "--output", out)

		require.NoError(t, err)
		assert.Contains(t, output, "📚 Apple Books Export")
		assert.Contains(t, output, "📁 Annotation DB: "+annotations)
		assert.Contains(t, output, "📚 Found 2 books with 3 annotations")
		assert.Contains(t, output, "✅ Export complete!")

		data, err := os.ReadFile(filepath.Join(out, "annotations.json"))
		require.NoError(t, err)
		var doc struct {
			AnnotationCount int `json:"annotation_count"`
		}
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, 3, doc.AnnotationCount)
	})

	t.Run("filters by kind and color", func(t *testing.T) {
		out := t.TempDir()

		output, err := execute(t, "export",
			"--annotations-db", annotations, "--library-db", library,
			"--driver", "modernc", "-f", "markdown", "-o", out,
			"--bookmarks=false", "--colors", "pink")

		require.NoError(t, err)
		assert.Contains(t, output, "🔎 1 annotations from 1 books match the filter")

		entries, err := os.ReadDir(out)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Dune.md", entries[0].Name())
	})

	t.Run("empty result writes nothing", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "never-created")

		output, err := execute(t, "export",
			"--annotations-db", annotations, "--library-db", library,
			"--output", out, "--colors", "purple")

		require.NoError(t, err)
		assert.Contains(t, output, "nothing written")
		assert.NoDirExists(t, out)
	})

	t.Run("dry run lists books without writing", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "dry")

		output, err := execute(t, "export", "--dry-run", "-v",
			"--annotations-db", annotations, "--library-db", library, "--output", out)

		require.NoError(t, err)
		assert.Contains(t, output, `1. "Dune" by Frank Herbert (1 highlights, 1 notes)`)
		assert.Contains(t, output, `2. "Emma" by Jane Austen (1 bookmarks)`)
		assert.Contains(t, output, "Dry run complete")
		assert.NoDirExists(t, out)
	})
}

func TestExportCommand_Errors(t *testing.T) {
	annotations, library := createStores(t)

	t.Run("missing store", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		_, err := execute(t, "export", "--library-db", library, "--output", t.TempDir())

		var notFound *applebooks.NotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, applebooks.StoreAnnotations, notFound.Store)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, "export", "--annotations-db", annotations, "--library-db", library, "--format", "pdf")
		assert.ErrorContains(t, err, "unsupported format")
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := execute(t, "export", "--driver", "postgres")
		assert.ErrorContains(t, err, "store_driver")
	})

	t.Run("unknown color", func(t *testing.T) {
		_, err := execute(t, "export", "--annotations-db", annotations, "--library-db", library, "--colors", "red")
		assert.ErrorContains(t, err, `unknown color "red"`)
	})

	t.Run("every kind disabled", func(t *testing.T) {
		_, err := execute(t, "list", "--highlights=false", "--bookmarks=false", "--notes=false")
		assert.ErrorContains(t, err, "every annotation type is disabled")
	})
}

func TestListCommand(t *testing.T) {
	annotations, library := createStores(t)

	output, err := execute(t, "list", "--json", "--annotations-db", annotations, "--library-db", library, "--highlights=false", "--notes=false")
	require.NoError(t, err)

	var books []entities.Book
	require.NoError(t, json.Unmarshal([]byte(output), &books))
	require.Len(t, books, 1)
	assert.Equal(t, "emma", books[0].AssetID)
	assert.Equal(t, entities.AnnotationKindBookmark, books[0].Annotations[0].Kind)
}

func TestStoresCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	annotationsDir := filepath.Join(home, "Library", "Containers", "com.apple.iBooksX", "Data", "Documents", "AEAnnotation")
	libraryDir := filepath.Join(home, "Library", "Containers", "com.apple.iBooksX", "Data", "Documents", "BKLibrary")
	require.NoError(t, os.MkdirAll(annotationsDir, 0755))
	require.NoError(t, os.MkdirAll(libraryDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(annotationsDir, "AEAnnotation_v10312011_1727_local.sqlite"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(libraryDir, "BKLibrary-1-091020131601.sqlite"), nil, 0644))

	output, err := execute(t, "stores", "--driver", "modernc")

	require.NoError(t, err)
	assert.Contains(t, output, "🔍 Annotation directory: "+annotationsDir)
	assert.Contains(t, output, "SQLite binding: modernc")
	assert.Contains(t, output, "📁 Annotation DB: "+filepath.Join(annotationsDir, "AEAnnotation_v10312011_1727_local.sqlite"))
	assert.Contains(t, output, "📁 Book DB: "+filepath.Join(libraryDir, "BKLibrary-1-091020131601.sqlite"))
}

func TestConfigFile(t *testing.T) {
	annotations, library := createStores(t)
	out := t.TempDir()

	cfgPath := filepath.Join(t.TempDir(), "export.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"annotations_db: "+annotations+"\n"+
			"library_db: "+library+"\n"+
			"format: csv\n"+
			"output_dir: "+out+"\n"), 0644))

	_, err := execute(t, "export", "--config", cfgPath)

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "annotations.csv"))
}
