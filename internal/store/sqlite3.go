package store

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite3Opener uses github.com/mattn/go-sqlite3, which needs cgo.
type SQLite3Opener struct{}

func (SQLite3Opener) Name() string { return DriverSQLite3 }

func (SQLite3Opener) Open(ctx context.Context, path string, readOnly bool) (Session, error) {
	return openSQLSession(ctx, "sqlite3", DSN(path, readOnly))
}

// cgoAvailable reports whether the cgo driver actually works. Binaries built
// with CGO_ENABLED=0 still register "sqlite3" but fail on first use.
func cgoAvailable() bool {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return false
	}
	defer db.Close()

	return db.Ping() == nil
}
