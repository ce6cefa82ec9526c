// Package store abstracts the embedded SQLite engine behind a small session
// interface so the annotation pipeline can run on any of the supported
// bindings. The binding is chosen once at startup with Select.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const (
	DriverAuto    = "auto"
	DriverSQLite3 = "sqlite3"
	DriverModernc = "modernc"
	DriverGorm    = "gorm"
)

// Drivers lists the accepted values for the store_driver setting.
var Drivers = []string{DriverAuto, DriverSQLite3, DriverModernc, DriverGorm}

// Rows is the cursor returned by Session.Query. *sql.Rows satisfies it.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Session is one open connection to a store file. ATTACH statements issued
// through Exec stay visible to later Query calls on the same session.
type Session interface {
	Exec(ctx context.Context, query string, args ...any) error
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Close() error
}

// Opener opens sessions for a particular SQLite binding.
type Opener interface {
	Name() string
	Open(ctx context.Context, path string, readOnly bool) (Session, error)
}

// Select returns the opener for the named driver. "auto" (or "") prefers the
// cgo driver and falls back to the pure Go one when cgo is unavailable.
func Select(driver string) (Opener, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverAuto, "":
		if cgoAvailable() {
			return SQLite3Opener{}, nil
		}
		return ModerncOpener{}, nil
	case DriverSQLite3:
		return SQLite3Opener{}, nil
	case DriverModernc:
		return ModerncOpener{}, nil
	case DriverGorm:
		return GormOpener{}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q (choose one of %s)", driver, strings.Join(Drivers, ", "))
	}
}

// DSN builds a SQLite URI filename for path. Read-only sessions get
// mode=ro so the source application's files are never written.
func DSN(path string, readOnly bool) string {
	escaped := strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23").Replace(path)
	if readOnly {
		return "file:" + escaped + "?mode=ro"
	}
	return "file:" + escaped
}

// sqlSession pins a single connection from the pool so that per-connection
// state (attached schemas) is shared by every statement.
type sqlSession struct {
	db   *sql.DB
	conn *sql.Conn
}

func openSQLSession(ctx context.Context, driverName, dsn string) (*sqlSession, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Reading the schema forces SQLite to parse the file header, so a
	// corrupt or non-database file fails here rather than mid-query.
	if err := verify(ctx, conn.QueryRowContext); err != nil {
		conn.Close()
		db.Close()
		return nil, err
	}

	return &sqlSession{db: db, conn: conn}, nil
}

func (s *sqlSession) Exec(ctx context.Context, query string, args ...any) error {
	_, err := s.conn.ExecContext(ctx, query, args...)
	return err
}

func (s *sqlSession) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return s.conn.QueryContext(ctx, query, args...)
}

func (s *sqlSession) Close() error {
	connErr := s.conn.Close()
	if err := s.db.Close(); err != nil {
		return err
	}
	return connErr
}

func verify(ctx context.Context, queryRow func(ctx context.Context, query string, args ...any) *sql.Row) error {
	var version int
	return queryRow(ctx, "PRAGMA schema_version").Scan(&version)
}
