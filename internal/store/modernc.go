package store

import (
	"context"

	_ "modernc.org/sqlite"
)

// ModerncOpener uses the pure Go modernc.org/sqlite port.
type ModerncOpener struct{}

func (ModerncOpener) Name() string { return DriverModernc }

func (ModerncOpener) Open(ctx context.Context, path string, readOnly bool) (Session, error) {
	return openSQLSession(ctx, "sqlite", DSN(path, readOnly))
}
