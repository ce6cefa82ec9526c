package http

import (
	"context"

	"go.uber.org/zap"

	"github.com/mrlokans/bookmarks-export/internal/applebooks"
	"github.com/mrlokans/bookmarks-export/internal/entities"
	"github.com/mrlokans/bookmarks-export/internal/services"
)

// BookCollector reads and filters books from the Apple Books stores.
// *services.ExportService implements it.
type BookCollector interface {
	Collect(ctx context.Context, stores applebooks.StorePaths, filter applebooks.FilterConfig) ([]entities.Book, services.ExportResult, error)
}

// RouterConfig contains all dependencies needed to create the preview router.
type RouterConfig struct {
	Collector BookCollector
	Locator   services.StoreLocator

	// Store overrides; empty paths are auto-detected on every request
	Stores applebooks.StorePaths

	// Filter applied when a request does not override it
	DefaultFilter applebooks.FilterConfig

	Version string
	Logger  *zap.Logger
}
