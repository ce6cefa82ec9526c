package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookmarks-export/internal/applebooks"
	"github.com/mrlokans/bookmarks-export/internal/exporters"
	"github.com/mrlokans/bookmarks-export/internal/http"
	"github.com/mrlokans/bookmarks-export/internal/scheduler"
	"github.com/mrlokans/bookmarks-export/internal/services"
	"github.com/mrlokans/bookmarks-export/internal/store"
)

// =============================================================================
// Store Bindings
// =============================================================================

var _ store.Opener = store.SQLite3Opener{}
var _ store.Opener = store.ModerncOpener{}
var _ store.Opener = store.GormOpener{}

// =============================================================================
// Store Discovery
// =============================================================================

var _ services.StoreLocator = applebooks.Locator{}

// =============================================================================
// Renderers
// =============================================================================

var _ services.BookExporter = (*exporters.HTMLExporter)(nil)
var _ services.BookExporter = (*exporters.MarkdownExporter)(nil)
var _ services.BookExporter = (*exporters.JSONExporter)(nil)
var _ services.BookExporter = (*exporters.CSVExporter)(nil)

var _ exporters.Renderer = (*exporters.HTMLExporter)(nil)
var _ exporters.Renderer = (*exporters.JSONExporter)(nil)
var _ exporters.Renderer = (*exporters.CSVExporter)(nil)

// =============================================================================
// Export Orchestration
// =============================================================================

var _ scheduler.Runner = (*services.ExportService)(nil)
var _ http.BookCollector = (*services.ExportService)(nil)
