package config

// Configuration keys. Environment variables use the upper-cased key with the
// BOOKMARKS_EXPORT_ prefix, e.g. BOOKMARKS_EXPORT_OUTPUT_DIR.
const (
	KeyAnnotationsDB   = "annotations_db"
	KeyLibraryDB       = "library_db"
	KeyStoreDriver     = "store_driver"
	KeyOutputDir       = "output_dir"
	KeyFormat          = "format"
	KeyHighlights      = "include_highlights"
	KeyBookmarks       = "include_bookmarks"
	KeyNotes           = "include_notes"
	KeyColors          = "colors"
	KeySchedule        = "schedule"
	KeyPreviewAddr     = "preview_addr"
	KeyLogLevel        = "log_level"
	KeyShutdownTimeout = "shutdown_timeout_in_seconds"
)

const (
	// DefaultOutputDir is where exports land when no directory is given
	DefaultOutputDir = "./apple-books-export"

	// DefaultSchedule runs the scheduled export hourly at :00
	DefaultSchedule = "0 * * * *"

	// DefaultPreviewAddr binds the preview server to loopback only
	DefaultPreviewAddr = "127.0.0.1:8188"
)
