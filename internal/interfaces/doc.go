// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help contributors
// find extension points.
//
// # Interface Categories
//
// ## Store Access
//
//   - store.Opener: Opens a read-only session for one SQLite binding (internal/store/store.go)
//   - store.Session: Exec/Query on a single connection so ATTACH persists (internal/store/store.go)
//   - services.StoreLocator: Resolves the annotation and library files (internal/services/interfaces.go)
//
// ## Output
//
//   - services.BookExporter: Writes books into an output directory (internal/services/interfaces.go)
//   - exporters.Renderer: Streams a single-document format to a writer (internal/exporters/generic.go)
//
// ## Orchestration
//
//   - scheduler.Runner: One full export run (internal/scheduler/export.go)
//   - http.BookCollector: Read and filter without rendering (internal/http/config.go)
//
// # Adding a New Output Format
//
//  1. Implement BookExporter in internal/exporters/
//
//     type OPMLExporter struct{}
//
//     func (e *OPMLExporter) Export(books []entities.Book, outputDir string) ([]string, error) {
//         return writeSingle(e, books, outputDir, "annotations.opml")
//     }
//
//     func (e *OPMLExporter) Render(w io.Writer, books []entities.Book) error
//
//  2. Add the format constant to Formats and a case to ForFormat
//
//  3. Add compile-time checks to checks.go
//
// # Adding a New SQLite Binding
//
//  1. Implement store.Opener in internal/store/ and return a Session that
//     keeps every statement on one connection
//
//  2. Register the driver name in store.Drivers and store.Select
//
//  3. Add the binding to the driver matrix in internal/store/store_test.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
