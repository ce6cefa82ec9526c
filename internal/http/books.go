package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookmarks-export/internal/applebooks"
	"github.com/mrlokans/bookmarks-export/internal/entities"
	"github.com/mrlokans/bookmarks-export/internal/exporters"
)

type BooksController struct {
	collector BookCollector
	stores    applebooks.StorePaths
	defaults  applebooks.FilterConfig
	page      exporters.Renderer
	logger    *zap.Logger
}

func NewBooksController(collector BookCollector, stores applebooks.StorePaths, defaults applebooks.FilterConfig, logger *zap.Logger) *BooksController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BooksController{
		collector: collector,
		stores:    stores,
		defaults:  defaults,
		page:      exporters.NewHTMLExporter(),
		logger:    logger,
	}
}

// collect reads the stores on every request so the preview reflects the
// current library. It writes the error response itself and returns false.
func (controller *BooksController) collect(c *gin.Context) ([]entities.Book, bool) {
	filter, ok := parseFilter(c, controller.defaults)
	if !ok {
		return nil, false
	}

	books, result, err := controller.collector.Collect(c.Request.Context(), controller.stores, filter)
	if err != nil {
		controller.logger.Error("failed to read annotations", zap.Error(err))
		respondStoreError(c, err)
		return nil, false
	}

	controller.logger.Debug("annotations read",
		zap.Int("books_found", result.BooksFound),
		zap.Int("annotations_found", result.AnnotationsFound),
		zap.Int("books_shown", result.BooksExported))

	if books == nil {
		books = []entities.Book{}
	}
	return books, true
}

// GetBooks returns the filtered books as JSON.
func (controller *BooksController) GetBooks(c *gin.Context) {
	books, ok := controller.collect(c)
	if !ok {
		return
	}

	annotations := 0
	for _, book := range books {
		annotations += len(book.Annotations)
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"books":            books,
		"count":            len(books),
		"annotation_count": annotations,
	})
}

// Page renders the same document the html export writes to disk.
func (controller *BooksController) Page(c *gin.Context) {
	books, ok := controller.collect(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := controller.page.Render(c.Writer, books); err != nil {
		controller.logger.Error("failed to render page", zap.Error(err))
		_ = c.Error(err)
	}
}
