package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter creates the preview router:
//
//	GET /health     store availability
//	GET /api/books  filtered books as JSON
//	GET /           interactive HTML document
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(RequestLogger(logger.Named("http")))
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	health := NewHealthController(cfg.Locator, cfg.Stores, cfg.Version)
	router.GET("/health", health.Status)

	books := NewBooksController(cfg.Collector, cfg.Stores, cfg.DefaultFilter, logger)
	router.GET("/api/books", books.GetBooks)
	router.GET("/", books.Page)

	return router
}
