package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookmarks-export/internal/applebooks"
)

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // machine-readable error code
}

func respondBadRequest(c *gin.Context, message string) {
	c.IndentedJSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "bad_request"})
}

// respondStoreError maps pipeline errors onto HTTP statuses.
func respondStoreError(c *gin.Context, err error) {
	var (
		notFound *applebooks.NotFoundError
		openErr  *applebooks.OpenError
		queryErr *applebooks.QueryError
	)

	switch {
	case errors.As(err, &notFound):
		c.IndentedJSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "store_not_found"})
	case errors.As(err, &openErr):
		c.IndentedJSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), Code: "store_unavailable"})
	case errors.As(err, &queryErr):
		c.IndentedJSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "schema_mismatch"})
	default:
		c.IndentedJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// parseFilter starts from defaults and applies the highlights, bookmarks,
// notes and colors query parameters. It responds with 400 and returns false
// on invalid input.
func parseFilter(c *gin.Context, defaults applebooks.FilterConfig) (applebooks.FilterConfig, bool) {
	filter := defaults

	toggles := []struct {
		param  string
		target *bool
	}{
		{"highlights", &filter.Highlights},
		{"bookmarks", &filter.Bookmarks},
		{"notes", &filter.Notes},
	}
	for _, toggle := range toggles {
		raw, ok := c.GetQuery(toggle.param)
		if !ok {
			continue
		}
		value, err := strconv.ParseBool(raw)
		if err != nil {
			respondBadRequest(c, "invalid "+toggle.param+": "+raw)
			return filter, false
		}
		*toggle.target = value
	}

	if raw, ok := c.GetQuery("colors"); ok {
		colors, err := applebooks.ParseColors(strings.Split(raw, ","))
		if err != nil {
			respondBadRequest(c, err.Error())
			return filter, false
		}
		filter.Colors = colors
	}

	return filter, true
}
