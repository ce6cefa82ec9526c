package http

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookmarks-export/internal/applebooks"
	"github.com/mrlokans/bookmarks-export/internal/services"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	locator services.StoreLocator
	stores  applebooks.StorePaths
	version string
}

func NewHealthController(locator services.StoreLocator, stores applebooks.StorePaths, version string) *HealthController {
	return &HealthController{
		locator: locator,
		stores:  stores,
		version: version,
	}
}

// Status reports whether both stores can be located. It never opens them.
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.locator == nil {
		checks["stores"] = "not configured"
	} else if paths, err := h.locator.Find(h.stores); err != nil {
		checks["stores"] = "error: " + err.Error()
		status = "unhealthy"
	} else {
		checks[applebooks.StoreAnnotations] = fileCheck(paths.Annotations)
		checks[applebooks.StoreLibrary] = fileCheck(paths.Library)
		if checks[applebooks.StoreAnnotations] != "ok" || checks[applebooks.StoreLibrary] != "ok" {
			status = "unhealthy"
		}
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func fileCheck(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "error: " + err.Error()
	}
	if info.IsDir() {
		return "error: " + path + " is a directory"
	}
	return "ok"
}
