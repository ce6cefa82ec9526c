package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/mrlokans/bookmarks-export/internal/config"
	httpserver "github.com/mrlokans/bookmarks-export/internal/http"
)

func (a *app) newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Serve the annotations over HTTP for browsing",
		Long: `Start a local web server that reads the Apple Books stores on every request.

Endpoints:
  GET /            interactive HTML page
  GET /api/books   JSON (query: highlights, bookmarks, notes, colors)
  GET /health      store availability`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := a.filter()
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}

			if a.cfg.LogLevel != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			router := httpserver.NewRouter(httpserver.RouterConfig{
				Collector:     svc,
				Locator:       a.locator,
				Stores:        a.stores(),
				DefaultFilter: filter,
				Version:       a.version,
				Logger:        a.logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "🌐 Preview at http://%s\n", a.cfg.Addr)

			timeout := time.Duration(a.cfg.ShutdownTimeoutInSeconds) * time.Second
			return httpserver.Serve(ctx, router, a.cfg.Addr, timeout, a.logger)
		},
	}

	cmd.Flags().String("addr", config.DefaultPreviewAddr, "Listen address")
	cmd.Flags().Int("shutdown-timeout", 2, "Seconds to wait for in-flight requests on shutdown")

	return cmd
}
