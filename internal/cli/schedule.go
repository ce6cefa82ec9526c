package cli

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/bookmarks-export/internal/config"
	"github.com/mrlokans/bookmarks-export/internal/scheduler"
)

func (a *app) newScheduleCmd() *cobra.Command {
	var runNow bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Re-export on a cron schedule until interrupted",
		Long: `Run a full export on a cron schedule (minute hour day-of-month month day-of-week).
Every run rewrites the output; runs that find no matching annotations leave
existing files untouched.

Examples:
  bookmarks-export schedule --format markdown --output ~/Obsidian/Highlights
  bookmarks-export schedule --schedule "*/30 * * * *" --now`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.request()
			if err != nil {
				return err
			}
			if req.OutputDir, err = filepath.Abs(req.OutputDir); err != nil {
				return fmt.Errorf("failed to get absolute path for output: %w", err)
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			s, err := scheduler.NewExportScheduler(svc, req, a.cfg.Cron, a.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "⏰ %s, writing %s to %s\n", scheduler.Describe(a.cfg.Cron), a.cfg.Format, req.OutputDir)

			if runNow {
				status := s.RunNow(ctx)
				fmt.Fprintf(out, "%s %s\n", statusIcon(status.Status), status.Message)
			}

			if err := s.Start(ctx); err != nil {
				return err
			}
			if next := s.NextRun(); next != nil {
				fmt.Fprintf(out, "⏭  Next run: %s\n", next.Format("2006-01-02 15:04"))
			}

			<-ctx.Done()
			s.Stop()

			if last := s.LastRun(); last != nil {
				a.logger.Info("last export", zap.String("status", last.Status), zap.String("message", last.Message))
			}
			fmt.Fprintln(out, "👋 Scheduler stopped")
			return nil
		},
	}

	cmd.Flags().String("schedule", config.DefaultSchedule, "Cron expression")
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir, "Output directory")
	cmd.Flags().StringP("format", "f", "html", "Output format: html, markdown, json or csv")
	cmd.Flags().BoolVar(&runNow, "now", false, "Run one export immediately before waiting for the schedule")

	return cmd
}

func statusIcon(status string) string {
	switch status {
	case scheduler.StatusSuccess:
		return "✅"
	case scheduler.StatusEmpty:
		return "ℹ️ "
	default:
		return "❌"
	}
}
