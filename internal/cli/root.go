package cli

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mrlokans/bookmarks-export/internal/applebooks"
	"github.com/mrlokans/bookmarks-export/internal/config"
	"github.com/mrlokans/bookmarks-export/internal/logging"
	"github.com/mrlokans/bookmarks-export/internal/services"
	"github.com/mrlokans/bookmarks-export/internal/store"
)

// flagKeys maps command line flags to configuration keys. Flags are bound
// when a command runs so subcommands can share a key.
var flagKeys = map[string]string{
	"annotations-db":   config.KeyAnnotationsDB,
	"library-db":       config.KeyLibraryDB,
	"driver":           config.KeyStoreDriver,
	"log-level":        config.KeyLogLevel,
	"highlights":       config.KeyHighlights,
	"bookmarks":        config.KeyBookmarks,
	"notes":            config.KeyNotes,
	"colors":           config.KeyColors,
	"output":           config.KeyOutputDir,
	"format":           config.KeyFormat,
	"schedule":         config.KeySchedule,
	"addr":             config.KeyPreviewAddr,
	"shutdown-timeout": config.KeyShutdownTimeout,
}

// app carries state shared by every subcommand of one invocation.
type app struct {
	version string
	v       *viper.Viper
	cfgFile string

	cfg    *config.Config
	logger *zap.Logger

	// locator is replaced in tests
	locator services.StoreLocator
}

// NewRootCmd creates the bookmarks-export command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{
		version: version,
		v:       config.NewViper(),
		locator: applebooks.Locator{},
	}
	return a.rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bookmarks-export",
		Short: "Export Apple Books highlights, bookmarks and notes",
		Long: `Read the Apple Books annotation and library stores (read-only) and export
highlights, bookmarks and notes as HTML, Markdown, JSON or CSV.

` + storesHelp(),
		Version:           a.version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "Path to configuration file (yaml, json or toml)")
	flags.String("annotations-db", "", "Path to AEAnnotation*.sqlite (auto-detected if not specified)")
	flags.String("library-db", "", "Path to BKLibrary*.sqlite (auto-detected if not specified)")
	flags.String("driver", a.v.GetString(config.KeyStoreDriver), "SQLite binding: auto, sqlite3, modernc or gorm")
	flags.String("log-level", a.v.GetString(config.KeyLogLevel), "Log level (debug, info, warn, error)")
	flags.Bool("highlights", true, "Include highlights")
	flags.Bool("bookmarks", true, "Include bookmarks")
	flags.Bool("notes", true, "Include notes")
	flags.StringSlice("colors", nil, "Only include these colors (yellow, green, blue, pink, purple, underline)")

	root.AddCommand(a.newExportCmd())
	root.AddCommand(a.newStoresCmd())
	root.AddCommand(a.newListCmd())
	root.AddCommand(a.newScheduleCmd())
	root.AddCommand(a.newPreviewCmd())

	return root
}

// setup binds flags, reads the optional config file, loads the
// configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = a.v.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return bindErr
	}

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return fmt.Errorf("config file not found: %s", a.cfgFile)
			}
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger

	return nil
}

func (a *app) stores() applebooks.StorePaths {
	return applebooks.StorePaths{
		Annotations: a.cfg.AnnotationsDB,
		Library:     a.cfg.LibraryDB,
	}
}

func (a *app) filter() (applebooks.FilterConfig, error) {
	colors, err := applebooks.ParseColors(a.cfg.Colors)
	if err != nil {
		return applebooks.FilterConfig{}, err
	}
	filter := applebooks.FilterConfig{
		Highlights: a.cfg.Highlights,
		Bookmarks:  a.cfg.Bookmarks,
		Notes:      a.cfg.Notes,
		Colors:     colors,
	}
	if !filter.Highlights && !filter.Bookmarks && !filter.Notes {
		return filter, errors.New("every annotation type is disabled; enable at least one of --highlights, --bookmarks, --notes")
	}
	return filter, nil
}

func (a *app) service() (*services.ExportService, error) {
	opener, err := store.Select(a.cfg.Driver)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("store driver selected", zap.String("requested", a.cfg.Driver), zap.String("driver", opener.Name()))
	return services.NewExportService(opener, a.locator), nil
}

// request assembles an export request from the loaded configuration.
func (a *app) request() (services.ExportRequest, error) {
	filter, err := a.filter()
	if err != nil {
		return services.ExportRequest{}, err
	}
	return services.ExportRequest{
		Stores:    a.stores(),
		Filter:    filter,
		Format:    a.cfg.Format,
		OutputDir: a.cfg.OutputDir,
	}, nil
}

func storesHelp() string {
	if runtime.GOOS == "darwin" {
		return `On macOS, the Apple Books database paths are automatically detected:
  - Annotations: ~/Library/Containers/com.apple.iBooksX/Data/Documents/AEAnnotation/
  - Books: ~/Library/Containers/com.apple.iBooksX/Data/Documents/BKLibrary/`
	}
	return `NOTE: Apple Books is only available on macOS. You can still export from
copied database files using the --annotations-db and --library-db flags.`
}
