package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/mrlokans/bookmarks-export/internal/exporters"
	"github.com/mrlokans/bookmarks-export/internal/store"
)

const envPrefix = "BOOKMARKS_EXPORT"

type (
	Config struct {
		Stores
		Export
		Filter
		Schedule
		Preview
		Global
	}

	Stores struct {
		AnnotationsDB string // Empty means auto-detect
		LibraryDB     string // Empty means auto-detect
		Driver        string // auto, sqlite3, modernc or gorm
	}
	Export struct {
		OutputDir string
		Format    string
	}
	Filter struct {
		Highlights bool
		Bookmarks  bool
		Notes      bool
		Colors     []string // Empty means every color
	}
	Schedule struct {
		Cron string // Cron format: "0 * * * *" = hourly
	}
	Preview struct {
		Addr string
	}
	Global struct {
		LogLevel                 string
		ShutdownTimeoutInSeconds int
	}
)

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	v := viper.New()
	ApplyDefaults(v)
	return v
}

// ApplyDefaults configures defaults and env bindings on the provided viper
// instance. Every key can be overridden with BOOKMARKS_EXPORT_<KEY>.
func ApplyDefaults(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAnnotationsDB, "")
	v.SetDefault(KeyLibraryDB, "")
	v.SetDefault(KeyStoreDriver, store.DriverAuto)
	v.SetDefault(KeyOutputDir, DefaultOutputDir)
	v.SetDefault(KeyFormat, string(exporters.FormatHTML))
	v.SetDefault(KeyHighlights, true)
	v.SetDefault(KeyBookmarks, true)
	v.SetDefault(KeyNotes, true)
	v.SetDefault(KeyColors, "")
	v.SetDefault(KeySchedule, DefaultSchedule)
	v.SetDefault(KeyPreviewAddr, DefaultPreviewAddr)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyShutdownTimeout, 2)
}

// Load reads the configuration out of v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Stores: Stores{
			AnnotationsDB: strings.TrimSpace(v.GetString(KeyAnnotationsDB)),
			LibraryDB:     strings.TrimSpace(v.GetString(KeyLibraryDB)),
			Driver:        strings.ToLower(strings.TrimSpace(v.GetString(KeyStoreDriver))),
		},
		Export: Export{
			OutputDir: v.GetString(KeyOutputDir),
			Format:    strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat))),
		},
		Filter: Filter{
			Highlights: v.GetBool(KeyHighlights),
			Bookmarks:  v.GetBool(KeyBookmarks),
			Notes:      v.GetBool(KeyNotes),
			Colors:     splitList(v.GetStringSlice(KeyColors)),
		},
		Schedule: Schedule{
			Cron: strings.TrimSpace(v.GetString(KeySchedule)),
		},
		Preview: Preview{
			Addr: v.GetString(KeyPreviewAddr),
		},
		Global: Global{
			LogLevel:                 v.GetString(KeyLogLevel),
			ShutdownTimeoutInSeconds: v.GetInt(KeyShutdownTimeout),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Driver == "" {
		c.Driver = store.DriverAuto
	}
	if !slices.Contains(store.Drivers, c.Driver) {
		return fmt.Errorf("%s must be one of %s, got %q", KeyStoreDriver, strings.Join(store.Drivers, ", "), c.Driver)
	}
	if _, err := exporters.ForFormat(c.Format); err != nil {
		return fmt.Errorf("%s: %w", KeyFormat, err)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("%s is required", KeyOutputDir)
	}
	if c.ShutdownTimeoutInSeconds < 0 {
		return fmt.Errorf("%s must not be negative", KeyShutdownTimeout)
	}
	return nil
}

// splitList accepts both repeated values and comma separated strings, the
// latter being how lists arrive from the environment.
func splitList(values []string) []string {
	var result []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}
