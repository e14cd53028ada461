package main

import (
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// Defaults when no config file is present
const (
	defaultMaxBytes   = 256 * 1024
	defaultMaxLines   = 200
	defaultMaxEntries = 500
)

// Config holds the startup configuration parsed from .ezvrc
type Config struct {
	Root           string
	ShowHidden     bool
	StatusCapacity int
	MaxEntries     int
	Preview        PreviewLimits
	Markdown       bool

	TelemetryEnabled bool
	TelemetrySink    string

	LogFile string
}

func DefaultConfig() Config {
	return Config{
		StatusCapacity: defaultStatusCapacity,
		MaxEntries:     defaultMaxEntries,
		Preview: PreviewLimits{
			MaxBytes: defaultMaxBytes,
			MaxLines: defaultMaxLines,
		},
		Markdown:      true,
		TelemetrySink: "null",
	}
}

// LoadConfig loads configuration from the first .ezvrc found in the
// standard locations. A missing file is not an error; defaults apply.
func LoadConfig() (Config, error) {
	configPaths := []string{
		".ezvrc",
		filepath.Join(os.Getenv("HOME"), ".ezvrc"),
		"/etc/ezvrc",
	}

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			return loadConfigFile(path)
		}
	}

	return DefaultConfig(), nil
}

func loadConfigFile(path string) (Config, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return DefaultConfig(), err
	}

	config := DefaultConfig()

	ui := cfg.Section("ui")
	config.Root = ui.Key("root").String()
	config.ShowHidden = ui.Key("show_hidden").MustBool(false)
	config.StatusCapacity = ui.Key("status_capacity").MustInt(defaultStatusCapacity)
	config.MaxEntries = ui.Key("max_entries").MustInt(defaultMaxEntries)

	preview := cfg.Section("preview")
	config.Preview.MaxBytes = preview.Key("max_bytes").MustInt64(defaultMaxBytes)
	config.Preview.MaxLines = preview.Key("max_lines").MustInt(defaultMaxLines)
	config.Markdown = preview.Key("markdown").MustBool(true)

	telemetry := cfg.Section("telemetry")
	config.TelemetryEnabled = telemetry.Key("enabled").MustBool(false)
	config.TelemetrySink = telemetry.Key("sink").In("null", []string{"null", "log"})

	config.LogFile = cfg.Section("logging").Key("file").String()

	// Guard against nonsense limits
	if config.Preview.MaxBytes <= 0 {
		config.Preview.MaxBytes = defaultMaxBytes
	}
	if config.Preview.MaxLines <= 0 {
		config.Preview.MaxLines = defaultMaxLines
	}
	if config.StatusCapacity <= 0 {
		config.StatusCapacity = defaultStatusCapacity
	}

	return config, nil
}
