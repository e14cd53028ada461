package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		fmt.Println("Usage: ezv [root-dir]")
		fmt.Println("\nezv is a TUI (Terminal User Interface) for browsing a filesystem")
		fmt.Println("subtree: sidebar, preview, properties, and a recent-actions strip.")
		fmt.Println("It reads configuration from an .ezvrc file when one exists.")
		fmt.Println("\nExample: ezv ~/projects")
		os.Exit(0)
	}

	config, err := LoadConfig()
	if err != nil {
		fmt.Printf("Error loading .ezvrc: %s\n", err)
		os.Exit(1)
	}

	if len(args) > 0 {
		config.Root = args[0]
	}

	root, err := resolveRoot(config.Root)
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		fmt.Println("\nPlease check:")
		fmt.Println("  - The root directory exists and is readable")
		fmt.Println("  - The [ui] root setting in .ezvrc points at a directory")
		os.Exit(1)
	}
	config.Root = root

	logger, closeLog := newLogger(config.LogFile)
	defer closeLog()

	var sink TelemetrySink
	if cfgSink := config.TelemetrySink; cfgSink == "log" {
		sink = logSink{log: logger}
	}
	telemetry := NewTelemetry(config.TelemetryEnabled, sink)
	telemetry.Event("app.start", map[string]string{"root": root})

	model := NewModel(config, logger, telemetry)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running TUI: %s\n", err)
		os.Exit(1)
	}
}

// resolveRoot picks and validates the browse root: the explicit value if
// given, otherwise the working directory, otherwise home.
func resolveRoot(root string) (string, error) {
	if root == "" {
		if cwd, err := os.Getwd(); err == nil {
			root = cwd
		} else if home, err := os.UserHomeDir(); err == nil {
			root = home
		} else {
			return "", fmt.Errorf("cannot determine a root directory")
		}
	}

	if strings.HasPrefix(root, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			root = filepath.Join(home, strings.TrimPrefix(root, "~"))
		}
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access '%s': %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("'%s' is not a directory", abs)
	}

	return abs, nil
}

// newLogger opens the configured log file, or discards everything when
// logging is off. Failures fall back to the discard logger; logging must
// never keep the app from starting.
func newLogger(path string) (*log.Logger, func()) {
	discard := log.New(io.Discard, "", 0)
	if path == "" {
		return discard, func() {}
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return discard, func() {}
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return discard, func() {}
	}
	return log.New(f, "ezv ", log.LstdFlags), func() { _ = f.Close() }
}
