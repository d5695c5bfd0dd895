// Package internal provides the App struct that wires all components of
// Daybook together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/daybook-sh/daybook/internal/cli"
	"github.com/daybook-sh/daybook/internal/core"
	"github.com/daybook-sh/daybook/internal/observability"
	"github.com/daybook-sh/daybook/internal/storage"
)

// App holds all service dependencies for Daybook.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager

	// Item definitions
	Registry *core.Registry

	// Storage layer
	Store storage.HistoryStore
	Files storage.ReportFileManager

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components of Daybook. basePath is the root
// directory where config and journal data live (typically the directory
// containing .daybookconfig).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	globalCfg, err := app.ConfigMgr.LoadGlobalConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := app.ConfigMgr.ValidateConfig(globalCfg); err != nil {
		return nil, err
	}

	// --- Item definitions ---
	itemsPath := ""
	if globalCfg.ItemsFile != "" {
		itemsPath = filepath.Join(basePath, globalCfg.ItemsFile)
	}
	app.Registry, err = core.LoadRegistry(itemsPath)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}

	// --- Storage layer ---
	journalDir := filepath.Join(basePath, globalCfg.JournalDir)
	app.Store = storage.NewHistoryStore(filepath.Join(journalDir, globalCfg.DatabaseFile))
	app.Files = storage.NewReportFileManager(journalDir)

	// --- Observability ---
	if globalCfg.EventLogEnabled {
		eventLogPath := filepath.Join(basePath, ".daybook_events.jsonl")
		app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
		if err != nil {
			// Non-fatal: run without event logging if the log can't be created.
			app.EventLog = nil
		}
	}
	if app.EventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = globalCfg
	cli.Registry = app.Registry
	cli.Store = app.Store
	cli.Files = app.Files
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the base path for the Daybook data directory.
// It checks the DAYBOOK_HOME env var, then walks up from the current
// directory looking for a .daybookconfig, falling back to the cwd.
func ResolveBasePath() string {
	if home := os.Getenv("DAYBOOK_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".daybookconfig")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}
