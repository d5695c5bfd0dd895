package core

import (
	"fmt"
	"strings"

	"github.com/daybook-sh/daybook/pkg/models"
	"github.com/spf13/viper"
)

// ConfigurationManager loads and validates the global .daybookconfig file.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
	ValidateConfig(cfg *models.GlobalConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for reading
// YAML configuration files.
type viperConfigManager struct {
	// basePath is the root directory where .daybookconfig resides.
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// configuration relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultGlobalConfig returns a GlobalConfig populated with sensible defaults.
func DefaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		JournalDir:      "journal",
		DatabaseFile:    "daybook-db.json",
		Epoch:           DefaultEpoch,
		EventLogEnabled: true,
	}
}

// LoadGlobalConfig reads the .daybookconfig file from the base path. If the
// file does not exist, defaults are returned.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	v := viper.New()
	v.SetConfigName(".daybookconfig")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	// Set Viper defaults so missing keys fall back gracefully.
	v.SetDefault("journal.dir", cfg.JournalDir)
	v.SetDefault("journal.database", cfg.DatabaseFile)
	v.SetDefault("journal.items", cfg.ItemsFile)
	v.SetDefault("schedule.epoch", cfg.Epoch)
	v.SetDefault("events.enabled", cfg.EventLogEnabled)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file found, fall back to defaults.
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .daybookconfig: %w", err)
	}

	// Map nested YAML keys to flat GlobalConfig fields.
	cfg.JournalDir = v.GetString("journal.dir")
	cfg.DatabaseFile = v.GetString("journal.database")
	cfg.ItemsFile = v.GetString("journal.items")
	cfg.Epoch = v.GetString("schedule.epoch")
	cfg.EventLogEnabled = v.GetBool("events.enabled")

	return cfg, nil
}

// ValidateConfig checks the configuration for invalid values and returns a
// clear error message identifying every problem found.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.JournalDir == "" {
		errs = append(errs, "journal.dir must not be empty")
	}

	if cfg.DatabaseFile == "" {
		errs = append(errs, "journal.database must not be empty")
	}

	if cfg.Epoch != "" {
		if _, ok := ParseDate(cfg.Epoch); !ok {
			errs = append(errs, fmt.Sprintf("schedule.epoch %q is invalid, must be YYYY-MM-DD", cfg.Epoch))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
