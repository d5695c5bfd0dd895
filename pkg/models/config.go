package models

// GlobalConfig holds system-wide settings read from .daybookconfig via Viper.
type GlobalConfig struct {
	// JournalDir is the root directory report files are written under.
	JournalDir string `yaml:"journal_dir" mapstructure:"journal_dir"`
	// DatabaseFile is the history database filename inside JournalDir.
	DatabaseFile string `yaml:"database_file" mapstructure:"database_file"`
	// ItemsFile is an optional YAML overlay of item definitions.
	ItemsFile string `yaml:"items_file,omitempty" mapstructure:"items_file"`
	// Epoch anchors the periodicity ordinals, ISO YYYY-MM-DD.
	Epoch string `yaml:"epoch" mapstructure:"epoch"`
	// EventLogEnabled toggles the JSONL event log.
	EventLogEnabled bool `yaml:"event_log_enabled" mapstructure:"event_log_enabled"`
}
