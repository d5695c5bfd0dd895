package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadGlobalConfig_MissingFileReturnsDefaults(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())
	cfg, err := cm.LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig: %v", err)
	}

	if cfg.JournalDir != "journal" {
		t.Errorf("JournalDir = %s", cfg.JournalDir)
	}
	if cfg.DatabaseFile != "daybook-db.json" {
		t.Errorf("DatabaseFile = %s", cfg.DatabaseFile)
	}
	if cfg.Epoch != DefaultEpoch {
		t.Errorf("Epoch = %s", cfg.Epoch)
	}
	if !cfg.EventLogEnabled {
		t.Error("event log should default on")
	}
}

func TestLoadGlobalConfig_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	content := strings.Join([]string{
		"journal:",
		"  dir: notes",
		"  database: history.json",
		"  items: my-items.yaml",
		"schedule:",
		"  epoch: \"2021-06-01\"",
		"events:",
		"  enabled: false",
		"",
	}, "\n")
	if err := os.WriteFile(filepath.Join(dir, ".daybookconfig"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := NewConfigurationManager(dir).LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig: %v", err)
	}

	if cfg.JournalDir != "notes" || cfg.DatabaseFile != "history.json" || cfg.ItemsFile != "my-items.yaml" {
		t.Errorf("journal settings wrong: %+v", cfg)
	}
	if cfg.Epoch != "2021-06-01" {
		t.Errorf("Epoch = %s", cfg.Epoch)
	}
	if cfg.EventLogEnabled {
		t.Error("event log should be disabled")
	}
}

func TestLoadGlobalConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".daybookconfig"), []byte("journal:\n  dir: notes\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := NewConfigurationManager(dir).LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig: %v", err)
	}
	if cfg.JournalDir != "notes" {
		t.Errorf("JournalDir = %s", cfg.JournalDir)
	}
	if cfg.DatabaseFile != "daybook-db.json" || cfg.Epoch != DefaultEpoch {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestValidateConfig(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())

	if err := cm.ValidateConfig(DefaultGlobalConfig()); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if err := cm.ValidateConfig(nil); err == nil {
		t.Error("nil config should fail")
	}

	bad := DefaultGlobalConfig()
	bad.JournalDir = ""
	bad.DatabaseFile = ""
	bad.Epoch = "01/02/2026"
	err := cm.ValidateConfig(bad)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	for _, want := range []string{"journal.dir", "journal.database", "schedule.epoch"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
}
