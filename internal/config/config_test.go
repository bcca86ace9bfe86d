package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFromEnvWithDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing-config.yaml"))
	t.Setenv("JOURNAL_PATH", "/tmp/journal.ndjson")
	t.Setenv("TIMEZONE", "UTC")

	cfg := LoadConfig()

	if cfg.JournalPath != "/tmp/journal.ndjson" {
		t.Fatalf("unexpected journal path: %q", cfg.JournalPath)
	}
	if cfg.DBPath != "./lootlogger.db" {
		t.Fatalf("unexpected db path default: %q", cfg.DBPath)
	}
	if cfg.ItemCatalogPath != "./items.yaml" {
		t.Fatalf("unexpected catalog path default: %q", cfg.ItemCatalogPath)
	}
	if cfg.EnableUI || cfg.IgnoreNmz {
		t.Fatalf("flags should default off: ui=%t nmz=%t", cfg.EnableUI, cfg.IgnoreNmz)
	}
	if cfg.Location == nil || cfg.Location.String() != "UTC" {
		t.Fatalf("unexpected location: %v", cfg.Location)
	}
}

func TestLoadConfigYAMLAndEnvOverride(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
journal_path: "/data/journal.ndjson"
db_path: "/data/loot.db"
ignore_nmz: true
player_name: "alice"
timezone: "UTC"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", cfgPath)
	t.Setenv("DB_PATH", "/override/loot.db")
	t.Setenv("IGNORE_NMZ", "false")

	cfg := LoadConfig()

	if cfg.JournalPath != "/data/journal.ndjson" {
		t.Fatalf("yaml journal path lost: %q", cfg.JournalPath)
	}
	if cfg.DBPath != "/override/loot.db" {
		t.Fatalf("env override ignored: %q", cfg.DBPath)
	}
	if cfg.IgnoreNmz {
		t.Fatal("env bool override ignored")
	}
	if cfg.PlayerName != "alice" {
		t.Fatalf("player name lost: %q", cfg.PlayerName)
	}
}

func TestEnvOverrideBoolForms(t *testing.T) {
	var v bool
	t.Setenv("TEST_FLAG", "TRUE")
	envOverrideBool(&v, "TEST_FLAG")
	if !v {
		t.Fatal("TRUE not accepted")
	}

	v = false
	t.Setenv("TEST_FLAG", "1")
	envOverrideBool(&v, "TEST_FLAG")
	if !v {
		t.Fatal("1 not accepted")
	}

	t.Setenv("TEST_FLAG", "no")
	envOverrideBool(&v, "TEST_FLAG")
	if v {
		t.Fatal("non-true value should clear the flag")
	}
}
