package config

import (
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	PlayerName string `yaml:"player_name"`

	DBPath          string `yaml:"db_path"`
	JournalPath     string `yaml:"journal_path"`
	ItemCatalogPath string `yaml:"item_catalog_path"`

	EnableUI  bool `yaml:"enable_ui"`
	IgnoreNmz bool `yaml:"ignore_nmz"`

	SlackBotToken   string `yaml:"slack_bot_token"`
	LootChannelID   string `yaml:"loot_channel_id"`
	SummarySchedule string `yaml:"summary_schedule"`
	Timezone        string `yaml:"timezone"`

	Location *time.Location `yaml:"-"` // computed from Timezone, not from YAML
}

func LoadConfig() Config {
	var cfg Config

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.PlayerName, "PLAYER_NAME")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.JournalPath, "JOURNAL_PATH")
	envOverride(&cfg.ItemCatalogPath, "ITEM_CATALOG_PATH")
	envOverrideBool(&cfg.EnableUI, "ENABLE_UI")
	envOverrideBool(&cfg.IgnoreNmz, "IGNORE_NMZ")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.LootChannelID, "LOOT_CHANNEL_ID")
	envOverride(&cfg.SummarySchedule, "SUMMARY_SCHEDULE")
	envOverride(&cfg.Timezone, "TIMEZONE")

	// Defaults
	if cfg.DBPath == "" {
		cfg.DBPath = "./lootlogger.db"
	}
	if cfg.ItemCatalogPath == "" {
		cfg.ItemCatalogPath = "./items.yaml"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}

	// Validate required fields
	if cfg.JournalPath == "" {
		log.Fatalf("Required config 'journal_path' is not set (via config.yaml or env var)")
	}
	if cfg.EnableUI {
		if cfg.SlackBotToken == "" {
			log.Fatalf("slack_bot_token is required when enable_ui is set")
		}
		if cfg.LootChannelID == "" {
			log.Fatalf("loot_channel_id is required when enable_ui is set")
		}
	}

	if strings.EqualFold(cfg.Timezone, "Local") {
		cfg.Location = time.Local
	} else {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Fatalf("invalid timezone '%s': %v", cfg.Timezone, err)
		}
		cfg.Location = loc
	}

	return cfg
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = strings.EqualFold(val, "true") || val == "1"
	}
}
