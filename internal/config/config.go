package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		Backend  string `yaml:"backend"`
		Path     string `yaml:"path"`
		JSONPath string `yaml:"json_path"`
	} `yaml:"database"`
	Student struct {
		Name string `yaml:"name"`
		ID   string `yaml:"id"`
	} `yaml:"student"`
	Anthropic struct {
		APIKey  string `yaml:"api_key"`
		Model   string `yaml:"model"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"anthropic"`
	Timesheet struct {
		Title string `yaml:"title"`
	} `yaml:"timesheet"`
	Timezone string `yaml:"timezone"`
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Database.Backend = BackendSQLite
	cfg.Database.Path = "data/lab-timesheet.db"
	cfg.Database.JSONPath = "data/lab_activities.json"
	cfg.Timezone = "UTC"
	return cfg
}

// Load reads the optional YAML file at path (CONFIG_PATH when path is
// empty) and applies environment overrides on top of it.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = getEnv("CONFIG_PATH", "")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.Telegram.Token = getEnv("TG_TOKEN", cfg.Telegram.Token)
	if chatID := getEnv("TG_CHAT_ID", ""); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TG_CHAT_ID %q: %w", chatID, err)
		}
		cfg.Telegram.ChatID = id
	}
	cfg.Database.Backend = strings.ToLower(getEnv("DB_BACKEND", cfg.Database.Backend))
	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)
	cfg.Database.JSONPath = getEnv("JSON_PATH", cfg.Database.JSONPath)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.Student.Name = getEnv("STUDENT_NAME", cfg.Student.Name)
	cfg.Student.ID = getEnv("STUDENT_ID", cfg.Student.ID)
	cfg.Anthropic.APIKey = getEnv("ANTHROPIC_API_KEY", cfg.Anthropic.APIKey)
	cfg.Anthropic.Model = getEnv("ANTHROPIC_MODEL", cfg.Anthropic.Model)
	cfg.Anthropic.BaseURL = getEnv("ANTHROPIC_BASE_URL", cfg.Anthropic.BaseURL)
	cfg.Timesheet.Title = getEnv("TIMESHEET_TITLE", cfg.Timesheet.Title)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Printf("✅ Config loaded: backend=%s, timezone=%s", cfg.Database.Backend, cfg.Timezone)
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Backend {
	case BackendSQLite, BackendJSON:
	default:
		return fmt.Errorf("unknown DB_BACKEND %q (want %s or %s)", c.Database.Backend, BackendSQLite, BackendJSON)
	}
	return nil
}

// RequireTelegram checks the settings only the bot needs.
func (c *Config) RequireTelegram() error {
	if c.Telegram.Token == "" {
		return errors.New("TG_TOKEN is not set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
