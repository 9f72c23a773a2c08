package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var GConfig *Config

const APIKeyEnv = "GEMINI_API_KEY"

func Init(data []byte) {
	c, err := Load(data)
	if err != nil {
		panic(err)
	}
	GConfig = c
}

// Load parses yaml, applies defaults and environment overrides, then verifies.
func Load(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		c.Gemini.APIKey = key
	}
	if err := c.Verify(); err != nil {
		return nil, err
	}
	return c, nil
}

func Default() *Config {
	return &Config{
		Log: Log{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
		},
		Gemini: Gemini{
			BaseURL:    "https://generativelanguage.googleapis.com",
			APIVersion: "v1beta",
			Timeout:    "6m",
			TextModel:  "gemini-2.5-flash",
			ImageModels: []string{
				"gemini-2.5-flash-image",
				"gemini-3-pro-image-preview",
			},
		},
		Retry: Retry{
			MaxRetries:     3,
			InitialDelayMs: 1000,
		},
		Furnish: Furnish{
			MaxVariants:     5,
			DefaultVariants: 1,
		},
		HTTP: HTTP{
			MaxUploadMB: 25,
		},
	}
}

type Config struct {
	Log           `yaml:"log"`
	Gemini        `yaml:"gemini"`
	Retry         `yaml:"retry"`
	Furnish       `yaml:"furnish"`
	HTTP          `yaml:"http"`
	InvokeHistory `yaml:"invoke_history"`
}

func (c *Config) Verify() error {
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if _, err := time.ParseDuration(c.Gemini.Timeout); err != nil {
		return fmt.Errorf("invalid gemini timeout: %w", err)
	}
	if strings.TrimSpace(c.Gemini.TextModel) == "" {
		return fmt.Errorf("gemini.text_model must not be empty")
	}
	if len(c.Gemini.ImageModels) == 0 {
		return fmt.Errorf("gemini.image_models must contain at least one model")
	}
	for i, m := range c.Gemini.ImageModels {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("gemini.image_models[%d] is empty", i)
		}
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must be non-negative")
	}
	if c.Retry.InitialDelayMs <= 0 {
		return fmt.Errorf("retry.initial_delay_ms must be positive")
	}
	if c.Furnish.MaxVariants < 1 || c.Furnish.MaxVariants > 5 {
		return fmt.Errorf("furnish.max_variants must be between 1 and 5")
	}
	if c.Furnish.DefaultVariants < 1 || c.Furnish.DefaultVariants > c.Furnish.MaxVariants {
		return fmt.Errorf("furnish.default_variants must be between 1 and max_variants")
	}
	if c.HTTP.MaxUploadMB <= 0 {
		return fmt.Errorf("http.max_upload_mb must be positive")
	}
	if c.InvokeHistory.Enabled {
		if c.InvokeHistory.MySQL.Host == "" || c.InvokeHistory.MySQL.Database == "" {
			return fmt.Errorf("invoke_history.mysql host and database are required when enabled")
		}
	}
	return nil
}

type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

type Gemini struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	APIVersion string `yaml:"api_version"`
	Timeout    string `yaml:"timeout"`
	TextModel  string `yaml:"text_model"`
	PreferIPv4 bool   `yaml:"prefer_ipv4"`
	// ImageModels is tried in order, most available first.
	ImageModels []string `yaml:"image_models"`
}

func (g Gemini) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(g.Timeout)
	return d
}

type Retry struct {
	MaxRetries     int `yaml:"max_retries"`
	InitialDelayMs int `yaml:"initial_delay_ms"`
}

type Furnish struct {
	MaxVariants     int `yaml:"max_variants"`
	DefaultVariants int `yaml:"default_variants"`
}

type HTTP struct {
	MaxUploadMB int64 `yaml:"max_upload_mb"`
}

type InvokeHistory struct {
	Enabled bool  `yaml:"enabled"`
	MySQL   MySQL `yaml:"mysql"`
}

type MySQL struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}
