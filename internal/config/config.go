package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings. An empty OpenAIAPIKey is a valid
// configuration: the assistant then runs in fallback-only mode.
type Config struct {
	Port          int    `env:"PORT" envDefault:"3000"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1/"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	PrefsDB       string `env:"PREFS_DB" envDefault:"chat-preferences.db"`
	StaticDir     string `env:"STATIC_DIR" envDefault:"web"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
