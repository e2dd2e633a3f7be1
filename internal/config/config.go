// /internal/config/config.go
package config

import (
	"fmt"
	"log"
	"time"

	"babble-bot/internal/storage"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required,notEmpty"`

	LearnedWordsPath string `env:"LEARNED_WORDS_PATH" envDefault:"learned_words.json"`
	ForeignWordsPath string `env:"FOREIGN_WORDS_PATH" envDefault:"german_words.json"`
	HistoryPath      string `env:"HISTORY_PATH" envDefault:"messageHistory.json"`
	BotSourcePath    string `env:"BOT_SOURCE_PATH" envDefault:"cmd/discord/main.go"`

	Cooldown         time.Duration `env:"COOLDOWN" envDefault:"1s"`
	BabbleChance     float64       `env:"BABBLE_CHANCE" envDefault:"0.5"`
	HistoryRetention int           `env:"HISTORY_RETENTION" envDefault:"0"`

	TranslateTarget   string        `env:"TRANSLATE_TARGET" envDefault:"en"`
	TranslateEndpoint string        `env:"TRANSLATE_ENDPOINT" envDefault:"https://translate.googleapis.com/translate_a/single"`
	TranslateTimeout  time.Duration `env:"TRANSLATE_TIMEOUT" envDefault:"10s"`

	BackupInterval time.Duration `env:"BACKUP_INTERVAL" envDefault:"0s"`
	BackupKeep     int           `env:"BACKUP_KEEP" envDefault:"3"`

	MetricsAddr string `env:"METRICS_ADDR"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// New is Load for process entry points: any error is fatal.
func New() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal("[ERR] ", err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch {
	case c.BabbleChance < 0 || c.BabbleChance > 1:
		return fmt.Errorf("BABBLE_CHANCE must be between 0 and 1, got %v", c.BabbleChance)
	case c.Cooldown < 0:
		return fmt.Errorf("COOLDOWN must not be negative, got %v", c.Cooldown)
	case c.HistoryRetention < 0:
		return fmt.Errorf("HISTORY_RETENTION must not be negative, got %d", c.HistoryRetention)
	case c.BackupInterval < 0:
		return fmt.Errorf("BACKUP_INTERVAL must not be negative, got %v", c.BackupInterval)
	case c.BackupInterval > 0 && c.BackupKeep < 1:
		return fmt.Errorf("BACKUP_KEEP must be at least 1 when backups are enabled, got %d", c.BackupKeep)
	}
	return nil
}

// Paths returns the store file locations.
func (c *Config) Paths() storage.Paths {
	return storage.Paths{
		LearnedWords: c.LearnedWordsPath,
		ForeignWords: c.ForeignWordsPath,
		History:      c.HistoryPath,
	}
}
