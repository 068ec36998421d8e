package app

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/m3rciful/liftbot/core/config"
	coredatabase "github.com/m3rciful/liftbot/core/database"
)

// BotConfig holds liftbot-specific knobs.
type BotConfig struct {
	// LoginAttempts bounds failed password attempts before deregistration;
	// 0 selects the default of 3.
	LoginAttempts int `yaml:"login_attempts" envconfig:"BOT_LOGIN_ATTEMPTS"`
}

// Config aggregates core, database and bot configuration.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Bot      BotConfig           `yaml:"bot"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// Load reads the YAML config, applies env overrides and validates the core
// section.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if cfg.Bot.LoginAttempts < 0 {
		return nil, fmt.Errorf("bot.login_attempts must be >= 0")
	}
	return &cfg, nil
}
