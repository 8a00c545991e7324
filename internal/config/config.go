package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the bot reads from the environment.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required,notEmpty"`
	Port         int    `env:"PORT" envDefault:"3000"`
	Prefix       string `env:"COMMAND_PREFIX" envDefault:"w!"`
	BotName      string `env:"BOT_NAME" envDefault:"WebHyperTD2"`

	InitSlashCommands bool   `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	SlashGuildID      string `env:"SLASH_GUILD_ID"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}
	return Parse()
}

// Parse parses the current process environment without touching .env.
func Parse() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Prefix == "" {
		return nil, fmt.Errorf("parse config: COMMAND_PREFIX must not be empty")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("parse config: PORT %d out of range", cfg.Port)
	}
	return &cfg, nil
}

// Addr is the listen address of the liveness server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
