package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the service configuration, loaded from the environment.
type Config struct {
	Env          string `mapstructure:"ENV"`
	Port         string `mapstructure:"PORT"`
	RiotAPIKey   string `mapstructure:"RIOT_API_KEY"`
	AllowOrigins string `mapstructure:"ALLOW_ORIGINS"`
}

// String masks the API key for startup logging.
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Env: %s\n", c.Env))
	sb.WriteString(fmt.Sprintf("  Port: %s\n", c.Port))
	if c.RiotAPIKey != "" {
		sb.WriteString("  RiotAPIKey: ********\n")
	} else {
		sb.WriteString("  RiotAPIKey: (empty)\n")
	}
	sb.WriteString(fmt.Sprintf("  AllowOrigins: %s\n", c.AllowOrigins))
	return sb.String()
}

// LoadFromEnv loads configuration from environment variables, reading a
// local .env file first when one exists.
func LoadFromEnv() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.New("failed to load .env")
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	keys := []string{"ENV", "PORT", "RIOT_API_KEY", "ALLOW_ORIGINS"}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	v.SetDefault("PORT", "3000")
	v.SetDefault("ALLOW_ORIGINS", "https://www.komplexaci.cz")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if strings.TrimSpace(cfg.RiotAPIKey) == "" {
		return nil, errors.New("RIOT_API_KEY is not set")
	}
	cfg.RiotAPIKey = strings.TrimSpace(cfg.RiotAPIKey)
	return &cfg, nil
}
