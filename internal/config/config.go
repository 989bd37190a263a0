package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const DefaultEnvFile = ".env"

// Config holds everything the day counter binaries read from the environment.
type Config struct {
	Port          string `env:"DAYCOUNTER_PORT" envDefault:":8080"`
	Backend       string `env:"DAYCOUNTER_BACKEND" envDefault:"file"`
	StorePath     string `env:"DAYCOUNTER_STORE_PATH"`
	PickerDismiss string `env:"DAYCOUNTER_PICKER_DISMISS" envDefault:"auto"`
	Timezone      string `env:"DAYCOUNTER_TIMEZONE"`

	PocketBase PocketBase
}

// PocketBase holds the superuser credentials used by the pocketbase backend.
type PocketBase struct {
	URL      string `env:"PB_URL"`
	Email    string `env:"PB_EMAIL"`
	Password string `env:"PB_PASSWORD"`
}

// Load reads envFile into the process environment (a missing file is fine)
// and parses the result into a Config.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s file: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Location resolves Timezone, falling back to the local zone when unset.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate checks that the PocketBase credentials are complete.
func (p PocketBase) Validate() error {
	if p.URL == "" || p.Email == "" || p.Password == "" {
		return fmt.Errorf("missing required environment variables: PB_URL, PB_EMAIL, PB_PASSWORD")
	}
	return nil
}
