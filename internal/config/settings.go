package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadSettings.
const (
	EnvAddr        = "BRCALC_ADDR"
	EnvDatabaseURL = "DATABASE_URL"
	EnvLogLevel    = "LOG_LEVEL"
	EnvTaxYear     = "BRCALC_TAX_YEAR"
)

// Settings holds process-level configuration for the CLI and HTTP server.
type Settings struct {
	Addr        string
	DatabaseURL string
	LogLevel    string
	TaxYearPath string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Addr:     ":8080",
		LogLevel: "info",
	}
}

// LoadSettings loads .env files (".env" when none are given) into the
// environment without overriding variables that are already set, then reads
// the settings. Missing .env files are not an error.
func LoadSettings(envFiles ...string) (Settings, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("failed to load env file: %w", err)
	}
	return SettingsFromEnv(os.LookupEnv), nil
}

// SettingsFromEnv builds settings from a lookup function such as os.LookupEnv.
func SettingsFromEnv(lookup func(string) (string, bool)) Settings {
	s := DefaultSettings()
	if v, ok := lookup(EnvAddr); ok && strings.TrimSpace(v) != "" {
		s.Addr = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvDatabaseURL); ok {
		s.DatabaseURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		s.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvTaxYear); ok {
		s.TaxYearPath = strings.TrimSpace(v)
	}
	return s
}
