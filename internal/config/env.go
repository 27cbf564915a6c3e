package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env holds configuration read from the process environment. Flags given on
// the command line take precedence over these values.
type Env struct {
	ConfigPath    string `env:"SPINDAY_CONFIG"`
	DBConnection  string `env:"SPINDAY_DB_CONNECTION"`
	Debug         bool   `env:"SPINDAY_DEBUG" envDefault:"false"`
	DefaultsFile  string `env:"SPINDAY_DEFAULTS_FILE"`
	TrayConfigDir string `env:"SPINDAY_TRAY_CONFIG_DIR"`
	KeyringUser   string `env:"SPINDAY_KEYRING_USER"`
}

// LoadEnv parses the SPINDAY_* environment variables.
func LoadEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ExpandPath resolves a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// IsPostgresTarget reports whether target is a PostgreSQL connection URL.
func IsPostgresTarget(target string) bool {
	return strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://")
}

// ConfigDir returns the directory holding logs and backups for a storage target.
// PostgreSQL URLs and key=value DSNs fall back to the user config directory.
func ConfigDir(target string) string {
	if IsPostgresTarget(target) || strings.Contains(target, "=") {
		if dir, err := os.UserConfigDir(); err == nil {
			return filepath.Join(dir, "spinday")
		}
		return "."
	}
	return filepath.Dir(target)
}
