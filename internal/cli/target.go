package cli

import (
	"errors"

	"github.com/julianstephens/spinday/internal/config"
	"github.com/julianstephens/spinday/internal/keyring"
	"github.com/julianstephens/spinday/internal/logger"
	"github.com/julianstephens/spinday/internal/storage"
)

// Target is the resolved storage location
type Target struct {
	Value  string
	Source string // flag, env, keyring or default
	// Trusted targets come from a secret store and may embed a password
	Trusted bool
}

// ResolveTarget picks the storage target. An explicit --config wins, then
// SPINDAY_CONFIG, then SPINDAY_DB_CONNECTION, then the keyring, then the
// flag's default.
func ResolveTarget(flagValue string, flagSet bool, env config.Env, creds *keyring.Credentials) Target {
	if flagSet {
		return Target{Value: flagValue, Source: "flag"}
	}
	if env.ConfigPath != "" {
		return Target{Value: env.ConfigPath, Source: "env"}
	}
	if env.DBConnection != "" {
		return Target{Value: env.DBConnection, Source: "env", Trusted: true}
	}
	if creds != nil {
		connStr, err := creds.Get()
		switch {
		case err == nil:
			return Target{Value: connStr, Source: "keyring", Trusted: true}
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("Keyring lookup failed", "error", err)
		}
	}
	return Target{Value: flagValue, Source: "default"}
}

// Open builds the provider for the target without loading it
func (t Target) Open() (storage.Provider, error) {
	if t.Trusted {
		return storage.OpenTrusted(t.Value)
	}
	if config.IsPostgresTarget(t.Value) {
		return storage.Open(t.Value)
	}
	path, err := config.ExpandPath(t.Value)
	if err != nil {
		return nil, err
	}
	return storage.Open(path)
}
