// Package keyring keeps the PostgreSQL connection string in the OS keyring so
// it never has to appear on the command line or in a config file.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/spinday/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Credentials addresses one keyring entry under the spinday service
type Credentials struct {
	service string
	user    string
}

// New returns the entry for user, or the default entry when user is empty
func New(user string) *Credentials {
	if strings.TrimSpace(user) == "" {
		user = constants.DefaultKeyringUser
	}
	return &Credentials{service: constants.AppName, user: user}
}

// User is the keyring account name of the entry
func (c *Credentials) User() string { return c.user }

// Get retrieves the stored connection string.
// Returns ErrNotFound if no credentials are stored.
func (c *Credentials) Get() (string, error) {
	connStr, err := keyring.Get(c.service, c.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// Set stores a PostgreSQL connection string. Unlike --config, the stored
// value may carry a password.
func (c *Credentials) Set(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if !looksLikePostgres(connStr) {
		return errors.New("connection string must be a postgres:// URL or a key=value DSN")
	}
	if err := keyring.Set(c.service, c.user, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes the entry
func (c *Credentials) Delete() error {
	err := keyring.Delete(c.service, c.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// Status reports whether the keyring answers and whether the entry exists
type Status struct {
	Available bool
	Stored    bool
}

// Status probes the keyring without returning the secret
func (c *Credentials) Status() Status {
	_, err := keyring.Get(c.service, c.user)
	switch {
	case err == nil:
		return Status{Available: true, Stored: true}
	case errors.Is(err, keyring.ErrNotFound):
		return Status{Available: true}
	default:
		return Status{}
	}
}

func looksLikePostgres(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		return true
	}
	return strings.Contains(connStr, "=")
}
