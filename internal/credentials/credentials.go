// Package credentials keeps the contact source password in the OS keyring.
package credentials

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/zalando/go-keyring"
)

// ErrNotFound is returned when no password is stored for the account.
var ErrNotFound = errors.New(config.ErrPasswordNone)

// Store reads and writes passwords under one keyring service.
type Store struct {
	Service string
}

// New returns a store bound to the application keyring service.
func New() *Store {
	return &Store{Service: config.KeyringService}
}

// Get returns the password of user.
func (s *Store) Get(user string) (string, error) {
	if user == "" {
		return "", errors.New(config.ErrUserRequired)
	}
	pwd, err := keyring.Get(s.Service, user)
	// Callers match on the package sentinel, not the backend one.
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrKeyringRead, err)
	}
	return pwd, nil
}

// Lookup is Get for callers that can live without a password. A missing
// entry or a keyring failure yields "".
func (s *Store) Lookup(user string) string {
	if user == "" {
		return ""
	}
	pwd, err := s.Get(user)
	if err != nil {
		slog.Debug(config.MsgPassFail, config.LogKeyError, err, config.LogKeyComponent, config.CompKeyring)
		return ""
	}
	return pwd
}

// Set stores password for user. Surrounding whitespace is dropped.
func (s *Store) Set(user, password string) error {
	if user == "" {
		return errors.New(config.ErrUserRequired)
	}
	// A pasted password often carries a trailing newline.
	password = strings.TrimSpace(password)
	if password == "" {
		return errors.New(config.ErrPasswordEmpty)
	}
	if err := keyring.Set(s.Service, user, password); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringWrite, err)
	}
	return nil
}

// Delete removes the password of user.
func (s *Store) Delete(user string) error {
	if user == "" {
		return errors.New(config.ErrUserRequired)
	}
	err := keyring.Delete(s.Service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringDelete, err)
	}
	return nil
}
