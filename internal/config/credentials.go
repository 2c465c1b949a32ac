package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/eknkc/pinsearch/internal/store"
)

// ErrInvalidToken indicates a token that does not look like "user:HEXDIGITS".
var ErrInvalidToken = errors.New("invalid token format (expected username:TOKEN)")

var tokenPattern = regexp.MustCompile(`^[^:]+:[0-9A-Z]+$`)

// ValidateToken trims tok and checks it against the API token shape.
func ValidateToken(tok string) (string, error) {
	tok = strings.TrimSpace(tok)
	if !tokenPattern.MatchString(tok) {
		return "", ErrInvalidToken
	}
	return tok, nil
}

// Credentials is the persisted config.json document.
type Credentials struct {
	Token string `json:"token,omitempty"`
	Dirty bool   `json:"dirty,omitempty"`
}

// SetToken validates and stores tok, marking the credentials for persisting.
func (c *Credentials) SetToken(tok string) error {
	tok, err := ValidateToken(tok)
	if err != nil {
		return err
	}
	c.Token = tok
	c.Dirty = true
	return nil
}

// LoadCredentials reads config.json. A missing file yields empty credentials.
func LoadCredentials(path string) (*Credentials, error) {
	var c Credentials
	if _, err := store.ReadJSON(path, &c); err != nil {
		return nil, fmt.Errorf("cannot load credentials: %w", err)
	}
	c.Dirty = false
	return &c, nil
}

// SaveCredentials writes c to path and clears its dirty flag.
func SaveCredentials(path string, c *Credentials) error {
	out := Credentials{Token: c.Token}
	if err := store.WriteJSON(path, out); err != nil {
		return err
	}
	c.Dirty = false
	return nil
}
