// Package auth holds the process-wide authentication session: the bearer
// token, the current user, and the persistence of both across runs.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/crema-dev/crema/internal/model"
)

const credentialsFile = "credentials.yaml"

// storedCredentials is the on-disk shape of the credentials file. The
// user portion keeps only what the UI needs before rehydration confirms
// the token.
type storedCredentials struct {
	Token string      `yaml:"token"`
	User  *storedUser `yaml:"user,omitempty"`
}

type storedUser struct {
	ID    int64  `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// Keychain persists the bearer token and user to the crema home
// directory. It implements api.TokenSource. Thread-safe.
type Keychain struct {
	path string
	mu   sync.RWMutex
	data storedCredentials
}

// NewKeychain creates a Keychain rooted at dir (the crema home
// directory) and loads any existing credentials. A missing file is not
// an error; it means no one is logged in.
func NewKeychain(dir string) (*Keychain, error) {
	k := &Keychain{path: filepath.Join(dir, credentialsFile)}

	raw, err := os.ReadFile(k.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return k, nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}
	if err := yaml.Unmarshal(raw, &k.data); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}
	return k, nil
}

// Token returns the persisted bearer token, or "" when logged out.
func (k *Keychain) Token() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.data.Token
}

// User returns the persisted user, or nil.
func (k *Keychain) User() *model.User {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.data.User == nil {
		return nil
	}
	return &model.User{ID: k.data.User.ID, Name: k.data.User.Name, Email: k.data.User.Email}
}

// Save persists the token and user. Called on every successful login or
// register.
func (k *Keychain) Save(token string, user model.User) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.data = storedCredentials{
		Token: token,
		User:  &storedUser{ID: user.ID, Name: user.Name, Email: user.Email},
	}

	if err := os.MkdirAll(filepath.Dir(k.path), 0755); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}
	raw, err := yaml.Marshal(k.data)
	if err != nil {
		return fmt.Errorf("marshalling credentials: %w", err)
	}
	// Credentials are secrets; keep them out of other users' reach.
	if err := os.WriteFile(k.path, raw, 0600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}

// Clear removes the persisted credentials. Called on logout and on 401.
func (k *Keychain) Clear() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.data = storedCredentials{}
	if err := os.Remove(k.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing credentials: %w", err)
	}
	return nil
}
