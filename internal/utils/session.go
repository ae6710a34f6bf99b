package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/forja/internal/models"
)

const sessionFileName = "current_session.toml"

// SessionFile stores the active session between commands.
type SessionFile struct {
	Path string
}

// DefaultSessionPath is ~/.config/forja/current_session.toml.
func DefaultSessionPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionFileName), nil
}

// ConfigDir returns ~/.config/forja.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "forja"), nil
}

// Save writes the state through a temp file so a crash never leaves a
// truncated session behind.
func (f SessionFile) Save(state *models.ActiveSession) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), sessionFileName+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(state); err != nil {
		tmp.Close()
		return fmt.Errorf("Failed to encode session state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.Path)
}

func (f SessionFile) Load() (*models.ActiveSession, error) {
	var state models.ActiveSession
	if _, err := toml.DecodeFile(f.Path, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Clear removes the state file. A missing file is not an error.
func (f SessionFile) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f SessionFile) Exists() bool {
	_, err := os.Stat(f.Path)
	return err == nil
}
