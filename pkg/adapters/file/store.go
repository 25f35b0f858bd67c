// Package file persists a bot identity in a small local file.
//
// The file holds a single "name:id" line, the layout used by the reference
// paint-bot clients, so one file remembers one bot.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/brush/pkg/domain"
)

// DefaultPath is used when no path is configured.
const DefaultPath = "botConfig.cfg"

// IdentityStore implements ports.IdentityStore on a single file.
type IdentityStore struct {
	Path string
}

// New creates a store backed by path (DefaultPath if empty).
func New(path string) *IdentityStore {
	if path == "" {
		path = DefaultPath
	}
	return &IdentityStore{Path: path}
}

// Save writes the identity atomically, replacing whatever the file held.
func (s *IdentityStore) Save(ctx context.Context, identity domain.Identity) error {
	if identity.Name == "" || strings.Contains(identity.Name, ":") {
		return fmt.Errorf("%w: bot name %q cannot be stored", domain.ErrParameter, identity.Name)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure identity directory: %w", err)
	}

	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "tmp-"+filepath.Base(s.Path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.WriteString(identity.Name + ":" + identity.ID); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("failed to rename identity file: %w", err)
	}
	return nil
}

// Load returns the stored identity if it belongs to name.
func (s *IdentityStore) Load(ctx context.Context, name string) (domain.Identity, error) {
	identity, err := s.read()
	if err != nil {
		return domain.Identity{}, err
	}
	if identity.Name != name {
		return domain.Identity{}, domain.ErrIdentityNotFound
	}
	return identity, nil
}

// Delete removes the file if it holds name's identity.
func (s *IdentityStore) Delete(ctx context.Context, name string) error {
	identity, err := s.read()
	if errors.Is(err, domain.ErrIdentityNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if identity.Name != name {
		return nil
	}
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete identity file: %w", err)
	}
	return nil
}

func (s *IdentityStore) read() (domain.Identity, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Identity{}, domain.ErrIdentityNotFound
		}
		return domain.Identity{}, fmt.Errorf("failed to read identity file: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes a "name:id" identity line.
func Parse(content string) (domain.Identity, error) {
	name, id, ok := strings.Cut(strings.TrimSpace(content), ":")
	if !ok || name == "" || id == "" {
		return domain.Identity{}, fmt.Errorf("malformed identity %q, want name:id", content)
	}
	return domain.Identity{Name: name, ID: id}, nil
}
