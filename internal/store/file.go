package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pfdash/finance-dashboard/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileStore keeps one YAML document per profile in a directory
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) (string, error) {
	u, err := parseID(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, u.String()+".yaml"), nil
}

// Load reads the profile with the given id
func (s *FileStore) Load(ctx context.Context, id string) (*domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(path)
}

func (s *FileStore) read(path string) (*domain.Profile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	var p domain.Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", filepath.Base(path), err)
	}
	return &p, nil
}

// write replaces the file atomically through a temp file in the same directory.
func (s *FileStore) write(path string, p *domain.Profile) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, ".profile-*")
	if err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// Save writes the whole profile, assigning an id when it has none
func (s *FileStore) Save(ctx context.Context, p *domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	prepareNew(p)
	path, err := s.path(p.ID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(path, p)
}

// Update applies a named partial update to a stored profile
func (s *FileStore) Update(ctx context.Context, id string, u domain.ProfileUpdate, check CheckFunc) (*domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if u.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.read(path)
	if err != nil {
		return nil, err
	}
	updated, err := applyUpdate(*current, u, check)
	if err != nil {
		return nil, err
	}
	if err := s.write(path, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a stored profile
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
