package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store persists the ordered profile list.
type Store interface {
	Load() ([]Profile, error)
	Save(profiles []Profile) error
}

// settingsBlob is the on-disk shape of the durable settings file. The
// profile list is one section of it so future host settings can share
// the same blob without a second file format.
type settingsBlob struct {
	Computers []Profile `yaml:"computers"`
}

// YAMLStore persists profiles as a yaml settings blob with atomic writes.
type YAMLStore struct {
	path string
}

// NewYAMLStore creates a store writing to the given settings file path.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

// Load reads the settings blob. A missing file is an empty registry.
func (s *YAMLStore) Load() ([]Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("profile: read settings: %w", err)
	}
	var blob settingsBlob
	if err := yaml.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("profile: parse settings: %w", err)
	}
	return blob.Computers, nil
}

// Save writes the settings blob atomically: tmp file → rename.
func (s *YAMLStore) Save(profiles []Profile) error {
	data, err := yaml.Marshal(settingsBlob{Computers: profiles})
	if err != nil {
		return fmt.Errorf("profile: marshal settings: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("profile: mkdir settings dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".ehwaz-settings-*")
	if err != nil {
		return fmt.Errorf("profile: create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("profile: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("profile: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("profile: rename settings: %w", err)
	}
	return nil
}
