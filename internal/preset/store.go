package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// document is the on-disk layout of the presets file.
type document struct {
	Presets List `yaml:"presets"`
}

// Load reads presets from disk. Missing files return an empty list.
func Load(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return List{}, nil
		}
		return nil, err
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.Presets == nil {
		return List{}, nil
	}
	return doc.Presets, nil
}

// Save writes presets to disk, creating parent directories as needed.
func Save(path string, list List) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(document{Presets: list})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
