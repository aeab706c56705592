// Package project reads a corec.toml manifest describing a multi-file
// build: the project name and the list of source files to compile
// (spec.md §6's CLI project mode, grounded in the teacher's own
// internal/project manifest reader and its use of BurntSushi/toml).
package project

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest is the decoded form of a corec.toml file.
type Manifest struct {
	Name    string   `toml:"name"`
	Sources []string `toml:"sources"`
}

// Load parses the manifest at path and resolves every source entry
// relative to the manifest's own directory.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("project: %s: %w", path, err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("project: %s: missing required \"name\"", path)
	}
	if len(m.Sources) == 0 {
		return nil, fmt.Errorf("project: %s: no sources listed", path)
	}
	dir := filepath.Dir(path)
	for i, s := range m.Sources {
		if !filepath.IsAbs(s) {
			m.Sources[i] = filepath.Join(dir, s)
		}
	}
	return &m, nil
}
