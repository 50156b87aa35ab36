package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"verkskra/internal/core"
)

// File persists the collection as one JSON document on disk, the closest
// analog to the browser local-storage slot the data originally lived in.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads the whole collection. A missing file means a fresh install and
// yields an empty collection; a corrupt file is reported so the caller can
// decide to start empty.
func (f *File) Load(context.Context) ([]core.Project, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	var projects []core.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return projects, nil
}

// Save writes the full collection atomically, temp file plus rename, so a
// crash mid-write never leaves a truncated document behind.
func (f *File) Save(_ context.Context, projects []core.Project) error {
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal projects: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
