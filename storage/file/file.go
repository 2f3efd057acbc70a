// Package file persists the counter list as a JSON array on local disk.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexrttr/qt-table-increment/storage"
)

// Gateway stores the counter list in a single JSON file. Saves go through a
// temp file in the same directory followed by a rename, so a crash mid-write
// leaves the previous file untouched.
type Gateway struct {
	path string
}

func NewGateway(path string) *Gateway {
	return &Gateway{path: path}
}

func (g *Gateway) Load(ctx context.Context) ([]int64, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []int64{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", storage.ErrUnavailable, g.path, err)
	}

	var values []int64
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to unmarshal counters from %s: %w", g.path, err)
	}
	if values == nil {
		values = []int64{}
	}

	return values, nil
}

func (g *Gateway) SaveAll(ctx context.Context, values []int64) error {
	if values == nil {
		values = []int64{}
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal counters: %w", err)
	}

	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create %s: %v", storage.ErrUnavailable, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(g.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", storage.ErrUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, g.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", g.path, err)
	}

	return nil
}

func (g *Gateway) Ping(ctx context.Context) error {
	if _, err := os.Stat(filepath.Dir(g.path)); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}
