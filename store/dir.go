package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/folio"
)

// DefaultDir is the folder used when none is configured.
const DefaultDir = ".spt"

// Dir stores each key as "<key>.json" in a folder.
//
// The folder is created on the first Save.
type Dir struct {
	path string
}

var _ folio.Store = (*Dir)(nil)

// NewDir returns a Dir rooted at path.
func NewDir(path string) *Dir { return &Dir{path: path} }

// Path returns the folder of the store.
func (d *Dir) Path() string { return d.path }

func (d *Dir) file(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(d.path, key+".json"), nil
}

func (d *Dir) Load(key string) ([]byte, bool, error) {
	name, err := d.file(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cannot read %q: %w", name, err)
	}
	return data, true, nil
}

// Save writes value to a temporary file, then renames it over the key's
// file, so that a crash never leaves a truncated value behind.
func (d *Dir) Save(key string, value []byte) error {
	name, err := d.file(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return fmt.Errorf("cannot create store folder: %w", err)
	}
	tmp, err := os.CreateTemp(d.path, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create %q: %w", name, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write %q: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		return fmt.Errorf("cannot write %q: %w", name, err)
	}
	return nil
}

func (d *Dir) Remove(key string) error {
	name, err := d.file(key)
	if err != nil {
		return err
	}
	if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot remove %q: %w", name, err)
	}
	return nil
}
