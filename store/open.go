package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/etnz/folio"
)

// Backends.
const (
	BackendDir    = "dir"
	BackendSQLite = "sqlite"
)

// Backends lists the supported backend names.
var Backends = []string{BackendDir, BackendSQLite}

// Open returns the Store of the given backend at path, and a function to
// release it.
//
// For the sqlite backend, path is either the database file (ending with
// ".db") or a folder that holds DefaultDatabase.
func Open(backend, path string) (folio.Store, func() error, error) {
	if path == "" {
		path = DefaultDir
	}
	switch strings.ToLower(backend) {
	case "", BackendDir:
		return NewDir(path), func() error { return nil }, nil
	case BackendSQLite:
		if filepath.Ext(path) != ".db" && !strings.HasPrefix(path, "file:") {
			path = filepath.Join(path, DefaultDatabase)
		}
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q, want one of %s", backend, strings.Join(Backends, ", "))
}
