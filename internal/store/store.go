// Package store keeps minibook's user configuration and UI session state under ~/.minibook.
// Document content never lives here; it stays in the markdown file the user works on.
package store

import (
	"os"
	"path/filepath"
)

const sessionFileName = "state.sqlite"

type Store struct {
	Dir string
}

// Default returns a store rooted at ConfigDir.
func Default() (Store, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Store{}, err
	}
	return Store{Dir: dir}, nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sessionFileName)
}

// normalizeDocPath makes session keys stable regardless of how the file was named on the command line.
func normalizeDocPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
