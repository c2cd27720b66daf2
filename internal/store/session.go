package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	// modernc.org/sqlite driver name is "sqlite".
	_ "modernc.org/sqlite"
)

// RecentFile is a markdown file minibook has opened, newest first in listings.
type RecentFile struct {
	Path     string    `json:"path" yaml:"path"`
	OpenedAt time.Time `json:"openedAt" yaml:"openedAt"`
	Words    int       `json:"words" yaml:"words"`
}

// FileState is the per-file UI state restored when a file is reopened.
type FileState struct {
	Path    string `json:"path" yaml:"path"`
	Profile string `json:"profile,omitempty" yaml:"profile,omitempty"`
	// Selected is the string form of the last selected outline path (e.g. "c0.s1").
	Selected  string    `json:"selected,omitempty" yaml:"selected,omitempty"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

const defaultRecentLimit = 20

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL lets the preview server read while the TUI writes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSession(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSession(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS recent_files (
			path TEXT PRIMARY KEY,
			opened_at_unixms INTEGER NOT NULL,
			words INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_recent_files_opened ON recent_files(opened_at_unixms);`,
		`CREATE TABLE IF NOT EXISTS file_state (
			path TEXT PRIMARY KEY,
			profile TEXT NOT NULL DEFAULT '',
			selected TEXT NOT NULL DEFAULT '',
			updated_at_unixms INTEGER NOT NULL
		);`,
		`INSERT OR IGNORE INTO meta(k, v) VALUES('schema_version', '1');`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// TouchRecent records that path was opened now with the given total word count.
func (s Store) TouchRecent(ctx context.Context, path string, words int) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("touch recent: empty path")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO recent_files(path, opened_at_unixms, words) VALUES(?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET opened_at_unixms = excluded.opened_at_unixms, words = excluded.words`,
		normalizeDocPath(path), time.Now().UTC().UnixMilli(), words)
	return err
}

// RecentFiles lists opened files, newest first. limit <= 0 uses a default.
func (s Store) RecentFiles(ctx context.Context, limit int) ([]RecentFile, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT path, opened_at_unixms, words FROM recent_files
		ORDER BY opened_at_unixms DESC, path ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RecentFile{}
	for rows.Next() {
		var (
			rf   RecentFile
			atMs int64
		)
		if err := rows.Scan(&rf.Path, &atMs, &rf.Words); err != nil {
			return nil, err
		}
		rf.OpenedAt = time.UnixMilli(atMs).UTC()
		out = append(out, rf)
	}
	return out, rows.Err()
}

// LoadFileState returns the saved state for path. ok is false when nothing was saved.
func (s Store) LoadFileState(ctx context.Context, path string) (FileState, bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return FileState{}, false, err
	}
	defer db.Close()

	st := FileState{Path: normalizeDocPath(path)}
	var atMs int64
	err = db.QueryRowContext(ctx, `SELECT profile, selected, updated_at_unixms FROM file_state WHERE path = ?`, st.Path).
		Scan(&st.Profile, &st.Selected, &atMs)
	if errors.Is(err, sql.ErrNoRows) {
		return st, false, nil
	}
	if err != nil {
		return FileState{}, false, err
	}
	st.UpdatedAt = time.UnixMilli(atMs).UTC()
	return st, true, nil
}

func (s Store) SaveFileState(ctx context.Context, st FileState) error {
	if strings.TrimSpace(st.Path) == "" {
		return errors.New("save file state: empty path")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO file_state(path, profile, selected, updated_at_unixms) VALUES(?, ?, ?, ?)`,
		normalizeDocPath(st.Path), strings.TrimSpace(st.Profile), strings.TrimSpace(st.Selected), time.Now().UTC().UnixMilli())
	return err
}

// ForgetFile drops both the recent entry and the saved state for path.
func (s Store) ForgetFile(ctx context.Context, path string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	p := normalizeDocPath(path)
	if _, err := tx.ExecContext(ctx, `DELETE FROM recent_files WHERE path = ?`, p); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM file_state WHERE path = ?`, p); err != nil {
		return err
	}
	return tx.Commit()
}
