// Package persistence implements the persisted-state half of spec.md §6:
// a sqlite-backed command-history/mode-transition/tray-loss event log
// (SPEC_FULL.md §B's durable-metadata supplement), and a blake2b-checksummed
// JSON layout snapshot written before a restart and verified before restore.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/bnema/wm/internal/logging"
	"github.com/bnema/wm/internal/wmerr"
)

// Store owns the sqlite-backed metadata database. It is safe to share
// across the single event-loop goroutine and any background writer the
// loop package spawns for it, since database/sql pools its own connections.
type Store struct {
	db  *sql.DB
	log *logging.Logger
}

// Open opens (creating if needed) the sqlite database at path, applying
// WAL mode and running embedded migrations, mirroring the teacher's own
// internal/db.InitDB pragma set.
func Open(path string, log *logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.Nop()
	}
	if path == "" {
		return nil, wmerr.New(wmerr.KindResourceUnavailable, "persistence: empty database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, wmerr.Wrap(wmerr.KindResourceUnavailable, err, "persistence: create database directory")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, wmerr.Wrap(wmerr.KindResourceUnavailable, err, "persistence: open %s", path)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, wmerr.Wrap(wmerr.KindResourceUnavailable, err, "persistence: ping %s", path)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, wmerr.Wrap(wmerr.KindResourceUnavailable, err, "persistence: set pragma %q", p)
		}
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, wmerr.Wrap(wmerr.KindResourceUnavailable, err, "persistence: migrate %s", path)
	}

	s := &Store{db: db, log: log.With("persistence")}
	s.log.Infof("opened metadata store at %s", path)
	return s, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// RecordCommand appends one command-history row, kept apart from the flat
// JSON layout snapshot. cmd/wm does not call it, so run_command batches
// are not recorded.
func (s *Store) RecordCommand(ctx context.Context, text string, success bool, errMsg string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO command_history (command_text, success, error) VALUES (?, ?, ?)",
		text, boolToInt(success), nullable(errMsg))
	if err != nil {
		return fmt.Errorf("persistence: record command: %w", err)
	}
	return nil
}

// RecordModeTransition appends one binding-mode change row.
func (s *Store) RecordModeTransition(ctx context.Context, from, to string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO mode_transitions (from_mode, to_mode) VALUES (?, ?)", from, to)
	if err != nil {
		return fmt.Errorf("persistence: record mode transition: %w", err)
	}
	return nil
}

// RecordTraySelectionLoss appends one tray-selection-loss row (spec.md §5:
// "lost if another tray takes it ... detected via selection-clear").
func (s *Store) RecordTraySelectionLoss(ctx context.Context, outputName string, screenIndex, generation int) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tray_selection_events (output_name, screen_index, generation) VALUES (?, ?, ?)",
		outputName, screenIndex, generation)
	if err != nil {
		return fmt.Errorf("persistence: record tray selection loss: %w", err)
	}
	return nil
}

// CommandHistoryEntry is one row read back from command_history.
type CommandHistoryEntry struct {
	ID          int64
	CommandText string
	Success     bool
	Error       string
}

// RecentCommands returns the most recent limit command-history rows,
// newest first.
func (s *Store) RecentCommands(ctx context.Context, limit int) ([]CommandHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, command_text, success, COALESCE(error, '') FROM command_history ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("persistence: query command history: %w", err)
	}
	defer rows.Close()

	var out []CommandHistoryEntry
	for rows.Next() {
		var e CommandHistoryEntry
		var success int
		if err := rows.Scan(&e.ID, &e.CommandText, &success, &e.Error); err != nil {
			return nil, fmt.Errorf("persistence: scan command history row: %w", err)
		}
		e.Success = success != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
