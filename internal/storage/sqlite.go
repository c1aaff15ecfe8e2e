// Package storage provides SQLite-based persistence for the script journal
// and save slots. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNoSave is returned by LoadGame for an empty slot.
var ErrNoSave = errors.New("storage: no save in slot")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScriptRun is one journaled script execution.
type ScriptRun struct {
	ID        int64
	SessionID string
	Script    uint64 // Runtime handle, unique within a session
	Name      string
	StartedAt time.Time
	EndedAt   time.Time // Zero while the script is still waiting
}

// Done reports whether the run has completed.
func (r ScriptRun) Done() bool {
	return !r.EndedAt.IsZero()
}

// EventEntry is one raised event.
type EventEntry struct {
	ID          int64
	SessionID   string
	Event       string
	Subscribers int
	CreatedAt   time.Time
}

// SaveData is the persisted part of a session. Running scripts are not saved;
// rooms restart their init scripts on load.
type SaveData struct {
	Slot      string
	Room      string
	X, Y      int
	Direction string
	Unlocked  []string
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS script_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			script_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_script_runs_session ON script_runs(session_id, script_id);

		CREATE TABLE IF NOT EXISTS event_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			event TEXT NOT NULL,
			subscribers INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_event_log_session ON event_log(session_id);

		CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			room TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			direction TEXT NOT NULL,
			unlocked TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordScriptStart journals a started script and returns the row ID.
func (s *Store) RecordScriptStart(sessionID string, script uint64, name string) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO script_runs (session_id, script_id, name) VALUES (?, ?, ?)",
		sessionID, int64(script), name,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record script start: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecordScriptEnd marks the open run of script in sessionID as completed.
func (s *Store) RecordScriptEnd(sessionID string, script uint64) error {
	_, err := s.db.Exec(
		`UPDATE script_runs SET ended_at = CURRENT_TIMESTAMP
		 WHERE session_id = ? AND script_id = ? AND ended_at IS NULL`,
		sessionID, int64(script),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record script end: %w", err)
	}
	return nil
}

// RecordEvent journals a raised event and how many subscribers it resumed.
func (s *Store) RecordEvent(sessionID, event string, subscribers int) error {
	_, err := s.db.Exec(
		"INSERT INTO event_log (session_id, event, subscribers) VALUES (?, ?, ?)",
		sessionID, event, subscribers,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record event: %w", err)
	}
	return nil
}

// RecentRuns returns the latest script runs, newest first.
func (s *Store) RecentRuns(limit int) ([]ScriptRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, script_id, name, started_at, ended_at
		 FROM script_runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query script runs: %w", err)
	}
	defer rows.Close()

	var runs []ScriptRun
	for rows.Next() {
		var r ScriptRun
		var script int64
		var startedAt, endedAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &script, &r.Name, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Script = uint64(script)
		r.StartedAt = parseTime(startedAt)
		r.EndedAt = parseTime(endedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RecentEvents returns the latest raised events, newest first.
func (s *Store) RecentEvents(limit int) ([]EventEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, event, subscribers, created_at
		 FROM event_log
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var entries []EventEntry
	for rows.Next() {
		var e EventEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Event, &e.Subscribers, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// SaveGame writes data into its slot, replacing any previous save.
func (s *Store) SaveGame(data SaveData) error {
	if data.Slot == "" {
		return fmt.Errorf("storage: empty save slot")
	}
	_, err := s.db.Exec(
		`INSERT INTO saves (slot, room, x, y, direction, unlocked, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
			room = excluded.room,
			x = excluded.x,
			y = excluded.y,
			direction = excluded.direction,
			unlocked = excluded.unlocked,
			updated_at = excluded.updated_at`,
		data.Slot, data.Room, data.X, data.Y, data.Direction, strings.Join(data.Unlocked, ","),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot %q: %w", data.Slot, err)
	}
	return nil
}

// LoadGame reads a save slot. Returns ErrNoSave if the slot is empty.
func (s *Store) LoadGame(slot string) (SaveData, error) {
	data := SaveData{Slot: slot}
	var unlocked string
	var updatedAt any
	err := s.db.QueryRow(
		"SELECT room, x, y, direction, unlocked, updated_at FROM saves WHERE slot = ?",
		slot,
	).Scan(&data.Room, &data.X, &data.Y, &data.Direction, &unlocked, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return data, fmt.Errorf("%w: %q", ErrNoSave, slot)
	}
	if err != nil {
		return data, fmt.Errorf("storage: cannot load slot %q: %w", slot, err)
	}

	if unlocked != "" {
		data.Unlocked = strings.Split(unlocked, ",")
	}
	data.UpdatedAt = parseTime(updatedAt)
	return data, nil
}

// ListSaves returns every save slot, sorted by slot name.
func (s *Store) ListSaves() ([]SaveData, error) {
	rows, err := s.db.Query(
		"SELECT slot, room, x, y, direction, unlocked, updated_at FROM saves ORDER BY slot",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var saves []SaveData
	for rows.Next() {
		var d SaveData
		var unlocked string
		var updatedAt any
		if err := rows.Scan(&d.Slot, &d.Room, &d.X, &d.Y, &d.Direction, &unlocked, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if unlocked != "" {
			d.Unlocked = strings.Split(unlocked, ",")
		}
		d.UpdatedAt = parseTime(updatedAt)
		saves = append(saves, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return saves, nil
}

// parseTime handles both time.Time and string datetimes; NULL is the zero time.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
