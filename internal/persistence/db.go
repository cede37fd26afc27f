// Package persistence provides SQLite-backed save-slot storage. Snapshots
// are stored verbatim as JSON documents; legacy documents are migrated to
// the current shape before the core ever sees them.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/haven/internal/sim"
)

// DefaultSlot is the save slot used when none is named.
const DefaultSlot = "haven-savegame"

// ErrNoSave means the slot has never been written.
var ErrNoSave = errors.New("no save in slot")

// DB wraps a SQLite connection for save storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrateSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrateSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		slot TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		day INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notifications_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		slot TEXT NOT NULL,
		day INTEGER NOT NULL,
		message TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_notifications_slot ON notifications_log(slot, day);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveState writes a snapshot into a slot, replacing any previous save,
// and appends the day's notifications to the audit log.
func (db *DB) SaveState(slot string, st sim.State) error {
	doc, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO saves (slot, data, day, updated_at) VALUES (?, ?, ?, ?)",
		slot, string(doc), st.Day, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("write save %q: %w", slot, err)
	}

	for _, msg := range st.Notifications {
		if _, err := tx.Exec(
			"INSERT INTO notifications_log (slot, day, message) VALUES (?, ?, ?)",
			slot, st.Day, msg,
		); err != nil {
			return fmt.Errorf("log notification: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("state saved", "slot", slot, "day", st.Day)
	return nil
}

// LoadState reads a slot, migrating legacy document shapes before
// validation. A snapshot that cannot be migrated into a valid state
// returns the validation error; the caller decides whether to fall back
// to a default state.
func (db *DB) LoadState(slot string, engine *sim.Simulation) (sim.State, error) {
	var raw string
	err := db.conn.Get(&raw, "SELECT data FROM saves WHERE slot = ?", slot)
	if errors.Is(err, sql.ErrNoRows) {
		return sim.State{}, fmt.Errorf("%w: %q", ErrNoSave, slot)
	}
	if err != nil {
		return sim.State{}, fmt.Errorf("read save %q: %w", slot, err)
	}

	st, err := Migrate([]byte(raw), engine)
	if err != nil {
		return sim.State{}, fmt.Errorf("migrate save %q: %w", slot, err)
	}
	return st, nil
}

// SaveInfo summarizes a stored slot.
type SaveInfo struct {
	Slot      string `db:"slot" json:"slot"`
	Day       int    `db:"day" json:"day"`
	UpdatedAt int64  `db:"updated_at" json:"updatedAt"`
}

// ListSaves returns every stored slot, most recently written first.
func (db *DB) ListSaves() ([]SaveInfo, error) {
	var infos []SaveInfo
	err := db.conn.Select(&infos,
		"SELECT slot, day, updated_at FROM saves ORDER BY updated_at DESC")
	return infos, err
}

// DeleteSave removes a slot and its notification log.
func (db *DB) DeleteSave(slot string) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM notifications_log WHERE slot = ?", slot); err != nil {
		return err
	}
	return tx.Commit()
}

// NotificationHistory returns the most recent logged notifications for a
// slot, newest first.
func (db *DB) NotificationHistory(slot string, limit int) ([]string, error) {
	var messages []string
	err := db.conn.Select(&messages,
		"SELECT message FROM notifications_log WHERE slot = ? ORDER BY id DESC LIMIT ?",
		slot, limit,
	)
	return messages, err
}
