// Package store persists the folder selection and UI settings between
// runs in a SQLite database owned by a single worker goroutine.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justyntemme/foldergrid/internal/debug"
)

type EventType int

const (
	FetchFolders EventType = iota
	SaveFolders
	FetchSettings
	SaveSetting
)

type Request struct {
	Op      EventType
	Folders []string
	Key     string
	Value   string
}

type Response struct {
	Op       EventType
	Folders  []string          // Selected folders in display order
	Settings map[string]string // Key-value settings
	Err      error
}

type DB struct {
	conn         *sql.DB
	RequestChan  chan Request
	ResponseChan chan Response

	// Notify, if set, is called after every response is queued.
	Notify func()
}

func NewDB() *DB {
	return &DB{
		RequestChan:  make(chan Request, 10),
		ResponseChan: make(chan Response, 10),
	}
}

// Open initializes the database connection and schema
func (d *DB) Open(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return fmt.Errorf("set synchronous: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS folders (
			position INTEGER NOT NULL,
			path TEXT PRIMARY KEY
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, q := range schema {
		if _, err := db.Exec(q); err != nil {
			db.Close()
			return fmt.Errorf("create schema: %w", err)
		}
	}

	d.conn = db
	debug.Log(debug.STORE, "opened %s", dbPath)
	return nil
}

func (d *DB) Start() {
	for req := range d.RequestChan {
		debug.Log(debug.STORE, "Request: op=%d folders=%d key=%q", req.Op, len(req.Folders), req.Key)
		switch req.Op {
		case FetchFolders:
			d.handleFetchFolders()
		case SaveFolders:
			d.handleSaveFolders(req.Folders)
		case FetchSettings:
			d.handleFetchSettings()
		case SaveSetting:
			d.handleSaveSetting(req.Key, req.Value)
		}
	}
}

func (d *DB) respond(resp Response) {
	d.ResponseChan <- resp
	if d.Notify != nil {
		d.Notify()
	}
}

// LoadFolders returns the saved folders in display order.
func (d *DB) LoadFolders() ([]string, error) {
	if d.conn == nil {
		return nil, errNotOpen
	}
	rows, err := d.conn.Query("SELECT path FROM folders ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("query folders: %w", err)
	}
	defer rows.Close()

	var folders []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, path)
	}
	return folders, rows.Err()
}

// StoreFolders replaces the saved folder list.
func (d *DB) StoreFolders(folders []string) error {
	if d.conn == nil {
		return errNotOpen
	}
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM folders"); err != nil {
		return fmt.Errorf("clear folders: %w", err)
	}
	for i, f := range folders {
		// INSERT OR IGNORE keeps the first position of a duplicate.
		if _, err := tx.Exec("INSERT OR IGNORE INTO folders (position, path) VALUES (?, ?)", i, f); err != nil {
			return fmt.Errorf("insert folder: %w", err)
		}
	}
	return tx.Commit()
}

// LoadSettings returns every saved setting.
func (d *DB) LoadSettings() (map[string]string, error) {
	if d.conn == nil {
		return nil, errNotOpen
	}
	rows, err := d.conn.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err == nil {
			settings[key] = value
		}
	}
	return settings, rows.Err()
}

// StoreSetting upserts one setting.
func (d *DB) StoreSetting(key, value string) error {
	if d.conn == nil {
		return errNotOpen
	}
	if _, err := d.conn.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value); err != nil {
		return fmt.Errorf("save setting %q: %w", key, err)
	}
	return nil
}

var errNotOpen = errors.New("store: database not open")

func (d *DB) handleFetchFolders() {
	folders, err := d.LoadFolders()
	d.respond(Response{Op: FetchFolders, Folders: folders, Err: err})
}

func (d *DB) handleSaveFolders(folders []string) {
	if err := d.StoreFolders(folders); err != nil {
		log.Printf("Store Error saving folders: %v", err)
	}
	// Always trigger a fetch after modification to sync UI
	d.handleFetchFolders()
}

func (d *DB) handleFetchSettings() {
	settings, err := d.LoadSettings()
	d.respond(Response{Op: FetchSettings, Settings: settings, Err: err})
}

func (d *DB) handleSaveSetting(key, value string) {
	if err := d.StoreSetting(key, value); err != nil {
		log.Printf("Store Error saving setting: %v", err)
	}
	d.handleFetchSettings()
}

func (d *DB) Close() {
	if d.conn != nil {
		d.conn.Close()
	}
}
