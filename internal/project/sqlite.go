package project

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/piwi3910/ToolCrib/internal/model"
)

// SQLiteStore persists the state to a single SQLite table, one JSON blob per
// bucket. Every Save replaces all buckets in one transaction.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

var stateBuckets = []string{"machines", "library", "templates", "selections", "view", "screen"}

// NewSQLiteStore opens or creates the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the configured database path.
func (s *SQLiteStore) Path() string { return s.path }

// Load reads all buckets. See StateStore.
func (s *SQLiteStore) Load() (model.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT bucket, payload FROM state`)
	if err != nil {
		return model.DefaultAppState(), fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	state := model.DefaultAppState()
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return model.DefaultAppState(), fmt.Errorf("scan: %w", err)
		}
		var target any
		switch bucket {
		case "machines":
			target = &state.Machines
		case "library":
			target = &state.Library
		case "templates":
			target = &state.Templates
		case "selections":
			target = &state.Selections
		case "view":
			target = &state.View
		case "screen":
			target = &state.Screen
		default:
			continue
		}
		if err := json.Unmarshal(payload, target); err != nil {
			return model.DefaultAppState(), fmt.Errorf("decode %s, using defaults: %w", bucket, err)
		}
	}
	if err := rows.Err(); err != nil {
		return model.DefaultAppState(), fmt.Errorf("iterate state: %w", err)
	}
	state.Normalize()
	return state, nil
}

// Save writes every bucket in one transaction.
func (s *SQLiteStore) Save(state model.AppState) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, bucket := range stateBuckets {
		var data []byte
		switch bucket {
		case "machines":
			data, err = json.Marshal(state.Machines)
		case "library":
			data, err = json.Marshal(state.Library)
		case "templates":
			data, err = json.Marshal(state.Templates)
		case "selections":
			data, err = json.Marshal(state.Selections)
		case "view":
			data, err = json.Marshal(state.View)
		case "screen":
			data, err = json.Marshal(state.Screen)
		}
		if err != nil {
			return fmt.Errorf("encode %s: %w", bucket, err)
		}
		if _, err = tx.Exec(`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, bucket, data); err != nil {
			return fmt.Errorf("upsert %s: %w", bucket, err)
		}
	}
	return tx.Commit()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
