package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/ToolCrib/internal/model"
)

// ErrUnknownBackend is returned by OpenStore for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown state backend")

// StateStore persists the whole application state as one snapshot.
type StateStore interface {
	// Load returns the saved state. With nothing saved yet it returns
	// DefaultAppState and no error. When the saved data cannot be decoded
	// it returns DefaultAppState together with the decode error.
	Load() (model.AppState, error)
	Save(state model.AppState) error
	Close() error
}

// OpenStore opens the store selected by config.StateBackend inside the
// configured data directory.
func OpenStore(config model.AppConfig) (StateStore, error) {
	dir := DataDir(config)
	switch config.StateBackend {
	case model.BackendJSON, "":
		return NewJSONStore(filepath.Join(dir, "state.json")), nil
	case model.BackendSQLite:
		return NewSQLiteStore(filepath.Join(dir, "state.db"))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, config.StateBackend)
	}
}

// JSONStore keeps the state in a single indented JSON file.
type JSONStore struct {
	path string
}

// NewJSONStore returns a store backed by the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file path.
func (s *JSONStore) Path() string { return s.path }

// Save writes the state, creating parent directories.
func (s *JSONStore) Save(state model.AppState) error {
	return SaveState(s.path, state)
}

// Load reads the state. See StateStore.
func (s *JSONStore) Load() (model.AppState, error) {
	return LoadState(s.path)
}

// Close is a no-op.
func (s *JSONStore) Close() error { return nil }

// SaveState writes state to path as JSON.
func SaveState(path string, state model.AppState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadState reads state from path. Fields missing from the file keep their
// defaults; a missing file yields the default state.
func LoadState(path string) (model.AppState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppState(), nil
		}
		return model.DefaultAppState(), fmt.Errorf("failed to read state: %w", err)
	}
	return decodeState(data)
}

func decodeState(data []byte) (model.AppState, error) {
	state := model.DefaultAppState()
	if err := json.Unmarshal(data, &state); err != nil {
		return model.DefaultAppState(), fmt.Errorf("failed to parse state, using defaults: %w", err)
	}
	state.Normalize()
	return state, nil
}
