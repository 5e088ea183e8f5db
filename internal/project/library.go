package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/ToolCrib/internal/model"
)

// ExportLibrary writes the library pools to a JSON file.
func ExportLibrary(path string, lib model.Library) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	data, err := json.MarshalIndent(lib, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal library: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ImportLibrary reads a library JSON file and appends its entities to the
// library of state. Entities whose ID already exists anywhere in state, in
// the library or in a magazine slot, are skipped so no entity is stored
// twice. It returns the merged state and the number of entities added.
func ImportLibrary(path string, state model.AppState) (model.AppState, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return state, 0, fmt.Errorf("failed to read library file: %w", err)
	}
	imported := model.NewLibrary()
	if err := json.Unmarshal(data, &imported); err != nil {
		return state, 0, fmt.Errorf("failed to parse library file: %w", err)
	}

	known := knownIDs(&state)
	added := 0
	for _, kind := range model.EntityKinds() {
		for _, e := range imported.List(kind) {
			id := e.EntityID()
			if id == "" || known[id] {
				continue
			}
			state.Library.Add(e)
			known[id] = true
			added++
		}
	}
	return state, added, nil
}

// knownIDs collects the IDs of every entity stored in state.
func knownIDs(state *model.AppState) map[string]bool {
	ids := make(map[string]bool)
	for _, kind := range model.EntityKinds() {
		for _, e := range state.Library.List(kind) {
			ids[e.EntityID()] = true
		}
	}
	for mi := range state.Machines {
		for gi := range state.Machines[mi].Magazines {
			mag := &state.Machines[mi].Magazines[gi]
			for si := range mag.Slots {
				for _, e := range mag.Slots[si].Occupants() {
					ids[e.EntityID()] = true
				}
			}
		}
	}
	return ids
}
