package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ToolCrib/internal/model"
)

func sampleState(t *testing.T) model.AppState {
	t.Helper()
	st := model.DefaultAppState()
	m, err := model.NewMachine("DMU 50", 2, 4)
	require.NoError(t, err)
	drill := model.NewDrill("D8", 8)
	collet := model.NewCollet("ER32")
	m.Magazines[1].Slots[3].Tool = &drill
	m.Magazines[1].Slots[3].Holder = &collet
	m.Magazines[1].Slots[3].Comment = "coolant through"
	require.NoError(t, m.SelectMagazine(1))
	st.Machines = append(st.Machines, m)
	sel := 0
	st.Selections.Machine = &sel
	st.Library.AddTool(model.NewTrigonInsert("VBMT", 35))
	st.Library.AddAdapter(model.NewHydraulic("HSK63"))
	st.View.SelectSort(model.SortDiameter)
	st.Screen = model.ScreenLibrary
	return st
}

func TestJSONStore_RoundTrip(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "nested", "state.json"))
	want := sampleState(t)

	require.NoError(t, store.Save(want))
	got, err := store.Load()
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONStore_MissingFileGivesDefaults(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "state.json"))

	got, err := store.Load()
	require.NoError(t, err)

	assert.Empty(t, got.Machines)
	assert.Len(t, got.Templates.RotatingTools, 2)
}

func TestJSONStore_CorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	got, err := NewJSONStore(path).Load()

	assert.Error(t, err)
	assert.Empty(t, got.Machines)
	assert.NotNil(t, got.Library.Tools)
}

func TestJSONStore_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"screen": 5}`), 0644))

	got, err := NewJSONStore(path).Load()
	require.NoError(t, err)

	assert.Equal(t, model.ScreenLibrary, got.Screen)
	assert.Len(t, got.Templates.InsertTools, 1)
	assert.NotNil(t, got.Machines)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	want := sampleState(t)

	require.NoError(t, store.Save(want))
	// saving twice exercises the upsert path
	require.NoError(t, store.Save(want))
	got, err := store.Load()
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_EmptyDatabaseGivesDefaults(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	got, err := store.Load()
	require.NoError(t, err)

	assert.Empty(t, got.Machines)
	assert.Len(t, got.Templates.Adapters, 1)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(sampleState(t)))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	got, err := reopened.Load()
	require.NoError(t, err)

	require.Len(t, got.Machines, 1)
	assert.Equal(t, "coolant through", got.Machines[0].Magazines[1].Slots[3].Comment)
}

func TestOpenStore(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.DataDir = t.TempDir()

	js, err := OpenStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, js)

	cfg.StateBackend = model.BackendSQLite
	sq, err := OpenStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, sq)
	require.NoError(t, sq.Close())

	cfg.StateBackend = "etcd"
	_, err = OpenStore(cfg)
	assert.True(t, errors.Is(err, ErrUnknownBackend))
}
