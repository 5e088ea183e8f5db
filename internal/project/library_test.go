package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ToolCrib/internal/model"
)

func TestExportAndImportLibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	src := model.NewLibrary()
	src.AddTool(model.NewDrill("D3", 3))
	src.AddHolder(model.NewCollet("ER11"))
	src.AddAdapter(model.NewHydraulic("SK40"))
	require.NoError(t, ExportLibrary(path, src))

	merged, added, err := ImportLibrary(path, model.DefaultAppState())
	require.NoError(t, err)

	assert.Equal(t, 3, added)
	assert.Equal(t, src.Tools, merged.Library.Tools)
	assert.Equal(t, src.Holders, merged.Library.Holders)
	assert.Equal(t, src.Adapters, merged.Library.Adapters)
}

func TestImportLibrarySkipsKnownIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	inMagazine := model.NewMill("M10", 10)
	inLibrary := model.NewCollet("ER20")
	fresh := model.NewDrill("D4", 4)

	src := model.NewLibrary()
	src.AddTool(inMagazine)
	src.AddTool(fresh)
	src.AddHolder(inLibrary)
	require.NoError(t, ExportLibrary(path, src))

	st := model.DefaultAppState()
	m, err := model.NewMachine("M", 1, 2)
	require.NoError(t, err)
	m.Magazines[0].Slots[0].Tool = &inMagazine
	st.Machines = append(st.Machines, m)
	st.Library.AddHolder(inLibrary)

	merged, added, err := ImportLibrary(path, st)
	require.NoError(t, err)

	assert.Equal(t, 1, added)
	require.Len(t, merged.Library.Tools, 1)
	assert.Equal(t, fresh.ID, merged.Library.Tools[0].ID)
	assert.Len(t, merged.Library.Holders, 1)
}

func TestImportLibraryMissingFile(t *testing.T) {
	st := model.DefaultAppState()
	_, _, err := ImportLibrary(filepath.Join(t.TempDir(), "nope.json"), st)
	assert.Error(t, err)
}
