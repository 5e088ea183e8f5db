package export

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/ToolCrib/internal/model"
)

func TestExportCarouselDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carousel.dxf")
	m := buildTestMachine(t)
	require.NoError(t, ExportCarouselDXF(path, m.Magazines[0], 40))

	drawing, err := dxf.Open(path)
	require.NoError(t, err)

	var pockets, tools, texts int
	for _, ent := range drawing.Entities() {
		switch e := ent.(type) {
		case *entity.Circle:
			// pockets are 40 mm, tools 8 and 12 mm, plus the carousel outline
			if e.Radius >= 20 {
				pockets++
			} else {
				tools++
			}
		case *entity.Text:
			texts++
		}
	}

	// six pockets plus the carousel outline
	assert.Equal(t, 7, pockets)
	// drill and mill; the magazine has no inserts
	assert.Equal(t, 2, tools)
	assert.Equal(t, 6, texts)
}

func TestExportCarouselDXF_InvalidInput(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, ExportCarouselDXF(filepath.Join(dir, "a.dxf"), model.Magazine{Name: "empty"}, 40))
	assert.Error(t, ExportCarouselDXF(filepath.Join(dir, "b.dxf"), model.NewMagazine("m", 4), 0))
}

func TestCarouselRadius_PocketsDoNotOverlap(t *testing.T) {
	for _, n := range []int{2, 12, 24, 100} {
		pocket := 50.0
		r := CarouselRadius(n, pocket)
		x0, y0 := SlotCenter(0, n, r)
		x1, y1 := SlotCenter(1, n, r)
		chord := math.Hypot(x1-x0, y1-y0)
		assert.GreaterOrEqual(t, chord, pocket, "n=%d", n)
	}
}

func TestSlotCenter_ZeroAtTop(t *testing.T) {
	x, y := SlotCenter(0, 8, 100)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 100, y, 1e-9)

	// clockwise: a quarter turn later is at three o'clock
	x, y = SlotCenter(2, 8, 100)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)
}
