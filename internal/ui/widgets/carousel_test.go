package widgets

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/piwi3910/ToolCrib/internal/model"
)

func TestPocketLayout_FitsInside(t *testing.T) {
	for _, n := range []int{1, 6, 24, 100} {
		centers, r := PocketLayout(n, 300)
		if len(centers) != n {
			t.Fatalf("n=%d: expected %d centers, got %d", n, n, len(centers))
		}
		for i, c := range centers {
			if c.X-r < -0.01 || c.Y-r < -0.01 || c.X+r > 300.01 || c.Y+r > 300.01 {
				t.Errorf("n=%d: pocket %d at %v with radius %.1f leaves the widget", n, i, c, r)
			}
		}
	}
}

func TestPocketLayout_Empty(t *testing.T) {
	centers, r := PocketLayout(0, 300)
	if centers != nil || r != 0 {
		t.Errorf("expected no pockets, got %v, %f", centers, r)
	}
}

func TestCarousel_TapReportsSlot(t *testing.T) {
	test.NewTempApp(t)

	mag := model.NewMagazine("Magazine 0", 8)
	c := NewCarousel(mag, 400)
	var got = -1
	c.OnTapped = func(slot int) { got = slot }

	centers, _ := PocketLayout(8, 400)
	c.Tapped(&fyne.PointEvent{Position: centers[3]})
	if got != 3 {
		t.Errorf("expected slot 3, got %d", got)
	}

	got = -1
	c.Tapped(&fyne.PointEvent{Position: fyne.NewPos(200, 200)})
	if got != -1 {
		t.Errorf("tap in the middle should hit no pocket, got %d", got)
	}
}

func TestPocketColor(t *testing.T) {
	s := model.Slot{Index: 0}
	if pocketColor(s) != colorEmptyPocket {
		t.Error("empty slot should use the empty pocket color")
	}

	h := model.NewCollet("ER16")
	h.Color = model.ColorGray
	s.Holder = &h
	if pocketColor(s) != model.ColorGray.NRGBA() {
		t.Error("holder color should show when no tool is loaded")
	}

	tool := model.NewDrill("D5", 5)
	tool.Color = model.ColorBlue
	s.Tool = &tool
	if pocketColor(s) != model.ColorBlue.NRGBA() {
		t.Error("tool color should win over the holder")
	}
}
