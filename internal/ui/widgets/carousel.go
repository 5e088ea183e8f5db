// Package widgets holds custom Fyne widgets for the magazine views.
package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/ToolCrib/internal/export"
	"github.com/piwi3910/ToolCrib/internal/model"
)

var (
	colorEmptyPocket = color.NRGBA{R: 235, G: 235, B: 235, A: 255}
	colorPocketEdge  = color.NRGBA{R: 90, G: 90, B: 90, A: 255}
	colorHighlight   = color.NRGBA{R: 255, G: 60, B: 60, A: 255}
	colorRing        = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
)

// Carousel renders a magazine as a ring of pockets. Each pocket is filled
// with the color of its tool, or its holder or adapter when no tool is
// loaded. Tapping a pocket reports its slot index.
type Carousel struct {
	widget.BaseWidget
	magazine  model.Magazine
	highlight int
	size      float32

	OnTapped func(slot int)
}

// NewCarousel creates a carousel of the given edge length in pixels.
func NewCarousel(mag model.Magazine, size float32) *Carousel {
	c := &Carousel{magazine: mag.Clone(), highlight: -1, size: size}
	c.ExtendBaseWidget(c)
	return c
}

// SetMagazine replaces the displayed magazine.
func (c *Carousel) SetMagazine(mag model.Magazine) {
	c.magazine = mag.Clone()
	c.Refresh()
}

// SetHighlight outlines the slot with the given index; -1 clears it.
func (c *Carousel) SetHighlight(slot int) {
	c.highlight = slot
	c.Refresh()
}

// Tapped maps the tap position to the nearest pocket.
func (c *Carousel) Tapped(ev *fyne.PointEvent) {
	if c.OnTapped == nil {
		return
	}
	if slot := c.slotAt(ev.Position); slot >= 0 {
		c.OnTapped(slot)
	}
}

func (c *Carousel) CreateRenderer() fyne.WidgetRenderer {
	r := &carouselRenderer{c: c}
	r.rebuild()
	return r
}

// PocketLayout returns the pocket centers and radius for n pockets inside a
// square of edge size, in widget coordinates.
func PocketLayout(n int, size float32) ([]fyne.Position, float32) {
	if n == 0 {
		return nil, 0
	}
	// Lay out a nominal 50 mm pocket, then scale the pitch circle plus one
	// pocket diameter of margin into the widget.
	const pocket = 50.0
	radius := export.CarouselRadius(n, pocket)
	scale := size / float32(2*(radius+pocket))
	mid := size / 2

	centers := make([]fyne.Position, n)
	for i := range centers {
		x, y := export.SlotCenter(i, n, radius)
		// screen y grows downward
		centers[i] = fyne.NewPos(mid+float32(x)*scale, mid-float32(y)*scale)
	}
	return centers, pocket / 2 * scale
}

func (c *Carousel) slotAt(p fyne.Position) int {
	centers, r := PocketLayout(c.magazine.Size(), c.size)
	for i, ctr := range centers {
		dx, dy := p.X-ctr.X, p.Y-ctr.Y
		if dx*dx+dy*dy <= r*r {
			return c.magazine.Slots[i].Index
		}
	}
	return -1
}

// pocketColor picks the fill for a slot.
func pocketColor(s model.Slot) color.Color {
	if occ := s.Occupants(); len(occ) > 0 {
		return occ[0].DisplayColor().NRGBA()
	}
	return colorEmptyPocket
}

type carouselRenderer struct {
	c       *Carousel
	objects []fyne.CanvasObject
}

func (r *carouselRenderer) rebuild() {
	r.objects = nil
	size := r.c.size
	centers, pr := PocketLayout(r.c.magazine.Size(), size)
	if len(centers) == 0 {
		return
	}

	ring := canvas.NewCircle(color.Transparent)
	ring.StrokeColor = colorRing
	ring.StrokeWidth = 2
	ring.Resize(fyne.NewSize(size, size))
	r.objects = append(r.objects, ring)

	for i, ctr := range centers {
		slot := r.c.magazine.Slots[i]

		pocket := canvas.NewCircle(pocketColor(slot))
		pocket.StrokeColor = colorPocketEdge
		pocket.StrokeWidth = 1
		if slot.Index == r.c.highlight {
			pocket.StrokeColor = colorHighlight
			pocket.StrokeWidth = 3
		}
		pocket.Resize(fyne.NewSize(2*pr, 2*pr))
		pocket.Move(fyne.NewPos(ctr.X-pr, ctr.Y-pr))
		r.objects = append(r.objects, pocket)

		// Slot number (only if the pocket is big enough)
		if pr >= 8 {
			label := canvas.NewText(fmt.Sprintf("%d", slot.Index), color.Black)
			label.TextSize = pr * 0.8
			label.Alignment = fyne.TextAlignCenter
			label.Resize(fyne.NewSize(2*pr, 2*pr))
			label.Move(fyne.NewPos(ctr.X-pr, ctr.Y-pr))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *carouselRenderer) Layout(size fyne.Size)        {}
func (r *carouselRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.c) }
func (r *carouselRenderer) Destroy()                     {}
func (r *carouselRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *carouselRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.c.size, r.c.size)
}
