package export

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/piwi3910/ToolCrib/internal/model"
)

// DXF layer names used by the carousel drawing.
const (
	LayerPockets = "POCKETS"
	LayerTools   = "TOOLS"
	LayerText    = "SLOT_NUMBERS"
)

// pocketGap is the clearance between neighboring pocket circles in mm.
const pocketGap = 5.0

// CarouselRadius returns the pitch circle radius that fits n pockets of the
// given diameter around the carousel.
func CarouselRadius(n int, pocket float64) float64 {
	if n <= 1 {
		return pocket
	}
	r := float64(n) * (pocket + pocketGap) / (2 * math.Pi)
	return math.Max(r, pocket)
}

// SlotCenter returns the center of slot i on a carousel of n slots. Slot 0
// sits at twelve o'clock and indices increase clockwise.
func SlotCenter(i, n int, radius float64) (x, y float64) {
	angle := math.Pi/2 - 2*math.Pi*float64(i)/float64(n)
	return radius * math.Cos(angle), radius * math.Sin(angle)
}

// ExportCarouselDXF draws the magazine as a tool carousel. Every slot is a
// pocket circle on the pitch circle, rotating tools are drawn at their
// diameter and each pocket carries its slot number.
func ExportCarouselDXF(path string, mag model.Magazine, pocket float64) error {
	n := mag.Size()
	if n == 0 {
		return fmt.Errorf("magazine %q has no slots", mag.Name)
	}
	if pocket <= 0 {
		return fmt.Errorf("pocket diameter must be positive, got %g", pocket)
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerPockets, color.White, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	if _, err := d.AddLayer(LayerTools, color.Green, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	if _, err := d.AddLayer(LayerText, color.Yellow, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}

	radius := CarouselRadius(n, pocket)
	textHeight := math.Max(pocket/6, 2)

	if err := d.ChangeLayer(LayerPockets); err != nil {
		return err
	}
	if _, err := d.Circle(0, 0, 0, radius+pocket); err != nil {
		return fmt.Errorf("failed to draw carousel: %w", err)
	}

	for _, slot := range model.SortBySlot(mag.Slots, nil) {
		x, y := SlotCenter(slot.Index, n, radius)

		if err := d.ChangeLayer(LayerPockets); err != nil {
			return err
		}
		if _, err := d.Circle(x, y, 0, pocket/2); err != nil {
			return fmt.Errorf("failed to draw pocket %d: %w", slot.Index, err)
		}

		if t := slot.Tool; t != nil && t.Category() == model.CategoryRotating && t.Diameter > 0 {
			if err := d.ChangeLayer(LayerTools); err != nil {
				return err
			}
			if _, err := d.Circle(x, y, 0, t.Diameter/2); err != nil {
				return fmt.Errorf("failed to draw tool in slot %d: %w", slot.Index, err)
			}
		}

		if err := d.ChangeLayer(LayerText); err != nil {
			return err
		}
		// numbers sit just inside the pitch circle
		tx, ty := SlotCenter(slot.Index, n, radius-pocket/2-textHeight)
		if _, err := d.Text(fmt.Sprintf("%d", slot.Index), tx, ty, 0, textHeight); err != nil {
			return fmt.Errorf("failed to label slot %d: %w", slot.Index, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}
