package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidEntity is returned when an entity fails validation.
var ErrInvalidEntity = errors.New("invalid entity")

// Limits for the numeric attribute of a tool, in mm or degrees.
const (
	MinToolAttribute = 0.001
	MaxToolAttribute = 200.0
)

// EntityKind identifies one of the three entity families.
type EntityKind int

const (
	KindTool EntityKind = iota
	KindHolder
	KindAdapter
)

func (k EntityKind) String() string {
	switch k {
	case KindHolder:
		return "Holder"
	case KindAdapter:
		return "Adapter"
	default:
		return "Tool"
	}
}

// EntityKinds lists every kind in display order.
func EntityKinds() []EntityKind {
	return []EntityKind{KindTool, KindHolder, KindAdapter}
}

// ParseEntityKind resolves a kind from its display name.
func ParseEntityKind(s string) (EntityKind, error) {
	for _, k := range EntityKinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return KindTool, fmt.Errorf("unknown entity kind %q", s)
}

// Entity is the capability set shared by tools, holders and adapters.
type Entity interface {
	EntityKind() EntityKind
	DisplayName() string
	// TypeName is the fixed tag of the concrete variant, e.g. "Drill".
	TypeName() string
	DisplayColor() Color
	SetColor(c Color)
	CategoryName() string
	EntityID() string
}

// NewID returns a short random identifier.
func NewID() string {
	return uuid.New().String()[:8]
}

// ─── Tools ──────────────────────────────────────────────────

// ToolType is the concrete tool variant.
type ToolType string

const (
	ToolDrill        ToolType = "Drill"
	ToolMill         ToolType = "Mill"
	ToolTrigonInsert ToolType = "TrigonInsert"
)

// ToolTypes lists every tool variant.
func ToolTypes() []ToolType {
	return []ToolType{ToolDrill, ToolMill, ToolTrigonInsert}
}

// ToolCategory classifies tools for filtering.
type ToolCategory int

const (
	CategoryAll ToolCategory = iota
	CategoryRotating
	CategoryLatheInsert
	CategoryEmpty
)

func (c ToolCategory) String() string {
	switch c {
	case CategoryRotating:
		return "Rotating"
	case CategoryLatheInsert:
		return "LatheInsert"
	case CategoryEmpty:
		return "Empty"
	default:
		return "All"
	}
}

// ToolCategories lists the filter choices shown in the UI.
func ToolCategories() []ToolCategory {
	return []ToolCategory{CategoryAll, CategoryRotating, CategoryLatheInsert, CategoryEmpty}
}

// ParseToolCategory resolves a category from its display name.
func ParseToolCategory(s string) (ToolCategory, error) {
	for _, c := range ToolCategories() {
		if c.String() == s {
			return c, nil
		}
	}
	return CategoryAll, fmt.Errorf("unknown tool category %q", s)
}

// Tool is a cutting tool. Drill and Mill carry a diameter in mm,
// TrigonInsert carries an angle in degrees.
type Tool struct {
	ID       string   `json:"id"`
	Type     ToolType `json:"type"`
	Name     string   `json:"name"`
	Diameter float64  `json:"diameter,omitempty"`
	Degree   float64  `json:"degree,omitempty"`
	Color    Color    `json:"color"`
}

// NewDrill creates a drill with a generated ID.
func NewDrill(name string, diameter float64) Tool {
	return Tool{ID: NewID(), Type: ToolDrill, Name: name, Diameter: diameter, Color: ColorWhite}
}

// NewMill creates a mill with a generated ID.
func NewMill(name string, diameter float64) Tool {
	return Tool{ID: NewID(), Type: ToolMill, Name: name, Diameter: diameter, Color: ColorWhite}
}

// NewTrigonInsert creates a trigon lathe insert with a generated ID.
func NewTrigonInsert(name string, degree float64) Tool {
	return Tool{ID: NewID(), Type: ToolTrigonInsert, Name: name, Degree: degree, Color: ColorWhite}
}

// DefaultTool returns the form default for the given tool type.
func DefaultTool(tt ToolType) Tool {
	switch tt {
	case ToolMill:
		return NewMill("Mill", 10)
	case ToolTrigonInsert:
		return NewTrigonInsert("TrigonInsert", 35)
	default:
		return NewDrill("Drill", 10)
	}
}

// Category returns Rotating for drills and mills, LatheInsert for inserts.
func (t Tool) Category() ToolCategory {
	if t.Type == ToolTrigonInsert {
		return CategoryLatheInsert
	}
	return CategoryRotating
}

// Measure returns the diameter or degree, whichever applies.
func (t Tool) Measure() float64 {
	if t.Type == ToolTrigonInsert {
		return t.Degree
	}
	return t.Diameter
}

// MeasureLabel names the attribute returned by Measure.
func (t Tool) MeasureLabel() string {
	if t.Type == ToolTrigonInsert {
		return "Degree"
	}
	return "Diameter"
}

// Summary is a one-line description for tables and labels.
func (t Tool) Summary() string {
	if t.Type == ToolTrigonInsert {
		return fmt.Sprintf("%s (%g°)", t.Name, t.Degree)
	}
	return fmt.Sprintf("%s (Ø%g)", t.Name, t.Diameter)
}

// Validate checks the type tag and the numeric attribute range.
func (t Tool) Validate() error {
	switch t.Type {
	case ToolDrill, ToolMill, ToolTrigonInsert:
	default:
		return fmt.Errorf("%w: unknown tool type %q", ErrInvalidEntity, t.Type)
	}
	if v := t.Measure(); v < MinToolAttribute || v > MaxToolAttribute {
		return fmt.Errorf("%w: %s %g out of range [%g, %g]", ErrInvalidEntity,
			t.MeasureLabel(), v, MinToolAttribute, MaxToolAttribute)
	}
	return nil
}

// Clone returns a copy of t, or nil.
func (t *Tool) Clone() *Tool {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func (t *Tool) EntityKind() EntityKind { return KindTool }
func (t *Tool) DisplayName() string    { return t.Name }
func (t *Tool) TypeName() string       { return string(t.Type) }
func (t *Tool) DisplayColor() Color    { return t.Color }
func (t *Tool) SetColor(c Color)       { t.Color = c }
func (t *Tool) CategoryName() string   { return t.Category().String() }
func (t *Tool) EntityID() string       { return t.ID }

// ─── Holders ────────────────────────────────────────────────

// HolderType is the concrete holder variant.
type HolderType string

const HolderCollet HolderType = "Collet"

// HolderTypes lists every holder variant.
func HolderTypes() []HolderType {
	return []HolderType{HolderCollet}
}

// HolderCategory classifies holders.
type HolderCategory int

const (
	HolderCategoryEmpty HolderCategory = iota
	HolderCategoryMilling
	HolderCategoryDrilling
	HolderCategoryTurning
	HolderCategorySpecialty
)

func (c HolderCategory) String() string {
	switch c {
	case HolderCategoryMilling:
		return "MillingHolder"
	case HolderCategoryDrilling:
		return "DrillingHolder"
	case HolderCategoryTurning:
		return "TurningHolder"
	case HolderCategorySpecialty:
		return "SpecialtyHolder"
	default:
		return "Empty"
	}
}

// Holder clamps a tool, e.g. a collet chuck.
type Holder struct {
	ID    string     `json:"id"`
	Type  HolderType `json:"type"`
	Name  string     `json:"name"`
	Color Color      `json:"color"`
}

// NewCollet creates a collet holder with a generated ID.
func NewCollet(name string) Holder {
	return Holder{ID: NewID(), Type: HolderCollet, Name: name, Color: ColorWhite}
}

// DefaultHolder returns the form default for the given holder type.
func DefaultHolder(ht HolderType) Holder {
	return NewCollet("Collet")
}

// Category returns the holder category of the variant.
func (h Holder) Category() HolderCategory {
	if h.Type == HolderCollet {
		return HolderCategoryMilling
	}
	return HolderCategoryEmpty
}

// Validate checks the type tag.
func (h Holder) Validate() error {
	if h.Type != HolderCollet {
		return fmt.Errorf("%w: unknown holder type %q", ErrInvalidEntity, h.Type)
	}
	return nil
}

// Clone returns a copy of h, or nil.
func (h *Holder) Clone() *Holder {
	if h == nil {
		return nil
	}
	c := *h
	return &c
}

func (h *Holder) EntityKind() EntityKind { return KindHolder }
func (h *Holder) DisplayName() string    { return h.Name }
func (h *Holder) TypeName() string       { return string(h.Type) }
func (h *Holder) DisplayColor() Color    { return h.Color }
func (h *Holder) SetColor(c Color)       { h.Color = c }
func (h *Holder) CategoryName() string   { return h.Category().String() }
func (h *Holder) EntityID() string       { return h.ID }

// ─── Adapters ───────────────────────────────────────────────

// AdapterType is the concrete adapter variant.
type AdapterType string

const AdapterHydraulic AdapterType = "Hydraulic"

// AdapterTypes lists every adapter variant.
func AdapterTypes() []AdapterType {
	return []AdapterType{AdapterHydraulic}
}

// AdapterCategory classifies adapters.
type AdapterCategory int

const (
	AdapterCategoryEmpty AdapterCategory = iota
	AdapterCategoryStandard
)

func (c AdapterCategory) String() string {
	if c == AdapterCategoryStandard {
		return "Standard"
	}
	return "Empty"
}

// Adapter mounts a holder to the spindle, e.g. a hydraulic chuck.
type Adapter struct {
	ID    string      `json:"id"`
	Type  AdapterType `json:"type"`
	Name  string      `json:"name"`
	Color Color       `json:"color"`
}

// NewHydraulic creates a hydraulic adapter with a generated ID.
func NewHydraulic(name string) Adapter {
	return Adapter{ID: NewID(), Type: AdapterHydraulic, Name: name, Color: ColorWhite}
}

// DefaultAdapter returns the form default for the given adapter type.
func DefaultAdapter(at AdapterType) Adapter {
	return NewHydraulic("Hydraulic")
}

// Category returns the adapter category of the variant.
func (a Adapter) Category() AdapterCategory {
	if a.Type == AdapterHydraulic {
		return AdapterCategoryStandard
	}
	return AdapterCategoryEmpty
}

// Validate checks the type tag.
func (a Adapter) Validate() error {
	if a.Type != AdapterHydraulic {
		return fmt.Errorf("%w: unknown adapter type %q", ErrInvalidEntity, a.Type)
	}
	return nil
}

// Clone returns a copy of a, or nil.
func (a *Adapter) Clone() *Adapter {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func (a *Adapter) EntityKind() EntityKind { return KindAdapter }
func (a *Adapter) DisplayName() string    { return a.Name }
func (a *Adapter) TypeName() string       { return string(a.Type) }
func (a *Adapter) DisplayColor() Color    { return a.Color }
func (a *Adapter) SetColor(c Color)       { a.Color = c }
func (a *Adapter) CategoryName() string   { return a.Category().String() }
func (a *Adapter) EntityID() string       { return a.ID }
