package model

import "fmt"

// TemplatePool names one of the template collections edited in the color settings.
type TemplatePool int

const (
	PoolRotating TemplatePool = iota
	PoolInsert
	PoolHolder
	PoolAdapter
)

func (p TemplatePool) String() string {
	switch p {
	case PoolInsert:
		return "Insert"
	case PoolHolder:
		return "Holder"
	case PoolAdapter:
		return "Adapter"
	default:
		return "Rotating"
	}
}

// TemplatePools lists the pools in settings order.
func TemplatePools() []TemplatePool {
	return []TemplatePool{PoolRotating, PoolInsert, PoolHolder, PoolAdapter}
}

// TemplateSet holds one prototype per concrete entity type. Add-forms start
// from a prototype, and the prototype's color is the color every instance of
// that type is painted with.
type TemplateSet struct {
	RotatingTools []Tool    `json:"rotating_tools" yaml:"rotating_tools"`
	InsertTools   []Tool    `json:"insert_tools" yaml:"insert_tools"`
	Holders       []Holder  `json:"holders" yaml:"holders"`
	Adapters      []Adapter `json:"adapters" yaml:"adapters"`
}

// DefaultTemplates returns one prototype for each known variant.
func DefaultTemplates() TemplateSet {
	drill := DefaultTool(ToolDrill)
	drill.Color = ColorBlue
	mill := DefaultTool(ToolMill)
	mill.Color = ColorGreen
	insert := DefaultTool(ToolTrigonInsert)
	insert.Color = ColorOrange
	collet := DefaultHolder(HolderCollet)
	collet.Color = ColorGray
	hydraulic := DefaultAdapter(AdapterHydraulic)
	hydraulic.Color = ColorRed
	return TemplateSet{
		RotatingTools: []Tool{drill, mill},
		InsertTools:   []Tool{insert},
		Holders:       []Holder{collet},
		Adapters:      []Adapter{hydraulic},
	}
}

// Pool returns the templates of one pool. The entities point into the set.
func (ts *TemplateSet) Pool(p TemplatePool) []Entity {
	var out []Entity
	switch p {
	case PoolInsert:
		for i := range ts.InsertTools {
			out = append(out, &ts.InsertTools[i])
		}
	case PoolHolder:
		for i := range ts.Holders {
			out = append(out, &ts.Holders[i])
		}
	case PoolAdapter:
		for i := range ts.Adapters {
			out = append(out, &ts.Adapters[i])
		}
	default:
		for i := range ts.RotatingTools {
			out = append(out, &ts.RotatingTools[i])
		}
	}
	return out
}

// All returns every template across all pools.
func (ts *TemplateSet) All() []Entity {
	var out []Entity
	for _, p := range TemplatePools() {
		out = append(out, ts.Pool(p)...)
	}
	return out
}

// SetColor changes the color of template i in pool p.
func (ts *TemplateSet) SetColor(p TemplatePool, i int, c Color) error {
	pool := ts.Pool(p)
	if i < 0 || i >= len(pool) {
		return fmt.Errorf("template %d out of range for pool %s", i, p)
	}
	pool[i].SetColor(c)
	return nil
}

// Lookup returns the template whose type tag matches e, or nil.
func (ts *TemplateSet) Lookup(e Entity) Entity {
	for _, tmpl := range ts.All() {
		if tmpl.EntityKind() == e.EntityKind() && tmpl.TypeName() == e.TypeName() {
			return tmpl
		}
	}
	return nil
}

// Recolor copies the matching template color onto e. Entities with no
// matching template keep their color.
func (ts *TemplateSet) Recolor(e Entity) {
	if ts == nil || e == nil {
		return
	}
	if tmpl := ts.Lookup(e); tmpl != nil {
		e.SetColor(tmpl.DisplayColor())
	}
}

// ApplyColors paints every occupied tool, holder and adapter in slots
// with the color of its type's template.
func ApplyColors(slots []Slot, templates *TemplateSet) {
	for i := range slots {
		for _, e := range slots[i].Occupants() {
			templates.Recolor(e)
		}
	}
}

// Clone returns a deep copy.
func (ts TemplateSet) Clone() TemplateSet {
	return TemplateSet{
		RotatingTools: append([]Tool{}, ts.RotatingTools...),
		InsertTools:   append([]Tool{}, ts.InsertTools...),
		Holders:       append([]Holder{}, ts.Holders...),
		Adapters:      append([]Adapter{}, ts.Adapters...),
	}
}
