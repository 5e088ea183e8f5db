package model

import "fmt"

// Slot is one pocket of a magazine. Index is the creation-order position and
// never changes; it is what the filtered views sort and key on.
type Slot struct {
	Index   int      `json:"index"`
	Tool    *Tool    `json:"tool,omitempty"`
	Holder  *Holder  `json:"holder,omitempty"`
	Adapter *Adapter `json:"adapter,omitempty"`
	Comment string   `json:"comment"`
}

// Clone returns a deep copy of the slot.
func (s Slot) Clone() Slot {
	return Slot{
		Index:   s.Index,
		Tool:    s.Tool.Clone(),
		Holder:  s.Holder.Clone(),
		Adapter: s.Adapter.Clone(),
		Comment: s.Comment,
	}
}

// IsEmpty reports whether the slot holds nothing.
func (s Slot) IsEmpty() bool {
	return s.Tool == nil && s.Holder == nil && s.Adapter == nil
}

// Occupant returns the entity of the given kind in the slot, or nil.
func (s *Slot) Occupant(kind EntityKind) Entity {
	switch kind {
	case KindHolder:
		if s.Holder != nil {
			return s.Holder
		}
	case KindAdapter:
		if s.Adapter != nil {
			return s.Adapter
		}
	default:
		if s.Tool != nil {
			return s.Tool
		}
	}
	return nil
}

// Occupants returns every entity held by the slot.
func (s *Slot) Occupants() []Entity {
	var out []Entity
	for _, kind := range EntityKinds() {
		if e := s.Occupant(kind); e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Clear empties the field for kind and returns what was there, or nil.
func (s *Slot) Clear(kind EntityKind) Entity {
	e := s.Occupant(kind)
	switch kind {
	case KindHolder:
		s.Holder = nil
	case KindAdapter:
		s.Adapter = nil
	default:
		s.Tool = nil
	}
	return e
}

// Put stores a copy of e in the field matching its kind and returns the
// previous occupant, or nil.
func (s *Slot) Put(e Entity) Entity {
	prev := s.Clear(e.EntityKind())
	switch v := e.(type) {
	case *Tool:
		s.Tool = v.Clone()
	case *Holder:
		s.Holder = v.Clone()
	case *Adapter:
		s.Adapter = v.Clone()
	}
	return prev
}

// Magazine is a named, fixed-size sequence of slots.
type Magazine struct {
	Name  string `json:"name"`
	Slots []Slot `json:"contents"`
}

// NewMagazine creates a magazine with size empty slots indexed 0..size-1.
func NewMagazine(name string, size int) Magazine {
	slots := make([]Slot, size)
	for i := range slots {
		slots[i] = Slot{Index: i}
	}
	return Magazine{Name: name, Slots: slots}
}

// Size returns the number of slots.
func (m *Magazine) Size() int {
	return len(m.Slots)
}

// Slot returns the slot at storage position i, or nil.
func (m *Magazine) Slot(i int) *Slot {
	if i < 0 || i >= len(m.Slots) {
		return nil
	}
	return &m.Slots[i]
}

// SlotByIndex returns the slot whose Index equals index, or nil.
func (m *Magazine) SlotByIndex(index int) *Slot {
	// Storage position matches Index unless the slice was reordered externally.
	if s := m.Slot(index); s != nil && s.Index == index {
		return s
	}
	for i := range m.Slots {
		if m.Slots[i].Index == index {
			return &m.Slots[i]
		}
	}
	return nil
}

// Contents returns a deep copy of the slots.
func (m Magazine) Contents() []Slot {
	out := make([]Slot, len(m.Slots))
	for i, s := range m.Slots {
		out[i] = s.Clone()
	}
	return out
}

// Clone returns a deep copy of the magazine.
func (m Magazine) Clone() Magazine {
	return Magazine{Name: m.Name, Slots: m.Contents()}
}

// Occupied counts slots holding at least one entity.
func (m *Magazine) Occupied() int {
	n := 0
	for _, s := range m.Slots {
		if !s.IsEmpty() {
			n++
		}
	}
	return n
}

// Recolor applies template colors to every occupied field of every slot.
func (m *Magazine) Recolor(templates *TemplateSet) {
	ApplyColors(m.Slots, templates)
}

// Validate checks that slot indices are unique and in range.
func (m Magazine) Validate() error {
	seen := make(map[int]bool, len(m.Slots))
	for _, s := range m.Slots {
		if s.Index < 0 || s.Index >= len(m.Slots) {
			return fmt.Errorf("magazine %q: slot index %d out of range", m.Name, s.Index)
		}
		if seen[s.Index] {
			return fmt.Errorf("magazine %q: duplicate slot index %d", m.Name, s.Index)
		}
		seen[s.Index] = true
	}
	return nil
}
