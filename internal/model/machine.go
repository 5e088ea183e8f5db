package model

import (
	"errors"
	"fmt"
)

// ErrInvalidMachine is returned when machine dimensions are out of range.
var ErrInvalidMachine = errors.New("invalid machine")

// Machine dimension limits.
const (
	MinMagazines    = 1
	MaxMagazines    = 4
	MinMagazineSize = 1
	MaxMagazineSize = 100
)

// Machine owns a fixed set of magazines and tracks the current one.
type Machine struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Magazines       []Magazine `json:"magazines"`
	CurrentMagazine *int       `json:"current_magazine,omitempty"`
}

// NewMachine creates a machine with numMagazines magazines of size slots each.
// The first magazine is current.
func NewMachine(name string, numMagazines, size int) (Machine, error) {
	if numMagazines < MinMagazines || numMagazines > MaxMagazines {
		return Machine{}, fmt.Errorf("%w: %d magazines, want %d..%d",
			ErrInvalidMachine, numMagazines, MinMagazines, MaxMagazines)
	}
	if size < MinMagazineSize || size > MaxMagazineSize {
		return Machine{}, fmt.Errorf("%w: magazine size %d, want %d..%d",
			ErrInvalidMachine, size, MinMagazineSize, MaxMagazineSize)
	}
	mags := make([]Magazine, numMagazines)
	for i := range mags {
		mags[i] = NewMagazine(fmt.Sprintf("Magazine %d", i), size)
	}
	current := 0
	return Machine{
		ID:              NewID(),
		Name:            name,
		Magazines:       mags,
		CurrentMagazine: &current,
	}, nil
}

// MagazineSize returns the slot count shared by all magazines.
func (m *Machine) MagazineSize() int {
	if len(m.Magazines) == 0 {
		return 0
	}
	return m.Magazines[0].Size()
}

// Magazine returns the magazine at position i, or nil.
func (m *Machine) Magazine(i int) *Magazine {
	if i < 0 || i >= len(m.Magazines) {
		return nil
	}
	return &m.Magazines[i]
}

// Current returns the current magazine, or nil when none is selected.
func (m *Machine) Current() *Magazine {
	if m.CurrentMagazine == nil {
		return nil
	}
	return m.Magazine(*m.CurrentMagazine)
}

// SelectMagazine makes magazine i current.
func (m *Machine) SelectMagazine(i int) error {
	if m.Magazine(i) == nil {
		return fmt.Errorf("magazine %d out of range (machine %q has %d)", i, m.Name, len(m.Magazines))
	}
	m.CurrentMagazine = &i
	return nil
}

// MagazineNames returns magazine names for UI dropdowns.
func (m *Machine) MagazineNames() []string {
	names := make([]string, len(m.Magazines))
	for i, mag := range m.Magazines {
		names[i] = mag.Name
	}
	return names
}

// Clone returns a deep copy.
func (m Machine) Clone() Machine {
	c := Machine{ID: m.ID, Name: m.Name, Magazines: make([]Magazine, len(m.Magazines))}
	for i, mag := range m.Magazines {
		c.Magazines[i] = mag.Clone()
	}
	if m.CurrentMagazine != nil {
		cur := *m.CurrentMagazine
		c.CurrentMagazine = &cur
	}
	return c
}

// Recolor applies template colors to every magazine.
func (m *Machine) Recolor(templates *TemplateSet) {
	for i := range m.Magazines {
		m.Magazines[i].Recolor(templates)
	}
}
