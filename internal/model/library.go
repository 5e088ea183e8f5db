package model

import "slices"

// Library holds the entities that are not assigned to any magazine slot.
// Category selects which pool the library view displays.
type Library struct {
	Category EntityKind `json:"category"`
	Tools    []Tool     `json:"tools"`
	Holders  []Holder   `json:"holders"`
	Adapters []Adapter  `json:"adapters"`
}

// NewLibrary returns an empty library showing tools.
func NewLibrary() Library {
	return Library{
		Category: KindTool,
		Tools:    []Tool{},
		Holders:  []Holder{},
		Adapters: []Adapter{},
	}
}

func (l *Library) AddTool(t Tool)       { l.Tools = append(l.Tools, t) }
func (l *Library) AddHolder(h Holder)   { l.Holders = append(l.Holders, h) }
func (l *Library) AddAdapter(a Adapter) { l.Adapters = append(l.Adapters, a) }

// Add appends an entity to the pool matching its kind. Duplicates are allowed.
func (l *Library) Add(e Entity) {
	switch v := e.(type) {
	case *Tool:
		l.AddTool(*v)
	case *Holder:
		l.AddHolder(*v)
	case *Adapter:
		l.AddAdapter(*v)
	}
}

// Len returns the size of the pool for kind.
func (l *Library) Len(kind EntityKind) int {
	switch kind {
	case KindHolder:
		return len(l.Holders)
	case KindAdapter:
		return len(l.Adapters)
	default:
		return len(l.Tools)
	}
}

// List returns the pool for kind in insertion order. The entities point
// into the library, so SetColor on them mutates the pool.
func (l *Library) List(kind EntityKind) []Entity {
	var out []Entity
	switch kind {
	case KindHolder:
		for i := range l.Holders {
			out = append(out, &l.Holders[i])
		}
	case KindAdapter:
		for i := range l.Adapters {
			out = append(out, &l.Adapters[i])
		}
	default:
		for i := range l.Tools {
			out = append(out, &l.Tools[i])
		}
	}
	return out
}

// At returns the entity at position i of the kind's pool, or nil.
func (l *Library) At(kind EntityKind, i int) Entity {
	if i < 0 || i >= l.Len(kind) {
		return nil
	}
	switch kind {
	case KindHolder:
		return &l.Holders[i]
	case KindAdapter:
		return &l.Adapters[i]
	default:
		return &l.Tools[i]
	}
}

// Remove deletes position i from the kind's pool. It reports false when
// i is out of range.
func (l *Library) Remove(kind EntityKind, i int) bool {
	if i < 0 || i >= l.Len(kind) {
		return false
	}
	switch kind {
	case KindHolder:
		l.Holders = slices.Delete(l.Holders, i, i+1)
	case KindAdapter:
		l.Adapters = slices.Delete(l.Adapters, i, i+1)
	default:
		l.Tools = slices.Delete(l.Tools, i, i+1)
	}
	return true
}

// IndexOf returns the position of the entity with the given ID, or -1.
func (l *Library) IndexOf(kind EntityKind, id string) int {
	for i := 0; i < l.Len(kind); i++ {
		if l.At(kind, i).EntityID() == id {
			return i
		}
	}
	return -1
}

// FindToolByID returns a pointer to the tool with the given ID, or nil.
func (l *Library) FindToolByID(id string) *Tool {
	for i := range l.Tools {
		if l.Tools[i].ID == id {
			return &l.Tools[i]
		}
	}
	return nil
}

// Names returns display names of the kind's pool for UI dropdowns.
func (l *Library) Names(kind EntityKind) []string {
	entities := l.List(kind)
	names := make([]string, len(entities))
	for i, e := range entities {
		names[i] = e.DisplayName()
	}
	return names
}

// Clone returns a deep copy.
func (l Library) Clone() Library {
	return Library{
		Category: l.Category,
		Tools:    append([]Tool{}, l.Tools...),
		Holders:  append([]Holder{}, l.Holders...),
		Adapters: append([]Adapter{}, l.Adapters...),
	}
}

// Recolor applies the template colors to every pooled entity.
func (l *Library) Recolor(templates *TemplateSet) {
	for _, kind := range EntityKinds() {
		for _, e := range l.List(kind) {
			templates.Recolor(e)
		}
	}
}
