package model

import "sort"

// SortKey selects how the magazine table is ordered.
type SortKey int

const (
	SortSlot SortKey = iota
	SortDiameter
	SortDegree
)

func (k SortKey) String() string {
	switch k {
	case SortDiameter:
		return "Diameter"
	case SortDegree:
		return "Degree"
	default:
		return "Slot"
	}
}

// SortKeys lists the sort choices shown in the UI.
func SortKeys() []SortKey {
	return []SortKey{SortSlot, SortDiameter, SortDegree}
}

// ParseSortKey resolves a sort key from its display name.
func ParseSortKey(s string) (SortKey, bool) {
	for _, k := range SortKeys() {
		if k.String() == s {
			return k, true
		}
	}
	return SortSlot, false
}

// matchesCategory reports whether the slot's tool belongs to cat.
// CategoryEmpty matches slots without a tool; CategoryAll matches everything.
func matchesCategory(s Slot, cat ToolCategory) bool {
	switch cat {
	case CategoryAll:
		return true
	case CategoryEmpty:
		return s.Tool == nil
	default:
		return s.Tool != nil && s.Tool.Category() == cat
	}
}

// FilterByCategory returns copies of the slots whose tool matches cat.
// The input is not modified.
func FilterByCategory(contents []Slot, cat ToolCategory) []Slot {
	out := make([]Slot, 0, len(contents))
	for _, s := range contents {
		if matchesCategory(s, cat) {
			out = append(out, s.Clone())
		}
	}
	return out
}

// SortBySlot applies the optional filter, then orders by slot index.
func SortBySlot(contents []Slot, filter *ToolCategory) []Slot {
	cat := CategoryAll
	if filter != nil {
		cat = *filter
	}
	out := FilterByCategory(contents, cat)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Index < out[j].Index
	})
	return out
}

// SortByDiameter keeps only rotating tools and orders them by diameter.
func SortByDiameter(contents []Slot) []Slot {
	out := FilterByCategory(contents, CategoryRotating)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Tool.Diameter < out[j].Tool.Diameter
	})
	return out
}

// SortByDegree keeps only lathe inserts and orders them by angle.
func SortByDegree(contents []Slot) []Slot {
	out := FilterByCategory(contents, CategoryLatheInsert)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Tool.Degree < out[j].Tool.Degree
	})
	return out
}

// ViewSettings is the filter and sort chosen for the magazine table.
type ViewSettings struct {
	Filter ToolCategory `json:"filter"`
	Sort   SortKey      `json:"sort"`
}

// SelectSort changes the sort key. Diameter implies the Rotating filter and
// Degree implies the LatheInsert filter; Slot keeps the current filter.
func (v *ViewSettings) SelectSort(k SortKey) {
	v.Sort = k
	switch k {
	case SortDiameter:
		v.Filter = CategoryRotating
	case SortDegree:
		v.Filter = CategoryLatheInsert
	}
}

// SelectFilter changes the filter. A filter that contradicts the current
// measure sort falls back to slot order.
func (v *ViewSettings) SelectFilter(c ToolCategory) {
	v.Filter = c
	if (v.Sort == SortDiameter && c != CategoryRotating) ||
		(v.Sort == SortDegree && c != CategoryLatheInsert) {
		v.Sort = SortSlot
	}
}

// Reset returns to the unfiltered slot order.
func (v *ViewSettings) Reset() {
	*v = ViewSettings{}
}

// Project computes the display projection of a magazine. The result is a
// deep copy; edits to it never reach the magazine.
func (v ViewSettings) Project(m *Magazine) []Slot {
	if m == nil {
		return nil
	}
	switch v.Sort {
	case SortDiameter:
		return SortByDiameter(m.Slots)
	case SortDegree:
		return SortByDegree(m.Slots)
	default:
		if v.Filter == CategoryAll {
			return SortBySlot(m.Slots, nil)
		}
		f := v.Filter
		return SortBySlot(m.Slots, &f)
	}
}
