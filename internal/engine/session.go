package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/ToolCrib/internal/model"
)

var (
	// ErrIndexOutOfRange is returned when a slot, library, machine or
	// magazine index does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrStaleSelection is returned when the chosen library entity is no
	// longer at the recorded position.
	ErrStaleSelection = errors.New("library changed since selection")
	// ErrWrongMode is returned when an operation does not fit the move in flight.
	ErrWrongMode = errors.New("operation not valid in current move mode")
)

// Session owns the application state and the transient move state. All
// mutations of machines, magazines and the library go through it.
type Session struct {
	state  model.AppState
	move   MoveState
	logger *zap.Logger
}

// NewSession wraps a loaded state. A nil logger disables logging.
func NewSession(state model.AppState, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	state.Normalize()
	return &Session{state: state, logger: logger}
}

// State returns the live state. Callers may read it but should mutate
// through Session methods.
func (s *Session) State() *model.AppState {
	return &s.state
}

// Snapshot returns a deep copy of the state for saving or undo.
func (s *Session) Snapshot() model.AppState {
	return s.state.Clone()
}

// Restore replaces the state, e.g. after undo or import, and returns to idle.
func (s *Session) Restore(state model.AppState) {
	state.Normalize()
	s.state = state
	s.move = MoveState{}
}

// Move returns the pending move.
func (s *Session) Move() MoveState {
	return s.move
}

// Display returns the filtered and sorted projection of the current magazine.
func (s *Session) Display() []model.Slot {
	return s.state.Display()
}

// ResetStates returns to the magazine screen, clears form selections and
// drops any pending move.
func (s *Session) ResetStates() {
	s.state.Screen = model.ScreenMagazine
	s.state.Selections.ResetTemplates()
	s.move = MoveState{}
}

// ─── Navigation ─────────────────────────────────────────────

// SetScreen switches the active screen.
func (s *Session) SetScreen(screen model.Screen) {
	s.state.Screen = screen
}

// SelectMachine makes machine i current.
func (s *Session) SelectMachine(i int) error {
	if i < 0 || i >= len(s.state.Machines) {
		return fmt.Errorf("machine %d: %w", i, ErrIndexOutOfRange)
	}
	s.state.Selections.Machine = intPtr(i)
	s.move = MoveState{}
	s.logger.Debug("machine selected", zap.Int("machine", i), zap.String("name", s.state.Machines[i].Name))
	return nil
}

// SelectMagazine makes magazine i of the current machine current.
func (s *Session) SelectMagazine(i int) error {
	m := s.state.CurrentMachine()
	if m == nil {
		return nil
	}
	if err := m.SelectMagazine(i); err != nil {
		return fmt.Errorf("%w: %v", ErrIndexOutOfRange, err)
	}
	s.move = MoveState{}
	s.logger.Debug("magazine selected", zap.String("machine", m.Name), zap.Int("magazine", i))
	return nil
}

// SelectSort changes the table sort, applying the implied filter.
func (s *Session) SelectSort(k model.SortKey) {
	s.state.View.SelectSort(k)
}

// SelectFilter changes the table filter.
func (s *Session) SelectFilter(c model.ToolCategory) {
	s.state.View.SelectFilter(c)
}

// SetLibraryCategory chooses which pool the library view shows.
func (s *Session) SetLibraryCategory(kind model.EntityKind) {
	s.state.Library.Category = kind
}

// ─── Add forms ──────────────────────────────────────────────

// SelectTemplate records which template of pool p the open add-form
// starts from. The choice is cleared by ResetStates.
func (s *Session) SelectTemplate(p model.TemplatePool, i int) error {
	if i < 0 || i >= len(s.state.Templates.Pool(p)) {
		return fmt.Errorf("template %s %d: %w", p, i, ErrIndexOutOfRange)
	}
	sel := &s.state.Selections
	switch p {
	case model.PoolInsert:
		sel.InsertTool = i
	case model.PoolHolder:
		sel.Holder = i
	case model.PoolAdapter:
		sel.Adapter = i
	default:
		sel.RotatingTool = i
	}
	return nil
}

// SelectedTemplate returns a copy of the template the add-form for pool p
// currently points at.
func (s *Session) SelectedTemplate(p model.TemplatePool) model.Entity {
	sel := s.state.Selections
	i := sel.RotatingTool
	switch p {
	case model.PoolInsert:
		i = sel.InsertTool
	case model.PoolHolder:
		i = sel.Holder
	case model.PoolAdapter:
		i = sel.Adapter
	}
	pool := s.state.Templates.Pool(p)
	if i < 0 || i >= len(pool) {
		return nil
	}
	switch e := pool[i].(type) {
	case *model.Tool:
		return e.Clone()
	case *model.Holder:
		return e.Clone()
	case *model.Adapter:
		return e.Clone()
	}
	return nil
}

// AddMachine creates a machine, selects it and returns to the magazine screen.
func (s *Session) AddMachine(name string, magazines, size int) (*model.Machine, error) {
	m, err := model.NewMachine(name, magazines, size)
	if err != nil {
		return nil, err
	}
	s.state.Machines = append(s.state.Machines, m)
	s.state.Selections.Machine = intPtr(len(s.state.Machines) - 1)
	s.ResetStates()
	s.logger.Info("machine added",
		zap.String("id", m.ID),
		zap.String("name", name),
		zap.Int("magazines", magazines),
		zap.Int("size", size))
	return &s.state.Machines[len(s.state.Machines)-1], nil
}

// RemoveMachine deletes machine i. Everything in its magazines goes back
// to the library.
func (s *Session) RemoveMachine(i int) error {
	if i < 0 || i >= len(s.state.Machines) {
		return fmt.Errorf("machine %d: %w", i, ErrIndexOutOfRange)
	}
	m := &s.state.Machines[i]
	returned := 0
	for mi := range m.Magazines {
		for si := range m.Magazines[mi].Slots {
			slot := &m.Magazines[mi].Slots[si]
			for _, kind := range model.EntityKinds() {
				if e := slot.Clear(kind); e != nil {
					s.state.Library.Add(e)
					returned++
				}
			}
		}
	}
	name := m.Name
	s.state.Machines = append(s.state.Machines[:i], s.state.Machines[i+1:]...)

	if sel := s.state.Selections.Machine; sel != nil {
		switch {
		case *sel == i:
			s.state.Selections.Machine = nil
		case *sel > i:
			s.state.Selections.Machine = intPtr(*sel - 1)
		}
	}
	s.ResetStates()
	s.logger.Info("machine removed", zap.String("name", name), zap.Int("returned", returned))
	return nil
}

// AddTool validates t and appends it to the library under a fresh ID,
// painted with its template color.
func (s *Session) AddTool(t model.Tool) error {
	return s.addTool(t, false)
}

// AddHolder validates h and appends it to the library under a fresh ID.
func (s *Session) AddHolder(h model.Holder) error {
	return s.addHolder(h, false)
}

// AddAdapter validates a and appends it to the library under a fresh ID.
func (s *Session) AddAdapter(a model.Adapter) error {
	return s.addAdapter(a, false)
}

// ImportTool is AddTool for bulk imports: a color already set on t is
// kept and only an unset one takes the template color.
func (s *Session) ImportTool(t model.Tool) error {
	return s.addTool(t, true)
}

// ImportHolder is the holder counterpart of ImportTool.
func (s *Session) ImportHolder(h model.Holder) error {
	return s.addHolder(h, true)
}

// ImportAdapter is the adapter counterpart of ImportTool.
func (s *Session) ImportAdapter(a model.Adapter) error {
	return s.addAdapter(a, true)
}

func (s *Session) paint(e model.Entity, keepColor bool) {
	if keepColor && !e.DisplayColor().IsZero() {
		return
	}
	s.state.Templates.Recolor(e)
}

func (s *Session) addTool(t model.Tool, keepColor bool) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.ID = model.NewID()
	s.paint(&t, keepColor)
	s.state.Library.AddTool(t)
	s.ResetStates()
	s.logger.Info("tool added", zap.String("type", string(t.Type)), zap.String("name", t.Name),
		zap.Float64("measure", t.Measure()), zap.Stringer("color", t.Color))
	return nil
}

func (s *Session) addHolder(h model.Holder, keepColor bool) error {
	if err := h.Validate(); err != nil {
		return err
	}
	h.ID = model.NewID()
	s.paint(&h, keepColor)
	s.state.Library.AddHolder(h)
	s.ResetStates()
	s.logger.Info("holder added", zap.String("type", string(h.Type)), zap.String("name", h.Name), zap.Stringer("color", h.Color))
	return nil
}

func (s *Session) addAdapter(a model.Adapter, keepColor bool) error {
	if err := a.Validate(); err != nil {
		return err
	}
	a.ID = model.NewID()
	s.paint(&a, keepColor)
	s.state.Library.AddAdapter(a)
	s.ResetStates()
	s.logger.Info("adapter added", zap.String("type", string(a.Type)), zap.String("name", a.Name), zap.Stringer("color", a.Color))
	return nil
}

// RemoveFromLibrary deletes position i of the kind's library pool. A
// pending move is dropped since its recorded index may no longer hold.
func (s *Session) RemoveFromLibrary(kind model.EntityKind, i int) error {
	e := s.state.Library.At(kind, i)
	if e == nil {
		return fmt.Errorf("library %s %d: %w", kind, i, ErrIndexOutOfRange)
	}
	name := e.DisplayName()
	s.state.Library.Remove(kind, i)
	s.move = MoveState{}
	s.logger.Info("library entry removed", zap.Stringer("kind", kind), zap.String("name", name))
	return nil
}

// ─── Colors ─────────────────────────────────────────────────

// ApplyTemplateColor sets the color of template i in pool p and repaints
// every instance of that type in all machines and the library.
func (s *Session) ApplyTemplateColor(p model.TemplatePool, i int, c model.Color) error {
	if err := s.state.Templates.SetColor(p, i, c); err != nil {
		return fmt.Errorf("%w: %v", ErrIndexOutOfRange, err)
	}
	s.state.ApplyColors()
	s.logger.Debug("template color applied", zap.Stringer("pool", p), zap.Int("template", i), zap.String("color", c.Hex()))
	return nil
}

// ─── Lookup ─────────────────────────────────────────────────

// Location describes where an entity currently lives. Machine is -1 for
// the library.
type Location struct {
	Machine  int
	Magazine int
	Slot     int
	Library  int
}

// InLibrary reports whether the location is a library pool.
func (l Location) InLibrary() bool { return l.Machine < 0 }

// Locate returns every place an entity with the given ID is stored.
func (s *Session) Locate(kind model.EntityKind, id string) []Location {
	var out []Location
	for i := 0; i < s.state.Library.Len(kind); i++ {
		if s.state.Library.At(kind, i).EntityID() == id {
			out = append(out, Location{Machine: -1, Magazine: -1, Slot: -1, Library: i})
		}
	}
	for mi := range s.state.Machines {
		for gi := range s.state.Machines[mi].Magazines {
			mag := &s.state.Machines[mi].Magazines[gi]
			for si := range mag.Slots {
				if e := mag.Slots[si].Occupant(kind); e != nil && e.EntityID() == id {
					out = append(out, Location{Machine: mi, Magazine: gi, Slot: mag.Slots[si].Index, Library: -1})
				}
			}
		}
	}
	return out
}
