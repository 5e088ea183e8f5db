package model

// Screen is the active view of the main window.
type Screen int

const (
	ScreenMagazine Screen = iota
	ScreenAddTool
	ScreenAddHolder
	ScreenAddAdapter
	ScreenAddMachine
	ScreenLibrary
	ScreenSettings
	ScreenCalculations
)

func (s Screen) String() string {
	switch s {
	case ScreenAddTool:
		return "AddTool"
	case ScreenAddHolder:
		return "AddHolder"
	case ScreenAddAdapter:
		return "AddAdapter"
	case ScreenAddMachine:
		return "AddMachine"
	case ScreenLibrary:
		return "ShowLibrary"
	case ScreenSettings:
		return "Settings"
	case ScreenCalculations:
		return "Calculations"
	default:
		return "ShowMagazine"
	}
}

// Selections are the indices picked in forms and dropdowns. Template
// indices return to 0 whenever a form closes.
type Selections struct {
	Machine      *int `json:"machine,omitempty"`
	RotatingTool int  `json:"rotating_tool"`
	InsertTool   int  `json:"insert_tool"`
	Holder       int  `json:"holder"`
	Adapter      int  `json:"adapter"`
}

// ResetTemplates clears the template indices.
func (s *Selections) ResetTemplates() {
	s.RotatingTool = 0
	s.InsertTool = 0
	s.Holder = 0
	s.Adapter = 0
}

// AppState is everything persisted between runs.
type AppState struct {
	Machines   []Machine    `json:"machines"`
	Selections Selections   `json:"selections"`
	Screen     Screen       `json:"screen"`
	Library    Library      `json:"library"`
	Templates  TemplateSet  `json:"templates"`
	View       ViewSettings `json:"view"`
}

// DefaultAppState returns the state of a fresh installation.
func DefaultAppState() AppState {
	return AppState{
		Machines:  []Machine{},
		Library:   NewLibrary(),
		Templates: DefaultTemplates(),
	}
}

// CurrentMachine returns the selected machine, or nil.
func (s *AppState) CurrentMachine() *Machine {
	if s.Selections.Machine == nil {
		return nil
	}
	i := *s.Selections.Machine
	if i < 0 || i >= len(s.Machines) {
		return nil
	}
	return &s.Machines[i]
}

// CurrentMagazine returns the current magazine of the selected machine, or nil.
func (s *AppState) CurrentMagazine() *Magazine {
	m := s.CurrentMachine()
	if m == nil {
		return nil
	}
	return m.Current()
}

// Display returns the filtered and sorted projection of the current magazine.
func (s *AppState) Display() []Slot {
	return s.View.Project(s.CurrentMagazine())
}

// MachineNames returns machine names for UI dropdowns.
func (s *AppState) MachineNames() []string {
	names := make([]string, len(s.Machines))
	for i, m := range s.Machines {
		names[i] = m.Name
	}
	return names
}

// ApplyColors repaints every machine and the library from the templates.
func (s *AppState) ApplyColors() {
	for i := range s.Machines {
		s.Machines[i].Recolor(&s.Templates)
	}
	s.Library.Recolor(&s.Templates)
}

// Normalize repairs a state decoded from an older or damaged file: nil
// pools become empty and dangling selections are dropped.
func (s *AppState) Normalize() {
	if s.Machines == nil {
		s.Machines = []Machine{}
	}
	if s.Library.Tools == nil {
		s.Library.Tools = []Tool{}
	}
	if s.Library.Holders == nil {
		s.Library.Holders = []Holder{}
	}
	if s.Library.Adapters == nil {
		s.Library.Adapters = []Adapter{}
	}
	defaults := DefaultTemplates()
	if len(s.Templates.RotatingTools) == 0 {
		s.Templates.RotatingTools = defaults.RotatingTools
	}
	if len(s.Templates.InsertTools) == 0 {
		s.Templates.InsertTools = defaults.InsertTools
	}
	if len(s.Templates.Holders) == 0 {
		s.Templates.Holders = defaults.Holders
	}
	if len(s.Templates.Adapters) == 0 {
		s.Templates.Adapters = defaults.Adapters
	}
	if s.Selections.Machine != nil && s.CurrentMachine() == nil {
		s.Selections.Machine = nil
	}
	for i := range s.Machines {
		m := &s.Machines[i]
		if m.CurrentMagazine != nil && m.Current() == nil {
			m.CurrentMagazine = nil
		}
	}
}

// Clone returns a deep copy suitable for undo snapshots.
func (s AppState) Clone() AppState {
	c := AppState{
		Machines:   make([]Machine, len(s.Machines)),
		Selections: s.Selections,
		Screen:     s.Screen,
		Library:    s.Library.Clone(),
		Templates:  s.Templates.Clone(),
		View:       s.View,
	}
	if s.Selections.Machine != nil {
		m := *s.Selections.Machine
		c.Selections.Machine = &m
	}
	for i, m := range s.Machines {
		c.Machines[i] = m.Clone()
	}
	return c
}
