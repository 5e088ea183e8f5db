package engine

import (
	"fmt"

	"github.com/piwi3910/ToolCrib/internal/model"
)

// MoveMode is the move in flight. Every mode ends back at MoveIdle.
type MoveMode int

const (
	MoveIdle MoveMode = iota
	MoveToolToMagazine
	MoveToolToLibrary
	MoveHolderToMagazine
	MoveHolderToLibrary
	MoveAdapterToMagazine
	MoveAdapterToLibrary
	MoveEditComment
)

func (m MoveMode) String() string {
	switch m {
	case MoveToolToMagazine:
		return "ToolToMagazine"
	case MoveToolToLibrary:
		return "ToolToLibrary"
	case MoveHolderToMagazine:
		return "HolderToMagazine"
	case MoveHolderToLibrary:
		return "HolderToLibrary"
	case MoveAdapterToMagazine:
		return "AdapterToMagazine"
	case MoveAdapterToLibrary:
		return "AdapterToLibrary"
	case MoveEditComment:
		return "EditComment"
	default:
		return "Idle"
	}
}

// Direction is where a move takes an entity.
type Direction int

const (
	ToMagazine Direction = iota
	ToLibrary
)

func (d Direction) String() string {
	if d == ToLibrary {
		return "ToLibrary"
	}
	return "ToMagazine"
}

// ModeFor returns the move mode for an entity kind and direction.
func ModeFor(kind model.EntityKind, dir Direction) MoveMode {
	switch kind {
	case model.KindHolder:
		if dir == ToLibrary {
			return MoveHolderToLibrary
		}
		return MoveHolderToMagazine
	case model.KindAdapter:
		if dir == ToLibrary {
			return MoveAdapterToLibrary
		}
		return MoveAdapterToMagazine
	default:
		if dir == ToLibrary {
			return MoveToolToLibrary
		}
		return MoveToolToMagazine
	}
}

// Kind returns the entity kind moved by m. It is meaningless for
// MoveIdle and MoveEditComment.
func (m MoveMode) Kind() model.EntityKind {
	switch m {
	case MoveHolderToMagazine, MoveHolderToLibrary:
		return model.KindHolder
	case MoveAdapterToMagazine, MoveAdapterToLibrary:
		return model.KindAdapter
	default:
		return model.KindTool
	}
}

// IsToMagazine reports whether m waits for a library selection.
func (m MoveMode) IsToMagazine() bool {
	return m == MoveToolToMagazine || m == MoveHolderToMagazine || m == MoveAdapterToMagazine
}

// IsToLibrary reports whether m returns a slot occupant to the library.
func (m MoveMode) IsToLibrary() bool {
	return m == MoveToolToLibrary || m == MoveHolderToLibrary || m == MoveAdapterToLibrary
}

// MoveState records the endpoints of a pending move. It is never persisted.
type MoveState struct {
	Mode MoveMode
	// LibraryIndex and LibraryID identify the chosen library entity. The ID is
	// checked again at commit so a changed pool cannot move the wrong entity.
	LibraryIndex *int
	LibraryID    string
	// MagazineIndex is the Slot.Index of the target slot in the current magazine.
	MagazineIndex *int
	CommentIndex  *int
}

// Idle reports whether no move is in flight.
func (ms MoveState) Idle() bool {
	return ms.Mode == MoveIdle
}

func (ms MoveState) String() string {
	idx := func(p *int) string {
		if p == nil {
			return "-"
		}
		return fmt.Sprint(*p)
	}
	return fmt.Sprintf("%s(library=%s slot=%s comment=%s)",
		ms.Mode, idx(ms.LibraryIndex), idx(ms.MagazineIndex), idx(ms.CommentIndex))
}

func intPtr(i int) *int { return &i }
