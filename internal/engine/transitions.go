package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/ToolCrib/internal/model"
)

// BeginMove starts a move on the slot with the given Slot.Index in the
// current magazine. ToLibrary moves complete immediately; ToMagazine moves
// wait for ChooseLibraryItem and Commit; EditComment waits for CommitComment.
// Tool moves also reset the table to unfiltered slot order.
func (s *Session) BeginMove(mode MoveMode, slotIndex int) error {
	if mode == MoveIdle {
		s.Cancel()
		return nil
	}
	if mode == MoveToolToMagazine || mode == MoveToolToLibrary {
		s.state.View.Reset()
	}
	s.move = MoveState{Mode: mode, MagazineIndex: intPtr(slotIndex)}
	if mode == MoveEditComment {
		s.move.CommentIndex = intPtr(slotIndex)
	}
	s.logger.Debug("move started", zap.Stringer("move", s.move))
	if mode.IsToLibrary() {
		return s.Commit()
	}
	return nil
}

// ChooseLibraryItem records the library entity to move into the slot.
func (s *Session) ChooseLibraryItem(i int) error {
	if !s.move.Mode.IsToMagazine() {
		return fmt.Errorf("choose library item during %s: %w", s.move.Mode, ErrWrongMode)
	}
	e := s.state.Library.At(s.move.Mode.Kind(), i)
	if e == nil {
		return fmt.Errorf("library %s %d: %w", s.move.Mode.Kind(), i, ErrIndexOutOfRange)
	}
	s.move.LibraryIndex = intPtr(i)
	s.move.LibraryID = e.EntityID()
	return nil
}

// Commit executes the pending move and returns to idle. A move with a
// missing endpoint, or with no machine or magazine selected, does nothing.
func (s *Session) Commit() error {
	mode := s.move.Mode
	defer s.ResetStates()

	switch {
	case mode.IsToMagazine():
		return s.commitToMagazine()
	case mode.IsToLibrary():
		return s.commitToLibrary()
	default:
		return nil
	}
}

// CommitComment sets the comment of the slot chosen by BeginMove(MoveEditComment, …).
func (s *Session) CommitComment(text string) error {
	if s.move.Mode != MoveEditComment {
		return fmt.Errorf("commit comment during %s: %w", s.move.Mode, ErrWrongMode)
	}
	defer s.ResetStates()
	if s.move.CommentIndex == nil {
		return nil
	}
	slot, err := s.targetSlot(*s.move.CommentIndex)
	if err != nil || slot == nil {
		return err
	}
	slot.Comment = text
	s.logger.Debug("comment edited", zap.Int("slot", slot.Index), zap.Int("length", len(text)))
	return nil
}

// Cancel drops the pending move without touching any data.
func (s *Session) Cancel() {
	if !s.move.Idle() {
		s.logger.Debug("move cancelled", zap.Stringer("move", s.move))
	}
	s.ResetStates()
}

// MoveToMagazine moves library entity libraryIndex of kind into the slot,
// sending any previous occupant back to the library.
func (s *Session) MoveToMagazine(kind model.EntityKind, libraryIndex, slotIndex int) error {
	if err := s.BeginMove(ModeFor(kind, ToMagazine), slotIndex); err != nil {
		return err
	}
	if err := s.ChooseLibraryItem(libraryIndex); err != nil {
		s.Cancel()
		return err
	}
	return s.Commit()
}

// MoveToLibrary returns the slot's occupant of kind to the library.
func (s *Session) MoveToLibrary(kind model.EntityKind, slotIndex int) error {
	return s.BeginMove(ModeFor(kind, ToLibrary), slotIndex)
}

// EditComment replaces the comment of a slot in the current magazine.
func (s *Session) EditComment(slotIndex int, text string) error {
	if err := s.BeginMove(MoveEditComment, slotIndex); err != nil {
		return err
	}
	return s.CommitComment(text)
}

// targetSlot resolves a Slot.Index in the current magazine. It returns a nil
// slot and no error when no magazine is selected.
func (s *Session) targetSlot(index int) (*model.Slot, error) {
	mag := s.state.CurrentMagazine()
	if mag == nil {
		s.logger.Debug("no magazine selected, move ignored")
		return nil, nil
	}
	slot := mag.SlotByIndex(index)
	if slot == nil {
		return nil, fmt.Errorf("slot %d of %s: %w", index, mag.Name, ErrIndexOutOfRange)
	}
	return slot, nil
}

func (s *Session) commitToMagazine() error {
	kind := s.move.Mode.Kind()
	if s.move.MagazineIndex == nil || s.move.LibraryIndex == nil {
		return nil
	}
	slot, err := s.targetSlot(*s.move.MagazineIndex)
	if err != nil || slot == nil {
		return err
	}

	idx := *s.move.LibraryIndex
	incoming := s.state.Library.At(kind, idx)
	if incoming == nil {
		return fmt.Errorf("library %s %d: %w", kind, idx, ErrIndexOutOfRange)
	}
	if incoming.EntityID() != s.move.LibraryID {
		return fmt.Errorf("library %s %d: %w", kind, idx, ErrStaleSelection)
	}

	evicted := slot.Put(incoming)
	s.state.Templates.Recolor(slot.Occupant(kind))
	if evicted != nil {
		s.state.Library.Add(evicted)
	}
	s.state.Library.Remove(kind, idx)

	fields := []zap.Field{
		zap.Stringer("kind", kind),
		zap.String("entity", slot.Occupant(kind).DisplayName()),
		zap.Int("slot", slot.Index),
	}
	if evicted != nil {
		fields = append(fields, zap.String("evicted", evicted.DisplayName()))
	}
	s.logger.Info("moved to magazine", fields...)
	return nil
}

func (s *Session) commitToLibrary() error {
	kind := s.move.Mode.Kind()
	if s.move.MagazineIndex == nil {
		return nil
	}
	slot, err := s.targetSlot(*s.move.MagazineIndex)
	if err != nil || slot == nil {
		return err
	}
	e := slot.Clear(kind)
	if e == nil {
		s.logger.Debug("slot already empty", zap.Stringer("kind", kind), zap.Int("slot", slot.Index))
		return nil
	}
	s.state.Library.Add(e)
	s.logger.Info("moved to library",
		zap.Stringer("kind", kind),
		zap.String("entity", e.DisplayName()),
		zap.Int("slot", slot.Index))
	return nil
}
