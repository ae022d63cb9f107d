package subset

import (
	"errors"
	"fmt"

	"optframe/core"
)

// Move is a pair (added, deleted) of disjoint ID sets: added IDs must
// currently be unselected and deleted IDs must currently be selected.
// Addition (|added|=1, |deleted|=0), Deletion (|added|=0, |deleted|=1),
// Swap (|added|=|deleted|=1) and DisjointMultiSwap (|added|=|deleted|=k)
// are all this same struct under different constructors.
type Move struct {
	added   []int
	deleted []int
}

// NewAddition builds a move that selects id.
func NewAddition(id int) *Move { return &Move{added: []int{id}} }

// NewDeletion builds a move that deselects id.
func NewDeletion(id int) *Move { return &Move{deleted: []int{id}} }

// NewSwap builds a move that deselects delID and selects addID.
func NewSwap(addID, delID int) *Move { return &Move{added: []int{addID}, deleted: []int{delID}} }

// NewDisjointMultiSwap builds a move that deselects every ID in
// deleted and selects every ID in added. added and deleted must be
// non-empty, equal in length, and disjoint from each other.
func NewDisjointMultiSwap(added, deleted []int) (*Move, error) {
	if len(added) == 0 || len(added) != len(deleted) {
		return nil, errors.New("optframe/subset: disjoint multi-swap requires equal, non-zero added/deleted counts")
	}
	seen := make(map[int]struct{}, len(added)+len(deleted))
	for _, id := range added {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("optframe/subset: duplicate id %d in added set", id)
		}
		seen[id] = struct{}{}
	}
	for _, id := range deleted {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("optframe/subset: id %d appears in both added and deleted sets", id)
		}
		seen[id] = struct{}{}
	}
	return &Move{added: append([]int(nil), added...), deleted: append([]int(nil), deleted...)}, nil
}

// Added returns a copy of the IDs this move selects.
func (m *Move) Added() []int { return append([]int(nil), m.added...) }

// Deleted returns a copy of the IDs this move deselects.
func (m *Move) Deleted() []int { return append([]int(nil), m.deleted...) }

// Apply implements core.Move: deletions are applied before additions,
// which is safe precisely because the two sets are disjoint by
// construction.
func (m *Move) Apply(sol core.Solution) error {
	s, ok := sol.(*Solution)
	if !ok {
		return &core.SolutionModificationError{Solution: sol, Reason: "move applied to an incompatible solution type"}
	}
	for _, id := range m.deleted {
		if err := s.Deselect(id); err != nil {
			return err
		}
	}
	for _, id := range m.added {
		if err := s.Select(id); err != nil {
			return err
		}
	}
	return nil
}

// Undo implements core.Move: the exact inverse order of Apply.
func (m *Move) Undo(sol core.Solution) error {
	s, ok := sol.(*Solution)
	if !ok {
		return &core.SolutionModificationError{Solution: sol, Reason: "move undone on an incompatible solution type"}
	}
	for _, id := range m.added {
		if err := s.Deselect(id); err != nil {
			return err
		}
	}
	for _, id := range m.deleted {
		if err := s.Select(id); err != nil {
			return err
		}
	}
	return nil
}
