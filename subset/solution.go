// Package subset implements the subset specialization: SubsetSolution,
// its Addition/Deletion/Swap/DisjointMultiSwap moves, the neighbourhood
// family that generates them under an optional set of fixed IDs, and
// the size-bounded Problem wrapper that enforces them.
package subset

import (
	"fmt"
	"math/rand"
	"sort"

	"optframe/core"
)

// Solution holds an immutable universe of integer IDs partitioned into
// selected and unselected sets. The invariant selected ∪ unselected =
// universe, selected ∩ unselected = ∅ holds for the lifetime of every
// instance: Select/Deselect only ever move an ID between the two sets,
// never add or remove one from the universe.
type Solution struct {
	universe   []int
	selected   map[int]struct{}
	unselected map[int]struct{}
}

// NewSolution builds a Solution over universe with initiallySelected
// pre-selected. universe must be non-empty and duplicate-free;
// initiallySelected must be a subset of it.
func NewSolution(universe []int, initiallySelected []int) (*Solution, error) {
	if len(universe) == 0 {
		return nil, fmt.Errorf("optframe/subset: universe must not be empty")
	}
	uSet := make(map[int]struct{}, len(universe))
	for _, id := range universe {
		if _, dup := uSet[id]; dup {
			return nil, fmt.Errorf("optframe/subset: duplicate id %d in universe", id)
		}
		uSet[id] = struct{}{}
	}
	selected := make(map[int]struct{}, len(initiallySelected))
	for _, id := range initiallySelected {
		if _, ok := uSet[id]; !ok {
			return nil, fmt.Errorf("optframe/subset: id %d is not in the universe", id)
		}
		selected[id] = struct{}{}
	}
	unselected := make(map[int]struct{}, len(universe)-len(selected))
	for id := range uSet {
		if _, ok := selected[id]; !ok {
			unselected[id] = struct{}{}
		}
	}
	return &Solution{
		universe:   append([]int(nil), universe...),
		selected:   selected,
		unselected: unselected,
	}, nil
}

// CheckedCopy implements core.Solution.
func (s *Solution) CheckedCopy() core.Solution {
	selected := make(map[int]struct{}, len(s.selected))
	for id := range s.selected {
		selected[id] = struct{}{}
	}
	unselected := make(map[int]struct{}, len(s.unselected))
	for id := range s.unselected {
		unselected[id] = struct{}{}
	}
	return &Solution{universe: s.universe, selected: selected, unselected: unselected}
}

// Equals implements core.Solution by comparing selected-set content;
// two Solutions over the same universe with the same selected IDs have
// the same unselected IDs too.
func (s *Solution) Equals(other core.Solution) bool {
	o, ok := other.(*Solution)
	if !ok || len(s.selected) != len(o.selected) {
		return false
	}
	for id := range s.selected {
		if _, ok := o.selected[id]; !ok {
			return false
		}
	}
	return true
}

// Select moves id from unselected to selected. Returns a
// *core.SolutionModificationError if id is not currently unselected.
func (s *Solution) Select(id int) error {
	if _, ok := s.selected[id]; ok {
		return &core.SolutionModificationError{Solution: s, Reason: fmt.Sprintf("id %d is already selected", id)}
	}
	if _, ok := s.unselected[id]; !ok {
		return &core.SolutionModificationError{Solution: s, Reason: fmt.Sprintf("id %d is not in the universe", id)}
	}
	delete(s.unselected, id)
	s.selected[id] = struct{}{}
	return nil
}

// Deselect moves id from selected to unselected. Returns a
// *core.SolutionModificationError if id is not currently selected.
func (s *Solution) Deselect(id int) error {
	if _, ok := s.unselected[id]; ok {
		return &core.SolutionModificationError{Solution: s, Reason: fmt.Sprintf("id %d is already unselected", id)}
	}
	if _, ok := s.selected[id]; !ok {
		return &core.SolutionModificationError{Solution: s, Reason: fmt.Sprintf("id %d is not in the universe", id)}
	}
	delete(s.selected, id)
	s.unselected[id] = struct{}{}
	return nil
}

// SelectAll selects every id in ids, in order, stopping at the first
// error.
func (s *Solution) SelectAll(ids []int) error {
	for _, id := range ids {
		if err := s.Select(id); err != nil {
			return err
		}
	}
	return nil
}

// DeselectAll deselects every id in ids, in order, stopping at the
// first error.
func (s *Solution) DeselectAll(ids []int) error {
	for _, id := range ids {
		if err := s.Deselect(id); err != nil {
			return err
		}
	}
	return nil
}

// IsSelected reports whether id is currently selected.
func (s *Solution) IsSelected(id int) bool {
	_, ok := s.selected[id]
	return ok
}

// Size returns |selected|.
func (s *Solution) Size() int { return len(s.selected) }

// Universe returns a copy of the solution's fixed ID universe.
func (s *Solution) Universe() []int { return append([]int(nil), s.universe...) }

// Selected returns the currently selected IDs in ascending order.
func (s *Solution) Selected() []int { return sortedKeys(s.selected) }

// Unselected returns the currently unselected IDs in ascending order.
func (s *Solution) Unselected() []int { return sortedKeys(s.unselected) }

func sortedKeys(m map[int]struct{}) []int {
	out := make([]int, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// RandomSolutionFactory returns a core.SolutionFactory that builds a
// Solution over universe with targetSize IDs selected at random (or
// every ID, if targetSize exceeds the universe's size).
func RandomSolutionFactory(universe []int, targetSize int) core.SolutionFactory {
	ids := append([]int(nil), universe...)
	return func(rng *rand.Rand) core.Solution {
		shuffled := append([]int(nil), ids...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		n := targetSize
		if n > len(shuffled) {
			n = len(shuffled)
		}
		sol, err := NewSolution(ids, shuffled[:n])
		if err != nil {
			panic(err)
		}
		return sol
	}
}
