package subset

import (
	"errors"
	"math/rand"

	"optframe/core"
)

// fixedSet holds the IDs a neighbourhood must never touch. All of the
// concrete neighbourhoods below embed one and filter their candidate
// sets through it, as the original design's SubsetNeighbourhood
// superclass does.
type fixedSet struct {
	ids map[int]struct{}
}

func newFixedSet(fixedIDs []int) fixedSet {
	ids := make(map[int]struct{}, len(fixedIDs))
	for _, id := range fixedIDs {
		ids[id] = struct{}{}
	}
	return fixedSet{ids: ids}
}

// addCandidates returns sol's unselected IDs, excluding fixed ones.
func (f fixedSet) addCandidates(sol *Solution) []int {
	out := make([]int, 0, len(sol.unselected))
	for _, id := range sol.Unselected() {
		if _, fixed := f.ids[id]; !fixed {
			out = append(out, id)
		}
	}
	return out
}

// removeCandidates returns sol's selected IDs, excluding fixed ones.
func (f fixedSet) removeCandidates(sol *Solution) []int {
	out := make([]int, 0, len(sol.selected))
	for _, id := range sol.Selected() {
		if _, fixed := f.ids[id]; !fixed {
			out = append(out, id)
		}
	}
	return out
}

func asSubsetSolution(sol core.Solution) *Solution {
	s, _ := sol.(*Solution)
	return s
}

// SingleAdditionNeighbourhood generates Addition moves over sol's
// unselected, non-fixed IDs.
type SingleAdditionNeighbourhood struct{ fixed fixedSet }

// NewSingleAdditionNeighbourhood builds the neighbourhood, excluding
// fixedIDs from every candidate set it produces.
func NewSingleAdditionNeighbourhood(fixedIDs ...int) *SingleAdditionNeighbourhood {
	return &SingleAdditionNeighbourhood{fixed: newFixedSet(fixedIDs)}
}

// RandomMove implements core.Neighbourhood.
func (n *SingleAdditionNeighbourhood) RandomMove(sol core.Solution, rng *rand.Rand) core.Move {
	cand := n.fixed.addCandidates(asSubsetSolution(sol))
	if len(cand) == 0 {
		return nil
	}
	return NewAddition(cand[rng.Intn(len(cand))])
}

// AllMoves implements core.Neighbourhood.
func (n *SingleAdditionNeighbourhood) AllMoves(sol core.Solution) []core.Move {
	cand := n.fixed.addCandidates(asSubsetSolution(sol))
	out := make([]core.Move, len(cand))
	for i, id := range cand {
		out[i] = NewAddition(id)
	}
	return out
}

// SingleDeletionNeighbourhood generates Deletion moves over sol's
// selected, non-fixed IDs.
type SingleDeletionNeighbourhood struct{ fixed fixedSet }

// NewSingleDeletionNeighbourhood builds the neighbourhood, excluding
// fixedIDs from every candidate set it produces.
func NewSingleDeletionNeighbourhood(fixedIDs ...int) *SingleDeletionNeighbourhood {
	return &SingleDeletionNeighbourhood{fixed: newFixedSet(fixedIDs)}
}

// RandomMove implements core.Neighbourhood.
func (n *SingleDeletionNeighbourhood) RandomMove(sol core.Solution, rng *rand.Rand) core.Move {
	cand := n.fixed.removeCandidates(asSubsetSolution(sol))
	if len(cand) == 0 {
		return nil
	}
	return NewDeletion(cand[rng.Intn(len(cand))])
}

// AllMoves implements core.Neighbourhood.
func (n *SingleDeletionNeighbourhood) AllMoves(sol core.Solution) []core.Move {
	cand := n.fixed.removeCandidates(asSubsetSolution(sol))
	out := make([]core.Move, len(cand))
	for i, id := range cand {
		out[i] = NewDeletion(id)
	}
	return out
}

// SingleSwapNeighbourhood generates Swap moves over the cross-product
// of sol's add and remove candidates. Thread-safe for concurrent use
// by independent searches, since it only ever reads sol.
type SingleSwapNeighbourhood struct{ fixed fixedSet }

// NewSingleSwapNeighbourhood builds the neighbourhood, excluding
// fixedIDs from every candidate set it produces.
func NewSingleSwapNeighbourhood(fixedIDs ...int) *SingleSwapNeighbourhood {
	return &SingleSwapNeighbourhood{fixed: newFixedSet(fixedIDs)}
}

// RandomMove implements core.Neighbourhood.
func (n *SingleSwapNeighbourhood) RandomMove(sol core.Solution, rng *rand.Rand) core.Move {
	s := asSubsetSolution(sol)
	add := n.fixed.addCandidates(s)
	del := n.fixed.removeCandidates(s)
	if len(add) == 0 || len(del) == 0 {
		return nil
	}
	return NewSwap(add[rng.Intn(len(add))], del[rng.Intn(len(del))])
}

// AllMoves implements core.Neighbourhood.
func (n *SingleSwapNeighbourhood) AllMoves(sol core.Solution) []core.Move {
	s := asSubsetSolution(sol)
	add := n.fixed.addCandidates(s)
	del := n.fixed.removeCandidates(s)
	out := make([]core.Move, 0, len(add)*len(del))
	for _, a := range add {
		for _, d := range del {
			out = append(out, NewSwap(a, d))
		}
	}
	return out
}

// DisjointMultiSwapNeighbourhood generates moves that swap k disjoint
// added IDs for k disjoint deleted IDs.
type DisjointMultiSwapNeighbourhood struct {
	fixed fixedSet
	k     int
}

// NewDisjointMultiSwapNeighbourhood builds the neighbourhood for a
// fixed swap size k, which must be positive.
func NewDisjointMultiSwapNeighbourhood(k int, fixedIDs ...int) (*DisjointMultiSwapNeighbourhood, error) {
	if k <= 0 {
		return nil, errors.New("optframe/subset: disjoint multi-swap neighbourhood requires k > 0")
	}
	return &DisjointMultiSwapNeighbourhood{fixed: newFixedSet(fixedIDs), k: k}, nil
}

// RandomMove implements core.Neighbourhood. Returns nil if either
// candidate set has fewer than k members.
func (n *DisjointMultiSwapNeighbourhood) RandomMove(sol core.Solution, rng *rand.Rand) core.Move {
	s := asSubsetSolution(sol)
	add := n.fixed.addCandidates(s)
	del := n.fixed.removeCandidates(s)
	if len(add) < n.k || len(del) < n.k {
		return nil
	}
	mv, err := NewDisjointMultiSwap(samplePick(add, n.k, rng), samplePick(del, n.k, rng))
	if err != nil {
		return nil
	}
	return mv
}

// AllMoves implements core.Neighbourhood: every k-combination of add
// candidates crossed with every k-combination of remove candidates.
func (n *DisjointMultiSwapNeighbourhood) AllMoves(sol core.Solution) []core.Move {
	s := asSubsetSolution(sol)
	add := n.fixed.addCandidates(s)
	del := n.fixed.removeCandidates(s)
	if len(add) < n.k || len(del) < n.k {
		return nil
	}
	addCombos := combinations(add, n.k)
	delCombos := combinations(del, n.k)
	out := make([]core.Move, 0, len(addCombos)*len(delCombos))
	for _, a := range addCombos {
		for _, d := range delCombos {
			mv, err := NewDisjointMultiSwap(a, d)
			if err != nil {
				continue
			}
			out = append(out, mv)
		}
	}
	return out
}

// samplePick returns k distinct elements chosen uniformly at random
// from ids, by shuffling a scratch copy and taking its first k.
func samplePick(ids []int, k int, rng *rand.Rand) []int {
	pool := append([]int(nil), ids...)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return append([]int(nil), pool[:k]...)
}

// combinations enumerates every k-combination of ids, in lexicographic
// order of index.
func combinations(ids []int, k int) [][]int {
	var out [][]int
	n := len(ids)
	if k > n {
		return out
	}
	combo := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			out = append(out, append([]int(nil), combo...))
			return
		}
		for i := start; i <= n-(k-depth); i++ {
			combo[depth] = ids[i]
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
	return out
}
