package core

import "math/rand"

// Neighbourhood is a factory of moves applicable to a given solution.
// Implementations must be safe for concurrent use by independent
// searches: RandomMove and AllMoves only read the solution they are
// given, never mutate it.
type Neighbourhood interface {
	// RandomMove returns a single random move for sol, or nil if no
	// move can be generated (e.g. the relevant candidate set is empty).
	RandomMove(sol Solution, rng *rand.Rand) Move
	// AllMoves returns every move that can be generated for sol. May
	// return an empty slice if none can be generated.
	AllMoves(sol Solution) []Move
}
