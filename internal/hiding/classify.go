package hiding

import (
	"github.com/vinser/hideout/internal/dweller"
	"github.com/vinser/hideout/internal/sight"
)

// Candidate is a possible next position with a strategy-specific score.
type Candidate struct {
	Pos   dweller.Position
	Score float64
}

// ClassifyMoves splits the unblocked neighbors of agent by what the observer
// at its current position sees. A neighbor hidden behind a wall is safe and is
// scored by how many of the observer's eight next positions would see it
// (lower is safer). Any other unblocked neighbor is only valid. Both results
// keep direction order.
func ClassifyMoves(o sight.Oracle, observer, agent dweller.Position) (safe []Candidate, valid []dweller.Position) {
	for _, pos := range dweller.Neighbors(agent) {
		if o.IsBlocked(pos) {
			continue
		}
		if o.Linecast(pos, observer) != sight.HitWall {
			valid = append(valid, pos)
			continue
		}
		exposure := 0
		for _, marker := range dweller.Neighbors(observer) {
			if o.Linecast(pos, marker) == sight.HitObserver {
				exposure++
			}
		}
		safe = append(safe, Candidate{Pos: pos, Score: float64(exposure)})
	}
	return safe, valid
}

// moveSet is a memoized ClassifyMoves result.
type moveSet struct {
	safe  []Candidate
	valid []dweller.Position
}

type pairKey struct {
	observer, agent dweller.Position
}

// classifier memoizes ClassifyMoves for the lifetime of one tick.
type classifier struct {
	oracle sight.Oracle
	memo   map[pairKey]moveSet
}

func newClassifier(o sight.Oracle) *classifier {
	return &classifier{oracle: o, memo: make(map[pairKey]moveSet)}
}

// classify returns fresh slices that the caller may modify.
func (c *classifier) classify(observer, agent dweller.Position) ([]Candidate, []dweller.Position) {
	key := pairKey{observer: observer, agent: agent}
	ms, ok := c.memo[key]
	if !ok {
		ms.safe, ms.valid = ClassifyMoves(c.oracle, observer, agent)
		c.memo[key] = ms
	}
	return append([]Candidate(nil), ms.safe...), append([]dweller.Position(nil), ms.valid...)
}
