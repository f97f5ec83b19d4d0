package hiding

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/vinser/hideout/internal/dweller"
	"github.com/vinser/hideout/internal/isovist"
	"github.com/vinser/hideout/internal/sight"
)

// Outcome is how a tick is counted in the run statistics.
type Outcome int

const (
	// Uncounted leaves the statistics alone.
	Uncounted Outcome = iota
	Hidden
	Spotted
)

func (o Outcome) String() string {
	switch o {
	case Hidden:
		return "hidden"
	case Spotted:
		return "spotted"
	}
	return "uncounted"
}

// Decision is what one tick asks the environment to do.
type Decision struct {
	Ran     bool // false when the rate gate was closed
	Move    bool
	Target  dweller.Position
	Outcome Outcome
}

func stay(outcome Outcome) Decision {
	return Decision{Ran: true, Outcome: outcome}
}

func moveTo(from, to dweller.Position, outcome Outcome) Decision {
	return Decision{Ran: true, Move: to != from, Target: to, Outcome: outcome}
}

// Situation is everything a strategy sees during one tick.
type Situation struct {
	Agent    dweller.Position
	Observer dweller.Position

	oracle sight.Oracle
	grid   *isovist.Grid
	rng    *rand.Rand
	moves  *classifier
	search *search
	cfg    Config
}

func (s *Situation) seen() bool {
	return sight.Seen(s.oracle, s.Agent, s.Observer)
}

func (s *Situation) pick(ps []dweller.Position) dweller.Position {
	return ps[s.rng.Intn(len(ps))]
}

// Strategy is one hiding policy.
type Strategy interface {
	Algorithm() Algorithm
	Decide(s *Situation) (Decision, error)
}

// NewStrategy returns the strategy implementing a.
func NewStrategy(a Algorithm) (Strategy, error) {
	switch a {
	case Baseline:
		return baseline{}, nil
	case LookAhead:
		return lookAhead{}, nil
	case IsovistMetric:
		return isovistMetric{}, nil
	case IsovistLookAhead:
		return isovistMetric{weighted: true}, nil
	case DeepLookAhead:
		return deepLookAhead{}, nil
	}
	return nil, fmt.Errorf("%w: unknown algorithm %d", ErrInvalidConfig, int(a))
}

// baseline hides at random behind any wall the observer cannot see through.
type baseline struct{}

func (baseline) Algorithm() Algorithm { return Baseline }

func (baseline) Decide(s *Situation) (Decision, error) {
	if !s.seen() {
		return stay(Hidden), nil
	}
	var valid, safe []dweller.Position
	for _, pos := range dweller.Neighbors(s.Agent) {
		if s.oracle.IsBlocked(pos) {
			continue
		}
		valid = append(valid, pos)
		if s.oracle.Linecast(pos, s.Observer) == sight.HitWall {
			safe = append(safe, pos)
		}
	}
	switch {
	case len(safe) > 0:
		return moveTo(s.Agent, s.pick(safe), Hidden), nil
	case len(valid) > 0:
		return moveTo(s.Agent, s.pick(valid), Spotted), nil
	}
	return stay(Spotted), nil
}

// lookAhead hides where the fewest of the observer's next positions can see.
type lookAhead struct{}

func (lookAhead) Algorithm() Algorithm { return LookAhead }

func (lookAhead) Decide(s *Situation) (Decision, error) {
	if !s.seen() {
		return stay(Hidden), nil
	}
	safe, valid := s.moves.classify(s.Observer, s.Agent)
	if len(safe) > 0 {
		best := safe[0]
		for _, c := range safe[1:] {
			if c.Score < best.Score {
				best = c
			}
		}
		return moveTo(s.Agent, best.Pos, Hidden), nil
	}
	if len(valid) > 0 {
		return moveTo(s.Agent, s.pick(valid), Spotted), nil
	}
	return stay(Spotted), nil
}

// isovistMetric steps to the least open nearby grid point the observer
// cannot see. The weighted variant refreshes the grid around the observer first.
type isovistMetric struct {
	weighted bool
}

func (m isovistMetric) Algorithm() Algorithm {
	if m.weighted {
		return IsovistLookAhead
	}
	return IsovistMetric
}

func (m isovistMetric) Decide(s *Situation) (Decision, error) {
	if s.grid == nil {
		return Decision{}, isovist.ErrNotBuilt
	}
	if m.weighted {
		if err := s.grid.RecomputeWeighted(s.Observer, s.cfg.IsovistWeight); err != nil {
			return Decision{}, err
		}
	}
	cells, err := s.grid.Neighborhood(s.Agent)
	if err != nil {
		return Decision{}, err
	}

	points := cells[:0]
	for _, c := range cells {
		if !s.oracle.IsBlocked(c.Pos) {
			points = append(points, c)
		}
	}
	if len(points) == 0 {
		return stay(Uncounted), nil
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Visibility < points[j].Visibility
	})

	for _, p := range points {
		if s.oracle.Linecast(p.Pos, s.Observer) != sight.HitObserver {
			return moveTo(s.Agent, p.Pos, Hidden), nil
		}
	}
	if !s.seen() {
		return stay(Hidden), nil
	}
	return moveTo(s.Agent, points[0].Pos, Spotted), nil
}

// deepLookAhead scores every safe move by the recursive heuristic rooted at
// that move and takes the highest.
type deepLookAhead struct{}

func (deepLookAhead) Algorithm() Algorithm { return DeepLookAhead }

func (deepLookAhead) Decide(s *Situation) (Decision, error) {
	safe, valid := s.moves.classify(s.Observer, s.Agent)
	for i := range safe {
		safe[i].Score = s.search.heuristic(safe[i].Pos, s.Observer, s.cfg.LookAheadDepth)
	}
	if len(safe) > 0 {
		best := safe[0]
		for _, c := range safe[1:] {
			if c.Score > best.Score {
				best = c
			}
		}
		return moveTo(s.Agent, best.Pos, Hidden), nil
	}
	if !s.seen() {
		return stay(Hidden), nil
	}
	if len(valid) > 0 {
		return moveTo(s.Agent, s.pick(valid), Spotted), nil
	}
	return stay(Spotted), nil
}
