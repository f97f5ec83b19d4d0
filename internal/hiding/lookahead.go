package hiding

import (
	"github.com/vinser/hideout/internal/dweller"
	"github.com/vinser/hideout/internal/sight"
)

// ZeroExposureScore is what a safe move seen by none of the observer's next
// positions adds to the heuristic. It stands in for 1/0 and beats any 1/c.
const ZeroExposureScore = 2.0

type searchKey struct {
	agent, observer dweller.Position
	depth           int
}

// search runs the recursive look-ahead with memoized sub-results.
type search struct {
	moves *classifier
	memo  map[searchKey]float64
}

func newSearch(moves *classifier) *search {
	return &search{moves: moves, memo: make(map[searchKey]float64)}
}

// Heuristic scores how safe agent is against an observer at observer over
// depth future steps; higher is safer. Each level adds the inverse exposure
// of every safe move, then recurses over every safe move paired with every
// observer step.
func Heuristic(o sight.Oracle, agent, observer dweller.Position, depth int) float64 {
	return newSearch(newClassifier(o)).heuristic(agent, observer, depth)
}

func (s *search) heuristic(agent, observer dweller.Position, depth int) float64 {
	if depth <= 0 {
		return 0
	}
	key := searchKey{agent: agent, observer: observer, depth: depth}
	if v, ok := s.memo[key]; ok {
		return v
	}

	safe, _ := s.moves.classify(observer, agent)
	result := 0.0
	for _, c := range safe {
		result += inverseExposure(c.Score)
	}
	for _, c := range safe {
		for _, d := range dweller.Directions {
			result += s.heuristic(c.Pos, observer.Add(d), depth-1)
		}
	}
	s.memo[key] = result
	return result
}

func inverseExposure(count float64) float64 {
	if count == 0 {
		return ZeroExposureScore
	}
	return 1 / count
}
