// Package sight defines the visibility oracle the hiding engine consumes.
// The engine never looks at geometry directly; everything it knows about
// walls and bodies comes through these calls.
package sight

import "github.com/vinser/hideout/internal/dweller"

// Hit names the first thing a linecast runs into.
type Hit int

const (
	// HitNone means the segment reported no obstruction at all.
	HitNone Hit = iota
	// HitWall means a wall is reached before the observer's body.
	HitWall
	// HitObserver means the observer's body is reached first: the origin is seen.
	HitObserver
)

func (h Hit) String() string {
	switch h {
	case HitWall:
		return "wall"
	case HitObserver:
		return "observer"
	}
	return "none"
}

// LineOfSight answers wall-only visibility between two points.
type LineOfSight interface {
	HasLineOfSight(a, b dweller.Position) bool
}

// Oracle is the full contract: obstacle footprint, wall-only line of sight,
// and a linecast toward an observer body that tells walls and bodies apart.
type Oracle interface {
	LineOfSight
	IsBlocked(p dweller.Position) bool
	Linecast(from, observer dweller.Position) Hit
}

// Seen reports whether an observer standing at observer sees from.
func Seen(o Oracle, from, observer dweller.Position) bool {
	return o.Linecast(from, observer) == HitObserver
}
