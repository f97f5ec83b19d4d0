package dweller

import "math"

// Position represents coordinates on the floor plane.
type Position struct {
	X, Y float64
}

// Direction indexes the fixed direction set.
type Direction int

const (
	North Direction = iota
	South
	West
	East
	NorthEast
	NorthWest
	SouthWest
	SouthEast
)

// Directions holds the unit offsets in the order used for every scan.
// The order decides tie-breaks downstream, so it must never change.
var Directions = [8]Position{
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	diagonal(45),
	diagonal(135),
	diagonal(225),
	diagonal(315),
}

func diagonal(degrees float64) Position {
	rad := degrees / 180 * math.Pi
	return Position{X: math.Cos(rad), Y: math.Sin(rad)}
}

// Offset returns the unit offset for d.
func (d Direction) Offset() Position {
	return Directions[d]
}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case South:
		return "S"
	case West:
		return "W"
	case East:
		return "E"
	case NorthEast:
		return "NE"
	case NorthWest:
		return "NW"
	case SouthWest:
		return "SW"
	case SouthEast:
		return "SE"
	}
	return "?"
}

// Neighbors returns the eight candidate positions around p in direction order.
func Neighbors(p Position) [8]Position {
	var out [8]Position
	for i, d := range Directions {
		out[i] = p.Add(d)
	}
	return out
}

// Add returns p shifted by q.
func (p Position) Add(q Position) Position {
	return Position{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y}
}

// Len returns the length of p treated as a vector.
func (p Position) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the Euclidean distance between p and q.
func (p Position) Dist(q Position) float64 {
	return p.Sub(q).Len()
}

// MoveTowards steps from p to target by at most maxStep, landing exactly on
// target when it is within reach.
func (p Position) MoveTowards(target Position, maxStep float64) Position {
	v := target.Sub(p)
	dist := v.Len()
	if dist <= maxStep || dist == 0 {
		return target
	}
	return Position{X: p.X + v.X/dist*maxStep, Y: p.Y + v.Y/dist*maxStep}
}

// Round snaps p to the nearest integer tile coordinates.
func (p Position) Round() (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}
