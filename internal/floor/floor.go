package floor

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/vinser/hideout/internal/dweller"
	"github.com/vinser/hideout/internal/sight"
	"github.com/vinser/maze"
)

// ItemType represents a type of tile on the floor.
type ItemType int

const (
	Empty ItemType = iota
	Wall
)

const (
	// Footprint is the radius used for obstacle overlap and for the observer body.
	Footprint = 0.5
	// Maze generation defaults
	DenWidth  = 5
	DenHeight = 3
	Bias      = 0.2
)

var ErrBadLayout = errors.New("bad floor layout")

// Floor is a grid of unit wall tiles. Tile (x, y) covers the square centered
// on the integer point (x, y). Y grows upwards. Anything outside the grid is open.
type Floor struct {
	Seed          int64
	Items         [][]ItemType // indexed [y][x]
	AgentStart    *dweller.Position
	ObserverStart *dweller.Position
	width         int
	height        int
}

// Open returns an empty floor of the given size.
func Open(width, height int) *Floor {
	items := make([][]ItemType, height)
	for y := range items {
		items[y] = make([]ItemType, width)
	}
	return &Floor{Items: items, width: width, height: height}
}

// Parse builds a floor from text rows, top row first.
// '#' is a wall, '.' or ' ' is open, 'A' and 'O' mark agent and observer starts.
func Parse(rows []string) (*Floor, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadLayout)
	}
	width := len(rows[0])
	f := Open(width, len(rows))
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrBadLayout, r, len(row), width)
		}
		y := len(rows) - 1 - r
		for x, ch := range row {
			switch ch {
			case '#':
				f.Items[y][x] = Wall
			case '.', ' ':
			case 'A':
				f.AgentStart = &dweller.Position{X: float64(x), Y: float64(y)}
			case 'O':
				f.ObserverStart = &dweller.Position{X: float64(x), Y: float64(y)}
			default:
				return nil, fmt.Errorf("%w: unexpected %q at row %d column %d", ErrBadLayout, ch, r, x)
			}
		}
	}
	return f, nil
}

// Generate carves a maze and turns it into a floor. The maze start becomes
// the agent start and the maze end becomes the observer start.
func Generate(seed int64, width, height int) (*Floor, error) {
	m, err := maze.New(width, height, DenWidth, DenHeight)
	if err != nil {
		return nil, err
	}
	m.Generate(seed, nil, nil, nil, "top", Bias)

	f := Open(m.Width(), m.Height())
	f.Seed = seed
	for row := 0; row < m.Height(); row++ {
		y := m.Height() - 1 - row
		for x := 0; x < m.Width(); x++ {
			cell, ok := m.Cell(x, row)
			if !ok {
				continue
			}
			pos := dweller.Position{X: float64(x), Y: float64(y)}
			switch cell {
			case maze.Path:
			case maze.Start:
				f.AgentStart = &pos
			case maze.End:
				f.ObserverStart = &pos
			default:
				f.Items[y][x] = Wall
			}
		}
	}
	return f, nil
}

// Width returns the number of tile columns.
func (f *Floor) Width() int {
	return f.width
}

// Height returns the number of tile rows.
func (f *Floor) Height() int {
	return f.height
}

// ItemAt returns the tile at the specified coordinates.
func (f *Floor) ItemAt(x, y int) (ItemType, error) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return Empty, errors.New("out of bounds")
	}
	return f.Items[y][x], nil
}

// IsWall reports whether tile (x, y) is a wall. Out of bounds is open.
func (f *Floor) IsWall(x, y int) bool {
	item, err := f.ItemAt(x, y)
	return err == nil && item == Wall
}

// SetWall toggles a wall tile. Out of bounds is ignored.
func (f *Floor) SetWall(x, y int, wall bool) {
	if _, err := f.ItemAt(x, y); err != nil {
		return
	}
	if wall {
		f.Items[y][x] = Wall
	} else {
		f.Items[y][x] = Empty
	}
}

// IsBlocked reports whether a circle of Footprint radius at p overlaps a wall.
// Touching a wall edge is not an overlap.
func (f *Floor) IsBlocked(p dweller.Position) bool {
	x0, x1 := int(math.Floor(p.X-1)), int(math.Ceil(p.X+1))
	y0, y1 := int(math.Floor(p.Y-1)), int(math.Ceil(p.Y+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !f.IsWall(x, y) {
				continue
			}
			cx := clamp(p.X, float64(x)-0.5, float64(x)+0.5)
			cy := clamp(p.Y, float64(y)-0.5, float64(y)+0.5)
			dx, dy := p.X-cx, p.Y-cy
			if dx*dx+dy*dy < Footprint*Footprint {
				return true
			}
		}
	}
	return false
}

// HasLineOfSight reports whether the segment a-b crosses no wall.
func (f *Floor) HasLineOfSight(a, b dweller.Position) bool {
	_, hit := f.firstWall(a, b)
	return !hit
}

// Linecast casts from toward an observer body centered at observer and
// reports which is reached first. A tie goes to the wall.
func (f *Floor) Linecast(from, observer dweller.Position) sight.Hit {
	dist := from.Dist(observer)
	tBody := 0.0
	if dist > Footprint {
		tBody = 1 - Footprint/dist
	}
	if tWall, hit := f.firstWall(from, observer); hit && tWall <= tBody {
		return sight.HitWall
	}
	return sight.HitObserver
}

// firstWall returns the segment parameter where a-b first enters a wall.
func (f *Floor) firstWall(a, b dweller.Position) (float64, bool) {
	d := b.Sub(a)
	x0 := int(math.Floor(math.Min(a.X, b.X)))
	x1 := int(math.Ceil(math.Max(a.X, b.X)))
	y0 := int(math.Floor(math.Min(a.Y, b.Y)))
	y1 := int(math.Ceil(math.Max(a.Y, b.Y)))
	best, found := math.Inf(1), false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !f.IsWall(x, y) {
				continue
			}
			t, hit := segmentBox(a, d, float64(x)-0.5, float64(x)+0.5, float64(y)-0.5, float64(y)+0.5)
			if hit && t < best {
				best, found = t, true
			}
		}
	}
	return best, found
}

// segmentBox clips a+t*d, t in [0,1], against an axis aligned box and returns
// the entry parameter. The clipped interval must have positive length, so
// grazing an edge or corner does not count.
func segmentBox(a, d dweller.Position, minX, maxX, minY, maxY float64) (float64, bool) {
	t0, t1 := 0.0, 1.0
	var ok bool
	if t0, t1, ok = clip(a.X, d.X, minX, maxX, t0, t1); !ok {
		return 0, false
	}
	if t0, t1, ok = clip(a.Y, d.Y, minY, maxY, t0, t1); !ok {
		return 0, false
	}
	return t0, t0 < t1
}

func clip(origin, delta, lo, hi, t0, t1 float64) (float64, float64, bool) {
	if delta == 0 {
		return t0, t1, origin > lo && origin < hi
	}
	ta, tb := (lo-origin)/delta, (hi-origin)/delta
	if ta > tb {
		ta, tb = tb, ta
	}
	t0 = math.Max(t0, ta)
	t1 = math.Min(t1, tb)
	return t0, t1, t0 < t1
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// String renders the floor top row first, the inverse of Parse.
func (f *Floor) String() string {
	var sb strings.Builder
	for y := f.height - 1; y >= 0; y-- {
		for x := 0; x < f.width; x++ {
			if f.Items[y][x] == Wall {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
