// Package isovist keeps a unit-spaced grid of sample points over the floor,
// each scored by how many other points it can see.
package isovist

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vinser/hideout/internal/dweller"
	"github.com/vinser/hideout/internal/logger"
	"github.com/vinser/hideout/internal/sight"
)

// ProximityThreshold is the distance from the observer within which a visible
// point is weighted by RecomputeWeighted.
const ProximityThreshold = 1.5

var ErrNotBuilt = errors.New("isovist grid is not built")

// Index addresses a cell; I runs along X, J along Y.
type Index struct {
	I, J int
}

// Cell is one sample point and its visibility count.
type Cell struct {
	Index      Index
	Pos        dweller.Position
	Visibility int
}

// Grid is the isovist grid. It is built once, then only its counts change.
type Grid struct {
	width   int
	height  int
	origin  dweller.Position
	cells   [][]Cell
	visible [][][]Index // visible[i][j] lists every other cell seen from (i, j)
	built   bool
}

// New lays out width×height cells at unit spacing from origin.
// Counts stay zero and queries fail until Build is called.
func New(width, height int, origin dweller.Position) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("isovist grid %dx%d: size must be positive", width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
		origin: origin,
		cells:  make([][]Cell, width),
	}
	for i := range g.cells {
		g.cells[i] = make([]Cell, height)
		for j := range g.cells[i] {
			g.cells[i][j] = Cell{
				Index: Index{I: i, J: j},
				Pos:   origin.Add(dweller.Position{X: float64(i), Y: float64(j)}),
			}
		}
	}
	return g, nil
}

// Build runs the all-pairs pass: each cell's count becomes the number of
// other cells it has a clear line to. Walls are static, so the visible pairs
// are kept for later recomputes.
func (g *Grid) Build(los sight.LineOfSight) {
	log := logger.Log.WithFields(logrus.Fields{
		"component": "isovist",
		"width":     g.width,
		"height":    g.height,
	})
	log.Debug("Building isovist grid.")

	g.visible = make([][][]Index, g.width)
	for i := range g.cells {
		g.visible[i] = make([][]Index, g.height)
		for j := range g.cells[i] {
			pt := &g.cells[i][j]
			pt.Visibility = 0
			for oi := range g.cells {
				for oj := range g.cells[oi] {
					if oi == i && oj == j {
						continue
					}
					if los.HasLineOfSight(pt.Pos, g.cells[oi][oj].Pos) {
						pt.Visibility++
						g.visible[i][j] = append(g.visible[i][j], Index{I: oi, J: oj})
					}
				}
			}
		}
	}
	g.built = true
	log.Debug("Isovist grid built.")
}

// RecomputeWeighted resets every count and redoes the pass, adding weight
// instead of 1 for each visible cell within ProximityThreshold of observer.
func (g *Grid) RecomputeWeighted(observer dweller.Position, weight int) error {
	if !g.built {
		return ErrNotBuilt
	}
	for i := range g.cells {
		for j := range g.cells[i] {
			pt := &g.cells[i][j]
			pt.Visibility = 0
			for _, idx := range g.visible[i][j] {
				if g.cells[idx.I][idx.J].Pos.Dist(observer) <= ProximityThreshold {
					pt.Visibility += weight
				} else {
					pt.Visibility++
				}
			}
		}
	}
	return nil
}

// Nearest returns the index of the cell closest to pos. Ties keep the first
// cell in scan order.
func (g *Grid) Nearest(pos dweller.Position) Index {
	best := Index{}
	bestDist := g.cells[0][0].Pos.Dist(pos)
	for i := range g.cells {
		for j := range g.cells[i] {
			if d := g.cells[i][j].Pos.Dist(pos); d < bestDist {
				best, bestDist = Index{I: i, J: j}, d
			}
		}
	}
	return best
}

// Neighborhood returns copies of the cells in the 3×3 index block around
// the cell nearest to pos. Blocks at the grid edge are smaller.
func (g *Grid) Neighborhood(pos dweller.Position) ([]Cell, error) {
	if !g.built {
		return nil, ErrNotBuilt
	}
	c := g.Nearest(pos)
	result := make([]Cell, 0, 9)
	for i := c.I - 1; i <= c.I+1; i++ {
		for j := c.J - 1; j <= c.J+1; j++ {
			if i < 0 || i >= g.width || j < 0 || j >= g.height {
				continue
			}
			result = append(result, g.cells[i][j])
		}
	}
	return result, nil
}

// Cell returns the cell at (i, j).
func (g *Grid) Cell(i, j int) (Cell, bool) {
	if i < 0 || i >= g.width || j < 0 || j >= g.height {
		return Cell{}, false
	}
	return g.cells[i][j], true
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Origin returns the position of cell (0, 0).
func (g *Grid) Origin() dweller.Position { return g.origin }

// Built reports whether Build has run.
func (g *Grid) Built() bool { return g.built }

// MaxVisibility returns the largest count on the grid, used for shading.
func (g *Grid) MaxVisibility() int {
	m := 0
	for i := range g.cells {
		for j := range g.cells[i] {
			if g.cells[i][j].Visibility > m {
				m = g.cells[i][j].Visibility
			}
		}
	}
	return m
}
