// Package scenario loads experiment descriptions from YAML.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"github.com/vinser/hideout/internal/dweller"
	"github.com/vinser/hideout/internal/embeddata"
	"github.com/vinser/hideout/internal/floor"
	"github.com/vinser/hideout/internal/hiding"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid scenario")

// Point is a position as written in the file.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Position converts p to an engine position.
func (p Point) Position() dweller.Position {
	return dweller.Position{X: p.X, Y: p.Y}
}

// MazeSpec asks for a generated maze instead of hand-drawn rows.
type MazeSpec struct {
	Seed   int64 `yaml:"seed"`
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
}

// MapSpec holds exactly one of Rows or Maze.
type MapSpec struct {
	Rows []string  `yaml:"rows,omitempty"`
	Maze *MazeSpec `yaml:"maze,omitempty"`
}

// GridSpec places the isovist grid.
type GridSpec struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Origin Point `yaml:"origin"`
}

// ObserverSpec describes the observer's walk.
type ObserverSpec struct {
	Speed     float64 `yaml:"speed"`
	Start     *Point  `yaml:"start,omitempty"`
	Waypoints []Point `yaml:"waypoints"`
}

// Scenario is one experiment: a floor, two bodies and an engine config.
type Scenario struct {
	Name           string           `yaml:"name"`
	Algorithm      hiding.Algorithm `yaml:"algorithm"`
	SpeedPercent   float64          `yaml:"speed_percent"`
	LookAheadDepth int              `yaml:"look_ahead_depth"`
	IsovistWeight  int              `yaml:"isovist_weight"`
	Seed           int64            `yaml:"seed"`
	Map            MapSpec          `yaml:"map"`
	Grid           *GridSpec        `yaml:"grid,omitempty"`
	Agent          *Point           `yaml:"agent,omitempty"`
	Observer       ObserverSpec     `yaml:"observer"`
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	sc := &Scenario{}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Default returns the embedded scenario.
func Default() (*Scenario, error) {
	data, err := embeddata.ReadDefaultScenario()
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Marshal encodes the scenario back to YAML.
func (sc *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(sc)
}

// Validate checks what can be checked without building the floor.
func (sc *Scenario) Validate() error {
	hasRows, hasMaze := len(sc.Map.Rows) > 0, sc.Map.Maze != nil
	if hasRows == hasMaze {
		return fmt.Errorf("%w: map needs exactly one of rows or maze", ErrInvalid)
	}
	if len(sc.Observer.Waypoints) == 0 {
		return fmt.Errorf("%w: observer needs at least one waypoint", ErrInvalid)
	}
	if sc.Grid != nil && (sc.Grid.Width < 1 || sc.Grid.Height < 1) {
		return fmt.Errorf("%w: grid size %dx%d", ErrInvalid, sc.Grid.Width, sc.Grid.Height)
	}
	if err := sc.HidingConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// HidingConfig extracts the engine configuration bundle.
func (sc *Scenario) HidingConfig() hiding.Config {
	return hiding.Config{
		Algorithm:      sc.Algorithm,
		SpeedPercent:   sc.SpeedPercent,
		ObserverSpeed:  sc.Observer.Speed,
		LookAheadDepth: sc.LookAheadDepth,
		IsovistWeight:  sc.IsovistWeight,
	}
}

// Floor builds the floor described by the map section.
func (sc *Scenario) Floor() (*floor.Floor, error) {
	if sc.Map.Maze != nil {
		m := sc.Map.Maze
		return floor.Generate(m.Seed, m.Width, m.Height)
	}
	return floor.Parse(sc.Map.Rows)
}

// GridSpecFor returns the configured grid, or one covering the whole floor.
func (sc *Scenario) GridSpecFor(f *floor.Floor) GridSpec {
	if sc.Grid != nil {
		return *sc.Grid
	}
	return GridSpec{Width: f.Width(), Height: f.Height()}
}

// AgentStart resolves the agent's start: explicit point first, then the map marker.
func (sc *Scenario) AgentStart(f *floor.Floor) (dweller.Position, error) {
	switch {
	case sc.Agent != nil:
		return sc.Agent.Position(), nil
	case f.AgentStart != nil:
		return *f.AgentStart, nil
	}
	return dweller.Position{}, fmt.Errorf("%w: no agent start", ErrInvalid)
}

// ObserverStart resolves the observer's start: explicit point, map marker,
// then the first waypoint.
func (sc *Scenario) ObserverStart(f *floor.Floor) dweller.Position {
	switch {
	case sc.Observer.Start != nil:
		return sc.Observer.Start.Position()
	case f.ObserverStart != nil:
		return *f.ObserverStart
	}
	return sc.Observer.Waypoints[0].Position()
}

// Waypoints returns the observer path as engine positions.
func (sc *Scenario) Waypoints() []dweller.Position {
	out := make([]dweller.Position, len(sc.Observer.Waypoints))
	for i, wp := range sc.Observer.Waypoints {
		out[i] = wp.Position()
	}
	return out
}
