package hiding

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// MaxLookAheadDepth bounds the recursive search; cost grows as 64^depth.
const MaxLookAheadDepth = 3

var (
	ErrInvalidConfig = errors.New("invalid hiding config")
	ErrFinished      = errors.New("experiment already finished")
)

// Config is the per-run configuration bundle.
type Config struct {
	Algorithm      Algorithm
	SpeedPercent   float64 // agent speed as a fraction of the observer's
	ObserverSpeed  float64 // distance units per second
	LookAheadDepth int     // DeepLookAhead only
	IsovistWeight  int     // IsovistLookAhead only
}

// Speed returns the agent's decision rate in moves per second.
func (c Config) Speed() float64 {
	return c.ObserverSpeed * c.SpeedPercent
}

// Interval returns the cooldown between two executed decisions.
func (c Config) Interval() time.Duration {
	return time.Duration(float64(time.Second) / c.Speed())
}

// Validate checks the bundle before an engine is built from it.
func (c Config) Validate() error {
	if _, ok := algorithmNames[c.Algorithm]; !ok {
		return fmt.Errorf("%w: unknown algorithm %d", ErrInvalidConfig, int(c.Algorithm))
	}
	if !finitePositive(c.SpeedPercent) {
		return fmt.Errorf("%w: speed percent must be positive and finite, got %g", ErrInvalidConfig, c.SpeedPercent)
	}
	if !finitePositive(c.ObserverSpeed) {
		return fmt.Errorf("%w: observer speed must be positive and finite, got %g", ErrInvalidConfig, c.ObserverSpeed)
	}
	// The interval must fit in a Duration or the gate never closes.
	if ns := float64(time.Second) / c.Speed(); math.IsInf(c.Speed(), 0) || ns >= math.MaxInt64 {
		return fmt.Errorf("%w: agent speed %g is out of range for the rate gate", ErrInvalidConfig, c.Speed())
	}
	if c.Algorithm == DeepLookAhead && (c.LookAheadDepth < 0 || c.LookAheadDepth > MaxLookAheadDepth) {
		return fmt.Errorf("%w: look-ahead depth must be in [0, %d], got %d", ErrInvalidConfig, MaxLookAheadDepth, c.LookAheadDepth)
	}
	if c.Algorithm == IsovistLookAhead && c.IsovistWeight < 1 {
		return fmt.Errorf("%w: isovist weight must be at least 1, got %d", ErrInvalidConfig, c.IsovistWeight)
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
