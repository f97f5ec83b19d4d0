// Package hiding decides, tick by tick, where the agent should go to stay
// out of the observer's sight.
package hiding

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vinser/hideout/internal/dweller"
	"github.com/vinser/hideout/internal/isovist"
	"github.com/vinser/hideout/internal/logger"
	"github.com/vinser/hideout/internal/score"
	"github.com/vinser/hideout/internal/sight"
)

// Engine runs one strategy against one observer and keeps the run statistics.
// It is not safe for concurrent use.
type Engine struct {
	cfg      Config
	oracle   sight.Oracle
	grid     *isovist.Grid
	rng      *rand.Rand
	strategy Strategy
	gate     *Gate
	stats    *score.Stats
	finished bool
	log      *logrus.Entry
}

// New validates cfg and wires an engine. grid may be nil unless the algorithm
// reads it; it must be built before the first tick.
func New(cfg Config, oracle sight.Oracle, grid *isovist.Grid, rng *rand.Rand) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if oracle == nil {
		return nil, fmt.Errorf("%w: visibility oracle is required", ErrInvalidConfig)
	}
	if cfg.Algorithm.UsesGrid() && grid == nil {
		return nil, fmt.Errorf("%w: %s needs an isovist grid", ErrInvalidConfig, cfg.Algorithm)
	}
	strategy, err := NewStrategy(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		cfg:      cfg,
		oracle:   oracle,
		grid:     grid,
		rng:      rng,
		strategy: strategy,
		gate:     NewGate(cfg.Interval(), 0),
		stats:    score.NewStats(),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "hiding",
			"algorithm": cfg.Algorithm.String(),
		}),
	}, nil
}

// WithFields adds fields to every engine log line, e.g. a run id.
func (e *Engine) WithFields(fields logrus.Fields) *Engine {
	e.log = e.log.WithFields(fields)
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Stats returns the live run statistics.
func (e *Engine) Stats() *score.Stats {
	return e.stats
}

// Gate returns the rate gate.
func (e *Engine) Gate() *Gate {
	return e.gate
}

// Tick runs the strategy if the gate is open at now (simulation time since
// the start of the run) and records the outcome. The caller applies the move.
func (e *Engine) Tick(now time.Duration, agent, observer dweller.Position) (Decision, error) {
	if e.finished {
		return Decision{}, ErrFinished
	}
	if !e.gate.Ready(now) {
		return Decision{}, nil
	}

	moves := newClassifier(e.oracle)
	s := &Situation{
		Agent:    agent,
		Observer: observer,
		oracle:   e.oracle,
		grid:     e.grid,
		rng:      e.rng,
		moves:    moves,
		search:   newSearch(moves),
		cfg:      e.cfg,
	}
	d, err := e.strategy.Decide(s)
	if err != nil {
		return Decision{}, fmt.Errorf("%s tick at %s: %w", e.cfg.Algorithm, now, err)
	}
	e.gate.Mark(now)

	if d.Move {
		e.stats.Move()
	}
	switch d.Outcome {
	case Hidden:
		e.stats.Hide()
	case Spotted:
		e.stats.Spot()
	}

	e.log.WithFields(logrus.Fields{
		"t":        now,
		"agent":    agent,
		"observer": observer,
		"outcome":  d.Outcome.String(),
		"move":     d.Move,
		"target":   d.Target,
	}).Debug("Decision made.")
	return d, nil
}

// EndExperiment stops the run and logs the final statistics.
func (e *Engine) EndExperiment() score.Report {
	r := e.stats.Report()
	if !e.finished {
		e.finished = true
		fields := logrus.Fields{
			"spotted":         r.Spotted,
			"hidden":          r.Hidden,
			"moved":           r.Moved,
			"spotted_percent": r.SpottedPercent,
			"first_spotted":   r.FirstSpotted,
			"last_spotted":    r.LastSpotted,
		}
		for _, line := range r.Lines() {
			e.log.WithFields(fields).Info(line)
		}
	}
	return r
}

// Finished reports whether EndExperiment has been called.
func (e *Engine) Finished() bool {
	return e.finished
}
