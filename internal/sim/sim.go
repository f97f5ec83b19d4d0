// Package sim is the embedding environment: it walks the observer, feeds
// positions to the hiding engine and applies the moves it returns.
package sim

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vinser/hideout/internal/dweller"
	"github.com/vinser/hideout/internal/floor"
	"github.com/vinser/hideout/internal/hiding"
	"github.com/vinser/hideout/internal/isovist"
	"github.com/vinser/hideout/internal/logger"
	"github.com/vinser/hideout/internal/scenario"
	"github.com/vinser/hideout/internal/score"
)

// DefaultStep is the simulation step used by headless runs.
const DefaultStep = 50 * time.Millisecond

// Runner owns one experiment.
type Runner struct {
	ID       string
	Name     string
	Floor    *floor.Floor
	Grid     *isovist.Grid
	Agent    *dweller.Agent
	Observer *dweller.Observer
	Engine   *hiding.Engine

	clock  time.Duration
	last   hiding.Decision
	report *score.Report
	log    *logrus.Entry
}

// New builds the floor, bodies, grid and engine described by sc.
// The isovist grid is built up front only for algorithms that read it.
func New(sc *scenario.Scenario) (*Runner, error) {
	f, err := sc.Floor()
	if err != nil {
		return nil, err
	}
	agentStart, err := sc.AgentStart(f)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	log := logger.Log.WithFields(logrus.Fields{
		"component": "sim",
		"run_id":    id,
		"scenario":  sc.Name,
	})

	gs := sc.GridSpecFor(f)
	grid, err := isovist.New(gs.Width, gs.Height, gs.Origin.Position())
	if err != nil {
		return nil, err
	}
	cfg := sc.HidingConfig()
	if cfg.Algorithm.UsesGrid() {
		started := time.Now()
		grid.Build(f)
		log.WithField("took", time.Since(started)).Info("Isovist grid ready.")
	}

	engine, err := hiding.New(cfg, f, grid, rand.New(rand.NewSource(sc.Seed)))
	if err != nil {
		return nil, err
	}
	engine.WithFields(logrus.Fields{"run_id": id})

	r := &Runner{
		ID:       id,
		Name:     sc.Name,
		Floor:    f,
		Grid:     grid,
		Agent:    dweller.NewAgent(agentStart),
		Observer: dweller.NewObserver(sc.ObserverStart(f), sc.Waypoints(), sc.Observer.Speed),
		Engine:   engine,
		log:      log,
	}
	log.WithFields(logrus.Fields{
		"algorithm": cfg.Algorithm.String(),
		"interval":  cfg.Interval(),
		"agent":     agentStart,
	}).Info("Run started.")
	return r, nil
}

// Clock returns the simulated time since the start of the run.
func (r *Runner) Clock() time.Duration {
	return r.clock
}

// Last returns the most recent executed decision.
func (r *Runner) Last() hiding.Decision {
	return r.last
}

// Done reports whether the run has ended.
func (r *Runner) Done() bool {
	return r.report != nil
}

// Report returns the final report once the run has ended.
func (r *Runner) Report() (score.Report, bool) {
	if r.report == nil {
		return score.Report{}, false
	}
	return *r.report, true
}

// Step advances the simulation by dt: the observer walks, then the engine
// gets a tick. When the observer finishes its path the run ends.
func (r *Runner) Step(dt time.Duration) (hiding.Decision, error) {
	if r.Done() {
		return hiding.Decision{}, hiding.ErrFinished
	}
	r.clock += dt
	if r.Observer.Advance(dt) {
		rep := r.Engine.EndExperiment()
		r.report = &rep
		r.log.WithField("elapsed", r.clock).Info("Observer reached the end of its path.")
		return hiding.Decision{}, nil
	}

	d, err := r.Engine.Tick(r.clock, r.Agent.Pos(), r.Observer.Pos())
	if err != nil {
		return hiding.Decision{}, err
	}
	if d.Ran {
		r.last = d
		if d.Move {
			r.Agent.MoveTo(d.Target)
		}
	}
	return d, nil
}

// Run steps until the observer finishes or ctx is done.
func (r *Runner) Run(ctx context.Context, dt time.Duration) (score.Report, error) {
	if dt <= 0 {
		dt = DefaultStep
	}
	for !r.Done() {
		if err := ctx.Err(); err != nil {
			return score.Report{}, err
		}
		if _, err := r.Step(dt); err != nil {
			return score.Report{}, err
		}
	}
	rep, _ := r.Report()
	return rep, nil
}
