package hiding

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vinser/hideout/internal/dweller"
	"github.com/vinser/hideout/internal/sight"
)

var origin = dweller.Position{}

// fakeOracle sees walls everywhere and blocks nothing.
type fakeOracle struct{}

func (fakeOracle) HasLineOfSight(a, b dweller.Position) bool { return false }

func (fakeOracle) IsBlocked(p dweller.Position) bool { return false }

func (fakeOracle) Linecast(from, observer dweller.Position) sight.Hit { return sight.HitWall }

func TestConfigValidate(t *testing.T) {
	ok := Config{Algorithm: Baseline, SpeedPercent: 0.5, ObserverSpeed: 2}
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown algorithm", func(c *Config) { c.Algorithm = Algorithm(42) }, true},
		{"zero speed percent", func(c *Config) { c.SpeedPercent = 0 }, true},
		{"negative observer speed", func(c *Config) { c.ObserverSpeed = -1 }, true},
		{"NaN speed percent", func(c *Config) { c.SpeedPercent = math.NaN() }, true},
		{"NaN observer speed", func(c *Config) { c.ObserverSpeed = math.NaN() }, true},
		{"infinite speed percent", func(c *Config) { c.SpeedPercent = math.Inf(1) }, true},
		{"infinite observer speed", func(c *Config) { c.ObserverSpeed = math.Inf(1) }, true},
		{"interval overflows", func(c *Config) { c.SpeedPercent = 1e-12; c.ObserverSpeed = 1 }, true},
		{"product overflows", func(c *Config) { c.SpeedPercent = 1e200; c.ObserverSpeed = 1e200 }, true},
		{"slow but representable", func(c *Config) { c.SpeedPercent = 1e-6; c.ObserverSpeed = 1 }, false},
		{"depth too deep", func(c *Config) { c.Algorithm = DeepLookAhead; c.LookAheadDepth = MaxLookAheadDepth + 1 }, true},
		{"depth ignored elsewhere", func(c *Config) { c.LookAheadDepth = 99 }, false},
		{"depth zero", func(c *Config) { c.Algorithm = DeepLookAhead }, false},
		{"weight missing", func(c *Config) { c.Algorithm = IsovistLookAhead }, true},
		{"weight set", func(c *Config) { c.Algorithm = IsovistLookAhead; c.IsovistWeight = 4 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ok
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v; wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v; want ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidIntervalKeepsGateClosed(t *testing.T) {
	c := Config{Algorithm: Baseline, SpeedPercent: 1e-6, ObserverSpeed: 1}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if c.Interval() <= 0 {
		t.Fatalf("Interval() = %s; want positive", c.Interval())
	}
	g := NewGate(c.Interval(), 0)
	if g.Ready(50 * time.Millisecond) {
		t.Errorf("gate open at 50ms with interval %s", c.Interval())
	}
}

func TestConfigInterval(t *testing.T) {
	c := Config{SpeedPercent: 0.5, ObserverSpeed: 4}
	if got := c.Speed(); got != 2 {
		t.Errorf("Speed() = %f; want 2", got)
	}
	if got := c.Interval(); got != 500*time.Millisecond {
		t.Errorf("Interval() = %s; want 500ms", got)
	}
}

func TestGate(t *testing.T) {
	g := NewGate(time.Second, 0)
	steps := []struct {
		now   time.Duration
		ready bool
		mark  bool
	}{
		{0, false, false},
		{999 * time.Millisecond, false, false},
		{time.Second, true, false},
		{1200 * time.Millisecond, true, true},
		{2 * time.Second, false, false},
		{2200 * time.Millisecond, true, true},
	}
	for _, s := range steps {
		if got := g.Ready(s.now); got != s.ready {
			t.Errorf("Ready(%s) = %v; want %v", s.now, got, s.ready)
		}
		if s.mark {
			g.Mark(s.now)
			if g.Next() != s.now+g.Interval() {
				t.Errorf("Next() = %s after Mark(%s)", g.Next(), s.now)
			}
		}
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in   string
		want Algorithm
	}{
		{"baseline", Baseline},
		{"LookAhead", LookAhead},
		{"look-ahead", LookAhead},
		{"isovist", IsovistMetric},
		{"isovist_metric", IsovistMetric},
		{"isovist-lookahead", IsovistLookAhead},
		{" deep-lookahead ", DeepLookAhead},
		{"deeplookahead", DeepLookAhead},
	}
	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %s, %v; want %s", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseAlgorithm("greedy"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParseAlgorithm(greedy) error = %v; want ErrInvalidConfig", err)
	}
	for _, a := range Algorithms() {
		text, err := a.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%s) error = %v", a, err)
		}
		var back Algorithm
		if err := back.UnmarshalText(text); err != nil || back != a {
			t.Errorf("round trip of %s gave %s, %v", a, back, err)
		}
	}
}

func TestClassifierCopies(t *testing.T) {
	o := fakeOracle{}
	c := newClassifier(o)
	safe, _ := c.classify(origin, origin)
	if len(safe) == 0 {
		t.Fatal("fake oracle yields no safe moves")
	}
	safe[0].Score = 1000
	again, _ := c.classify(origin, origin)
	if again[0].Score == 1000 {
		t.Error("classify returned a shared slice")
	}
}

func TestHeuristicZeroExposure(t *testing.T) {
	// Every move is hidden from every observer step.
	if got, want := Heuristic(fakeOracle{}, origin, origin, 1), 8*ZeroExposureScore; got != want {
		t.Errorf("Heuristic(depth 1) = %f; want %f", got, want)
	}
	// Each of the 8 safe moves times 8 observer steps adds another level.
	if got, want := Heuristic(fakeOracle{}, origin, origin, 2), 8*ZeroExposureScore*(1+64); got != want {
		t.Errorf("Heuristic(depth 2) = %f; want %f", got, want)
	}
}
