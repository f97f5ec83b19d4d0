package flags

import (
	"flag"
	"fmt"

	"github.com/vinser/hideout/internal/hiding"
	"github.com/vinser/hideout/internal/scenario"
)

// Flags stores the parsed command-line options
type Flags struct {
	Scenario     string
	Algorithm    string
	Depth        int
	Weight       int
	SpeedPercent float64
	Seed         int64
	Headless     bool
	Mute         bool
	Reset        bool
	LogFile      string

	fsv *FlagSetWithVisit
}

// Parse parses command-line arguments (without the program name).
func Parse(name string, args []string) (*Flags, error) {
	f := &Flags{}
	fsv := NewFlagSetWithVisit(name, flag.ContinueOnError)
	fsv.StringVar(&f.Scenario, "scenario", "s", "", "Scenario YAML file (default: embedded scenario)")
	fsv.StringVar(&f.Algorithm, "algorithm", "a", "", "Hiding algorithm: baseline, lookahead, isovist, isovist-lookahead or deep-lookahead")
	fsv.IntVar(&f.Depth, "depth", "d", 0, fmt.Sprintf("Look-ahead depth for deep-lookahead, 0..%d", hiding.MaxLookAheadDepth))
	fsv.IntVar(&f.Weight, "weight", "w", 0, "Isovist weight for points near the observer")
	fsv.Float64Var(&f.SpeedPercent, "speed", "p", 0, "Agent speed as a fraction of the observer's")
	fsv.Int64Var(&f.Seed, "seed", "", 0, "Seed for tie-break randomness")
	fsv.BoolVar(&f.Headless, "headless", "H", false, "Run without the terminal viewer and print the report")
	fsv.BoolVar(&f.Mute, "mute", "m", false, "Mute alert sounds")
	fsv.BoolVar(&f.Reset, "reset", "r", false, "Reset remembered settings")
	fsv.StringVar(&f.LogFile, "log", "l", "", "Write logs to this file")
	f.fsv = fsv

	if err := fsv.Parse(args); err != nil {
		return nil, err
	}
	if f.Algorithm != "" {
		if _, err := hiding.ParseAlgorithm(f.Algorithm); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// IsSet reports whether a flag was given explicitly.
func (f *Flags) IsSet(name string) bool {
	return f.fsv.IsCustom(name)
}

// Usage prints the usage text.
func (f *Flags) Usage() {
	f.fsv.Usage()
}

// Apply overrides scenario settings with explicitly set flags and revalidates.
func (f *Flags) Apply(sc *scenario.Scenario) error {
	if f.Algorithm != "" {
		a, err := hiding.ParseAlgorithm(f.Algorithm)
		if err != nil {
			return err
		}
		sc.Algorithm = a
	}
	if f.IsSet("depth") {
		sc.LookAheadDepth = f.Depth
	}
	if f.IsSet("weight") {
		sc.IsovistWeight = f.Weight
	}
	if f.IsSet("speed") {
		sc.SpeedPercent = f.SpeedPercent
	}
	if f.IsSet("seed") {
		sc.Seed = f.Seed
	}
	return sc.Validate()
}
