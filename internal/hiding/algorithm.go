package hiding

import (
	"fmt"
	"strings"
)

// Algorithm selects the hiding strategy.
type Algorithm int

const (
	Baseline Algorithm = iota
	LookAhead
	IsovistMetric
	IsovistLookAhead
	DeepLookAhead
)

var algorithmNames = map[Algorithm]string{
	Baseline:         "baseline",
	LookAhead:        "lookahead",
	IsovistMetric:    "isovist",
	IsovistLookAhead: "isovist-lookahead",
	DeepLookAhead:    "deep-lookahead",
}

var algorithmAliases = map[string]Algorithm{
	"isovist-metric": IsovistMetric,
	"look-ahead":     LookAhead,
}

// Algorithms lists every algorithm in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{Baseline, LookAhead, IsovistMetric, IsovistLookAhead, DeepLookAhead}
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// UsesGrid reports whether the algorithm reads the isovist grid.
func (a Algorithm) UsesGrid() bool {
	return a == IsovistMetric || a == IsovistLookAhead
}

// ParseAlgorithm accepts the names printed by String, case-insensitively,
// with "_" and "-" treated alike.
func ParseAlgorithm(s string) (Algorithm, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if a, ok := algorithmAliases[norm]; ok {
		return a, nil
	}
	for a, name := range algorithmNames {
		if name == norm || strings.ReplaceAll(name, "-", "") == norm {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidConfig, s)
}

func (a Algorithm) MarshalText() ([]byte, error) {
	if _, ok := algorithmNames[a]; !ok {
		return nil, fmt.Errorf("%w: unknown algorithm %d", ErrInvalidConfig, int(a))
	}
	return []byte(a.String()), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
