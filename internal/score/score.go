package score

import "fmt"

// Stats counts how a run went. Counters only ever grow.
type Stats struct {
	spotted      int
	hidden       int
	moved        int
	ticks        int
	firstSpotted int
	lastSpotted  int
	everSpotted  bool
}

// Report is the end-of-run summary.
type Report struct {
	Spotted        int
	Hidden         int
	Moved          int
	Ticks          int
	SpottedPercent float64
	FirstSpotted   int // move count at the first spotted tick, -1 if never spotted
	LastSpotted    int // move count at the latest spotted tick, -1 if never spotted
}

func NewStats() *Stats {
	return &Stats{}
}

// Spot records a tick on which the agent ended up seen.
func (s *Stats) Spot() {
	s.ticks++
	s.spotted++
	if !s.everSpotted {
		s.firstSpotted = s.moved
		s.everSpotted = true
	}
	s.lastSpotted = s.moved
}

// Hide records a tick on which the agent ended up hidden.
func (s *Stats) Hide() {
	s.ticks++
	s.hidden++
}

// Move records a change of position.
func (s *Stats) Move() {
	s.moved++
}

func (s *Stats) Spotted() int { return s.spotted }

func (s *Stats) Hidden() int { return s.hidden }

func (s *Stats) Moved() int { return s.moved }

func (s *Stats) Ticks() int { return s.ticks }

// Report summarizes the run. The percentage is zero when no tick was counted.
func (s *Stats) Report() Report {
	r := Report{
		Spotted:      s.spotted,
		Hidden:       s.hidden,
		Moved:        s.moved,
		Ticks:        s.ticks,
		FirstSpotted: -1,
		LastSpotted:  -1,
	}
	if total := s.spotted + s.hidden; total > 0 {
		r.SpottedPercent = 100.0 * float64(s.spotted) / float64(total)
	}
	if s.everSpotted {
		r.FirstSpotted = s.firstSpotted
		r.LastSpotted = s.lastSpotted
	}
	return r
}

// Lines renders the report the way the experiment log prints it.
func (r Report) Lines() []string {
	first := "never"
	if r.FirstSpotted >= 0 {
		first = fmt.Sprint(r.FirstSpotted)
	}
	return []string{
		fmt.Sprintf("Spotted %d times", r.Spotted),
		fmt.Sprintf("Spotted %.1f%% of the time", r.SpottedPercent),
		fmt.Sprintf("Steps until first spotted: %s", first),
	}
}
