package hiding

import "time"

// Gate lets a decision run at most once per interval of simulation time.
type Gate struct {
	interval time.Duration
	next     time.Duration
}

// NewGate opens the gate one interval after start.
func NewGate(interval, start time.Duration) *Gate {
	return &Gate{interval: interval, next: start + interval}
}

// Ready reports whether a decision may run at now.
func (g *Gate) Ready(now time.Duration) bool {
	return now >= g.next
}

// Mark records an executed decision at now.
func (g *Gate) Mark(now time.Duration) {
	g.next = now + g.interval
}

// Next returns the earliest time the gate opens.
func (g *Gate) Next() time.Duration {
	return g.next
}

// Interval returns the cooldown.
func (g *Gate) Interval() time.Duration {
	return g.interval
}
