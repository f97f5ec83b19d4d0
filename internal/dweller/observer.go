package dweller

import "time"

// Observer walks a fixed waypoint path at constant speed.
// Reaching the last waypoint ends the run.
type Observer struct {
	start     Position
	position  Position
	waypoints []Position
	current   int // index of the waypoint being approached
	speed     float64
	length    float64
}

// NewObserver places an observer at start heading for the first waypoint.
// speed is in distance units per second.
func NewObserver(start Position, waypoints []Position, speed float64) *Observer {
	o := &Observer{
		start:     start,
		position:  start,
		waypoints: append([]Position(nil), waypoints...),
		speed:     speed,
	}
	prev := start
	for _, wp := range o.waypoints {
		o.length += prev.Dist(wp)
		prev = wp
	}
	return o
}

// Pos returns the current position of the observer.
func (o *Observer) Pos() Position {
	return o.position
}

// Speed returns the walking speed.
func (o *Observer) Speed() float64 {
	return o.speed
}

// Waypoints returns a copy of the path.
func (o *Observer) Waypoints() []Position {
	return append([]Position(nil), o.waypoints...)
}

// Done reports whether the last waypoint has been reached.
func (o *Observer) Done() bool {
	return o.current >= len(o.waypoints)
}

// Advance moves the observer along its path for dt and reports whether the
// path is complete. Leftover travel carries over to the next waypoint.
func (o *Observer) Advance(dt time.Duration) bool {
	budget := o.speed * dt.Seconds()
	for !o.Done() && budget > 0 {
		target := o.waypoints[o.current]
		dist := o.position.Dist(target)
		if dist <= budget {
			o.position = target
			o.current++
			budget -= dist
			continue
		}
		o.position = o.position.MoveTowards(target, budget)
		budget = 0
	}
	return o.Done()
}

// Progress returns the travelled fraction of the whole path in [0, 1].
func (o *Observer) Progress() float64 {
	if o.length == 0 {
		if o.Done() {
			return 1
		}
		return 0
	}
	travelled := 0.0
	prev := o.start
	for i := 0; i < o.current && i < len(o.waypoints); i++ {
		travelled += prev.Dist(o.waypoints[i])
		prev = o.waypoints[i]
	}
	travelled += prev.Dist(o.position)
	if travelled > o.length {
		return 1
	}
	return travelled / o.length
}
