package dweller

// Agent is the hiding body. It only remembers where it is and where it was;
// every decision about where to go belongs to the hiding engine.
type Agent struct {
	home     Position
	position Position
	prev     Position
}

// NewAgent returns an agent standing at home.
func NewAgent(home Position) *Agent {
	return &Agent{
		home:     home,
		position: home,
		prev:     home,
	}
}

// Home returns the agent's starting position.
func (a *Agent) Home() Position {
	return a.home
}

// Pos returns the agent's current position.
func (a *Agent) Pos() Position {
	return a.position
}

// Prev returns the position the agent left on its last move.
func (a *Agent) Prev() Position {
	return a.prev
}

// MoveTo places the agent at pos, remembering the old position.
func (a *Agent) MoveTo(pos Position) {
	a.prev = a.position
	a.position = pos
}

// Reset puts the agent back home.
func (a *Agent) Reset() {
	a.position = a.home
	a.prev = a.home
}
