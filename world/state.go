package world

// State is the authoritative world: every connected player plus the tick
// counter. Exactly one instance exists per process. The server's simulation
// goroutine is its only writer, so State carries no locking; see the
// server package for the serialization guarantee.
type State struct {
	Players map[int]*Player
	Tick    int64

	params   StepParams
	queueCap int
	nextID   int
}

// NewState builds an empty world with the given simulation parameters.
// queueCap bounds each player's pending input queue; zero means unbounded.
func NewState(params StepParams, queueCap int) *State {
	return &State{
		Players:  make(map[int]*Player),
		params:   params,
		queueCap: queueCap,
	}
}

// AddPlayer creates a player at the spawn point and registers it under the
// next sequential id. IDs start at 1 and are never reused in-process, so a
// departed player's id never reappears in a later snapshot.
func (s *State) AddPlayer(connID string) *Player {
	s.nextID++
	p := &Player{
		ID:       s.nextID,
		X:        SpawnX,
		Y:        SpawnY,
		Z:        SpawnZ,
		HP:       SpawnHP,
		ConnID:   connID,
		queueCap: s.queueCap,
	}
	s.Players[p.ID] = p
	return p
}

// RemovePlayer deletes the player immediately; there is no grace period.
func (s *State) RemovePlayer(id int) {
	delete(s.Players, id)
}

// Advance runs one tick: increment the counter, then drain and step every
// player with the fixed delta time dt. The newest drained command drives
// the step and its Seq becomes the player's acknowledgment value.
func (s *State) Advance(dt float64) {
	s.Tick++
	for _, p := range s.Players {
		in := p.DrainInputs()
		Step(p, in, dt, s.params)
		if in != nil {
			p.LastProcessedSeq = in.Seq
		}
	}
}

// PlayerCount reports how many players are registered.
func (s *State) PlayerCount() int {
	return len(s.Players)
}
