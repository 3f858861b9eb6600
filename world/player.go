package world

// Player spawn values.
const (
	SpawnX  = 0.0
	SpawnY  = 1.0
	SpawnZ  = 0.0
	SpawnHP = 100.0
)

// Player is the authoritative per-connection simulation state. The gateway
// inserts and removes whole players and appends to the input queue; every
// other field is mutated only inside a tick.
type Player struct {
	ID int

	X, Y, Z    float64
	VX, VY, VZ float64
	Yaw        float64
	HP         float64

	// LastProcessedSeq is the Seq of the newest input consumed by a tick.
	// It never decreases while the player lives.
	LastProcessedSeq uint32

	// ConnID is the opaque handle of the connection that owns this player.
	// The gateway maps it back to a live connection; the world never does.
	ConnID string

	queue    []Input
	queueCap int
}

// EnqueueInput appends in to the pending queue. When the queue is at
// capacity the oldest pending command is discarded to admit the newest;
// the return value reports that discard.
func (p *Player) EnqueueInput(in Input) (dropped bool) {
	if p.queueCap > 0 && len(p.queue) >= p.queueCap {
		copy(p.queue, p.queue[1:])
		p.queue = p.queue[:len(p.queue)-1]
		dropped = true
	}
	p.queue = append(p.queue, in)
	return dropped
}

// DrainInputs removes every pending input in arrival order and returns the
// newest one, or nil when the queue was empty. Intermediate commands are
// acknowledged as a batch but only the last drives movement ("latest wins").
func (p *Player) DrainInputs() *Input {
	if len(p.queue) == 0 {
		return nil
	}
	last := p.queue[len(p.queue)-1]
	p.queue = p.queue[:0]
	return &last
}

// PendingInputs reports how many commands are queued for the next tick.
func (p *Player) PendingInputs() int {
	return len(p.queue)
}
