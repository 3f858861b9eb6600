package server

import (
	"encoding/json"

	"arena-server/logging"
)

type helloMessage struct {
	Type   string `json:"type"`
	ID     int    `json:"id"`
	TickHz int    `json:"tickHz"`
}

type playerSnapshot struct {
	ID  int     `json:"id"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Z   float64 `json:"z"`
	VX  float64 `json:"vx"`
	VY  float64 `json:"vy"`
	VZ  float64 `json:"vz"`
	Yaw float64 `json:"yaw"`
	HP  float64 `json:"hp"`
}

type snapshotIdentity struct {
	ID int `json:"id"`
}

type snapshotMessage struct {
	Type       string           `json:"type"`
	ServerTick int64            `json:"serverTick"`
	AckSeq     uint32           `json:"ackSeq"`
	Me         snapshotIdentity `json:"me"`
	Players    []playerSnapshot `json:"players"`
}

func marshalHello(playerID, tickHz int) []byte {
	// Static shape; marshaling cannot fail.
	b, _ := json.Marshal(helloMessage{Type: "hello", ID: playerID, TickHz: tickHz})
	return b
}

// broadcastSnapshots sends each live connection its own view of the world:
// the shared player list plus a per-recipient ack. Recipients whose send
// buffer is full are skipped for this tick; nothing is retried or queued.
func (s *ArenaServer) broadcastSnapshots() {
	players := make([]playerSnapshot, 0, len(s.state.Players))
	for _, p := range s.state.Players {
		players = append(players, playerSnapshot{
			ID: p.ID,
			X:  p.X, Y: p.Y, Z: p.Z,
			VX: p.VX, VY: p.VY, VZ: p.VZ,
			Yaw: p.Yaw,
			HP:  p.HP,
		})
	}

	for _, c := range s.clients {
		p, ok := s.state.Players[c.playerID]
		if !ok {
			continue
		}
		msg, err := json.Marshal(snapshotMessage{
			Type:       "snap",
			ServerTick: s.state.Tick,
			AckSeq:     p.LastProcessedSeq,
			Me:         snapshotIdentity{ID: p.ID},
			Players:    players,
		})
		if err != nil {
			logging.Log.Errorf("marshal snapshot for player %d: %v", p.ID, err)
			continue
		}
		if c.enqueue(msg) {
			s.metrics.IncSnapshotSent()
		} else {
			s.metrics.IncSnapshotSkipped()
		}
	}
}
