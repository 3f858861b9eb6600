package server

import (
	"encoding/json"
	"math"

	"arena-server/world"
)

// handleClientMessage decodes one inbound frame on the reader goroutine and
// forwards the result to the simulation loop. Malformed frames and unknown
// message kinds are dropped without a reply; the connection stays open.
func (s *ArenaServer) handleClientMessage(c *Client, payload []byte) {
	var msg map[string]any
	if err := json.Unmarshal(payload, &msg); err != nil {
		s.metrics.IncMalformed()
		return
	}

	kind, _ := msg["type"].(string)
	if kind != "input" {
		s.metrics.IncUnknown()
		return
	}

	cmd := world.Input{
		Seq:   toUint32(msg["seq"]),
		MoveX: toFloat(msg["moveX"]),
		MoveZ: toFloat(msg["moveZ"]),
		Yaw:   toFloat(msg["yaw"]),
	}

	select {
	case s.inbound <- inboundInput{connID: c.id, cmd: cmd}:
	default:
		s.metrics.IncInboundDropped()
	}
}

// toFloat coerces a decoded JSON value to float64. Anything that is not a
// number, including a missing key, becomes 0.
func toFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}

// toUint32 coerces a decoded JSON value to an unsigned 32-bit sequence
// number, saturating at the type bounds.
func toUint32(v any) uint32 {
	f, ok := v.(float64)
	if !ok || f <= 0 {
		return 0
	}
	if f >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(f)
}
