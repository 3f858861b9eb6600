package world

// Input is one client movement intent. It is created when the gateway
// decodes an "input" message, consumed by the tick that drains it, and
// never mutated.
type Input struct {
	Seq   uint32
	MoveX float64
	MoveZ float64
	Yaw   float64
}
