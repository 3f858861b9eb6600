package world

import "math"

// StepParams are the fixed simulation parameters, set once at startup.
type StepParams struct {
	Speed      float64 // movement speed in units per second
	HalfExtent float64 // X and Z are clamped to [-HalfExtent, HalfExtent]
}

// deadZone is the input magnitude below which movement is treated as zero.
const deadZone = 1e-6

// Step advances a single player by dt seconds. It is deterministic and
// touches only X, Z, VX, VZ and Yaw; Y, VY and HP are reserved for future
// vertical and combat mechanics. A nil input means zero movement with yaw
// retained from the previous tick.
func Step(p *Player, in *Input, dt float64, params StepParams) {
	var mx, mz float64
	if in != nil {
		mx = clamp(in.MoveX, -1, 1)
		mz = clamp(in.MoveZ, -1, 1)
		p.Yaw = in.Yaw
	}

	length := math.Sqrt(mx*mx + mz*mz)
	if length <= deadZone {
		mx, mz = 0, 0
	} else if length > 1 {
		// Oversized vectors are normalized; sub-unit magnitudes pass
		// through so analog inputs keep their partial speed.
		mx /= length
		mz /= length
	}

	// Velocity is assigned, not accumulated: direction changes are instant.
	p.VX = mx * params.Speed
	p.VZ = mz * params.Speed

	p.X += p.VX * dt
	p.Z += p.VZ * dt

	// Clamp position only. A player pinned against the boundary keeps a
	// velocity pressing into the wall until its input changes.
	p.X = clamp(p.X, -params.HalfExtent, params.HalfExtent)
	p.Z = clamp(p.Z, -params.HalfExtent, params.HalfExtent)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
