package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState() *State {
	return NewState(StepParams{Speed: 6.0, HalfExtent: 90.0}, 256)
}

func TestAddPlayerSpawnDefaults(t *testing.T) {
	s := newTestState()
	p := s.AddPlayer("conn-a")

	assert.Equal(t, 1, p.ID)
	assert.Equal(t, SpawnX, p.X)
	assert.Equal(t, SpawnY, p.Y)
	assert.Equal(t, SpawnZ, p.Z)
	assert.Zero(t, p.VX)
	assert.Zero(t, p.VY)
	assert.Zero(t, p.VZ)
	assert.Zero(t, p.Yaw)
	assert.Equal(t, SpawnHP, p.HP)
	assert.Zero(t, p.LastProcessedSeq)
	assert.Zero(t, p.PendingInputs())
	assert.Equal(t, "conn-a", p.ConnID)
}

func TestAddPlayerIDsAreSequentialAndNeverReused(t *testing.T) {
	s := newTestState()
	a := s.AddPlayer("conn-a")
	b := s.AddPlayer("conn-b")
	require.Equal(t, 1, a.ID)
	require.Equal(t, 2, b.ID)

	s.RemovePlayer(b.ID)
	c := s.AddPlayer("conn-c")
	assert.Equal(t, 3, c.ID)
	assert.Equal(t, 2, s.PlayerCount())
}

func TestAdvanceLatestWins(t *testing.T) {
	s := newTestState()
	p := s.AddPlayer("conn-a")

	p.EnqueueInput(Input{Seq: 1, MoveX: 1})
	p.EnqueueInput(Input{Seq: 2, MoveZ: 1})
	s.Advance(0.05)

	// Only the newest command drives movement; the batch is acked as one.
	assert.Equal(t, uint32(2), p.LastProcessedSeq)
	assert.Zero(t, p.X, "collapsed command must not move the player")
	assert.InDelta(t, 6.0*0.05, p.Z, 1e-9)
	assert.Zero(t, p.PendingInputs())
}

func TestAdvanceEmptyQueueKeepsAck(t *testing.T) {
	s := newTestState()
	p := s.AddPlayer("conn-a")
	p.EnqueueInput(Input{Seq: 7, MoveX: 1, Yaw: 2})
	s.Advance(0.05)
	require.Equal(t, uint32(7), p.LastProcessedSeq)

	s.Advance(0.05)
	assert.Equal(t, uint32(7), p.LastProcessedSeq)
	assert.Equal(t, 2.0, p.Yaw, "yaw is retained across empty ticks")
	assert.Zero(t, p.VX, "no input means no movement")
}

func TestAdvanceAckMonotonic(t *testing.T) {
	s := newTestState()
	p := s.AddPlayer("conn-a")

	var prev uint32
	for seq := uint32(1); seq <= 50; seq++ {
		p.EnqueueInput(Input{Seq: seq, MoveX: 1})
		if seq%3 == 0 {
			// Some ticks fire with nothing queued.
			s.Advance(0.05)
		}
		s.Advance(0.05)
		require.GreaterOrEqual(t, p.LastProcessedSeq, prev)
		prev = p.LastProcessedSeq
	}
}

func TestAdvanceIncrementsTickByOne(t *testing.T) {
	s := newTestState()
	for i := int64(1); i <= 10; i++ {
		s.Advance(0.05)
		require.Equal(t, i, s.Tick)
	}
}

func TestAdvanceStepsEveryPlayer(t *testing.T) {
	s := newTestState()
	a := s.AddPlayer("conn-a")
	b := s.AddPlayer("conn-b")
	a.EnqueueInput(Input{Seq: 1, MoveX: 1})
	b.EnqueueInput(Input{Seq: 1, MoveZ: -1})

	s.Advance(0.05)

	assert.Greater(t, a.X, 0.0)
	assert.Less(t, b.Z, 0.0)
	assert.Zero(t, a.PendingInputs())
	assert.Zero(t, b.PendingInputs())
}

func TestEnqueueInputDropsOldestAtCap(t *testing.T) {
	s := NewState(StepParams{Speed: 6.0, HalfExtent: 90.0}, 4)
	p := s.AddPlayer("conn-a")

	dropped := 0
	for seq := uint32(1); seq <= 6; seq++ {
		if p.EnqueueInput(Input{Seq: seq}) {
			dropped++
		}
	}
	assert.Equal(t, 2, dropped)
	assert.Equal(t, 4, p.PendingInputs())

	in := p.DrainInputs()
	require.NotNil(t, in)
	assert.Equal(t, uint32(6), in.Seq, "newest command survives the cap")
}

func TestDrainInputsEmpty(t *testing.T) {
	s := newTestState()
	p := s.AddPlayer("conn-a")
	assert.Nil(t, p.DrainInputs())
}

func TestUncappedQueueGrows(t *testing.T) {
	s := NewState(StepParams{Speed: 6.0, HalfExtent: 90.0}, 0)
	p := s.AddPlayer("conn-a")
	for seq := uint32(1); seq <= 1000; seq++ {
		require.False(t, p.EnqueueInput(Input{Seq: seq}))
	}
	assert.Equal(t, 1000, p.PendingInputs())
}
