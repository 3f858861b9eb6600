package server

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arena-server/config"
)

func testConfig() config.Config {
	return config.Config{
		TickHz:        20,
		MoveSpeed:     6.0,
		HalfExtent:    90.0,
		InputQueueCap: 256,
		SendBuffer:    256,
	}
}

func TestHandleClientMessageForwardsInput(t *testing.T) {
	s := NewArenaServer(testConfig())
	c := &Client{id: "conn-1"}

	s.handleClientMessage(c, []byte(`{"type":"input","seq":7,"moveX":0.5,"moveZ":-1,"yaw":3.14}`))

	select {
	case in := <-s.inbound:
		assert.Equal(t, "conn-1", in.connID)
		assert.Equal(t, uint32(7), in.cmd.Seq)
		assert.Equal(t, 0.5, in.cmd.MoveX)
		assert.Equal(t, -1.0, in.cmd.MoveZ)
		assert.Equal(t, 3.14, in.cmd.Yaw)
	default:
		t.Fatal("expected a forwarded input command")
	}
}

func TestHandleClientMessageDropsMalformed(t *testing.T) {
	s := NewArenaServer(testConfig())
	c := &Client{id: "conn-1"}

	s.handleClientMessage(c, []byte(`{not json`))

	assert.Empty(t, s.inbound)
	assert.Equal(t, int64(1), s.metrics.Snapshot().MalformedDropped)
}

func TestHandleClientMessageIgnoresUnknownKind(t *testing.T) {
	s := NewArenaServer(testConfig())
	c := &Client{id: "conn-1"}

	s.handleClientMessage(c, []byte(`{"type":"chat","text":"hi"}`))
	s.handleClientMessage(c, []byte(`{"seq":1}`))

	assert.Empty(t, s.inbound)
	assert.Equal(t, int64(2), s.metrics.Snapshot().UnknownDropped)
}

func TestHandleClientMessageCoercesNonNumericFields(t *testing.T) {
	s := NewArenaServer(testConfig())
	c := &Client{id: "conn-1"}

	s.handleClientMessage(c, []byte(`{"type":"input","seq":"abc","moveX":"fast","yaw":null}`))

	in := <-s.inbound
	assert.Zero(t, in.cmd.Seq)
	assert.Zero(t, in.cmd.MoveX)
	assert.Zero(t, in.cmd.MoveZ)
	assert.Zero(t, in.cmd.Yaw)
}

func TestToUint32Saturates(t *testing.T) {
	assert.Equal(t, uint32(0), toUint32(-5.0))
	assert.Equal(t, uint32(0), toUint32(nil))
	assert.Equal(t, uint32(0), toUint32("9"))
	assert.Equal(t, uint32(42), toUint32(42.0))
	assert.Equal(t, uint32(math.MaxUint32), toUint32(float64(math.MaxUint32)+10))
}

func TestApplyInputUnknownConnIsDropped(t *testing.T) {
	s := NewArenaServer(testConfig())
	s.applyInput(inboundInput{connID: "ghost"})
	require.Zero(t, s.metrics.Snapshot().InputsAccepted)
}
