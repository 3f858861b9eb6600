package server

import "sync/atomic"

// Metrics tracks runtime counters for the gateway and scheduler. Fields are
// updated atomically so the REST surface can read them without touching the
// simulation goroutine.
type Metrics struct {
	TickCount        int64 // scheduler firings
	TotalTickNs      int64 // accumulated tick work duration
	TickOverruns     int64 // ticks whose work exceeded the tick period
	ActivePlayers    int64 // currently registered players
	InputsAccepted   int64 // input commands enqueued onto a player queue
	QueueDropped     int64 // oldest commands discarded by a full player queue
	InboundDropped   int64 // decoded commands discarded by a full inbound channel
	MalformedDropped int64 // frames that failed to parse
	UnknownDropped   int64 // parsed frames with an unknown type tag
	SnapshotsSent    int64 // per-recipient snapshots delivered to a send buffer
	SnapshotsSkipped int64 // recipients skipped because their buffer was full
}

func (m *Metrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

func (m *Metrics) IncTickOverrun()     { atomic.AddInt64(&m.TickOverruns, 1) }
func (m *Metrics) IncPlayers()         { atomic.AddInt64(&m.ActivePlayers, 1) }
func (m *Metrics) DecPlayers()         { atomic.AddInt64(&m.ActivePlayers, -1) }
func (m *Metrics) IncInputAccepted()   { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *Metrics) IncQueueDropped()    { atomic.AddInt64(&m.QueueDropped, 1) }
func (m *Metrics) IncInboundDropped()  { atomic.AddInt64(&m.InboundDropped, 1) }
func (m *Metrics) IncMalformed()       { atomic.AddInt64(&m.MalformedDropped, 1) }
func (m *Metrics) IncUnknown()         { atomic.AddInt64(&m.UnknownDropped, 1) }
func (m *Metrics) IncSnapshotSent()    { atomic.AddInt64(&m.SnapshotsSent, 1) }
func (m *Metrics) IncSnapshotSkipped() { atomic.AddInt64(&m.SnapshotsSkipped, 1) }

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	TickCount        int64   `json:"tick_count"`
	AvgTickMs        float64 `json:"avg_tick_ms"`
	TickOverruns     int64   `json:"tick_overruns"`
	ActivePlayers    int64   `json:"active_players"`
	InputsAccepted   int64   `json:"inputs_accepted"`
	QueueDropped     int64   `json:"queue_dropped"`
	InboundDropped   int64   `json:"inbound_dropped"`
	MalformedDropped int64   `json:"malformed_dropped"`
	UnknownDropped   int64   `json:"unknown_dropped"`
	SnapshotsSent    int64   `json:"snapshots_sent"`
	SnapshotsSkipped int64   `json:"snapshots_skipped"`
}

// Snapshot returns a copy of the counters for reporting.
func (m *Metrics) Snapshot() MetricsSnapshot {
	ticks := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if ticks > 0 {
		avgMs = float64(total) / float64(ticks) / 1e6
	}
	return MetricsSnapshot{
		TickCount:        ticks,
		AvgTickMs:        avgMs,
		TickOverruns:     atomic.LoadInt64(&m.TickOverruns),
		ActivePlayers:    atomic.LoadInt64(&m.ActivePlayers),
		InputsAccepted:   atomic.LoadInt64(&m.InputsAccepted),
		QueueDropped:     atomic.LoadInt64(&m.QueueDropped),
		InboundDropped:   atomic.LoadInt64(&m.InboundDropped),
		MalformedDropped: atomic.LoadInt64(&m.MalformedDropped),
		UnknownDropped:   atomic.LoadInt64(&m.UnknownDropped),
		SnapshotsSent:    atomic.LoadInt64(&m.SnapshotsSent),
		SnapshotsSkipped: atomic.LoadInt64(&m.SnapshotsSkipped),
	}
}
