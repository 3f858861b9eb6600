package server

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"arena-server/config"
	"arena-server/logging"
	"arena-server/world"
)

// inboundBuffer sizes the channel between reader goroutines and the
// simulation loop. Commands beyond it are dropped, never blocked on.
const inboundBuffer = 256

// inboundInput pairs a decoded movement command with the connection handle
// it arrived on.
type inboundInput struct {
	connID string
	cmd    world.Input
}

// ArenaServer owns the world state and serializes every mutation — joins,
// leaves, input appends and tick advances — onto a single goroutine. That
// serialization is what lets the world go unlocked: connection goroutines
// only decode and forward.
type ArenaServer struct {
	cfg      config.Config
	upgrader websocket.Upgrader

	state   *world.State
	clients map[string]*Client // connection handle -> live client

	register   chan *Client
	unregister chan *Client
	inbound    chan inboundInput
	done       chan struct{}

	metrics Metrics
	started atomic.Int64 // unix seconds, set when Run begins
}

// NewArenaServer builds a server around a fresh world.
func NewArenaServer(cfg config.Config) *ArenaServer {
	return &ArenaServer{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins; transport auth is out of scope.
				return true
			},
		},
		state: world.NewState(world.StepParams{
			Speed:      cfg.MoveSpeed,
			HalfExtent: cfg.HalfExtent,
		}, cfg.InputQueueCap),
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundInput, inboundBuffer),
		done:       make(chan struct{}),
	}
}

// HandleWS upgrades the request and hands the connection to the simulation
// loop. Run must already be active.
func (s *ArenaServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Log.Warnf("websocket upgrade failed: %v", err)
		return
	}

	c := NewClient(conn, s.cfg.SendBuffer)
	s.register <- c

	go c.WritePump()
	go c.ReadPump(s)
}

// Run drives the server until Stop. Register, unregister, input and tick
// events are consumed one at a time; none ever interleaves with another.
func (s *ArenaServer) Run() {
	s.started.Store(time.Now().Unix())

	interval := s.cfg.TickInterval()
	dt := s.cfg.Dt()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logging.Log.Infof("simulation loop running at %d Hz (dt=%.4fs)", s.cfg.TickHz, dt)

	for {
		select {
		case c := <-s.register:
			s.addClient(c)
		case c := <-s.unregister:
			s.removeClient(c)
		case in := <-s.inbound:
			s.applyInput(in)
		case <-ticker.C:
			start := time.Now()
			s.state.Advance(dt)
			s.broadcastSnapshots()
			elapsed := time.Since(start)
			s.metrics.AddTick(elapsed.Nanoseconds())
			if elapsed > interval {
				s.metrics.IncTickOverrun()
				logging.Log.Warnf("tick %d overran its period: %s > %s", s.state.Tick, elapsed, interval)
			}
		case <-s.done:
			return
		}
	}
}

// Stop terminates the simulation loop.
func (s *ArenaServer) Stop() {
	close(s.done)
}

// addClient registers a player for the connection and sends the hello frame.
func (s *ArenaServer) addClient(c *Client) {
	p := s.state.AddPlayer(c.id)
	c.playerID = p.ID
	s.clients[c.id] = c
	s.metrics.IncPlayers()

	if !c.enqueue(marshalHello(p.ID, s.cfg.TickHz)) {
		logging.Log.Warnf("conn %s: send buffer full for hello", c.id)
	}
	logging.Log.Infof("player %d joined (conn %s)", p.ID, c.id)
}

// removeClient drops the connection and its player entity immediately. The
// id is never reused, so no later snapshot references it.
func (s *ArenaServer) removeClient(c *Client) {
	if _, ok := s.clients[c.id]; !ok {
		return
	}
	delete(s.clients, c.id)
	s.state.RemovePlayer(c.playerID)
	s.metrics.DecPlayers()
	close(c.send)
	logging.Log.Infof("player %d left (conn %s)", c.playerID, c.id)
}

// applyInput appends a decoded command to its player's queue. Commands for
// connections that already left are dropped silently.
func (s *ArenaServer) applyInput(in inboundInput) {
	c, ok := s.clients[in.connID]
	if !ok {
		return
	}
	p, ok := s.state.Players[c.playerID]
	if !ok {
		return
	}
	if p.EnqueueInput(in.cmd) {
		s.metrics.IncQueueDropped()
	}
	s.metrics.IncInputAccepted()
}

// Status is a read-only view of the running server for the REST surface.
type Status struct {
	TickHz    int
	UptimeSec int64
	Metrics   MetricsSnapshot
}

// Status can be called from any goroutine.
func (s *ArenaServer) Status() Status {
	var uptime int64
	if started := s.started.Load(); started > 0 {
		uptime = time.Now().Unix() - started
	}
	return Status{
		TickHz:    s.cfg.TickHz,
		UptimeSec: uptime,
		Metrics:   s.metrics.Snapshot(),
	}
}
