package server

import (
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Subham-Satapathy/zoombie-shooter/game"
)

// isValidOrigin checks if the origin is allowed to connect
func isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No origin header - could be a non-browser client
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		log.Printf("Invalid origin URL: %s", origin)
		return false
	}

	// Allow same-origin connections
	if r.Host == originURL.Host {
		return true
	}

	// Allow localhost connections for development
	if strings.HasPrefix(originURL.Host, "localhost:") ||
		strings.HasPrefix(originURL.Host, "127.0.0.1:") ||
		originURL.Host == "localhost" ||
		originURL.Host == "127.0.0.1" {
		return true
	}

	log.Printf("Rejected WebSocket connection from origin: %s", origin)
	return false
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       isValidOrigin,
	EnableCompression: true,
}

// Client represents a connected collaborator: the presentation layer that
// renders the horde and submits defender input.
type Client struct {
	ID     int
	conn   *websocket.Conn
	send   chan ServerMessage
	server *Server
}

// Server manages the simulation and client connections
type Server struct {
	mu         sync.RWMutex
	clients    map[int]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan ServerMessage
	done       chan struct{}

	gameState *game.GameState
	grid      *SpatialGrid
	rng       *rand.Rand

	nextID       int
	nextZombieID int

	// Scheduler tick gates. Zero means nothing pending; reset clears both
	// so no straggling spawn survives a restart.
	nextSpawnTick int64
	nextWaveTick  int64
}

// NewServer creates a game server with a time-seeded RNG.
func NewServer() *Server {
	return NewServerWithSeed(time.Now().UnixNano())
}

// NewServerWithSeed creates a game server with a fixed RNG seed, so test
// runs are reproducible.
func NewServerWithSeed(seed int64) *Server {
	return &Server{
		clients:    make(map[int]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan ServerMessage, 256),
		done:       make(chan struct{}),
		gameState:  game.NewGameState(),
		grid:       NewSpatialGrid(),
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Run drives the client hub. The simulation loop runs alongside it.
func (s *Server) Run() {
	go s.gameLoop()

	for {
		select {
		case <-s.done:
			return

		case client := <-s.register:
			s.mu.Lock()
			s.clients[client.ID] = client
			s.mu.Unlock()
			log.Printf("Client %d connected", client.ID)

		case client := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.clients[client.ID]; ok {
				delete(s.clients, client.ID)
				close(client.send)
			}
			s.mu.Unlock()
			log.Printf("Client %d disconnected", client.ID)

		case message := <-s.broadcast:
			s.mu.RLock()
			for _, client := range s.clients {
				select {
				case client.send <- message:
				default:
					log.Printf("Warning: Client %d send buffer full, skipping broadcast", client.ID)
				}
			}
			s.mu.RUnlock()
		}
	}
}

// Shutdown stops the hub and game loop goroutines.
func (s *Server) Shutdown() {
	close(s.done)
}

// gameLoop advances the simulation one fixed step per tick.
func (s *Server) gameLoop() {
	ticker := time.NewTicker(game.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.updateGame()
			s.sendGameState()
		}
	}
}

// updateGame advances one simulation tick. Order matters: spawning first,
// then zombie updates against start-of-tick sibling positions, then
// corpse removal and wave-completion detection.
func (s *Server) updateGame() {
	gs := s.gameState
	gs.Mu.Lock()
	defer gs.Mu.Unlock()

	gs.Tick++

	// Corpses whose linger elapsed leave the set before the grid is
	// rebuilt, so registry indices stay valid for the rest of the tick
	// and for handlers that run before the next one.
	s.removeCorpses()

	if gs.Player == nil {
		// No defender this tick; skip spawning and AI rather than
		// failing the whole update.
		return
	}

	s.advanceWave()

	s.grid.IndexZombies(gs.Zombies)
	s.updateZombies()

	s.checkWaveComplete()

	gs.Player.RegenStamina()
}

// removeCorpses drops dead zombies whose death linger has elapsed. The
// linger keeps the corpse in snapshots while the presentation layer plays
// the death animation.
func (s *Server) removeCorpses() {
	gs := s.gameState
	kept := gs.Zombies[:0]
	for _, z := range gs.Zombies {
		if z.IsDead && gs.Tick >= z.RemoveAtTick {
			continue
		}
		kept = append(kept, z)
	}
	// Clear trailing slots so removed zombies can be collected.
	for i := len(kept); i < len(gs.Zombies); i++ {
		gs.Zombies[i] = nil
	}
	gs.Zombies = kept
}

// sendGameState broadcasts the per-tick snapshot.
func (s *Server) sendGameState() {
	gs := s.gameState
	gs.Mu.RLock()
	update := UpdateData{
		Tick:       gs.Tick,
		Player:     gs.Player,
		Zombies:    gs.Zombies,
		Wave:       gs.Wave,
		WaveActive: gs.WaveActive,
		Spawned:    gs.Spawned,
		Remaining:  gs.LiveZombies(),
		GameOver:   gs.GameOver,
	}
	gs.Mu.RUnlock()

	s.broadcastEvent(MsgTypeUpdate, update)
}

// broadcastEvent queues a message for every connected client without
// blocking the simulation.
func (s *Server) broadcastEvent(msgType string, data interface{}) {
	select {
	case s.broadcast <- ServerMessage{Type: msgType, Data: data}:
	default:
		log.Printf("Warning: broadcast buffer full, dropping %s", msgType)
	}
}

// HandleWebSocket handles WebSocket connections
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	s.mu.Lock()
	clientID := s.nextID
	s.nextID++
	s.mu.Unlock()

	client := &Client{
		ID:     clientID,
		conn:   conn,
		send:   make(chan ServerMessage, 256),
		server: s,
	}

	s.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump handles incoming messages from the client
func (c *Client) readPump() {
	defer func() {
		c.server.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var msg ClientMessage
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		c.handleMessage(msg)
	}
}

// writePump sends messages to the client
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes a message from the client
func (c *Client) handleMessage(msg ClientMessage) {
	// Recover from any panic to prevent disconnection
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC in handleMessage for client %d, type %s: %v", c.ID, msg.Type, r)
		}
	}()

	switch msg.Type {
	case MsgTypeJoin:
		c.handleJoin(msg.Data)
	case MsgTypeMove:
		c.handleMove(msg.Data)
	case MsgTypeFire:
		c.handleFire(msg.Data)
	case MsgTypeMelee:
		c.handleMelee(msg.Data)
	case MsgTypeRestart:
		c.handleRestart(msg.Data)
	default:
		log.Printf("Unknown message type: %s", msg.Type)
	}
}
