package server

import (
	"math/rand"

	"github.com/Subham-Satapathy/zoombie-shooter/game"
)

// newTestServer builds a server with a fixed RNG seed and a buffered
// broadcast channel, without running the hub or game loop.
func newTestServer(seed int64) *Server {
	return &Server{
		clients:   make(map[int]*Client),
		broadcast: make(chan ServerMessage, 256),
		done:      make(chan struct{}),
		gameState: game.NewGameState(),
		grid:      NewSpatialGrid(),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// drainMessages empties the broadcast buffer and returns what was queued.
func drainMessages(s *Server) []ServerMessage {
	var msgs []ServerMessage
	for {
		select {
		case m := <-s.broadcast:
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
}

// messagesOfType filters drained messages by type.
func messagesOfType(msgs []ServerMessage, msgType string) []ServerMessage {
	var out []ServerMessage
	for _, m := range msgs {
		if m.Type == msgType {
			out = append(out, m)
		}
	}
	return out
}

// runTicks advances the simulation n ticks without the wall-clock loop.
func runTicks(s *Server, n int) {
	for i := 0; i < n; i++ {
		s.updateGame()
		// Keep the buffer from overflowing during long runs.
		drainMessages(s)
	}
}

// addZombie places a zombie directly into the live set for steering and
// combat tests.
func addZombie(s *Server, kind game.ZombieKind, x, z float64) *game.Zombie {
	s.nextZombieID++
	zombie := game.NewZombie(s.nextZombieID, kind, x, z, 0)
	s.gameState.Zombies = append(s.gameState.Zombies, zombie)
	return zombie
}
