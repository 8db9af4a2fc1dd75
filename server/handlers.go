package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Subham-Satapathy/zoombie-shooter/game"
)

// handleJoin starts the encounter for the first client and answers with
// an immediate snapshot so the client can build its scene.
func (c *Client) handleJoin(data json.RawMessage) {
	gs := c.server.gameState
	gs.Mu.Lock()
	if gs.WaveNumber == 0 && !gs.GameOver {
		c.server.startNewWave()
	}
	gs.Mu.Unlock()

	c.server.sendGameState()
}

// handleMove updates the defender position owned by the input layer.
func (c *Client) handleMove(data json.RawMessage) {
	var move MoveData
	if err := json.Unmarshal(data, &move); err != nil {
		log.Printf("Error unmarshaling move data: %v", err)
		return
	}

	gs := c.server.gameState
	gs.Mu.Lock()
	defer gs.Mu.Unlock()

	c.server.MovePlayer(move)
}

// MovePlayer clamps and applies a defender position. Dead defenders do
// not move. Callers must hold gameState.Mu.
func (s *Server) MovePlayer(move MoveData) {
	p := s.gameState.Player
	if p.IsDead {
		return
	}
	p.X = game.Clamp(move.X, -game.ArenaHalfSize, game.ArenaHalfSize)
	p.Z = game.Clamp(move.Z, -game.ArenaHalfSize, game.ArenaHalfSize)
}

// handleFire resolves a weapon discharge and reports the hits back to the
// firing client only.
func (c *Client) handleFire(data json.RawMessage) {
	var fire FireData
	if err := json.Unmarshal(data, &fire); err != nil {
		log.Printf("Error unmarshaling fire data: %v", err)
		return
	}

	gs := c.server.gameState
	gs.Mu.Lock()
	hits := c.server.FireWeapon(fire)
	gs.Mu.Unlock()

	result := FireResultData{Hits: make([]HitReport, 0, len(hits))}
	for _, h := range hits {
		result.Hits = append(result.Hits, HitReport{ZombieID: h.Zombie.ID, Killed: h.Killed})
	}

	select {
	case c.send <- ServerMessage{Type: MsgTypeFire, Data: result}:
	default:
	}
}

// FireWeapon validates a discharge request and runs the combat resolver.
// Discharges from a dead defender are no-op rejections. Callers must hold
// gameState.Mu.
func (s *Server) FireWeapon(fire FireData) []HitResult {
	if s.gameState.Player.IsDead || fire.Damage <= 0 || fire.Range <= 0 {
		return nil
	}
	return s.ResolveShot(fire)
}

// handleMelee swings the defender's melee around a point.
func (c *Client) handleMelee(data json.RawMessage) {
	var melee MeleeData
	if err := json.Unmarshal(data, &melee); err != nil {
		log.Printf("Error unmarshaling melee data: %v", err)
		return
	}

	gs := c.server.gameState
	gs.Mu.Lock()
	defer gs.Mu.Unlock()

	c.server.MeleeAttack(melee)
}

// MeleeAttack is the stamina-gated melee swing: without enough stamina it
// is a no-op, otherwise every live zombie within melee range of the point
// takes the full melee damage. Callers must hold gameState.Mu.
func (s *Server) MeleeAttack(melee MeleeData) []HitResult {
	p := s.gameState.Player
	if p.IsDead {
		return nil
	}
	if !p.UseStamina(game.MeleeStaminaCost) {
		return nil
	}

	var hits []HitResult
	for _, z := range s.zombiesWithinRadius(melee.X, melee.Z, game.MeleeRange) {
		killed := z.TakeDamage(game.MeleeDamage)
		if killed {
			s.killZombie(z)
		}
		hits = append(hits, HitResult{Zombie: z, Killed: killed})
	}
	return hits
}

// handleRestart rebuilds a fresh encounter.
func (c *Client) handleRestart(data json.RawMessage) {
	gs := c.server.gameState
	gs.Mu.Lock()
	c.server.resetGame()
	c.server.startNewWave()
	gs.Mu.Unlock()

	log.Printf("Client %d restarted the encounter", c.ID)
	c.server.sendGameState()
}

// HandleStats serves a run summary for the scoring/leaderboard layer.
func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	gs := s.gameState
	gs.Mu.RLock()
	stats := struct {
		Wave      int   `json:"wave"`
		Active    bool  `json:"waveActive"`
		Score     int   `json:"score"`
		Kills     int   `json:"kills"`
		Remaining int   `json:"remaining"`
		Tick      int64 `json:"tick"`
		GameOver  bool  `json:"gameOver"`
	}{
		Wave:      gs.WaveNumber,
		Active:    gs.WaveActive,
		Score:     gs.Player.Score,
		Kills:     gs.Player.Kills,
		Remaining: gs.LiveZombies(),
		Tick:      gs.Tick,
		GameOver:  gs.GameOver,
	}
	gs.Mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		log.Printf("Error encoding stats: %v", err)
	}
}
