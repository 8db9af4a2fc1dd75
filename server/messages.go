package server

import (
	"encoding/json"

	"github.com/Subham-Satapathy/zoombie-shooter/game"
)

// Message types
const (
	// Client -> server
	MsgTypeJoin    = "join"
	MsgTypeMove    = "move"
	MsgTypeFire    = "fire"
	MsgTypeMelee   = "melee"
	MsgTypeRestart = "restart"

	// Server -> client
	MsgTypeUpdate        = "update"
	MsgTypeWaveStart     = "waveStart"
	MsgTypeWaveComplete  = "waveComplete"
	MsgTypeZombieKilled  = "zombieKilled"
	MsgTypePlayerDamaged = "playerDamaged"
	MsgTypeGameOver      = "gameOver"
	MsgTypeError         = "error"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// MoveData carries the defender position owned by the input layer.
type MoveData struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// FireData is a weapon discharge request. One request covers both the
// single-projectile and multi-pellet weapons; pellet count 1 is a single
// ray.
type FireData struct {
	OriginX  float64 `json:"originX"`
	OriginZ  float64 `json:"originZ"`
	Dir      float64 `json:"dir"`      // radians on the ground plane
	Range    float64 `json:"range"`    //
	Pellets  int     `json:"pellets"`  //
	Accuracy float64 `json:"accuracy"` // 0..1, 1 = no spread
	Damage   float64 `json:"damage"`   // per pellet
}

// MeleeData is a defender-initiated melee swing around a point.
type MeleeData struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// WaveEventData is the payload for waveStart and waveComplete.
type WaveEventData struct {
	Wave  int `json:"wave"`
	Total int `json:"total,omitempty"` // zombies in the wave (waveStart only)
}

// ZombieKilledData reports a kill at its position with the score awarded.
type ZombieKilledData struct {
	ID    int     `json:"id"`
	Kind  string  `json:"kind"`
	X     float64 `json:"x"`
	Z     float64 `json:"z"`
	Score int     `json:"score"`
}

// PlayerDamagedData reports applied damage and the resulting health
// fraction for the HUD.
type PlayerDamagedData struct {
	Amount         float64 `json:"amount"`
	HealthFraction float64 `json:"healthFraction"`
}

// GameOverData is the final tally.
type GameOverData struct {
	Wave  int `json:"wave"`
	Score int `json:"score"`
	Kills int `json:"kills"`
}

// HitReport echoes resolved hits back to the firing client.
type HitReport struct {
	ZombieID int  `json:"zombieId"`
	Killed   bool `json:"killed"`
}

// FireResultData is the direct response to a fire request.
type FireResultData struct {
	Hits []HitReport `json:"hits"`
}

// UpdateData is the per-tick state snapshot.
type UpdateData struct {
	Tick       int64           `json:"tick"`
	Player     *game.Player    `json:"player"`
	Zombies    []*game.Zombie  `json:"zombies"`
	Wave       game.WaveConfig `json:"wave"`
	WaveActive bool            `json:"waveActive"`
	Spawned    int             `json:"spawned"`
	Remaining  int             `json:"remaining"` // live zombies
	GameOver   bool            `json:"gameOver"`
}
