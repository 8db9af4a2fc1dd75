package game

import (
	"math"
	"sync"
	"time"
)

// Simulation constants
const (
	// Fixed-step simulation: every time gate in the core (spawn cadence,
	// attack cooldowns, invincibility, inter-wave delay) is counted in
	// ticks so zombie speed does not depend on wall-clock jitter.
	TPS            = 20
	UpdateInterval = time.Second / TPS

	// Arena dimensions. The arena is an open plane; the bound only caps
	// defender movement and spawn placement.
	ArenaHalfSize = 50.0

	// Spawn ring around the defender. Independent of wave number so
	// zombies never appear on top of the defender and never outside the
	// explorable area.
	SpawnRingMin = 20.0
	SpawnRingMax = 35.0

	// Wave pacing
	BaseWaveZombies   = 5   // plus WaveZombieGrowth per wave number
	WaveZombieGrowth  = 2   //
	BaseSpawnRate     = 1.0 // zombies per second at wave 0
	SpawnRateGrowth   = 0.2 // per wave number
	SpawnRateCap      = 3.0 // ceiling regardless of wave number
	InterWaveDelaySec = 5.0 // pause between waveComplete and the next wave
	DeathLingerSec    = 1.5 // corpse stays in the set for the death animation
)

// Defender damage model constants
const (
	DamageCap          = 30.0 // per-hit ceiling after the swarm multiplier
	InvincibilitySec   = 0.8  // window after a successful hit
	SwarmRadius        = 5.0  // zombies within this range of the defender scale damage
	SwarmDamageStep    = 0.1  // multiplier gained per nearby zombie
	SwarmMultiplierCap = 3.0
)

// Steering constants
const (
	// Congestion/formation mode: when more than CongestionNeighborLimit
	// other zombies sit within AvoidanceRadius of the prospective step and
	// the zombie is already near the defender, it stops pushing into the
	// crowd and orbits to a surround position instead.
	AvoidanceRadius         = 2.5
	CongestionNeighborLimit = 2
	CongestionNearDist      = 10.0
	FormationMinRadius      = 3.0
	FormationRadiusFactor   = 0.7

	// Pairwise repulsion: minimum separation grows with distance to the
	// defender so the horde spreads out at range and packs in close.
	BaseSeparation      = 1.5
	SeparationDistScale = 0.05
	RepulsionWeight     = 1.2
	RepulsionJitter     = 0.25
	RepulsionSpeedScale = 0.7

	// Direct approach never overshoots attack range: when one tick of
	// travel would, only 90% of the remaining gap is covered.
	ApproachGapScale = 0.9
)

// Weapon limits accepted from the collaborator
const (
	MaxPelletCount = 12
	MaxWeaponRange = 100.0
	MaxSpreadAngle = 0.35 // radians of half-cone at accuracy 0

	// Perpendicular tolerance for the distance-based fallback test used
	// when no hull intersection is found along the ray.
	RayFallbackDist = 0.6
)

// Defender constants
const (
	PlayerMaxHealth    = 100.0
	PlayerMaxStamina   = 100.0
	StaminaRegenPerSec = 10.0
	MeleeStaminaCost   = 25.0
	MeleeDamage        = 50.0
	MeleeRange         = 3.0
)

// ZombieKind identifies one of the three fixed zombie variants.
type ZombieKind int

const (
	KindWalker ZombieKind = iota
	KindRunner
	KindTank

	NumZombieKinds = 3
)

// String returns the display name for a kind.
func (k ZombieKind) String() string {
	switch k {
	case KindWalker:
		return "walker"
	case KindRunner:
		return "runner"
	case KindTank:
		return "tank"
	default:
		return "unknown"
	}
}

// ZombieStats holds the fixed per-kind parameterization. There is no
// per-instance randomization of these base stats.
type ZombieStats struct {
	Name           string
	MaxHealth      float64
	Damage         float64 // base melee damage before the swarm multiplier
	Speed          float64 // units per second
	AttackRange    float64
	AttackCooldown float64 // seconds
	DetectionRange float64
	ScoreValue     int
	Scale          float64 // model scale hint for the presentation layer
	HitRadius      float64 // hull radius used by ray hit detection
	Height         float64 // fixed y offset for the presentation layer
}

var ZombieData = map[ZombieKind]ZombieStats{
	KindWalker: {
		Name:           "Walker",
		MaxHealth:      100,
		Damage:         10,
		Speed:          2.0,
		AttackRange:    2.0,
		AttackCooldown: 1.0,
		DetectionRange: 80,
		ScoreValue:     10,
		Scale:          1.0,
		HitRadius:      0.6,
		Height:         1.8,
	},
	KindRunner: {
		Name:           "Runner",
		MaxHealth:      60,
		Damage:         8,
		Speed:          4.5,
		AttackRange:    1.8,
		AttackCooldown: 0.8,
		DetectionRange: 80,
		ScoreValue:     15,
		Scale:          0.9,
		HitRadius:      0.5,
		Height:         1.7,
	},
	KindTank: {
		Name:           "Tank",
		MaxHealth:      300,
		Damage:         25,
		Speed:          1.2,
		AttackRange:    2.5,
		AttackCooldown: 2.0,
		DetectionRange: 80,
		ScoreValue:     50,
		Scale:          1.4,
		HitRadius:      0.9,
		Height:         2.2,
	},
}

// Zombie is one hostile entity on the ground plane. Positions are (x, z);
// the vertical axis belongs to the presentation layer.
type Zombie struct {
	ID   int        `json:"id"`
	Kind ZombieKind `json:"kind"`

	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`

	X      float64 `json:"x"`
	Z      float64 `json:"z"`
	Facing float64 `json:"facing"` // radians, toward the defender

	IsDead      bool `json:"isDead"`
	IsAttacking bool `json:"isAttacking"`

	// Tick-based gates
	LastAttackTick int64 `json:"-"`
	AttackShowTick int64 `json:"-"` // IsAttacking display window end
	RemoveAtTick   int64 `json:"-"` // corpse removal after the death linger

	// Stable spawn-time seed in [0, 2π) driving the surround-formation
	// angle, so spread does not depend on update order or identity.
	FormationSeed float64 `json:"-"`
}

// Player is the defender. The core reads its position and alive flag each
// tick; movement and aiming belong to the collaborator on the other side
// of the websocket.
type Player struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`

	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`

	Stamina    float64 `json:"stamina"`
	MaxStamina float64 `json:"maxStamina"`

	Score  int  `json:"score"`
	Kills  int  `json:"kills"`
	IsDead bool `json:"isDead"`

	// Invincibility window anchor
	LastDamageTick int64 `json:"-"`
}

// NewPlayer returns a defender at the arena origin with full health and
// stamina and no active invincibility window.
func NewPlayer() *Player {
	return &Player{
		Health:         PlayerMaxHealth,
		MaxHealth:      PlayerMaxHealth,
		Stamina:        PlayerMaxStamina,
		MaxStamina:     PlayerMaxStamina,
		LastDamageTick: -Ticks(InvincibilitySec),
	}
}

// WaveConfig is the deterministic per-wave composition, recomputed from
// the wave number alone. See WaveConfigFor.
type WaveConfig struct {
	Number    int     `json:"number"`
	Total     int     `json:"total"`     // zombies to spawn this wave
	SpawnRate float64 `json:"spawnRate"` // zombies per second, capped
	WalkerPct float64 `json:"walkerPct"`
	RunnerPct float64 `json:"runnerPct"`
	TankPct   float64 `json:"tankPct"`
}

// GameState holds the entire simulation state.
type GameState struct {
	Mu sync.RWMutex // guards everything below between loop and handlers

	Player  *Player
	Zombies []*Zombie

	Tick int64

	// Wave scheduler state
	WaveNumber int // monotonic, 0 before the first wave
	WaveActive bool
	Spawned    int // zombies spawned so far this wave
	Wave       WaveConfig

	GameOver bool
}

// NewGameState creates a fresh pre-first-wave state.
func NewGameState() *GameState {
	return &GameState{
		Player:  NewPlayer(),
		Zombies: make([]*Zombie, 0, 64),
	}
}

// LiveZombies counts zombies that are still alive. Corpses waiting out
// the death linger do not count toward wave completion.
func (gs *GameState) LiveZombies() int {
	n := 0
	for _, z := range gs.Zombies {
		if !z.IsDead {
			n++
		}
	}
	return n
}

// Ticks converts a duration in seconds to simulation ticks, never less
// than one tick for a positive duration.
func Ticks(seconds float64) int64 {
	t := int64(math.Round(seconds * TPS))
	if t < 1 && seconds > 0 {
		return 1
	}
	return t
}

// Distance calculates distance between two ground-plane points.
func Distance(x1, z1, x2, z2 float64) float64 {
	dx := x2 - x1
	dz := z2 - z1
	return math.Sqrt(dx*dx + dz*dz)
}

// NormalizeAngle keeps angle between 0 and 2*PI.
func NormalizeAngle(angle float64) float64 {
	for angle < 0 {
		angle += 2 * math.Pi
	}
	for angle >= 2*math.Pi {
		angle -= 2 * math.Pi
	}
	return angle
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
