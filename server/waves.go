package server

import (
	"log"
	"math"

	"github.com/Subham-Satapathy/zoombie-shooter/game"
)

// startNewWave advances to the next wave and begins its spawn cadence.
// Any cadence from a previous call is cancelled first, so a double start
// can never run two spawn loops for one wave.
// Callers must hold gameState.Mu.
func (s *Server) startNewWave() {
	gs := s.gameState

	gs.WaveNumber++
	gs.Wave = game.WaveConfigFor(gs.WaveNumber)
	gs.WaveActive = true
	gs.Spawned = 0

	// Cancel any pending gates and arm the cadence for this tick.
	s.nextWaveTick = 0
	s.nextSpawnTick = gs.Tick

	log.Printf("Wave %d started: %d zombies at %.1f/s (walker %.0f%% runner %.0f%% tank %.0f%%)",
		gs.WaveNumber, gs.Wave.Total, gs.Wave.SpawnRate,
		gs.Wave.WalkerPct*100, gs.Wave.RunnerPct*100, gs.Wave.TankPct*100)

	s.broadcastEvent(MsgTypeWaveStart, WaveEventData{
		Wave:  gs.WaveNumber,
		Total: gs.Wave.Total,
	})
}

// advanceWave runs the spawn cadence and any scheduled wave start for the
// current tick. Spawning happens before zombie updates within a tick.
func (s *Server) advanceWave() {
	gs := s.gameState

	// Inter-wave delay elapsed: start the next wave unless the defender
	// died while waiting.
	if s.nextWaveTick > 0 && gs.Tick >= s.nextWaveTick {
		s.nextWaveTick = 0
		if !gs.Player.IsDead {
			s.startNewWave()
		}
	}

	if !gs.WaveActive || gs.Spawned >= gs.Wave.Total {
		return
	}

	if gs.Tick < s.nextSpawnTick {
		return
	}

	s.spawnZombie()
	s.nextSpawnTick = gs.Tick + gs.Wave.SpawnIntervalTicks()
}

// spawnZombie instantiates one zombie of a weighted-random kind on the
// spawn ring. Callers must hold gameState.Mu.
func (s *Server) spawnZombie() {
	gs := s.gameState

	kind := s.pickKind(gs.Wave)
	x, z := s.spawnPosition()

	s.nextZombieID++
	zombie := game.NewZombie(s.nextZombieID, kind, x, z, s.rng.Float64()*2*math.Pi)
	gs.Zombies = append(gs.Zombies, zombie)
	gs.Spawned++
}

// pickKind selects a zombie kind by weighted random draw over the wave's
// proportions.
func (s *Server) pickKind(cfg game.WaveConfig) game.ZombieKind {
	r := s.rng.Float64()
	switch {
	case r < cfg.WalkerPct:
		return game.KindWalker
	case r < cfg.WalkerPct+cfg.RunnerPct:
		return game.KindRunner
	default:
		return game.KindTank
	}
}

// spawnPosition picks a uniform point on a ring around the defender. The
// radius band is independent of wave number: never on top of the defender,
// never outside the explorable area.
func (s *Server) spawnPosition() (float64, float64) {
	p := s.gameState.Player

	angle := s.rng.Float64() * 2 * math.Pi
	radius := game.SpawnRingMin + s.rng.Float64()*(game.SpawnRingMax-game.SpawnRingMin)

	x := p.X + radius*math.Cos(angle)
	z := p.Z + radius*math.Sin(angle)
	return x, z
}

// checkWaveComplete fires the wave-complete transition once the wave has
// fully spawned and the last zombie is down, and schedules the next wave
// after a fixed delay. Runs after all zombie updates within the tick.
func (s *Server) checkWaveComplete() {
	gs := s.gameState

	if !gs.WaveActive {
		return
	}
	if gs.Spawned < gs.Wave.Total || gs.LiveZombies() > 0 {
		return
	}

	gs.WaveActive = false
	s.nextSpawnTick = 0
	log.Printf("Wave %d complete", gs.WaveNumber)

	s.broadcastEvent(MsgTypeWaveComplete, WaveEventData{Wave: gs.WaveNumber})

	if !gs.Player.IsDead {
		s.nextWaveTick = gs.Tick + game.Ticks(game.InterWaveDelaySec)
	}
}

// resetGame returns the scheduler and defender to the pre-first-wave
// state: no pending cadence, no zombies, zeroed counters. Safe to call
// repeatedly. Callers must hold gameState.Mu.
func (s *Server) resetGame() {
	gs := s.gameState

	s.nextSpawnTick = 0
	s.nextWaveTick = 0

	for i := range gs.Zombies {
		gs.Zombies[i] = nil
	}
	gs.Zombies = gs.Zombies[:0]

	gs.WaveNumber = 0
	gs.WaveActive = false
	gs.Spawned = 0
	gs.Wave = game.WaveConfig{}
	gs.GameOver = false
	gs.Player = game.NewPlayer()
}
