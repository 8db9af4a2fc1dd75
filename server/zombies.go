package server

import (
	"math"

	"github.com/Subham-Satapathy/zoombie-shooter/game"
)

// updateZombies runs one AI tick for every live zombie. Spawning for the
// tick has already happened; congestion and repulsion read the sibling
// registry indexed at the start of the tick, so no zombie depends on
// update order for correctness.
func (s *Server) updateZombies() {
	gs := s.gameState
	if gs.Player == nil {
		// No defender this tick: skip AI rather than failing the update.
		return
	}

	for _, z := range gs.Zombies {
		if z.IsDead {
			continue
		}
		s.updateZombie(z)
	}
}

// updateZombie advances one zombie: facing, pursuit or attack. Attacking
// never blocks movement; a zombie that swings this tick can be pushed to
// a new position next tick.
func (s *Server) updateZombie(z *game.Zombie) {
	gs := s.gameState
	p := gs.Player
	stats := z.Stats()

	dist := game.Distance(z.X, z.Z, p.X, p.Z)

	// Face the defender every tick regardless of movement mode.
	z.Facing = math.Atan2(p.Z-z.Z, p.X-z.X)

	// The attack display window is a fixed slice of the cooldown.
	if z.IsAttacking && gs.Tick >= z.AttackShowTick {
		z.IsAttacking = false
	}

	if dist > stats.DetectionRange {
		// Out of detection range. With the arena smaller than any
		// detection range this is effectively unreachable, but the gate
		// keeps the state machine honest.
		return
	}

	if dist <= stats.AttackRange {
		s.zombieAttack(z, dist)
		return
	}

	s.moveZombie(z, dist)
}

// moveZombie advances the pursuit step with two adjustments tried in
// priority order: congestion/formation mode, then pairwise repulsion,
// then direct approach that never overshoots attack range.
func (s *Server) moveZombie(z *game.Zombie, dist float64) {
	p := s.gameState.Player
	stats := z.Stats()
	step := stats.Speed / game.TPS

	// Prospective position under direct pursuit.
	dirX := (p.X - z.X) / dist
	dirZ := (p.Z - z.Z) / dist
	nextX := z.X + dirX*step
	nextZ := z.Z + dirZ*step

	// 1. Congestion/formation mode: near the defender with a crowd ahead,
	// orbit out to a surround point instead of shoving into the pile.
	if dist < game.CongestionNearDist && s.crowdedAt(z, nextX, nextZ) {
		radius := math.Max(game.FormationMinRadius, game.FormationRadiusFactor*dist)
		targetX := p.X + radius*math.Cos(z.FormationSeed)
		targetZ := p.Z + radius*math.Sin(z.FormationSeed)

		tDist := game.Distance(z.X, z.Z, targetX, targetZ)
		if tDist > 1e-6 {
			travel := math.Min(step, tDist)
			z.X += (targetX - z.X) / tDist * travel
			z.Z += (targetZ - z.Z) / tDist * travel
		}
		return
	}

	// 2. Pairwise repulsion: blend away from the nearest packed neighbor
	// with a little jitter to break symmetric deadlocks, at reduced speed.
	minSep := game.BaseSeparation * (1 + game.SeparationDistScale*dist)
	if neighbor, nDist := s.nearestZombie(z, nextX, nextZ); neighbor != nil && nDist < minSep {
		awayX := nextX - neighbor.X
		awayZ := nextZ - neighbor.Z
		if nDist > 1e-6 {
			awayX /= nDist
			awayZ /= nDist
		}

		blendX := dirX + awayX*game.RepulsionWeight + (s.rng.Float64()*2-1)*game.RepulsionJitter
		blendZ := dirZ + awayZ*game.RepulsionWeight + (s.rng.Float64()*2-1)*game.RepulsionJitter
		norm := math.Sqrt(blendX*blendX + blendZ*blendZ)
		if norm > 1e-6 {
			slow := step * game.RepulsionSpeedScale
			z.X += blendX / norm * slow
			z.Z += blendZ / norm * slow
		}
		return
	}

	// 3. Direct approach, stopping short of attack range.
	gap := dist - stats.AttackRange
	if gap < step {
		step = gap * game.ApproachGapScale
	}
	z.X += dirX * step
	z.Z += dirZ * step
}

// crowdedAt reports whether more than the congestion limit of other live
// zombies sit within the avoidance radius of a prospective position.
func (s *Server) crowdedAt(z *game.Zombie, x, zz float64) bool {
	gs := s.gameState
	count := 0
	for _, idx := range s.grid.GetNearby(x, zz) {
		other := gs.Zombies[idx]
		if other == z || other.IsDead {
			continue
		}
		if game.Distance(x, zz, other.X, other.Z) < game.AvoidanceRadius {
			count++
			if count > game.CongestionNeighborLimit {
				return true
			}
		}
	}
	return false
}

// nearestZombie finds the closest other live zombie to a position.
func (s *Server) nearestZombie(z *game.Zombie, x, zz float64) (*game.Zombie, float64) {
	gs := s.gameState
	var nearest *game.Zombie
	best := math.MaxFloat64

	for _, idx := range s.grid.GetNearby(x, zz) {
		other := gs.Zombies[idx]
		if other == z || other.IsDead {
			continue
		}
		if d := game.Distance(x, zz, other.X, other.Z); d < best {
			best = d
			nearest = other
		}
	}
	return nearest, best
}

// zombieAttack swings at the defender when the cooldown gate is open. The
// base damage is scaled by the swarm multiplier before it enters the
// defender damage model.
func (s *Server) zombieAttack(z *game.Zombie, dist float64) {
	gs := s.gameState
	p := gs.Player
	stats := z.Stats()

	if p.IsDead || !z.CanAttack(gs.Tick) {
		return
	}

	z.LastAttackTick = gs.Tick
	z.IsAttacking = true
	z.AttackShowTick = gs.Tick + game.Ticks(stats.AttackCooldown/2)

	nearby := s.zombiesWithinRadius(p.X, p.Z, game.SwarmRadius)
	raw := stats.Damage * game.SwarmMultiplier(len(nearby))

	amount, applied := game.ApplyPlayerDamage(p, raw, gs.Tick)
	if !applied {
		return
	}

	s.broadcastEvent(MsgTypePlayerDamaged, PlayerDamagedData{
		Amount:         amount,
		HealthFraction: p.Health / p.MaxHealth,
	})

	if p.IsDead {
		s.handleDefenderDeath()
	}
}

// handleDefenderDeath ends the run: no further waves are scheduled and
// the game-over event carries the final tally.
func (s *Server) handleDefenderDeath() {
	gs := s.gameState

	gs.GameOver = true
	s.nextWaveTick = 0
	s.nextSpawnTick = 0
	gs.WaveActive = false

	s.broadcastEvent(MsgTypeGameOver, GameOverData{
		Wave:  gs.WaveNumber,
		Score: gs.Player.Score,
		Kills: gs.Player.Kills,
	})
}

// zombiesWithinRadius returns live zombies within radius of a point. This
// is the query the melee trigger and the swarm multiplier share.
func (s *Server) zombiesWithinRadius(x, z, radius float64) []*game.Zombie {
	gs := s.gameState
	var result []*game.Zombie
	for _, idx := range s.grid.GetNearby(x, z) {
		zombie := gs.Zombies[idx]
		if zombie.IsDead {
			continue
		}
		if game.Distance(x, z, zombie.X, zombie.Z) <= radius {
			result = append(result, zombie)
		}
	}
	return result
}

// killZombie runs the once-only death side effects: score, the kill
// event, and the corpse linger before removal.
func (s *Server) killZombie(z *game.Zombie) {
	gs := s.gameState
	stats := z.Stats()

	z.RemoveAtTick = gs.Tick + game.Ticks(game.DeathLingerSec)

	gs.Player.Score += stats.ScoreValue
	gs.Player.Kills++

	s.broadcastEvent(MsgTypeZombieKilled, ZombieKilledData{
		ID:    z.ID,
		Kind:  z.Kind.String(),
		X:     z.X,
		Z:     z.Z,
		Score: stats.ScoreValue,
	})
}
