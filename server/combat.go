package server

import (
	"math"

	"github.com/Subham-Satapathy/zoombie-shooter/game"
)

// HitResult is one resolved pellet hit.
type HitResult struct {
	Zombie *game.Zombie
	Killed bool
}

// ResolveShot converts a weapon discharge into damage against the live
// horde. Every pellet gets its own accuracy perturbation and is resolved
// independently; a zombie killed by one pellet leaves the candidate set
// for the pellets after it. Callers must hold gameState.Mu.
func (s *Server) ResolveShot(fire FireData) []HitResult {
	pellets := fire.Pellets
	if pellets < 1 {
		pellets = 1
	}
	if pellets > game.MaxPelletCount {
		pellets = game.MaxPelletCount
	}

	maxRange := game.Clamp(fire.Range, 0, game.MaxWeaponRange)
	accuracy := game.Clamp(fire.Accuracy, 0, 1)
	halfCone := game.MaxSpreadAngle * (1 - accuracy)

	var hits []HitResult
	for i := 0; i < pellets; i++ {
		dir := fire.Dir + (s.rng.Float64()*2-1)*halfCone

		target := s.nearestZombieOnRay(fire.OriginX, fire.OriginZ, dir, maxRange)
		if target == nil {
			// Thin or fast-moving hulls can slip between rays; fall back
			// to the closest zombie near the ray line.
			target = s.nearestZombieNearRay(fire.OriginX, fire.OriginZ, dir, maxRange)
		}
		if target == nil {
			continue
		}

		killed := target.TakeDamage(fire.Damage)
		if killed {
			s.killZombie(target)
		}
		hits = append(hits, HitResult{Zombie: target, Killed: killed})
	}

	return hits
}

// nearestZombieOnRay finds the closest live zombie whose hull the ray
// intersects, using a line-to-circle test against each candidate.
func (s *Server) nearestZombieOnRay(ox, oz, dir, maxRange float64) *game.Zombie {
	// (C, D) is a far point on the ray, relative to the origin. Working
	// against a long segment keeps the projection well conditioned.
	C := math.Cos(dir) * game.MaxWeaponRange * 10
	D := math.Sin(dir) * game.MaxWeaponRange * 10

	var target *game.Zombie
	bestSq := maxRange*maxRange + 1

	for _, z := range s.gameState.Zombies {
		if z.IsDead {
			continue
		}

		// (A, B) is the candidate position relative to the origin.
		A := z.X - ox
		B := z.Z - oz

		if math.Abs(A) >= maxRange || math.Abs(B) >= maxRange {
			continue
		}
		distSq := A*A + B*B
		if distSq >= bestSq {
			continue
		}

		// Closest point on the ray to the candidate.
		t := (A*C + B*D) / (C*C + D*D)
		if t < 0 {
			t = 0 // behind the muzzle
		}
		dx := C*t - A
		dz := D*t - B

		radius := z.Stats().HitRadius
		if dx*dx+dz*dz <= radius*radius {
			target = z
			bestSq = distSq
		}
	}

	return target
}

// nearestZombieNearRay is the distance-based fallback: project each live
// zombie onto the ray and accept the closest one whose perpendicular
// distance is within tolerance and whose projection lies inside the range.
func (s *Server) nearestZombieNearRay(ox, oz, dir, maxRange float64) *game.Zombie {
	dirX := math.Cos(dir)
	dirZ := math.Sin(dir)

	var target *game.Zombie
	best := maxRange + 1

	for _, z := range s.gameState.Zombies {
		if z.IsDead {
			continue
		}

		A := z.X - ox
		B := z.Z - oz

		along := A*dirX + B*dirZ
		if along < 0 || along > maxRange {
			continue
		}

		perpX := A - along*dirX
		perpZ := B - along*dirZ
		if math.Sqrt(perpX*perpX+perpZ*perpZ) > game.RayFallbackDist {
			continue
		}

		if along < best {
			best = along
			target = z
		}
	}

	return target
}
