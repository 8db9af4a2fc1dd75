package game

// NewZombie creates a zombie of the given kind at a spawn-ring position.
// formationSeed is a stable per-zombie angle in [0, 2π) assigned by the
// scheduler's RNG at spawn time.
func NewZombie(id int, kind ZombieKind, x, z, formationSeed float64) *Zombie {
	stats := ZombieData[kind]
	cooldown := Ticks(stats.AttackCooldown)
	return &Zombie{
		ID:            id,
		Kind:          kind,
		Health:        stats.MaxHealth,
		MaxHealth:     stats.MaxHealth,
		X:             x,
		Z:             z,
		FormationSeed: formationSeed,
		// Allow an attack on the first tick in range.
		LastAttackTick: -cooldown - 1,
	}
}

// Stats returns the fixed parameterization for this zombie's kind.
func (z *Zombie) Stats() ZombieStats {
	return ZombieData[z.Kind]
}

// TakeDamage subtracts amount from health, clamping at zero. It returns
// true exactly once, on the call that drives health to zero; calls on a
// dead zombie are no-ops and return false.
func (z *Zombie) TakeDamage(amount float64) bool {
	if z.IsDead || amount <= 0 {
		return false
	}

	z.Health -= amount
	if z.Health > 0 {
		return false
	}

	z.Health = 0
	z.IsDead = true
	z.IsAttacking = false
	return true
}

// CanAttack reports whether the attack cooldown has elapsed at the given
// tick. Dead zombies never attack.
func (z *Zombie) CanAttack(tick int64) bool {
	if z.IsDead {
		return false
	}
	return tick-z.LastAttackTick > Ticks(z.Stats().AttackCooldown)
}
