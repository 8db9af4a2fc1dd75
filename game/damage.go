package game

// SwarmMultiplier scales incoming melee damage by how crowded the
// defender is: 1 + 0.1 per nearby zombie, never above 3.0. The caller
// counts zombies within SwarmRadius at the moment of the attack.
func SwarmMultiplier(nearbyCount int) float64 {
	if nearbyCount < 0 {
		nearbyCount = 0
	}
	m := 1 + SwarmDamageStep*float64(nearbyCount)
	if m > SwarmMultiplierCap {
		m = SwarmMultiplierCap
	}
	return m
}

// ApplyPlayerDamage routes raw damage through the defender damage model:
// the whole hit is suppressed inside the invincibility window, the
// applied amount is capped at DamageCap, and health floors at zero.
// Returns the amount actually applied and whether the hit landed at all.
// This ensures consistent damage handling for zombie melee and anything
// else that hurts the defender.
func ApplyPlayerDamage(p *Player, raw float64, tick int64) (float64, bool) {
	if p == nil || p.IsDead || raw <= 0 {
		return 0, false
	}

	if tick-p.LastDamageTick < Ticks(InvincibilitySec) {
		return 0, false
	}

	amount := raw
	if amount > DamageCap {
		amount = DamageCap
	}

	p.Health -= amount
	if p.Health <= 0 {
		p.Health = 0
		p.IsDead = true
	}
	p.LastDamageTick = tick
	return amount, true
}

// UseStamina spends amount if available and reports success. Actions
// attempted without enough stamina are no-op rejections, never errors.
func (p *Player) UseStamina(amount float64) bool {
	if p.IsDead || amount < 0 || p.Stamina < amount {
		return false
	}
	p.Stamina -= amount
	return true
}

// RegenStamina restores one tick's worth of stamina up to the cap.
func (p *Player) RegenStamina() {
	if p.IsDead {
		return
	}
	p.Stamina += StaminaRegenPerSec / TPS
	if p.Stamina > p.MaxStamina {
		p.Stamina = p.MaxStamina
	}
}
