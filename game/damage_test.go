package game

import (
	"math"
	"testing"
)

func TestApplyPlayerDamage(t *testing.T) {
	tests := []struct {
		name            string
		initialHealth   float64
		lastDamageTick  int64
		tick            int64
		raw             float64
		expectedHealth  float64
		expectedApplied bool
		expectedAmount  float64
	}{
		{
			name:            "plain hit",
			initialHealth:   100,
			lastDamageTick:  -Ticks(InvincibilitySec),
			tick:            0,
			raw:             10,
			expectedHealth:  90,
			expectedApplied: true,
			expectedAmount:  10,
		},
		{
			name:            "hit above cap applies exactly the cap",
			initialHealth:   100,
			lastDamageTick:  -Ticks(InvincibilitySec),
			tick:            0,
			raw:             85,
			expectedHealth:  70,
			expectedApplied: true,
			expectedAmount:  DamageCap,
		},
		{
			name:            "hit inside invincibility window is suppressed",
			initialHealth:   90,
			lastDamageTick:  0,
			tick:            Ticks(0.3),
			raw:             50,
			expectedHealth:  90,
			expectedApplied: false,
			expectedAmount:  0,
		},
		{
			name:            "hit after the window applies",
			initialHealth:   90,
			lastDamageTick:  0,
			tick:            Ticks(1.0),
			raw:             50,
			expectedHealth:  60,
			expectedApplied: true,
			expectedAmount:  DamageCap,
		},
		{
			name:            "zero damage",
			initialHealth:   100,
			lastDamageTick:  -Ticks(InvincibilitySec),
			tick:            0,
			raw:             0,
			expectedHealth:  100,
			expectedApplied: false,
			expectedAmount:  0,
		},
		{
			name:            "negative damage",
			initialHealth:   100,
			lastDamageTick:  -Ticks(InvincibilitySec),
			tick:            0,
			raw:             -10,
			expectedHealth:  100,
			expectedApplied: false,
			expectedAmount:  0,
		},
		{
			name:            "health floors at zero",
			initialHealth:   20,
			lastDamageTick:  -Ticks(InvincibilitySec),
			tick:            0,
			raw:             30,
			expectedHealth:  0,
			expectedApplied: true,
			expectedAmount:  30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer()
			p.Health = tt.initialHealth
			p.LastDamageTick = tt.lastDamageTick

			amount, applied := ApplyPlayerDamage(p, tt.raw, tt.tick)

			if applied != tt.expectedApplied {
				t.Errorf("Expected applied %v, got %v", tt.expectedApplied, applied)
			}
			if math.Abs(amount-tt.expectedAmount) > 1e-9 {
				t.Errorf("Expected amount %f, got %f", tt.expectedAmount, amount)
			}
			if math.Abs(p.Health-tt.expectedHealth) > 1e-9 {
				t.Errorf("Expected health %f, got %f", tt.expectedHealth, p.Health)
			}
		})
	}
}

// Three hits spaced around the invincibility window: the middle one must
// be fully suppressed and must not restart the window.
func TestInvincibilityWindowScenario(t *testing.T) {
	p := NewPlayer()

	if _, applied := ApplyPlayerDamage(p, 10, 0); !applied {
		t.Fatal("Expected the first hit to apply")
	}
	if p.Health != 90 {
		t.Errorf("Expected health 90, got %f", p.Health)
	}

	if _, applied := ApplyPlayerDamage(p, 50, Ticks(0.3)); applied {
		t.Error("Expected the hit at 0.3s to be suppressed")
	}
	if p.Health != 90 {
		t.Errorf("Expected health to stay 90, got %f", p.Health)
	}

	if _, applied := ApplyPlayerDamage(p, 50, Ticks(1.0)); !applied {
		t.Error("Expected the hit at 1.0s to apply")
	}
	if p.Health != 60 {
		t.Errorf("Expected health 60, got %f", p.Health)
	}
}

func TestApplyPlayerDamageKillsDefender(t *testing.T) {
	p := NewPlayer()
	p.Health = 25

	ApplyPlayerDamage(p, 30, 0)
	if !p.IsDead {
		t.Error("Expected defender to be dead")
	}
	if p.Health != 0 {
		t.Errorf("Expected health 0, got %f", p.Health)
	}

	// Dead defenders take no further damage.
	if _, applied := ApplyPlayerDamage(p, 30, Ticks(10)); applied {
		t.Error("Expected damage on a dead defender to be a no-op")
	}
}

func TestSwarmMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		nearby   int
		expected float64
	}{
		{name: "no zombies nearby", nearby: 0, expected: 1.0},
		{name: "three nearby", nearby: 3, expected: 1.3},
		{name: "twenty nearby hits the cap", nearby: 20, expected: 3.0},
		{name: "absurd crowd still capped", nearby: 100000, expected: 3.0},
		{name: "negative count clamps to one", nearby: -5, expected: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SwarmMultiplier(tt.nearby)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected multiplier %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestUseStamina(t *testing.T) {
	p := NewPlayer()

	if !p.UseStamina(MeleeStaminaCost) {
		t.Fatal("Expected stamina spend to succeed at full stamina")
	}
	if p.Stamina != PlayerMaxStamina-MeleeStaminaCost {
		t.Errorf("Expected stamina %f, got %f", PlayerMaxStamina-MeleeStaminaCost, p.Stamina)
	}

	p.Stamina = MeleeStaminaCost - 1
	if p.UseStamina(MeleeStaminaCost) {
		t.Error("Expected stamina spend to fail when short")
	}
	if p.Stamina != MeleeStaminaCost-1 {
		t.Errorf("Expected stamina unchanged on rejection, got %f", p.Stamina)
	}
}

func TestRegenStamina(t *testing.T) {
	p := NewPlayer()
	p.Stamina = 0

	for i := int64(0); i < Ticks(1.0); i++ {
		p.RegenStamina()
	}
	if math.Abs(p.Stamina-StaminaRegenPerSec) > 1e-6 {
		t.Errorf("Expected %f stamina after one second, got %f", StaminaRegenPerSec, p.Stamina)
	}

	p.Stamina = p.MaxStamina
	p.RegenStamina()
	if p.Stamina > p.MaxStamina {
		t.Errorf("Expected stamina capped at %f, got %f", p.MaxStamina, p.Stamina)
	}
}
