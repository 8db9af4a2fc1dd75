package game

import (
	"math"
	"testing"
)

func TestWaveConfigProportionsSumToOne(t *testing.T) {
	for n := 1; n <= 50; n++ {
		cfg := WaveConfigFor(n)
		sum := cfg.WalkerPct + cfg.RunnerPct + cfg.TankPct
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("Wave %d: expected proportions to sum to 1, got %f", n, sum)
		}
	}
}

func TestWaveConfigSpawnRateCapped(t *testing.T) {
	for n := 1; n <= 100; n++ {
		cfg := WaveConfigFor(n)
		if cfg.SpawnRate > SpawnRateCap {
			t.Errorf("Wave %d: spawn rate %f exceeds cap %f", n, cfg.SpawnRate, SpawnRateCap)
		}
		if cfg.SpawnRate <= 0 {
			t.Errorf("Wave %d: expected positive spawn rate, got %f", n, cfg.SpawnRate)
		}
	}
}

func TestWaveConfigFor(t *testing.T) {
	tests := []struct {
		name          string
		wave          int
		expectedTotal int
		expectedRate  float64
		expectedTank  float64
	}{
		{
			name:          "wave 1 baseline",
			wave:          1,
			expectedTotal: 7,
			expectedRate:  1.2,
			expectedTank:  0,
		},
		{
			name:          "wave 2 still all walkers",
			wave:          2,
			expectedTotal: 9,
			expectedRate:  1.4,
			expectedTank:  0,
		},
		{
			name:          "wave 5 introduces tanks",
			wave:          5,
			expectedTotal: 15,
			expectedRate:  2.0,
			expectedTank:  0.10,
		},
		{
			name:          "wave 20 rate capped",
			wave:          20,
			expectedTotal: 45,
			expectedRate:  SpawnRateCap,
			expectedTank:  0.25,
		},
		{
			name:          "non-positive wave clamps to wave 1",
			wave:          0,
			expectedTotal: 7,
			expectedRate:  1.2,
			expectedTank:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := WaveConfigFor(tt.wave)
			if cfg.Total != tt.expectedTotal {
				t.Errorf("Expected total %d, got %d", tt.expectedTotal, cfg.Total)
			}
			if math.Abs(cfg.SpawnRate-tt.expectedRate) > 1e-9 {
				t.Errorf("Expected spawn rate %f, got %f", tt.expectedRate, cfg.SpawnRate)
			}
			if math.Abs(cfg.TankPct-tt.expectedTank) > 1e-9 {
				t.Errorf("Expected tank pct %f, got %f", tt.expectedTank, cfg.TankPct)
			}
		})
	}
}

func TestWaveTotalsMonotonic(t *testing.T) {
	prev := 0
	for n := 1; n <= 30; n++ {
		cfg := WaveConfigFor(n)
		if cfg.Total <= prev {
			t.Errorf("Wave %d: total %d did not grow past %d", n, cfg.Total, prev)
		}
		prev = cfg.Total
	}
}

func TestSpawnIntervalTicks(t *testing.T) {
	// Wave 1 spawns at 1.2/s, so the gap should be about 833ms.
	cfg := WaveConfigFor(1)
	interval := cfg.SpawnIntervalTicks()
	want := int64(math.Round(1 / 1.2 * TPS))
	if interval != want {
		t.Errorf("Expected interval %d ticks, got %d", want, interval)
	}

	// A zeroed config must not produce a zero interval.
	if (WaveConfig{}).SpawnIntervalTicks() < 1 {
		t.Error("Expected at least a one tick interval for zero spawn rate")
	}
}
