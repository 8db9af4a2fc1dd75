package game

// kindMixTier introduces tougher kinds as waves progress. Tiers are keyed
// by the lowest wave number they apply to; proportions in each tier sum
// to 1.
type kindMixTier struct {
	MinWave   int
	WalkerPct float64
	RunnerPct float64
	TankPct   float64
}

// kindMixTiers must stay sorted by MinWave ascending.
var kindMixTiers = []kindMixTier{
	{MinWave: 1, WalkerPct: 1.00, RunnerPct: 0.00, TankPct: 0.00},
	{MinWave: 3, WalkerPct: 0.80, RunnerPct: 0.20, TankPct: 0.00},
	{MinWave: 5, WalkerPct: 0.65, RunnerPct: 0.25, TankPct: 0.10},
	{MinWave: 8, WalkerPct: 0.50, RunnerPct: 0.30, TankPct: 0.20},
	{MinWave: 12, WalkerPct: 0.40, RunnerPct: 0.35, TankPct: 0.25},
}

// WaveConfigFor computes the composition of wave n. The zombie count
// grows linearly, the spawn rate grows linearly until it hits
// SpawnRateCap, and the kind mix steps through fixed tiers at wave
// thresholds.
func WaveConfigFor(n int) WaveConfig {
	if n < 1 {
		n = 1
	}

	rate := BaseSpawnRate + SpawnRateGrowth*float64(n)
	if rate > SpawnRateCap {
		rate = SpawnRateCap
	}

	cfg := WaveConfig{
		Number:    n,
		Total:     BaseWaveZombies + WaveZombieGrowth*n,
		SpawnRate: rate,
	}

	for _, tier := range kindMixTiers {
		if n >= tier.MinWave {
			cfg.WalkerPct = tier.WalkerPct
			cfg.RunnerPct = tier.RunnerPct
			cfg.TankPct = tier.TankPct
		}
	}

	return cfg
}

// SpawnIntervalTicks converts the capped spawn rate into the tick gap
// between consecutive spawns.
func (c WaveConfig) SpawnIntervalTicks() int64 {
	if c.SpawnRate <= 0 {
		return Ticks(1)
	}
	return Ticks(1 / c.SpawnRate)
}
