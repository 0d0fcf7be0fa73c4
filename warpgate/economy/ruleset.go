package economy

import (
	"time"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/stats"
)

// RarityWeight is one entry of a weight table. Weights are relative.
type RarityWeight struct {
	Rarity string  `toml:"rarity" yaml:"rarity"`
	Weight float64 `toml:"weight" yaml:"weight"`
}

type WeightTable []RarityWeight

// UpgradeRule converts Copies cards of From into one card of To for Cost.
type UpgradeRule struct {
	From   string
	To     string
	Cost   int64
	Copies int64
}

// Ruleset holds every economy constant used by the engine.
type Ruleset struct {
	DrawWeights  WeightTable
	DrawCooldown time.Duration
	DrawCoins    int64
	DrawXP       int64
	BuddyXP      int64

	DailyCoins int64

	MimicChance     float64
	MimicMinLevel   int64
	MimicName       string
	MimicStats      stats.Stats
	MimicWeights    WeightTable
	MimicCoins      int64
	MimicXP         int64
	PlaceholderName string

	XPStart          int64
	XPGrowth         float64
	CardLevelDivisor int64
	BuddyGrowth      stats.Stats

	TierDefaults stats.Defaults
	Upgrades     map[string]UpgradeRule
	SellValues   map[string]int64
	TeamSize     int
}

// DefaultRuleset returns the canonical economy.
func DefaultRuleset() Ruleset {
	return Ruleset{
		DrawWeights: WeightTable{
			{Rarity: models.RarityCommon, Weight: 65},
			{Rarity: models.RarityRare, Weight: 30},
			{Rarity: models.RarityEpic, Weight: 4},
			{Rarity: models.RarityLegendary, Weight: 0.5},
		},
		DrawCooldown: 600 * time.Second,
		DrawCoins:    10,
		DrawXP:       5,
		BuddyXP:      10,

		DailyCoins: 10000,

		MimicChance:   0.10,
		MimicMinLevel: 3,
		MimicName:     "Mimic",
		MimicStats:    stats.Stats{Health: 120, Attack: 12, Speed: 12},
		MimicWeights: WeightTable{
			{Rarity: models.RarityRare, Weight: 90},
			{Rarity: models.RarityEpic, Weight: 9.5},
			{Rarity: models.RarityLegendary, Weight: 0.5},
		},
		MimicCoins:      250,
		MimicXP:         25,
		PlaceholderName: "Wanderer",

		XPStart:          100,
		XPGrowth:         1.2,
		CardLevelDivisor: stats.DefaultLevelDivisor,
		BuddyGrowth:      stats.Stats{Health: 5, Attack: 2, Speed: 1},

		TierDefaults: stats.Defaults{
			models.RarityCommon:    {Health: 100, Attack: 10, Speed: 10},
			models.RarityRare:      {Health: 150, Attack: 20, Speed: 15},
			models.RarityEpic:      {Health: 220, Attack: 32, Speed: 20},
			models.RarityLegendary: {Health: 320, Attack: 48, Speed: 28},
		},
		Upgrades: map[string]UpgradeRule{
			models.RarityCommon: {From: models.RarityCommon, To: models.RarityRare, Cost: 1000, Copies: 5},
			models.RarityRare:   {From: models.RarityRare, To: models.RarityEpic, Cost: 5000, Copies: 5},
			models.RarityEpic:   {From: models.RarityEpic, To: models.RarityLegendary, Cost: 25000, Copies: 5},
		},
		SellValues: map[string]int64{
			models.RarityCommon:    50,
			models.RarityRare:      100,
			models.RarityEpic:      1000,
			models.RarityLegendary: 10000,
		},
		TeamSize: 5,
	}
}

// UpgradeRuleFor returns the rule for a source tier.
func (r Ruleset) UpgradeRuleFor(rarity string) (UpgradeRule, bool) {
	rule, ok := r.Upgrades[rarity]
	return rule, ok
}

// Placeholder is the stand-in combatant's stat block when no buddy is set.
func (r Ruleset) Placeholder() stats.Stats {
	return r.TierDefaults.For(models.RarityCommon)
}
