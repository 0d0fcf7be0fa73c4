package progression

import (
	"context"
	"testing"
	"time"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/economytest"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/rewards"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/stats"
)

const alice = "100000000000000001"

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	store  *economytest.Store
	clock  *testClock
	ledger *Ledger
	rules  economy.Ruleset
}

func newFixture(t *testing.T, rng rewards.RandomSource) *fixture {
	t.Helper()
	store := economytest.NewStore()
	for _, q := range economy.DefaultQuests() {
		store.AddQuestTemplate(q)
	}
	clock := &testClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	rules := economy.DefaultRuleset()
	return &fixture{
		store:  store,
		clock:  clock,
		rules:  rules,
		ledger: NewLedger(store, rules, rewards.NewRoller(rng), clock),
	}
}

func (f *fixture) register(t *testing.T, userID string) {
	t.Helper()
	if _, err := f.ledger.Register(context.Background(), userID, "user-"+userID, ""); err != nil {
		t.Fatalf("register %s: %v", userID, err)
	}
}

func (f *fixture) card(name, rarity string) *models.Card {
	return f.store.AddCard(models.Card{Name: name, BaseName: name, Rarity: rarity, DropWeight: 1})
}

func setLevel(userID string, level int64) func(context.Context, economy.Tx) error {
	return func(ctx context.Context, tx economy.Tx) error {
		return tx.Players().SetProgress(ctx, userID, level, 0, 172)
	}
}

func addExp(userID string, cardID, exp int64) func(context.Context, economy.Tx) error {
	return func(ctx context.Context, tx economy.Tx) error {
		return tx.Inventory().AddExp(ctx, userID, cardID, exp)
	}
}

func setAttack(userID string, cardID, attack int64) func(context.Context, economy.Tx) error {
	return func(ctx context.Context, tx economy.Tx) error {
		return economytest.SetOwnedStats(tx, userID, cardID, stats.Overrides{Attack: stats.Int64(attack)})
	}
}
