package progression

import (
	"context"
	"testing"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/economytest"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/rewards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each test lets another transaction commit between the engine's read and
// its guarded write, so only the write's own condition can catch it.

func TestClaimQuestReward_CompetingClaimWins(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)
	_, err := f.ledger.UpdateQuestProgress(ctx, alice, economy.QuestDraw5, 5)
	require.NoError(t, err)

	f.store.Race(economytest.WriteClaim, func(ctx context.Context, tx economy.Tx) error {
		_, err := tx.Quests().Claim(ctx, alice, "daily_draw_5", f.clock.Now())
		return err
	})

	_, err = f.ledger.ClaimQuestReward(ctx, alice, "daily_draw_5")
	require.ErrorIs(t, err, economy.ErrAlreadyClaimed)

	p, _ := f.store.Player(alice)
	assert.Equal(t, int64(0), p.Bloodcoins)
	q, _ := f.store.Quest(alice, "daily_draw_5")
	assert.True(t, q.Claimed)
}

func TestDraw_CompetingDrawStartsCooldown(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)
	ash := f.card("Ash", models.RarityCommon)

	f.store.Race(economytest.WriteStampDraw, func(ctx context.Context, tx economy.Tx) error {
		now := f.clock.Now()
		_, err := tx.Players().StampDraw(ctx, alice, now, now.Add(-f.rules.DrawCooldown))
		return err
	})

	_, err := f.ledger.Draw(ctx, alice)
	require.ErrorIs(t, err, economy.ErrCooldownActive)

	assert.Equal(t, int64(0), f.store.Amount(alice, ash.ID))
	p, _ := f.store.Player(alice)
	assert.Equal(t, int64(0), p.Bloodcoins)
	require.NotNil(t, p.LastDraw)
}

func TestClaimDaily_CompetingClaimWins(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)

	f.store.Race(economytest.WriteStampDaily, func(ctx context.Context, tx economy.Tx) error {
		now := f.clock.Now()
		_, err := tx.Players().StampDaily(ctx, alice, now, economy.DayStart(now))
		return err
	})

	_, err := f.ledger.ClaimDaily(ctx, alice)
	require.ErrorIs(t, err, economy.ErrCooldownActive)

	p, _ := f.store.Player(alice)
	assert.Equal(t, int64(0), p.Bloodcoins)
}

func TestButcher_CompetingSaleTakesCopies(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)
	ash := f.card("Ash", models.RarityCommon)
	f.store.Give(alice, ash.ID, 3)

	f.store.Race(economytest.WriteRemove, func(ctx context.Context, tx economy.Tx) error {
		_, err := tx.Inventory().Remove(ctx, alice, ash.ID, 3)
		return err
	})

	_, err := f.ledger.Butcher(ctx, alice, "Ash", models.RarityCommon, 2)
	require.ErrorIs(t, err, economy.ErrInsufficientCards)

	p, _ := f.store.Player(alice)
	assert.Equal(t, int64(0), p.Bloodcoins)
	assert.Equal(t, int64(0), f.store.Amount(alice, ash.ID))
}
