package progression

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/rewards"
)

func TestImportContent(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	existing := f.card("Vesper", models.RarityRare)

	res, err := f.ledger.ImportContent(ctx,
		[]*models.Card{
			{Name: "Vesper Reborn", BaseName: "Vesper", Rarity: "Rare", DropWeight: 2},
			{Name: "Ember", Rarity: "epic"},
		},
		[]*models.QuestTemplate{
			{QuestID: "daily_draw_5", Kind: "DAILY", Description: economy.QuestDraw5, Target: 3, RewardCoins: 100},
		})
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{Cards: 2, Quests: 1}, res)

	err = f.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		c, err := tx.Cards().FindVariant(ctx, "Vesper", models.RarityRare)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, c.ID)
		assert.Equal(t, "Vesper Reborn", c.Name)
		assert.Equal(t, 2.0, c.DropWeight)

		ember, err := tx.Cards().FindVariant(ctx, "Ember", models.RarityEpic)
		require.NoError(t, err)
		assert.Equal(t, 1.0, ember.DropWeight)

		q, err := tx.Quests().GetTemplate(ctx, "daily_draw_5")
		require.NoError(t, err)
		assert.Equal(t, int64(3), q.Target)
		assert.Equal(t, models.QuestKindDaily, q.Kind)
		return nil
	})
	require.NoError(t, err)
}

func TestImportContent_RejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name   string
		cards  []*models.Card
		quests []*models.QuestTemplate
	}{
		{name: "unknown rarity", cards: []*models.Card{{Name: "X", Rarity: "mythic"}}},
		{name: "missing name", cards: []*models.Card{{Rarity: models.RarityCommon}}},
		{name: "unknown kind", quests: []*models.QuestTemplate{{QuestID: "q", Kind: "monthly", Description: "d", Target: 1}}},
		{name: "zero target", quests: []*models.QuestTemplate{{QuestID: "q", Kind: "daily", Description: "d"}}},
		{name: "bad reward rarity", quests: []*models.QuestTemplate{{QuestID: "q", Kind: "daily", Description: "d", Target: 1, RewardRarity: "shiny"}}},
		{name: "duplicate id", quests: []*models.QuestTemplate{
			{QuestID: "q", Kind: "daily", Description: "d", Target: 1},
			{QuestID: "q", Kind: "weekly", Description: "d", Target: 1},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, rewards.Fixed(0))
			commits := f.store.Commits

			_, err := f.ledger.ImportContent(context.Background(), tt.cards, tt.quests)
			assert.ErrorIs(t, err, economy.ErrInvalidArgument)
			assert.Equal(t, commits, f.store.Commits)
		})
	}
}
