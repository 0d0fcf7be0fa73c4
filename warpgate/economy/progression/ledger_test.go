package progression

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/rewards"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/stats"
)

func TestRegister(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()

	p, err := f.ledger.Register(ctx, alice, "alice", "ashen")
	require.NoError(t, err)
	assert.Equal(t, models.FactionAshen, p.Faction)
	assert.Equal(t, int64(1), p.Level)
	assert.Equal(t, int64(100), p.XPNext)

	_, err = f.ledger.Register(ctx, alice, "alice", "")
	assert.ErrorIs(t, err, economy.ErrAlreadyRegistered)

	_, err = f.ledger.Register(ctx, "2", "bob", "purple")
	assert.ErrorIs(t, err, economy.ErrInvalidArgument)

	q, ok := f.store.Quest(alice, "daily_draw_5")
	require.True(t, ok)
	assert.Equal(t, int64(0), q.Progress)
}

func TestUnregisteredAndBanned(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.card("Ash", models.RarityCommon)

	_, err := f.ledger.Draw(ctx, alice)
	assert.ErrorIs(t, err, economy.ErrNotRegistered)
	_, err = f.ledger.ClaimDaily(ctx, alice)
	assert.ErrorIs(t, err, economy.ErrNotRegistered)

	f.register(t, alice)
	require.NoError(t, f.ledger.Ban(ctx, alice, "botting"))

	_, err = f.ledger.Draw(ctx, alice)
	require.ErrorIs(t, err, economy.ErrBanned)
	e, ok := economy.AsError(err)
	require.True(t, ok)
	assert.Contains(t, e.Message, "botting")

	require.NoError(t, f.ledger.Unban(ctx, alice))
	_, err = f.ledger.Draw(ctx, alice)
	assert.NoError(t, err)
}

func TestDraw_GrantsCardCoinsExperienceAndQuests(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)
	ash := f.card("Ash", models.RarityCommon)
	f.card("Ash", models.RarityRare)

	res, err := f.ledger.Draw(ctx, alice)
	require.NoError(t, err)

	assert.Equal(t, DrawCard, res.Kind)
	assert.Equal(t, ash.ID, res.Card.ID)
	assert.True(t, res.NewCard)
	assert.Equal(t, int64(10), res.Coins)
	assert.Equal(t, int64(10), res.Balance)
	assert.Equal(t, int64(5), res.XP.Gained)
	assert.Equal(t, f.clock.now.Add(600*time.Second), res.NextDrawAt)

	p, _ := f.store.Player(alice)
	assert.Equal(t, int64(10), p.Bloodcoins)
	assert.Equal(t, int64(5), p.XP)
	require.NotNil(t, p.LastDraw)
	assert.Equal(t, int64(1), f.store.Amount(alice, ash.ID))

	for _, id := range []string{"daily_draw_5", "daily_draw_10", "weekly_draw_100"} {
		q, _ := f.store.Quest(alice, id)
		assert.Equal(t, int64(1), q.Progress, id)
	}
}

func TestDraw_CooldownWindow(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)
	f.card("Ash", models.RarityCommon)
	start := f.clock.now

	_, err := f.ledger.Draw(ctx, alice)
	require.NoError(t, err)

	f.clock.now = start.Add(599 * time.Second)
	_, err = f.ledger.Draw(ctx, alice)
	require.ErrorIs(t, err, economy.ErrCooldownActive)
	e, _ := economy.AsError(err)
	assert.Equal(t, time.Second, e.RetryAfter)

	f.clock.now = start.Add(600 * time.Second)
	res, err := f.ledger.Draw(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Owned)
}

func TestDraw_CooldownPersistsAcrossLedgers(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)
	f.card("Ash", models.RarityCommon)

	_, err := f.ledger.Draw(ctx, alice)
	require.NoError(t, err)

	restarted := NewLedger(f.store, f.rules, rewards.NewRoller(rewards.Fixed(0)), f.clock)
	_, err = restarted.Draw(ctx, alice)
	assert.ErrorIs(t, err, economy.ErrCooldownActive)
}

func TestDraw_BypassClearsCooldown(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)
	f.card("Ash", models.RarityCommon)

	_, err := f.ledger.Draw(ctx, alice)
	require.NoError(t, err)
	require.NoError(t, f.ledger.SetBypass(ctx, alice, true, false))

	res, err := f.ledger.Draw(ctx, alice)
	require.NoError(t, err)
	assert.True(t, res.CooldownBypassed)

	p, _ := f.store.Player(alice)
	assert.Nil(t, p.LastDraw)
	assert.True(t, p.BypassCooldown)
}

func TestDraw_EmptyPoolLeavesStateUntouched(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)
	f.card("Ash", models.RarityRare)
	before, _ := f.store.Player(alice)

	_, err := f.ledger.Draw(ctx, alice)
	require.ErrorIs(t, err, economy.ErrEmptyPool)

	after, _ := f.store.Player(alice)
	assert.Equal(t, before, after)
	q, _ := f.store.Quest(alice, "daily_draw_5")
	assert.Equal(t, int64(0), q.Progress)

	// the failed draw did not consume the cooldown
	f.card("Birch", models.RarityCommon)
	_, err = f.ledger.Draw(ctx, alice)
	assert.NoError(t, err)
}

func TestDraw_MimicLossGivesNothing(t *testing.T) {
	f := newFixture(t, rewards.NewSequence(0.05, 0, 0))
	ctx := context.Background()
	f.register(t, alice)
	f.card("Ash", models.RarityRare)
	require.NoError(t, f.store.RunInTx(ctx, setLevel(alice, 3)))

	res, err := f.ledger.Draw(ctx, alice)
	require.NoError(t, err)

	require.Equal(t, DrawEncounter, res.Kind)
	require.NotNil(t, res.Encounter)
	assert.False(t, res.Encounter.PlayerWon)
	assert.Equal(t, "Wanderer", res.Encounter.Player.Name)
	assert.Nil(t, res.Card)

	p, _ := f.store.Player(alice)
	assert.Equal(t, int64(0), p.Bloodcoins)
	assert.NotNil(t, p.LastDraw)
	q, _ := f.store.Quest(alice, "daily_draw_5")
	assert.Equal(t, int64(1), q.Progress)
}

func TestDraw_MimicVictoryRewards(t *testing.T) {
	f := newFixture(t, rewards.NewSequence(0.05, 0, 0))
	ctx := context.Background()
	f.register(t, alice)
	champion := f.card("Champion", models.RarityRare)
	f.store.Give(alice, champion.ID, 1)
	reward := f.card("Relic", models.RarityRare)
	require.NoError(t, f.store.RunInTx(ctx, setLevel(alice, 3)))

	_, err := f.ledger.SetBuddy(ctx, alice, "champion", models.RarityRare)
	require.NoError(t, err)
	require.NoError(t, f.store.RunInTx(ctx, setAttack(alice, champion.ID, 100)))

	res, err := f.ledger.Draw(ctx, alice)
	require.NoError(t, err)

	require.Equal(t, DrawEncounter, res.Kind)
	assert.True(t, res.Encounter.PlayerWon)
	assert.Equal(t, "Champion", res.Encounter.Player.Name)
	assert.Equal(t, champion.ID, res.Card.ID, "first rare template wins the pick")
	assert.Equal(t, int64(250), res.Coins)
	assert.Equal(t, int64(25), res.XP.Gained)

	p, _ := f.store.Player(alice)
	assert.Equal(t, int64(250), p.Bloodcoins)
	assert.Equal(t, int64(2), f.store.Amount(alice, champion.ID))
	assert.Equal(t, int64(0), f.store.Amount(alice, reward.ID))
}

func TestDraw_GrantsBuddyExperience(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)
	ash := f.card("Ash", models.RarityCommon)
	f.store.Give(alice, ash.ID, 1)
	_, err := f.ledger.SetBuddy(ctx, alice, "Ash", models.RarityCommon)
	require.NoError(t, err)

	res, err := f.ledger.Draw(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.BuddyExp)
	assert.Equal(t, int64(10), f.store.CardExp(alice, ash.ID))
}

func TestClaimDaily(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)

	res, err := f.ledger.ClaimDaily(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), res.Amount)
	assert.Equal(t, int64(10000), res.Balance)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), res.NextReset)

	_, err = f.ledger.ClaimDaily(ctx, alice)
	require.ErrorIs(t, err, economy.ErrCooldownActive)
	e, _ := economy.AsError(err)
	assert.Equal(t, 12*time.Hour, e.RetryAfter)

	p, _ := f.store.Player(alice)
	assert.Equal(t, int64(10000), p.Bloodcoins)

	q, _ := f.store.Quest(alice, "daily_daily")
	assert.True(t, q.Completed)
	q, _ = f.store.Quest(alice, "weekly_daily_5")
	assert.Equal(t, int64(1), q.Progress)
	assert.False(t, q.Completed)
}

func TestClaimDaily_UTCRollover(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)

	f.clock.now = time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	_, err := f.ledger.ClaimDaily(ctx, alice)
	require.NoError(t, err)

	f.clock.now = time.Date(2024, 1, 2, 0, 0, 30, 0, time.UTC)
	_, err = f.ledger.ClaimDaily(ctx, alice)
	require.NoError(t, err)

	p, _ := f.store.Player(alice)
	assert.Equal(t, int64(20000), p.Bloodcoins)
}

func TestAddExperience_ReplayEquivalence(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, "a")
	f.register(t, "b")

	_, err := f.ledger.AddExperience(ctx, "a", 5)
	require.NoError(t, err)
	_, err = f.ledger.AddExperience(ctx, "a", 5)
	require.NoError(t, err)
	_, err = f.ledger.AddExperience(ctx, "b", 10)
	require.NoError(t, err)

	a, _ := f.store.Player("a")
	b, _ := f.store.Player("b")
	assert.Equal(t, []int64{b.Level, b.XP, b.XPNext}, []int64{a.Level, a.XP, a.XPNext})

	res, err := f.ledger.AddExperience(ctx, "a", 300)
	require.NoError(t, err)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, int64(3), res.After.Level)
	assert.Equal(t, int64(2), res.LevelsGained)

	_, err = f.ledger.AddExperience(ctx, "a", -1)
	assert.ErrorIs(t, err, economy.ErrInvalidArgument)
}

func TestClaimQuestReward(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)

	_, err := f.ledger.ClaimQuestReward(ctx, alice, "daily_draw_5")
	assert.ErrorIs(t, err, economy.ErrNotYetClaimable)

	_, err = f.ledger.ClaimQuestReward(ctx, alice, "nope")
	assert.ErrorIs(t, err, economy.ErrInvalidArgument)

	n, err := f.ledger.UpdateQuestProgress(ctx, alice, economy.QuestDraw5, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	res, err := f.ledger.ClaimQuestReward(ctx, alice, "daily_draw_5")
	require.NoError(t, err)
	assert.Equal(t, int64(250), res.Coins)
	assert.Equal(t, int64(250), res.Balance)

	_, err = f.ledger.ClaimQuestReward(ctx, alice, "daily_draw_5")
	assert.ErrorIs(t, err, economy.ErrAlreadyClaimed)

	// claimed quests stop counting
	n, err = f.ledger.UpdateQuestProgress(ctx, alice, economy.QuestDraw5, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	p, _ := f.store.Player(alice)
	assert.Equal(t, int64(250), p.Bloodcoins)
}

func TestClaimQuestReward_ConcurrentClaimsGrantOnce(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)
	_, err := f.ledger.UpdateQuestProgress(ctx, alice, economy.QuestUpgrade10, 10)
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.ledger.ClaimQuestReward(ctx, alice, "weekly_upgrade_10")
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, economy.ErrAlreadyClaimed)
	}
	assert.Equal(t, 1, ok)

	p, _ := f.store.Player(alice)
	assert.Equal(t, int64(100000), p.Bloodcoins)
	assert.Equal(t, int64(5), p.Noblecoins)
}

func TestClaimQuestReward_Noblecoins(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)

	_, err := f.ledger.UpdateQuestProgress(ctx, alice, economy.QuestDraw5, 5)
	require.NoError(t, err)
	res, err := f.ledger.ClaimQuestReward(ctx, alice, "daily_draw_5")
	require.NoError(t, err)
	assert.Zero(t, res.Noble, "daily quests pay Bloodcoins only")

	_, err = f.ledger.UpdateQuestProgress(ctx, alice, economy.QuestDraw100, 100)
	require.NoError(t, err)
	res, err = f.ledger.ClaimQuestReward(ctx, alice, "weekly_draw_100")
	require.NoError(t, err)
	assert.Equal(t, int64(25000), res.Coins)
	assert.Equal(t, int64(2), res.Noble)
	assert.Equal(t, int64(2), res.NobleBalance)

	p, _ := f.store.Player(alice)
	assert.Equal(t, int64(2), p.Noblecoins)
	assert.Equal(t, int64(25250), p.Bloodcoins)
}

func TestClaimQuestReward_CardReward(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)
	_, err := f.ledger.UpdateQuestProgress(ctx, alice, economy.QuestSpendCurrency, 10000)
	require.NoError(t, err)

	_, err = f.ledger.ClaimQuestReward(ctx, alice, "weekly_spend_10000")
	require.ErrorIs(t, err, economy.ErrEmptyPool)
	q, _ := f.store.Quest(alice, "weekly_spend_10000")
	assert.False(t, q.Claimed, "failed grant rolls the claim back")

	epic := f.card("Warden", models.RarityEpic)
	res, err := f.ledger.ClaimQuestReward(ctx, alice, "weekly_spend_10000")
	require.NoError(t, err)
	require.NotNil(t, res.Card)
	assert.Equal(t, epic.ID, res.Card.ID)
	assert.Equal(t, int64(1), f.store.Amount(alice, epic.ID))
}

func TestRotateQuests(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)

	rotated, _, err := f.ledger.RotateQuests(ctx, models.QuestKindDaily, false)
	require.NoError(t, err)
	assert.False(t, rotated, "first run only records the period")

	_, err = f.ledger.UpdateQuestProgress(ctx, alice, economy.QuestDraw5, 3)
	require.NoError(t, err)
	_, err = f.ledger.UpdateQuestProgress(ctx, alice, economy.QuestDraw100, 3)
	require.NoError(t, err)

	rotated, _, err = f.ledger.RotateQuests(ctx, models.QuestKindDaily, false)
	require.NoError(t, err)
	assert.False(t, rotated)

	f.clock.Advance(24 * time.Hour)
	rotated, rows, err := f.ledger.RotateQuests(ctx, models.QuestKindDaily, false)
	require.NoError(t, err)
	assert.True(t, rotated)
	assert.Equal(t, int64(5), rows)

	q, _ := f.store.Quest(alice, "daily_draw_5")
	assert.Equal(t, int64(0), q.Progress)
	q, _ = f.store.Quest(alice, "weekly_draw_100")
	assert.Equal(t, int64(3), q.Progress)

	v, _ := f.store.Meta("quests_rotated_daily")
	assert.Equal(t, "2024-01-02", v)

	rotated, _, err = f.ledger.RotateQuests(ctx, models.QuestKindWeekly, true)
	require.NoError(t, err)
	assert.True(t, rotated)
	q, _ = f.store.Quest(alice, "weekly_draw_100")
	assert.Equal(t, int64(0), q.Progress)
}

func TestPeriodKey(t *testing.T) {
	// 2024-01-03 is a Wednesday
	wed := time.Date(2024, 1, 3, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-03", PeriodKey(models.QuestKindDaily, wed))
	assert.Equal(t, "2024-01-01", PeriodKey(models.QuestKindWeekly, wed))
	sun := time.Date(2024, 1, 7, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01", PeriodKey(models.QuestKindWeekly, sun))
}

func TestQuests_ListsByKind(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)
	f.store.AddQuestTemplate(models.QuestTemplate{QuestID: "daily_new", Kind: models.QuestKindDaily, Description: "New", Target: 1, SortOrder: 9})

	daily, err := f.ledger.Quests(ctx, alice, models.QuestKindDaily)
	require.NoError(t, err)
	require.Len(t, daily, 6)
	assert.Equal(t, "daily_upgrade_1", daily[0].QuestID)
	assert.Equal(t, "daily_new", daily[5].QuestID)

	weekly, err := f.ledger.Quests(ctx, alice, models.QuestKindWeekly)
	require.NoError(t, err)
	assert.Len(t, weekly, 4)

	_, err = f.ledger.Quests(ctx, alice, "monthly")
	assert.ErrorIs(t, err, economy.ErrInvalidArgument)
}

func TestButcher(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)
	ash := f.card("Ash", models.RarityCommon)
	f.store.Give(alice, ash.ID, 3)
	_, err := f.ledger.SetBuddy(ctx, alice, "Ash", models.RarityCommon)
	require.NoError(t, err)

	_, err = f.ledger.Butcher(ctx, alice, "Ash", models.RarityCommon, 4)
	require.ErrorIs(t, err, economy.ErrInsufficientCards)
	assert.Equal(t, int64(3), f.store.Amount(alice, ash.ID))

	res, err := f.ledger.Butcher(ctx, alice, "ash", "Common", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.Coins)
	assert.Equal(t, int64(1), res.Remaining)

	_, err = f.ledger.Butcher(ctx, alice, "Ash", models.RarityCommon, 1)
	require.NoError(t, err)
	p, _ := f.store.Player(alice)
	assert.Equal(t, int64(150), p.Bloodcoins)
	assert.Nil(t, p.BuddyCardID, "selling the last copy clears the buddy")

	_, err = f.ledger.Butcher(ctx, alice, "Ash", models.RarityCommon, 1)
	assert.ErrorIs(t, err, economy.ErrNotOwned)
	_, err = f.ledger.Butcher(ctx, alice, "Ash", models.RarityCommon, 0)
	assert.ErrorIs(t, err, economy.ErrInvalidArgument)
}

func TestBuddy(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)

	view, err := f.ledger.Buddy(ctx, alice)
	require.NoError(t, err)
	assert.Nil(t, view)

	_, err = f.ledger.SetBuddy(ctx, alice, "Ash", models.RarityRare)
	assert.ErrorIs(t, err, economy.ErrNotOwned)

	ash := f.card("Ash", models.RarityRare)
	f.store.Give(alice, ash.ID, 1)
	require.NoError(t, f.store.RunInTx(ctx, addExp(alice, ash.ID, 250)))

	view, err = f.ledger.SetBuddy(ctx, alice, "ASH", models.RarityRare)
	require.NoError(t, err)
	assert.Equal(t, int64(3), view.Level)
	assert.Equal(t, stats.Stats{Health: 150, Attack: 20, Speed: 15}, view.Base)
	assert.Equal(t, stats.Stats{Health: 160, Attack: 24, Speed: 17}, view.Stats)

	view, err = f.ledger.Buddy(ctx, alice)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, ash.ID, view.Card.ID)
}

func TestSetTeam(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)
	ash := f.card("Ash", models.RarityCommon)
	birch := f.card("Birch", models.RarityRare)
	f.store.Give(alice, ash.ID, 1)
	f.store.Give(alice, birch.ID, 1)

	members, err := f.ledger.SetTeam(ctx, alice, []CardRef{{"Birch", "rare"}, {"Ash", "common"}})
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.True(t, members[0].Captain)
	assert.Equal(t, birch.ID, members[0].Card.ID)
	assert.Equal(t, stats.Stats{Health: 150, Attack: 20, Speed: 15}, members[0].Stats)
	assert.False(t, members[1].Captain)

	members, err = f.ledger.SetTeam(ctx, alice, []CardRef{{"Ash", "common"}})
	require.NoError(t, err)
	require.Len(t, members, 1)

	team, err := f.ledger.Team(ctx, alice)
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, ash.ID, team[0].Card.ID)

	members, err = f.ledger.SetTeam(ctx, alice, []CardRef{{"Birch", " Rare "}, {"Ash", "COMMON\t"}})
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, birch.ID, members[0].Card.ID)

	members, err = f.ledger.SetTeam(ctx, alice, []CardRef{{"Ash", "common"}})
	require.NoError(t, err)
	require.Len(t, members, 1)

	_, err = f.ledger.SetTeam(ctx, alice, []CardRef{{"Cedar", "common"}})
	assert.ErrorIs(t, err, economy.ErrNotOwned)
	_, err = f.ledger.SetTeam(ctx, alice, []CardRef{{"Ash", "common"}, {"Ash", "common"}})
	assert.ErrorIs(t, err, economy.ErrInvalidArgument)
	_, err = f.ledger.SetTeam(ctx, alice, make([]CardRef, 6))
	assert.ErrorIs(t, err, economy.ErrInvalidArgument)

	team, err = f.ledger.Team(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, team, 1, "failed team set keeps the previous team")
}

func TestCooldownsAndReset(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()
	f.register(t, alice)
	f.card("Ash", models.RarityCommon)

	cd, err := f.ledger.Cooldowns(ctx, alice)
	require.NoError(t, err)
	assert.True(t, cd.DailyReady)
	assert.True(t, cd.DrawReady)

	_, err = f.ledger.Draw(ctx, alice)
	require.NoError(t, err)
	_, err = f.ledger.ClaimDaily(ctx, alice)
	require.NoError(t, err)

	cd, err = f.ledger.Cooldowns(ctx, alice)
	require.NoError(t, err)
	assert.False(t, cd.DailyReady)
	assert.False(t, cd.DrawReady)
	assert.Equal(t, 600*time.Second, cd.Remaining(f.clock.now, cd.DrawReadyAt))
	assert.Equal(t, 12*time.Hour, cd.Remaining(f.clock.now, cd.DailyReset))

	require.NoError(t, f.ledger.ResetDrawCooldown(ctx, alice))
	_, err = f.ledger.Draw(ctx, alice)
	assert.NoError(t, err)

	assert.ErrorIs(t, f.ledger.ResetDrawCooldown(ctx, "ghost"), economy.ErrNotRegistered)
}

func TestCreateCardAndFactions(t *testing.T) {
	f := newFixture(t, rewards.Fixed(0))
	ctx := context.Background()

	c, err := f.ledger.CreateCard(ctx, &models.Card{Name: " Ember ", Rarity: "EPIC"})
	require.NoError(t, err)
	assert.Equal(t, "Ember", c.BaseName)
	assert.Equal(t, models.RarityEpic, c.Rarity)
	assert.Equal(t, 1.0, c.DropWeight)

	_, err = f.ledger.CreateCard(ctx, &models.Card{Name: "X", Rarity: "mythic"})
	assert.ErrorIs(t, err, economy.ErrInvalidArgument)

	_, err = f.ledger.Register(ctx, "a", "a", "verdant")
	require.NoError(t, err)
	_, err = f.ledger.Register(ctx, "b", "b", "azure")
	require.NoError(t, err)

	members, err := f.ledger.FactionMembers(ctx, "Verdant")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "a", members[0].UserID)
}
