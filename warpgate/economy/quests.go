package economy

import "github.com/ellavondegurechaff/warpgate/warpgate/database/models"

// Tracked quest actions. Quest templates match on these descriptions.
const (
	QuestDaily         = "Do !daily"
	QuestDailyStreak   = "Do 5 !daily"
	QuestDraw5         = "Draw 5 times"
	QuestDraw10        = "Draw 10 times"
	QuestDraw100       = "Draw 100 times"
	QuestUpgrade1      = "Upgrade 1 card"
	QuestUpgrade2      = "Upgrade 2 cards"
	QuestUpgrade10     = "Upgrade 10 cards"
	QuestSpendCurrency = "Spend 10000 Bloodcoins"
)

var (
	DailyActions   = []string{QuestDaily, QuestDailyStreak}
	DrawActions    = []string{QuestDraw5, QuestDraw10, QuestDraw100}
	UpgradeActions = []string{QuestUpgrade1, QuestUpgrade2, QuestUpgrade10}
)

// DefaultQuests is the quest board seeded into a fresh database.
func DefaultQuests() []models.QuestTemplate {
	return []models.QuestTemplate{
		{QuestID: "daily_upgrade_1", Kind: models.QuestKindDaily, Description: QuestUpgrade1, Target: 1, RewardCoins: 2000, SortOrder: 1},
		{QuestID: "daily_draw_10", Kind: models.QuestKindDaily, Description: QuestDraw10, Target: 10, RewardCoins: 500, SortOrder: 2},
		{QuestID: "daily_draw_5", Kind: models.QuestKindDaily, Description: QuestDraw5, Target: 5, RewardCoins: 250, SortOrder: 3},
		{QuestID: "daily_upgrade_2", Kind: models.QuestKindDaily, Description: QuestUpgrade2, Target: 2, RewardCoins: 5000, SortOrder: 4},
		{QuestID: "daily_daily", Kind: models.QuestKindDaily, Description: QuestDaily, Target: 1, RewardCoins: 500, SortOrder: 5},
		{QuestID: "weekly_daily_5", Kind: models.QuestKindWeekly, Description: QuestDailyStreak, Target: 5, RewardCoins: 15000, RewardNoble: 1, SortOrder: 1},
		{QuestID: "weekly_draw_100", Kind: models.QuestKindWeekly, Description: QuestDraw100, Target: 100, RewardCoins: 25000, RewardNoble: 2, SortOrder: 2},
		{QuestID: "weekly_upgrade_10", Kind: models.QuestKindWeekly, Description: QuestUpgrade10, Target: 10, RewardCoins: 100000, RewardNoble: 5, SortOrder: 3},
		{QuestID: "weekly_spend_10000", Kind: models.QuestKindWeekly, Description: QuestSpendCurrency, Target: 10000, RewardRarity: models.RarityEpic, SortOrder: 4},
	}
}
