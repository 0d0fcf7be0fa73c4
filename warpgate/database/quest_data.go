package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
)

// InitializeQuestData inserts or updates the default quest templates.
// Existing player progress rows are left untouched.
func (db *DB) InitializeQuestData(ctx context.Context) error {
	insertSQL := `
        INSERT INTO quest_templates (
            quest_id, kind, description, target, reward_coins, reward_noble, reward_rarity, sort_order
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (quest_id) DO UPDATE SET
            kind = EXCLUDED.kind,
            description = EXCLUDED.description,
            target = EXCLUDED.target,
            reward_coins = EXCLUDED.reward_coins,
            reward_noble = EXCLUDED.reward_noble,
            reward_rarity = EXCLUDED.reward_rarity,
            sort_order = EXCLUDED.sort_order;
    `

	quests := economy.DefaultQuests()
	for _, q := range quests {
		if _, err := db.ExecWithLog(ctx, insertSQL,
			q.QuestID, q.Kind, q.Description, q.Target, q.RewardCoins, q.RewardNoble, q.RewardRarity, q.SortOrder,
		); err != nil {
			return fmt.Errorf("failed to upsert quest %s: %w", q.QuestID, err)
		}
	}

	slog.Info("Quest templates initialized/updated successfully",
		slog.String("type", "db"),
		slog.Int("count", len(quests)))
	return nil
}
