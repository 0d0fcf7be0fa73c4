package progression

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
)

// ImportResult counts the templates written by ImportContent.
type ImportResult struct {
	Cards  int
	Quests int
}

// ImportContent upserts card templates by (base name, rarity) and quest
// templates by id in one transaction. Nothing is written if any entry is
// invalid.
func (l *Ledger) ImportContent(ctx context.Context, cards []*models.Card, quests []*models.QuestTemplate) (*ImportResult, error) {
	for _, c := range cards {
		if err := l.normalizeCard(c); err != nil {
			return nil, err
		}
	}
	seen := make(map[string]bool, len(quests))
	for _, q := range quests {
		if err := normalizeQuest(q); err != nil {
			return nil, err
		}
		if seen[q.QuestID] {
			return nil, economy.Invalid("duplicate quest id %q", q.QuestID)
		}
		seen[q.QuestID] = true
	}

	res := &ImportResult{}
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		*res = ImportResult{}
		for _, c := range cards {
			if err := tx.Cards().Upsert(ctx, c); err != nil {
				return fmt.Errorf("failed to upsert card %s (%s): %w", c.BaseName, c.Rarity, err)
			}
			res.Cards++
		}
		for _, q := range quests {
			if err := tx.Quests().UpsertTemplate(ctx, q); err != nil {
				return fmt.Errorf("failed to upsert quest %s: %w", q.QuestID, err)
			}
			res.Quests++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Content imported",
		slog.String("type", "sys"),
		slog.Int("cards", res.Cards),
		slog.Int("quests", res.Quests))
	return res, nil
}

func normalizeQuest(q *models.QuestTemplate) error {
	q.QuestID = strings.TrimSpace(q.QuestID)
	q.Kind = strings.ToLower(strings.TrimSpace(q.Kind))
	q.RewardRarity = strings.ToLower(strings.TrimSpace(q.RewardRarity))
	switch {
	case q.QuestID == "":
		return economy.Invalid("quest id is required")
	case !models.ValidQuestKind(q.Kind):
		return economy.Invalid("quest %s: unknown kind %q", q.QuestID, q.Kind)
	case strings.TrimSpace(q.Description) == "":
		return economy.Invalid("quest %s: description is required", q.QuestID)
	case q.Target <= 0:
		return economy.Invalid("quest %s: target must be positive", q.QuestID)
	case q.RewardCoins < 0 || q.RewardNoble < 0:
		return economy.Invalid("quest %s: reward coins must not be negative", q.QuestID)
	case q.RewardRarity != "" && !models.ValidRarity(q.RewardRarity):
		return economy.Invalid("quest %s: unknown reward rarity %q", q.QuestID, q.RewardRarity)
	}
	return nil
}
