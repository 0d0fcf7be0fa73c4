package repositories

import (
	"context"
	"time"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/uptrace/bun"
)

type QuestRepository interface {
	economy.QuestStore
}

type questRepository struct {
	BaseRepository
}

func NewQuestRepository(db bun.IDB) QuestRepository {
	return &questRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *questRepository) Templates(ctx context.Context) ([]*models.QuestTemplate, error) {
	var quests []*models.QuestTemplate
	err := r.db.NewSelect().
		Model(&quests).
		Order("qt.quest_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list", "quest templates", err)
	}
	return quests, nil
}

func (r *questRepository) UpsertTemplate(ctx context.Context, q *models.QuestTemplate) error {
	_, err := r.db.NewInsert().
		Model(q).
		On("CONFLICT (quest_id) DO UPDATE").
		Set("kind = EXCLUDED.kind").
		Set("description = EXCLUDED.description").
		Set("target = EXCLUDED.target").
		Set("reward_coins = EXCLUDED.reward_coins").
		Set("reward_noble = EXCLUDED.reward_noble").
		Set("reward_rarity = EXCLUDED.reward_rarity").
		Set("sort_order = EXCLUDED.sort_order").
		Exec(ctx)
	return r.HandleError("upsert", "quest template", err)
}

func (r *questRepository) GetTemplate(ctx context.Context, questID string) (*models.QuestTemplate, error) {
	q := new(models.QuestTemplate)
	err := r.db.NewSelect().
		Model(q).
		Where("qt.quest_id = ?", questID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get", "quest template", err)
	}
	return q, nil
}

// Assign creates a zeroed progress row for every template the player lacks.
func (r *questRepository) Assign(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO user_quests (user_id, quest_id, progress, completed, claimed, updated_at)
        SELECT ?, qt.quest_id, 0, FALSE, FALSE, ?
        FROM quest_templates AS qt
        ON CONFLICT (user_id, quest_id) DO NOTHING`,
		userID, time.Now().UTC())
	return r.HandleError("assign", "user quests", err)
}

const incrementQuestsSQL = `
        UPDATE user_quests AS uq
        SET progress = uq.progress + ?,
            completed = (uq.progress + ?) >= qt.target,
            updated_at = ?
        FROM quest_templates AS qt
        WHERE qt.quest_id = uq.quest_id
          AND uq.user_id = ?
          AND uq.claimed = FALSE
          AND qt.description = ?`

// Increment bumps every unclaimed row tracking description and recomputes
// completion against the template target.
func (r *questRepository) Increment(ctx context.Context, userID, description string, amount int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, incrementQuestsSQL,
		amount, amount, time.Now().UTC(), userID, description)
	if err != nil {
		return 0, r.HandleError("increment", "user quests", err)
	}
	n, err := res.RowsAffected()
	return n, r.HandleError("increment", "user quests", err)
}

// Claim flips claimed only for a completed, unclaimed row.
func (r *questRepository) Claim(ctx context.Context, userID, questID string, now time.Time) (bool, error) {
	res, err := r.claimQuery(userID, questID, now).Exec(ctx)
	if err != nil {
		return false, r.HandleError("claim", "user quest", err)
	}
	ok, err := affected(res)
	return ok, r.HandleError("claim", "user quest", err)
}

func (r *questRepository) claimQuery(userID, questID string, now time.Time) *bun.UpdateQuery {
	return r.db.NewUpdate().
		Model((*models.UserQuest)(nil)).
		Set("claimed = TRUE").
		Set("claimed_at = ?", now).
		Set("updated_at = ?", now).
		Where("user_id = ?", userID).
		Where("quest_id = ?", questID).
		Where("completed = TRUE").
		Where("claimed = FALSE")
}

func (r *questRepository) Get(ctx context.Context, userID, questID string) (*models.UserQuest, error) {
	uq := new(models.UserQuest)
	err := r.db.NewSelect().
		Model(uq).
		Relation("Quest").
		Where("uq.user_id = ?", userID).
		Where("uq.quest_id = ?", questID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get", "user quest", err)
	}
	return uq, nil
}

func (r *questRepository) List(ctx context.Context, userID, kind string) ([]*models.UserQuest, error) {
	var quests []*models.UserQuest
	err := r.db.NewSelect().
		Model(&quests).
		Relation("Quest").
		Where("uq.user_id = ?", userID).
		Where("quest.kind = ?", kind).
		Order("quest.sort_order ASC", "uq.quest_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list", "user quests", err)
	}
	return quests, nil
}

// Reset clears progress of every row whose template has the given kind.
func (r *questRepository) Reset(ctx context.Context, kind string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE user_quests
        SET progress = 0, completed = FALSE, claimed = FALSE, claimed_at = NULL, updated_at = ?
        WHERE quest_id IN (SELECT quest_id FROM quest_templates WHERE kind = ?)`,
		time.Now().UTC(), kind)
	if err != nil {
		return 0, r.HandleError("reset", "user quests", err)
	}
	n, err := res.RowsAffected()
	return n, r.HandleError("reset", "user quests", err)
}
