package repositories

import (
	"context"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/uptrace/bun"
)

type TeamRepository interface {
	economy.TeamStore
}

type teamRepository struct {
	BaseRepository
}

func NewTeamRepository(db bun.IDB) TeamRepository {
	return &teamRepository{BaseRepository: NewBaseRepository(db)}
}

// Replace deletes the player's slots and inserts the new ones.
func (r *teamRepository) Replace(ctx context.Context, userID string, slots []*models.TeamSlot) error {
	_, err := r.db.NewDelete().
		Model((*models.TeamSlot)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return r.HandleError("clear", "team", err)
	}
	if len(slots) == 0 {
		return nil
	}
	_, err = r.db.NewInsert().
		Model(&slots).
		Exec(ctx)
	return r.HandleError("insert", "team", err)
}

func (r *teamRepository) List(ctx context.Context, userID string) ([]*models.TeamSlot, error) {
	var slots []*models.TeamSlot
	err := r.db.NewSelect().
		Model(&slots).
		Relation("Card").
		Where("ts.user_id = ?", userID).
		Order("ts.slot ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list", "team", err)
	}
	return slots, nil
}
