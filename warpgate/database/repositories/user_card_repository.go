package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/uptrace/bun"
)

type UserCardRepository interface {
	economy.InventoryStore
}

type userCardRepository struct {
	BaseRepository
}

func NewUserCardRepository(db bun.IDB) UserCardRepository {
	return &userCardRepository{BaseRepository: NewBaseRepository(db)}
}

// Add upserts the owned row, stacking amount onto existing copies.
func (r *userCardRepository) Add(ctx context.Context, userID string, cardID, amount int64) (*models.UserCard, error) {
	now := time.Now().UTC()
	uc := &models.UserCard{
		UserID:    userID,
		CardID:    cardID,
		Amount:    amount,
		Obtained:  now,
		UpdatedAt: now,
	}

	_, err := r.db.NewInsert().
		Model(uc).
		On("CONFLICT (user_id, card_id) DO UPDATE").
		Set("amount = uc.amount + EXCLUDED.amount").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return nil, r.HandleError("add", "user card", err)
	}
	return r.Get(ctx, userID, cardID)
}

// Remove decrements amount only while enough copies remain.
func (r *userCardRepository) Remove(ctx context.Context, userID string, cardID, amount int64) (bool, error) {
	res, err := r.removeQuery(userID, cardID, amount).Exec(ctx)
	if err != nil {
		return false, r.HandleError("remove", "user card", err)
	}
	ok, err := affected(res)
	return ok, r.HandleError("remove", "user card", err)
}

func (r *userCardRepository) removeQuery(userID string, cardID, amount int64) *bun.UpdateQuery {
	return r.db.NewUpdate().
		Model((*models.UserCard)(nil)).
		Set("amount = amount - ?", amount).
		Set("updated_at = ?", time.Now().UTC()).
		Where("user_id = ?", userID).
		Where("card_id = ?", cardID).
		Where("amount >= ?", amount)
}

func (r *userCardRepository) Get(ctx context.Context, userID string, cardID int64) (*models.UserCard, error) {
	uc := new(models.UserCard)
	err := r.db.NewSelect().
		Model(uc).
		Relation("Card").
		Where("uc.user_id = ?", userID).
		Where("uc.card_id = ?", cardID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get", "user card", err)
	}
	return uc, nil
}

func (r *userCardRepository) FindByName(ctx context.Context, userID, name, rarity string) (*models.UserCard, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	uc := new(models.UserCard)
	err := r.db.NewSelect().
		Model(uc).
		Relation("Card").
		Where("uc.user_id = ?", userID).
		Where("uc.amount > 0").
		Where("card.rarity = ?", rarity).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("lower(card.name) = ?", name).
				WhereOr("lower(card.base_name) = ?", name)
		}).
		Order("uc.card_id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("find by name", "user card", err)
	}
	return uc, nil
}

func (r *userCardRepository) List(ctx context.Context, userID string) ([]*models.UserCard, error) {
	var cards []*models.UserCard
	err := r.db.NewSelect().
		Model(&cards).
		Relation("Card").
		Where("uc.user_id = ?", userID).
		Where("uc.amount > 0").
		Order("uc.card_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list", "user cards", err)
	}
	return cards, nil
}

func (r *userCardRepository) AddExp(ctx context.Context, userID string, cardID, exp int64) error {
	_, err := r.db.NewUpdate().
		Model((*models.UserCard)(nil)).
		Set("exp = exp + ?", exp).
		Set("updated_at = ?", time.Now().UTC()).
		Where("user_id = ?", userID).
		Where("card_id = ?", cardID).
		Exec(ctx)
	return r.HandleError("add exp", "user card", err)
}
