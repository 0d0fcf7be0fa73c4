package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/uptrace/bun"
)

type PlayerRepository interface {
	economy.PlayerStore
}

type playerRepository struct {
	BaseRepository
}

func NewPlayerRepository(db bun.IDB) PlayerRepository {
	return &playerRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *playerRepository) Create(ctx context.Context, p *models.Player) (bool, error) {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	res, err := r.db.NewInsert().
		Model(p).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, r.HandleError("create", "player", err)
	}
	ok, err := affected(res)
	return ok, r.HandleError("create", "player", err)
}

func (r *playerRepository) Get(ctx context.Context, userID string) (*models.Player, error) {
	p := new(models.Player)
	err := r.db.NewSelect().
		Model(p).
		Where("p.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get", "player", err)
	}
	return p, nil
}

func (r *playerRepository) Lock(ctx context.Context, userID string) (*models.Player, error) {
	p := new(models.Player)
	err := r.db.NewSelect().
		Model(p).
		Where("p.user_id = ?", userID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("lock", "player", err)
	}
	return p, nil
}

func (r *playerRepository) Credit(ctx context.Context, userID string, cur economy.Currency, amount int64) (int64, error) {
	var balance int64
	err := r.db.NewUpdate().
		Model((*models.Player)(nil)).
		Set("? = ? + ?", bun.Ident(string(cur)), bun.Ident(string(cur)), amount).
		Set("updated_at = ?", time.Now().UTC()).
		Where("user_id = ?", userID).
		Returning("?", bun.Ident(string(cur))).
		Scan(ctx, &balance)
	if err != nil {
		return 0, r.HandleError("credit", "player", err)
	}
	return balance, nil
}

// Debit subtracts amount only while the balance covers it.
func (r *playerRepository) Debit(ctx context.Context, userID string, cur economy.Currency, amount int64) (int64, bool, error) {
	var balance int64
	err := r.debitQuery(userID, cur, amount, time.Now().UTC()).Scan(ctx, &balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, r.HandleError("debit", "player", err)
	}
	return balance, true, nil
}

func (r *playerRepository) debitQuery(userID string, cur economy.Currency, amount int64, now time.Time) *bun.UpdateQuery {
	return r.db.NewUpdate().
		Model((*models.Player)(nil)).
		Set("? = ? - ?", bun.Ident(string(cur)), bun.Ident(string(cur)), amount).
		Set("updated_at = ?", now).
		Where("user_id = ?", userID).
		Where("? >= ?", bun.Ident(string(cur)), amount).
		Returning("?", bun.Ident(string(cur)))
}

func (r *playerRepository) StampDaily(ctx context.Context, userID string, now, dayStart time.Time) (bool, error) {
	res, err := r.stampDailyQuery(userID, now, dayStart).Exec(ctx)
	if err != nil {
		return false, r.HandleError("stamp daily", "player", err)
	}
	ok, err := affected(res)
	return ok, r.HandleError("stamp daily", "player", err)
}

func (r *playerRepository) StampDraw(ctx context.Context, userID string, now, readyAt time.Time) (bool, error) {
	res, err := r.stampDrawQuery(userID, now, readyAt).Exec(ctx)
	if err != nil {
		return false, r.HandleError("stamp draw", "player", err)
	}
	ok, err := affected(res)
	return ok, r.HandleError("stamp draw", "player", err)
}

// The stamp queries match no row once another writer stamped first.
func (r *playerRepository) stampDailyQuery(userID string, now, dayStart time.Time) *bun.UpdateQuery {
	return r.db.NewUpdate().
		Model((*models.Player)(nil)).
		Set("last_daily = ?", now).
		Set("updated_at = ?", now).
		Where("user_id = ?", userID).
		Where("(last_daily IS NULL OR last_daily < ?)", dayStart)
}

func (r *playerRepository) stampDrawQuery(userID string, now, readyAt time.Time) *bun.UpdateQuery {
	return r.db.NewUpdate().
		Model((*models.Player)(nil)).
		Set("last_draw = ?", now).
		Set("updated_at = ?", now).
		Where("user_id = ?", userID).
		Where("(last_draw IS NULL OR last_draw <= ?)", readyAt)
}

func (r *playerRepository) ClearDraw(ctx context.Context, userID string) error {
	return r.update(ctx, "clear draw", userID, func(q *bun.UpdateQuery) *bun.UpdateQuery {
		return q.Set("last_draw = NULL")
	})
}

func (r *playerRepository) SetProgress(ctx context.Context, userID string, level, xp, xpNext int64) error {
	return r.update(ctx, "set progress", userID, func(q *bun.UpdateQuery) *bun.UpdateQuery {
		return q.Set("level = ?", level).Set("xp = ?", xp).Set("xp_next = ?", xpNext)
	})
}

func (r *playerRepository) SetBuddy(ctx context.Context, userID string, cardID *int64) error {
	return r.update(ctx, "set buddy", userID, func(q *bun.UpdateQuery) *bun.UpdateQuery {
		return q.Set("buddy_card_id = ?", cardID)
	})
}

func (r *playerRepository) SetBypass(ctx context.Context, userID string, cooldown, upgrade bool) error {
	return r.update(ctx, "set bypass", userID, func(q *bun.UpdateQuery) *bun.UpdateQuery {
		return q.Set("bypass_cooldown = ?", cooldown).Set("bypass_upgrade = ?", upgrade)
	})
}

func (r *playerRepository) SetBan(ctx context.Context, userID string, banned bool, reason string) error {
	return r.update(ctx, "set ban", userID, func(q *bun.UpdateQuery) *bun.UpdateQuery {
		return q.Set("banned = ?", banned).Set("ban_reason = ?", reason)
	})
}

func (r *playerRepository) ListByFaction(ctx context.Context, faction string) ([]*models.Player, error) {
	var players []*models.Player
	err := r.db.NewSelect().
		Model(&players).
		Where("p.faction = ?", faction).
		Order("p.user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list by faction", "player", err)
	}
	return players, nil
}

// update applies set to the player row and fails with sql.ErrNoRows when the
// player does not exist.
func (r *playerRepository) update(ctx context.Context, op, userID string, set func(*bun.UpdateQuery) *bun.UpdateQuery) error {
	q := r.db.NewUpdate().
		Model((*models.Player)(nil)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("user_id = ?", userID)
	res, err := set(q).Exec(ctx)
	if err != nil {
		return r.HandleError(op, "player", err)
	}
	ok, err := affected(res)
	if err != nil {
		return r.HandleError(op, "player", err)
	}
	if !ok {
		return r.HandleError(op, "player", errNoRows(userID))
	}
	return nil
}
