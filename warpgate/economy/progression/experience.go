package progression

import (
	"context"
	"fmt"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
)

// XPResult describes an experience grant.
type XPResult struct {
	Gained       int64
	Before       Progress
	After        Progress
	LeveledUp    bool
	LevelsGained int64
}

// AddExperience grants amount player experience.
func (l *Ledger) AddExperience(ctx context.Context, userID string, amount int64) (*XPResult, error) {
	if amount < 0 {
		return nil, economy.Invalid("experience amount must not be negative")
	}

	var res XPResult
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		p, err := economy.LoadPlayer(ctx, tx, userID)
		if err != nil {
			return err
		}
		res, err = l.grantXP(ctx, tx, p, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// grantXP applies amount to a locked player and persists the result.
func (l *Ledger) grantXP(ctx context.Context, tx economy.Tx, p *models.Player, amount int64) (XPResult, error) {
	before := Progress{Level: p.Level, XP: p.XP, XPNext: p.XPNext}
	after, leveled := l.curve.Apply(before, amount)

	if after != before {
		if err := tx.Players().SetProgress(ctx, p.UserID, after.Level, after.XP, after.XPNext); err != nil {
			return XPResult{}, fmt.Errorf("failed to save progress: %w", err)
		}
		p.Level, p.XP, p.XPNext = after.Level, after.XP, after.XPNext
	}

	return XPResult{
		Gained:       amount,
		Before:       before,
		After:        after,
		LeveledUp:    leveled,
		LevelsGained: after.Level - before.Level,
	}, nil
}
