package progression

import (
	"context"
	"fmt"
	"time"

	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
)

type DailyResult struct {
	Amount    int64
	Balance   int64
	NextReset time.Time
}

// ClaimDaily credits the daily reward at most once per UTC calendar day.
func (l *Ledger) ClaimDaily(ctx context.Context, userID string) (*DailyResult, error) {
	var res DailyResult
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		now := l.clock.Now().UTC()
		if _, err := economy.LoadPlayer(ctx, tx, userID); err != nil {
			return err
		}

		next := economy.NextDay(now)
		ok, err := tx.Players().StampDaily(ctx, userID, now, economy.DayStart(now))
		if err != nil {
			return fmt.Errorf("failed to stamp daily: %w", err)
		}
		if !ok {
			return economy.CooldownActive(next.Sub(now))
		}

		balance, err := tx.Players().Credit(ctx, userID, economy.Bloodcoins, l.rules.DailyCoins)
		if err != nil {
			return fmt.Errorf("failed to credit daily reward: %w", err)
		}
		if err := economy.BumpQuests(ctx, tx, userID, 1, economy.DailyActions...); err != nil {
			return err
		}

		res = DailyResult{Amount: l.rules.DailyCoins, Balance: balance, NextReset: next}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
