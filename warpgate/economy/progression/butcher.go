package progression

import (
	"context"
	"fmt"
	"strings"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
)

type ButcherResult struct {
	Card      *models.Card
	Sold      int64
	Remaining int64
	Coins     int64
	Balance   int64
}

// Butcher sells qty copies of an owned card for their fixed value.
func (l *Ledger) Butcher(ctx context.Context, userID, name, rarity string, qty int64) (*ButcherResult, error) {
	if qty <= 0 {
		return nil, economy.Invalid("quantity must be at least 1")
	}
	rarity = strings.ToLower(rarity)
	value, ok := l.rules.SellValues[rarity]
	if !ok {
		return nil, economy.Invalid("unknown rarity %q", rarity)
	}

	var res ButcherResult
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		p, err := economy.LoadPlayer(ctx, tx, userID)
		if err != nil {
			return err
		}
		uc, err := economy.FindOwned(ctx, tx, userID, name, rarity)
		if err != nil {
			return err
		}

		removed, err := tx.Inventory().Remove(ctx, userID, uc.CardID, qty)
		if err != nil {
			return fmt.Errorf("failed to remove cards: %w", err)
		}
		if !removed {
			return economy.ErrInsufficientCards
		}

		coins := value * qty
		balance, err := tx.Players().Credit(ctx, userID, economy.Bloodcoins, coins)
		if err != nil {
			return fmt.Errorf("failed to credit sale: %w", err)
		}

		remaining := uc.Amount - qty
		if remaining == 0 && p.BuddyCardID != nil && *p.BuddyCardID == uc.CardID {
			if err := tx.Players().SetBuddy(ctx, userID, nil); err != nil {
				return fmt.Errorf("failed to clear buddy: %w", err)
			}
		}

		res = ButcherResult{
			Card:      uc.Card,
			Sold:      qty,
			Remaining: remaining,
			Coins:     coins,
			Balance:   balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
