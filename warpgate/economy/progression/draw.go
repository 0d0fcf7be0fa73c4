package progression

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/encounter"
)

type DrawKind int

const (
	DrawCard DrawKind = iota
	DrawEncounter
)

// DrawResult is what a single draw action produced.
type DrawResult struct {
	Kind DrawKind

	// Set for DrawCard, and for a won encounter (the reward card).
	Card     *models.Card
	Owned    int64
	NewCard  bool
	Coins    int64
	Balance  int64
	XP       XPResult
	BuddyExp int64

	Encounter *encounter.Outcome

	CooldownBypassed bool
	NextDrawAt       time.Time
}

// Draw performs one cooldown-gated draw. The cooldown stamp, the card, the
// coins, the quest counters and the experience commit together or not at all.
func (l *Ledger) Draw(ctx context.Context, userID string) (*DrawResult, error) {
	var res DrawResult
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		now := l.clock.Now().UTC()
		p, err := economy.LoadPlayer(ctx, tx, userID)
		if err != nil {
			return err
		}

		if err := l.passDrawGate(ctx, tx, p, now, &res); err != nil {
			return err
		}

		if p.Level >= l.rules.MimicMinLevel && l.roller.Chance(l.rules.MimicChance) {
			err = l.fightMimic(ctx, tx, p, &res)
		} else {
			err = l.drawCard(ctx, tx, p, &res)
		}
		if err != nil {
			return err
		}

		return economy.BumpQuests(ctx, tx, userID, 1, economy.DrawActions...)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (l *Ledger) passDrawGate(ctx context.Context, tx economy.Tx, p *models.Player, now time.Time, res *DrawResult) error {
	if p.BypassCooldown {
		if err := tx.Players().ClearDraw(ctx, p.UserID); err != nil {
			return fmt.Errorf("failed to clear draw cooldown: %w", err)
		}
		slog.Warn("Draw cooldown bypassed",
			slog.String("type", "audit"),
			slog.String("user_id", p.UserID))
		res.CooldownBypassed = true
		res.NextDrawAt = now
		return nil
	}

	ok, err := tx.Players().StampDraw(ctx, p.UserID, now, now.Add(-l.rules.DrawCooldown))
	if err != nil {
		return fmt.Errorf("failed to stamp draw: %w", err)
	}
	if !ok {
		remaining := l.rules.DrawCooldown
		if p.LastDraw != nil {
			remaining = p.LastDraw.Add(l.rules.DrawCooldown).Sub(now)
		}
		return economy.CooldownActive(remaining)
	}
	res.NextDrawAt = now.Add(l.rules.DrawCooldown)
	return nil
}

func (l *Ledger) drawCard(ctx context.Context, tx economy.Tx, p *models.Player, res *DrawResult) error {
	card, err := l.roller.Draw(ctx, tx.Cards(), l.rules.DrawWeights)
	if err != nil {
		return err
	}
	uc, err := tx.Inventory().Add(ctx, p.UserID, card.ID, 1)
	if err != nil {
		return fmt.Errorf("failed to add card to inventory: %w", err)
	}

	balance, err := tx.Players().Credit(ctx, p.UserID, economy.Bloodcoins, l.rules.DrawCoins)
	if err != nil {
		return fmt.Errorf("failed to credit draw reward: %w", err)
	}

	xp, err := l.grantXP(ctx, tx, p, l.rules.DrawXP)
	if err != nil {
		return err
	}

	buddyExp, err := l.grantBuddyExp(ctx, tx, p)
	if err != nil {
		return err
	}

	res.Kind = DrawCard
	res.Card = card
	res.Owned = uc.Amount
	res.NewCard = uc.Amount == 1
	res.Coins = l.rules.DrawCoins
	res.Balance = balance
	res.XP = xp
	res.BuddyExp = buddyExp
	return nil
}

func (l *Ledger) fightMimic(ctx context.Context, tx economy.Tx, p *models.Player, res *DrawResult) error {
	player, err := l.combatant(ctx, tx, p)
	if err != nil {
		return err
	}
	mimic := encounter.Combatant{Name: l.rules.MimicName, Stats: l.rules.MimicStats}
	outcome := encounter.Fight(player, mimic)

	res.Kind = DrawEncounter
	res.Encounter = &outcome
	res.Balance = p.Bloodcoins
	if !outcome.PlayerWon {
		return nil
	}

	card, err := l.roller.Draw(ctx, tx.Cards(), l.rules.MimicWeights)
	if err != nil {
		return err
	}
	uc, err := tx.Inventory().Add(ctx, p.UserID, card.ID, 1)
	if err != nil {
		return fmt.Errorf("failed to add mimic reward: %w", err)
	}
	balance, err := tx.Players().Credit(ctx, p.UserID, economy.Bloodcoins, l.rules.MimicCoins)
	if err != nil {
		return fmt.Errorf("failed to credit mimic reward: %w", err)
	}
	xp, err := l.grantXP(ctx, tx, p, l.rules.MimicXP)
	if err != nil {
		return err
	}

	res.Card = card
	res.Owned = uc.Amount
	res.NewCard = uc.Amount == 1
	res.Coins = l.rules.MimicCoins
	res.Balance = balance
	res.XP = xp
	return nil
}

// grantBuddyExp feeds the buddy card if the player still holds it.
func (l *Ledger) grantBuddyExp(ctx context.Context, tx economy.Tx, p *models.Player) (int64, error) {
	if p.BuddyCardID == nil || l.rules.BuddyXP <= 0 {
		return 0, nil
	}
	uc, err := tx.Inventory().Get(ctx, p.UserID, *p.BuddyCardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to load buddy: %w", err)
	}
	if uc.Amount <= 0 {
		return 0, nil
	}
	if err := tx.Inventory().AddExp(ctx, p.UserID, uc.CardID, l.rules.BuddyXP); err != nil {
		return 0, fmt.Errorf("failed to grant buddy experience: %w", err)
	}
	return l.rules.BuddyXP, nil
}
