package progression

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/encounter"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/stats"
)

// BuddyView is the player's designated combatant.
type BuddyView struct {
	Card  *models.Card
	Owned *models.UserCard
	Level int64
	// Base is the resolved stat block, Stats includes level growth.
	Base  stats.Stats
	Stats stats.Stats
}

// SetBuddy designates an owned card as the player's buddy.
func (l *Ledger) SetBuddy(ctx context.Context, userID, name, rarity string) (*BuddyView, error) {
	var view *BuddyView
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		if _, err := economy.LoadPlayer(ctx, tx, userID); err != nil {
			return err
		}
		uc, err := economy.FindOwned(ctx, tx, userID, name, rarity)
		if err != nil {
			return err
		}
		cardID := uc.CardID
		if err := tx.Players().SetBuddy(ctx, userID, &cardID); err != nil {
			return fmt.Errorf("failed to set buddy: %w", err)
		}
		view, err = l.buddyView(ctx, tx, uc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Buddy returns the current buddy, or nil when none is set or the card is
// no longer owned.
func (l *Ledger) Buddy(ctx context.Context, userID string) (*BuddyView, error) {
	var view *BuddyView
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		p, err := economy.ReadPlayer(ctx, tx, userID)
		if err != nil {
			return err
		}
		uc, err := l.ownedBuddy(ctx, tx, p)
		if err != nil || uc == nil {
			return err
		}
		view, err = l.buddyView(ctx, tx, uc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (l *Ledger) ownedBuddy(ctx context.Context, tx economy.Tx, p *models.Player) (*models.UserCard, error) {
	if p.BuddyCardID == nil {
		return nil, nil
	}
	uc, err := tx.Inventory().Get(ctx, p.UserID, *p.BuddyCardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load buddy: %w", err)
	}
	if uc.Amount <= 0 {
		return nil, nil
	}
	return uc, nil
}

func (l *Ledger) buddyView(ctx context.Context, tx economy.Tx, uc *models.UserCard) (*BuddyView, error) {
	card := uc.Card
	if card == nil {
		c, err := tx.Cards().Get(ctx, uc.CardID)
		if err != nil {
			return nil, fmt.Errorf("failed to load buddy card: %w", err)
		}
		card = c
	}
	level := l.rules.CardLevel(uc)
	base := l.rules.Resolve(card, uc)
	return &BuddyView{
		Card:  card,
		Owned: uc,
		Level: level,
		Base:  base,
		Stats: stats.Grow(base, level, l.rules.BuddyGrowth),
	}, nil
}

// combatant is the player's side of an encounter: the buddy with growth,
// or the placeholder when there is none.
func (l *Ledger) combatant(ctx context.Context, tx economy.Tx, p *models.Player) (encounter.Combatant, error) {
	uc, err := l.ownedBuddy(ctx, tx, p)
	if err != nil {
		return encounter.Combatant{}, err
	}
	if uc == nil {
		return encounter.Combatant{Name: l.rules.PlaceholderName, Stats: l.rules.Placeholder()}, nil
	}
	view, err := l.buddyView(ctx, tx, uc)
	if err != nil {
		return encounter.Combatant{}, err
	}
	return encounter.Combatant{Name: view.Card.Name, Stats: view.Stats}, nil
}
