package economy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/stats"
)

// LoadPlayer locks the player's row for the rest of tx and rejects
// unregistered and banned players.
func LoadPlayer(ctx context.Context, tx Tx, userID string) (*models.Player, error) {
	p, err := tx.Players().Lock(ctx, userID)
	return checkPlayer(p, err)
}

// ReadPlayer is LoadPlayer without the row lock, for read-only views.
func ReadPlayer(ctx context.Context, tx Tx, userID string) (*models.Player, error) {
	p, err := tx.Players().Get(ctx, userID)
	return checkPlayer(p, err)
}

func checkPlayer(p *models.Player, err error) (*models.Player, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotRegistered
		}
		return nil, fmt.Errorf("failed to load player: %w", err)
	}
	if p.Banned {
		return nil, Banned(p.BanReason)
	}
	return p, nil
}

// FindOwned resolves an owned card by name and rarity.
func FindOwned(ctx context.Context, tx Tx, userID, name, rarity string) (*models.UserCard, error) {
	uc, err := tx.Inventory().FindByName(ctx, userID, name, rarity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotOwned(name, rarity)
		}
		return nil, fmt.Errorf("failed to find owned card: %w", err)
	}
	if uc.Amount <= 0 {
		return nil, NotOwned(name, rarity)
	}
	return uc, nil
}

// NotOwned names the card the player asked for.
func NotOwned(name, rarity string) *Error {
	return &Error{Code: CodeNotOwned, Message: fmt.Sprintf("you do not own %s (%s)", name, rarity)}
}

// BumpQuests increments every listed tracked action by amount.
func BumpQuests(ctx context.Context, tx Tx, userID string, amount int64, actions ...string) error {
	if amount <= 0 {
		return nil
	}
	for _, action := range actions {
		if _, err := tx.Quests().Increment(ctx, userID, action, amount); err != nil {
			return fmt.Errorf("failed to update quest %q: %w", action, err)
		}
	}
	return nil
}

// Resolve returns the effective stats of a template, optionally owned.
func (r Ruleset) Resolve(c *models.Card, uc *models.UserCard) stats.Stats {
	template := stats.Overrides{Health: c.Health, Attack: c.Attack, Speed: c.Speed}
	var instance stats.Overrides
	if uc != nil {
		instance = stats.Overrides{Health: uc.Health, Attack: uc.Attack, Speed: uc.Speed}
	}
	return stats.Resolve(c.Rarity, template, instance, r.TierDefaults)
}

// CardLevel derives the display level of an owned card.
func (r Ruleset) CardLevel(uc *models.UserCard) int64 {
	if uc == nil {
		return 1
	}
	return stats.Level(uc.Exp, r.CardLevelDivisor)
}
