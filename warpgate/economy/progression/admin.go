package progression

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
)

// Admin operations skip the ban check so moderators can act on banned
// players.

func (l *Ledger) lockAny(ctx context.Context, tx economy.Tx, userID string) error {
	_, err := tx.Players().Lock(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return economy.ErrNotRegistered
	}
	if err != nil {
		return fmt.Errorf("failed to load player: %w", err)
	}
	return nil
}

// ResetDrawCooldown makes the player's next draw available immediately.
func (l *Ledger) ResetDrawCooldown(ctx context.Context, userID string) error {
	return l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		if err := l.lockAny(ctx, tx, userID); err != nil {
			return err
		}
		if err := tx.Players().ClearDraw(ctx, userID); err != nil {
			return fmt.Errorf("failed to reset draw cooldown: %w", err)
		}
		slog.Info("Draw cooldown reset",
			slog.String("type", "audit"),
			slog.String("user_id", userID))
		return nil
	})
}

// SetBypass toggles the cooldown and upgrade bypass flags.
func (l *Ledger) SetBypass(ctx context.Context, userID string, cooldown, upgrade bool) error {
	return l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		if err := l.lockAny(ctx, tx, userID); err != nil {
			return err
		}
		if err := tx.Players().SetBypass(ctx, userID, cooldown, upgrade); err != nil {
			return fmt.Errorf("failed to set bypass flags: %w", err)
		}
		slog.Warn("Bypass flags changed",
			slog.String("type", "audit"),
			slog.String("user_id", userID),
			slog.Bool("cooldown", cooldown),
			slog.Bool("upgrade", upgrade))
		return nil
	})
}

func (l *Ledger) Ban(ctx context.Context, userID, reason string) error {
	return l.setBan(ctx, userID, true, strings.TrimSpace(reason))
}

func (l *Ledger) Unban(ctx context.Context, userID string) error {
	return l.setBan(ctx, userID, false, "")
}

func (l *Ledger) setBan(ctx context.Context, userID string, banned bool, reason string) error {
	return l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		if err := l.lockAny(ctx, tx, userID); err != nil {
			return err
		}
		if err := tx.Players().SetBan(ctx, userID, banned, reason); err != nil {
			return fmt.Errorf("failed to update ban: %w", err)
		}
		slog.Warn("Ban state changed",
			slog.String("type", "audit"),
			slog.String("user_id", userID),
			slog.Bool("banned", banned),
			slog.String("reason", reason))
		return nil
	})
}

// CreateCard adds a card template. BaseName defaults to Name.
func (l *Ledger) CreateCard(ctx context.Context, c *models.Card) (*models.Card, error) {
	if err := l.normalizeCard(c); err != nil {
		return nil, err
	}

	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		if err := tx.Cards().Create(ctx, c); err != nil {
			return fmt.Errorf("failed to create card: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (l *Ledger) normalizeCard(c *models.Card) error {
	c.Name = strings.TrimSpace(c.Name)
	c.BaseName = strings.TrimSpace(c.BaseName)
	c.Rarity = strings.ToLower(strings.TrimSpace(c.Rarity))
	if c.Name == "" {
		return economy.Invalid("card name is required")
	}
	if !models.ValidRarity(c.Rarity) {
		return economy.Invalid("unknown rarity %q for %s", c.Rarity, c.Name)
	}
	if c.BaseName == "" {
		c.BaseName = c.Name
	}
	if c.DropWeight <= 0 {
		c.DropWeight = 1
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = l.clock.Now().UTC()
	}
	return nil
}
