package progression

import (
	"context"
	"fmt"
	"strings"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/stats"
)

// CardRef names an owned card by display name and rarity.
type CardRef struct {
	Name   string
	Rarity string
}

type TeamMember struct {
	Slot    int
	Captain bool
	Card    *models.Card
	Level   int64
	Stats   stats.Stats
}

// SetTeam replaces the whole team. The first card is the captain.
func (l *Ledger) SetTeam(ctx context.Context, userID string, refs []CardRef) ([]TeamMember, error) {
	if len(refs) == 0 {
		return nil, economy.Invalid("a team needs at least one card")
	}
	if len(refs) > l.rules.TeamSize {
		return nil, economy.Invalid("a team has at most %d cards", l.rules.TeamSize)
	}

	var members []TeamMember
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		if _, err := economy.LoadPlayer(ctx, tx, userID); err != nil {
			return err
		}

		slots := make([]*models.TeamSlot, 0, len(refs))
		seen := make(map[int64]struct{}, len(refs))
		for i, ref := range refs {
			uc, err := economy.FindOwned(ctx, tx, userID, ref.Name, strings.ToLower(strings.TrimSpace(ref.Rarity)))
			if err != nil {
				return err
			}
			if _, dup := seen[uc.CardID]; dup {
				return economy.Invalid("%s is already in the team", ref.Name)
			}
			seen[uc.CardID] = struct{}{}
			slots = append(slots, &models.TeamSlot{
				UserID:    userID,
				Slot:      i + 1,
				CardID:    uc.CardID,
				IsCaptain: i == 0,
			})
		}

		if err := tx.Teams().Replace(ctx, userID, slots); err != nil {
			return fmt.Errorf("failed to save team: %w", err)
		}

		var err error
		members, err = l.teamMembers(ctx, tx, userID, slots)
		return err
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

// Team returns the current team with resolved stats.
func (l *Ledger) Team(ctx context.Context, userID string) ([]TeamMember, error) {
	var members []TeamMember
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		if _, err := economy.ReadPlayer(ctx, tx, userID); err != nil {
			return err
		}
		slots, err := tx.Teams().List(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load team: %w", err)
		}
		members, err = l.teamMembers(ctx, tx, userID, slots)
		return err
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (l *Ledger) teamMembers(ctx context.Context, tx economy.Tx, userID string, slots []*models.TeamSlot) ([]TeamMember, error) {
	members := make([]TeamMember, 0, len(slots))
	for _, s := range slots {
		uc, err := tx.Inventory().Get(ctx, userID, s.CardID)
		if err != nil {
			return nil, fmt.Errorf("failed to load team card: %w", err)
		}
		card := uc.Card
		if card == nil {
			if card, err = tx.Cards().Get(ctx, s.CardID); err != nil {
				return nil, fmt.Errorf("failed to load team card: %w", err)
			}
		}
		members = append(members, TeamMember{
			Slot:    s.Slot,
			Captain: s.IsCaptain,
			Card:    card,
			Level:   l.rules.CardLevel(uc),
			Stats:   l.rules.Resolve(card, uc),
		})
	}
	return members, nil
}
