package progression

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
)

// Register creates the player and assigns every quest.
func (l *Ledger) Register(ctx context.Context, userID, username, faction string) (*models.Player, error) {
	faction = strings.ToUpper(strings.TrimSpace(faction))
	if !models.ValidFaction(faction) {
		return nil, economy.Invalid("unknown faction %q, choose one of %s", faction, strings.Join(models.Factions, ", "))
	}

	now := l.clock.Now().UTC()
	p := &models.Player{
		UserID:    userID,
		Username:  username,
		Level:     1,
		XPNext:    l.rules.XPStart,
		Faction:   faction,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		created, err := tx.Players().Create(ctx, p)
		if err != nil {
			return fmt.Errorf("failed to create player: %w", err)
		}
		if !created {
			return economy.ErrAlreadyRegistered
		}
		if err := tx.Quests().Assign(ctx, userID); err != nil {
			return fmt.Errorf("failed to assign quests: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

type Profile struct {
	Player      *models.Player
	TotalCards  int64
	UniqueCards int
	Buddy       *BuddyView
}

// Profile summarises a player for display.
func (l *Ledger) Profile(ctx context.Context, userID string) (*Profile, error) {
	var res Profile
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		p, err := economy.ReadPlayer(ctx, tx, userID)
		if err != nil {
			return err
		}
		cards, err := tx.Inventory().List(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list inventory: %w", err)
		}
		for _, uc := range cards {
			res.TotalCards += uc.Amount
		}
		res.UniqueCards = len(cards)
		res.Player = p

		uc, err := l.ownedBuddy(ctx, tx, p)
		if err != nil || uc == nil {
			return err
		}
		res.Buddy, err = l.buddyView(ctx, tx, uc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

type Cooldowns struct {
	DailyReady  bool
	DailyReset  time.Time
	DrawReady   bool
	DrawReadyAt time.Time
	Bypass      bool
}

// Remaining returns how long until t, never negative.
func (c Cooldowns) Remaining(now, t time.Time) time.Duration {
	if d := t.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Cooldowns reports when the daily and draw actions are available again.
func (l *Ledger) Cooldowns(ctx context.Context, userID string) (*Cooldowns, error) {
	var res Cooldowns
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		p, err := economy.ReadPlayer(ctx, tx, userID)
		if err != nil {
			return err
		}
		now := l.clock.Now().UTC()
		dayStart := economy.DayStart(now)

		res.DailyReady = p.LastDaily == nil || p.LastDaily.Before(dayStart)
		res.DailyReset = economy.NextDay(now)
		res.Bypass = p.BypassCooldown
		res.DrawReadyAt = now
		if p.LastDraw != nil {
			if ready := p.LastDraw.Add(l.rules.DrawCooldown); ready.After(now) {
				res.DrawReadyAt = ready
			}
		}
		res.DrawReady = p.BypassCooldown || !res.DrawReadyAt.After(now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Inventory returns the player's owned cards with their templates.
func (l *Ledger) Inventory(ctx context.Context, userID string) ([]*models.UserCard, error) {
	var out []*models.UserCard
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		if _, err := economy.ReadPlayer(ctx, tx, userID); err != nil {
			return err
		}
		cards, err := tx.Inventory().List(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list inventory: %w", err)
		}
		out = cards
		return nil
	})
	return out, err
}

// OwnedCardNames lists distinct names of cards the player holds.
func (l *Ledger) OwnedCardNames(ctx context.Context, userID string) ([]string, error) {
	var names []string
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		cards, err := tx.Inventory().List(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list inventory: %w", err)
		}
		seen := make(map[string]struct{}, len(cards))
		for _, uc := range cards {
			if uc.Card == nil {
				continue
			}
			if _, ok := seen[uc.Card.Name]; ok {
				continue
			}
			seen[uc.Card.Name] = struct{}{}
			names = append(names, uc.Card.Name)
		}
		return nil
	})
	sort.Strings(names)
	return names, err
}

// FactionMembers lists registered players of a faction.
func (l *Ledger) FactionMembers(ctx context.Context, faction string) ([]*models.Player, error) {
	faction = strings.ToUpper(strings.TrimSpace(faction))
	if faction == "" || !models.ValidFaction(faction) {
		return nil, economy.Invalid("unknown faction %q", faction)
	}
	var out []*models.Player
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		list, err := tx.Players().ListByFaction(ctx, faction)
		if err != nil {
			return fmt.Errorf("failed to list faction members: %w", err)
		}
		out = list
		return nil
	})
	return out, err
}
