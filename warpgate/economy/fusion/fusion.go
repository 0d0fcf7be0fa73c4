// Package fusion converts duplicate copies plus currency into the next tier
// of the same character.
package fusion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/stats"
)

type Engine struct {
	store economy.Store
	rules economy.Ruleset
}

func NewEngine(store economy.Store, rules economy.Ruleset) *Engine {
	return &Engine{store: store, rules: rules}
}

// Result reports a completed upgrade.
type Result struct {
	Source *models.Card
	Target *models.Card
	Rule   economy.UpgradeRule

	Spent          int64
	CopiesConsumed int64
	Balance        int64
	SourceLeft     int64
	TargetOwned    int64
	Bypassed       bool

	Before stats.Stats
	After  stats.Stats
	Delta  stats.Stats
}

// Preview describes what an upgrade would need, without changing anything.
type Preview struct {
	Source  *models.Card
	Rule    economy.UpgradeRule
	Owned   int64
	Balance int64
	Target  *models.Card
	Ready   bool
}

// Upgrade fuses rule.Copies copies of (name, rarity) into one card of the
// next tier. Every check runs before the first write; any failure leaves
// balance and inventory untouched.
func (e *Engine) Upgrade(ctx context.Context, userID, name, rarity string) (*Result, error) {
	rarity = strings.ToLower(strings.TrimSpace(rarity))

	var res Result
	err := e.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		p, err := economy.LoadPlayer(ctx, tx, userID)
		if err != nil {
			return err
		}

		owned, source, err := e.resolveOwned(ctx, tx, userID, name, rarity)
		if err != nil {
			return err
		}

		rule, ok := e.rules.UpgradeRuleFor(source.Rarity)
		if !ok {
			return economy.ErrMaxTierReached
		}

		bypass := p.BypassUpgrade
		if !bypass {
			if owned.Amount < rule.Copies {
				return economy.ErrInsufficientCards
			}
			if p.Bloodcoins < rule.Cost {
				return economy.ErrInsufficientFunds
			}
		}

		target, err := e.resolveTarget(ctx, tx, source, rule)
		if err != nil {
			return err
		}

		res.Balance = p.Bloodcoins
		res.SourceLeft = owned.Amount
		if bypass {
			slog.Warn("Upgrade cost bypassed",
				slog.String("type", "audit"),
				slog.String("user_id", userID),
				slog.Int64("source_card", source.ID),
				slog.Int64("target_card", target.ID))
		} else {
			if err := e.consume(ctx, tx, userID, source, rule, &res); err != nil {
				return err
			}
		}

		targetOwned, err := tx.Inventory().Add(ctx, userID, target.ID, 1)
		if err != nil {
			return fmt.Errorf("failed to add upgraded card: %w", err)
		}

		if err := economy.BumpQuests(ctx, tx, userID, 1, economy.UpgradeActions...); err != nil {
			return err
		}
		if err := economy.BumpQuests(ctx, tx, userID, res.Spent, economy.QuestSpendCurrency); err != nil {
			return err
		}

		res.Source = source
		res.Target = target
		res.Rule = rule
		res.Bypassed = bypass
		res.TargetOwned = targetOwned.Amount
		res.Before = e.rules.Resolve(source, owned)
		res.After = e.rules.Resolve(target, targetOwned)
		res.Delta = res.After.Sub(res.Before)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (e *Engine) consume(ctx context.Context, tx economy.Tx, userID string, source *models.Card, rule economy.UpgradeRule, res *Result) error {
	balance, ok, err := tx.Players().Debit(ctx, userID, economy.Bloodcoins, rule.Cost)
	if err != nil {
		return fmt.Errorf("failed to debit upgrade cost: %w", err)
	}
	if !ok {
		return economy.ErrInsufficientFunds
	}

	removed, err := tx.Inventory().Remove(ctx, userID, source.ID, rule.Copies)
	if err != nil {
		return fmt.Errorf("failed to consume copies: %w", err)
	}
	if !removed {
		return economy.ErrInsufficientCards
	}

	res.Spent = rule.Cost
	res.CopiesConsumed = rule.Copies
	res.Balance = balance
	res.SourceLeft -= rule.Copies
	return nil
}

func (e *Engine) resolveOwned(ctx context.Context, tx economy.Tx, userID, name, rarity string) (*models.UserCard, *models.Card, error) {
	owned, err := economy.FindOwned(ctx, tx, userID, name, rarity)
	if err != nil {
		return nil, nil, err
	}
	source := owned.Card
	if source == nil {
		if source, err = tx.Cards().Get(ctx, owned.CardID); err != nil {
			return nil, nil, fmt.Errorf("failed to load card: %w", err)
		}
	}
	return owned, source, nil
}

func (e *Engine) resolveTarget(ctx context.Context, tx economy.Tx, source *models.Card, rule economy.UpgradeRule) (*models.Card, error) {
	target, err := tx.Cards().FindVariant(ctx, source.BaseName, rule.To)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, economy.ErrNoUpgradedVariant
		}
		return nil, fmt.Errorf("failed to find upgraded card: %w", err)
	}
	return target, nil
}

// Preview reports the rule and readiness of an upgrade.
func (e *Engine) Preview(ctx context.Context, userID, name, rarity string) (*Preview, error) {
	rarity = strings.ToLower(strings.TrimSpace(rarity))

	var res Preview
	err := e.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		p, err := economy.ReadPlayer(ctx, tx, userID)
		if err != nil {
			return err
		}
		owned, source, err := e.resolveOwned(ctx, tx, userID, name, rarity)
		if err != nil {
			return err
		}
		rule, ok := e.rules.UpgradeRuleFor(source.Rarity)
		if !ok {
			return economy.ErrMaxTierReached
		}
		target, err := e.resolveTarget(ctx, tx, source, rule)
		if err != nil && !errors.Is(err, economy.ErrNoUpgradedVariant) {
			return err
		}

		res = Preview{
			Source:  source,
			Rule:    rule,
			Owned:   owned.Amount,
			Balance: p.Bloodcoins,
			Target:  target,
			Ready: target != nil &&
				(p.BypassUpgrade || (owned.Amount >= rule.Copies && p.Bloodcoins >= rule.Cost)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
