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
)

// UpdateQuestProgress adds amount to every unclaimed quest of the player
// tracking description. Call it once per qualifying action.
func (l *Ledger) UpdateQuestProgress(ctx context.Context, userID, description string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, economy.Invalid("quest progress amount must be positive")
	}
	var rows int64
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		if _, err := economy.LoadPlayer(ctx, tx, userID); err != nil {
			return err
		}
		n, err := tx.Quests().Increment(ctx, userID, description, amount)
		if err != nil {
			return fmt.Errorf("failed to update quest progress: %w", err)
		}
		rows = n
		return nil
	})
	return rows, err
}

type QuestReward struct {
	Quest   *models.QuestTemplate
	Coins   int64
	Card    *models.Card
	Balance int64

	Noble        int64
	NobleBalance int64
}

// ClaimQuestReward flips claimed from false to true for a completed quest
// and grants its reward in the same transaction. Only the row count of that
// conditional write decides success.
func (l *Ledger) ClaimQuestReward(ctx context.Context, userID, questID string) (*QuestReward, error) {
	var res QuestReward
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		p, err := economy.LoadPlayer(ctx, tx, userID)
		if err != nil {
			return err
		}

		tmpl, err := tx.Quests().GetTemplate(ctx, questID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return economy.Invalid("unknown quest %q", questID)
			}
			return fmt.Errorf("failed to load quest: %w", err)
		}

		ok, err := tx.Quests().Claim(ctx, userID, questID, l.clock.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to claim quest: %w", err)
		}
		if !ok {
			return l.claimFailure(ctx, tx, userID, questID)
		}

		res.Quest = tmpl
		res.Balance = p.Bloodcoins
		if tmpl.RewardCoins > 0 {
			balance, err := tx.Players().Credit(ctx, userID, economy.Bloodcoins, tmpl.RewardCoins)
			if err != nil {
				return fmt.Errorf("failed to credit quest reward: %w", err)
			}
			res.Coins = tmpl.RewardCoins
			res.Balance = balance
		}
		if tmpl.RewardNoble > 0 {
			balance, err := tx.Players().Credit(ctx, userID, economy.Noblecoins, tmpl.RewardNoble)
			if err != nil {
				return fmt.Errorf("failed to credit quest reward: %w", err)
			}
			res.Noble = tmpl.RewardNoble
			res.NobleBalance = balance
		}
		if tmpl.RewardRarity != "" {
			card, err := l.roller.DrawTier(ctx, tx.Cards(), tmpl.RewardRarity)
			if err != nil {
				return err
			}
			if _, err := tx.Inventory().Add(ctx, userID, card.ID, 1); err != nil {
				return fmt.Errorf("failed to grant quest card: %w", err)
			}
			res.Card = card
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (l *Ledger) claimFailure(ctx context.Context, tx economy.Tx, userID, questID string) error {
	uq, err := tx.Quests().Get(ctx, userID, questID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return economy.ErrNotYetClaimable
		}
		return fmt.Errorf("failed to load quest progress: %w", err)
	}
	if uq.Claimed {
		return economy.ErrAlreadyClaimed
	}
	return economy.ErrNotYetClaimable
}

// Quests lists the player's progress on quests of kind, assigning any
// template added since registration.
func (l *Ledger) Quests(ctx context.Context, userID, kind string) ([]*models.UserQuest, error) {
	if !models.ValidQuestKind(kind) {
		return nil, economy.Invalid("unknown quest kind %q", kind)
	}
	var out []*models.UserQuest
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		if _, err := economy.ReadPlayer(ctx, tx, userID); err != nil {
			return err
		}
		if err := tx.Quests().Assign(ctx, userID); err != nil {
			return fmt.Errorf("failed to assign quests: %w", err)
		}
		list, err := tx.Quests().List(ctx, userID, kind)
		if err != nil {
			return fmt.Errorf("failed to list quests: %w", err)
		}
		out = list
		return nil
	})
	return out, err
}

// PeriodKey names the rotation period of kind containing t.
func PeriodKey(kind string, t time.Time) string {
	if kind == models.QuestKindWeekly {
		return economy.WeekStart(t).Format("2006-01-02")
	}
	return economy.DayStart(t).Format("2006-01-02")
}

func rotationMetaKey(kind string) string {
	return "quests_rotated_" + kind
}

// RotateQuests resets every player's quests of kind once per period. The
// first call ever only records the current period. force resets
// regardless of the recorded period.
func (l *Ledger) RotateQuests(ctx context.Context, kind string, force bool) (bool, int64, error) {
	if !models.ValidQuestKind(kind) {
		return false, 0, economy.Invalid("unknown quest kind %q", kind)
	}
	period := PeriodKey(kind, l.clock.Now())

	var rotated bool
	var rows int64
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx economy.Tx) error {
		last, err := tx.Meta().Get(ctx, rotationMetaKey(kind))
		missing := errors.Is(err, sql.ErrNoRows)
		if err != nil && !missing {
			return fmt.Errorf("failed to read rotation state: %w", err)
		}

		if !force && (missing || last == period) {
			if missing {
				return tx.Meta().Set(ctx, rotationMetaKey(kind), period)
			}
			return nil
		}

		n, err := tx.Quests().Reset(ctx, kind)
		if err != nil {
			return fmt.Errorf("failed to reset %s quests: %w", kind, err)
		}
		rotated, rows = true, n
		return tx.Meta().Set(ctx, rotationMetaKey(kind), period)
	})
	if err != nil {
		return false, 0, err
	}
	return rotated, rows, nil
}

// QuestRotator rotates daily and weekly quests when their period changes.
type QuestRotator struct {
	ledger   *Ledger
	interval time.Duration
}

func NewQuestRotator(ledger *Ledger, interval time.Duration) *QuestRotator {
	if interval <= 0 {
		interval = time.Minute
	}
	return &QuestRotator{ledger: ledger, interval: interval}
}

// Run blocks until ctx is done.
func (r *QuestRotator) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.tick(ctx)
	for {
		select {
		case <-ticker.C:
			r.tick(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (r *QuestRotator) tick(ctx context.Context) {
	for _, kind := range []string{models.QuestKindDaily, models.QuestKindWeekly} {
		rotated, rows, err := r.ledger.RotateQuests(ctx, kind, false)
		if err != nil {
			slog.Error("Failed to rotate quests",
				slog.String("type", "sys"),
				slog.String("kind", kind),
				slog.Any("error", err))
			continue
		}
		if rotated {
			slog.Info("Quests rotated",
				slog.String("type", "sys"),
				slog.String("kind", kind),
				slog.Int64("rows", rows))
		}
	}
}
