package economy

import (
	"context"
	"time"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
)

// Currency names a player balance column.
type Currency string

const (
	Bloodcoins Currency = "bloodcoins"
	Noblecoins Currency = "noblecoins"
)

// Store runs units of work. Every error returned by fn rolls back all
// writes made through the Tx.
type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes repositories bound to one transaction.
type Tx interface {
	Players() PlayerStore
	Cards() CardStore
	Inventory() InventoryStore
	Quests() QuestStore
	Teams() TeamStore
	Meta() MetaStore
}

// Lookups return an error wrapping sql.ErrNoRows when nothing matches.
// Conditional writes return false when their guard did not hold.

type PlayerStore interface {
	Create(ctx context.Context, p *models.Player) (bool, error)
	Get(ctx context.Context, userID string) (*models.Player, error)
	// Lock loads the player and holds its row until the transaction ends.
	Lock(ctx context.Context, userID string) (*models.Player, error)
	Credit(ctx context.Context, userID string, cur Currency, amount int64) (int64, error)
	Debit(ctx context.Context, userID string, cur Currency, amount int64) (int64, bool, error)
	StampDaily(ctx context.Context, userID string, now, dayStart time.Time) (bool, error)
	StampDraw(ctx context.Context, userID string, now, readyAt time.Time) (bool, error)
	ClearDraw(ctx context.Context, userID string) error
	SetProgress(ctx context.Context, userID string, level, xp, xpNext int64) error
	SetBuddy(ctx context.Context, userID string, cardID *int64) error
	SetBypass(ctx context.Context, userID string, cooldown, upgrade bool) error
	SetBan(ctx context.Context, userID string, banned bool, reason string) error
	ListByFaction(ctx context.Context, faction string) ([]*models.Player, error)
}

type CardStore interface {
	Create(ctx context.Context, c *models.Card) error
	Upsert(ctx context.Context, c *models.Card) error
	Get(ctx context.Context, id int64) (*models.Card, error)
	ListByRarity(ctx context.Context, rarity string) ([]*models.Card, error)
	FindVariant(ctx context.Context, baseName, rarity string) (*models.Card, error)
	SetImage(ctx context.Context, id int64, url string) error
}

type InventoryStore interface {
	Add(ctx context.Context, userID string, cardID, amount int64) (*models.UserCard, error)
	Remove(ctx context.Context, userID string, cardID, amount int64) (bool, error)
	Get(ctx context.Context, userID string, cardID int64) (*models.UserCard, error)
	// FindByName matches the card or base name case-insensitively among
	// cards of rarity the player holds at least one copy of.
	FindByName(ctx context.Context, userID, name, rarity string) (*models.UserCard, error)
	List(ctx context.Context, userID string) ([]*models.UserCard, error)
	AddExp(ctx context.Context, userID string, cardID, exp int64) error
}

type QuestStore interface {
	Templates(ctx context.Context) ([]*models.QuestTemplate, error)
	UpsertTemplate(ctx context.Context, q *models.QuestTemplate) error
	GetTemplate(ctx context.Context, questID string) (*models.QuestTemplate, error)
	Assign(ctx context.Context, userID string) error
	Increment(ctx context.Context, userID, description string, amount int64) (int64, error)
	Claim(ctx context.Context, userID, questID string, now time.Time) (bool, error)
	Get(ctx context.Context, userID, questID string) (*models.UserQuest, error)
	List(ctx context.Context, userID, kind string) ([]*models.UserQuest, error)
	Reset(ctx context.Context, kind string) (int64, error)
}

type TeamStore interface {
	Replace(ctx context.Context, userID string, slots []*models.TeamSlot) error
	List(ctx context.Context, userID string) ([]*models.TeamSlot, error)
}

type MetaStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
