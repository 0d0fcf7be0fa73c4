package repositories

import (
	"context"

	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/uptrace/bun"
)

// TxRunner opens a transaction; *database.DB satisfies it.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error
}

// Store implements economy.Store over Postgres. Every unit of work gets
// repositories bound to one bun.Tx.
type Store struct {
	db    TxRunner
	cards *CardCache
}

func NewStore(db TxRunner, cards *CardCache) *Store {
	return &Store{db: db, cards: cards}
}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx economy.Tx) error) error {
	t := &storeTx{cardsDirty: new(bool)}
	err := s.db.RunInTx(ctx, func(ctx context.Context, btx bun.Tx) error {
		t.bind(btx, s.cards)
		return fn(ctx, t)
	})
	if err == nil && *t.cardsDirty && s.cards != nil {
		s.cards.Purge()
	}
	return err
}

type storeTx struct {
	players    PlayerRepository
	cards      *cardRepository
	inventory  UserCardRepository
	quests     QuestRepository
	teams      TeamRepository
	meta       MetaRepository
	cardsDirty *bool
}

func (t *storeTx) bind(tx bun.Tx, cache *CardCache) {
	t.players = NewPlayerRepository(tx)
	t.cards = newCardRepository(tx, cache, t.cardsDirty)
	t.inventory = NewUserCardRepository(tx)
	t.quests = NewQuestRepository(tx)
	t.teams = NewTeamRepository(tx)
	t.meta = NewMetaRepository(tx)
}

func (t *storeTx) Players() economy.PlayerStore      { return t.players }
func (t *storeTx) Cards() economy.CardStore          { return t.cards }
func (t *storeTx) Inventory() economy.InventoryStore { return t.inventory }
func (t *storeTx) Quests() economy.QuestStore        { return t.quests }
func (t *storeTx) Teams() economy.TeamStore          { return t.teams }
func (t *storeTx) Meta() economy.MetaStore           { return t.meta }
