// Package economytest provides an in-memory economy.Store for tests.
package economytest

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/stats"
)

type invKey struct {
	userID string
	cardID int64
}

type questKey struct {
	userID  string
	questID string
}

type state struct {
	players    map[string]*models.Player
	cards      map[int64]*models.Card
	nextCardID int64
	inventory  map[invKey]*models.UserCard
	nextUCID   int64
	templates  map[string]*models.QuestTemplate
	quests     map[questKey]*models.UserQuest
	nextUQID   int64
	teams      map[string][]*models.TeamSlot
	meta       map[string]string
}

func newState() *state {
	return &state{
		players:   map[string]*models.Player{},
		cards:     map[int64]*models.Card{},
		inventory: map[invKey]*models.UserCard{},
		templates: map[string]*models.QuestTemplate{},
		quests:    map[questKey]*models.UserQuest{},
		teams:     map[string][]*models.TeamSlot{},
		meta:      map[string]string{},
	}
}

func (s *state) clone() *state {
	c := newState()
	c.nextCardID, c.nextUCID, c.nextUQID = s.nextCardID, s.nextUCID, s.nextUQID
	for k, v := range s.players {
		p := *v
		c.players[k] = &p
	}
	for k, v := range s.cards {
		card := *v
		c.cards[k] = &card
	}
	for k, v := range s.inventory {
		uc := *v
		c.inventory[k] = &uc
	}
	for k, v := range s.templates {
		t := *v
		c.templates[k] = &t
	}
	for k, v := range s.quests {
		q := *v
		c.quests[k] = &q
	}
	for k, v := range s.teams {
		slots := make([]*models.TeamSlot, len(v))
		for i, slot := range v {
			cp := *slot
			slots[i] = &cp
		}
		c.teams[k] = slots
	}
	for k, v := range s.meta {
		c.meta[k] = v
	}
	return c
}

// Store runs transactions one at a time against a private copy of its
// state and publishes the copy only when the callback succeeds.
type Store struct {
	mu    sync.Mutex
	state *state

	races map[Write]func(ctx context.Context, tx economy.Tx) error

	// Commits counts successful transactions.
	Commits int
	// Rollbacks counts failed transactions.
	Rollbacks int
}

func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx economy.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.state.clone()
	if err := fn(ctx, &tx{st: work, store: s}); err != nil {
		s.Rollbacks++
		return err
	}
	s.state = work
	s.Commits++
	return nil
}

// Write names a guarded write that a competing transaction can race.
type Write string

const (
	WriteDebit      Write = "debit"
	WriteStampDaily Write = "stamp_daily"
	WriteStampDraw  Write = "stamp_draw"
	WriteRemove     Write = "remove"
	WriteClaim      Write = "claim"
)

// Race makes fn commit as a competing transaction right before the next
// guarded write of kind w. The racing transaction sees the effect, as a
// row-count guarded UPDATE does after the competitor commits.
func (s *Store) Race(w Write, fn func(ctx context.Context, tx economy.Tx) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.races == nil {
		s.races = map[Write]func(ctx context.Context, tx economy.Tx) error{}
	}
	s.races[w] = fn
}

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, sql.ErrNoRows)
}

// Seeding and inspection helpers. They bypass transactions.

func (s *Store) AddPlayer(p models.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Level == 0 {
		p.Level = 1
	}
	if p.XPNext == 0 {
		p.XPNext = 100
	}
	s.state.players[p.UserID] = &p
}

func (s *Store) AddCard(c models.Card) *models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		s.state.nextCardID++
		c.ID = s.state.nextCardID
	} else if c.ID > s.state.nextCardID {
		s.state.nextCardID = c.ID
	}
	if c.BaseName == "" {
		c.BaseName = c.Name
	}
	s.state.cards[c.ID] = &c
	cp := c
	return &cp
}

func (s *Store) Give(userID string, cardID, amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	(&tx{st: s.state}).addCard(userID, cardID, amount)
}

func (s *Store) AddQuestTemplate(q models.QuestTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.templates[q.QuestID] = &q
}

// Player returns a snapshot of the committed player row.
func (s *Store) Player(userID string) (models.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.players[userID]
	if !ok {
		return models.Player{}, false
	}
	return *p, true
}

// Amount returns the committed quantity of a card for a player.
func (s *Store) Amount(userID string, cardID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if uc, ok := s.state.inventory[invKey{userID, cardID}]; ok {
		return uc.Amount
	}
	return 0
}

// CardExp returns the committed experience of an owned card.
func (s *Store) CardExp(userID string, cardID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if uc, ok := s.state.inventory[invKey{userID, cardID}]; ok {
		return uc.Exp
	}
	return 0
}

// Quest returns a snapshot of committed quest progress.
func (s *Store) Quest(userID, questID string) (models.UserQuest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.state.quests[questKey{userID, questID}]
	if !ok {
		return models.UserQuest{}, false
	}
	return *q, true
}

func (s *Store) Meta(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.state.meta[key]
	return v, ok
}

type tx struct {
	st    *state
	store *Store
}

// race applies a pending competing write to both the committed state and
// this transaction's copy. Callers hold the store lock.
func (t *tx) race(ctx context.Context, w Write) error {
	if t.store == nil {
		return nil
	}
	fn, ok := t.store.races[w]
	if !ok {
		return nil
	}
	delete(t.store.races, w)
	if err := fn(ctx, &tx{st: t.store.state}); err != nil {
		return err
	}
	return fn(ctx, &tx{st: t.st})
}

func (t *tx) Players() economy.PlayerStore      { return playerStore{t} }
func (t *tx) Cards() economy.CardStore          { return cardStore{t} }
func (t *tx) Inventory() economy.InventoryStore { return inventoryStore{t} }
func (t *tx) Quests() economy.QuestStore        { return questStore{t} }
func (t *tx) Teams() economy.TeamStore          { return teamStore{t} }
func (t *tx) Meta() economy.MetaStore           { return metaStore{t} }

func (t *tx) addCard(userID string, cardID, amount int64) *models.UserCard {
	k := invKey{userID, cardID}
	uc, ok := t.st.inventory[k]
	if !ok {
		t.st.nextUCID++
		uc = &models.UserCard{ID: t.st.nextUCID, UserID: userID, CardID: cardID, Obtained: time.Now()}
		t.st.inventory[k] = uc
	}
	uc.Amount += amount
	uc.UpdatedAt = time.Now()
	return uc
}

func (t *tx) withCard(uc *models.UserCard) *models.UserCard {
	cp := *uc
	if c, ok := t.st.cards[uc.CardID]; ok {
		card := *c
		cp.Card = &card
	}
	return &cp
}

type playerStore struct{ t *tx }

func (s playerStore) player(userID string) (*models.Player, error) {
	p, ok := s.t.st.players[userID]
	if !ok {
		return nil, notFound("player " + userID)
	}
	return p, nil
}

func (s playerStore) Create(_ context.Context, p *models.Player) (bool, error) {
	if _, ok := s.t.st.players[p.UserID]; ok {
		return false, nil
	}
	cp := *p
	s.t.st.players[p.UserID] = &cp
	return true, nil
}

func (s playerStore) Get(_ context.Context, userID string) (*models.Player, error) {
	p, err := s.player(userID)
	if err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

func (s playerStore) Lock(ctx context.Context, userID string) (*models.Player, error) {
	return s.Get(ctx, userID)
}

func balance(p *models.Player, cur economy.Currency) *int64 {
	if cur == economy.Noblecoins {
		return &p.Noblecoins
	}
	return &p.Bloodcoins
}

func (s playerStore) Credit(_ context.Context, userID string, cur economy.Currency, amount int64) (int64, error) {
	p, err := s.player(userID)
	if err != nil {
		return 0, err
	}
	b := balance(p, cur)
	*b += amount
	return *b, nil
}

func (s playerStore) Debit(ctx context.Context, userID string, cur economy.Currency, amount int64) (int64, bool, error) {
	if err := s.t.race(ctx, WriteDebit); err != nil {
		return 0, false, err
	}
	p, err := s.player(userID)
	if err != nil {
		return 0, false, err
	}
	b := balance(p, cur)
	if *b < amount {
		return *b, false, nil
	}
	*b -= amount
	return *b, true, nil
}

func (s playerStore) StampDaily(ctx context.Context, userID string, now, dayStart time.Time) (bool, error) {
	if err := s.t.race(ctx, WriteStampDaily); err != nil {
		return false, err
	}
	p, ok := s.t.st.players[userID]
	if !ok || (p.LastDaily != nil && !p.LastDaily.Before(dayStart)) {
		return false, nil
	}
	n := now
	p.LastDaily = &n
	return true, nil
}

func (s playerStore) StampDraw(ctx context.Context, userID string, now, readyAt time.Time) (bool, error) {
	if err := s.t.race(ctx, WriteStampDraw); err != nil {
		return false, err
	}
	p, ok := s.t.st.players[userID]
	if !ok || (p.LastDraw != nil && p.LastDraw.After(readyAt)) {
		return false, nil
	}
	n := now
	p.LastDraw = &n
	return true, nil
}

func (s playerStore) ClearDraw(_ context.Context, userID string) error {
	p, err := s.player(userID)
	if err != nil {
		return err
	}
	p.LastDraw = nil
	return nil
}

func (s playerStore) SetProgress(_ context.Context, userID string, level, xp, xpNext int64) error {
	p, err := s.player(userID)
	if err != nil {
		return err
	}
	p.Level, p.XP, p.XPNext = level, xp, xpNext
	return nil
}

func (s playerStore) SetBuddy(_ context.Context, userID string, cardID *int64) error {
	p, err := s.player(userID)
	if err != nil {
		return err
	}
	if cardID == nil {
		p.BuddyCardID = nil
		return nil
	}
	id := *cardID
	p.BuddyCardID = &id
	return nil
}

func (s playerStore) SetBypass(_ context.Context, userID string, cooldown, upgrade bool) error {
	p, err := s.player(userID)
	if err != nil {
		return err
	}
	p.BypassCooldown, p.BypassUpgrade = cooldown, upgrade
	return nil
}

func (s playerStore) SetBan(_ context.Context, userID string, banned bool, reason string) error {
	p, err := s.player(userID)
	if err != nil {
		return err
	}
	p.Banned, p.BanReason = banned, reason
	return nil
}

func (s playerStore) ListByFaction(_ context.Context, faction string) ([]*models.Player, error) {
	var out []*models.Player
	for _, p := range s.t.st.players {
		if p.Faction == faction {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type cardStore struct{ t *tx }

func (s cardStore) Create(_ context.Context, c *models.Card) error {
	for _, existing := range s.t.st.cards {
		if existing.BaseName == c.BaseName && existing.Rarity == c.Rarity {
			return fmt.Errorf("card %s (%s) already exists", c.BaseName, c.Rarity)
		}
	}
	s.t.st.nextCardID++
	c.ID = s.t.st.nextCardID
	cp := *c
	s.t.st.cards[c.ID] = &cp
	return nil
}

func (s cardStore) Upsert(ctx context.Context, c *models.Card) error {
	for id, existing := range s.t.st.cards {
		if existing.BaseName == c.BaseName && existing.Rarity == c.Rarity {
			c.ID = id
			cp := *c
			s.t.st.cards[id] = &cp
			return nil
		}
	}
	return s.Create(ctx, c)
}

func (s cardStore) Get(_ context.Context, id int64) (*models.Card, error) {
	c, ok := s.t.st.cards[id]
	if !ok {
		return nil, notFound(fmt.Sprintf("card %d", id))
	}
	cp := *c
	return &cp, nil
}

func (s cardStore) ListByRarity(_ context.Context, rarity string) ([]*models.Card, error) {
	var out []*models.Card
	for _, c := range s.t.st.cards {
		if c.Rarity == rarity {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s cardStore) FindVariant(_ context.Context, baseName, rarity string) (*models.Card, error) {
	for _, c := range s.t.st.cards {
		if strings.EqualFold(c.BaseName, baseName) && c.Rarity == rarity {
			cp := *c
			return &cp, nil
		}
	}
	return nil, notFound("card variant " + baseName)
}

func (s cardStore) SetImage(_ context.Context, id int64, url string) error {
	c, ok := s.t.st.cards[id]
	if !ok {
		return notFound(fmt.Sprintf("card %d", id))
	}
	c.ImageURL = url
	return nil
}

type inventoryStore struct{ t *tx }

func (s inventoryStore) Add(_ context.Context, userID string, cardID, amount int64) (*models.UserCard, error) {
	if _, ok := s.t.st.cards[cardID]; !ok {
		return nil, fmt.Errorf("card %d does not exist", cardID)
	}
	return s.t.withCard(s.t.addCard(userID, cardID, amount)), nil
}

func (s inventoryStore) Remove(ctx context.Context, userID string, cardID, amount int64) (bool, error) {
	if err := s.t.race(ctx, WriteRemove); err != nil {
		return false, err
	}
	uc, ok := s.t.st.inventory[invKey{userID, cardID}]
	if !ok || uc.Amount < amount {
		return false, nil
	}
	uc.Amount -= amount
	return true, nil
}

func (s inventoryStore) Get(_ context.Context, userID string, cardID int64) (*models.UserCard, error) {
	uc, ok := s.t.st.inventory[invKey{userID, cardID}]
	if !ok {
		return nil, notFound("user card")
	}
	return s.t.withCard(uc), nil
}

func (s inventoryStore) FindByName(_ context.Context, userID, name, rarity string) (*models.UserCard, error) {
	var best *models.UserCard
	for k, uc := range s.t.st.inventory {
		if k.userID != userID || uc.Amount <= 0 {
			continue
		}
		c := s.t.st.cards[k.cardID]
		if c == nil || c.Rarity != rarity {
			continue
		}
		if !strings.EqualFold(c.Name, name) && !strings.EqualFold(c.BaseName, name) {
			continue
		}
		if best == nil || uc.CardID < best.CardID {
			best = uc
		}
	}
	if best == nil {
		return nil, notFound("owned card " + name)
	}
	return s.t.withCard(best), nil
}

func (s inventoryStore) List(_ context.Context, userID string) ([]*models.UserCard, error) {
	var out []*models.UserCard
	for k, uc := range s.t.st.inventory {
		if k.userID == userID && uc.Amount > 0 {
			out = append(out, s.t.withCard(uc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CardID < out[j].CardID })
	return out, nil
}

func (s inventoryStore) AddExp(_ context.Context, userID string, cardID, exp int64) error {
	uc, ok := s.t.st.inventory[invKey{userID, cardID}]
	if !ok {
		return nil
	}
	uc.Exp += exp
	return nil
}

type questStore struct{ t *tx }

func (s questStore) Templates(_ context.Context) ([]*models.QuestTemplate, error) {
	var out []*models.QuestTemplate
	for _, q := range s.t.st.templates {
		cp := *q
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestID < out[j].QuestID })
	return out, nil
}

func (s questStore) UpsertTemplate(_ context.Context, q *models.QuestTemplate) error {
	cp := *q
	s.t.st.templates[q.QuestID] = &cp
	return nil
}

func (s questStore) GetTemplate(_ context.Context, questID string) (*models.QuestTemplate, error) {
	q, ok := s.t.st.templates[questID]
	if !ok {
		return nil, notFound("quest " + questID)
	}
	cp := *q
	return &cp, nil
}

func (s questStore) Assign(_ context.Context, userID string) error {
	for id := range s.t.st.templates {
		k := questKey{userID, id}
		if _, ok := s.t.st.quests[k]; ok {
			continue
		}
		s.t.st.nextUQID++
		s.t.st.quests[k] = &models.UserQuest{ID: s.t.st.nextUQID, UserID: userID, QuestID: id}
	}
	return nil
}

func (s questStore) Increment(_ context.Context, userID, description string, amount int64) (int64, error) {
	var n int64
	for k, uq := range s.t.st.quests {
		if k.userID != userID || uq.Claimed {
			continue
		}
		tmpl := s.t.st.templates[k.questID]
		if tmpl == nil || tmpl.Description != description {
			continue
		}
		uq.Progress += amount
		uq.Completed = uq.Progress >= tmpl.Target
		n++
	}
	return n, nil
}

func (s questStore) Claim(ctx context.Context, userID, questID string, now time.Time) (bool, error) {
	if err := s.t.race(ctx, WriteClaim); err != nil {
		return false, err
	}
	uq, ok := s.t.st.quests[questKey{userID, questID}]
	if !ok || !uq.Completed || uq.Claimed {
		return false, nil
	}
	uq.Claimed = true
	n := now
	uq.ClaimedAt = &n
	return true, nil
}

func (s questStore) Get(_ context.Context, userID, questID string) (*models.UserQuest, error) {
	uq, ok := s.t.st.quests[questKey{userID, questID}]
	if !ok {
		return nil, notFound("user quest " + questID)
	}
	cp := *uq
	if tmpl, ok := s.t.st.templates[questID]; ok {
		t := *tmpl
		cp.Quest = &t
	}
	return &cp, nil
}

func (s questStore) List(ctx context.Context, userID, kind string) ([]*models.UserQuest, error) {
	var out []*models.UserQuest
	for k := range s.t.st.quests {
		if k.userID != userID {
			continue
		}
		tmpl := s.t.st.templates[k.questID]
		if tmpl == nil || tmpl.Kind != kind {
			continue
		}
		uq, _ := s.Get(ctx, userID, k.questID)
		out = append(out, uq)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quest.SortOrder != out[j].Quest.SortOrder {
			return out[i].Quest.SortOrder < out[j].Quest.SortOrder
		}
		return out[i].QuestID < out[j].QuestID
	})
	return out, nil
}

func (s questStore) Reset(_ context.Context, kind string) (int64, error) {
	var n int64
	for k, uq := range s.t.st.quests {
		tmpl := s.t.st.templates[k.questID]
		if tmpl == nil || tmpl.Kind != kind {
			continue
		}
		uq.Progress, uq.Completed, uq.Claimed, uq.ClaimedAt = 0, false, false, nil
		n++
	}
	return n, nil
}

type teamStore struct{ t *tx }

func (s teamStore) Replace(_ context.Context, userID string, slots []*models.TeamSlot) error {
	out := make([]*models.TeamSlot, len(slots))
	for i, slot := range slots {
		cp := *slot
		cp.Card = nil
		out[i] = &cp
	}
	s.t.st.teams[userID] = out
	return nil
}

func (s teamStore) List(_ context.Context, userID string) ([]*models.TeamSlot, error) {
	var out []*models.TeamSlot
	for _, slot := range s.t.st.teams[userID] {
		cp := *slot
		if c, ok := s.t.st.cards[slot.CardID]; ok {
			card := *c
			cp.Card = &card
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

type metaStore struct{ t *tx }

func (s metaStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.t.st.meta[key]
	if !ok {
		return "", notFound("meta " + key)
	}
	return v, nil
}

func (s metaStore) Set(_ context.Context, key, value string) error {
	s.t.st.meta[key] = value
	return nil
}

// SetOwnedStats sets per-instance stat overrides on an owned card. tx must
// come from a Store of this package.
func SetOwnedStats(etx economy.Tx, userID string, cardID int64, o stats.Overrides) error {
	t, ok := etx.(*tx)
	if !ok {
		return fmt.Errorf("economytest: foreign transaction %T", etx)
	}
	uc, found := t.st.inventory[invKey{userID, cardID}]
	if !found {
		return notFound("user card")
	}
	uc.Health, uc.Attack, uc.Speed = o.Health, o.Attack, o.Speed
	return nil
}
