package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	lru "github.com/hashicorp/golang-lru"
	"github.com/uptrace/bun"
	"golang.org/x/sync/singleflight"
)

type CardRepository interface {
	Create(ctx context.Context, c *models.Card) error
	Upsert(ctx context.Context, c *models.Card) error
	Get(ctx context.Context, id int64) (*models.Card, error)
	ListByRarity(ctx context.Context, rarity string) ([]*models.Card, error)
	FindVariant(ctx context.Context, baseName, rarity string) (*models.Card, error)
	SetImage(ctx context.Context, id int64, url string) error
	All(ctx context.Context) ([]*models.Card, error)
}

// ContentVersionKey names the app_meta row bumped by every card write. Other
// processes compare it to drop pools loaded before the write.
const ContentVersionKey = "content_version"

// CardCache keeps per-rarity draw pools across transactions. Concurrent
// misses for the same pool share one query. Pools expire after ttl and
// empty results are never kept.
type CardCache struct {
	pools      *lru.Cache
	group      singleflight.Group
	ttl        time.Duration
	checkEvery time.Duration
	now        func() time.Time

	mu        sync.Mutex
	gen       uint64
	version   string
	checkedAt time.Time
}

type poolEntry struct {
	cards    []models.Card
	loadedAt time.Time
}

func NewCardCache(size int, ttl time.Duration) (*CardCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create card cache: %w", err)
	}
	return &CardCache{
		pools:      cache,
		ttl:        ttl,
		checkEvery: config.CardVersionCheckInterval,
		now:        time.Now,
	}, nil
}

func (c *CardCache) load(key string, fn func() ([]models.Card, error)) ([]*models.Card, error) {
	if v, ok := c.pools.Get(key); ok {
		entry := v.(poolEntry)
		if c.fresh(entry) {
			return clonePool(entry.cards), nil
		}
		c.pools.Remove(key)
	}

	// A load that started before a purge must not publish its result, so
	// the generation is part of the flight key and checked again on store.
	gen := c.generation()
	v, err, _ := c.group.Do(fmt.Sprintf("%s@%d", key, gen), func() (interface{}, error) {
		cards, err := fn()
		if err != nil {
			return nil, err
		}
		c.store(key, gen, cards)
		return cards, nil
	})
	if err != nil {
		return nil, err
	}
	return clonePool(v.([]models.Card)), nil
}

func (c *CardCache) fresh(entry poolEntry) bool {
	return c.ttl <= 0 || c.now().Sub(entry.loadedAt) < c.ttl
}

func (c *CardCache) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

func (c *CardCache) store(key string, gen uint64, cards []models.Card) {
	if len(cards) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.pools.Add(key, poolEntry{cards: cards, loadedAt: c.now()})
}

// Purge drops every cached pool, including loads still in flight.
func (c *CardCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeLocked()
}

func (c *CardCache) purgeLocked() {
	c.gen++
	c.pools.Purge()
}

// Observe records the content version read from the database and purges
// when it moved since the last check.
func (c *CardCache) Observe(version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkedAt = c.now()
	if version != c.version {
		c.version = version
		c.purgeLocked()
	}
}

func (c *CardCache) versionDue() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checkedAt.IsZero() || c.now().Sub(c.checkedAt) >= c.checkEvery
}

func clonePool(cards []models.Card) []*models.Card {
	out := make([]*models.Card, len(cards))
	for i := range cards {
		card := cards[i]
		out[i] = &card
	}
	return out
}

type cardRepository struct {
	BaseRepository
	cache *CardCache
	// dirty is set once this transaction wrote a card; pools are then read
	// straight from the database and the cache is purged after commit.
	// A nil dirty means no transaction: writes purge immediately.
	dirty *bool
}

// NewCardRepository returns a repository running outside any transaction.
func NewCardRepository(db bun.IDB, cache *CardCache) CardRepository {
	return newCardRepository(db, cache, nil)
}

func newCardRepository(db bun.IDB, cache *CardCache, dirty *bool) *cardRepository {
	return &cardRepository{BaseRepository: NewBaseRepository(db), cache: cache, dirty: dirty}
}

func (r *cardRepository) Create(ctx context.Context, c *models.Card) error {
	_, err := r.db.NewInsert().
		Model(c).
		Returning("id, created_at").
		Exec(ctx)
	if err != nil {
		return r.HandleError("create", "card", err)
	}
	return r.touched(ctx)
}

func (r *cardRepository) Upsert(ctx context.Context, c *models.Card) error {
	_, err := r.db.NewInsert().
		Model(c).
		On("CONFLICT (base_name, rarity) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("health = EXCLUDED.health").
		Set("attack = EXCLUDED.attack").
		Set("speed = EXCLUDED.speed").
		Set("image_url = CASE WHEN EXCLUDED.image_url = '' THEN c.image_url ELSE EXCLUDED.image_url END").
		Set("description = EXCLUDED.description").
		Set("drop_weight = EXCLUDED.drop_weight").
		Returning("id, created_at").
		Exec(ctx)
	if err != nil {
		return r.HandleError("upsert", "card", err)
	}
	return r.touched(ctx)
}

// touched bumps the shared content version and invalidates local pools.
func (r *cardRepository) touched(ctx context.Context) error {
	if err := bumpContentVersion(ctx, r.db); err != nil {
		return r.HandleError("bump", "content version", err)
	}
	r.invalidate()
	return nil
}

func (r *cardRepository) invalidate() {
	if r.dirty != nil {
		*r.dirty = true
	} else if r.cache != nil {
		r.cache.Purge()
	}
}

const bumpContentVersionSQL = `
INSERT INTO app_meta (key, value) VALUES (?, '1')
ON CONFLICT (key) DO UPDATE
SET value = (COALESCE(NULLIF(app_meta.value, ''), '0')::bigint + 1)::text`

func bumpContentVersion(ctx context.Context, db bun.IDB) error {
	_, err := db.ExecContext(ctx, bumpContentVersionSQL, ContentVersionKey)
	return err
}

// syncVersion reads the content version at most once per check interval.
func (r *cardRepository) syncVersion(ctx context.Context) error {
	if !r.cache.versionDue() {
		return nil
	}
	_, err, _ := r.cache.group.Do(ContentVersionKey, func() (interface{}, error) {
		version, err := NewMetaRepository(r.db).Get(ctx, ContentVersionKey)
		if err != nil && !IsNotFound(err) {
			return nil, err
		}
		r.cache.Observe(version)
		return nil, nil
	})
	return err
}

func (r *cardRepository) cached(ctx context.Context, key string, query func() ([]models.Card, error)) ([]*models.Card, error) {
	if r.bypassCache() {
		cards, err := query()
		if err != nil {
			return nil, err
		}
		return clonePool(cards), nil
	}
	if err := r.syncVersion(ctx); err != nil {
		return nil, err
	}
	return r.cache.load(key, query)
}

func (r *cardRepository) bypassCache() bool {
	return r.cache == nil || (r.dirty != nil && *r.dirty)
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	card := new(models.Card)
	err := r.db.NewSelect().
		Model(card).
		Where("c.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get", "card", err)
	}
	return card, nil
}

func (r *cardRepository) ListByRarity(ctx context.Context, rarity string) ([]*models.Card, error) {
	query := func() ([]models.Card, error) {
		var cards []models.Card
		err := r.db.NewSelect().
			Model(&cards).
			Where("c.rarity = ?", rarity).
			Order("c.id ASC").
			Scan(ctx)
		if err != nil {
			return nil, r.HandleError("list", "card pool", err)
		}
		return cards, nil
	}

	return r.cached(ctx, "pool:"+rarity, query)
}

func (r *cardRepository) FindVariant(ctx context.Context, baseName, rarity string) (*models.Card, error) {
	card := new(models.Card)
	err := r.db.NewSelect().
		Model(card).
		Where("lower(c.base_name) = ?", strings.ToLower(baseName)).
		Where("c.rarity = ?", rarity).
		Order("c.id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("find variant", "card", err)
	}
	return card, nil
}

func (r *cardRepository) SetImage(ctx context.Context, id int64, url string) error {
	res, err := r.db.NewUpdate().
		Model((*models.Card)(nil)).
		Set("image_url = ?", url).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return r.HandleError("set image", "card", err)
	}
	ok, err := affected(res)
	if err != nil {
		return r.HandleError("set image", "card", err)
	}
	if !ok {
		return r.HandleError("set image", "card", errNoRows(id))
	}
	return r.touched(ctx)
}

// All lists every template, cached like the draw pools.
func (r *cardRepository) All(ctx context.Context) ([]*models.Card, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := func() ([]models.Card, error) {
		var cards []models.Card
		err := r.db.NewSelect().
			Model(&cards).
			Order("c.base_name ASC", "c.id ASC").
			Scan(ctx)
		if err != nil {
			return nil, r.HandleError("list", "cards", err)
		}
		return cards, nil
	}
	return r.cached(ctx, "all", query)
}
