package repositories

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type fakeRunner struct {
	calls int
}

func (f *fakeRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	f.calls++
	return fn(ctx, bun.Tx{})
}

func TestCardCacheSharesLoads(t *testing.T) {
	cache, err := NewCardCache(8, time.Minute)
	require.NoError(t, err)

	var loads int32
	load := func() ([]models.Card, error) {
		atomic.AddInt32(&loads, 1)
		return []models.Card{{ID: 1, Name: "Ember", Rarity: models.RarityCommon}}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cards, err := cache.load("pool:common", load)
			assert.NoError(t, err)
			assert.Len(t, cards, 1)
		}()
	}
	wg.Wait()

	_, err = cache.load("pool:common", load)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))

	cache.Purge()
	_, err = cache.load("pool:common", load)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
}

func TestCardCacheReturnsCopies(t *testing.T) {
	cache, err := NewCardCache(8, time.Minute)
	require.NoError(t, err)

	load := func() ([]models.Card, error) {
		return []models.Card{{ID: 1, Name: "Ember"}}, nil
	}
	first, err := cache.load("all", load)
	require.NoError(t, err)
	first[0].Name = "changed"

	second, err := cache.load("all", load)
	require.NoError(t, err)
	assert.Equal(t, "Ember", second[0].Name)
}

func TestCardCacheDoesNotKeepFailures(t *testing.T) {
	cache, err := NewCardCache(8, time.Minute)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = cache.load("pool:rare", func() ([]models.Card, error) { return nil, boom })
	require.ErrorIs(t, err, boom)

	cards, err := cache.load("pool:rare", func() ([]models.Card, error) {
		return []models.Card{{ID: 2}}, nil
	})
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestStorePurgesCardsAfterCommit(t *testing.T) {
	cache, err := NewCardCache(8, time.Minute)
	require.NoError(t, err)
	_, err = cache.load("pool:common", func() ([]models.Card, error) { return []models.Card{{ID: 1}}, nil })
	require.NoError(t, err)

	store := NewStore(&fakeRunner{}, cache)

	// A failed unit of work keeps the cache.
	err = store.RunInTx(context.Background(), func(ctx context.Context, tx economy.Tx) error {
		*tx.(*storeTx).cardsDirty = true
		return errors.New("rollback")
	})
	require.Error(t, err)
	assert.Equal(t, 1, cache.pools.Len())

	err = store.RunInTx(context.Background(), func(ctx context.Context, tx economy.Tx) error {
		*tx.(*storeTx).cardsDirty = true
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, cache.pools.Len())
}

func TestStoreBindsEveryRepository(t *testing.T) {
	runner := &fakeRunner{}
	store := NewStore(runner, nil)

	err := store.RunInTx(context.Background(), func(ctx context.Context, tx economy.Tx) error {
		assert.NotNil(t, tx.Players())
		assert.NotNil(t, tx.Cards())
		assert.NotNil(t, tx.Inventory())
		assert.NotNil(t, tx.Quests())
		assert.NotNil(t, tx.Teams())
		assert.NotNil(t, tx.Meta())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, runner.calls)
}

func TestRepositoryErrorKeepsNoRows(t *testing.T) {
	base := NewBaseRepository(nil)
	err := base.HandleError("get", "player", errNoRows("42"))

	var repoErr *RepositoryError
	require.ErrorAs(t, err, &repoErr)
	assert.Equal(t, "get", repoErr.Operation)
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, base.HandleError("get", "player", nil))
}

func TestCardRepositoryWriteInvalidation(t *testing.T) {
	cache, err := NewCardCache(8, time.Minute)
	require.NoError(t, err)
	load := func() ([]models.Card, error) { return []models.Card{{ID: 1}}, nil }

	_, err = cache.load("all", load)
	require.NoError(t, err)

	// Inside a transaction the cache is only bypassed until commit.
	dirty := new(bool)
	inTx := newCardRepository(bun.Tx{}, cache, dirty)
	assert.False(t, inTx.bypassCache())
	inTx.invalidate()
	assert.True(t, *dirty)
	assert.True(t, inTx.bypassCache())
	assert.Equal(t, 1, cache.pools.Len())

	// Outside one, a write purges right away.
	standalone := newCardRepository(bun.Tx{}, cache, nil)
	standalone.invalidate()
	assert.False(t, standalone.bypassCache())
	assert.Equal(t, 0, cache.pools.Len())
}

func TestCardCacheSkipsEmptyPools(t *testing.T) {
	cache, err := NewCardCache(8, time.Minute)
	require.NoError(t, err)

	cards, err := cache.load("pool:rare", func() ([]models.Card, error) { return nil, nil })
	require.NoError(t, err)
	assert.Empty(t, cards)

	cards, err = cache.load("pool:rare", func() ([]models.Card, error) {
		return []models.Card{{ID: 7, Rarity: models.RarityRare}}, nil
	})
	require.NoError(t, err)
	assert.Len(t, cards, 1, "a seeded pool must replace an earlier empty read")
}

func TestCardCacheExpiresPools(t *testing.T) {
	cache, err := NewCardCache(8, time.Minute)
	require.NoError(t, err)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	var loads int32
	load := func() ([]models.Card, error) {
		atomic.AddInt32(&loads, 1)
		return []models.Card{{ID: 1}}, nil
	}

	_, err = cache.load("all", load)
	require.NoError(t, err)
	now = now.Add(59 * time.Second)
	_, err = cache.load("all", load)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))

	now = now.Add(time.Second)
	_, err = cache.load("all", load)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
}

func TestCardCachePurgeDropsInflightLoad(t *testing.T) {
	cache, err := NewCardCache(8, time.Minute)
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		cards, err := cache.load("pool:common", func() ([]models.Card, error) {
			close(started)
			<-release
			return []models.Card{{ID: 1, Name: "stale"}}, nil
		})
		assert.NoError(t, err)
		assert.Len(t, cards, 1)
	}()

	<-started
	cache.Purge()
	close(release)
	<-done

	assert.Equal(t, 0, cache.pools.Len())
	cards, err := cache.load("pool:common", func() ([]models.Card, error) {
		return []models.Card{{ID: 1, Name: "fresh"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", cards[0].Name)
}

func TestCardCacheObserveVersion(t *testing.T) {
	cache, err := NewCardCache(8, time.Minute)
	require.NoError(t, err)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	load := func() ([]models.Card, error) { return []models.Card{{ID: 1}}, nil }

	assert.True(t, cache.versionDue())
	cache.Observe("3")
	assert.False(t, cache.versionDue())

	_, err = cache.load("all", load)
	require.NoError(t, err)

	now = now.Add(cache.checkEvery)
	assert.True(t, cache.versionDue())
	cache.Observe("3")
	assert.Equal(t, 1, cache.pools.Len())

	// Another process seeded or uploaded content.
	cache.Observe("4")
	assert.Equal(t, 0, cache.pools.Len())
}
