package cards

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ellavondegurechaff/warpgate/internal/domain/cards/mock"
	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func repoMock(t *testing.T, userCards []*models.UserCard, err error) *mock.MockRepository {
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().
		Inventory(gomock.Any(), "123").
		Return(userCards, err)
	return repo
}

func Test_service_GetUserCards(t *testing.T) {
	rules := economy.DefaultRuleset()
	boom := errors.New("connection reset")

	tests := []struct {
		name      string
		userCards []*models.UserCard
		repoErr   error
		filter    Filter
		wantIDs   []int64
		wantPages int
		wantErr   error
	}{
		{
			name:      "Success",
			userCards: mock.UserCards,
			wantIDs:   []int64{2, 3, 1},
			wantPages: 1,
		},
		{
			name:      "Filter by name matches base name",
			userCards: mock.UserCards,
			filter:    Filter{Name: "vesp"},
			wantIDs:   []int64{2, 1},
			wantPages: 1,
		},
		{
			name:      "Filter by rarity",
			userCards: mock.UserCards,
			filter:    Filter{Rarity: models.RarityCommon},
			wantIDs:   []int64{3, 1},
			wantPages: 1,
		},
		{
			name:      "Zero amount is hidden",
			userCards: mock.UserCards,
			filter:    Filter{Rarity: models.RarityLegendary},
			wantErr:   ErrNoMatch,
		},
		{
			name:    "Empty collection",
			wantErr: ErrNoCards,
		},
		{
			name:    "Repository failure",
			repoErr: boom,
			wantErr: boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(repoMock(t, tt.userCards, tt.repoErr), nil, rules)

			got, pages, err := s.GetUserCards(context.Background(), "123", tt.filter)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			ids := make([]int64, len(got))
			for i, c := range got {
				ids[i] = c.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantPages, pages)
		})
	}
}

func Test_service_GetUserCards_ResolvesStats(t *testing.T) {
	rules := economy.DefaultRuleset()
	s := NewService(repoMock(t, mock.UserCards, nil), nil, rules)

	got, _, err := s.GetUserCards(context.Background(), "123", Filter{})
	require.NoError(t, err)

	byID := make(map[int64]Card, len(got))
	for _, c := range got {
		byID[c.ID] = c
	}

	rare := rules.TierDefaults.For(models.RarityRare)
	assert.Equal(t, stats.Stats{Health: rare.Health, Attack: 25, Speed: rare.Speed}, byID[2].Stats)
	assert.Equal(t, int64(3), byID[2].Level)

	common := rules.TierDefaults.For(models.RarityCommon)
	assert.Equal(t, stats.Stats{Health: 999, Attack: common.Attack, Speed: common.Speed}, byID[3].Stats)
	assert.Equal(t, int64(3), byID[1].Amount)
}

func Test_service_GetCatalog(t *testing.T) {
	rules := economy.DefaultRuleset()
	boom := errors.New("connection reset")

	many := make([]*models.Card, 0, 9)
	for i := 1; i <= 9; i++ {
		many = append(many, &models.Card{ID: int64(i), Name: fmt.Sprintf("Card %d", i), Rarity: models.RarityCommon})
	}

	tests := []struct {
		name      string
		filter    Filter
		expect    func(repo *mock.MockCatalogRepository)
		wantIDs   []int64
		wantPages int
		wantErr   error
	}{
		{
			name: "Whole catalog",
			expect: func(repo *mock.MockCatalogRepository) {
				repo.EXPECT().All(gomock.Any()).Return(mock.Cards, nil)
			},
			wantIDs:   []int64{4, 2, 3, 1},
			wantPages: 1,
		},
		{
			name:   "Rarity filter queries the pool",
			filter: Filter{Rarity: " Common "},
			expect: func(repo *mock.MockCatalogRepository) {
				repo.EXPECT().ListByRarity(gomock.Any(), models.RarityCommon).
					Return([]*models.Card{mock.Cards[0], mock.Cards[2]}, nil)
			},
			wantIDs:   []int64{3, 1},
			wantPages: 1,
		},
		{
			name:   "Name filter matches base name",
			filter: Filter{Name: "VESP"},
			expect: func(repo *mock.MockCatalogRepository) {
				repo.EXPECT().All(gomock.Any()).Return(mock.Cards, nil)
			},
			wantIDs:   []int64{2, 1},
			wantPages: 1,
		},
		{
			name: "Pages past the page size",
			expect: func(repo *mock.MockCatalogRepository) {
				repo.EXPECT().All(gomock.Any()).Return(many, nil)
			},
			wantIDs:   []int64{1, 2, 3, 4, 5, 6, 7, 8, 9},
			wantPages: 2,
		},
		{
			name:    "Unknown rarity",
			filter:  Filter{Rarity: "mythic"},
			expect:  func(*mock.MockCatalogRepository) {},
			wantErr: economy.ErrInvalidArgument,
		},
		{
			name: "Empty catalog",
			expect: func(repo *mock.MockCatalogRepository) {
				repo.EXPECT().All(gomock.Any()).Return(nil, nil)
			},
			wantErr: ErrNoCards,
		},
		{
			name:   "Empty rarity",
			filter: Filter{Rarity: models.RarityEpic},
			expect: func(repo *mock.MockCatalogRepository) {
				repo.EXPECT().ListByRarity(gomock.Any(), models.RarityEpic).Return(nil, nil)
			},
			wantErr: ErrNoMatch,
		},
		{
			name:   "No name match",
			filter: Filter{Name: "zzz"},
			expect: func(repo *mock.MockCatalogRepository) {
				repo.EXPECT().All(gomock.Any()).Return(mock.Cards, nil)
			},
			wantErr: ErrNoMatch,
		},
		{
			name: "Repository failure",
			expect: func(repo *mock.MockCatalogRepository) {
				repo.EXPECT().All(gomock.Any()).Return(nil, boom)
			},
			wantErr: boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.NewMockCatalogRepository(gomock.NewController(t))
			tt.expect(repo)
			s := NewService(nil, repo, rules)

			got, pages, err := s.GetCatalog(context.Background(), tt.filter)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			ids := make([]int64, len(got))
			for i, c := range got {
				ids[i] = c.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantPages, pages)
		})
	}
}

func Test_service_GetCatalog_ResolvesTierStats(t *testing.T) {
	rules := economy.DefaultRuleset()
	repo := mock.NewMockCatalogRepository(gomock.NewController(t))
	repo.EXPECT().ListByRarity(gomock.Any(), models.RarityRare).Return([]*models.Card{mock.Cards[1]}, nil)

	got, _, err := NewService(nil, repo, rules).GetCatalog(context.Background(), Filter{Rarity: "rare"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	rare := rules.TierDefaults.For(models.RarityRare)
	assert.Equal(t, stats.Stats{Health: rare.Health, Attack: 25, Speed: rare.Speed}, got[0].Stats)
	assert.Equal(t, int64(1), got[0].Level)
	assert.Zero(t, got[0].Amount)
}

func TestPages(t *testing.T) {
	assert.Equal(t, 0, Pages(0))
	assert.Equal(t, 1, Pages(1))
	assert.Equal(t, 1, Pages(8))
	assert.Equal(t, 2, Pages(9))
}

func TestFilterString(t *testing.T) {
	assert.False(t, Filter{}.Active())
	f := Filter{Name: "ves", Rarity: "rare"}
	assert.True(t, f.Active())
	assert.Equal(t, "🔍 name: `ves` • rarity: `rare`", f.String())
}
