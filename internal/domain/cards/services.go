package cards

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
)

var (
	ErrNoCards = errors.New("no cards found")
	ErrNoMatch = errors.New("no cards match your criteria")
)

// Filter narrows a collection listing. Empty fields match everything.
type Filter struct {
	Name   string
	Rarity string
}

func (f Filter) Active() bool {
	return f.Name != "" || f.Rarity != ""
}

func (f Filter) String() string {
	var parts []string
	if f.Name != "" {
		parts = append(parts, fmt.Sprintf("name: `%s`", f.Name))
	}
	if f.Rarity != "" {
		parts = append(parts, fmt.Sprintf("rarity: `%s`", f.Rarity))
	}
	return "🔍 " + strings.Join(parts, " • ")
}

type Service interface {
	GetUserCards(ctx context.Context, userID string, filter Filter) ([]Card, int, error)
	GetCatalog(ctx context.Context, filter Filter) ([]Card, int, error)
}

type service struct {
	repository Repository
	catalog    CatalogRepository
	rules      economy.Ruleset
}

func NewService(repository Repository, catalog CatalogRepository, rules economy.Ruleset) *service {
	return &service{
		repository: repository,
		catalog:    catalog,
		rules:      rules,
	}
}

// GetUserCards returns the filtered collection sorted by rarity, highest
// first, then by name, along with the page count.
func (s *service) GetUserCards(ctx context.Context, userID string, filter Filter) ([]Card, int, error) {
	userCards, err := s.repository.Inventory(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch cards: %w", err)
	}

	if len(userCards) == 0 {
		return nil, 0, ErrNoCards
	}

	name := strings.ToLower(strings.TrimSpace(filter.Name))
	rarity := strings.ToLower(strings.TrimSpace(filter.Rarity))

	cards := make([]Card, 0, len(userCards))
	for _, uc := range userCards {
		card := uc.Card
		if card == nil || uc.Amount <= 0 {
			continue
		}
		if !matchesName(card, name) {
			continue
		}
		if rarity != "" && card.Rarity != rarity {
			continue
		}

		cards = append(cards, Card{
			ID:       card.ID,
			Name:     card.Name,
			BaseName: card.BaseName,
			Rarity:   card.Rarity,
			Amount:   uc.Amount,
			Level:    s.rules.CardLevel(uc),
			Stats:    s.rules.Resolve(card, uc),
			ImageURL: card.ImageURL,
			Obtained: uc.Obtained,
		})
	}

	if len(cards) == 0 {
		return nil, 0, ErrNoMatch
	}

	sortCards(cards)
	return cards, Pages(len(cards)), nil
}

// GetCatalog lists every card template matching filter with the stats a
// fresh copy would have.
func (s *service) GetCatalog(ctx context.Context, filter Filter) ([]Card, int, error) {
	name := strings.ToLower(strings.TrimSpace(filter.Name))
	rarity := strings.ToLower(strings.TrimSpace(filter.Rarity))
	if rarity != "" && !models.ValidRarity(rarity) {
		return nil, 0, economy.Invalid("unknown rarity %q", filter.Rarity)
	}

	var (
		templates []*models.Card
		err       error
	)
	if rarity != "" {
		templates, err = s.catalog.ListByRarity(ctx, rarity)
	} else {
		templates, err = s.catalog.All(ctx)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if len(templates) == 0 {
		if rarity != "" {
			return nil, 0, ErrNoMatch
		}
		return nil, 0, ErrNoCards
	}

	cards := make([]Card, 0, len(templates))
	for _, card := range templates {
		if !matchesName(card, name) {
			continue
		}
		cards = append(cards, Card{
			ID:          card.ID,
			Name:        card.Name,
			BaseName:    card.BaseName,
			Rarity:      card.Rarity,
			Level:       s.rules.CardLevel(nil),
			Stats:       s.rules.Resolve(card, nil),
			ImageURL:    card.ImageURL,
			Description: card.Description,
		})
	}
	if len(cards) == 0 {
		return nil, 0, ErrNoMatch
	}

	sortCards(cards)
	return cards, Pages(len(cards)), nil
}

func matchesName(card *models.Card, name string) bool {
	return name == "" ||
		strings.Contains(strings.ToLower(card.Name), name) ||
		strings.Contains(strings.ToLower(card.BaseName), name)
}

// sortCards orders by rarity, highest first, then by name.
func sortCards(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		ri, rj := models.RarityRank(cards[i].Rarity), models.RarityRank(cards[j].Rarity)
		if ri != rj {
			return ri > rj
		}
		return cards[i].Name < cards[j].Name
	})
}

// Pages is the number of paginator pages needed for n cards.
func Pages(n int) int {
	return (n + config.CardsPerPage - 1) / config.CardsPerPage
}
