// Package rewards selects rarities and card templates by weighted draw.
package rewards

import (
	"context"
	"fmt"
	"math"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
)

// Catalog provides the card pool of one rarity.
type Catalog interface {
	ListByRarity(ctx context.Context, rarity string) ([]*models.Card, error)
}

// Roll selects one rarity from table with probability proportional to its
// weight. Zero weights are never selected.
func Roll(table economy.WeightTable, rng RandomSource) (string, error) {
	var total float64
	last := -1
	for i, w := range table {
		if w.Weight < 0 || math.IsNaN(w.Weight) || math.IsInf(w.Weight, 0) {
			return "", economy.Invalid("weight for %s must be a finite non-negative number", w.Rarity)
		}
		if w.Weight > 0 {
			total += w.Weight
			last = i
		}
	}
	if last < 0 {
		return "", economy.Invalid("weight table has no positive weights")
	}

	r := rng.Float64() * total
	var upto float64
	for i, w := range table {
		if w.Weight <= 0 {
			continue
		}
		upto += w.Weight
		if r < upto || i == last {
			return w.Rarity, nil
		}
	}
	return table[last].Rarity, nil
}

// Pick selects one template from pool. Templates are weighted by their
// drop weight; a non-positive drop weight counts as 1.
func Pick(pool []*models.Card, rng RandomSource) (*models.Card, error) {
	if len(pool) == 0 {
		return nil, economy.ErrEmptyPool
	}

	var total float64
	for _, c := range pool {
		total += dropWeight(c)
	}

	r := rng.Float64() * total
	var upto float64
	for _, c := range pool {
		upto += dropWeight(c)
		if r < upto {
			return c, nil
		}
	}
	return pool[len(pool)-1], nil
}

func dropWeight(c *models.Card) float64 {
	if c.DropWeight <= 0 || math.IsNaN(c.DropWeight) || math.IsInf(c.DropWeight, 0) {
		return 1
	}
	return c.DropWeight
}

// Roller draws card templates. It never writes anything.
type Roller struct {
	rng RandomSource
}

func NewRoller(rng RandomSource) *Roller {
	if rng == nil {
		rng = DefaultSource()
	}
	return &Roller{rng: rng}
}

// Chance reports whether an event with probability p happens.
func (r *Roller) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.rng.Float64() < p
}

// Draw rolls a rarity from table and picks a template of that rarity.
func (r *Roller) Draw(ctx context.Context, catalog Catalog, table economy.WeightTable) (*models.Card, error) {
	rarity, err := Roll(table, r.rng)
	if err != nil {
		return nil, err
	}
	return r.DrawTier(ctx, catalog, rarity)
}

// DrawTier picks a template of a fixed rarity.
func (r *Roller) DrawTier(ctx context.Context, catalog Catalog, rarity string) (*models.Card, error) {
	pool, err := catalog.ListByRarity(ctx, rarity)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s pool: %w", rarity, err)
	}
	if len(pool) == 0 {
		return nil, economy.EmptyPool(rarity)
	}
	return Pick(pool, r.rng)
}
