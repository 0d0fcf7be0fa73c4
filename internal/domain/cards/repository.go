package cards

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

import (
	"context"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
)

// Repository loads owned cards with their templates attached. Unknown or
// banned players are reported as engine errors.
type Repository interface {
	Inventory(ctx context.Context, userID string) ([]*models.UserCard, error)
}

// CatalogRepository lists card templates regardless of ownership.
type CatalogRepository interface {
	All(ctx context.Context) ([]*models.Card, error)
	ListByRarity(ctx context.Context, rarity string) ([]*models.Card, error)
}
