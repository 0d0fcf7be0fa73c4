package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Card is a drawable card template. Templates sharing BaseName are tiers
// of the same character.
type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Name        string    `bun:"name,notnull"`
	BaseName    string    `bun:"base_name,notnull,unique:card_variant"`
	Rarity      string    `bun:"rarity,notnull,unique:card_variant"`
	Health      *int64    `bun:"health"`
	Attack      *int64    `bun:"attack"`
	Speed       *int64    `bun:"speed"`
	ImageURL    string    `bun:"image_url,notnull,default:''"`
	Description string    `bun:"description,notnull,default:''"`
	DropWeight  float64   `bun:"drop_weight,notnull,default:1"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// Rarities lists the tiers from lowest to highest.
var Rarities = []string{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// RarityRank returns the position of r in Rarities, or -1.
func RarityRank(r string) int {
	for i, v := range Rarities {
		if v == r {
			return i
		}
	}
	return -1
}

func ValidRarity(r string) bool {
	return RarityRank(r) >= 0
}
