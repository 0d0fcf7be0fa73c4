package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserCard is the owned copies of one template by one player.
type UserCard struct {
	bun.BaseModel `bun:"table:user_cards,alias:uc"`

	ID       int64     `bun:"id,pk,autoincrement"`
	UserID   string    `bun:"user_id,notnull,unique:user_card"`
	CardID   int64     `bun:"card_id,notnull,unique:user_card"`
	Amount   int64     `bun:"amount,notnull,default:1"`
	Health   *int64    `bun:"health"`
	Attack   *int64    `bun:"attack"`
	Speed    *int64    `bun:"speed"`
	Exp      int64     `bun:"exp,notnull,default:0"`
	Obtained time.Time `bun:"obtained,notnull,default:current_timestamp"`

	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`

	Card *Card `bun:"rel:belongs-to,join:card_id=id"`
}
