package models

import "github.com/uptrace/bun"

// TeamSlot is one position of a player's team.
type TeamSlot struct {
	bun.BaseModel `bun:"table:team_slots,alias:ts"`

	UserID    string `bun:"user_id,pk"`
	Slot      int    `bun:"slot,pk"`
	CardID    int64  `bun:"card_id,notnull"`
	IsCaptain bool   `bun:"is_captain,notnull,default:false"`

	Card *Card `bun:"rel:belongs-to,join:card_id=id"`
}

// AppMeta stores small key/value facts about the deployment.
type AppMeta struct {
	bun.BaseModel `bun:"table:app_meta,alias:am"`

	Key   string `bun:"key,pk"`
	Value string `bun:"value,notnull,default:''"`
}
