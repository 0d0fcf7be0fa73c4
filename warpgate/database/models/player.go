package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Player is a registered game participant keyed by platform user id.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	UserID     string `bun:"user_id,pk"`
	Username   string `bun:"username,notnull,default:''"`
	Bloodcoins int64  `bun:"bloodcoins,notnull,default:0"`
	Noblecoins int64  `bun:"noblecoins,notnull,default:0"`
	Level      int64  `bun:"level,notnull,default:1"`
	XP         int64  `bun:"xp,notnull,default:0"`
	XPNext     int64  `bun:"xp_next,notnull,default:100"`
	Faction    string `bun:"faction,notnull,default:''"`

	// Moderation
	Banned    bool   `bun:"banned,notnull,default:false"`
	BanReason string `bun:"ban_reason,notnull,default:''"`

	// Admin/testing affordances, never set implicitly
	BypassCooldown bool `bun:"bypass_cooldown,notnull,default:false"`
	BypassUpgrade  bool `bun:"bypass_upgrade,notnull,default:false"`

	BuddyCardID *int64 `bun:"buddy_card_id"`

	// Cooldown state
	LastDaily *time.Time `bun:"last_daily"`
	LastDraw  *time.Time `bun:"last_draw"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

const (
	FactionAshen   = "ASHEN"
	FactionVerdant = "VERDANT"
	FactionAzure   = "AZURE"
)

var Factions = []string{FactionAshen, FactionVerdant, FactionAzure}

// ValidFaction reports whether f is empty or one of Factions.
func ValidFaction(f string) bool {
	if f == "" {
		return true
	}
	for _, v := range Factions {
		if v == f {
			return true
		}
	}
	return false
}
