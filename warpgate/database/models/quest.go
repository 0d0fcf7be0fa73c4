package models

import (
	"time"

	"github.com/uptrace/bun"
)

// QuestTemplate defines a tracked action with a target and a reward.
type QuestTemplate struct {
	bun.BaseModel `bun:"table:quest_templates,alias:qt"`

	QuestID      string `bun:"quest_id,pk"`
	Kind         string `bun:"kind,notnull"`
	Description  string `bun:"description,notnull"`
	Target       int64  `bun:"target,notnull"`
	RewardCoins  int64  `bun:"reward_coins,notnull,default:0"`
	RewardNoble  int64  `bun:"reward_noble,notnull,default:0"`
	RewardRarity string `bun:"reward_rarity,notnull,default:''"`
	SortOrder    int    `bun:"sort_order,notnull,default:0"`
}

// UserQuest is one player's progress on one quest template.
type UserQuest struct {
	bun.BaseModel `bun:"table:user_quests,alias:uq"`

	ID        int64      `bun:"id,pk,autoincrement"`
	UserID    string     `bun:"user_id,notnull,unique:user_quest"`
	QuestID   string     `bun:"quest_id,notnull,unique:user_quest"`
	Progress  int64      `bun:"progress,notnull,default:0"`
	Completed bool       `bun:"completed,notnull,default:false"`
	Claimed   bool       `bun:"claimed,notnull,default:false"`
	ClaimedAt *time.Time `bun:"claimed_at"`
	UpdatedAt time.Time  `bun:"updated_at,notnull,default:current_timestamp"`

	Quest *QuestTemplate `bun:"rel:belongs-to,join:quest_id=quest_id"`
}

const (
	QuestKindDaily  = "daily"
	QuestKindWeekly = "weekly"
)

func ValidQuestKind(k string) bool {
	return k == QuestKindDaily || k == QuestKindWeekly
}
