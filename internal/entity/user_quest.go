package entity

import (
	"database/sql"
	"time"
)

type UserQuest struct {
	Base
	UserID          string `gorm:"index"`
	QuestID         string `gorm:"index"`
	Progress        int64
	IsCompleted     bool
	StartedAt       time.Time
	CompletedAt     sql.NullTime
	IsPerfect       bool
	RewardClaimed   bool
	RewardClaimedAt sql.NullTime
}
