package entity

import (
	"database/sql"

	"github.com/questx-lab/questboard/pkg/enum"
)

type QuestType string

var (
	QuestDaily   = enum.New(QuestType("daily"))
	QuestWeekly  = enum.New(QuestType("weekly"))
	QuestMonthly = enum.New(QuestType("monthly"))
	QuestSpecial = enum.New(QuestType("special"))
)

type Difficulty string

var (
	DifficultyEasy   = enum.New(Difficulty("easy"))
	DifficultyMedium = enum.New(Difficulty("medium"))
	DifficultyHard   = enum.New(Difficulty("hard"))
	DifficultyEpic   = enum.New(Difficulty("epic"))
)

type Quest struct {
	Base
	OrganizationID   string `gorm:"index"`
	Title            string
	Description      string
	QuestType        QuestType
	Difficulty       Difficulty
	TargetType       string
	TargetValue      int64
	RewardXP         int64
	RewardCommission float64
	IsActive         bool
	StartsAt         sql.NullTime
	EndsAt           sql.NullTime
}
