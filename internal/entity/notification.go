package entity

import "github.com/questx-lab/questboard/pkg/enum"

type NotificationType string

var (
	NotificationQuestReward = enum.New(NotificationType("quest_reward"))
	NotificationAchievement = enum.New(NotificationType("achievement"))
	NotificationMilestone   = enum.New(NotificationType("milestone"))
)

type Notification struct {
	Base
	UserID           string `gorm:"index"`
	QuestID          string
	Title            string
	Message          string
	NotificationType NotificationType
	Data             Map
	IsRead           bool
}
