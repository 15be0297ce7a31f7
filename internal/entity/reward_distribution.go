package entity

type RewardDistribution struct {
	Base
	UserQuestID string `gorm:"unique"`
	UserID      string `gorm:"index:idx_reward_distribution_user_quest"`
	QuestID     string `gorm:"index:idx_reward_distribution_user_quest"`
	XP          int64
	Commission  float64
	Multipliers Map
}
