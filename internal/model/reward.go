package model

type QuestReward struct {
	XP         int64   `json:"xp"`
	Commission float64 `json:"commission"`
}

type Notification struct {
	UserID           string         `json:"user_id"`
	QuestID          string         `json:"quest_id"`
	Title            string         `json:"title"`
	Message          string         `json:"message"`
	NotificationType string         `json:"notification_type"`
	Data             map[string]any `json:"data"`
}

type DistributeQuestRewardsRequest struct {
	UserQuestID string `json:"user_quest_id"`
}

type DistributeQuestRewardsResponse struct {
	Success     bool               `json:"success"`
	Rewards     *QuestReward       `json:"rewards,omitempty"`
	Reason      string             `json:"reason,omitempty"`
	Multipliers map[string]float64 `json:"multipliers,omitempty"`
}

type GetRewardConfigurationRequest struct{}

type GetRewardConfigurationResponse struct {
	Configuration any `json:"configuration"`
}

type RewardDistribution struct {
	ID          string         `json:"id"`
	UserQuestID string         `json:"user_quest_id"`
	UserID      string         `json:"user_id"`
	QuestID     string         `json:"quest_id"`
	XP          int64          `json:"xp"`
	Commission  float64        `json:"commission"`
	Multipliers map[string]any `json:"multipliers"`
	CreatedAt   string         `json:"created_at"`
}

type GetRewardDistributionRequest struct {
	UserQuestID string `json:"user_quest_id" form:"user_quest_id"`
}

type GetRewardDistributionResponse struct {
	Distribution RewardDistribution `json:"distribution"`
}
