package domain

import (
	"time"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/model"
)

const defaultTimeLayout string = time.RFC3339Nano

func convertRewardDistribution(d *entity.RewardDistribution) model.RewardDistribution {
	if d == nil {
		return model.RewardDistribution{}
	}

	return model.RewardDistribution{
		ID:          d.ID,
		UserQuestID: d.UserQuestID,
		UserID:      d.UserID,
		QuestID:     d.QuestID,
		XP:          d.XP,
		Commission:  d.Commission,
		Multipliers: d.Multipliers,
		CreatedAt:   d.CreatedAt.Format(defaultTimeLayout),
	}
}

func convertNotification(n *entity.Notification) model.UserNotification {
	if n == nil {
		return model.UserNotification{}
	}

	return model.UserNotification{
		ID:               n.ID,
		QuestID:          n.QuestID,
		Title:            n.Title,
		Message:          n.Message,
		NotificationType: string(n.NotificationType),
		Data:             n.Data,
		IsRead:           n.IsRead,
		CreatedAt:        n.CreatedAt.Format(defaultTimeLayout),
	}
}
