package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/enum"
	"github.com/questx-lab/questboard/pkg/pubsub"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

// Consumer stores the notifications published by the reward distributor.
type Consumer struct {
	notificationRepo repository.NotificationRepository
}

func NewConsumer(notificationRepo repository.NotificationRepository) *Consumer {
	return &Consumer{notificationRepo: notificationRepo}
}

// Handle is a pubsub.SubscribeHandler. Malformed messages are dropped.
func (c *Consumer) Handle(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var n model.Notification
	if err := json.Unmarshal(pack.Msg, &n); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal notification: %v", err)
		return
	}

	if n.UserID == "" {
		xcontext.Logger(ctx).Warnf("Drop notification without user: %s", n.Title)
		return
	}

	notificationType, err := enum.ToEnum[entity.NotificationType](n.NotificationType)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Drop notification of user %s: %v", n.UserID, err)
		return
	}

	err = c.notificationRepo.Create(ctx, &entity.Notification{
		Base:             entity.Base{ID: uuid.NewString(), CreatedAt: t},
		UserID:           n.UserID,
		QuestID:          n.QuestID,
		Title:            n.Title,
		Message:          n.Message,
		NotificationType: notificationType,
		Data:             entity.Map(n.Data),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save notification of user %s: %v", n.UserID, err)
	}
}
