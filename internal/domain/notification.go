package domain

import (
	"context"

	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

type NotificationDomain interface {
	GetNotifications(context.Context, *model.GetNotificationsRequest) (*model.GetNotificationsResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationDomain(notificationRepo repository.NotificationRepository) *notificationDomain {
	return &notificationDomain{notificationRepo: notificationRepo}
}

func (d *notificationDomain) GetNotifications(
	ctx context.Context, req *model.GetNotificationsRequest,
) (*model.GetNotificationsResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	if err := checkPagination(req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	notifications, err := d.notificationRepo.GetByUserID(ctx, req.UserID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.UserNotification{}
	for i := range notifications {
		result = append(result, convertNotification(&notifications[i]))
	}

	return &model.GetNotificationsResponse{Notifications: result}, nil
}
