package model

type UserNotification struct {
	ID               string         `json:"id"`
	QuestID          string         `json:"quest_id"`
	Title            string         `json:"title"`
	Message          string         `json:"message"`
	NotificationType string         `json:"notification_type"`
	Data             map[string]any `json:"data"`
	IsRead           bool           `json:"is_read"`
	CreatedAt        string         `json:"created_at"`
}

type GetNotificationsRequest struct {
	UserID string `json:"user_id" form:"user_id"`
	Offset int    `json:"offset" form:"offset"`
	Limit  int    `json:"limit" form:"limit"`
}

type GetNotificationsResponse struct {
	Notifications []UserNotification `json:"notifications"`
}
