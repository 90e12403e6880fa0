package dto

import "github.com/madarij/center/internal/app/models"

// NotificationListResponse is one page of the caller's notifications
type NotificationListResponse struct {
	Notifications []*models.Notification `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount" example:"3"`
	Pagination    PaginationInfo         `json:"pagination"`
}

// UnreadCountResponse carries the number of unread notifications
type UnreadCountResponse struct {
	Count int64 `json:"count" example:"3"`
}

// MarkAllReadResponse carries how many notifications were marked read
type MarkAllReadResponse struct {
	Updated int64 `json:"updated" example:"3"`
}
