package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/middleware"
	"github.com/madarij/center/internal/pkg/helpers"
)

// Inbox is the caller-scoped notification surface
type Inbox interface {
	List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, page, size int) (*dto.NotificationListResponse, error)
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, recipientID, id uuid.UUID) (*models.Notification, error)
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

// NotificationController serves the caller's notifications
type NotificationController struct {
	inbox Inbox
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(inbox Inbox) *NotificationController {
	return &NotificationController{inbox: inbox}
}

// List returns the caller's notifications, newest first
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param unreadOnly query bool false "Only unread notifications"
// @Success 200 {object} dto.APIResponse{data=dto.NotificationListResponse}
// @Router /notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	userID, _, authed := caller(ctx)
	if !authed {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)
	unreadOnly := optionalBool(ctx, "unreadOnly")

	res, err := c.inbox.List(ctx.Request.Context(), userID, unreadOnly != nil && *unreadOnly, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, res, "")
}

// UnreadCount returns how many of the caller's notifications are unread
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse}
// @Router /notifications/unread-count [get]
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	userID, _, authed := caller(ctx)
	if !authed {
		return
	}

	count, err := c.inbox.UnreadCount(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.UnreadCountResponse{Count: count}, "")
}

// MarkRead marks one of the caller's notifications read
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=models.Notification}
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, _, authed := caller(ctx)
	if !authed {
		return
	}
	id, valid := pathUUID(ctx, "id")
	if !valid {
		return
	}

	n, err := c.inbox.MarkRead(ctx.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, n, "Notification marked as read")
}

// MarkAllRead marks every unread notification of the caller read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MarkAllReadResponse}
// @Router /notifications/read-all [put]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, _, authed := caller(ctx)
	if !authed {
		return
	}

	updated, err := c.inbox.MarkAllRead(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.MarkAllReadResponse{Updated: updated}, "All notifications marked as read")
}
