package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies the event a notification reports
type NotificationType string

const (
	NotificationInterviewScheduled NotificationType = "interview_scheduled"
	NotificationInterviewReminder  NotificationType = "interview_reminder"
	NotificationStudentAccepted    NotificationType = "student_accepted"
	NotificationStudentRejected    NotificationType = "student_rejected"
	NotificationAttendanceAlert    NotificationType = "attendance_alert"
	NotificationSystem             NotificationType = "system"
)

// Priority of a notification
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Notification is a message addressed to a staff member based on the 'notifications' table
type Notification struct {
	ID                 uuid.UUID        `json:"id" db:"id"`
	RecipientID        uuid.UUID        `json:"recipientId" db:"recipient_id"`
	Type               NotificationType `json:"type" db:"type" example:"interview_scheduled"`
	Title              string           `json:"title" db:"title"`
	Message            string           `json:"message" db:"message"`
	RelatedStudentID   *uuid.UUID       `json:"relatedStudentId,omitempty" db:"related_student_id"`
	RelatedInterviewID *uuid.UUID       `json:"relatedInterviewId,omitempty" db:"related_interview_id"`
	IsRead             bool             `json:"isRead" db:"is_read"`
	ReadAt             *time.Time       `json:"readAt,omitempty" db:"read_at"`
	Priority           Priority         `json:"priority" db:"priority" example:"high"`
	ExpiresAt          *time.Time       `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt          time.Time        `json:"createdAt" db:"created_at"`
}
