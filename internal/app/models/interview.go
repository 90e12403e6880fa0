package models

import (
	"time"

	"github.com/google/uuid"
)

// InterviewStatus is the lifecycle state of an interview
type InterviewStatus string

const (
	InterviewScheduled   InterviewStatus = "scheduled"
	InterviewCompleted   InterviewStatus = "completed"
	InterviewCancelled   InterviewStatus = "cancelled"
	InterviewRescheduled InterviewStatus = "rescheduled"
)

// InterviewResult is the outcome recorded by the conductor
type InterviewResult string

const (
	ResultAccepted InterviewResult = "accepted"
	ResultRejected InterviewResult = "rejected"
	ResultPending  InterviewResult = "pending"
)

// ParseInterviewResult validates a raw result value
func ParseInterviewResult(s string) (InterviewResult, bool) {
	switch r := InterviewResult(s); r {
	case ResultAccepted, ResultRejected, ResultPending:
		return r, true
	}
	return "", false
}

// ApplicationStatus maps the interview outcome onto the student's workflow status
func (r InterviewResult) ApplicationStatus() ApplicationStatus {
	switch r {
	case ResultAccepted:
		return StatusAccepted
	case ResultRejected:
		return StatusRejected
	default:
		return StatusPending
	}
}

// Interview is an onboarding interview based on the 'interviews' table
type Interview struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	StudentID     uuid.UUID        `json:"studentId" db:"student_id"`
	ScheduledDate time.Time        `json:"scheduledDate" db:"scheduled_date"`
	ScheduledBy   uuid.UUID        `json:"scheduledBy" db:"scheduled_by"`
	ConductorID   uuid.UUID        `json:"conductorId" db:"conductor_id"`
	Status        InterviewStatus  `json:"status" db:"status" example:"scheduled"`
	Result        *InterviewResult `json:"result,omitempty" db:"result" example:"accepted"`
	Notes         string           `json:"notes,omitempty" db:"notes"`
	ConductedAt   *time.Time       `json:"conductedAt,omitempty" db:"conducted_at"`
	DayOfWeek     string           `json:"dayOfWeek" db:"day_of_week" example:"saturday"`
	TimeSlot      string           `json:"timeSlot" db:"time_slot" example:"after Asr"`
	RemindedAt    *time.Time       `json:"remindedAt,omitempty" db:"reminded_at"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time        `json:"updatedAt" db:"updated_at"`
	Student       *Student         `json:"student,omitempty"` // Relation, no db tag
}
