package models

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the position of a student in the onboarding workflow
type ApplicationStatus string

const (
	StatusNew                ApplicationStatus = "New"
	StatusFormGiven          ApplicationStatus = "FormGiven"
	StatusFormSubmitted      ApplicationStatus = "FormSubmitted"
	StatusInterviewScheduled ApplicationStatus = "InterviewScheduled"
	StatusAccepted           ApplicationStatus = "Accepted"
	StatusRejected           ApplicationStatus = "Rejected"
	StatusPending            ApplicationStatus = "Pending"
)

// transitions lists every legal move of the onboarding workflow.
// Statuses absent from the map have no outgoing transition.
var transitions = map[ApplicationStatus][]ApplicationStatus{
	StatusNew:                {StatusFormGiven, StatusFormSubmitted},
	StatusFormGiven:          {StatusFormSubmitted},
	StatusFormSubmitted:      {StatusInterviewScheduled},
	StatusInterviewScheduled: {StatusAccepted, StatusRejected, StatusPending},
}

// PendingStatuses are applications still awaiting a decision
var PendingStatuses = []ApplicationStatus{
	StatusNew,
	StatusFormGiven,
	StatusFormSubmitted,
	StatusInterviewScheduled,
	StatusPending,
}

// IsValid reports whether s is a known status
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusFormGiven, StatusFormSubmitted, StatusInterviewScheduled,
		StatusAccepted, StatusRejected, StatusPending:
		return true
	}
	return false
}

// CanTransitionTo reports whether the workflow allows moving from s to next
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s permits no further transition
func (s ApplicationStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Sources returns every status from which next can be reached directly
func Sources(next ApplicationStatus) []ApplicationStatus {
	var out []ApplicationStatus
	for _, from := range []ApplicationStatus{StatusNew, StatusFormGiven, StatusFormSubmitted, StatusInterviewScheduled} {
		if from.CanTransitionTo(next) {
			out = append(out, from)
		}
	}
	return out
}

// Student is an applicant or enrolled student based on the 'students' table
type Student struct {
	ID                uuid.UUID         `json:"id" db:"id"`
	Name              string            `json:"name" db:"name" example:"Omar Khaled"`
	Age               *int              `json:"age,omitempty" db:"age" example:"9"`
	DateOfBirth       *time.Time        `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Stage             Stage             `json:"stage" db:"stage" example:"primary"`
	GuardianID        uuid.UUID         `json:"guardianId" db:"guardian_id"`
	HalqaID           *uuid.UUID        `json:"halqaId,omitempty" db:"halqa_id"`
	Notes             string            `json:"notes,omitempty" db:"notes"`
	ApplicationStatus ApplicationStatus `json:"applicationStatus" db:"application_status" example:"New"`
	InterviewDate     *time.Time        `json:"interviewDate,omitempty" db:"interview_date"`
	InterviewNotes    string            `json:"interviewNotes,omitempty" db:"interview_notes"`
	IsActive          bool              `json:"isActive" db:"is_active"`
	AcceptedAt        *time.Time        `json:"acceptedAt,omitempty" db:"accepted_at"`
	AcceptedBy        *uuid.UUID        `json:"acceptedBy,omitempty" db:"accepted_by"`
	CreatedAt         time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time         `json:"updatedAt" db:"updated_at"`
	Guardian          *Guardian         `json:"guardian,omitempty"` // Relation, no db tag
}
