package models

import (
	"time"

	"github.com/google/uuid"
)

// CommunicationType is the channel used to reach a guardian
type CommunicationType string

const (
	CommunicationWhatsApp CommunicationType = "whatsapp"
	CommunicationPhone    CommunicationType = "phone"
	CommunicationInPerson CommunicationType = "in_person"
	CommunicationOther    CommunicationType = "other"
)

// CommunicationPurpose is why the guardian was contacted
type CommunicationPurpose string

const (
	PurposeAttendance   CommunicationPurpose = "attendance"
	PurposePerformance  CommunicationPurpose = "performance"
	PurposeGeneral      CommunicationPurpose = "general"
	PurposeEmergency    CommunicationPurpose = "emergency"
	PurposeInterview    CommunicationPurpose = "interview"
	PurposeSubscription CommunicationPurpose = "subscription"
)

// CommunicationLog records that staff contacted a guardian. Message content is never stored.
type CommunicationLog struct {
	ID                uuid.UUID            `json:"id" db:"id"`
	StudentID         uuid.UUID            `json:"studentId" db:"student_id"`
	GuardianID        uuid.UUID            `json:"guardianId" db:"guardian_id"`
	InitiatedBy       uuid.UUID            `json:"initiatedBy" db:"initiated_by"`
	CommunicationType CommunicationType    `json:"communicationType" db:"communication_type" example:"whatsapp"`
	Purpose           CommunicationPurpose `json:"purpose" db:"purpose" example:"general"`
	Notes             string               `json:"notes,omitempty" db:"notes"`
	CreatedAt         time.Time            `json:"createdAt" db:"created_at"`
	InitiatorName     string               `json:"initiatorName,omitempty"` // Relation, no db tag
	GuardianName      string               `json:"guardianName,omitempty"`  // Relation, no db tag
}
