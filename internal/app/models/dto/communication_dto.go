package dto

import (
	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
)

// CreateCommunicationLogRequest records that a guardian was contacted
type CreateCommunicationLogRequest struct {
	StudentID         uuid.UUID                   `json:"studentId" binding:"required"`
	GuardianID        uuid.UUID                   `json:"guardianId" binding:"required"`
	CommunicationType models.CommunicationType    `json:"communicationType,omitempty" binding:"omitempty,oneof=whatsapp phone in_person other" example:"whatsapp"`
	Purpose           models.CommunicationPurpose `json:"purpose,omitempty" binding:"omitempty,oneof=attendance performance general emergency interview subscription" example:"general"`
	Notes             string                      `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// CommunicationHistoryResponse lists the most recent contacts for a student
type CommunicationHistoryResponse struct {
	Count   int                        `json:"count" example:"2"`
	History []*models.CommunicationLog `json:"history"`
}

// WhatsAppLinkResponse carries a wa.me link for the student's guardian
type WhatsAppLinkResponse struct {
	StudentID     uuid.UUID `json:"studentId"`
	StudentName   string    `json:"studentName"`
	GuardianID    uuid.UUID `json:"guardianId"`
	GuardianName  string    `json:"guardianName"`
	GuardianPhone string    `json:"guardianPhone"`
	WhatsAppURL   string    `json:"whatsappUrl" example:"https://wa.me/201012345678?text=..."`
}
