package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
)

// GuardianInput carries inline guardian data
type GuardianInput struct {
	Name            string              `json:"name" binding:"required,min=2,max=100" example:"Khaled Omar"`
	Phone           string              `json:"phone" binding:"required,phone" example:"01012345678"`
	AlternatePhone  string              `json:"alternatePhone,omitempty" binding:"omitempty,phone"`
	Address         string              `json:"address,omitempty" binding:"omitempty,max=255"`
	Relationship    models.Relationship `json:"relationship,omitempty" binding:"omitempty,oneof=father mother brother sister paternal_uncle paternal_aunt maternal_uncle maternal_aunt grandfather grandmother other" example:"father"`
	WhatsAppEnabled *bool               `json:"whatsAppEnabled,omitempty" example:"true"`
	WhatsAppPhone   string              `json:"whatsAppPhone,omitempty" binding:"omitempty,phone"`
}

// CreateApplicationRequest registers a new applicant.
// Exactly one of GuardianID and Guardian must be given.
type CreateApplicationRequest struct {
	Name       string         `json:"name" binding:"required,min=2,max=100" example:"Omar Khaled"`
	Stage      models.Stage   `json:"stage" binding:"required,oneof=primary prep secondary university" example:"primary"`
	GuardianID *uuid.UUID     `json:"guardianId,omitempty"`
	Guardian   *GuardianInput `json:"guardian,omitempty"`
	Notes      string         `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// SubmitFormRequest carries the completed application form.
// Name and stage keep their previous value when omitted.
type SubmitFormRequest struct {
	Name        string         `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Age         *int           `json:"age,omitempty" binding:"omitempty,min=4,max=30" example:"9"`
	DateOfBirth *time.Time     `json:"dateOfBirth,omitempty"`
	Stage       models.Stage   `json:"stage,omitempty" binding:"omitempty,oneof=primary prep secondary university"`
	Notes       string         `json:"notes,omitempty" binding:"omitempty,max=1000"`
	Guardian    *GuardianInput `json:"guardian,omitempty"`
}

// RecordResultRequest records the outcome of an interview
type RecordResultRequest struct {
	Result  string     `json:"result" binding:"required" example:"accepted"`
	Notes   string     `json:"notes,omitempty" binding:"omitempty,max=2000"`
	HalqaID *uuid.UUID `json:"halqaId,omitempty"`
}

// InterviewSlot is the next date interviews can be held on
type InterviewSlot struct {
	Date      time.Time `json:"date" example:"2025-05-10T16:00:00+03:00"`
	DayOfWeek string    `json:"dayOfWeek" example:"saturday"`
	TimeSlot  string    `json:"timeSlot" example:"after Asr"`
	DaysAhead int       `json:"daysAhead" example:"3"`
}

// ScheduleInterviewResponse is returned after an interview is booked
type ScheduleInterviewResponse struct {
	Interview    *models.Interview    `json:"interview"`
	Student      *models.Student      `json:"student"`
	Notification *models.Notification `json:"notification"`
}

// InterviewResultResponse is returned after an interview result is recorded
type InterviewResultResponse struct {
	Interview *models.Interview `json:"interview"`
	Student   *models.Student   `json:"student"`
}

// ApplicationListResponse lists applications awaiting a decision
type ApplicationListResponse struct {
	Count    int               `json:"count" example:"2"`
	Students []*models.Student `json:"students"`
}

// InterviewListResponse lists upcoming interviews
type InterviewListResponse struct {
	Count      int                 `json:"count" example:"1"`
	Interviews []*models.Interview `json:"interviews"`
}
