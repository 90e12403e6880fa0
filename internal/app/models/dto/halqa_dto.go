package dto

import (
	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
)

// CreateClassroomRequest creates a classroom
type CreateClassroomRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100" example:"Room 1"`
	Capacity    int    `json:"capacity,omitempty" binding:"omitempty,min=1,max=500" example:"30"`
	Description string `json:"description,omitempty" binding:"omitempty,max=500"`
}

// CreateHalqaRequest creates a halqa
type CreateHalqaRequest struct {
	Name         string    `json:"name" binding:"required,min=2,max=100" example:"Al-Fajr"`
	ClassroomID  uuid.UUID `json:"classroomId" binding:"required"`
	TeacherID    uuid.UUID `json:"teacherId" binding:"required"`
	SupervisorID uuid.UUID `json:"supervisorId" binding:"required"`
	Days         []string  `json:"days" binding:"required,min=1,max=7,dive,weekday" example:"saturday,monday"`
	StartTime    string    `json:"startTime" binding:"required,hhmm" example:"14:00"`
	EndTime      string    `json:"endTime" binding:"required,hhmm" example:"16:00"`
	MaxStudents  int       `json:"maxStudents,omitempty" binding:"omitempty,min=1,max=100" example:"15"`
	Description  string    `json:"description,omitempty" binding:"omitempty,max=500"`
}

// HalqaFilter narrows a halqa listing
type HalqaFilter struct {
	TeacherID    *uuid.UUID
	SupervisorID *uuid.UUID
	IsActive     *bool
}

// HalqaListResponse lists halqat
type HalqaListResponse struct {
	Count  int             `json:"count" example:"4"`
	Halqat []*models.Halqa `json:"halqat"`
}
