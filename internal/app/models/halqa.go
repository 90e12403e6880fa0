package models

import (
	"time"

	"github.com/google/uuid"
)

// Classroom is a physical room halqat meet in
type Classroom struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" example:"Room 1"`
	Capacity    int       `json:"capacity" db:"capacity" example:"30"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Halqa is a recurring teaching circle
type Halqa struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name" example:"Al-Fajr"`
	ClassroomID  uuid.UUID `json:"classroomId" db:"classroom_id"`
	TeacherID    uuid.UUID `json:"teacherId" db:"teacher_id"`
	SupervisorID uuid.UUID `json:"supervisorId" db:"supervisor_id"`
	Days         []string  `json:"days" db:"days" example:"saturday,monday"`
	StartTime    string    `json:"startTime" db:"start_time" example:"14:00"`
	EndTime      string    `json:"endTime" db:"end_time" example:"16:00"`
	MaxStudents  int       `json:"maxStudents" db:"max_students" example:"15"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	Description  string    `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
	StudentCount int       `json:"studentCount"` // Derived, no db tag
}

// SharesDayWith reports whether h meets on any of days
func (h *Halqa) SharesDayWith(days []string) bool {
	for _, a := range h.Days {
		for _, b := range days {
			if a == b {
				return true
			}
		}
	}
	return false
}
