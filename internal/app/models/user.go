package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff account based on the 'users' table
type User struct {
	ID          uuid.UUID  `json:"id" db:"id" example:"7b8f7f2e-6f0a-4c43-9a55-0f2f6f1f5d10"`
	Name        string     `json:"name" db:"name" example:"Ahmed Hassan"`
	Email       string     `json:"email" db:"email" example:"director@madarij.center"`
	Password    string     `json:"-" db:"password"`
	Role        Role       `json:"role" db:"role" example:"director"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	Phone       string     `json:"phone,omitempty" db:"phone" example:"01012345678"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Duty is a named responsibility assigned to exactly one staff member
type Duty string

const (
	// DutyInterviewConductor is the director who conducts onboarding interviews
	DutyInterviewConductor Duty = "interview_conductor"
)

// StaffAssignment records which user currently holds a duty
type StaffAssignment struct {
	Duty       Duty       `json:"duty" db:"duty"`
	UserID     uuid.UUID  `json:"userId" db:"user_id"`
	AssignedBy *uuid.UUID `json:"assignedBy,omitempty" db:"assigned_by"`
	AssignedAt time.Time  `json:"assignedAt" db:"assigned_at"`
	User       *User      `json:"user,omitempty"`
}
