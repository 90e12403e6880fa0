package dto

import (
	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
)

// CreateUserRequest creates a staff account
type CreateUserRequest struct {
	Name     string      `json:"name" binding:"required,min=2,max=100" example:"Mona Ali"`
	Email    string      `json:"email" binding:"required,email" example:"affairs@madarij.center"`
	Password string      `json:"password" binding:"required,min=8" example:"changeme123"`
	Role     models.Role `json:"role" binding:"required,oneof=director supervisor teacher student_affairs" example:"student_affairs"`
	Phone    string      `json:"phone,omitempty" binding:"omitempty,phone"`
}

// UserFilter narrows a staff listing
type UserFilter struct {
	Role     models.Role
	IsActive *bool
}

// UserListResponse lists staff accounts
type UserListResponse struct {
	Users      []*models.User `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

// AssignConductorRequest selects the director who conducts interviews
type AssignConductorRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}
