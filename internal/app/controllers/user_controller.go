package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/middleware"
	"github.com/madarij/center/internal/pkg/helpers"
)

// StaffAccounts manages staff users
type StaffAccounts interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	ListUsers(ctx context.Context, filter dto.UserFilter, page, size int) (*dto.UserListResponse, error)
}

// DutyAssigner hands out staff duties
type DutyAssigner interface {
	AssignInterviewConductor(ctx context.Context, actorID, userID uuid.UUID) (*models.StaffAssignment, error)
}

// UserController handles staff accounts and duty assignments
type UserController struct {
	accounts StaffAccounts
	duties   DutyAssigner
}

// NewUserController creates a new user controller
func NewUserController(accounts StaffAccounts, duties DutyAssigner) *UserController {
	return &UserController{accounts: accounts, duties: duties}
}

// CreateUser creates a staff account
// @Summary Create staff user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "Staff user"
// @Success 201 {object} dto.APIResponse{data=models.User}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	user, err := c.accounts.CreateUser(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, user, "User created")
}

// ListUsers lists staff accounts
// @Summary List staff users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter" Enums(director, supervisor, teacher, student_affairs)
// @Param isActive query bool false "Active filter"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse}
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	filter := dto.UserFilter{
		Role:     models.Role(ctx.Query("role")),
		IsActive: optionalBool(ctx, "isActive"),
	}
	if filter.Role != "" && !filter.Role.IsValid() {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid role").WithField("role")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	res, err := c.accounts.ListUsers(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, res, "")
}

// AssignInterviewConductor sets the director who conducts interviews
// @Summary Assign interview conductor
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssignConductorRequest true "Director"
// @Success 200 {object} dto.APIResponse{data=models.StaffAssignment}
// @Failure 400 {object} dto.ErrorResponse "User is not an active director"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /staff/assignments/interview-conductor [put]
func (c *UserController) AssignInterviewConductor(ctx *gin.Context) {
	actorID, _, authed := caller(ctx)
	if !authed {
		return
	}

	var req dto.AssignConductorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	a, err := c.duties.AssignInterviewConductor(ctx.Request.Context(), actorID, req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, a, "Interview conductor assigned")
}
