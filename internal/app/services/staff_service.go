package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/pkg/apperrors"
	"github.com/madarij/center/internal/pkg/auth"
	"github.com/madarij/center/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// StaffDirectoryService resolves duties from explicit staff assignments
type StaffDirectoryService struct {
	assignments StaffAssignmentStore
	users       UserStore
	logger      zerolog.Logger
}

var _ StaffDirectory = (*StaffDirectoryService)(nil)

// NewStaffDirectoryService creates a new StaffDirectoryService
func NewStaffDirectoryService(assignments StaffAssignmentStore, users UserStore, logger zerolog.Logger) *StaffDirectoryService {
	return &StaffDirectoryService{assignments: assignments, users: users, logger: logger}
}

// InterviewConductor returns the active director assigned to conduct
// interviews. An unassigned duty or an assignee who is no longer an active
// director yields ErrNoInterviewConductor.
func (s *StaffDirectoryService) InterviewConductor(ctx context.Context) (*models.User, error) {
	a, err := s.assignments.Get(ctx, models.DutyInterviewConductor)
	if err != nil {
		return nil, err
	}
	if a == nil || a.User == nil {
		return nil, apperrors.ErrNoInterviewConductor
	}
	if !a.User.IsActive || a.User.Role != models.RoleDirector {
		s.logger.Warn().Str("userID", a.UserID.String()).Msg("Assigned interview conductor is not an active director")
		return nil, apperrors.ErrNoInterviewConductor
	}
	return a.User, nil
}

// AssignInterviewConductor makes userID the interview conductor
func (s *StaffDirectoryService) AssignInterviewConductor(ctx context.Context, actorID, userID uuid.UUID) (*models.StaffAssignment, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleDirector {
		return nil, apperrors.NewValidationError("interview conductor must be a director, %s is a %s", user.Name, user.Role)
	}
	if !user.IsActive {
		return nil, apperrors.NewValidationError("user %s is not active", user.Name)
	}

	a := &models.StaffAssignment{
		Duty:       models.DutyInterviewConductor,
		UserID:     user.ID,
		AssignedBy: helpers.NullUUID(actorID),
		User:       user,
	}
	if err := s.assignments.Upsert(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID.String()).Str("assignedBy", actorID.String()).Msg("Interview conductor assigned")
	return a, nil
}

// StaffService manages staff accounts and login
type StaffService struct {
	users      UserStore
	jwtService *auth.JWTService
	now        func() time.Time
	logger     zerolog.Logger
}

// NewStaffService creates a new StaffService
func NewStaffService(users UserStore, jwtService *auth.JWTService, logger zerolog.Logger) *StaffService {
	return &StaffService{users: users, jwtService: jwtService, now: time.Now, logger: logger}
}

// Login checks credentials and issues an access token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *StaffService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Info().Str("userID", user.ID.String()).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn().Err(err).Str("userID", user.ID.String()).Msg("Failed to record last login")
	} else {
		user.LastLoginAt = &now
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        user,
	}, nil
}

// Profile returns the caller's own account
func (s *StaffService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// CreateUser creates an active staff account
func (s *StaffService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	if !req.Role.IsValid() {
		return nil, apperrors.NewValidationError("invalid role %q", req.Role)
	}
	if len(req.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters long")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
		IsActive: true,
		Phone:    strings.TrimSpace(req.Phone),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID.String()).Str("role", string(user.Role)).Msg("Staff account created")
	return user, nil
}

// ListUsers returns one page of staff accounts
func (s *StaffService) ListUsers(ctx context.Context, filter dto.UserFilter, page, size int) (*dto.UserListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	users, total, err := s.users.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}
	return &dto.UserListResponse{
		Users:      users,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}
