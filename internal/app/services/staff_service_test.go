package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/pkg/apperrors"
	"github.com/madarij/center/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInterviewConductor(t *testing.T) {
	director := &models.User{ID: uuid.New(), Role: models.RoleDirector, IsActive: true}

	tests := []struct {
		name       string
		assignment *models.StaffAssignment
		wantErr    error
	}{
		{"assigned active director", &models.StaffAssignment{UserID: director.ID, User: director}, nil},
		{"nobody assigned", nil, apperrors.ErrNoInterviewConductor},
		{"assignee deactivated", &models.StaffAssignment{User: &models.User{Role: models.RoleDirector}}, apperrors.ErrNoInterviewConductor},
		{"assignee demoted", &models.StaffAssignment{User: &models.User{Role: models.RoleTeacher, IsActive: true}}, apperrors.ErrNoInterviewConductor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assignments := new(MockStaffAssignmentStore)
			if tt.assignment == nil {
				assignments.On("Get", mock.Anything, models.DutyInterviewConductor).Return(nil, nil)
			} else {
				assignments.On("Get", mock.Anything, models.DutyInterviewConductor).Return(tt.assignment, nil)
			}
			dir := NewStaffDirectoryService(assignments, new(MockUserStore), zerolog.Nop())

			user, err := dir.InterviewConductor(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, director, user)
		})
	}
}

func TestAssignInterviewConductor(t *testing.T) {
	actor := uuid.New()

	t.Run("director is assigned", func(t *testing.T) {
		users, assignments := new(MockUserStore), new(MockStaffAssignmentStore)
		target := &models.User{ID: uuid.New(), Name: "Ahmed", Role: models.RoleDirector, IsActive: true}
		users.On("GetByID", mock.Anything, target.ID).Return(target, nil)
		assignments.On("Upsert", mock.Anything, mock.MatchedBy(func(a *models.StaffAssignment) bool {
			return a.Duty == models.DutyInterviewConductor && a.UserID == target.ID && *a.AssignedBy == actor
		})).Return(nil)

		a, err := NewStaffDirectoryService(assignments, users, zerolog.Nop()).AssignInterviewConductor(context.Background(), actor, target.ID)
		require.NoError(t, err)
		assert.Equal(t, target, a.User)
		assignments.AssertExpectations(t)
	})

	t.Run("non director is rejected", func(t *testing.T) {
		users, assignments := new(MockUserStore), new(MockStaffAssignmentStore)
		target := &models.User{ID: uuid.New(), Role: models.RoleTeacher, IsActive: true}
		users.On("GetByID", mock.Anything, target.ID).Return(target, nil)

		_, err := NewStaffDirectoryService(assignments, users, zerolog.Nop()).AssignInterviewConductor(context.Background(), actor, target.ID)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assignments.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(MockUserStore)
		id := uuid.New()
		users.On("GetByID", mock.Anything, id).Return(nil, apperrors.ErrUserNotFound)

		_, err := NewStaffDirectoryService(new(MockStaffAssignmentStore), users, zerolog.Nop()).AssignInterviewConductor(context.Background(), actor, id)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})
}

func newStaffService(users UserStore) *StaffService {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	return NewStaffService(users, jwtService, zerolog.Nop())
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("changeme123")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		users := new(MockUserStore)
		user := &models.User{ID: uuid.New(), Email: "director@madarij.center", Password: hash, Role: models.RoleDirector, IsActive: true}
		users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
		users.On("UpdateLastLogin", mock.Anything, user.ID, mock.AnythingOfType("time.Time")).Return(nil)

		res, err := newStaffService(users).Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "changeme123"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.Equal(t, "Bearer", res.TokenType)
		assert.Equal(t, 3600, res.ExpiresIn)
		assert.NotNil(t, res.User.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserStore)
		user := &models.User{ID: uuid.New(), Email: "a@b.c", Password: hash, IsActive: true}
		users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

		_, err := newStaffService(users).Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "wrong-pass"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(MockUserStore)
		users.On("GetByEmail", mock.Anything, "nobody@b.c").Return(nil, apperrors.ErrUserNotFound)

		_, err := newStaffService(users).Login(context.Background(), &dto.LoginRequest{Email: "nobody@b.c", Password: "x"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		users := new(MockUserStore)
		user := &models.User{ID: uuid.New(), Email: "a@b.c", Password: hash, IsActive: false}
		users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

		_, err := newStaffService(users).Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "changeme123"})
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})
}

func TestCreateUser(t *testing.T) {
	users := new(MockUserStore)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Password != "changeme123" && auth.CheckPassword(u.Password, "changeme123") && u.IsActive
	})).Return(nil)

	user, err := newStaffService(users).CreateUser(context.Background(), &dto.CreateUserRequest{
		Name: " Mona ", Email: "mona@madarij.center", Password: "changeme123", Role: models.RoleStudentAffairs,
	})
	require.NoError(t, err)
	assert.Equal(t, "Mona", user.Name)
	users.AssertExpectations(t)

	_, err = newStaffService(new(MockUserStore)).CreateUser(context.Background(), &dto.CreateUserRequest{
		Name: "X", Email: "x@y.z", Password: "changeme123", Role: "janitor",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestListUsers(t *testing.T) {
	users := new(MockUserStore)
	filter := dto.UserFilter{Role: models.RoleTeacher}
	users.On("List", mock.Anything, filter, uint64(10), 10).Return([]*models.User{{Name: "T"}}, int64(11), nil)

	res, err := newStaffService(users).ListUsers(context.Background(), filter, 2, 10)
	require.NoError(t, err)
	assert.Len(t, res.Users, 1)
	assert.Equal(t, 2, res.Pagination.TotalPages)
	assert.Equal(t, 2, res.Pagination.CurrentPage)
}
