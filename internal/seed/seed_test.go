package seed

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
	"github.com/stretchr/testify/require"
)

type memUsers struct{ byEmail map[string]*models.User }

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	u.ID = uuid.New()
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) GetByID(context.Context, uuid.UUID) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memUsers) List(context.Context, dto.UserFilter, uint64, int) ([]*models.User, int64, error) {
	return nil, 0, nil
}

func (m *memUsers) UpdateLastLogin(context.Context, uuid.UUID, time.Time) error { return nil }

type memAssignments struct{ current *models.StaffAssignment }

func (m *memAssignments) Get(context.Context, models.Duty) (*models.StaffAssignment, error) {
	return m.current, nil
}

func (m *memAssignments) Upsert(_ context.Context, a *models.StaffAssignment) error {
	m.current = a
	return nil
}

type memClassrooms struct{ list []*models.Classroom }

func (m *memClassrooms) Create(_ context.Context, c *models.Classroom) error {
	c.ID = uuid.New()
	m.list = append(m.list, c)
	return nil
}

func (m *memClassrooms) GetByID(context.Context, uuid.UUID) (*models.Classroom, error) {
	return nil, apperrors.ErrClassroomNotFound
}

func (m *memClassrooms) List(context.Context) ([]*models.Classroom, error) { return m.list, nil }

func TestCreateDefaultData_FreshDatabase(t *testing.T) {
	users := &memUsers{byEmail: map[string]*models.User{}}
	assignments := &memAssignments{}
	classrooms := &memClassrooms{}
	stores := Stores{Users: users, Assignments: assignments, Classrooms: classrooms}
	cfg := Config{DirectorEmail: "director@madarij.center", DirectorPassword: "changeme123"}

	require.NoError(t, CreateDefaultData(context.Background(), stores, cfg, zerolog.Nop()))

	director := users.byEmail[cfg.DirectorEmail]
	require.NotNil(t, director)
	assert.Equal(t, models.RoleDirector, director.Role)
	assert.True(t, auth.CheckPassword(director.Password, "changeme123"))
	require.NotNil(t, assignments.current)
	assert.Equal(t, director.ID, assignments.current.UserID)
	require.Len(t, classrooms.list, 1)

	// A second run changes nothing
	require.NoError(t, CreateDefaultData(context.Background(), stores, cfg, zerolog.Nop()))
	assert.Len(t, users.byEmail, 1)
	assert.Len(t, classrooms.list, 1)
}

func TestCreateDefaultData_KeepsExistingConductor(t *testing.T) {
	other := &models.StaffAssignment{Duty: models.DutyInterviewConductor, UserID: uuid.New()}
	assignments := &memAssignments{current: other}
	stores := Stores{
		Users:       &memUsers{byEmail: map[string]*models.User{}},
		Assignments: assignments,
		Classrooms:  &memClassrooms{},
	}

	err := CreateDefaultData(context.Background(), stores, Config{DirectorEmail: "d@m.c", DirectorPassword: "changeme123"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Same(t, other, assignments.current)
}

func TestCreateDefaultData_NoPasswordSkipsDirector(t *testing.T) {
	users := &memUsers{byEmail: map[string]*models.User{}}
	assignments := &memAssignments{}
	stores := Stores{Users: users, Assignments: assignments, Classrooms: &memClassrooms{}}

	require.NoError(t, CreateDefaultData(context.Background(), stores, Config{DirectorEmail: "d@m.c"}, zerolog.Nop()))
	assert.Empty(t, users.byEmail)
	assert.Nil(t, assignments.current)
}

func TestCreateDefaultData_ShortPassword(t *testing.T) {
	users := &memUsers{byEmail: map[string]*models.User{}}
	classrooms := &memClassrooms{}
	stores := Stores{Users: users, Assignments: &memAssignments{}, Classrooms: classrooms}

	err := CreateDefaultData(context.Background(), stores, Config{DirectorEmail: "d@m.c", DirectorPassword: "short"}, zerolog.Nop())
	require.Error(t, err)
	assert.Empty(t, users.byEmail)
	// Other defaults are still created
	assert.Len(t, classrooms.list, 1)
}
