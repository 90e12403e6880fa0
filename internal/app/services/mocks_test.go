package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/pkg/mailer"
	"github.com/stretchr/testify/mock"
)

// inlineTx runs fn directly, or fails with err without calling fn
type inlineTx struct {
	calls int
	err   error
}

func (t *inlineTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	if t.err != nil {
		return t.err
	}
	return fn(ctx)
}

// MockGuardianStore
type MockGuardianStore struct {
	mock.Mock
}

func (m *MockGuardianStore) Create(ctx context.Context, g *models.Guardian) error {
	args := m.Called(ctx, g)
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return args.Error(0)
}
func (m *MockGuardianStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Guardian, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guardian), args.Error(1)
}
func (m *MockGuardianStore) Update(ctx context.Context, g *models.Guardian) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

// MockStudentStore
type MockStudentStore struct {
	mock.Mock
}

func (m *MockStudentStore) Create(ctx context.Context, s *models.Student) error {
	args := m.Called(ctx, s)
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return args.Error(0)
}
func (m *MockStudentStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}
func (m *MockStudentStore) UpdateIfStatus(ctx context.Context, s *models.Student, expected ...models.ApplicationStatus) error {
	args := m.Called(ctx, s, expected)
	return args.Error(0)
}
func (m *MockStudentStore) ListByStatus(ctx context.Context, statuses []models.ApplicationStatus) ([]*models.Student, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).([]*models.Student), args.Error(1)
}

// MockInterviewStore
type MockInterviewStore struct {
	mock.Mock
}

func (m *MockInterviewStore) Create(ctx context.Context, iv *models.Interview) error {
	args := m.Called(ctx, iv)
	if iv.ID == uuid.Nil {
		iv.ID = uuid.New()
	}
	return args.Error(0)
}
func (m *MockInterviewStore) Complete(ctx context.Context, studentID uuid.UUID, result models.InterviewResult, notes string, conductedAt time.Time) (*models.Interview, error) {
	args := m.Called(ctx, studentID, result, notes, conductedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Interview), args.Error(1)
}
func (m *MockInterviewStore) ListUpcoming(ctx context.Context, from time.Time) ([]*models.Interview, error) {
	args := m.Called(ctx, from)
	return args.Get(0).([]*models.Interview), args.Error(1)
}
func (m *MockInterviewStore) ListDueForReminder(ctx context.Context, from, to time.Time) ([]*models.Interview, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]*models.Interview), args.Error(1)
}
func (m *MockInterviewStore) MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

// MockNotificationStore
type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return args.Error(0)
}
func (m *MockNotificationStore) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, offset uint64, limit int) ([]*models.Notification, int64, error) {
	args := m.Called(ctx, recipientID, unreadOnly, offset, limit)
	return args.Get(0).([]*models.Notification), args.Get(1).(int64), args.Error(2)
}
func (m *MockNotificationStore) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockNotificationStore) MarkRead(ctx context.Context, id, recipientID uuid.UUID, at time.Time) (*models.Notification, error) {
	args := m.Called(ctx, id, recipientID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}
func (m *MockNotificationStore) MarkAllRead(ctx context.Context, recipientID uuid.UUID, at time.Time) (int64, error) {
	args := m.Called(ctx, recipientID, at)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserStore) List(ctx context.Context, filter dto.UserFilter, offset uint64, limit int) ([]*models.User, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}
func (m *MockUserStore) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

// MockStaffAssignmentStore
type MockStaffAssignmentStore struct {
	mock.Mock
}

func (m *MockStaffAssignmentStore) Get(ctx context.Context, duty models.Duty) (*models.StaffAssignment, error) {
	args := m.Called(ctx, duty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffAssignment), args.Error(1)
}
func (m *MockStaffAssignmentStore) Upsert(ctx context.Context, a *models.StaffAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// MockClassroomStore
type MockClassroomStore struct {
	mock.Mock
}

func (m *MockClassroomStore) Create(ctx context.Context, c *models.Classroom) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockClassroomStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Classroom, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Classroom), args.Error(1)
}
func (m *MockClassroomStore) List(ctx context.Context) ([]*models.Classroom, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Classroom), args.Error(1)
}

// MockHalqaStore
type MockHalqaStore struct {
	mock.Mock
}

func (m *MockHalqaStore) Create(ctx context.Context, h *models.Halqa) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}
func (m *MockHalqaStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Halqa, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Halqa), args.Error(1)
}
func (m *MockHalqaStore) List(ctx context.Context, filter dto.HalqaFilter) ([]*models.Halqa, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Halqa), args.Error(1)
}
func (m *MockHalqaStore) FindActiveConflicts(ctx context.Context, teacherID, classroomID uuid.UUID, days []string) ([]*models.Halqa, error) {
	args := m.Called(ctx, teacherID, classroomID, days)
	return args.Get(0).([]*models.Halqa), args.Error(1)
}
func (m *MockHalqaStore) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommunicationStore
type MockCommunicationStore struct {
	mock.Mock
}

func (m *MockCommunicationStore) Create(ctx context.Context, l *models.CommunicationLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockCommunicationStore) ListByStudent(ctx context.Context, studentID uuid.UUID, limit int) ([]*models.CommunicationLog, error) {
	args := m.Called(ctx, studentID, limit)
	return args.Get(0).([]*models.CommunicationLog), args.Error(1)
}

// MockStaffDirectory
type MockStaffDirectory struct {
	mock.Mock
}

func (m *MockStaffDirectory) InterviewConductor(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockDispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, n *models.Notification) {
	m.Called(ctx, n)
}

// MockMailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
