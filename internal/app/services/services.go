package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
)

// Services defined in this package:
// - OnboardingService: moves applicants through the onboarding workflow
// - ReminderService: reminds conductors of tomorrow's interviews
// - NotificationService: staff inboxes and best-effort e-mail delivery
// - StaffService: staff accounts, login and duty assignments
// - HalqaService: classrooms and halqat with schedule conflict checks
// - CommunicationService: guardian contact log and WhatsApp links

// Transactor runs fn in one database transaction carried on ctx
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// GuardianStore persists guardians
type GuardianStore interface {
	Create(ctx context.Context, g *models.Guardian) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Guardian, error)
	Update(ctx context.Context, g *models.Guardian) error
}

// StudentStore persists students. UpdateIfStatus only writes while the stored
// status is one of expected.
type StudentStore interface {
	Create(ctx context.Context, s *models.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	UpdateIfStatus(ctx context.Context, s *models.Student, expected ...models.ApplicationStatus) error
	ListByStatus(ctx context.Context, statuses []models.ApplicationStatus) ([]*models.Student, error)
}

// InterviewStore persists interviews
type InterviewStore interface {
	Create(ctx context.Context, iv *models.Interview) error
	Complete(ctx context.Context, studentID uuid.UUID, result models.InterviewResult, notes string, conductedAt time.Time) (*models.Interview, error)
	ListUpcoming(ctx context.Context, from time.Time) ([]*models.Interview, error)
	ListDueForReminder(ctx context.Context, from, to time.Time) ([]*models.Interview, error)
	MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

// NotificationStore persists notifications
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, offset uint64, limit int) ([]*models.Notification, int64, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID, at time.Time) (*models.Notification, error)
	MarkAllRead(ctx context.Context, recipientID uuid.UUID, at time.Time) (int64, error)
}

// UserStore persists staff accounts
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter dto.UserFilter, offset uint64, limit int) ([]*models.User, int64, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

// StaffAssignmentStore persists duty assignments
type StaffAssignmentStore interface {
	Get(ctx context.Context, duty models.Duty) (*models.StaffAssignment, error)
	Upsert(ctx context.Context, a *models.StaffAssignment) error
}

// ClassroomStore persists classrooms
type ClassroomStore interface {
	Create(ctx context.Context, c *models.Classroom) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Classroom, error)
	List(ctx context.Context) ([]*models.Classroom, error)
}

// HalqaStore persists halqat
type HalqaStore interface {
	Create(ctx context.Context, h *models.Halqa) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Halqa, error)
	List(ctx context.Context, filter dto.HalqaFilter) ([]*models.Halqa, error)
	FindActiveConflicts(ctx context.Context, teacherID, classroomID uuid.UUID, days []string) ([]*models.Halqa, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// CommunicationStore persists guardian contact logs
type CommunicationStore interface {
	Create(ctx context.Context, l *models.CommunicationLog) error
	ListByStudent(ctx context.Context, studentID uuid.UUID, limit int) ([]*models.CommunicationLog, error)
}

// StaffDirectory resolves which staff member holds a duty
type StaffDirectory interface {
	InterviewConductor(ctx context.Context) (*models.User, error)
}

// Dispatcher delivers a committed notification outside the database.
// Delivery is best-effort and never fails the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, n *models.Notification)
}

// Dispatchers hands a notification to each delivery channel in order
type Dispatchers []Dispatcher

// Dispatch implements Dispatcher
func (d Dispatchers) Dispatch(ctx context.Context, n *models.Notification) {
	for _, next := range d {
		next.Dispatch(ctx, n)
	}
}
