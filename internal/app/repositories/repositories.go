package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/madarij/center/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository            *UserRepository
	StaffAssignmentRepository *StaffAssignmentRepository
	GuardianRepository        *GuardianRepository
	StudentRepository         *StudentRepository
	InterviewRepository       *InterviewRepository
	NotificationRepository    *NotificationRepository
	ClassroomRepository       *ClassroomRepository
	HalqaRepository           *HalqaRepository
	CommunicationRepository   *CommunicationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(conn db.DBTX) *Repositories {
	return &Repositories{
		UserRepository:            NewUserRepository(conn),
		StaffAssignmentRepository: NewStaffAssignmentRepository(conn),
		GuardianRepository:        NewGuardianRepository(conn),
		StudentRepository:         NewStudentRepository(conn),
		InterviewRepository:       NewInterviewRepository(conn),
		NotificationRepository:    NewNotificationRepository(conn),
		ClassroomRepository:       NewClassroomRepository(conn),
		HalqaRepository:           NewHalqaRepository(conn),
		CommunicationRepository:   NewCommunicationRepository(conn),
	}
}

// base carries what every repository needs: the pool and a dollar-placeholder builder
type base struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

func newBase(conn db.DBTX) base {
	return base{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// conn returns the transaction carried by ctx, or the pool
func (b base) conn(ctx context.Context) db.DBTX {
	return db.Conn(ctx, b.db)
}

// row is satisfied by pgx.Row and pgx.Rows
type row interface {
	Scan(dest ...any) error
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
