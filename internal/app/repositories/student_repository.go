package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/db"
	"github.com/madarij/center/internal/pkg/apperrors"
	"github.com/madarij/center/internal/pkg/logger"
)

var studentColumns = []string{
	"s.id", "s.name", "s.age", "s.date_of_birth", "s.stage", "s.guardian_id", "s.halqa_id",
	"s.notes", "s.application_status", "s.interview_date", "s.interview_notes", "s.is_active",
	"s.accepted_at", "s.accepted_by", "s.created_at", "s.updated_at",
}

var studentGuardianColumns = []string{
	"g.id", "g.name", "g.phone", "g.alternate_phone", "g.address", "g.relationship",
	"g.whatsapp_enabled", "g.whatsapp_phone", "g.created_at", "g.updated_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	base
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(conn db.DBTX) *StudentRepository {
	return &StudentRepository{base: newBase(conn)}
}

func studentFields(s *models.Student) []any {
	return []any{
		&s.ID, &s.Name, &s.Age, &s.DateOfBirth, &s.Stage, &s.GuardianID, &s.HalqaID,
		&s.Notes, &s.ApplicationStatus, &s.InterviewDate, &s.InterviewNotes, &s.IsActive,
		&s.AcceptedAt, &s.AcceptedBy, &s.CreatedAt, &s.UpdatedAt,
	}
}

// scanStudentWithGuardian scans a students JOIN guardians row
func scanStudentWithGuardian(r row) (*models.Student, error) {
	s := &models.Student{Guardian: &models.Guardian{}}
	g := s.Guardian
	dest := append(studentFields(s),
		&g.ID, &g.Name, &g.Phone, &g.AlternatePhone, &g.Address, &g.Relationship,
		&g.WhatsAppEnabled, &g.WhatsAppPhone, &g.CreatedAt, &g.UpdatedAt)
	if err := r.Scan(dest...); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *StudentRepository) selectWithGuardian() squirrel.SelectBuilder {
	return r.sb.Select(append(append([]string{}, studentColumns...), studentGuardianColumns...)...).
		From("students s").
		Join("guardians g ON g.id = s.guardian_id")
}

// Create inserts a new student and fills in its id and timestamps
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("students").
		Columns("id", "name", "age", "date_of_birth", "stage", "guardian_id", "halqa_id",
			"notes", "application_status", "is_active").
		Values(s.ID, s.Name, s.Age, s.DateOfBirth, s.Stage, s.GuardianID, s.HalqaID,
			s.Notes, s.ApplicationStatus, s.IsActive).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("studentID", s.ID.String()).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student together with its guardian
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	sql, args, err := r.selectWithGuardian().
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudentWithGuardian(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", id.String()).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return s, nil
}

// UpdateIfStatus writes every mutable field of s, but only while the stored
// application status is still one of expected. Zero matching rows means a
// concurrent request moved the student first and ErrStudentChanged is returned.
func (r *StudentRepository) UpdateIfStatus(ctx context.Context, s *models.Student, expected ...models.ApplicationStatus) error {
	if len(expected) == 0 {
		return fmt.Errorf("update student %s: no expected status given", s.ID)
	}

	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"name":               s.Name,
			"age":                s.Age,
			"date_of_birth":      s.DateOfBirth,
			"stage":              s.Stage,
			"halqa_id":           s.HalqaID,
			"notes":              s.Notes,
			"application_status": s.ApplicationStatus,
			"interview_date":     s.InterviewDate,
			"interview_notes":    s.InterviewNotes,
			"is_active":          s.IsActive,
			"accepted_at":        s.AcceptedAt,
			"accepted_by":        s.AcceptedBy,
			"updated_at":         squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": s.ID}).
		Where(squirrel.Eq{"application_status": expected}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrStudentChanged
		}
		logger.Error().Err(err).Str("studentID", s.ID.String()).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	return nil
}

// ListByStatus returns students in any of statuses, newest first
func (r *StudentRepository) ListByStatus(ctx context.Context, statuses []models.ApplicationStatus) ([]*models.Student, error) {
	sql, args, err := r.selectWithGuardian().
		Where(squirrel.Eq{"s.application_status": statuses}).
		OrderBy("s.created_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students by status SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students by status query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudentWithGuardian(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row during list")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}
