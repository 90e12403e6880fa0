package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/db"
	"github.com/madarij/center/internal/pkg/apperrors"
	"github.com/madarij/center/internal/pkg/dberrors"
	"github.com/madarij/center/internal/pkg/logger"
)

// oneScheduledInterviewConstraint is the partial unique index allowing a
// single scheduled interview per student
const oneScheduledInterviewConstraint = "interviews_one_scheduled_per_student"

var interviewColumns = []string{
	"i.id", "i.student_id", "i.scheduled_date", "i.scheduled_by", "i.conductor_id", "i.status",
	"i.result", "i.notes", "i.conducted_at", "i.day_of_week", "i.time_slot", "i.reminded_at",
	"i.created_at", "i.updated_at",
}

// InterviewRepository handles interview database operations
type InterviewRepository struct {
	base
}

// NewInterviewRepository creates a new InterviewRepository
func NewInterviewRepository(conn db.DBTX) *InterviewRepository {
	return &InterviewRepository{base: newBase(conn)}
}

func interviewFields(iv *models.Interview) []any {
	return []any{
		&iv.ID, &iv.StudentID, &iv.ScheduledDate, &iv.ScheduledBy, &iv.ConductorID, &iv.Status,
		&iv.Result, &iv.Notes, &iv.ConductedAt, &iv.DayOfWeek, &iv.TimeSlot, &iv.RemindedAt,
		&iv.CreatedAt, &iv.UpdatedAt,
	}
}

func scanInterview(r row) (*models.Interview, error) {
	iv := &models.Interview{}
	if err := r.Scan(interviewFields(iv)...); err != nil {
		return nil, err
	}
	return iv, nil
}

// scanInterviewWithStudent scans an interview row joined with the student's name and stage
func scanInterviewWithStudent(r row) (*models.Interview, error) {
	iv := &models.Interview{Student: &models.Student{}}
	dest := append(interviewFields(iv), &iv.Student.Name, &iv.Student.Stage)
	if err := r.Scan(dest...); err != nil {
		return nil, err
	}
	iv.Student.ID = iv.StudentID
	return iv, nil
}

// Create inserts an interview. A second scheduled interview for the same
// student violates the partial unique index and is reported as a conflict.
func (r *InterviewRepository) Create(ctx context.Context, iv *models.Interview) error {
	if iv.ID == uuid.Nil {
		iv.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("interviews").
		Columns("id", "student_id", "scheduled_date", "scheduled_by", "conductor_id", "status",
			"notes", "day_of_week", "time_slot").
		Values(iv.ID, iv.StudentID, iv.ScheduledDate, iv.ScheduledBy, iv.ConductorID, iv.Status,
			iv.Notes, iv.DayOfWeek, iv.TimeSlot).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create interview SQL")
		return fmt.Errorf("failed to build create interview query: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&iv.CreatedAt, &iv.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, oneScheduledInterviewConstraint) {
			return apperrors.ErrInterviewAlreadyScheduled
		}
		logger.Error().Err(err).Str("studentID", iv.StudentID.String()).Msg("Error executing create interview query")
		return fmt.Errorf("error creating interview: %w", err)
	}

	return nil
}

// Complete moves the student's scheduled interview to completed with the given outcome
func (r *InterviewRepository) Complete(ctx context.Context, studentID uuid.UUID, result models.InterviewResult, notes string, conductedAt time.Time) (*models.Interview, error) {
	sql, args, err := r.sb.Update("interviews i").
		SetMap(map[string]interface{}{
			"status":       models.InterviewCompleted,
			"result":       result,
			"notes":        notes,
			"conducted_at": conductedAt,
			"updated_at":   squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"i.student_id": studentID, "i.status": models.InterviewScheduled}).
		Suffix("RETURNING " + joinColumns(interviewColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building complete interview SQL")
		return nil, fmt.Errorf("failed to build complete interview query: %w", err)
	}

	iv, err := scanInterview(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInterviewNotFound
		}
		logger.Error().Err(err).Str("studentID", studentID.String()).Msg("Error executing complete interview query")
		return nil, fmt.Errorf("error completing interview: %w", err)
	}

	return iv, nil
}

// ListUpcoming returns scheduled interviews on or after from, soonest first
func (r *InterviewRepository) ListUpcoming(ctx context.Context, from time.Time) ([]*models.Interview, error) {
	return r.listWithStudent(ctx, "upcoming", squirrel.And{
		squirrel.Eq{"i.status": models.InterviewScheduled},
		squirrel.GtOrEq{"i.scheduled_date": from},
	})
}

// ListDueForReminder returns scheduled interviews in [from, to) that have not been reminded yet
func (r *InterviewRepository) ListDueForReminder(ctx context.Context, from, to time.Time) ([]*models.Interview, error) {
	return r.listWithStudent(ctx, "due for reminder", squirrel.And{
		squirrel.Eq{"i.status": models.InterviewScheduled, "i.reminded_at": nil},
		squirrel.GtOrEq{"i.scheduled_date": from},
		squirrel.Lt{"i.scheduled_date": to},
	})
}

func (r *InterviewRepository) listWithStudent(ctx context.Context, what string, where squirrel.Sqlizer) ([]*models.Interview, error) {
	sql, args, err := r.sb.Select(append(append([]string{}, interviewColumns...), "s.name", "s.stage")...).
		From("interviews i").
		Join("students s ON s.id = i.student_id").
		Where(where).
		OrderBy("i.scheduled_date ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("list", what).Msg("Error building list interviews SQL")
		return nil, fmt.Errorf("failed to build list interviews query: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("list", what).Msg("Error executing list interviews query")
		return nil, fmt.Errorf("error querying interviews: %w", err)
	}
	defer rows.Close()

	interviews := []*models.Interview{}
	for rows.Next() {
		iv, err := scanInterviewWithStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning interview row during list")
			return nil, fmt.Errorf("error scanning interview row: %w", err)
		}
		interviews = append(interviews, iv)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating interview rows")
		return nil, fmt.Errorf("error iterating interview rows: %w", err)
	}

	return interviews, nil
}

// MarkReminded stamps reminded_at once. It reports false when another run got there first.
func (r *InterviewRepository) MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	sql, args, err := r.sb.Update("interviews").
		Set("reminded_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "reminded_at": nil}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building mark interview reminded SQL")
		return false, fmt.Errorf("failed to build mark reminded query: %w", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("interviewID", id.String()).Msg("Error executing mark interview reminded query")
		return false, fmt.Errorf("error marking interview reminded: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
