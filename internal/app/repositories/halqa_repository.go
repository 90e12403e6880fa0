package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/db"
	"github.com/madarij/center/internal/pkg/apperrors"
	"github.com/madarij/center/internal/pkg/dberrors"
	"github.com/madarij/center/internal/pkg/logger"
)

var halqaColumns = []string{
	"h.id", "h.name", "h.classroom_id", "h.teacher_id", "h.supervisor_id", "h.days", "h.start_time", "h.end_time",
	"h.max_students", "h.is_active", "h.description", "h.created_at", "h.updated_at",
}

const halqaStudentCount = "(SELECT COUNT(*) FROM students s WHERE s.halqa_id = h.id AND s.is_active) AS student_count"

// HalqaRepository handles halqa database operations
type HalqaRepository struct {
	base
}

// NewHalqaRepository creates a new HalqaRepository
func NewHalqaRepository(conn db.DBTX) *HalqaRepository {
	return &HalqaRepository{base: newBase(conn)}
}

func scanHalqa(r row) (*models.Halqa, error) {
	h := &models.Halqa{}
	err := r.Scan(&h.ID, &h.Name, &h.ClassroomID, &h.TeacherID, &h.SupervisorID, &h.Days, &h.StartTime,
		&h.EndTime, &h.MaxStudents, &h.IsActive, &h.Description, &h.CreatedAt, &h.UpdatedAt, &h.StudentCount)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (r *HalqaRepository) selectHalqa() squirrel.SelectBuilder {
	return r.sb.Select(append(append([]string{}, halqaColumns...), halqaStudentCount)...).From("halqat h")
}

// Create inserts an active halqa
func (r *HalqaRepository) Create(ctx context.Context, h *models.Halqa) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	h.IsActive = true

	sql, args, err := r.sb.Insert("halqat").
		Columns("id", "name", "classroom_id", "teacher_id", "supervisor_id", "days", "start_time", "end_time",
			"max_students", "is_active", "description").
		Values(h.ID, h.Name, h.ClassroomID, h.TeacherID, h.SupervisorID, h.Days, h.StartTime, h.EndTime,
			h.MaxStudents, h.IsActive, h.Description).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create halqa query: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&h.CreatedAt, &h.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewValidationError("classroom, teacher or supervisor does not exist")
		}
		logger.Error().Err(err).Str("name", h.Name).Msg("Error creating halqa")
		return fmt.Errorf("error creating halqa: %w", err)
	}
	return nil
}

// GetByID retrieves a halqa with its active student count
func (r *HalqaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Halqa, error) {
	sql, args, err := r.selectHalqa().Where(squirrel.Eq{"h.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get halqa query: %w", err)
	}

	h, err := scanHalqa(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrHalqaNotFound
		}
		logger.Error().Err(err).Str("halqaID", id.String()).Msg("Error getting halqa")
		return nil, fmt.Errorf("error getting halqa: %w", err)
	}
	return h, nil
}

// List returns halqat matching filter ordered by name
func (r *HalqaRepository) List(ctx context.Context, filter dto.HalqaFilter) ([]*models.Halqa, error) {
	query := r.selectHalqa()
	if filter.TeacherID != nil {
		query = query.Where(squirrel.Eq{"h.teacher_id": *filter.TeacherID})
	}
	if filter.SupervisorID != nil {
		query = query.Where(squirrel.Eq{"h.supervisor_id": *filter.SupervisorID})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"h.is_active": *filter.IsActive})
	}

	sql, args, err := query.OrderBy("h.name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list halqat query: %w", err)
	}
	return r.list(ctx, sql, args)
}

// FindActiveConflicts returns active halqat that share a day with days and
// use either the same teacher or the same classroom. Time overlap is left to the caller.
func (r *HalqaRepository) FindActiveConflicts(ctx context.Context, teacherID, classroomID uuid.UUID, days []string) ([]*models.Halqa, error) {
	sql, args, err := r.selectHalqa().
		Where(squirrel.Eq{"h.is_active": true}).
		Where(squirrel.Expr("h.days && ?", days)).
		Where(squirrel.Or{
			squirrel.Eq{"h.teacher_id": teacherID},
			squirrel.Eq{"h.classroom_id": classroomID},
		}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("teacherID", teacherID.String()).Str("classroomID", classroomID.String()).Msg("Error building halqa conflict SQL")
		return nil, fmt.Errorf("failed to build halqa conflict query: %w", err)
	}
	return r.list(ctx, sql, args)
}

func (r *HalqaRepository) list(ctx context.Context, sql string, args []interface{}) ([]*models.Halqa, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying halqat")
		return nil, fmt.Errorf("error querying halqat: %w", err)
	}
	defer rows.Close()

	halqat := []*models.Halqa{}
	for rows.Next() {
		h, err := scanHalqa(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning halqa row: %w", err)
		}
		halqat = append(halqat, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating halqa rows: %w", err)
	}
	return halqat, nil
}

// Deactivate marks a halqa inactive
func (r *HalqaRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Update("halqat").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build deactivate halqa query: %w", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("halqaID", id.String()).Msg("Error deactivating halqa")
		return fmt.Errorf("error deactivating halqa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrHalqaNotFound
	}
	return nil
}
