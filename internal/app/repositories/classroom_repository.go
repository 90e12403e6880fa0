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

var classroomColumns = []string{"id", "name", "capacity", "is_active", "description", "created_at", "updated_at"}

// ClassroomRepository handles classroom database operations
type ClassroomRepository struct {
	base
}

// NewClassroomRepository creates a new ClassroomRepository
func NewClassroomRepository(conn db.DBTX) *ClassroomRepository {
	return &ClassroomRepository{base: newBase(conn)}
}

func scanClassroom(r row) (*models.Classroom, error) {
	c := &models.Classroom{}
	if err := r.Scan(&c.ID, &c.Name, &c.Capacity, &c.IsActive, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts an active classroom
func (r *ClassroomRepository) Create(ctx context.Context, c *models.Classroom) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.IsActive = true

	sql, args, err := r.sb.Insert("classrooms").
		Columns("id", "name", "capacity", "is_active", "description").
		Values(c.ID, c.Name, c.Capacity, c.IsActive, c.Description).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create classroom query: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("name", c.Name).Msg("Error creating classroom")
		return fmt.Errorf("error creating classroom: %w", err)
	}
	return nil
}

// GetByID retrieves a classroom by ID
func (r *ClassroomRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Classroom, error) {
	sql, args, err := r.sb.Select(classroomColumns...).
		From("classrooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get classroom query: %w", err)
	}

	c, err := scanClassroom(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassroomNotFound
		}
		logger.Error().Err(err).Str("classroomID", id.String()).Msg("Error getting classroom")
		return nil, fmt.Errorf("error getting classroom: %w", err)
	}
	return c, nil
}

// List returns every classroom ordered by name
func (r *ClassroomRepository) List(ctx context.Context) ([]*models.Classroom, error) {
	sql, args, err := r.sb.Select(classroomColumns...).From("classrooms").OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list classrooms query: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing classrooms")
		return nil, fmt.Errorf("error listing classrooms: %w", err)
	}
	defer rows.Close()

	classrooms := []*models.Classroom{}
	for rows.Next() {
		c, err := scanClassroom(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning classroom row: %w", err)
		}
		classrooms = append(classrooms, c)
	}
	return classrooms, rows.Err()
}
