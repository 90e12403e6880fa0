package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/db"
	"github.com/madarij/center/internal/pkg/apperrors"
	"github.com/madarij/center/internal/pkg/dberrors"
	"github.com/madarij/center/internal/pkg/logger"
)

// StaffAssignmentRepository stores which user holds each duty
type StaffAssignmentRepository struct {
	base
}

// NewStaffAssignmentRepository creates a new StaffAssignmentRepository
func NewStaffAssignmentRepository(conn db.DBTX) *StaffAssignmentRepository {
	return &StaffAssignmentRepository{base: newBase(conn)}
}

// Get returns the assignment for duty together with the assigned user.
// A duty nobody holds yields (nil, nil).
func (r *StaffAssignmentRepository) Get(ctx context.Context, duty models.Duty) (*models.StaffAssignment, error) {
	a := &models.StaffAssignment{User: &models.User{}}
	u := a.User
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT sa.duty, sa.user_id, sa.assigned_by, sa.assigned_at,
		       u.id, u.name, u.email, u.role, u.is_active, u.phone
		FROM staff_assignments sa
		JOIN users u ON u.id = sa.user_id
		WHERE sa.duty = $1`, duty).
		Scan(&a.Duty, &a.UserID, &a.AssignedBy, &a.AssignedAt,
			&u.ID, &u.Name, &u.Email, &u.Role, &u.IsActive, &u.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("duty", string(duty)).Msg("Error getting staff assignment")
		return nil, fmt.Errorf("error getting staff assignment: %w", err)
	}
	return a, nil
}

// Upsert assigns the duty, replacing any previous holder
func (r *StaffAssignmentRepository) Upsert(ctx context.Context, a *models.StaffAssignment) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO staff_assignments (duty, user_id, assigned_by, assigned_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (duty) DO UPDATE
		SET user_id = EXCLUDED.user_id, assigned_by = EXCLUDED.assigned_by, assigned_at = EXCLUDED.assigned_at
		RETURNING assigned_at`,
		a.Duty, a.UserID, a.AssignedBy).Scan(&a.AssignedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("duty", string(a.Duty)).Msg("Error upserting staff assignment")
		return fmt.Errorf("error saving staff assignment: %w", err)
	}
	return nil
}
