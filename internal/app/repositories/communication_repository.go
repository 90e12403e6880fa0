package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/db"
	"github.com/madarij/center/internal/pkg/apperrors"
	"github.com/madarij/center/internal/pkg/dberrors"
	"github.com/madarij/center/internal/pkg/logger"
)

// CommunicationRepository stores guardian contact logs
type CommunicationRepository struct {
	base
}

// NewCommunicationRepository creates a new CommunicationRepository
func NewCommunicationRepository(conn db.DBTX) *CommunicationRepository {
	return &CommunicationRepository{base: newBase(conn)}
}

// Create inserts a communication log entry
func (r *CommunicationRepository) Create(ctx context.Context, l *models.CommunicationLog) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("communication_logs").
		Columns("id", "student_id", "guardian_id", "initiated_by", "communication_type", "purpose", "notes").
		Values(l.ID, l.StudentID, l.GuardianID, l.InitiatedBy, l.CommunicationType, l.Purpose, l.Notes).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create communication log query: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&l.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", l.StudentID.String()).Msg("Error creating communication log")
		return fmt.Errorf("error creating communication log: %w", err)
	}
	return nil
}

// ListByStudent returns the most recent contact logs for a student, newest first
func (r *CommunicationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID, limit int) ([]*models.CommunicationLog, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT c.id, c.student_id, c.guardian_id, c.initiated_by, c.communication_type, c.purpose, c.notes,
		       c.created_at, u.name, g.name
		FROM communication_logs c
		JOIN users u ON u.id = c.initiated_by
		JOIN guardians g ON g.id = c.guardian_id
		WHERE c.student_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2`, studentID, limit)
	if err != nil {
		logger.Error().Err(err).Str("studentID", studentID.String()).Msg("Error listing communication logs")
		return nil, fmt.Errorf("error listing communication logs: %w", err)
	}
	defer rows.Close()

	logs := []*models.CommunicationLog{}
	for rows.Next() {
		l := &models.CommunicationLog{}
		if err := rows.Scan(&l.ID, &l.StudentID, &l.GuardianID, &l.InitiatedBy, &l.CommunicationType,
			&l.Purpose, &l.Notes, &l.CreatedAt, &l.InitiatorName, &l.GuardianName); err != nil {
			return nil, fmt.Errorf("error scanning communication log row: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating communication log rows: %w", err)
	}
	return logs, nil
}
