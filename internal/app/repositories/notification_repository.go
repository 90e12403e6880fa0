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
	"github.com/madarij/center/internal/pkg/logger"
)

var notificationColumns = []string{
	"id", "recipient_id", "type", "title", "message", "related_student_id", "related_interview_id",
	"is_read", "read_at", "priority", "expires_at", "created_at",
}

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	base
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(conn db.DBTX) *NotificationRepository {
	return &NotificationRepository{base: newBase(conn)}
}

func scanNotification(r row) (*models.Notification, error) {
	n := &models.Notification{}
	err := r.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Message, &n.RelatedStudentID,
		&n.RelatedInterviewID, &n.IsRead, &n.ReadAt, &n.Priority, &n.ExpiresAt, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Create inserts an unread notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.IsRead = false
	n.ReadAt = nil

	sql, args, err := r.sb.Insert("notifications").
		Columns("id", "recipient_id", "type", "title", "message", "related_student_id",
			"related_interview_id", "is_read", "priority", "expires_at").
		Values(n.ID, n.RecipientID, n.Type, n.Title, n.Message, n.RelatedStudentID,
			n.RelatedInterviewID, false, n.Priority, n.ExpiresAt).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create notification SQL")
		return fmt.Errorf("failed to build create notification query: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&n.CreatedAt); err != nil {
		logger.Error().Err(err).Str("recipientID", n.RecipientID.String()).Msg("Error executing create notification query")
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

func recipientFilter(recipientID uuid.UUID, unreadOnly bool) squirrel.Sqlizer {
	eq := squirrel.Eq{"recipient_id": recipientID}
	if unreadOnly {
		eq["is_read"] = false
	}
	return eq
}

// ListByRecipient returns one page of a recipient's notifications, newest first, and the total count
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, offset uint64, limit int) ([]*models.Notification, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("notifications").
		Where(recipientFilter(recipientID, unreadOnly)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count notifications SQL")
		return nil, 0, fmt.Errorf("failed to build count notifications query: %w", err)
	}

	var total int64
	if err := r.conn(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Str("recipientID", recipientID.String()).Msg("Error counting notifications")
		return nil, 0, fmt.Errorf("error counting notifications: %w", err)
	}

	sql, args, err := r.sb.Select(notificationColumns...).
		From("notifications").
		Where(recipientFilter(recipientID, unreadOnly)).
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list notifications SQL")
		return nil, 0, fmt.Errorf("failed to build list notifications query: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("recipientID", recipientID.String()).Msg("Error executing list notifications query")
		return nil, 0, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	notifications := []*models.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning notification row during list")
			return nil, 0, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating notification rows")
		return nil, 0, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return notifications, total, nil
}

// CountUnread counts a recipient's unread notifications
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("notifications").
		Where(recipientFilter(recipientID, true)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count unread notifications SQL")
		return 0, fmt.Errorf("failed to build count unread query: %w", err)
	}

	var count int64
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Str("recipientID", recipientID.String()).Msg("Error counting unread notifications")
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead flags one of the recipient's notifications as read. The first
// read_at is kept, so marking twice is a no-op.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID, at time.Time) (*models.Notification, error) {
	sql, args, err := r.sb.Update("notifications").
		Set("is_read", true).
		Set("read_at", squirrel.Expr("COALESCE(read_at, ?)", at)).
		Where(squirrel.Eq{"id": id, "recipient_id": recipientID}).
		Suffix("RETURNING " + joinColumns(notificationColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building mark notification read SQL")
		return nil, fmt.Errorf("failed to build mark read query: %w", err)
	}

	n, err := scanNotification(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		logger.Error().Err(err).Str("notificationID", id.String()).Msg("Error executing mark notification read query")
		return nil, fmt.Errorf("error marking notification read: %w", err)
	}

	return n, nil
}

// MarkAllRead flags every unread notification of the recipient as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID, at time.Time) (int64, error) {
	sql, args, err := r.sb.Update("notifications").
		Set("is_read", true).
		Set("read_at", at).
		Where(recipientFilter(recipientID, true)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building mark all notifications read SQL")
		return 0, fmt.Errorf("failed to build mark all read query: %w", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("recipientID", recipientID.String()).Msg("Error executing mark all notifications read query")
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}

	return tag.RowsAffected(), nil
}
