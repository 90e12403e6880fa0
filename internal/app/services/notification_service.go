package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/pkg/helpers"
	"github.com/madarij/center/internal/pkg/mailer"
	"github.com/rs/zerolog"
)

// NotificationService serves staff inboxes and mails important notifications
type NotificationService struct {
	notifications NotificationStore
	users         UserStore
	mailer        mailer.Mailer
	mailTimeout   time.Duration
	pending       sync.WaitGroup
	now           func() time.Time
	logger        zerolog.Logger
}

const defaultMailTimeout = 30 * time.Second

var _ Dispatcher = (*NotificationService)(nil)

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications NotificationStore, users UserStore, m mailer.Mailer, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		mailer:        m,
		mailTimeout:   defaultMailTimeout,
		now:           time.Now,
		logger:        logger,
	}
}

// List returns one page of the recipient's notifications with the unread total
func (s *NotificationService) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, page, size int) (*dto.NotificationListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	list, total, err := s.notifications.ListByRecipient(ctx, recipientID, unreadOnly, offset, limit)
	if err != nil {
		return nil, err
	}

	unread, err := s.notifications.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	return &dto.NotificationListResponse{
		Notifications: list,
		UnreadCount:   unread,
		Pagination:    helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// UnreadCount counts the recipient's unread notifications
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.notifications.CountUnread(ctx, recipientID)
}

// MarkRead marks one of the recipient's notifications read. Marking it again
// keeps the original read time.
func (s *NotificationService) MarkRead(ctx context.Context, recipientID, id uuid.UUID) (*models.Notification, error) {
	return s.notifications.MarkRead(ctx, id, recipientID, s.now())
}

// MarkAllRead marks every unread notification of the recipient read
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.notifications.MarkAllRead(ctx, recipientID, s.now())
}

// Dispatch e-mails high priority notifications to their recipient in the
// background so the caller never waits on the mail provider. Failures are
// logged and otherwise ignored.
func (s *NotificationService) Dispatch(ctx context.Context, n *models.Notification) {
	if n == nil || n.Priority != models.PriorityHigh {
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.mailTimeout)
		defer cancel()
		s.deliver(ctx, n)
	}()
}

func (s *NotificationService) deliver(ctx context.Context, n *models.Notification) {
	log := s.logger.With().
		Str("notificationID", n.ID.String()).
		Str("recipientID", n.RecipientID.String()).
		Logger()

	user, err := s.users.GetByID(ctx, n.RecipientID)
	if err != nil {
		log.Warn().Err(err).Msg("Could not load notification recipient for e-mail")
		return
	}

	msg := mailer.Message{
		ToName:      user.Name,
		ToEmail:     user.Email,
		Subject:     n.Title,
		TextContent: n.Message,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Warn().Err(err).Msg("Failed to e-mail notification")
		return
	}
	log.Debug().Msg("Notification e-mailed")
}

// Wait blocks until every e-mail started by Dispatch has finished or ctx is done.
func (s *NotificationService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
