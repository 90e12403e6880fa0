package services

import (
	"context"
	"fmt"
	"time"

	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// ReminderService notifies conductors the day before their interviews
type ReminderService struct {
	tx            Transactor
	interviews    InterviewStore
	notifications NotificationStore
	dispatcher    Dispatcher
	location      *time.Location
	now           func() time.Time
	logger        zerolog.Logger
}

// NewReminderService creates a new ReminderService. Calendar days are
// evaluated in loc.
func NewReminderService(tx Transactor, interviews InterviewStore, notifications NotificationStore, dispatcher Dispatcher, loc *time.Location, logger zerolog.Logger) *ReminderService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderService{
		tx:            tx,
		interviews:    interviews,
		notifications: notifications,
		dispatcher:    dispatcher,
		location:      loc,
		now:           time.Now,
		logger:        logger,
	}
}

// tomorrow returns the bounds of the next calendar day
func (s *ReminderService) tomorrow() (time.Time, time.Time) {
	today := helpers.StartOfDay(s.now().In(s.location))
	return today.AddDate(0, 0, 1), today.AddDate(0, 0, 2)
}

// SendInterviewReminders reminds conductors of interviews scheduled for
// tomorrow. Each interview is reminded at most once, even across concurrent runs.
// It returns the number of reminders sent.
func (s *ReminderService) SendInterviewReminders(ctx context.Context) (int, error) {
	from, to := s.tomorrow()
	due, err := s.interviews.ListDueForReminder(ctx, from, to)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, iv := range due {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		n, err := s.remind(ctx, iv)
		if err != nil {
			s.logger.Error().Err(err).Str("interviewID", iv.ID.String()).Msg("Failed to send interview reminder")
			continue
		}
		if n == nil {
			continue
		}
		sent++
		s.dispatcher.Dispatch(ctx, n)
	}

	s.logger.Info().Int("due", len(due)).Int("sent", sent).Msg("Interview reminders processed")
	return sent, nil
}

// remind stamps the interview and creates its notification in one
// transaction. It returns nil when another run already reminded it.
func (s *ReminderService) remind(ctx context.Context, iv *models.Interview) (*models.Notification, error) {
	var n *models.Notification
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		marked, err := s.interviews.MarkReminded(ctx, iv.ID, s.now())
		if err != nil || !marked {
			return err
		}

		name := "a student"
		if iv.Student != nil && iv.Student.Name != "" {
			name = iv.Student.Name
		}
		n = &models.Notification{
			RecipientID: iv.ConductorID,
			Type:        models.NotificationInterviewReminder,
			Title:       "Interview tomorrow",
			Message: fmt.Sprintf("Reminder: interview with %s tomorrow, %s",
				name, iv.ScheduledDate.In(s.location).Format("Monday 2 January 2006 15:04")),
			RelatedStudentID:   &iv.StudentID,
			RelatedInterviewID: &iv.ID,
			Priority:           models.PriorityHigh,
		}
		return s.notifications.Create(ctx, n)
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}
