package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/pkg/apperrors"
	"github.com/madarij/center/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// OnboardingService moves applicants through the onboarding workflow.
// Every transition reads the student, checks its precondition and then writes
// with UpdateIfStatus inside one transaction, so of two racing requests only
// one can succeed.
type OnboardingService struct {
	tx            Transactor
	students      StudentStore
	guardians     GuardianStore
	interviews    InterviewStore
	notifications NotificationStore
	halqat        HalqaStore
	directory     StaffDirectory
	dispatcher    Dispatcher
	slots         SlotPolicy
	now           func() time.Time
	logger        zerolog.Logger
}

// NewOnboardingService creates a new OnboardingService
func NewOnboardingService(
	tx Transactor,
	students StudentStore,
	guardians GuardianStore,
	interviews InterviewStore,
	notifications NotificationStore,
	halqat HalqaStore,
	directory StaffDirectory,
	dispatcher Dispatcher,
	slots SlotPolicy,
	logger zerolog.Logger,
) *OnboardingService {
	return &OnboardingService{
		tx:            tx,
		students:      students,
		guardians:     guardians,
		interviews:    interviews,
		notifications: notifications,
		halqat:        halqat,
		directory:     directory,
		dispatcher:    dispatcher,
		slots:         slots,
		now:           time.Now,
		logger:        logger,
	}
}

// newGuardian builds a guardian from inline input. Relationship defaults to
// father and WhatsApp is enabled unless switched off.
func newGuardian(in *dto.GuardianInput) (*models.Guardian, error) {
	g := &models.Guardian{
		Relationship:    models.DefaultRelationship,
		WhatsAppEnabled: true,
	}
	if err := applyGuardianInput(g, in); err != nil {
		return nil, err
	}
	return g, nil
}

func applyGuardianInput(g *models.Guardian, in *dto.GuardianInput) error {
	name, phone := strings.TrimSpace(in.Name), strings.TrimSpace(in.Phone)
	if name == "" {
		return apperrors.NewValidationError("guardian name is required")
	}
	if phone == "" {
		return apperrors.NewValidationError("guardian phone is required")
	}
	if in.Relationship != "" && !in.Relationship.IsValid() {
		return apperrors.NewValidationError("invalid guardian relationship %q", in.Relationship)
	}

	g.Name = name
	g.Phone = phone
	g.AlternatePhone = strings.TrimSpace(in.AlternatePhone)
	g.Address = strings.TrimSpace(in.Address)
	g.WhatsAppPhone = strings.TrimSpace(in.WhatsAppPhone)
	if in.Relationship != "" {
		g.Relationship = in.Relationship
	}
	if in.WhatsAppEnabled != nil {
		g.WhatsAppEnabled = *in.WhatsAppEnabled
	}
	return nil
}

// CreateApplication registers a new applicant in status New. The guardian is
// either an existing one referenced by id or created from inline data.
func (s *OnboardingService) CreateApplication(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Student, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("student name is required")
	}
	if !req.Stage.IsValid() {
		return nil, apperrors.NewValidationError("invalid stage %q", req.Stage)
	}
	if (req.GuardianID == nil) == (req.Guardian == nil) {
		return nil, apperrors.NewValidationError("exactly one of guardianId or guardian must be provided")
	}

	var guardian *models.Guardian
	if req.Guardian != nil {
		var err error
		if guardian, err = newGuardian(req.Guardian); err != nil {
			return nil, err
		}
	}

	student := &models.Student{
		Name:              name,
		Stage:             req.Stage,
		Notes:             strings.TrimSpace(req.Notes),
		ApplicationStatus: models.StatusNew,
		IsActive:          false,
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if guardian == nil {
			existing, err := s.guardians.GetByID(ctx, *req.GuardianID)
			if err != nil {
				return err
			}
			guardian = existing
		} else if err := s.guardians.Create(ctx, guardian); err != nil {
			return err
		}

		student.GuardianID = guardian.ID
		return s.students.Create(ctx, student)
	})
	if err != nil {
		return nil, err
	}

	student.Guardian = guardian
	s.logger.Info().
		Str("studentID", student.ID.String()).
		Str("guardianID", guardian.ID.String()).
		Msg("Application created")
	return student, nil
}

// transition loads the student inside the current transaction and checks that
// the workflow allows moving it to next
func (s *OnboardingService) transition(ctx context.Context, id uuid.UUID, next models.ApplicationStatus) (*models.Student, models.ApplicationStatus, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	from := student.ApplicationStatus
	if from.IsTerminal() {
		return nil, "", apperrors.NewInvalidStateError(
			"application is already %s and can no longer change", from)
	}
	if !from.CanTransitionTo(next) {
		return nil, "", apperrors.NewInvalidStateError(
			"cannot move application from %s to %s, expected %s", from, next, joinStatuses(models.Sources(next)))
	}
	return student, from, nil
}

func joinStatuses(statuses []models.ApplicationStatus) string {
	names := make([]string, len(statuses))
	for i, st := range statuses {
		names[i] = string(st)
	}
	return strings.Join(names, " or ")
}

func (s *OnboardingService) logTransition(id uuid.UUID, from, to models.ApplicationStatus) {
	s.logger.Info().
		Str("studentID", id.String()).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("Application status changed")
}

// MarkFormGiven records that the paper form was handed to the guardian
func (s *OnboardingService) MarkFormGiven(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	var student *models.Student
	var from models.ApplicationStatus
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		student, from, err = s.transition(ctx, id, models.StatusFormGiven)
		if err != nil {
			return err
		}
		student.ApplicationStatus = models.StatusFormGiven
		return s.students.UpdateIfStatus(ctx, student, from)
	})
	if err != nil {
		return nil, err
	}

	s.logTransition(id, from, models.StatusFormGiven)
	return student, nil
}

// SubmitForm records the completed form. Name and stage keep their previous
// values when omitted; the guardian is updated when guardian data is given.
func (s *OnboardingService) SubmitForm(ctx context.Context, id uuid.UUID, req *dto.SubmitFormRequest) (*models.Student, error) {
	if req.Stage != "" && !req.Stage.IsValid() {
		return nil, apperrors.NewValidationError("invalid stage %q", req.Stage)
	}
	if req.Age != nil && (*req.Age < 4 || *req.Age > 30) {
		return nil, apperrors.NewValidationError("age must be between 4 and 30")
	}

	var student *models.Student
	var from models.ApplicationStatus
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		student, from, err = s.transition(ctx, id, models.StatusFormSubmitted)
		if err != nil {
			return err
		}

		if name := strings.TrimSpace(req.Name); name != "" {
			student.Name = name
		}
		if req.Stage != "" {
			student.Stage = req.Stage
		}
		student.Age = req.Age
		student.DateOfBirth = req.DateOfBirth
		student.Notes = strings.TrimSpace(req.Notes)
		student.ApplicationStatus = models.StatusFormSubmitted

		if req.Guardian != nil {
			if student.Guardian == nil {
				if student.Guardian, err = s.guardians.GetByID(ctx, student.GuardianID); err != nil {
					return err
				}
			}
			if err := applyGuardianInput(student.Guardian, req.Guardian); err != nil {
				return err
			}
			if err := s.guardians.Update(ctx, student.Guardian); err != nil {
				return err
			}
		}

		return s.students.UpdateIfStatus(ctx, student, from)
	})
	if err != nil {
		return nil, err
	}

	s.logTransition(id, from, models.StatusFormSubmitted)
	return student, nil
}

// ScheduleInterview books the next interview slot with the assigned conductor
// and notifies them. The conductor is resolved before anything is written.
func (s *OnboardingService) ScheduleInterview(ctx context.Context, actorID, id uuid.UUID) (*dto.ScheduleInterviewResponse, error) {
	var (
		student      *models.Student
		interview    *models.Interview
		notification *models.Notification
	)

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var (
			from models.ApplicationStatus
			err  error
		)
		student, from, err = s.transition(ctx, id, models.StatusInterviewScheduled)
		if err != nil {
			return err
		}

		conductor, err := s.directory.InterviewConductor(ctx)
		if err != nil {
			return err
		}

		slot := NextInterviewSlot(s.now(), s.slots)
		student.ApplicationStatus = models.StatusInterviewScheduled
		student.InterviewDate = &slot.Date
		if err := s.students.UpdateIfStatus(ctx, student, from); err != nil {
			return err
		}

		interview = &models.Interview{
			StudentID:     student.ID,
			ScheduledDate: slot.Date,
			ScheduledBy:   actorID,
			ConductorID:   conductor.ID,
			Status:        models.InterviewScheduled,
			DayOfWeek:     slot.DayOfWeek,
			TimeSlot:      slot.TimeSlot,
		}
		if err := s.interviews.Create(ctx, interview); err != nil {
			return err
		}

		notification = interviewScheduledNotification(conductor.ID, student, interview)
		return s.notifications.Create(ctx, notification)
	})
	if err != nil {
		return nil, err
	}

	s.logTransition(id, models.StatusFormSubmitted, models.StatusInterviewScheduled)
	s.dispatcher.Dispatch(ctx, notification)

	return &dto.ScheduleInterviewResponse{
		Interview:    interview,
		Student:      student,
		Notification: notification,
	}, nil
}

// RecordResult completes the scheduled interview and applies its outcome to
// the student. Accepting activates the student and may place them in a halqa.
func (s *OnboardingService) RecordResult(ctx context.Context, actorID, id uuid.UUID, req *dto.RecordResultRequest) (*dto.InterviewResultResponse, error) {
	result, ok := models.ParseInterviewResult(req.Result)
	if !ok {
		return nil, apperrors.NewValidationError("invalid interview result %q: must be accepted, rejected or pending", req.Result)
	}

	next := result.ApplicationStatus()
	var (
		student      *models.Student
		interview    *models.Interview
		notification *models.Notification
	)

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var (
			from models.ApplicationStatus
			err  error
		)
		student, from, err = s.transition(ctx, id, next)
		if err != nil {
			return err
		}

		if result == models.ResultAccepted && req.HalqaID != nil {
			if err := s.checkHalqaOpen(ctx, *req.HalqaID); err != nil {
				return err
			}
		}

		now := s.now()
		notes := strings.TrimSpace(req.Notes)
		student.ApplicationStatus = next
		student.InterviewNotes = notes
		if result == models.ResultAccepted {
			student.IsActive = true
			student.AcceptedAt = &now
			student.AcceptedBy = &actorID
			student.HalqaID = req.HalqaID
		}
		if err := s.students.UpdateIfStatus(ctx, student, from); err != nil {
			return err
		}

		if interview, err = s.interviews.Complete(ctx, student.ID, result, notes, now); err != nil {
			return err
		}

		notification = interviewResultNotification(interview.ScheduledBy, student, interview)
		if notification == nil {
			return nil
		}
		return s.notifications.Create(ctx, notification)
	})
	if err != nil {
		return nil, err
	}

	s.logTransition(id, models.StatusInterviewScheduled, next)
	if notification != nil {
		s.dispatcher.Dispatch(ctx, notification)
	}

	return &dto.InterviewResultResponse{Interview: interview, Student: student}, nil
}

func (s *OnboardingService) checkHalqaOpen(ctx context.Context, halqaID uuid.UUID) error {
	halqa, err := s.halqat.GetByID(ctx, halqaID)
	if err != nil {
		return err
	}
	if !halqa.IsActive {
		return apperrors.NewValidationError("halqa %s is not active", halqa.Name)
	}
	if halqa.MaxStudents > 0 && halqa.StudentCount >= halqa.MaxStudents {
		return apperrors.NewConflictError(fmt.Sprintf("halqa %s is full", halqa.Name))
	}
	return nil
}

// GetApplication returns a student with its guardian
func (s *OnboardingService) GetApplication(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	return s.students.GetByID(ctx, id)
}

// ListPending returns applications still awaiting a decision, newest first
func (s *OnboardingService) ListPending(ctx context.Context) ([]*models.Student, error) {
	return s.students.ListByStatus(ctx, models.PendingStatuses)
}

// ListUpcomingInterviews returns scheduled interviews from today on
func (s *OnboardingService) ListUpcomingInterviews(ctx context.Context) ([]*models.Interview, error) {
	loc := s.slots.Location
	if loc == nil {
		loc = time.UTC
	}
	return s.interviews.ListUpcoming(ctx, helpers.StartOfDay(s.now().In(loc)))
}

// NextSlot previews the slot the next scheduled interview would get
func (s *OnboardingService) NextSlot() dto.InterviewSlot {
	return NextInterviewSlot(s.now(), s.slots)
}

func interviewScheduledNotification(recipient uuid.UUID, student *models.Student, iv *models.Interview) *models.Notification {
	return &models.Notification{
		RecipientID: recipient,
		Type:        models.NotificationInterviewScheduled,
		Title:       "New interview scheduled",
		Message: fmt.Sprintf("An interview with %s is scheduled on %s, %s",
			student.Name, iv.ScheduledDate.Format("Monday 2 January 2006"), iv.TimeSlot),
		RelatedStudentID:   &student.ID,
		RelatedInterviewID: &iv.ID,
		Priority:           models.PriorityHigh,
	}
}

// interviewResultNotification tells the scheduler of the interview about a
// final decision. Pending outcomes produce no notification.
func interviewResultNotification(recipient uuid.UUID, student *models.Student, iv *models.Interview) *models.Notification {
	n := &models.Notification{
		RecipientID:        recipient,
		RelatedStudentID:   &student.ID,
		RelatedInterviewID: &iv.ID,
		Priority:           models.PriorityMedium,
	}
	switch student.ApplicationStatus {
	case models.StatusAccepted:
		n.Type = models.NotificationStudentAccepted
		n.Title = "Student accepted"
		n.Message = fmt.Sprintf("%s was accepted after the interview", student.Name)
	case models.StatusRejected:
		n.Type = models.NotificationStudentRejected
		n.Title = "Student rejected"
		n.Message = fmt.Sprintf("%s was not accepted after the interview", student.Name)
	default:
		return nil
	}
	return n
}
