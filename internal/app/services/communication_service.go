package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
	countryCode         = "20"
)

var phoneNoise = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\t", "")

// NormalizeWhatsAppNumber strips formatting from phone and puts it in the
// international form wa.me expects, without a leading plus. A local number
// starting with 0 gets the country code.
func NormalizeWhatsAppNumber(phone string) string {
	p := phoneNoise.Replace(strings.TrimSpace(phone))
	p = strings.TrimPrefix(p, "+")
	if strings.HasPrefix(p, "0") {
		p = countryCode + p[1:]
	}
	return p
}

// BuildWhatsAppLink returns a wa.me link opening a chat with phone prefilled with text
func BuildWhatsAppLink(phone, text string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", NormalizeWhatsAppNumber(phone), escaped)
}

func defaultWhatsAppMessage(studentName string) string {
	return fmt.Sprintf("Peace be upon you\n\nGuardian of student: %s\n\nMadarij Quran Memorization Center", studentName)
}

// CommunicationService records guardian contacts and builds WhatsApp links
type CommunicationService struct {
	logs     CommunicationStore
	students StudentStore
	logger   zerolog.Logger
}

// NewCommunicationService creates a new CommunicationService
func NewCommunicationService(logs CommunicationStore, students StudentStore, logger zerolog.Logger) *CommunicationService {
	return &CommunicationService{logs: logs, students: students, logger: logger}
}

// Log records that actorID contacted a student's guardian
func (s *CommunicationService) Log(ctx context.Context, actorID uuid.UUID, req *dto.CreateCommunicationLogRequest) (*models.CommunicationLog, error) {
	student, err := s.students.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if student.GuardianID != req.GuardianID {
		return nil, apperrors.NewValidationError("guardian %s is not the guardian of student %s", req.GuardianID, student.Name)
	}

	l := &models.CommunicationLog{
		StudentID:         req.StudentID,
		GuardianID:        req.GuardianID,
		InitiatedBy:       actorID,
		CommunicationType: req.CommunicationType,
		Purpose:           req.Purpose,
		Notes:             strings.TrimSpace(req.Notes),
	}
	if l.CommunicationType == "" {
		l.CommunicationType = models.CommunicationWhatsApp
	}
	if l.Purpose == "" {
		l.Purpose = models.PurposeGeneral
	}

	if err := s.logs.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// History returns the latest contacts with a student's guardian
func (s *CommunicationService) History(ctx context.Context, studentID uuid.UUID, limit int) ([]*models.CommunicationLog, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.logs.ListByStudent(ctx, studentID, limit)
}

// WhatsAppLink builds a chat link to the student's guardian. An empty message
// is replaced by a standard greeting.
func (s *CommunicationService) WhatsAppLink(ctx context.Context, studentID uuid.UUID, message string) (*dto.WhatsAppLinkResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	g := student.Guardian
	if g == nil {
		return nil, apperrors.ErrGuardianNotFound
	}
	if !g.WhatsAppEnabled {
		return nil, apperrors.NewValidationError("WhatsApp contact is disabled for guardian %s", g.Name)
	}

	if strings.TrimSpace(message) == "" {
		message = defaultWhatsAppMessage(student.Name)
	}

	return &dto.WhatsAppLinkResponse{
		StudentID:     student.ID,
		StudentName:   student.Name,
		GuardianID:    g.ID,
		GuardianName:  g.Name,
		GuardianPhone: g.Phone,
		WhatsAppURL:   BuildWhatsAppLink(g.WhatsAppNumber(), message),
	}, nil
}
