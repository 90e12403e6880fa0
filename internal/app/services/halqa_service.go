package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/pkg/apperrors"
	"github.com/madarij/center/internal/pkg/helpers"
	"github.com/madarij/center/internal/pkg/validation"
	"github.com/rs/zerolog"
)

const defaultMaxStudents = 15

// TimesOverlap reports whether the half-open intervals [start1, end1) and
// [start2, end2) given as HH:MM intersect. Touching intervals do not overlap.
func TimesOverlap(start1, end1, start2, end2 string) (bool, error) {
	var m [4]int
	for i, s := range []string{start1, end1, start2, end2} {
		v, err := helpers.ClockMinutes(s)
		if err != nil {
			return false, err
		}
		m[i] = v
	}
	return m[0] < m[3] && m[2] < m[1], nil
}

// HalqaService manages classrooms and halqat
type HalqaService struct {
	halqat     HalqaStore
	classrooms ClassroomStore
	users      UserStore
	logger     zerolog.Logger
}

// NewHalqaService creates a new HalqaService
func NewHalqaService(halqat HalqaStore, classrooms ClassroomStore, users UserStore, logger zerolog.Logger) *HalqaService {
	return &HalqaService{halqat: halqat, classrooms: classrooms, users: users, logger: logger}
}

// CreateClassroom creates an active classroom
func (s *HalqaService) CreateClassroom(ctx context.Context, req *dto.CreateClassroomRequest) (*models.Classroom, error) {
	c := &models.Classroom{
		Name:        strings.TrimSpace(req.Name),
		Capacity:    req.Capacity,
		Description: strings.TrimSpace(req.Description),
	}
	if c.Name == "" {
		return nil, apperrors.NewValidationError("classroom name is required")
	}
	if err := s.classrooms.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListClassrooms returns every classroom
func (s *HalqaService) ListClassrooms(ctx context.Context) ([]*models.Classroom, error) {
	return s.classrooms.List(ctx)
}

// requireRole loads a user and checks it is an active holder of role
func (s *HalqaService) requireRole(ctx context.Context, id uuid.UUID, role models.Role, what string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role != role || !user.IsActive {
		return apperrors.NewValidationError("%s must be an active %s", what, role)
	}
	return nil
}

func normalizeDays(days []string) ([]string, error) {
	seen := make(map[string]bool, len(days))
	out := make([]string, 0, len(days))
	for _, d := range days {
		d = strings.ToLower(strings.TrimSpace(d))
		if _, ok := validation.ParseWeekday(d); !ok {
			return nil, apperrors.NewValidationError("invalid day %q", d)
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return nil, apperrors.NewValidationError("at least one day is required")
	}
	return out, nil
}

// CreateHalqa creates a halqa unless its teacher or classroom is already busy
// in an active halqa on a shared day at an overlapping time
func (s *HalqaService) CreateHalqa(ctx context.Context, req *dto.CreateHalqaRequest) (*models.Halqa, error) {
	days, err := normalizeDays(req.Days)
	if err != nil {
		return nil, err
	}
	start, err := helpers.ClockMinutes(req.StartTime)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid start time: %v", err)
	}
	end, err := helpers.ClockMinutes(req.EndTime)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid end time: %v", err)
	}
	if start >= end {
		return nil, apperrors.NewValidationError("start time must be before end time")
	}

	classroom, err := s.classrooms.GetByID(ctx, req.ClassroomID)
	if err != nil {
		return nil, err
	}
	if !classroom.IsActive {
		return nil, apperrors.NewValidationError("classroom %s is not active", classroom.Name)
	}
	if err := s.requireRole(ctx, req.TeacherID, models.RoleTeacher, "teacher"); err != nil {
		return nil, err
	}
	if err := s.requireRole(ctx, req.SupervisorID, models.RoleSupervisor, "supervisor"); err != nil {
		return nil, err
	}

	candidates, err := s.halqat.FindActiveConflicts(ctx, req.TeacherID, req.ClassroomID, days)
	if err != nil {
		return nil, err
	}
	for _, existing := range candidates {
		overlap, err := TimesOverlap(req.StartTime, req.EndTime, existing.StartTime, existing.EndTime)
		if err != nil {
			return nil, fmt.Errorf("halqa %s has an invalid schedule: %w", existing.ID, err)
		}
		if !overlap || !existing.SharesDayWith(days) {
			continue
		}
		if existing.TeacherID == req.TeacherID {
			return nil, apperrors.NewConflictError(fmt.Sprintf(
				"teacher already leads halqa %s at an overlapping time", existing.Name))
		}
		return nil, apperrors.NewConflictError(fmt.Sprintf(
			"classroom is already used by halqa %s at an overlapping time", existing.Name))
	}

	maxStudents := req.MaxStudents
	if maxStudents <= 0 {
		maxStudents = defaultMaxStudents
	}
	h := &models.Halqa{
		Name:         strings.TrimSpace(req.Name),
		ClassroomID:  req.ClassroomID,
		TeacherID:    req.TeacherID,
		SupervisorID: req.SupervisorID,
		Days:         days,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		MaxStudents:  maxStudents,
		Description:  strings.TrimSpace(req.Description),
	}
	if err := s.halqat.Create(ctx, h); err != nil {
		return nil, err
	}

	s.logger.Info().Str("halqaID", h.ID.String()).Str("teacherID", h.TeacherID.String()).Msg("Halqa created")
	return h, nil
}

// ListHalqat lists halqat visible to the caller. Supervisors only see the
// halqat they supervise and teachers the ones they teach.
func (s *HalqaService) ListHalqat(ctx context.Context, actorID uuid.UUID, role models.Role, filter dto.HalqaFilter) ([]*models.Halqa, error) {
	switch role {
	case models.RoleSupervisor:
		filter.SupervisorID = &actorID
	case models.RoleTeacher:
		filter.TeacherID = &actorID
	}
	return s.halqat.List(ctx, filter)
}

// GetHalqa returns a halqa with its enrolled student count
func (s *HalqaService) GetHalqa(ctx context.Context, id uuid.UUID) (*models.Halqa, error) {
	return s.halqat.GetByID(ctx, id)
}

// DeactivateHalqa marks a halqa inactive
func (s *HalqaService) DeactivateHalqa(ctx context.Context, id uuid.UUID) error {
	if err := s.halqat.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("halqaID", id.String()).Msg("Halqa deactivated")
	return nil
}
