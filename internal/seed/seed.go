package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/services"
	"github.com/madarij/center/internal/pkg/apperrors"
	"github.com/madarij/center/internal/pkg/auth"
	"github.com/madarij/center/internal/pkg/validation"
	"github.com/rs/zerolog"
)

const defaultClassroomName = "Main Hall"

// Config names the director account created on first start
type Config struct {
	DirectorEmail    string
	DirectorPassword string
}

// Stores are the repositories seeding writes to
type Stores struct {
	Users       services.UserStore
	Assignments services.StaffAssignmentStore
	Classrooms  services.ClassroomStore
}

// CreateDefaultData makes a fresh database usable: a director account, that
// director as interview conductor, and one classroom. Existing data is left
// alone. Errors are collected so one failing step does not block the others.
func CreateDefaultData(ctx context.Context, stores Stores, cfg Config, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	director, err := ensureDirector(ctx, stores.Users, cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default director")
		finalErr = errors.Join(finalErr, err)
	}

	if director != nil {
		if err := ensureConductor(ctx, stores.Assignments, director, lgr); err != nil {
			lgr.Error().Err(err).Msg("Error assigning default interview conductor")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if err := ensureClassroom(ctx, stores.Classrooms, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating default classroom")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func ensureDirector(ctx context.Context, users services.UserStore, cfg Config, lgr zerolog.Logger) (*models.User, error) {
	if cfg.DirectorEmail == "" {
		return nil, nil
	}

	existing, err := users.GetByEmail(ctx, cfg.DirectorEmail)
	if err == nil {
		lgr.Debug().Str("email", existing.Email).Msg("Director account already exists, skipping creation")
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	if cfg.DirectorPassword == "" {
		lgr.Warn().Str("email", cfg.DirectorEmail).Msg("No seed director password configured, skipping director creation")
		return nil, nil
	}
	if len(cfg.DirectorPassword) < validation.PasswordMinLength {
		return nil, fmt.Errorf("seed director password must be at least %d characters", validation.PasswordMinLength)
	}

	hash, err := auth.HashPassword(cfg.DirectorPassword)
	if err != nil {
		return nil, err
	}
	director := &models.User{
		Name:     "Director",
		Email:    cfg.DirectorEmail,
		Password: hash,
		Role:     models.RoleDirector,
		IsActive: true,
	}
	if err := users.Create(ctx, director); err != nil {
		return nil, err
	}

	lgr.Info().Str("userID", director.ID.String()).Msg("Default director created")
	return director, nil
}

func ensureConductor(ctx context.Context, assignments services.StaffAssignmentStore, director *models.User, lgr zerolog.Logger) error {
	current, err := assignments.Get(ctx, models.DutyInterviewConductor)
	if err != nil {
		return err
	}
	if current != nil {
		return nil
	}
	if !director.IsActive || director.Role != models.RoleDirector {
		return nil
	}

	if err := assignments.Upsert(ctx, &models.StaffAssignment{
		Duty:   models.DutyInterviewConductor,
		UserID: director.ID,
	}); err != nil {
		return err
	}

	lgr.Info().Str("userID", director.ID.String()).Msg("Default interview conductor assigned")
	return nil
}

func ensureClassroom(ctx context.Context, classrooms services.ClassroomStore, lgr zerolog.Logger) error {
	list, err := classrooms.List(ctx)
	if err != nil {
		return err
	}
	if len(list) > 0 {
		return nil
	}

	c := &models.Classroom{Name: defaultClassroomName, Capacity: 30}
	if err := classrooms.Create(ctx, c); err != nil {
		return err
	}
	lgr.Info().Str("classroomID", c.ID.String()).Msg("Default classroom created")
	return nil
}
