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

var guardianColumns = []string{
	"id", "name", "phone", "alternate_phone", "address", "relationship",
	"whatsapp_enabled", "whatsapp_phone", "created_at", "updated_at",
}

// GuardianRepository handles guardian database operations
type GuardianRepository struct {
	base
}

// NewGuardianRepository creates a new GuardianRepository
func NewGuardianRepository(conn db.DBTX) *GuardianRepository {
	return &GuardianRepository{base: newBase(conn)}
}

func scanGuardian(r row) (*models.Guardian, error) {
	g := &models.Guardian{}
	err := r.Scan(&g.ID, &g.Name, &g.Phone, &g.AlternatePhone, &g.Address, &g.Relationship,
		&g.WhatsAppEnabled, &g.WhatsAppPhone, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

// Create inserts a guardian and fills in its id and timestamps
func (r *GuardianRepository) Create(ctx context.Context, g *models.Guardian) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("guardians").
		Columns("id", "name", "phone", "alternate_phone", "address", "relationship", "whatsapp_enabled", "whatsapp_phone").
		Values(g.ID, g.Name, g.Phone, g.AlternatePhone, g.Address, g.Relationship, g.WhatsAppEnabled, g.WhatsAppPhone).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create guardian SQL")
		return fmt.Errorf("failed to build create guardian query: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&g.CreatedAt, &g.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("guardianID", g.ID.String()).Msg("Error executing create guardian query")
		return fmt.Errorf("error creating guardian: %w", err)
	}

	return nil
}

// GetByID retrieves a guardian by ID
func (r *GuardianRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Guardian, error) {
	sql, args, err := r.sb.Select(guardianColumns...).
		From("guardians").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get guardian by ID SQL")
		return nil, fmt.Errorf("failed to build get guardian query: %w", err)
	}

	g, err := scanGuardian(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGuardianNotFound
		}
		logger.Error().Err(err).Str("guardianID", id.String()).Msg("Error scanning guardian row")
		return nil, fmt.Errorf("error getting guardian by ID: %w", err)
	}

	return g, nil
}

// Update overwrites a guardian's contact fields
func (r *GuardianRepository) Update(ctx context.Context, g *models.Guardian) error {
	sql, args, err := r.sb.Update("guardians").
		SetMap(map[string]interface{}{
			"name":             g.Name,
			"phone":            g.Phone,
			"alternate_phone":  g.AlternatePhone,
			"address":          g.Address,
			"relationship":     g.Relationship,
			"whatsapp_enabled": g.WhatsAppEnabled,
			"whatsapp_phone":   g.WhatsAppPhone,
			"updated_at":       squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": g.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update guardian SQL")
		return fmt.Errorf("failed to build update guardian query: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrGuardianNotFound
		}
		logger.Error().Err(err).Str("guardianID", g.ID.String()).Msg("Error executing update guardian query")
		return fmt.Errorf("error updating guardian: %w", err)
	}

	return nil
}
