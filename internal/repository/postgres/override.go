package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/cybersec-git-expert/catalog-governance/internal/model"
)

func (r *overrideRepository) Get(ctx context.Context, key model.OverrideKey) (*model.ActivationOverride, error) {
	query := `
		SELECT id, entity_type, entity_id, country_code, is_active, entity_name, updated_by, created_at, updated_at
		FROM activation_overrides
		WHERE entity_type = $1 AND entity_id = $2 AND country_code = $3
	`
	var override model.ActivationOverride
	err := r.db.GetContext(ctx, &override, query, key.EntityType, key.EntityID, key.CountryCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get activation override: %w", err)
	}
	return &override, nil
}

func (r *overrideRepository) GetBatch(ctx context.Context, entityType model.EntityType, entityIDs []string, countryCode string) ([]*model.ActivationOverride, error) {
	if len(entityIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, entity_type, entity_id, country_code, is_active, entity_name, updated_by, created_at, updated_at
		FROM activation_overrides
		WHERE entity_type = $1 AND country_code = $2 AND entity_id = ANY($3)
	`
	var overrides []*model.ActivationOverride
	err := r.db.SelectContext(ctx, &overrides, query, entityType, countryCode, pq.Array(entityIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to batch get activation overrides: %w", err)
	}
	return overrides, nil
}

func (r *overrideRepository) List(ctx context.Context, entityType model.EntityType, countryCode string, p model.Pagination) ([]*model.ActivationOverride, error) {
	query := `
		SELECT id, entity_type, entity_id, country_code, is_active, entity_name, updated_by, created_at, updated_at
		FROM activation_overrides
		WHERE entity_type = $1 AND country_code = $2
		ORDER BY updated_at DESC
		LIMIT $3 OFFSET $4
	`
	var overrides []*model.ActivationOverride
	err := r.db.SelectContext(ctx, &overrides, query, entityType, countryCode, p.Limit(), p.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list activation overrides: %w", err)
	}
	return overrides, nil
}

// Upsert relies on the uniqueness constraint over the key triple. Two
// concurrent first toggles of the same key race on the INSERT; the loser's
// insert turns into the DO UPDATE, so exactly one row ever exists per key.
func (r *overrideRepository) Upsert(ctx context.Context, override *model.ActivationOverride) (*model.ActivationOverride, error) {
	query := `
		INSERT INTO activation_overrides (
			id, entity_type, entity_id, country_code, is_active, entity_name, updated_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (entity_type, entity_id, country_code) DO UPDATE
		SET is_active = EXCLUDED.is_active,
			entity_name = EXCLUDED.entity_name,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at
		RETURNING id, entity_type, entity_id, country_code, is_active, entity_name, updated_by, created_at, updated_at
	`
	now := time.Now()

	var saved model.ActivationOverride
	err := r.db.GetContext(ctx, &saved, query,
		uuid.New(),
		override.EntityType,
		override.EntityID,
		override.CountryCode,
		override.IsActive,
		override.EntityName,
		override.UpdatedBy,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert activation override: %w", err)
	}
	return &saved, nil
}
