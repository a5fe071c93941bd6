package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/cybersec-git-expert/catalog-governance/internal/model"
)

// All repository interfaces in one file
type (
	// OverrideRepository is the durable sparse map from
	// (entity type, entity id, country) to an activation override. It is the
	// only component allowed to write override rows.
	OverrideRepository interface {
		// Get returns the override for the key, or nil when no row exists.
		Get(ctx context.Context, key model.OverrideKey) (*model.ActivationOverride, error)
		// GetBatch returns only the overrides that exist among the given ids.
		GetBatch(ctx context.Context, entityType model.EntityType, entityIDs []string, countryCode string) ([]*model.ActivationOverride, error)
		List(ctx context.Context, entityType model.EntityType, countryCode string, p model.Pagination) ([]*model.ActivationOverride, error)
		// Upsert atomically creates or updates the row for the key. The
		// uniqueness constraint on the triple resolves concurrent first
		// toggles to a single row.
		Upsert(ctx context.Context, override *model.ActivationOverride) (*model.ActivationOverride, error)
	}

	PageRepository interface {
		Create(ctx context.Context, page *model.ContentPage) error
		Get(ctx context.Context, id uuid.UUID) (*model.ContentPage, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.PageStatus, requiresApproval bool) error
		UpdateContent(ctx context.Context, page *model.ContentPage) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, ownerCountry *string) ([]*model.ContentPage, error)
	}

	PrincipalRepository interface {
		Create(ctx context.Context, principal *model.AdminPrincipal) error
		Get(ctx context.Context, id uuid.UUID) (*model.AdminPrincipal, error)
		GetByEmail(ctx context.Context, email string) (*model.AdminPrincipal, error)
		List(ctx context.Context) ([]*model.AdminPrincipal, error)
	}
)
