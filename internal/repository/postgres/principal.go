package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cybersec-git-expert/catalog-governance/internal/model"
)

func (r *principalRepository) Create(ctx context.Context, principal *model.AdminPrincipal) error {
	query := `
		INSERT INTO admin_principals (
			id, email, name, password_hash, role, home_country, capabilities, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if principal.ID == uuid.Nil {
		principal.ID = uuid.New()
	}
	principal.CreatedAt = time.Now()
	principal.UpdatedAt = principal.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		principal.ID,
		principal.Email,
		principal.Name,
		principal.PasswordHash,
		principal.Role,
		principal.HomeCountry,
		principal.Capabilities,
		principal.CreatedAt,
		principal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create admin principal: %w", err)
	}
	return nil
}

func (r *principalRepository) Get(ctx context.Context, id uuid.UUID) (*model.AdminPrincipal, error) {
	query := `
		SELECT id, email, name, password_hash, role, home_country, capabilities, created_at, updated_at
		FROM admin_principals
		WHERE id = $1
	`
	var principal model.AdminPrincipal
	err := r.db.GetContext(ctx, &principal, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to get admin principal: %w", err)
	}
	return &principal, nil
}

func (r *principalRepository) GetByEmail(ctx context.Context, email string) (*model.AdminPrincipal, error) {
	query := `
		SELECT id, email, name, password_hash, role, home_country, capabilities, created_at, updated_at
		FROM admin_principals
		WHERE email = $1
	`
	var principal model.AdminPrincipal
	err := r.db.GetContext(ctx, &principal, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to get admin principal by email: %w", err)
	}
	return &principal, nil
}

func (r *principalRepository) List(ctx context.Context) ([]*model.AdminPrincipal, error) {
	query := `
		SELECT id, email, name, password_hash, role, home_country, capabilities, created_at, updated_at
		FROM admin_principals
		ORDER BY created_at DESC
	`
	var principals []*model.AdminPrincipal
	err := r.db.SelectContext(ctx, &principals, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin principals: %w", err)
	}
	return principals, nil
}
