package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cybersec-git-expert/catalog-governance/internal/model"
)

func (r *pageRepository) Create(ctx context.Context, page *model.ContentPage) error {
	query := `
		INSERT INTO content_pages (
			id, title, body, scope, owner_country, status, requires_approval, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if page.ID == uuid.Nil {
		page.ID = uuid.New()
	}
	page.CreatedAt = time.Now()
	page.UpdatedAt = page.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		page.ID,
		page.Title,
		page.Body,
		page.Scope,
		page.OwnerCountry,
		page.Status,
		page.RequiresApproval,
		page.CreatedBy,
		page.CreatedAt,
		page.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create content page: %w", err)
	}
	return nil
}

func (r *pageRepository) Get(ctx context.Context, id uuid.UUID) (*model.ContentPage, error) {
	query := `
		SELECT id, title, body, scope, owner_country, status, requires_approval, created_by, created_at, updated_at
		FROM content_pages
		WHERE id = $1
	`
	var page model.ContentPage
	err := r.db.GetContext(ctx, &page, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to get content page: %w", err)
	}
	return &page, nil
}

func (r *pageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.PageStatus, requiresApproval bool) error {
	query := `
		UPDATE content_pages
		SET status = $1, requires_approval = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, status, requiresApproval, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update page status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *pageRepository) UpdateContent(ctx context.Context, page *model.ContentPage) error {
	query := `
		UPDATE content_pages
		SET title = $1, body = $2, status = $3, requires_approval = $4, updated_at = $5
		WHERE id = $6
	`
	page.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		page.Title,
		page.Body,
		page.Status,
		page.RequiresApproval,
		page.UpdatedAt,
		page.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update page content: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *pageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM content_pages
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete content page: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *pageRepository) List(ctx context.Context, ownerCountry *string) ([]*model.ContentPage, error) {
	var query string
	var args []interface{}

	if ownerCountry != nil {
		query = `
			SELECT id, title, body, scope, owner_country, status, requires_approval, created_by, created_at, updated_at
			FROM content_pages
			WHERE owner_country = $1 OR scope = $2
			ORDER BY updated_at DESC
		`
		args = append(args, *ownerCountry, model.PageScopeCentralized)
	} else {
		query = `
			SELECT id, title, body, scope, owner_country, status, requires_approval, created_by, created_at, updated_at
			FROM content_pages
			ORDER BY updated_at DESC
		`
	}

	var pages []*model.ContentPage
	err := r.db.SelectContext(ctx, &pages, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list content pages: %w", err)
	}
	return pages, nil
}
