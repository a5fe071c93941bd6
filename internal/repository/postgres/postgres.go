package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/cybersec-git-expert/catalog-governance/internal/repository"
)

type overrideRepository struct {
	db *sqlx.DB
}

type pageRepository struct {
	db *sqlx.DB
}

type principalRepository struct {
	db *sqlx.DB
}

func NewOverrideRepository(db *sqlx.DB) repository.OverrideRepository {
	return &overrideRepository{db: db}
}

func NewPageRepository(db *sqlx.DB) repository.PageRepository {
	return &pageRepository{db: db}
}

func NewPrincipalRepository(db *sqlx.DB) repository.PrincipalRepository {
	return &principalRepository{db: db}
}
