// Package principal manages admin principal records. Its one real invariant
// is the privilege-escalation guard: no write may create or upgrade a
// principal to super admin unless the actor already is one.
package principal

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/cybersec-git-expert/catalog-governance/internal/model"
	"github.com/cybersec-git-expert/catalog-governance/internal/policy"
	"github.com/cybersec-git-expert/catalog-governance/internal/repository"
	"github.com/cybersec-git-expert/catalog-governance/internal/service/audit"
	"github.com/cybersec-git-expert/catalog-governance/pkg/errors"
	"github.com/cybersec-git-expert/catalog-governance/pkg/security"
	"github.com/cybersec-git-expert/catalog-governance/pkg/validator"
)

type Service struct {
	repo     repository.PrincipalRepository
	hasher   security.PasswordHasher
	auditor  *audit.Emitter
	validate *validator.Validator
}

func NewService(repo repository.PrincipalRepository, hasher security.PasswordHasher, auditor *audit.Emitter) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		auditor:  auditor,
		validate: validator.New(),
	}
}

// CreateRequest is a request to create an admin principal.
type CreateRequest struct {
	Email        string          `validate:"required,email"`
	Name         string          `validate:"required"`
	Password     string          `validate:"required,min=8"`
	Role         model.AdminRole `validate:"required"`
	HomeCountry  string          `validate:"omitempty,iso3166_1_alpha2"`
	Capabilities []string
}

// Create makes a new principal on behalf of the actor. The escalation guard
// runs before anything else: a country admin can never mint a super admin,
// regardless of capabilities held.
func (s *Service) Create(ctx context.Context, actor *model.AdminPrincipal, req CreateRequest) (*model.AdminPrincipal, error) {
	if !policy.CanCreatePrincipal(actor, req.Role) {
		s.auditDenied(ctx, actor, req.Role)
		return nil, errors.NewForbidden("create", "admin principal")
	}

	if !req.Role.Valid() {
		return nil, errors.NewBadRequest("invalid role", nil)
	}
	if err := s.validate.Validate(req); err != nil {
		return nil, errors.NewBadRequest(err.Error(), err)
	}

	principal := &model.AdminPrincipal{
		ID:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		Role:         req.Role,
		Capabilities: req.Capabilities,
	}

	switch req.Role {
	case model.RoleCountryAdmin:
		if req.HomeCountry == "" {
			return nil, errors.NewBadRequest("home_country is required for country admins", nil)
		}
		country := req.HomeCountry
		principal.HomeCountry = &country
	case model.RoleSuperAdmin:
		// Super admins are never country scoped; a supplied home country is
		// dropped rather than stored.
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.NewBadRequest("invalid password", err)
	}
	principal.PasswordHash = hash

	if err := s.repo.Create(ctx, principal); err != nil {
		return nil, errors.NewStoreUnavailable(err)
	}

	s.auditor.Emit(ctx, actor.ID, model.AuditOpCreatePrincipal, model.AuditDecisionAllowed, &audit.EmitOptions{
		EntityType:  "admin_principal",
		ResourceKey: principal.ID.String(),
		Metadata:    map[string]interface{}{"role": principal.Role},
	})
	return principal, nil
}

// Get returns one principal. Country admins may look up only themselves and
// principals for their own country; super admins see everyone.
func (s *Service) Get(ctx context.Context, actor *model.AdminPrincipal, id uuid.UUID) (*model.AdminPrincipal, error) {
	principal, err := s.repo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFound("admin principal", err)
		}
		return nil, errors.NewStoreUnavailable(err)
	}

	if actor.ID != principal.ID && !policy.CanRead(actor, principal.HomeCountryCode()) {
		return nil, errors.NewForbidden("read", "admin principal")
	}
	return principal, nil
}

// List returns the principals visible to the actor.
func (s *Service) List(ctx context.Context, actor *model.AdminPrincipal) ([]*model.AdminPrincipal, error) {
	principals, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewStoreUnavailable(err)
	}

	if actor.IsSuperAdmin() {
		return principals, nil
	}

	visible := make([]*model.AdminPrincipal, 0, len(principals))
	for _, p := range principals {
		if p.ID == actor.ID || policy.CanRead(actor, p.HomeCountryCode()) {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

func (s *Service) auditDenied(ctx context.Context, actor *model.AdminPrincipal, requestedRole model.AdminRole) {
	actorID := uuid.Nil
	if actor != nil {
		actorID = actor.ID
	}
	s.auditor.Emit(ctx, actorID, model.AuditOpCreatePrincipal, model.AuditDecisionDenied, &audit.EmitOptions{
		EntityType: "admin_principal",
		Metadata:   map[string]interface{}{"requested_role": requestedRole},
	})
}
