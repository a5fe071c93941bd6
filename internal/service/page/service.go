// Package page governs the content-page publication lifecycle. The state
// machine is draft -> pending -> approved -> published, with rejected as a
// dead end for the revision; editing re-enters draft as a new revision.
package page

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
	"github.com/cybersec-git-expert/catalog-governance/pkg/metrics"
)

type Service struct {
	repo    repository.PageRepository
	auditor *audit.Emitter
	metrics *metrics.Metrics
}

func NewService(repo repository.PageRepository, auditor *audit.Emitter, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		auditor: auditor,
		metrics: m,
	}
}

// CreateRequest creates a page in draft.
type CreateRequest struct {
	Title        string
	Body         string
	Scope        model.PageScope
	OwnerCountry string
}

// Create makes a new draft page. A centralized page authored by a country
// admin always requires approval; one authored by a super admin never does.
// Country-specific pages belong to the author's country: a country admin may
// only create pages for their own country.
func (s *Service) Create(ctx context.Context, actor *model.AdminPrincipal, req CreateRequest) (*model.ContentPage, error) {
	page := &model.ContentPage{
		ID:        uuid.New(),
		Title:     req.Title,
		Body:      req.Body,
		Scope:     req.Scope,
		Status:    model.PageStatusDraft,
		CreatedBy: actor.ID,
	}

	switch req.Scope {
	case model.PageScopeCentralized:
		page.RequiresApproval = !actor.IsSuperAdmin()
	case model.PageScopeCountrySpecific:
		country := req.OwnerCountry
		if country == "" {
			country = actor.HomeCountryCode()
		}
		if country == "" {
			return nil, errors.NewBadRequest("owner_country is required for country-specific pages", nil)
		}
		if !policy.CanWriteResource(actor, country) {
			s.auditDenied(ctx, actor, model.AuditOpPageEdit, page.ID, country)
			return nil, errors.NewCountryForbidden(country)
		}
		page.OwnerCountry = &country
		page.RequiresApproval = !actor.IsSuperAdmin()
	default:
		return nil, errors.NewBadRequest("invalid page scope", nil)
	}

	if err := s.repo.Create(ctx, page); err != nil {
		return nil, errors.NewStoreUnavailable(err)
	}

	s.auditor.Emit(ctx, actor.ID, model.AuditOpPageEdit, model.AuditDecisionAllowed, &audit.EmitOptions{
		EntityType:  "content_page",
		ResourceKey: page.ID.String(),
		CountryCode: page.OwnerCountryCode(),
		Metadata:    map[string]interface{}{"action": "create", "scope": page.Scope},
	})
	return page, nil
}

// Get returns a page the actor may read.
func (s *Service) Get(ctx context.Context, actor *model.AdminPrincipal, id uuid.UUID) (*model.ContentPage, error) {
	page, err := s.getPage(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanRead(actor, page.ResourceCountry()) {
		return nil, errors.NewCountryForbidden(page.ResourceCountry())
	}
	return page, nil
}

// List returns pages visible to the actor. Super admins see everything;
// country admins see centralized pages plus their own country's pages.
func (s *Service) List(ctx context.Context, actor *model.AdminPrincipal) ([]*model.ContentPage, error) {
	var countryFilter *string
	if !actor.IsSuperAdmin() {
		home := actor.HomeCountryCode()
		countryFilter = &home
	}

	pages, err := s.repo.List(ctx, countryFilter)
	if err != nil {
		return nil, errors.NewStoreUnavailable(err)
	}
	return pages, nil
}

// Transition applies one lifecycle event to a page on behalf of the actor.
// The decision is made in two passes: first whether this actor may request
// the event at all (Forbidden), then whether the event is legal from the
// page's current state (InvalidTransition).
func (s *Service) Transition(ctx context.Context, actor *model.AdminPrincipal, id uuid.UUID, event model.PageEvent) (*model.ContentPage, error) {
	page, err := s.getPage(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := s.resolve(actor, page, event)
	if err != nil {
		if errors.IsForbidden(err) {
			s.auditDenied(ctx, actor, model.AuditOpPageTransition, id, page.ResourceCountry())
			if s.metrics != nil {
				s.metrics.PageTransitions.WithLabelValues(string(event), "denied").Inc()
			}
		}
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, next, page.RequiresApproval); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFound("content page", err)
		}
		return nil, errors.NewStoreUnavailable(err)
	}
	page.Status = next

	s.auditor.Emit(ctx, actor.ID, model.AuditOpPageTransition, model.AuditDecisionAllowed, &audit.EmitOptions{
		EntityType:  "content_page",
		ResourceKey: id.String(),
		CountryCode: page.OwnerCountryCode(),
		Metadata:    map[string]interface{}{"event": event, "to": next},
	})
	if s.metrics != nil {
		s.metrics.PageTransitions.WithLabelValues(string(event), "allowed").Inc()
	}
	return page, nil
}

// resolve computes the target state for (page, event, actor) per the
// transition table, or the error describing why it cannot happen.
func (s *Service) resolve(actor *model.AdminPrincipal, page *model.ContentPage, event model.PageEvent) (model.PageStatus, error) {
	switch event {
	case model.PageEventSubmit:
		if page.Status != model.PageStatusDraft {
			return "", errors.NewInvalidTransition(string(page.Status), string(event))
		}
		if !s.ownsPage(actor, page) {
			return "", errors.NewCountryForbidden(page.ResourceCountry())
		}
		// A centralized page submitted by a country admin always routes
		// through pending, even if the draft was created without the flag.
		if page.Scope == model.PageScopeCentralized && !actor.IsSuperAdmin() {
			page.RequiresApproval = true
		}
		if page.RequiresApproval {
			return model.PageStatusPending, nil
		}
		return model.PageStatusApproved, nil

	case model.PageEventApprove:
		if page.Status != model.PageStatusPending {
			return "", errors.NewInvalidTransition(string(page.Status), string(event))
		}
		if !actor.IsSuperAdmin() {
			return "", errors.NewForbidden("approve", "content page")
		}
		return model.PageStatusApproved, nil

	case model.PageEventReject:
		if page.Status != model.PageStatusPending {
			return "", errors.NewInvalidTransition(string(page.Status), string(event))
		}
		if !actor.IsSuperAdmin() {
			return "", errors.NewForbidden("reject", "content page")
		}
		return model.PageStatusRejected, nil

	case model.PageEventPublish:
		if page.Status != model.PageStatusApproved {
			return "", errors.NewInvalidTransition(string(page.Status), string(event))
		}
		if !actor.IsSuperAdmin() {
			return "", errors.NewForbidden("publish", "content page")
		}
		return model.PageStatusPublished, nil

	default:
		return "", errors.NewInvalidTransition(string(page.Status), string(event))
	}
}

// EditRequest updates a page's content.
type EditRequest struct {
	Title string
	Body  string
}

// Edit rewrites the page content and returns it to draft as a new revision.
// Editing is allowed from any state including published and rejected; a
// centralized page edited by a country admin requires re-approval.
func (s *Service) Edit(ctx context.Context, actor *model.AdminPrincipal, id uuid.UUID, req EditRequest) (*model.ContentPage, error) {
	page, err := s.getPage(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.ownsPage(actor, page) {
		s.auditDenied(ctx, actor, model.AuditOpPageEdit, id, page.ResourceCountry())
		return nil, errors.NewCountryForbidden(page.ResourceCountry())
	}

	page.Title = req.Title
	page.Body = req.Body
	page.Status = model.PageStatusDraft
	if page.Scope == model.PageScopeCentralized {
		page.RequiresApproval = !actor.IsSuperAdmin()
	}

	if err := s.repo.UpdateContent(ctx, page); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFound("content page", err)
		}
		return nil, errors.NewStoreUnavailable(err)
	}

	s.auditor.Emit(ctx, actor.ID, model.AuditOpPageEdit, model.AuditDecisionAllowed, &audit.EmitOptions{
		EntityType:  "content_page",
		ResourceKey: id.String(),
		CountryCode: page.OwnerCountryCode(),
	})
	return page, nil
}

// Delete removes a page. Published or centralized pages have cross-tenant
// impact and are super admin only; a country admin may delete only their own
// country's country-specific drafts.
func (s *Service) Delete(ctx context.Context, actor *model.AdminPrincipal, id uuid.UUID) error {
	page, err := s.getPage(ctx, id)
	if err != nil {
		return err
	}

	if !s.canDelete(actor, page) {
		s.auditDenied(ctx, actor, model.AuditOpPageDelete, id, page.ResourceCountry())
		return errors.NewForbidden("delete", "content page")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFound("content page", err)
		}
		return errors.NewStoreUnavailable(err)
	}

	s.auditor.Emit(ctx, actor.ID, model.AuditOpPageDelete, model.AuditDecisionAllowed, &audit.EmitOptions{
		EntityType:  "content_page",
		ResourceKey: id.String(),
		CountryCode: page.OwnerCountryCode(),
	})
	return nil
}

// ownsPage reports whether the actor may author changes to the page: super
// admins always, country admins for their own country's pages and for
// centralized pages (whose submissions then require approval).
func (s *Service) ownsPage(actor *model.AdminPrincipal, page *model.ContentPage) bool {
	if actor.IsSuperAdmin() {
		return true
	}
	if page.Scope == model.PageScopeCentralized {
		return true
	}
	return policy.CanWriteResource(actor, page.OwnerCountryCode())
}

func (s *Service) canDelete(actor *model.AdminPrincipal, page *model.ContentPage) bool {
	if actor.IsSuperAdmin() {
		return true
	}
	// Country admins may remove only their own country's drafts; anything
	// further along the lifecycle is super admin territory.
	if page.Scope != model.PageScopeCountrySpecific || page.Status != model.PageStatusDraft {
		return false
	}
	return policy.CanWriteResource(actor, page.OwnerCountryCode())
}

func (s *Service) getPage(ctx context.Context, id uuid.UUID) (*model.ContentPage, error) {
	page, err := s.repo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFound("content page", err)
		}
		return nil, errors.NewStoreUnavailable(err)
	}
	return page, nil
}

func (s *Service) auditDenied(ctx context.Context, actor *model.AdminPrincipal, operation string, id uuid.UUID, countryCode string) {
	actorID := uuid.Nil
	if actor != nil {
		actorID = actor.ID
	}
	s.auditor.Emit(ctx, actorID, operation, model.AuditDecisionDenied, &audit.EmitOptions{
		EntityType:  "content_page",
		ResourceKey: id.String(),
		CountryCode: countryCode,
	})
}
