// Package activation implements the activation override store: the sparse
// per-country exceptions that decide whether a globally-defined catalog
// entity is active for a given tenant. One generic service covers every
// entity type; there are no per-type code paths.
package activation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/cybersec-git-expert/catalog-governance/internal/model"
	"github.com/cybersec-git-expert/catalog-governance/internal/policy"
	"github.com/cybersec-git-expert/catalog-governance/internal/repository"
	"github.com/cybersec-git-expert/catalog-governance/internal/service/audit"
	"github.com/cybersec-git-expert/catalog-governance/pkg/errors"
	"github.com/cybersec-git-expert/catalog-governance/pkg/metrics"
)

const (
	cacheTTL     = 30 * time.Second
	cacheCleanup = 5 * time.Minute
)

type Service struct {
	repo    repository.OverrideRepository
	auditor *audit.Emitter
	metrics *metrics.Metrics
	// cache is the read-through decision cache for resolved activation
	// status. Short TTL; invalidated on upsert so a toggle is visible to the
	// next request on this instance.
	cache *gocache.Cache
}

func NewService(repo repository.OverrideRepository, auditor *audit.Emitter, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		auditor: auditor,
		metrics: m,
		cache:   gocache.New(cacheTTL, cacheCleanup),
	}
}

func cacheKey(key model.OverrideKey) string {
	return fmt.Sprintf("%s:%s:%s", key.EntityType, key.EntityID, key.CountryCode)
}

// IsActive resolves the activation status of one entity in one country.
// No override row means active; only an explicit override turns an entity
// off. A store failure is reported as StoreUnavailable, never defaulted:
// callers must treat the status as indeterminate.
func (s *Service) IsActive(ctx context.Context, key model.OverrideKey) (bool, error) {
	if cached, found := s.cache.Get(cacheKey(key)); found {
		return cached.(bool), nil
	}

	override, err := s.repo.Get(ctx, key)
	if err != nil {
		return false, errors.NewStoreUnavailable(err)
	}

	active := true
	if override != nil {
		active = override.IsActive
	}
	s.cache.Set(cacheKey(key), active, cacheTTL)
	return active, nil
}

// IsActiveBatch resolves activation for many entities at once. Every id
// defaults to true and only the overrides found are applied, so the work is
// proportional to the number of overrides, not the number of entities.
func (s *Service) IsActiveBatch(ctx context.Context, entityType model.EntityType, entityIDs []string, countryCode string) (map[string]bool, error) {
	result := make(map[string]bool, len(entityIDs))
	for _, id := range entityIDs {
		result[id] = true
	}

	overrides, err := s.repo.GetBatch(ctx, entityType, entityIDs, countryCode)
	if err != nil {
		return nil, errors.NewStoreUnavailable(err)
	}

	for _, override := range overrides {
		result[override.EntityID] = override.IsActive
	}
	return result, nil
}

// ListOverrides returns the override rows for one entity type and country.
// Each call is a fresh query; no cursor state is retained.
func (s *Service) ListOverrides(ctx context.Context, actor *model.AdminPrincipal, entityType model.EntityType, countryCode string, p model.Pagination) ([]*model.ActivationOverride, error) {
	if !policy.CanRead(actor, countryCode) {
		s.auditDenied(ctx, actor, model.AuditOpListOverrides, entityType, "", countryCode)
		return nil, errors.NewCountryForbidden(countryCode)
	}

	overrides, err := s.repo.List(ctx, entityType, countryCode, p)
	if err != nil {
		return nil, errors.NewStoreUnavailable(err)
	}
	return overrides, nil
}

// UpsertRequest is the typed toggle request. A single struct instead of
// positional arguments so callers cannot misorder entity id and country.
type UpsertRequest struct {
	EntityType  model.EntityType
	EntityID    string
	CountryCode string
	IsActive    bool
	// EntityName is an optional display snapshot stored with the row.
	EntityName string
}

// Upsert toggles an entity's activation for one country. Authorization is
// checked before any I/O: only the target country's own admin may toggle, and
// a timed-out check never lets the write proceed. The storage upsert is
// atomic on the key triple so concurrent toggles cannot create duplicate
// rows; the last write wins.
func (s *Service) Upsert(ctx context.Context, actor *model.AdminPrincipal, req UpsertRequest) (*model.ActivationOverride, error) {
	if !policy.CanToggleActivation(actor, req.CountryCode) {
		s.auditDenied(ctx, actor, model.AuditOpToggleActivation, req.EntityType, req.EntityID, req.CountryCode)
		if s.metrics != nil {
			s.metrics.ActivationToggles.WithLabelValues(string(req.EntityType), "denied").Inc()
		}
		return nil, errors.NewCountryForbidden(req.CountryCode)
	}

	override := &model.ActivationOverride{
		EntityType:  req.EntityType,
		EntityID:    req.EntityID,
		CountryCode: req.CountryCode,
		IsActive:    req.IsActive,
		EntityName:  req.EntityName,
		UpdatedBy:   actor.ID,
	}

	saved, err := s.repo.Upsert(ctx, override)
	if err != nil {
		return nil, errors.NewStoreUnavailable(err)
	}

	s.cache.Delete(cacheKey(saved.Key()))

	s.auditor.Emit(ctx, actor.ID, model.AuditOpToggleActivation, model.AuditDecisionAllowed, &audit.EmitOptions{
		EntityType:  string(req.EntityType),
		ResourceKey: req.EntityID,
		CountryCode: req.CountryCode,
		Metadata:    map[string]interface{}{"is_active": req.IsActive},
	})
	if s.metrics != nil {
		s.metrics.ActivationToggles.WithLabelValues(string(req.EntityType), "allowed").Inc()
	}

	return saved, nil
}

func (s *Service) auditDenied(ctx context.Context, actor *model.AdminPrincipal, operation string, entityType model.EntityType, entityID, countryCode string) {
	actorID := uuid.Nil
	if actor != nil {
		actorID = actor.ID
	}
	s.auditor.Emit(ctx, actorID, operation, model.AuditDecisionDenied, &audit.EmitOptions{
		EntityType:  string(entityType),
		ResourceKey: entityID,
		CountryCode: countryCode,
	})
}
