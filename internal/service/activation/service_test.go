package activation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybersec-git-expert/catalog-governance/internal/model"
	"github.com/cybersec-git-expert/catalog-governance/internal/service/audit"
	apperrors "github.com/cybersec-git-expert/catalog-governance/pkg/errors"
)

// fakeOverrideRepo is an in-memory override store enforcing the uniqueness
// constraint on the key triple, the way the database does.
type fakeOverrideRepo struct {
	rows        map[model.OverrideKey]*model.ActivationOverride
	failAll     bool
	getCalls    int
	upsertCalls int
}

func newFakeOverrideRepo() *fakeOverrideRepo {
	return &fakeOverrideRepo{rows: make(map[model.OverrideKey]*model.ActivationOverride)}
}

func (f *fakeOverrideRepo) Get(ctx context.Context, key model.OverrideKey) (*model.ActivationOverride, error) {
	f.getCalls++
	if f.failAll {
		return nil, errors.New("connection refused")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, ok := f.rows[key]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (f *fakeOverrideRepo) GetBatch(ctx context.Context, entityType model.EntityType, entityIDs []string, countryCode string) ([]*model.ActivationOverride, error) {
	if f.failAll {
		return nil, errors.New("connection refused")
	}
	var found []*model.ActivationOverride
	for _, id := range entityIDs {
		key := model.OverrideKey{EntityType: entityType, EntityID: id, CountryCode: countryCode}
		if row, ok := f.rows[key]; ok {
			copied := *row
			found = append(found, &copied)
		}
	}
	return found, nil
}

func (f *fakeOverrideRepo) List(ctx context.Context, entityType model.EntityType, countryCode string, p model.Pagination) ([]*model.ActivationOverride, error) {
	if f.failAll {
		return nil, errors.New("connection refused")
	}
	var result []*model.ActivationOverride
	for _, row := range f.rows {
		if row.EntityType == entityType && row.CountryCode == countryCode {
			copied := *row
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeOverrideRepo) Upsert(ctx context.Context, override *model.ActivationOverride) (*model.ActivationOverride, error) {
	f.upsertCalls++
	if f.failAll {
		return nil, errors.New("connection refused")
	}
	key := override.Key()
	existing, ok := f.rows[key]
	now := time.Now()
	if ok {
		existing.IsActive = override.IsActive
		existing.EntityName = override.EntityName
		existing.UpdatedBy = override.UpdatedBy
		existing.UpdatedAt = now
		copied := *existing
		return &copied, nil
	}
	saved := *override
	saved.ID = uuid.New()
	saved.CreatedAt = now
	saved.UpdatedAt = now
	f.rows[key] = &saved
	copied := saved
	return &copied, nil
}

func superAdmin() *model.AdminPrincipal {
	return &model.AdminPrincipal{ID: uuid.New(), Role: model.RoleSuperAdmin}
}

func countryAdmin(country string) *model.AdminPrincipal {
	return &model.AdminPrincipal{ID: uuid.New(), Role: model.RoleCountryAdmin, HomeCountry: &country}
}

func newTestService(repo *fakeOverrideRepo) *Service {
	auditor := audit.NewEmitter(nil, zerolog.Nop())
	return NewService(repo, auditor, nil)
}

func key(id string) model.OverrideKey {
	return model.OverrideKey{EntityType: model.EntityTypeProduct, EntityID: id, CountryCode: "LK"}
}

func TestIsActiveDefaultsToTrue(t *testing.T) {
	svc := newTestService(newFakeOverrideRepo())

	active, err := svc.IsActive(context.Background(), key("p1"))
	require.NoError(t, err)
	assert.True(t, active, "entity without an override row must be active")
}

func TestUpsertCreatesSingleRow(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := newTestService(repo)
	actor := countryAdmin("LK")

	req := UpsertRequest{
		EntityType:  model.EntityTypeProduct,
		EntityID:    "p1",
		CountryCode: "LK",
		IsActive:    false,
	}

	first, err := svc.Upsert(context.Background(), actor, req)
	require.NoError(t, err)
	assert.False(t, first.IsActive)

	// A second identical toggle updates the row, never inserts a second one.
	second, err := svc.Upsert(context.Background(), actor, req)
	require.NoError(t, err)
	assert.False(t, second.IsActive)
	assert.Len(t, repo.rows, 1)
	assert.Equal(t, first.ID, second.ID)
}

func TestUpsertRoundTripToggle(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := newTestService(repo)
	actor := countryAdmin("LK")

	_, err := svc.Upsert(context.Background(), actor, UpsertRequest{
		EntityType: model.EntityTypeProduct, EntityID: "p1", CountryCode: "LK", IsActive: false,
	})
	require.NoError(t, err)

	back, err := svc.Upsert(context.Background(), actor, UpsertRequest{
		EntityType: model.EntityTypeProduct, EntityID: "p1", CountryCode: "LK", IsActive: true,
	})
	require.NoError(t, err)

	// Toggling back to active updates in place; the row survives for audit
	// history.
	assert.True(t, back.IsActive)
	assert.Len(t, repo.rows, 1)

	active, err := svc.IsActive(context.Background(), key("p1"))
	require.NoError(t, err)
	assert.True(t, active)
}

func TestUpsertDeniedForSuperAdmin(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := newTestService(repo)

	_, err := svc.Upsert(context.Background(), superAdmin(), UpsertRequest{
		EntityType: model.EntityTypeProduct, EntityID: "p1", CountryCode: "LK", IsActive: false,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
	assert.Zero(t, repo.upsertCalls, "denied toggle must not reach the store")
}

func TestUpsertDeniedCrossCountry(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := newTestService(repo)

	_, err := svc.Upsert(context.Background(), countryAdmin("LK"), UpsertRequest{
		EntityType: model.EntityTypeProduct, EntityID: "p1", CountryCode: "US", IsActive: false,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
	assert.Contains(t, err.Error(), "US")
	assert.Zero(t, repo.upsertCalls)
}

func TestIsActiveBatchAppliesOnlyFoundOverrides(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := newTestService(repo)
	actor := countryAdmin("LK")

	_, err := svc.Upsert(context.Background(), actor, UpsertRequest{
		EntityType: model.EntityTypeProduct, EntityID: "p2", CountryCode: "LK", IsActive: false,
	})
	require.NoError(t, err)

	statuses, err := svc.IsActiveBatch(context.Background(), model.EntityTypeProduct, []string{"p1", "p2", "p3"}, "LK")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"p1": true, "p2": false, "p3": true}, statuses)
}

func TestIsActiveBatchOtherCountryUnaffected(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := newTestService(repo)

	_, err := svc.Upsert(context.Background(), countryAdmin("LK"), UpsertRequest{
		EntityType: model.EntityTypeProduct, EntityID: "p2", CountryCode: "LK", IsActive: false,
	})
	require.NoError(t, err)

	statuses, err := svc.IsActiveBatch(context.Background(), model.EntityTypeProduct, []string{"p1", "p2"}, "US")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"p1": true, "p2": true}, statuses)
}

func TestListOverridesRequiresReadScope(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := newTestService(repo)

	_, err := svc.ListOverrides(context.Background(), countryAdmin("LK"), model.EntityTypeBrand, "US", model.Pagination{})
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))

	_, err = svc.ListOverrides(context.Background(), countryAdmin("LK"), model.EntityTypeBrand, "LK", model.Pagination{})
	assert.NoError(t, err)

	_, err = svc.ListOverrides(context.Background(), superAdmin(), model.EntityTypeBrand, "US", model.Pagination{})
	assert.NoError(t, err)
}

func TestStoreFailureIsIndeterminate(t *testing.T) {
	repo := newFakeOverrideRepo()
	repo.failAll = true
	svc := newTestService(repo)

	// A store outage must surface as unavailable, never silently default to
	// active or inactive.
	_, err := svc.IsActive(context.Background(), key("p1"))
	require.Error(t, err)
	assert.True(t, apperrors.IsStoreUnavailable(err))

	_, err = svc.IsActiveBatch(context.Background(), model.EntityTypeProduct, []string{"p1"}, "LK")
	require.Error(t, err)
	assert.True(t, apperrors.IsStoreUnavailable(err))
}

func TestTimedOutReadSurfacesStoreUnavailable(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := newTestService(repo)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := svc.IsActive(ctx, key("p1"))
	require.Error(t, err)
	assert.True(t, apperrors.IsStoreUnavailable(err))
}

func TestUpsertInvalidatesDecisionCache(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := newTestService(repo)
	actor := countryAdmin("LK")

	active, err := svc.IsActive(context.Background(), key("p1"))
	require.NoError(t, err)
	assert.True(t, active)

	_, err = svc.Upsert(context.Background(), actor, UpsertRequest{
		EntityType: model.EntityTypeProduct, EntityID: "p1", CountryCode: "LK", IsActive: false,
	})
	require.NoError(t, err)

	active, err = svc.IsActive(context.Background(), key("p1"))
	require.NoError(t, err)
	assert.False(t, active, "toggle must be visible immediately, not after cache expiry")
}

func TestIsActiveUsesCacheOnRepeatReads(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := newTestService(repo)

	_, err := svc.IsActive(context.Background(), key("p1"))
	require.NoError(t, err)
	_, err = svc.IsActive(context.Background(), key("p1"))
	require.NoError(t, err)

	assert.Equal(t, 1, repo.getCalls)
}
