package principal

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybersec-git-expert/catalog-governance/internal/model"
	"github.com/cybersec-git-expert/catalog-governance/internal/service/audit"
	apperrors "github.com/cybersec-git-expert/catalog-governance/pkg/errors"
	"github.com/cybersec-git-expert/catalog-governance/pkg/security"
)

type fakePrincipalRepo struct {
	principals map[uuid.UUID]*model.AdminPrincipal
}

func newFakePrincipalRepo() *fakePrincipalRepo {
	return &fakePrincipalRepo{principals: make(map[uuid.UUID]*model.AdminPrincipal)}
}

func (f *fakePrincipalRepo) Create(ctx context.Context, p *model.AdminPrincipal) error {
	copied := *p
	f.principals[p.ID] = &copied
	return nil
}

func (f *fakePrincipalRepo) Get(ctx context.Context, id uuid.UUID) (*model.AdminPrincipal, error) {
	p, ok := f.principals[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *p
	return &copied, nil
}

func (f *fakePrincipalRepo) GetByEmail(ctx context.Context, email string) (*model.AdminPrincipal, error) {
	for _, p := range f.principals {
		if p.Email == email {
			copied := *p
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakePrincipalRepo) List(ctx context.Context) ([]*model.AdminPrincipal, error) {
	var result []*model.AdminPrincipal
	for _, p := range f.principals {
		copied := *p
		result = append(result, &copied)
	}
	return result, nil
}

func newTestService(repo *fakePrincipalRepo) *Service {
	return NewService(repo, security.NewBcryptHasher(4), audit.NewEmitter(nil, zerolog.Nop()))
}

func superAdmin() *model.AdminPrincipal {
	return &model.AdminPrincipal{ID: uuid.New(), Role: model.RoleSuperAdmin}
}

func countryAdmin(country string, capabilities ...string) *model.AdminPrincipal {
	return &model.AdminPrincipal{
		ID:           uuid.New(),
		Role:         model.RoleCountryAdmin,
		HomeCountry:  &country,
		Capabilities: capabilities,
	}
}

func validRequest(role model.AdminRole) CreateRequest {
	req := CreateRequest{
		Email:    "new.admin@example.com",
		Name:     "New Admin",
		Password: "s3cret-enough",
		Role:     role,
	}
	if role == model.RoleCountryAdmin {
		req.HomeCountry = "LK"
	}
	return req
}

func TestSuperAdminCreatesAnyRole(t *testing.T) {
	repo := newFakePrincipalRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	for _, role := range []model.AdminRole{model.RoleSuperAdmin, model.RoleCountryAdmin} {
		req := validRequest(role)
		req.Email = string(role) + "@example.com"
		created, err := svc.Create(ctx, superAdmin(), req)
		require.NoError(t, err, "super admin creating %s", role)
		assert.Equal(t, role, created.Role)
	}
	assert.Len(t, repo.principals, 2)
}

func TestCountryAdminCannotMintSuperAdmin(t *testing.T) {
	repo := newFakePrincipalRepo()
	svc := newTestService(repo)

	// no capability set makes this legal, not even the user-management one
	actors := []*model.AdminPrincipal{
		countryAdmin("LK"),
		countryAdmin("LK", model.CapabilityAdminUsersManagement),
		countryAdmin("LK", model.CapabilityAdminUsersManagement, model.CapabilityBusinessManagement),
	}
	for _, actor := range actors {
		_, err := svc.Create(context.Background(), actor, validRequest(model.RoleSuperAdmin))
		require.Error(t, err)
		assert.True(t, apperrors.IsForbidden(err))
	}
	assert.Empty(t, repo.principals, "denied creations must not be stored")
}

func TestCountryAdminNeedsUserManagementCapability(t *testing.T) {
	repo := newFakePrincipalRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, countryAdmin("LK"), validRequest(model.RoleCountryAdmin))
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))

	created, err := svc.Create(ctx, countryAdmin("LK", model.CapabilityAdminUsersManagement), validRequest(model.RoleCountryAdmin))
	require.NoError(t, err)
	assert.Equal(t, model.RoleCountryAdmin, created.Role)
	assert.Equal(t, "LK", created.HomeCountryCode())
}

func TestCountryAdminRequiresHomeCountry(t *testing.T) {
	svc := newTestService(newFakePrincipalRepo())

	req := validRequest(model.RoleCountryAdmin)
	req.HomeCountry = ""
	_, err := svc.Create(context.Background(), superAdmin(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
}

func TestSuperAdminHomeCountryIsDropped(t *testing.T) {
	svc := newTestService(newFakePrincipalRepo())

	req := validRequest(model.RoleSuperAdmin)
	req.HomeCountry = "LK"
	created, err := svc.Create(context.Background(), superAdmin(), req)
	require.NoError(t, err)
	assert.Nil(t, created.HomeCountry)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(newFakePrincipalRepo())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateRequest)
	}{
		{"bad email", func(r *CreateRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *CreateRequest) { r.Password = "short" }},
		{"bogus country code", func(r *CreateRequest) { r.HomeCountry = "XXX" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(model.RoleCountryAdmin)
			tt.mutate(&req)
			_, err := svc.Create(ctx, superAdmin(), req)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
		})
	}
}

func TestPasswordIsStoredHashed(t *testing.T) {
	repo := newFakePrincipalRepo()
	svc := newTestService(repo)

	req := validRequest(model.RoleCountryAdmin)
	created, err := svc.Create(context.Background(), superAdmin(), req)
	require.NoError(t, err)

	stored := repo.principals[created.ID]
	assert.NotEqual(t, req.Password, stored.PasswordHash)
	assert.NoError(t, security.NewBcryptHasher(4).Compare(stored.PasswordHash, req.Password))
}

func TestGetScoping(t *testing.T) {
	repo := newFakePrincipalRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	lkAdmin := countryAdmin("LK")
	usAdmin := countryAdmin("US")
	require.NoError(t, repo.Create(ctx, lkAdmin))
	require.NoError(t, repo.Create(ctx, usAdmin))

	// self lookup always works
	got, err := svc.Get(ctx, lkAdmin, lkAdmin.ID)
	require.NoError(t, err)
	assert.Equal(t, lkAdmin.ID, got.ID)

	// cross-country lookup does not
	_, err = svc.Get(ctx, lkAdmin, usAdmin.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))

	// super admins see everyone
	_, err = svc.Get(ctx, superAdmin(), usAdmin.ID)
	require.NoError(t, err)
}

func TestListScoping(t *testing.T) {
	repo := newFakePrincipalRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	lkAdmin := countryAdmin("LK")
	require.NoError(t, repo.Create(ctx, lkAdmin))
	require.NoError(t, repo.Create(ctx, countryAdmin("LK")))
	require.NoError(t, repo.Create(ctx, countryAdmin("US")))

	all, err := svc.List(ctx, superAdmin())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	visible, err := svc.List(ctx, lkAdmin)
	require.NoError(t, err)
	assert.Len(t, visible, 2, "own country only")
}
