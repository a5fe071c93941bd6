package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/cybersec-git-expert/catalog-governance/internal/model"
)

func superAdmin() *model.AdminPrincipal {
	return &model.AdminPrincipal{
		ID:   uuid.New(),
		Role: model.RoleSuperAdmin,
	}
}

func countryAdmin(country string, caps ...string) *model.AdminPrincipal {
	return &model.AdminPrincipal{
		ID:           uuid.New(),
		Role:         model.RoleCountryAdmin,
		HomeCountry:  &country,
		Capabilities: caps,
	}
}

func TestCanRead(t *testing.T) {
	tests := []struct {
		name            string
		principal       *model.AdminPrincipal
		resourceCountry string
		want            bool
	}{
		{"super admin reads any country", superAdmin(), "LK", true},
		{"super admin reads global", superAdmin(), model.CountryGlobal, true},
		{"country admin reads own country", countryAdmin("LK"), "LK", true},
		{"country admin denied other country", countryAdmin("LK"), "US", false},
		{"country admin reads global", countryAdmin("LK"), model.CountryGlobal, true},
		{"unscoped resource readable", countryAdmin("LK"), "", true},
		{"nil principal denied", nil, "LK", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanRead(tt.principal, tt.resourceCountry))
		})
	}
}

func TestCanWriteResourceMirrorsRead(t *testing.T) {
	principals := []*model.AdminPrincipal{superAdmin(), countryAdmin("LK"), nil}
	countries := []string{"LK", "US", model.CountryGlobal, ""}

	for _, p := range principals {
		for _, c := range countries {
			assert.Equal(t, CanRead(p, c), CanWriteResource(p, c))
		}
	}
}

func TestCanToggleActivation(t *testing.T) {
	tests := []struct {
		name          string
		principal     *model.AdminPrincipal
		targetCountry string
		want          bool
	}{
		{"country admin toggles own country", countryAdmin("LK"), "LK", true},
		{"country admin denied cross country", countryAdmin("LK"), "US", false},
		{"super admin always denied", superAdmin(), "LK", false},
		{"super admin denied for US too", superAdmin(), "US", false},
		{"missing home country denied", &model.AdminPrincipal{Role: model.RoleCountryAdmin}, "LK", false},
		{"empty target denied", countryAdmin("LK"), "", false},
		{"nil principal denied", nil, "LK", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanToggleActivation(tt.principal, tt.targetCountry))
		})
	}
}

func TestCanCreatePrincipal(t *testing.T) {
	tests := []struct {
		name          string
		actor         *model.AdminPrincipal
		requestedRole model.AdminRole
		want          bool
	}{
		{"super admin creates super admin", superAdmin(), model.RoleSuperAdmin, true},
		{"super admin creates country admin", superAdmin(), model.RoleCountryAdmin, true},
		{
			"country admin with capability creates country admin",
			countryAdmin("LK", model.CapabilityAdminUsersManagement),
			model.RoleCountryAdmin,
			true,
		},
		{
			"country admin without capability denied",
			countryAdmin("LK"),
			model.RoleCountryAdmin,
			false,
		},
		{
			"country admin never mints super admin",
			countryAdmin("LK", model.CapabilityAdminUsersManagement, model.CapabilityBusinessManagement),
			model.RoleSuperAdmin,
			false,
		},
		{"nil actor denied", nil, model.RoleCountryAdmin, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanCreatePrincipal(tt.actor, tt.requestedRole))
		})
	}
}

func TestSuperAdminImplicitCapabilities(t *testing.T) {
	sa := superAdmin()
	assert.True(t, sa.HasCapability(model.CapabilityBusinessManagement))
	assert.True(t, sa.HasCapability(model.CapabilityAdminUsersManagement))
	assert.True(t, sa.HasCapability("anything_else"))

	ca := countryAdmin("LK", model.CapabilityBusinessManagement)
	assert.True(t, ca.HasCapability(model.CapabilityBusinessManagement))
	assert.False(t, ca.HasCapability(model.CapabilityAdminUsersManagement))
}
