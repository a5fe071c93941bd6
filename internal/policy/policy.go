// Package policy is the single source of truth for every read/write
// authorization decision in the governance engine. All functions are pure:
// they depend only on the principal and the target resource, never on stored
// state, and they return booleans rather than errors. Callers translate a
// false into a Forbidden error at the boundary.
package policy

import (
	"github.com/cybersec-git-expert/catalog-governance/internal/model"
)

// CanRead reports whether the principal may read resources scoped to the
// given country. Super admins read everything; globally scoped resources are
// readable by anyone; country admins read their own country.
func CanRead(p *model.AdminPrincipal, resourceCountry string) bool {
	if p == nil {
		return false
	}
	if p.IsSuperAdmin() {
		return true
	}
	if resourceCountry == model.CountryGlobal || resourceCountry == "" {
		return true
	}
	return resourceCountry == p.HomeCountryCode()
}

// CanWriteResource reports whether the principal may mutate resources scoped
// to the given country. The rule is symmetric with CanRead: there is no
// read-only-but-not-write-own-country case for core resources.
func CanWriteResource(p *model.AdminPrincipal, resourceCountry string) bool {
	return CanRead(p, resourceCountry)
}

// CanToggleActivation reports whether the principal may flip an activation
// override for the target country. Activation overrides are a country-local
// operational concern: only the country's own admin may toggle. Super admins
// are explicitly denied; global defaults are controlled by the entity's
// existence, not by overrides.
func CanToggleActivation(p *model.AdminPrincipal, targetCountry string) bool {
	if p == nil || p.IsSuperAdmin() {
		return false
	}
	home := p.HomeCountryCode()
	return home != "" && home == targetCountry
}

// CanCreatePrincipal reports whether the actor may create a principal with
// the requested role. A country admin can never mint a super admin, no matter
// which capabilities it holds.
func CanCreatePrincipal(actor *model.AdminPrincipal, requestedRole model.AdminRole) bool {
	if actor == nil {
		return false
	}
	if actor.IsSuperAdmin() {
		return true
	}
	if requestedRole == model.RoleSuperAdmin {
		return false
	}
	return actor.HasCapability(model.CapabilityAdminUsersManagement)
}
