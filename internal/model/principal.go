package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminRole is the role held by an administrator principal.
type AdminRole string

const (
	RoleSuperAdmin   AdminRole = "super_admin"
	RoleCountryAdmin AdminRole = "country_admin"
)

func (r AdminRole) Valid() bool {
	return r == RoleSuperAdmin || r == RoleCountryAdmin
}

// Capability names recognised by the policy layer. The set is open; these are
// the ones the engine itself checks.
const (
	CapabilityBusinessManagement   = "businessManagement"
	CapabilityAdminUsersManagement = "adminUsersManagement"
)

// AdminPrincipal is an already-authenticated administrator. The engine treats
// it as read-only; it is resolved once per request by the auth middleware.
type AdminPrincipal struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         AdminRole `json:"role" db:"role"`
	// HomeCountry is set only for country admins. Super admins are not
	// country scoped.
	HomeCountry  *string        `json:"home_country,omitempty" db:"home_country"`
	Capabilities CapabilitySet  `json:"capabilities" db:"capabilities"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// IsSuperAdmin reports whether the principal holds the super admin role.
func (p *AdminPrincipal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

// HomeCountryCode returns the principal's home country, or "" for super
// admins and malformed principals.
func (p *AdminPrincipal) HomeCountryCode() string {
	if p.HomeCountry == nil {
		return ""
	}
	return *p.HomeCountry
}

// HasCapability reports whether the principal holds the named capability.
// Super admins implicitly hold every capability.
func (p *AdminPrincipal) HasCapability(name string) bool {
	if p.IsSuperAdmin() {
		return true
	}
	return p.Capabilities.Has(name)
}
