package model

import (
	"time"

	"github.com/google/uuid"
)

// PageScope says whether a content page is visible everywhere or belongs to a
// single country's tenant.
type PageScope string

const (
	PageScopeCentralized     PageScope = "centralized"
	PageScopeCountrySpecific PageScope = "country_specific"
)

func (s PageScope) Valid() bool {
	return s == PageScopeCentralized || s == PageScopeCountrySpecific
}

// PageStatus is the lifecycle state of a content page revision.
type PageStatus string

const (
	PageStatusDraft     PageStatus = "draft"
	PageStatusPending   PageStatus = "pending"
	PageStatusApproved  PageStatus = "approved"
	PageStatusPublished PageStatus = "published"
	PageStatusRejected  PageStatus = "rejected"
)

// PageEvent is a requested lifecycle transition.
type PageEvent string

const (
	PageEventSubmit  PageEvent = "submit"
	PageEventApprove PageEvent = "approve"
	PageEventReject  PageEvent = "reject"
	PageEventPublish PageEvent = "publish"
)

func (e PageEvent) Valid() bool {
	switch e {
	case PageEventSubmit, PageEventApprove, PageEventReject, PageEventPublish:
		return true
	}
	return false
}

// ContentPage is a governed content page. Centralized pages have cross-tenant
// impact and carry a nil OwnerCountry; country-specific pages belong to one
// tenant.
type ContentPage struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Title            string     `json:"title" db:"title"`
	Body             string     `json:"body" db:"body"`
	Scope            PageScope  `json:"scope" db:"scope"`
	OwnerCountry     *string    `json:"owner_country,omitempty" db:"owner_country"`
	Status           PageStatus `json:"status" db:"status"`
	RequiresApproval bool       `json:"requires_approval" db:"requires_approval"`
	CreatedBy        uuid.UUID  `json:"created_by" db:"created_by"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// OwnerCountryCode returns the owning country, or "" for centralized pages.
func (p *ContentPage) OwnerCountryCode() string {
	if p.OwnerCountry == nil {
		return ""
	}
	return *p.OwnerCountry
}

// ResourceCountry maps the page to the country used for read/write scoping.
// Centralized pages are globally scoped.
func (p *ContentPage) ResourceCountry() string {
	if p.Scope == PageScopeCentralized {
		return CountryGlobal
	}
	return p.OwnerCountryCode()
}
