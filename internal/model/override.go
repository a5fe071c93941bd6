package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivationOverride is a sparse per-country exception to the default
// activation of a catalog entity. Absence of a row means the entity is active
// in that country; rows are never deleted, toggling back to active updates
// the row in place so the history of who toggled survives.
type ActivationOverride struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	EntityType  EntityType `json:"entity_type" db:"entity_type"`
	EntityID    string     `json:"entity_id" db:"entity_id"`
	CountryCode string     `json:"country_code" db:"country_code"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	// EntityName is a display snapshot taken at toggle time. Never
	// authoritative; the catalog store owns the real name.
	EntityName string    `json:"entity_name,omitempty" db:"entity_name"`
	UpdatedBy  uuid.UUID `json:"updated_by" db:"updated_by"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Key returns the unique override key.
func (o *ActivationOverride) Key() OverrideKey {
	return OverrideKey{EntityType: o.EntityType, EntityID: o.EntityID, CountryCode: o.CountryCode}
}

// OverrideKey is the unique (entity type, entity id, country) triple.
type OverrideKey struct {
	EntityType  EntityType
	EntityID    string
	CountryCode string
}
