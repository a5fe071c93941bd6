package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditDecision is the outcome recorded for a governed operation.
type AuditDecision string

const (
	AuditDecisionAllowed AuditDecision = "allowed"
	AuditDecisionDenied  AuditDecision = "denied"
)

// AuditEvent is a policy-decision or state-transition fact emitted to the
// external audit sink. The engine does not store these; it only emits them.
type AuditEvent struct {
	ID          uuid.UUID       `json:"id"`
	ActorID     uuid.UUID       `json:"actor_id"`
	Operation   string          `json:"operation"`
	EntityType  string          `json:"entity_type"`
	ResourceKey string          `json:"resource_key"`
	CountryCode string          `json:"country_code,omitempty"`
	Decision    AuditDecision   `json:"decision"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

const (
	// Audit operation names
	AuditOpToggleActivation = "toggle_activation"
	AuditOpListOverrides    = "list_overrides"
	AuditOpPageTransition   = "page_transition"
	AuditOpPageEdit         = "page_edit"
	AuditOpPageDelete       = "page_delete"
	AuditOpCreatePrincipal  = "create_principal"
)
