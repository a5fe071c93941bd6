// Package audit emits policy-decision and state-transition facts to an
// external sink. Emission is fire-and-forget: a broken sink never fails the
// operation being audited.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/cybersec-git-expert/catalog-governance/internal/model"
	"github.com/cybersec-git-expert/catalog-governance/pkg/messaging"
)

// Channel is the broker channel audit facts are published on.
const Channel = "governance.audit"

const publishTimeout = 2 * time.Second

// Emitter publishes audit facts to the configured broker and mirrors them to
// the structured log. A nil broker means log-only mode.
type Emitter struct {
	broker   messaging.Broker
	logger   zerolog.Logger
	failures prometheus.Counter
}

func NewEmitter(broker messaging.Broker, logger zerolog.Logger) *Emitter {
	return &Emitter{
		broker: broker,
		logger: logger,
	}
}

// WithFailureCounter makes the emitter count publish failures on the given
// counter.
func (e *Emitter) WithFailureCounter(c prometheus.Counter) *Emitter {
	e.failures = c
	return e
}

// EmitOptions carries optional fact fields.
type EmitOptions struct {
	EntityType  string
	ResourceKey string
	CountryCode string
	Metadata    interface{}
}

// Emit records one governance fact. Failures are logged and swallowed; the
// caller's operation must not be affected by sink availability.
func (e *Emitter) Emit(ctx context.Context, actorID uuid.UUID, operation string, decision model.AuditDecision, opts *EmitOptions) {
	event := &model.AuditEvent{
		ID:         uuid.New(),
		ActorID:    actorID,
		Operation:  operation,
		Decision:   decision,
		OccurredAt: time.Now(),
	}

	if opts != nil {
		event.EntityType = opts.EntityType
		event.ResourceKey = opts.ResourceKey
		event.CountryCode = opts.CountryCode
		if opts.Metadata != nil {
			metadata, err := json.Marshal(opts.Metadata)
			if err != nil {
				e.logger.Error().Err(err).Str("operation", operation).Msg("failed to marshal audit metadata")
			} else {
				event.Metadata = metadata
			}
		}
	}

	e.logger.Info().
		Str("actor_id", event.ActorID.String()).
		Str("operation", event.Operation).
		Str("entity_type", event.EntityType).
		Str("resource_key", event.ResourceKey).
		Str("country_code", event.CountryCode).
		Str("decision", string(event.Decision)).
		Msg("audit event")

	if e.broker == nil {
		return
	}

	// Detach from the caller's deadline so a timed-out request can still be
	// audited, but bound the publish so we never hang a goroutine forever.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	msg := &messaging.Message{Type: operation, Payload: event}
	if err := e.broker.Publish(publishCtx, Channel, msg); err != nil {
		e.logger.Error().Err(err).Str("operation", operation).Msg("failed to publish audit event")
		if e.failures != nil {
			e.failures.Inc()
		}
	}
}
