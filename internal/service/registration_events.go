package service

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Registration lifecycle event types published on the bus.
const (
	RegistrationEventSubmitted = "registration.submitted"
	RegistrationEventApproved  = "registration.approved"
	RegistrationEventRejected  = "registration.rejected"
)

// RegistrationEvent is the payload published for registration lifecycle changes.
type RegistrationEvent struct {
	Type           string    `json:"type"`
	RegistrationID uint      `json:"registration_id"`
	ReferenceNo    string    `json:"reference_no"`
	Status         string    `json:"status"`
	DecidedBy      string    `json:"decided_by,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// RegistrationEventPublisher emits registration lifecycle events. Publishing
// is best-effort: a bus failure never fails the originating request.
type RegistrationEventPublisher interface {
	Publish(event RegistrationEvent)
}

type natsRegistrationPublisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewRegistrationEventPublisher constructs a NATS-backed publisher. A nil
// connection yields a publisher that drops events silently.
func NewRegistrationEventPublisher(conn *nats.Conn, subject string, logger zerolog.Logger) RegistrationEventPublisher {
	return &natsRegistrationPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "registration_events").Logger(),
	}
}

func (p *natsRegistrationPublisher) Publish(event RegistrationEvent) {
	if p.conn == nil || p.subject == "" {
		return
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Str("type", event.Type).Msg("failed to encode registration event")
		return
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		p.logger.Warn().Err(err).Str("type", event.Type).Msg("failed to publish registration event")
	}
}
