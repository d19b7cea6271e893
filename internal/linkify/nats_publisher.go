package linkify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/reportlink/internal/logfields"
)

// NATSPublisher publishes dead-reference events to a NATS JetStream subject.
type NATSPublisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
}

// NewNATSPublisher connects to NATS and prepares a JetStream publisher for the
// given subject.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	if subject == "" {
		return nil, fmt.Errorf("events subject is required")
	}

	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	slog.Info("NATS publisher initialized for dead-reference events",
		slog.String("url", url),
		logfields.Subject(subject))

	return &NATSPublisher{conn: conn, js: js, subject: subject}, nil
}

// PublishDeadReference publishes one event. Errors are returned for logging but
// must never fail the annotate call that produced the event.
func (p *NATSPublisher) PublishDeadReference(ctx context.Context, event *DeadReferenceEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal dead reference event: %w", err)
	}
	if _, err := p.js.Publish(ctx, p.subject, data); err != nil {
		return fmt.Errorf("publish dead reference event: %w", err)
	}
	return nil
}

// Close drains the NATS connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
