package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

type natsPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher connects to NATS and publishes completed predictions to
// "<prefix>.completed".
func NewNATSPublisher(url, subjectPrefix string) (ports.EventPublisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return &natsPublisher{
		conn:    nc,
		subject: subjectPrefix + ".completed",
	}, nil
}

func (p *natsPublisher) PublishPredictionCompleted(_ context.Context, pred *domain.Prediction) error {
	data, err := json.Marshal(pred)
	if err != nil {
		return fmt.Errorf("marshal prediction event: %w", err)
	}
	return p.conn.Publish(p.subject, data)
}

func (p *natsPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}
