// Package events publishes account lifecycle events to Kafka. The
// publisher is optional: a nil *Publisher is a no-op, so callers never
// guard their publish calls.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	TypeUserRegistered = "user.registered"
	TypeUserDeleted    = "user.deleted"
)

type UserEvent struct {
	Type   string    `json:"type"`
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	At     time.Time `json:"at"`
}

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer messageWriter
	log    *zap.Logger
}

func NewPublisher(brokers []string, topic string, log *zap.Logger) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return &Publisher{writer: w, log: log}
}

func (p *Publisher) UserRegistered(ctx context.Context, userID, email string) {
	p.publish(ctx, TypeUserRegistered, userID, email)
}

func (p *Publisher) UserDeleted(ctx context.Context, userID, email string) {
	p.publish(ctx, TypeUserDeleted, userID, email)
}

// publish is best-effort: a broker failure is logged, never surfaced
// to the request that triggered it.
func (p *Publisher) publish(ctx context.Context, typ, userID, email string) {
	if p == nil || p.writer == nil {
		return
	}
	ev := UserEvent{Type: typ, UserID: userID, Email: email, At: time.Now().UTC()}
	b, _ := json.Marshal(ev)
	msg := kafka.Message{Key: []byte(userID), Value: b, Time: ev.At}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Warn("failed to publish account event",
			zap.String("type", typ),
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
