// Package kafka publishes finished decisions to the audit topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/config"
	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/domain"
)

// AuditPublisher produces one audit record per decision to the configured
// Kafka topic. It implements orchestrator.Auditor.
type AuditPublisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewAuditPublisher creates a Kafka producer for the audit topic.
func NewAuditPublisher(cfg *config.Config, logger *slog.Logger) *AuditPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAuditTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &AuditPublisher{writer: w, logger: logger}
}

// Publish serializes and writes one decision to the audit topic. The
// decision ID is the message key, so replays of the same decision land on
// the same partition with the same key.
func (p *AuditPublisher) Publish(ctx context.Context, decision domain.Decision) error {
	msg, err := serializeToMessage(decision)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *AuditPublisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a decision into a Kafka message.
func serializeToMessage(decision domain.Decision) (kafkago.Message, error) {
	data, err := json.Marshal(decision)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize decision: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(decision.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "intent", Value: []byte(decision.Metadata.Intent)},
			{Key: "priority", Value: []byte(decision.Metadata.Priority)},
			{Key: "created_at", Value: []byte(decision.CreatedAt.Format(time.RFC3339))},
		},
	}, nil
}
