package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/road-safety-reports/internal/config"
	"github.com/couchcryptid/road-safety-reports/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Notifier publishes a ReportPublished message for every written artifact.
// It implements pipeline.Notifier.
type Notifier struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewNotifier creates a Kafka producer for the configured report topic.
func NewNotifier(cfg *config.Config, logger *slog.Logger) *Notifier {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaReportTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		WriteTimeout: cfg.ShutdownTimeout,
	}
	return &Notifier{writer: w, logger: logger}
}

// Publish sends one notification. Messages are keyed by report name so every
// notification for a report lands on the same partition.
func (n *Notifier) Publish(ctx context.Context, ev domain.ReportPublished) error {
	msg, err := serializeToMessage(ev)
	if err != nil {
		return err
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Report, err)
	}
	n.logger.Debug("report notification published", "report", ev.Report, "run_id", ev.RunID)
	return nil
}

// Close flushes pending messages and closes the underlying writer.
func (n *Notifier) Close() error {
	return n.writer.Close()
}

// serializeToMessage marshals a ReportPublished into a Kafka message.
func serializeToMessage(ev domain.ReportPublished) (kafkago.Message, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize report notification: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(ev.Report),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "run_id", Value: []byte(ev.RunID)},
			{Key: "generated_date", Value: []byte(ev.GeneratedDate.Format(time.RFC3339))},
		},
	}, nil
}
