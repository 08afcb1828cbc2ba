package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/quake-map/internal/config"
	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
)

// Message header keys.
const (
	HeaderMagnitudeBucket = "magnitude_bucket"
	HeaderPublishedAt     = "published_at"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes styled markers to a Kafka topic.
type Writer struct {
	writer  messageWriter
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured marker topic.
func NewWriter(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, metrics: metrics, logger: logger}
}

// LoadBatch serializes and publishes markers in a single WriteMessages call.
// Markers sharing an id land on the same partition.
func (w *Writer) LoadBatch(ctx context.Context, markers []domain.Marker) error {
	if len(markers) == 0 {
		return nil
	}
	publishedAt := domain.Now().UTC()
	msgs := make([]kafkago.Message, len(markers))
	for i := range markers {
		msg, err := serializeToMessage(markers[i], publishedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish markers: %w", err)
	}
	w.metrics.MarkersPublished.Add(float64(len(msgs)))
	w.logger.Info("markers published", "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Marker into a Kafka message.
func serializeToMessage(m domain.Marker, publishedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize marker: %w", err)
	}
	var key []byte
	if m.ID != "" {
		key = []byte(m.ID)
	}
	return kafkago.Message{
		Key:   key,
		Value: data,
		Headers: []kafkago.Header{
			{Key: HeaderMagnitudeBucket, Value: []byte(strconv.Itoa(m.Bucket))},
			{Key: HeaderPublishedAt, Value: []byte(publishedAt.Format(time.RFC3339))},
		},
	}, nil
}
