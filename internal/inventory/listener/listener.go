package listener

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/fekuna/smart-inventory/internal/inventory"
	"github.com/fekuna/smart-inventory/internal/inventory/dto"
	"github.com/fekuna/smart-inventory/internal/logger"
	"github.com/fekuna/smart-inventory/internal/model"
)

const EventSaleRecorded = "SaleRecorded"

// MessageReader is the part of *kafka.Reader the listener uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type ReaderConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

func NewKafkaReader(cfg ReaderConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

type SaleListener struct {
	reader  MessageReader
	uc      inventory.UseCase
	logger  logger.ZapLogger
	backoff time.Duration
}

func NewSaleListener(reader MessageReader, uc inventory.UseCase, logger logger.ZapLogger) *SaleListener {
	return &SaleListener{
		reader:  reader,
		uc:      uc,
		logger:  logger,
		backoff: time.Second,
	}
}

// Start blocks until ctx is done. Bad messages and rejected sales are
// logged and skipped.
func (l *SaleListener) Start(ctx context.Context) {
	l.logger.Info("Starting sale feed listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping sale feed listener")
			return
		default:
			msg, err := l.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *SaleListener) Close() error {
	return l.reader.Close()
}

type SaleRecordedEvent struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Payload   SalePayload `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type SalePayload struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

func (l *SaleListener) processMessage(ctx context.Context, value []byte) {
	var event SaleRecordedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != EventSaleRecorded {
		return
	}

	result, err := l.uc.ProcessSale(ctx, &dto.ProcessSaleInput{
		ProductName:  event.Payload.ProductName,
		QuantitySold: event.Payload.Quantity,
		Source:       "kafka",
		EventID:      event.EventID,
	})
	if errors.Is(err, model.ErrDuplicateEvent) {
		l.logger.Info("Skipped redelivered sale event", zap.String("event_id", event.EventID))
		return
	}
	if err != nil {
		l.logger.Error("Failed to apply sale event",
			zap.String("event_id", event.EventID),
			zap.String("product", event.Payload.ProductName),
			zap.Error(err),
		)
		return
	}

	l.logger.Debug("Applied sale event",
		zap.String("event_id", event.EventID),
		zap.String("sale_id", result.Sale.ID),
	)
}
