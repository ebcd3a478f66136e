package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/easyshop/easyshop-backend/internal/config"
	"github.com/easyshop/easyshop-backend/internal/models"
)

// Publisher publishes domain events.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	PublishOrderStatusChanged(ctx context.Context, order *models.Order, previousStatus models.OrderStatus) error
	PublishPaymentInitiated(ctx context.Context, record *models.PaymentRecord) error
	PublishPaymentCompleted(ctx context.Context, record *models.PaymentRecord) error
	Close() error
}

// Ensure KafkaPublisher implements Publisher
var _ Publisher = (*KafkaPublisher)(nil)

// EventType represents the type of domain event.
type EventType string

const (
	EventTypeOrderCreated       EventType = "order.created"
	EventTypeOrderStatusChanged EventType = "order.status_changed"
	EventTypePaymentInitiated   EventType = "payment.initiated"
	EventTypePaymentCompleted   EventType = "payment.completed"
)

// Event is the envelope written to the event topic.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	SubjectID string          `json:"subject_id"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// KafkaPublisher publishes domain events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	logger *zap.Logger
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		topic:  cfg.Topic,
		logger: logger.Named("event-publisher"),
	}
}

// PublishOrderCreated publishes an order created event.
func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypeOrderCreated, order.ID, data))
}

// PublishOrderStatusChanged publishes an order status change event.
func (p *KafkaPublisher) PublishOrderStatusChanged(ctx context.Context, order *models.Order, previousStatus models.OrderStatus) error {
	payload := struct {
		Order          *models.Order      `json:"order"`
		PreviousStatus models.OrderStatus `json:"previous_status"`
		NewStatus      models.OrderStatus `json:"new_status"`
	}{
		Order:          order,
		PreviousStatus: previousStatus,
		NewStatus:      order.Status,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypeOrderStatusChanged, order.ID, data))
}

// PublishPaymentInitiated publishes a payment initiated event.
func (p *KafkaPublisher) PublishPaymentInitiated(ctx context.Context, record *models.PaymentRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypePaymentInitiated, record.TransactionID, data))
}

// PublishPaymentCompleted publishes a payment completed event.
func (p *KafkaPublisher) PublishPaymentCompleted(ctx context.Context, record *models.PaymentRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypePaymentCompleted, record.TransactionID, data))
}

func newEvent(eventType EventType, subjectID string, data []byte) *Event {
	return &Event{
		ID:        "evt_" + uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func (p *KafkaPublisher) publish(ctx context.Context, event *Event) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.SubjectID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.String("subject_id", event.SubjectID),
			zap.Error(err))
		return err
	}

	p.logger.Debug("Event published",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("subject_id", event.SubjectID))

	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Info("Closing Kafka publisher")
	return p.writer.Close()
}

// MockPublisher records events in memory for testing.
type MockPublisher struct {
	Events []*Event
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Events: make([]*Event, 0)}
}

func (m *MockPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	m.Events = append(m.Events, &Event{Type: EventTypeOrderCreated, SubjectID: order.ID})
	return nil
}

func (m *MockPublisher) PublishOrderStatusChanged(ctx context.Context, order *models.Order, previousStatus models.OrderStatus) error {
	m.Events = append(m.Events, &Event{Type: EventTypeOrderStatusChanged, SubjectID: order.ID})
	return nil
}

func (m *MockPublisher) PublishPaymentInitiated(ctx context.Context, record *models.PaymentRecord) error {
	m.Events = append(m.Events, &Event{Type: EventTypePaymentInitiated, SubjectID: record.TransactionID})
	return nil
}

func (m *MockPublisher) PublishPaymentCompleted(ctx context.Context, record *models.PaymentRecord) error {
	m.Events = append(m.Events, &Event{Type: EventTypePaymentCompleted, SubjectID: record.TransactionID})
	return nil
}

func (m *MockPublisher) Close() error { return nil }
