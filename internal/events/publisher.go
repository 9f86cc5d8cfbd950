package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"transfers/internal/utils"

	"github.com/segmentio/kafka-go"
)

const (
	TypeCheckoutCreated = "booking.checkout_created"
	TypePaymentAccepted = "booking.payment_accepted"
)

// BookingEvent is the envelope published per booking transition. Feeds
// analytics only; publishing is best-effort and never blocks a handler
// outcome.
type BookingEvent struct {
	Type             string  `json:"type"`
	BookingReference string  `json:"booking_reference"`
	TripID           int64   `json:"trip_id,omitempty"`
	Amount           float64 `json:"amount,omitempty"`
	PaymentMethod    string  `json:"payment_method,omitempty"`
	OccurredAt       string  `json:"occurred_at"`
}

// Publisher wraps a kafka writer. A nil-writer Publisher (no brokers
// configured) swallows every publish, so call sites stay unconditional.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	if len(brokers) == 0 || topic == "" {
		log.Println("kafka brokers not configured, booking events disabled")
		return &Publisher{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // key by booking reference for ordering
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		ErrorLogger:  kafka.LoggerFunc(log.Printf),
	}
	return &Publisher{writer: writer}
}

// Publish sends one booking event. Failures are logged and dropped.
func (p *Publisher) Publish(requestID string, ev BookingEvent) {
	if p == nil || p.writer == nil {
		return
	}
	if ev.OccurredAt == "" {
		ev.OccurredAt = utils.NowUTC().Format(time.RFC3339)
	}

	value, err := json.Marshal(ev)
	if err != nil {
		utils.LogEvent(requestID, "events", "publish", "marshal failed: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.BookingReference),
		Value: value,
	})
	if err != nil {
		utils.LogEvent(requestID, "events", "publish", "write failed: "+err.Error())
	}
}

func (p *Publisher) Close() {
	if p == nil || p.writer == nil {
		return
	}
	_ = p.writer.Close()
}
