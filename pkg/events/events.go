package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/diagnosis/luxstay/pkg/config"
	"github.com/diagnosis/luxstay/pkg/logger"
	"github.com/nats-io/nats.go"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
	ID        string
}

// Open returns the bus named by cfg.Events.Driver; "none" discards everything.
func Open(cfg *config.Config) (EventBus, error) {
	switch cfg.Events.Driver {
	case "", "none":
		return Discard{}, nil
	case "nats":
		return NewNATSEventBus(cfg.NATS.URL)
	case "amqp":
		return NewAMQPEventBus(cfg.AMQP.URL, cfg.AMQP.Exchange)
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Events.Driver)
	}
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url, nats.Name("luxstay"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(natsMessage(msg))
	})
	return err
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(natsMessage(msg))
	})
	return err
}

func (n *NATSEventBus) Close() error {
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
	}
	return nil
}

func natsMessage(msg *nats.Msg) *Message {
	now := time.Now()
	return &Message{
		Subject:   msg.Subject,
		Data:      msg.Data,
		Timestamp: now,
		ID:        fmt.Sprintf("%d", now.UnixNano()),
	}
}

// Discard drops every event. Used when no broker is configured.
type Discard struct{}

func (Discard) Publish(ctx context.Context, subject string, _ interface{}) error {
	logger.DebugContext(ctx, "Discarding event", "subject", subject)
	return nil
}

func (Discard) Subscribe(string, func(msg *Message)) error { return nil }

func (Discard) QueueSubscribe(string, string, func(msg *Message)) error { return nil }

func (Discard) Close() error { return nil }

// Subjects
const (
	BookingConfirmed = "booking.confirmed"
	BookingCancelled = "booking.cancelled"
	UserSignedUp     = "user.signed_up"
)

// Event payloads
type BookingConfirmedEvent struct {
	BookingID     int64     `json:"booking_id"`
	HotelID       int       `json:"hotel_id"`
	HotelName     string    `json:"hotel_name"`
	HotelLocation string    `json:"hotel_location"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	Nights        int       `json:"nights"`
	Guests        int       `json:"guests"`
	Total         float64   `json:"total"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"created_at"`
}

type BookingCancelledEvent struct {
	BookingID   int64     `json:"booking_id"`
	HotelName   string    `json:"hotel_name"`
	Owner       string    `json:"owner"`
	Email       string    `json:"email,omitempty"`
	CancelledAt time.Time `json:"cancelled_at"`
}

type UserSignedUpEvent struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
