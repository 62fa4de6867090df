package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/diagnosis/luxstay/pkg/logger"
	"github.com/streadway/amqp"
)

// AMQPEventBus publishes to a topic exchange, using the subject as routing key.
type AMQPEventBus struct {
	conn     *amqp.Connection
	exchange string

	mu      sync.Mutex
	pubChan *amqp.Channel
}

func NewAMQPEventBus(url, exchange string) (*AMQPEventBus, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &AMQPEventBus{conn: conn, exchange: exchange, pubChan: ch}, nil
}

func (a *AMQPEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "exchange", a.exchange)

	// amqp.Channel is not safe for concurrent publishes
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pubChan.Publish(a.exchange, subject, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         payload,
	})
}

func (a *AMQPEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	return a.consume(subject, "", handler)
}

func (a *AMQPEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	return a.consume(subject, queue, handler)
}

// consume binds a queue to subject. An empty queue name gets a private,
// auto-deleted queue so every subscriber sees every message.
func (a *AMQPEventBus) consume(subject, queue string, handler func(msg *Message)) error {
	ch, err := a.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}

	durable := queue != ""
	q, err := ch.QueueDeclare(queue, durable, !durable, !durable, false, nil)
	if err != nil {
		ch.Close()
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, subject, a.exchange, false, nil); err != nil {
		ch.Close()
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	deliveries, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		ch.Close()
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for d := range deliveries {
			handler(&Message{
				Subject:   d.RoutingKey,
				Data:      d.Body,
				Timestamp: d.Timestamp,
				ID:        fmt.Sprintf("%d", d.DeliveryTag),
			})
		}
	}()
	return nil
}

func (a *AMQPEventBus) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pubChan.Close()
	return a.conn.Close()
}
