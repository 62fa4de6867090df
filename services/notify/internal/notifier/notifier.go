// Package notifier turns storefront events into customer emails.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/diagnosis/luxstay/pkg/events"
	"github.com/diagnosis/luxstay/pkg/logger"
	"github.com/diagnosis/luxstay/services/notify/internal/mailer"
)

const queueGroup = "notify"

type Notifier struct {
	mailer mailer.Service
}

func New(m mailer.Service) *Notifier {
	return &Notifier{mailer: m}
}

// Subscribe registers the notifier on every subject it handles. Queue
// subscriptions let several notify instances share the load.
func (n *Notifier) Subscribe(sub events.Subscriber) error {
	for _, subject := range []string{events.BookingConfirmed, events.BookingCancelled, events.UserSignedUp} {
		if err := sub.QueueSubscribe(subject, queueGroup, n.Handle); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}
	}
	return nil
}

// Handle decodes one event and sends the matching email. Failures are logged;
// events are not redelivered.
func (n *Notifier) Handle(msg *events.Message) {
	ctx := context.WithValue(context.Background(), logger.ServiceKey, "notify")
	if err := n.dispatch(msg); err != nil {
		logger.ErrorContext(ctx, "Failed to handle event", "subject", msg.Subject, "message_id", msg.ID, "error", err)
		return
	}
	logger.InfoContext(ctx, "Event handled", "subject", msg.Subject, "message_id", msg.ID)
}

func (n *Notifier) dispatch(msg *events.Message) error {
	switch msg.Subject {
	case events.BookingConfirmed:
		var e events.BookingConfirmedEvent
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		if e.Email == "" {
			return nil
		}
		return n.mailer.SendBookingConfirmation(e)

	case events.BookingCancelled:
		var e events.BookingCancelledEvent
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		// cancellations made without a session carry no address
		if e.Email == "" {
			return nil
		}
		return n.mailer.SendBookingCancellation(e)

	case events.UserSignedUp:
		var e events.UserSignedUpEvent
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		return n.mailer.SendWelcomeEmail(e)

	default:
		return fmt.Errorf("unexpected subject %q", msg.Subject)
	}
}
