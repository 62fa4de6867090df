package notifier

import (
	"encoding/json"
	"testing"

	"github.com/diagnosis/luxstay/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMailer struct {
	confirmations []events.BookingConfirmedEvent
	cancellations []events.BookingCancelledEvent
	welcomes      []events.UserSignedUpEvent
}

func (m *mockMailer) SendBookingConfirmation(e events.BookingConfirmedEvent) error {
	m.confirmations = append(m.confirmations, e)
	return nil
}

func (m *mockMailer) SendBookingCancellation(e events.BookingCancelledEvent) error {
	m.cancellations = append(m.cancellations, e)
	return nil
}

func (m *mockMailer) SendWelcomeEmail(e events.UserSignedUpEvent) error {
	m.welcomes = append(m.welcomes, e)
	return nil
}

type mockSubscriber struct {
	events.Discard
	subjects []string
	queues   []string
}

func (s *mockSubscriber) QueueSubscribe(subject, queue string, _ func(*events.Message)) error {
	s.subjects = append(s.subjects, subject)
	s.queues = append(s.queues, queue)
	return nil
}

func message(t *testing.T, subject string, v interface{}) *events.Message {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return &events.Message{Subject: subject, Data: data, ID: "1"}
}

func TestSubscribe_AllSubjectsInQueueGroup(t *testing.T) {
	sub := &mockSubscriber{}
	require.NoError(t, New(&mockMailer{}).Subscribe(sub))

	assert.ElementsMatch(t, []string{events.BookingConfirmed, events.BookingCancelled, events.UserSignedUp}, sub.subjects)
	for _, q := range sub.queues {
		assert.Equal(t, "notify", q)
	}
}

func TestHandle_RoutesBySubject(t *testing.T) {
	m := &mockMailer{}
	n := New(m)

	n.Handle(message(t, events.BookingConfirmed, events.BookingConfirmedEvent{BookingID: 1, Email: "a@example.com", Total: 12840}))
	n.Handle(message(t, events.BookingCancelled, events.BookingCancelledEvent{BookingID: 1, Email: "a@example.com"}))
	n.Handle(message(t, events.UserSignedUp, events.UserSignedUpEvent{UserID: 9, Email: "a@example.com"}))

	require.Len(t, m.confirmations, 1)
	assert.Equal(t, 12840.0, m.confirmations[0].Total)
	assert.Len(t, m.cancellations, 1)
	require.Len(t, m.welcomes, 1)
	assert.Equal(t, int64(9), m.welcomes[0].UserID)
}

func TestHandle_SkipsMissingAddressAndBadPayloads(t *testing.T) {
	m := &mockMailer{}
	n := New(m)

	n.Handle(message(t, events.BookingCancelled, events.BookingCancelledEvent{BookingID: 1}))
	n.Handle(&events.Message{Subject: events.BookingConfirmed, Data: []byte("{not json")})
	n.Handle(message(t, "hotel.renamed", map[string]string{}))

	assert.Empty(t, m.confirmations)
	assert.Empty(t, m.cancellations)
}
