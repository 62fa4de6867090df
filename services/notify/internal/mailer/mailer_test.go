package mailer

import (
	"bytes"
	"testing"

	"github.com/diagnosis/luxstay/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevMailer_PrintsConfirmation(t *testing.T) {
	var buf bytes.Buffer
	d := &DevMailer{out: &buf}

	err := d.SendBookingConfirmation(events.BookingConfirmedEvent{
		BookingID: 42, HotelName: "Palm Grove", HotelLocation: "Anjuna, Goa",
		CheckIn: "2024-01-01", CheckOut: "2024-01-04", Nights: 3, Guests: 2,
		Total: 12840, Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "To: alice@example.com")
	assert.Contains(t, out, "Subject: Booking confirmed: Palm Grove")
	assert.Contains(t, out, "₹12840.00")
	assert.Contains(t, out, "Check-out: 2024-01-04")
}

func TestDevMailer_Cancellation(t *testing.T) {
	var buf bytes.Buffer
	d := &DevMailer{out: &buf}

	require.NoError(t, d.SendBookingCancellation(events.BookingCancelledEvent{BookingID: 7, HotelName: "Sea Breeze", Owner: "bob", Email: "bob@example.com"}))
	assert.Contains(t, buf.String(), "Your booking 7 at Sea Breeze has been cancelled")
}

func TestNew_FallsBackToDev(t *testing.T) {
	assert.IsType(t, &DevMailer{}, New(false, "", "LuxStay", "noreply@luxstay.local"))
	assert.IsType(t, &DevMailer{}, New(true, "key", "LuxStay", "noreply@luxstay.local"))
	assert.IsType(t, &MailerSendClient{}, New(false, "key", "LuxStay", "noreply@luxstay.local"))
}

func TestMailerSend_DisabledWithoutSender(t *testing.T) {
	m := NewMailerSend("key", "LuxStay", "")
	assert.Error(t, m.SendWelcomeEmail(events.UserSignedUpEvent{Email: "a@example.com"}))
}
