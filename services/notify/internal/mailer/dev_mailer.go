package mailer

import (
	"fmt"
	"io"
	"os"

	"github.com/diagnosis/luxstay/pkg/events"
	"github.com/diagnosis/luxstay/pkg/logger"
)

// DevMailer prints emails instead of sending them.
type DevMailer struct {
	out io.Writer
}

func NewDevMailer() *DevMailer {
	return &DevMailer{out: os.Stdout}
}

func (d *DevMailer) SendBookingConfirmation(e events.BookingConfirmedEvent) error {
	logger.Info("📧 [DEV MAIL] Booking Confirmation", "to", e.Email, "booking_id", e.BookingID)
	return d.print(e.Email, bookingConfirmation(e))
}

func (d *DevMailer) SendBookingCancellation(e events.BookingCancelledEvent) error {
	logger.Info("📧 [DEV MAIL] Booking Cancellation", "to", e.Email, "booking_id", e.BookingID)
	return d.print(e.Email, bookingCancellation(e))
}

func (d *DevMailer) SendWelcomeEmail(e events.UserSignedUpEvent) error {
	logger.Info("📧 [DEV MAIL] Welcome Email", "to", e.Email, "user_id", e.UserID)
	return d.print(e.Email, welcome(e))
}

func (d *DevMailer) print(to string, m message) error {
	_, err := fmt.Fprintf(d.out, "\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
		"📧 EMAIL (DEV MODE)\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
		"To: %s\n"+
		"Subject: %s\n"+
		"\n"+
		"%s"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n",
		to, m.subject, m.text)
	return err
}
