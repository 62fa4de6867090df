package mailer

import "github.com/diagnosis/luxstay/pkg/events"

type Service interface {
	SendBookingConfirmation(e events.BookingConfirmedEvent) error
	SendBookingCancellation(e events.BookingCancelledEvent) error
	SendWelcomeEmail(e events.UserSignedUpEvent) error
}

// New picks the MailerSend client unless dev mode is on or no API key is set.
func New(devMode bool, apiKey, fromName, fromEmail string) Service {
	if devMode || apiKey == "" {
		return NewDevMailer()
	}
	return NewMailerSend(apiKey, fromName, fromEmail)
}
