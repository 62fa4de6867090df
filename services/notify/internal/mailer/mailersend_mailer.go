package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/diagnosis/luxstay/pkg/events"
	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendBookingConfirmation(e events.BookingConfirmedEvent) error {
	return m.send(e.Email, e.Username, bookingConfirmation(e))
}

func (m *MailerSendClient) SendBookingCancellation(e events.BookingCancelledEvent) error {
	return m.send(e.Email, e.Owner, bookingCancellation(e))
}

func (m *MailerSendClient) SendWelcomeEmail(e events.UserSignedUpEvent) error {
	return m.send(e.Email, e.Username, welcome(e))
}

func (m *MailerSendClient) send(toEmail, toName string, msg message) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := m.client.Email.NewMessage()
	email.SetFrom(m.from)
	email.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	email.SetSubject(msg.subject)

	if strings.TrimSpace(msg.text) != "" {
		email.SetText(msg.text)
	}
	if strings.TrimSpace(msg.html) != "" {
		email.SetHTML(msg.html)
	}

	_, err := m.client.Email.Send(ctx, email)
	return err
}
