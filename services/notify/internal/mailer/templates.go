package mailer

import (
	"fmt"
	"strconv"

	"github.com/diagnosis/luxstay/pkg/events"
)

type message struct {
	subject string
	text    string
	html    string
}

func rupees(v float64) string {
	return "₹" + strconv.FormatFloat(v, 'f', 2, 64)
}

func bookingConfirmation(e events.BookingConfirmedEvent) message {
	subject := fmt.Sprintf("Booking confirmed: %s", e.HotelName)
	text := fmt.Sprintf("Hi %s,\n\nYour stay at %s, %s is confirmed.\n\nBooking ID: %d\nCheck-in: %s\nCheck-out: %s\nNights: %d\nGuests: %d\nTotal paid: %s\n",
		e.Username, e.HotelName, e.HotelLocation, e.BookingID, e.CheckIn, e.CheckOut, e.Nights, e.Guests, rupees(e.Total))
	html := fmt.Sprintf(`
		<h2>Your booking is confirmed</h2>
		<p>Hi %s,</p>
		<p>Your stay at <strong>%s</strong>, %s is confirmed.</p>
		<table>
			<tr><td>Booking ID</td><td>%d</td></tr>
			<tr><td>Check-in</td><td>%s</td></tr>
			<tr><td>Check-out</td><td>%s</td></tr>
			<tr><td>Nights</td><td>%d</td></tr>
			<tr><td>Guests</td><td>%d</td></tr>
			<tr><td>Total</td><td><strong>%s</strong></td></tr>
		</table>
	`, e.Username, e.HotelName, e.HotelLocation, e.BookingID, e.CheckIn, e.CheckOut, e.Nights, e.Guests, rupees(e.Total))
	return message{subject: subject, text: text, html: html}
}

func bookingCancellation(e events.BookingCancelledEvent) message {
	subject := fmt.Sprintf("Booking cancelled: %s", e.HotelName)
	text := fmt.Sprintf("Hi %s,\n\nYour booking %d at %s has been cancelled.\n", e.Owner, e.BookingID, e.HotelName)
	html := fmt.Sprintf(`
		<h2>Booking cancelled</h2>
		<p>Hi %s,</p>
		<p>Your booking <strong>%d</strong> at %s has been cancelled.</p>
	`, e.Owner, e.BookingID, e.HotelName)
	return message{subject: subject, text: text, html: html}
}

func welcome(e events.UserSignedUpEvent) message {
	subject := "Welcome to LuxStay"
	text := fmt.Sprintf("Hi %s,\n\nThanks for signing up. Your account is ready to book.\n", e.Username)
	html := fmt.Sprintf(`
		<h2>Welcome to LuxStay!</h2>
		<p>Hi %s,</p>
		<p>Thanks for signing up. Your account is ready to book.</p>
	`, e.Username)
	return message{subject: subject, text: text, html: html}
}
