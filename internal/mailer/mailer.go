// Package mailer sends best-effort status notifications to applicants.
// Sending always happens after the status write has committed; failures
// are reported back as an Outcome, never as a request failure.
package mailer

import (
	"log"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
	gomail "gopkg.in/gomail.v2"
)

// Notifier is the transactional-email boundary. Implementations must not
// panic; any transport failure surfaces as the returned error.
type Notifier interface {
	Send(to, subject, body string) error
}

// Outcome is the tri-state notification result reported to the caller:
// not attempted (no provider configured), attempted-but-failed, or sent.
type Outcome struct {
	Attempted bool `json:"emailAttempted"`
	Sent      bool `json:"emailSent"`
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	dialer   *gomail.Dialer
	fromAddr string
	fromName string
}

// NewFromEnv builds an SMTPMailer from SMTP_HOST, SMTP_PORT, SMTP_USERNAME,
// SMTP_PASSWORD, MAIL_FROM_ADDRESS and MAIL_FROM_NAME. It returns nil when
// the host or from-address is unset, which callers must treat as
// "no provider configured" rather than an error.
func NewFromEnv() *SMTPMailer {
	host := os.Getenv("SMTP_HOST")
	fromAddr := os.Getenv("MAIL_FROM_ADDRESS")
	if host == "" || fromAddr == "" {
		log.Println("Mail provider not configured, status notifications disabled")
		return nil
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port <= 0 {
		port = 587
	}

	return &SMTPMailer{
		dialer:   gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD")),
		fromAddr: fromAddr,
		fromName: os.Getenv("MAIL_FROM_NAME"),
	}
}

// Send delivers one plain-text message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromAddr, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}

// notifyTimeout bounds one send attempt. A provider that accepts the
// connection and then goes silent must not stall the review response.
var notifyTimeout = 10 * time.Second

// Notify picks the template for newStatus, sends it, and folds any
// failure into the returned Outcome. A nil Notifier means not attempted.
// The send runs with a deadline; on expiry the attempt is abandoned and
// reported as attempted-but-not-sent.
func Notify(n Notifier, to, firstName, jobTitle, newStatus string) Outcome {
	if n == nil {
		return Outcome{}
	}

	subject, body := StatusTemplate(newStatus, firstName, jobTitle)

	errCh := make(chan error, 1)
	go func() {
		errCh <- n.Send(to, subject, body)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Printf("Failed to send status notification to %s: %v", to, err)
			return Outcome{Attempted: true}
		}
		return Outcome{Attempted: true, Sent: true}
	case <-time.After(notifyTimeout):
		log.Printf("Status notification to %s timed out after %s", to, notifyTimeout)
		return Outcome{Attempted: true}
	}
}
