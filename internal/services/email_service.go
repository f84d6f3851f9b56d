package services

import (
	"log"

	"gopkg.in/gomail.v2"
)

// EmailSender delivers a rendered message to one address.
type EmailSender interface {
	Send(to, subject, bodyHTML string) error
}

// SMTPEmailService sends mail through a configured SMTP relay.
type SMTPEmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPEmailService creates an SMTPEmailService.
func NewSMTPEmailService(host string, port int, username, password, from string) *SMTPEmailService {
	return &SMTPEmailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers one HTML email. An unconfigured relay is a no-op, matching
// how the rest of the notification stack degrades in development.
func (s *SMTPEmailService) Send(to, subject, bodyHTML string) error {
	if s.host == "" {
		log.Println("[Email] SMTP host not configured, skipping send")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", bodyHTML)

	dialer := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Printf("[Email] Failed to send to %s: %v", to, err)
		return err
	}

	return nil
}
