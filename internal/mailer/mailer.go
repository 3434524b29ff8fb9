package mailer

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/rajasharmaa/dttt/internal/platform/logger"
)

// Mailer sends operational notifications. Sending is best effort; callers
// log failures and continue.
type Mailer interface {
	SendInquiryNotification(to, fromName, fromEmail, subject, message string) error
}

// SMTPMailer implements Mailer over SMTP via gomail.
type SMTPMailer struct {
	host     string
	port     int
	from     string
	password string
	logger   *logger.Logger
}

func NewSMTPMailer(host string, port int, from, password string, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		logger:   log.Named("SMTPMailer"),
	}
}

func (m *SMTPMailer) SendInquiryNotification(to, fromName, fromEmail, subject, message string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "New inquiry: "+subject)
	msg.SetBody("text/plain", fmt.Sprintf(
		"A new inquiry was submitted.\n\nFrom: %s <%s>\nSubject: %s\n\n%s\n",
		fromName, fromEmail, subject, message))

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	if err := d.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send inquiry notification", zap.String("to", to), zap.Error(err))
		return err
	}
	m.logger.Info("Inquiry notification sent", zap.String("to", to))
	return nil
}
