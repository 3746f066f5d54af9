package services

import (
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"reservation-server/config"
)

// MailService sends transactional email over SMTP. Delivery is
// best-effort: a failed send is logged and never fails the request
// that triggered it.
type MailService struct{}

func NewMailService() *MailService {
	return &MailService{}
}

// SendPasswordReset dispatches the reset email in the background.
func (s *MailService) SendPasswordReset(email, token string) {
	go func() {
		subject := "Password reset request"
		body := fmt.Sprintf(
			"A password reset was requested for your account.\r\n\r\n"+
				"Your reset code is: %s\r\n\r\n"+
				"The code expires in one hour. If you did not request this, ignore this email.\r\n",
			token)
		if err := s.send(email, subject, body); err != nil {
			logrus.WithError(err).WithField("email", email).Warn("Failed to send password reset email")
		}
	}()
}

// SendBookingConfirmation dispatches the booking receipt in the
// background.
func (s *MailService) SendBookingConfirmation(email, propertyName string) {
	go func() {
		subject := "Booking received"
		body := fmt.Sprintf(
			"Your booking request for %s was received and is pending review.\r\n"+
				"You will be notified once it is accepted or declined.\r\n",
			propertyName)
		if err := s.send(email, subject, body); err != nil {
			logrus.WithError(err).WithField("email", email).Warn("Failed to send booking confirmation email")
		}
	}()
}

func (s *MailService) send(to, subject, body string) error {
	cfg := config.AppConfig.Mail
	if cfg.Username == "" {
		logrus.WithField("to", to).Info("Mail not configured, skipping send")
		return nil
	}

	addr := cfg.Host + ":" + cfg.Port
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", cfg.From, to, subject, body))

	return smtp.SendMail(addr, auth, cfg.From, []string{to}, msg)
}
