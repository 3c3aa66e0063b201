package service

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer is the outbound email collaborator. Failures are reported to the
// caller synchronously because registration has to roll back on them.
type Mailer interface {
	SendActivation(name, email, link string) error
	SendPasswordReset(name, email, link string) error
}

// SMTPMailer delivers through a plain SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	from     string
	password string
}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		host:     viper.GetString("mail.host"),
		port:     viper.GetInt("mail.port"),
		from:     viper.GetString("mail.sender_address"),
		password: viper.GetString("mail.password"),
	}
}

func (m *SMTPMailer) SendActivation(name, email, link string) error {
	body := fmt.Sprintf(
		"Hi %v,<br><br>Click <a href='%v'>here</a> to activate your account.<br><br>This link will expire in 1 hour.",
		name, link)

	return m.send(email, "Activate your MyanNime account", body)
}

func (m *SMTPMailer) SendPasswordReset(name, email, link string) error {
	body := fmt.Sprintf(
		"Hi %v,<br><br>Click <a href='%v'>here</a> to reset your password.<br><br>This link will expire in 1 hour. If you didn't request this you can ignore this email.",
		name, link)

	return m.send(email, "Reset your MyanNime password", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if to == m.from {
		return fmt.Errorf("%w: invalid recipient address", ErrDelivery)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	return nil
}
