package api

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/srijalk/portfolio-backend/internal/services"
)

// Mailer delivers an accepted contact submission. Delivery is externally
// owned: the ledger records the attempt only after a successful send.
type Mailer interface {
	SendContactMessage(input services.ContactInput) error
}

type smtpMailer struct {
	host     string
	port     string
	username string
	password string
	toAddr   string
}

// NewSMTPMailer returns nil when any credential is missing, so deployments
// without SMTP fall back to log-only delivery.
func NewSMTPMailer(host, port, username, password, toAddr string) Mailer {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	toAddr = strings.TrimSpace(toAddr)

	if host == "" || port == "" || username == "" || password == "" || toAddr == "" {
		return nil
	}
	return &smtpMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		toAddr:   toAddr,
	}
}

func (mailer *smtpMailer) SendContactMessage(input services.ContactInput) error {
	auth := smtp.PlainAuth("", mailer.username, mailer.password, mailer.host)

	message := strings.Join([]string{
		fmt.Sprintf("From: %s", mailer.username),
		fmt.Sprintf("To: %s", mailer.toAddr),
		fmt.Sprintf("Reply-To: %s", input.Email),
		fmt.Sprintf("Subject: New portfolio message from %s", input.Name),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		fmt.Sprintf("Name: %s", input.Name),
		fmt.Sprintf("Email: %s", input.Email),
		"",
		input.Message,
	}, "\r\n")

	return smtp.SendMail(mailer.host+":"+mailer.port, auth, mailer.username, []string{mailer.toAddr}, []byte(message))
}

// logMailer keeps local development working without SMTP credentials.
type logMailer struct{}

func (logMailer) SendContactMessage(input services.ContactInput) error {
	log.Printf("mail: contact message from %s <%s> (%d chars)", input.Name, input.Email, len(input.Message))
	return nil
}
