package services

import (
	"errors"
	"net/mail"
	"strings"
)

const MaxMessageLength = 1000

var (
	ErrContactFieldsMissing  = errors.New("contact fields missing")
	ErrContactEmailInvalid   = errors.New("contact email invalid")
	ErrContactMessageTooLong = errors.New("contact message too long")
)

type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// NormalizeContactInput validates a submission before any ledger interaction.
// Rejected payloads never record an attempt.
func NormalizeContactInput(nameRaw string, emailRaw string, messageRaw string) (ContactInput, error) {
	name := strings.TrimSpace(nameRaw)
	email := strings.ToLower(strings.TrimSpace(emailRaw))
	message := strings.TrimSpace(messageRaw)

	if name == "" || email == "" || message == "" {
		return ContactInput{}, ErrContactFieldsMissing
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ContactInput{}, ErrContactEmailInvalid
	}
	if len(message) > MaxMessageLength {
		return ContactInput{}, ErrContactMessageTooLong
	}

	return ContactInput{Name: name, Email: email, Message: message}, nil
}
