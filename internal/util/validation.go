package util

import (
	"net/mail"

	"github.com/google/uuid"
)

func IsValidUUID(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func IsValidEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}

// IsValidPort reports whether p is a usable TCP listening port.
func IsValidPort(p int) bool {
	return p > 0 && p <= 65535
}
