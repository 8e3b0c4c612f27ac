package auth

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultPhoneRegion = "US"

var errInvalidIdentifier = errors.New("identifier must be an email address or phone number")

// Identifier is a normalized admin login handle.
type Identifier struct {
	Email string
	Phone string
}

func (i Identifier) String() string {
	if i.Email != "" {
		return i.Email
	}
	return i.Phone
}

// ParseIdentifier lowercases emails and converts phone numbers to E.164.
func ParseIdentifier(raw string) (Identifier, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identifier{}, errInvalidIdentifier
	}
	if strings.Contains(raw, "@") {
		email, err := NormalizeEmail(raw)
		if err != nil {
			return Identifier{}, errInvalidIdentifier
		}
		return Identifier{Email: email}, nil
	}
	phone := NormalizePhone(raw)
	if phone == "" {
		return Identifier{}, errInvalidIdentifier
	}
	return Identifier{Phone: phone}, nil
}

func NormalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	if addr.Name != "" {
		return "", errors.New("email must not include a display name")
	}
	return strings.ToLower(addr.Address), nil
}

// IsPhoneNumber reports whether raw looks like a phone number rather than an
// email or free text.
func IsPhoneNumber(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "@") {
		return false
	}
	digits := 0
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return false
		}
	}
	return digits >= 10
}

// NormalizePhone returns the E.164 form of raw, or "" when it is not a
// possible number.
func NormalizePhone(raw string) string {
	if !IsPhoneNumber(raw) {
		return ""
	}
	num, err := phonenumbers.Parse(strings.TrimSpace(raw), defaultPhoneRegion)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(num) {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
