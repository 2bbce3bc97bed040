package validators

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"macrotracker/internal/models"
)

const (
	MaxUsernameLength = 80
	MaxEmailLength    = 120
)

var (
	ErrUsernameTooLong = errors.New("username is too long")
	ErrEmailTooLong    = errors.New("email is too long")
	ErrInvalidEmail    = errors.New("invalid email address")
)

// ParseFloat returns the number in s, or 0 when s is blank, unparseable or
// not finite.
func ParseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseID parses a positive row id. Anything else is reported as not ok so
// callers can treat it as a missing row.
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParseDate parses a YYYY-MM-DD calendar date, returning fallback when s is
// blank or malformed.
func ParseDate(s string, fallback time.Time) time.Time {
	d, err := models.ParseDay(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return d
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateSignup checks the column limits of an already trimmed signup.
// Presence is checked by the auth service.
func ValidateSignup(username, email string) error {
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return ErrEmailTooLong
	}
	if email != "" && (!strings.Contains(email, "@") || containsSpace(email)) {
		return ErrInvalidEmail
	}
	return nil
}

func containsSpace(s string) bool {
	return strings.ContainsAny(s, " \t\r\n")
}
