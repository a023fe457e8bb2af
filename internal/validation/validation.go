// Package validation holds field-level input checks shared by request schemas.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field length limits, counted in characters.
const (
	MaxUsernameLength = 50
	MaxEmailLength    = 255
	MaxFullNameLength = 100
	MaxURLLength      = 255
)

var emailDomainRegex = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?)+$`)

// ValidateRequired fails when value is empty or only whitespace.
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// ValidateMaxLength fails when value has more than max characters.
func ValidateMaxLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return fmt.Errorf("%s must not exceed %d characters", field, max)
	}
	return nil
}

// ValidateEmail checks that email is a bare address (no display name) whose
// domain has at least one dot.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return errors.New("email must be a valid email address")
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 || !emailDomainRegex.MatchString(email[at+1:]) {
		return errors.New("email must be a valid email address")
	}

	if utf8.RuneCountInString(email) > MaxEmailLength {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLength)
	}
	return nil
}

// ValidateID fails when a referenced id is missing.
func ValidateID(field string, id uint) error {
	if id == 0 {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// Collect joins every non-nil error into one error, in argument order.
// It returns nil when all checks passed.
func Collect(errs ...error) error {
	var msgs []string
	for _, err := range errs {
		if err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(msgs, "; "))
}
