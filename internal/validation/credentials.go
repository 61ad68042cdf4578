// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxPasswordBytes is bcrypt's input limit.
const MaxPasswordBytes = 72

// MaxUsernameLength matches the users.username column.
const MaxUsernameLength = 50

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// ValidatePassword checks a password is present and fits bcrypt's input limit.
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("password must not exceed %d bytes", MaxPasswordBytes)
	}
	return nil
}

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}

	if len(username) > MaxUsernameLength {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLength)
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, dots, underscores and hyphens")
	}

	if strings.ContainsAny(username[:1], "_.-") || strings.ContainsAny(username[len(username)-1:], "_.-") {
		return fmt.Errorf("username cannot start or end with a dot, underscore or hyphen")
	}

	return nil
}
