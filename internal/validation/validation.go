package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-. ]+$`)
)

// ValidateEmail checks basic email format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}

// ValidatePassword enforces minimum credential strength.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	// Prevent unreasonable inputs; bcrypt truncates past 72 bytes anyway.
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	return nil
}

// ValidateUsername checks display-name length and allowed characters.
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return fmt.Errorf("username must not be empty")
	}

	if len(trimmed) > 80 {
		return fmt.Errorf("username must not exceed 80 characters")
	}

	if !usernameRegex.MatchString(trimmed) {
		return fmt.Errorf("username can only contain letters, numbers, spaces, underscores, hyphens, and periods")
	}

	return nil
}

// ValidateFolderName checks a folder name before create or rename.
func ValidateFolderName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("folder name must not be empty")
	}

	if len(trimmed) > 200 {
		return fmt.Errorf("folder name must not exceed 200 characters")
	}

	return nil
}
