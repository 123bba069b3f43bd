package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// hexColorRegex matches 6-digit hex color codes like "#FF5733".
var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateHexColor validates a canvas side color.
// Colors must be 6-digit hex codes with a leading '#' (e.g., "#FFFFFF").
func ValidateHexColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidColor, "side color cannot be empty")
	}

	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidColor, "invalid side color: %q (expected hex code like #FFFFFF)", color)
	}

	return nil
}

// emailRegex is a pragmatic email shape check, not a full RFC 5322 parser.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// phoneRegex accepts local and international phone formats with optional
// separators (e.g., "052-1234567", "+972 52 123 4567").
var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{6,18}$`)

// ValidateFullName validates a customer name for checkout.
func ValidateFullName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return New(ErrCodeInvalidContact, "full name cannot be empty")
	}

	if len(name) > 120 {
		return New(ErrCodeInvalidContact, "full name too long (max 120 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidContact, "full name contains invalid control characters")
		}
	}

	return nil
}

// ValidateEmail validates an email address shape.
func ValidateEmail(email string) error {
	if email == "" {
		return New(ErrCodeInvalidContact, "email cannot be empty")
	}

	if len(email) > 254 {
		return New(ErrCodeInvalidContact, "email too long (max 254 characters)")
	}

	if !emailRegex.MatchString(email) {
		return New(ErrCodeInvalidContact, "invalid email address: %q", email)
	}

	return nil
}

// ValidatePhone validates a phone number shape.
func ValidatePhone(phone string) error {
	if phone == "" {
		return New(ErrCodeInvalidContact, "phone cannot be empty")
	}

	if !phoneRegex.MatchString(phone) {
		return New(ErrCodeInvalidContact, "invalid phone number: %q", phone)
	}

	return nil
}

// ValidateStorageKey validates a persistence key for safety.
// Keys must be simple namespaced identifiers without path components, so a
// storage backend can safely map them to file names.
func ValidateStorageKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "storage key cannot be empty")
	}

	if len(key) > 128 {
		return New(ErrCodeInvalidInput, "storage key too long (max 128 characters)")
	}

	if strings.ContainsAny(key, "/\\") {
		return New(ErrCodeInvalidInput, "storage key cannot contain path separators")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "storage key contains invalid control characters")
		}
	}

	if strings.Contains(key, "..") {
		return New(ErrCodeInvalidInput, "storage key cannot contain path traversal sequences (..)")
	}

	return nil
}
