// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// ValidateUsername checks if a username meets registration requirements.
// A username made up entirely of digits is rejected.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}

	if len(username) > 150 {
		return fmt.Errorf("username must not exceed 150 characters")
	}

	allDigits := true
	for _, r := range username {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return fmt.Errorf("username cannot be only numbers")
	}

	return nil
}

// ValidatePassword checks if a password meets the minimum length requirement.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}

	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	return nil
}

// ValidateImageExtension checks that a filename carries an allowed image extension.
func ValidateImageExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return fmt.Errorf("file type not allowed (want png, jpg, jpeg, or gif)")
	}
	return nil
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)
	repeatedDots        = regexp.MustCompile(`\.{2,}`)
)

// SanitizeFilename strips path components and collapses unsafe characters so
// the result is safe to join onto the upload directory.
func SanitizeFilename(filename string) string {
	// Backslashes are path separators for Windows clients.
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimLeft(base, ".")
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	// Consecutive dots would be rejected by the storage path resolver.
	base = repeatedDots.ReplaceAllString(base, ".")
	if base == "" || base == "_" {
		return "file"
	}
	return base
}
