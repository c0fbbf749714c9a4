package middleware

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Input validation and sanitization utilities

const (
	// MaxBatchDocuments bounds one batch request; each document still costs
	// one sequential analyzer call.
	MaxBatchDocuments = 20

	// MaxDocumentNameLen keeps labels storage- and log-friendly.
	MaxDocumentNameLen = 255
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks the delivery address shape
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidateDocumentName rejects names that would be unsafe as labels or
// storage keys
func ValidateDocumentName(name string) error {
	if name == "" {
		return nil // pasted text has no file name
	}
	if len(name) > MaxDocumentNameLen {
		return fmt.Errorf("document name too long (max %d)", MaxDocumentNameLen)
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("invalid document name")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("invalid document name")
		}
	}
	return nil
}

// ValidateBatchSize bounds one analysis batch
func ValidateBatchSize(n int) error {
	if n == 0 {
		return fmt.Errorf("nothing to analyze")
	}
	if n > MaxBatchDocuments {
		return fmt.Errorf("too many documents (max %d)", MaxBatchDocuments)
	}
	return nil
}
