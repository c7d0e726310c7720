package helpers

import (
	"html"
	"log"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyUser   contextKey = "userObject"
	CartCountKey     contextKey = "cart_count"
	RequestIDKey     contextKey = "request_id"
)

var sanitizePattern = regexp.MustCompile(`[^a-zA-Z0-9\s\-_.,]`)

// SanitizeInput strips everything outside alphanumerics and basic
// punctuation, then HTML-escapes the remainder. Applied to every
// user-supplied value before it reaches a log line.
func SanitizeInput(value string) string {
	if value == "" {
		return value
	}
	return html.EscapeString(sanitizePattern.ReplaceAllString(value, ""))
}

func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return ""
	}
	return string(bytes)
}

func PasswordCompare(hashPass string, password []byte) bool {
	if err := bcrypt.CompareHashAndPassword([]byte(hashPass), password); err != nil {
		return false
	}
	return true
}
