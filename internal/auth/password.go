package auth

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/agrimart/agri-storefront/pkg/util/errorutil"
)

// DefaultMinPasswordLength is used when no policy length is configured.
const DefaultMinPasswordLength = 6

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// ValidatePassword enforces the minimum length policy.
func ValidatePassword(password string, minLength int) error {
	if minLength <= 0 {
		minLength = DefaultMinPasswordLength
	}
	if utf8.RuneCountInString(password) < minLength {
		return apperrors.NewAuthError(apperrors.CodeWeakPassword, "password is too short")
	}
	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		return apperrors.NewAuthError(apperrors.CodeWeakPassword, "password is too long")
	}
	return nil
}

// NormalizeEmail trims and lower-cases an address and rejects malformed input.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return "", apperrors.NewAuthError(apperrors.CodeMalformedEmail, "email address is malformed")
	}
	return email, nil
}
