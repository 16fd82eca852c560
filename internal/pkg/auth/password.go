// internal/pkg/auth/password.go
package auth

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/your-org/storefront/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var (
	sequentialLetters = regexp.MustCompile(`(abc|bcd|cde|def|efg|fgh|ghi|hij|ijk|jkl|klm|lmn|mno|nop|opq|pqr|qrs|rst|stu|tuv|uvw|vwx|wxy|xyz)`)
	sequentialDigits  = regexp.MustCompile(`(012|123|234|345|456|567|678|789)`)

	commonPasswords = []string{
		"password", "123456", "qwerty", "letmein", "welcome", "monkey", "dragon", "football",
	}
)

// PasswordManager handles password operations
type PasswordManager struct {
	cost int
}

// NewPasswordManager creates a new password manager
func NewPasswordManager(cfg *config.Config) *PasswordManager {
	cost := cfg.Security.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordManager{cost: cost}
}

// HashPassword hashes a password using bcrypt
func (p *PasswordManager) HashPassword(password string) (string, error) {
	if err := p.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("password validation failed: %w", err)
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// VerifyPassword verifies a password against its hash
func (p *PasswordManager) VerifyPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ValidatePassword validates password strength
func (p *PasswordManager) ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		return fmt.Errorf("password must be no more than 72 characters long")
	}

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return checkCommonPatterns(password)
}

// checkCommonPatterns checks for common weak password patterns
func checkCommonPatterns(password string) error {
	lower := strings.ToLower(password)

	if sequentialLetters.MatchString(lower) {
		return fmt.Errorf("password cannot contain sequential letters")
	}
	if sequentialDigits.MatchString(password) {
		return fmt.Errorf("password cannot contain sequential numbers")
	}

	for _, common := range commonPasswords {
		if strings.Contains(lower, common) {
			return fmt.Errorf("password is too common and easily guessable")
		}
	}

	return nil
}
