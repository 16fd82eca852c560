// internal/domain/account/entity.go
package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/your-org/storefront/internal/domain/user"
)

var (
	ErrAccountExists      = errors.New("account with this email already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Account is a registered shopper with a hashed password
type Account struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone,omitempty"`
	Avatar       string     `json:"avatar,omitempty"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// Profile returns the public view of the account
func (a Account) Profile() user.Profile {
	return user.Profile{
		ID:     a.ID,
		Name:   a.Name,
		Email:  a.Email,
		Avatar: a.Avatar,
		Phone:  a.Phone,
	}
}

// NormalizeEmail lowercases and trims an email for lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Store persists accounts keyed by id and by normalized email
type Store interface {
	Create(ctx context.Context, a Account) error
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindByID(ctx context.Context, id string) (Account, error)
	TouchLogin(ctx context.Context, id string, at time.Time) error
}
