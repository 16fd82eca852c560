// internal/domain/account/service.go
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/pkg/auth"
)

// Service handles shopper registration and sign-in
type Service struct {
	store           Store
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
	now             func() time.Time
}

// NewService creates a new account service
func NewService(store Store, cfg *config.Config) *Service {
	return &Service{
		store:           store,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Phone           string `json:"phone"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         user.Profile `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

// Register creates a new account and signs it in
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	const op = "account.Register"

	if req.Password != req.ConfirmPassword {
		return nil, domain.InvalidInput(op, "passwords do not match")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.InvalidInput(op, "name is required")
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, domain.InvalidInput(op, err.Error())
	}

	a := Account{
		ID:           uuid.NewString(),
		Email:        NormalizeEmail(req.Email),
		Name:         strings.TrimSpace(req.Name),
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		CreatedAt:    s.now(),
	}
	if err := s.store.Create(ctx, a); err != nil {
		if errors.Is(err, ErrAccountExists) {
			return nil, &domain.Error{Op: op, ID: a.Email, Err: fmt.Errorf("%w: %w", domain.ErrInvalidState, err)}
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.issue(ctx, a)
}

// Login authenticates a shopper
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	a, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := s.passwordManager.VerifyPassword(req.Password, a.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, a)
}

// RefreshToken generates new tokens using refresh token
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	a, err := s.store.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	return s.issue(ctx, a)
}

// Authenticate resolves an access token to the account it was issued for
func (s *Service) Authenticate(ctx context.Context, accessToken string) (user.Profile, error) {
	claims, err := s.jwtManager.ValidateAccessToken(accessToken)
	if err != nil {
		return user.Profile{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	a, err := s.store.FindByID(ctx, claims.UserID)
	if err != nil {
		return user.Profile{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return a.Profile(), nil
}

func (s *Service) issue(ctx context.Context, a Account) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(a.ID, a.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(a.ID, a.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.store.TouchLogin(ctx, a.ID, s.now()); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return &AuthResponse{
		User:         a.Profile(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// Profile returns the public profile of an account
func (s *Service) Profile(ctx context.Context, id string) (user.Profile, error) {
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		return user.Profile{}, err
	}
	return a.Profile(), nil
}

// JWT exposes the token manager used to sign this service's tokens
func (s *Service) JWT() *auth.JWTManager {
	return s.jwtManager
}
