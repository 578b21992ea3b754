// Package identity implements login, token resolution and account management.
package identity

import (
	"context"
	"errors"
	"fmt"

	appaudit "github.com/samarth/backend/internal/application/audit"
	"github.com/samarth/backend/internal/domain/audit"
	"github.com/samarth/backend/internal/domain/identity"
	"github.com/samarth/backend/internal/domain/shared"
	"github.com/samarth/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// TokenTypeBearer is the OAuth2 token_type returned on login
const TokenTypeBearer = "bearer"

// Principal is an authenticated caller: the live user plus the token that proved it
type Principal struct {
	User   *identity.User
	Claims *auth.Claims
}

// AuthService handles login, logout and bearer token resolution
type AuthService struct {
	users     identity.UserRepository
	hasher    identity.PasswordHasher
	tokens    *auth.JWTService
	blacklist auth.TokenBlacklist
	audit     *appaudit.Recorder
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users identity.UserRepository,
	hasher identity.PasswordHasher,
	tokens *auth.JWTService,
	blacklist auth.TokenBlacklist,
	recorder *appaudit.Recorder,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		blacklist: blacklist,
		audit:     recorder,
		logger:    logger,
	}
}

// Login verifies credentials and issues an access token. Unknown usernames,
// wrong passwords and inactive accounts fail identically.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*TokenResponse, error) {
	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil || !user.VerifyPassword(input.Password, s.hasher) || !user.IsActive() {
		s.audit.RecordBestEffort(ctx, nil, audit.ActionLoginFailure, "Failed login attempt for "+input.Username)
		s.logger.Info("Login failed", zap.String("username", input.Username))
		return nil, ErrInvalidCredentials
	}

	issued, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.audit.RecordBestEffort(ctx, &user.ID, audit.ActionLoginSuccess, "User logged in")
	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return &TokenResponse{
		AccessToken: issued.Token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int64(issued.ExpiresIn.Seconds()),
	}, nil
}

// Authenticate validates a bearer token and resolves it to a live user
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check token blacklist: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}

	user, err := s.ResolveUser(ctx, claims)
	if err != nil {
		return nil, err
	}
	return &Principal{User: user, Claims: claims}, nil
}

// ResolveUser loads the user named by the token subject. A user deleted and
// re-created under the same name does not inherit old tokens.
func (s *AuthService) ResolveUser(ctx context.Context, claims *auth.Claims) (*identity.User, error) {
	user, err := s.users.FindByUsername(ctx, claims.Username())
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if claims.UserID != "" && claims.UserID != user.ID.String() {
		return nil, ErrUnknownUser
	}
	if !user.IsActive() {
		return nil, ErrInactiveUser
	}
	return user, nil
}

// Logout revokes the presented token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, p *Principal) error {
	ttl := p.Claims.RemainingTTL(s.tokens.Now())
	if ttl > 0 {
		if err := s.blacklist.Revoke(ctx, p.Claims.ID, ttl); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
	}
	s.audit.RecordBestEffort(ctx, &p.User.ID, audit.ActionLogout, "User logged out")
	return nil
}

// Me returns the caller's own account
func (s *AuthService) Me(p *Principal) UserResponse {
	return ToUserResponse(p.User)
}
