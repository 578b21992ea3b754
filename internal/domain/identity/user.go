package identity

import (
	"regexp"
	"strings"

	"github.com/samarth/backend/internal/domain/shared"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	hasLetter       = regexp.MustCompile(`[a-zA-Z]`)
	hasNumber       = regexp.MustCompile(`[0-9]`)
)

// User represents an operator account
type User struct {
	shared.BaseEntity
	Username     string
	PasswordHash string
	Role         Role
	FullName     string
	Active       bool
}

// NewUser creates a new active user with a hashed password
func NewUser(username, password string, role Role, fullName string, hasher PasswordHasher) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be SUPER_ADMIN or ADMIN")
	}
	if len(fullName) > 200 {
		return nil, shared.NewDomainError("INVALID_FULL_NAME", "Full name cannot exceed 200 characters")
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     strings.ToLower(strings.TrimSpace(username)),
		PasswordHash: hash,
		Role:         role,
		FullName:     strings.TrimSpace(fullName),
		Active:       true,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string, hasher PasswordHasher) bool {
	return hasher.Verify(password, u.PasswordHash)
}

// IsActive returns true if the account may authenticate
func (u *User) IsActive() bool {
	return u.Active
}

// IsSuperAdmin returns true for SUPER_ADMIN accounts
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// Deactivate disables the account without deleting it
func (u *User) Deactivate() {
	u.Active = false
	u.Touch()
}

// Activate re-enables the account
func (u *User) Activate() {
	u.Active = true
	u.Touch()
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 100 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}
	if !usernamePattern.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers, underscores, hyphens, and dots")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	if !hasLetter.MatchString(password) || !hasNumber.MatchString(password) {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}
	return nil
}
