package identity

import "github.com/samarth/backend/internal/domain/shared"

// Authentication failures. All of them surface as 401.
var (
	ErrInvalidCredentials = shared.NewDomainError(shared.CodeInvalidCredentials, "Incorrect username or password")
	ErrInvalidToken       = shared.NewDomainError(shared.CodeInvalidToken, "Could not validate credentials")
	ErrTokenExpired       = shared.NewDomainError(shared.CodeTokenExpired, "Token has expired")
	ErrUnknownUser        = shared.NewDomainError(shared.CodeUnknownUser, "Could not validate credentials")
	ErrInactiveUser       = shared.NewDomainError(shared.CodeInactiveUser, "Inactive user")
)
