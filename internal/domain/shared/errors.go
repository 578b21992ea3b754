package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so errors.Is matches a
// specific message against the generic sentinel of its kind.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes shared across bounded contexts
const (
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInvalidState       = "INVALID_STATE"
	CodeUpstream           = "UPSTREAM_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeUnknownUser        = "UNKNOWN_USER"
	CodeInactiveUser       = "INACTIVE_USER"
)

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput  = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrUnauthorized  = NewDomainError(CodeUnauthorized, "Not authenticated")
	ErrForbidden     = NewDomainError(CodeForbidden, "Not authorized")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrUpstream      = NewDomainError(CodeUpstream, "Upstream system unavailable")
)

// NotFound builds a not-found error with a resource specific message
func NotFound(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// Conflict builds an already-exists error for a duplicate business key
func Conflict(message string) *DomainError {
	return NewDomainError(CodeAlreadyExists, message)
}

// Invalid builds a validation error
func Invalid(message string) *DomainError {
	return NewDomainError(CodeInvalidInput, message)
}

// Forbidden builds an authorization error
func Forbidden(message string) *DomainError {
	return NewDomainError(CodeForbidden, message)
}

// Upstream builds an error for a failed call to an external system
func Upstream(message string) *DomainError {
	return NewDomainError(CodeUpstream, message)
}
