package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when an account lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound is returned when a post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrCommentNotFound is returned when a comment is not found.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrTodolineNotFound is returned when a todoline is not found.
	ErrTodolineNotFound = errors.New("todoline not found")

	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserAlreadyExists is returned when trying to register an existing email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrNotActivated is returned when the account still carries an activation token.
	ErrNotActivated = errors.New("E-Mail non vérifié")
	// ErrActivationFailed hides which activation field did not match.
	ErrActivationFailed = errors.New("invalid activation credentials")

	// ErrUnauthenticated is returned when no authenticated actor is present.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrNotApplicable is returned when no policy covers an (action, resource) pair.
	ErrNotApplicable = errors.New("no policy supports this action on this resource")
)

// AccessDeniedError is an authorization failure with a user-facing reason.
type AccessDeniedError struct {
	Reason string
}

func (e *AccessDeniedError) Error() string {
	return e.Reason
}

// NewAccessDenied creates an AccessDeniedError.
func NewAccessDenied(reason string) *AccessDeniedError {
	if reason == "" {
		reason = "Accès refusé."
	}
	return &AccessDeniedError{Reason: reason}
}

// NotFoundError carries a user-facing message for a missing entity.
type NotFoundError struct {
	Kind    error
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func (e *NotFoundError) Unwrap() error {
	return e.Kind
}

// NewNotFound wraps one of the Err*NotFound sentinels with a message.
func NewNotFound(kind error, message string) *NotFoundError {
	return &NotFoundError{Kind: kind, Message: message}
}

// ValidationError lists rejected request fields with their messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var denied *AccessDeniedError
	if errors.As(err, &denied) {
		return NewHTTPError(http.StatusForbidden, denied.Reason, "ACCESS_DENIED")
	}

	var invalid *ValidationError
	if errors.As(err, &invalid) {
		return NewHTTPError(http.StatusBadRequest, invalid.Error(), "VALIDATION_ERROR")
	}

	message := err.Error()
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		message = notFound.Message
	}

	switch {
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, message, "POST_NOT_FOUND")
	case errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, message, "COMMENT_NOT_FOUND")
	case errors.Is(err, ErrTodolineNotFound):
		return NewHTTPError(http.StatusNotFound, message, "TODOLINE_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, message, "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, message, "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNotActivated):
		return NewHTTPError(http.StatusForbidden, message, "EMAIL_NOT_VERIFIED")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, message, "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, message, "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrActivationFailed):
		return NewHTTPError(http.StatusBadRequest, message, "ACTIVATION_FAILED")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, message, "UNAUTHENTICATED")
	case errors.Is(err, ErrNotApplicable):
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "POLICY_NOT_APPLICABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
