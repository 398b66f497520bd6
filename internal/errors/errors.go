package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFoundOrUnauthorized is the merged outcome for a missing entity
	// and an entity the caller may not touch. The two cases are deliberately
	// indistinguishable so responses never leak existence.
	ErrNotFoundOrUnauthorized = errors.New("not found or pending approval")
	// ErrRatingOutOfRange is returned when a rating value is outside 1-5.
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5 stars")
	// ErrCommentTooShort is returned when a trimmed comment is under 5 characters.
	ErrCommentTooShort = errors.New("comment must be at least 5 characters")
	// ErrUserAlreadyExists is returned when the username or email is taken.
	ErrUserAlreadyExists = errors.New("username or email already in use")
	// ErrEmailTaken is returned when a profile edit targets another account's email.
	ErrEmailTaken = errors.New("email already used by another account")
	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountBanned is returned when a banned user attempts to log in.
	ErrAccountBanned = errors.New("account is banned")
	// ErrNoEmailOnAccount is returned when a password reset has nowhere to send.
	ErrNoEmailOnAccount = errors.New("account has no email address")
	// ErrUploadRejected is returned when an uploaded file fails type/size checks.
	ErrUploadRejected = errors.New("only images up to 5MB are accepted (jpg, png, gif, webp)")
	// ErrImageRequired is returned when a recipe is created without an image.
	ErrImageRequired = errors.New("recipe image is required")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
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

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse
// to a generic 500 so persistence failures never surface driver details.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNotFoundOrUnauthorized):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrRatingOutOfRange):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "RATING_OUT_OF_RANGE")
	case errors.Is(err, ErrCommentTooShort):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "COMMENT_TOO_SHORT")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAccountBanned):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCOUNT_BANNED")
	case errors.Is(err, ErrNoEmailOnAccount):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_EMAIL")
	case errors.Is(err, ErrUploadRejected):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UPLOAD_REJECTED")
	case errors.Is(err, ErrImageRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "IMAGE_REQUIRED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "server error, try again", "INTERNAL_ERROR")
	}
}
