package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/trouze/movienight/internal/metadata"
	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/services/auth"
	"github.com/trouze/movienight/internal/services/catalog"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeMemberNotFound     = "MEMBER_NOT_FOUND"
	CodeMovieNotFound      = "MOVIE_NOT_FOUND"
	CodeCursorOutOfRange   = "CURSOR_OUT_OF_RANGE"
	CodeEmptyRoster        = "EMPTY_ROSTER"
	CodeEmptyMessage       = "EMPTY_MESSAGE"
	CodeEmptyTitle         = "EMPTY_TITLE"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrMemberNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMemberNotFound, "Member not found"}}
	case errors.Is(err, model.ErrMovieNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMovieNotFound, "Movie not found"}}
	case errors.Is(err, metadata.ErrNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMovieNotFound, "Movie not found in metadata provider"}}
	case errors.Is(err, model.ErrCursorOutOfRange):
		return &httpError{http.StatusBadRequest, APIError{CodeCursorOutOfRange, "Cursor outside the rotation"}}
	case errors.Is(err, model.ErrEmptyRoster):
		return &httpError{http.StatusConflict, APIError{CodeEmptyRoster, "No participants in the rotation"}}
	case errors.Is(err, model.ErrEmptyMessage):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyMessage, "Message must not be empty"}}
	case errors.Is(err, model.ErrPermissionDenied):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Missing required permission"}}
	case errors.Is(err, catalog.ErrEmptyTitle):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyTitle, "Movie title must not be empty"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Missing required permission"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
