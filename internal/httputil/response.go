package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"minitweet/internal/model"
)

// Generic error codes; domain codes live in model
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeUnknown      = "UNKNOWN_ERROR"
)

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error code and message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// headers already sent
			slog.Error("encode response", slog.String("component", "httputil"), slog.Any("err", err))
		}
	}
}

// WriteError writes an error response:
// {"error": {"code": "ERROR_CODE", "message": "Human readable message"}}
func WriteError(w http.ResponseWriter, status int, code string, message string) {
	response := ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
	WriteJSON(w, status, response)
}

// WriteBadRequest writes a 400 Bad Request error
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// WriteBadRequestWithCode writes a 400 Bad Request error with a custom code
func WriteBadRequestWithCode(w http.ResponseWriter, code string, message string) {
	WriteError(w, http.StatusBadRequest, code, message)
}

// WriteUnauthorized writes a 401 Unauthorized error
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// serviceErrors maps domain sentinels to their 400 reason codes.
var serviceErrors = []struct {
	err     error
	code    string
	message string
}{
	{model.ErrEmailExists, model.CodeDuplicateEmail, "Duplicate email"},
	{model.ErrInvalidCredentials, model.CodeInvalidCredentials, "Wrong email or password"},
	{model.ErrContentTooLong, model.CodeContentTooLong, "Cannot be over 300 characters"},
	{model.ErrContentEmpty, model.CodeContentEmpty, "Tweet cannot be empty"},
	{model.ErrUserNotFound, model.CodeUserNotFound, "No user"},
	{model.ErrAlreadyFollowing, model.CodeAlreadyFollowing, "Already following"},
	{model.ErrNotFollowing, model.CodeNotFollowing, "Not following this user"},
	{model.ErrCannotFollowSelf, model.CodeCannotFollowSelf, "Cannot follow yourself"},
	{model.ErrNameRequired, ErrCodeBadRequest, "Name is required"},
	{model.ErrEmailRequired, ErrCodeBadRequest, "Email is required"},
	{model.ErrPasswordRequired, ErrCodeBadRequest, "Password is required"},
	{model.ErrPasswordTooLong, ErrCodeBadRequest, "Password cannot exceed 72 bytes"},
}

// WriteServiceError translates a service error into a response. Every
// failure is a 400: known domain errors carry their reason code, anything
// else is logged and reported as UNKNOWN_ERROR without detail.
func WriteServiceError(w http.ResponseWriter, op string, err error) {
	for _, se := range serviceErrors {
		if errors.Is(err, se.err) {
			WriteBadRequestWithCode(w, se.code, se.message)
			return
		}
	}

	slog.Error("request failed", slog.String("component", "handler"), slog.String("op", op), slog.Any("err", err))
	WriteBadRequestWithCode(w, ErrCodeUnknown, "Unknown error")
}
