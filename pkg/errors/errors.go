package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is an operational error: an anticipated, classified failure whose
// message is safe to return to the client. Anything that is not an AppError
// is treated as a programming error by the error-rendering middleware.
type AppError struct {
	Code    string
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, status int, message string) *AppError {
	return &AppError{Code: code, Status: status, Message: message}
}

// Validation wraps a validator failure into a 400 operational error. The
// underlying error is kept for development-mode responses.
func Validation(message string, err error) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Status: http.StatusBadRequest, Message: message, Err: err}
}

// AsAppError reports whether err (or anything it wraps) is operational.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

var (
	ErrNotAuthenticated = New("NOT_AUTHENTICATED", http.StatusUnauthorized, "you are not logged in, please log in to get access")
	ErrInvalidToken     = New("INVALID_TOKEN", http.StatusUnauthorized, "invalid token, please log in again")
	ErrExpiredToken     = New("EXPIRED_TOKEN", http.StatusUnauthorized, "your token has expired, please log in again")
	ErrUserGone         = New("USER_GONE", http.StatusUnauthorized, "the user belonging to this token no longer exists")
	ErrStalePassword    = New("STALE_PASSWORD_TOKEN", http.StatusUnauthorized, "password was changed after this token was issued, please log in again")
	ErrBadCredentials   = New("BAD_CREDENTIALS", http.StatusUnauthorized, "incorrect email or password")

	ErrForbidden = New("FORBIDDEN", http.StatusForbidden, "you do not have permission to perform this action")

	ErrUserNotFound = New("USER_NOT_FOUND", http.StatusNotFound, "there is no user with that email address")
	ErrTourNotFound = New("TOUR_NOT_FOUND", http.StatusNotFound, "no tour found with that ID")

	ErrEmailTaken = New("EMAIL_TAKEN", http.StatusConflict, "this email address is already registered")
	ErrNameTaken  = New("NAME_TAKEN", http.StatusConflict, "a tour with that name already exists")

	ErrInvalidResetToken = New("INVALID_RESET_TOKEN", http.StatusBadRequest, "reset token is invalid")
	ErrExpiredResetToken = New("EXPIRED_RESET_TOKEN", http.StatusBadRequest, "reset token has expired, please request a new one")

	ErrEmailDispatch = New("EMAIL_DISPATCH_FAILED", http.StatusInternalServerError, "there was an error sending the email, try again later")

	ErrUserInactive = New("USER_INACTIVE", http.StatusUnauthorized, "this account has been deactivated")
)
