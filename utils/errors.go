package utils

import (
	"errors"
	"net/http"
)

// AppError adalah error dengan tipe dan status HTTP yang aman untuk client.
type AppError struct {
	ErrorType string
	Status    int
	Message   string
}

func (e *AppError) Error() string {
	return e.Message
}

// Tipe error yang dikenal oleh client (field "error_type" di response).
const (
	TypeValidation          = "ValidationError"
	TypeUnauthenticated     = "UnauthenticatedError"
	TypeForbidden           = "ForbiddenError"
	TypeInvalidTableToken   = "InvalidTableTokenError"
	TypeExpiredToken        = "ExpiredTokenError"
	TypeMalformedToken      = "MalformedTokenError"
	TypeInvalidToken        = "InvalidTokenError"
	TypeDishUnavailable     = "DishUnavailableError"
	TypeInvalidTransition   = "InvalidTransitionError"
	TypeConflict            = "ConflictError"
	TypeServiceUnavailable  = "ServiceUnavailableError"
	TypeNotFound            = "NotFoundError"
	TypeUniquenessConflict  = "UniquenessConflictError"
	TypeInternal            = "InternalError"
)

func ErrValidation(msg string) *AppError {
	return &AppError{ErrorType: TypeValidation, Status: http.StatusUnprocessableEntity, Message: msg}
}

func ErrUnauthenticated(msg string) *AppError {
	return &AppError{ErrorType: TypeUnauthenticated, Status: http.StatusUnauthorized, Message: msg}
}

func ErrForbidden(msg string) *AppError {
	return &AppError{ErrorType: TypeForbidden, Status: http.StatusForbidden, Message: msg}
}

func ErrInvalidTableToken(msg string) *AppError {
	return &AppError{ErrorType: TypeInvalidTableToken, Status: http.StatusUnauthorized, Message: msg}
}

func ErrExpiredToken(msg string) *AppError {
	return &AppError{ErrorType: TypeExpiredToken, Status: http.StatusUnauthorized, Message: msg}
}

func ErrMalformedToken(msg string) *AppError {
	return &AppError{ErrorType: TypeMalformedToken, Status: http.StatusUnauthorized, Message: msg}
}

func ErrInvalidToken(msg string) *AppError {
	return &AppError{ErrorType: TypeInvalidToken, Status: http.StatusUnauthorized, Message: msg}
}

func ErrDishUnavailable(msg string) *AppError {
	return &AppError{ErrorType: TypeDishUnavailable, Status: http.StatusBadRequest, Message: msg}
}

func ErrInvalidTransition(msg string) *AppError {
	return &AppError{ErrorType: TypeInvalidTransition, Status: http.StatusBadRequest, Message: msg}
}

func ErrConflict(msg string) *AppError {
	return &AppError{ErrorType: TypeConflict, Status: http.StatusConflict, Message: msg}
}

func ErrServiceUnavailable(msg string) *AppError {
	return &AppError{ErrorType: TypeServiceUnavailable, Status: http.StatusServiceUnavailable, Message: msg}
}

func ErrNotFound(msg string) *AppError {
	return &AppError{ErrorType: TypeNotFound, Status: http.StatusNotFound, Message: msg}
}

func ErrUniquenessConflict(msg string) *AppError {
	return &AppError{ErrorType: TypeUniquenessConflict, Status: http.StatusConflict, Message: msg}
}

// AsAppError membongkar error menjadi *AppError jika memang bertipe itu.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
