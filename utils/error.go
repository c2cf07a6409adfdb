package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies application errors for callers and the HTTP layer.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindPrecondition ErrorKind = "precondition"
	KindNotFound     ErrorKind = "notFound"
	KindConflict     ErrorKind = "conflict"
	KindStorage      ErrorKind = "storage"
)

// AppError is a user-facing failure with a stable code.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(code, msg string) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: msg}
}

func NewPreconditionError(code, msg string) *AppError {
	return &AppError{Kind: KindPrecondition, Code: code, Message: msg}
}

func NewNotFoundError(code, msg string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: msg}
}

func NewConflictError(code, msg string) *AppError {
	return &AppError{Kind: KindConflict, Code: code, Message: msg}
}

// StorageError wraps a backend failure so it surfaces as a generic error.
func StorageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", errStorage, op, err)
}

var errStorage = &AppError{Kind: KindStorage, Code: "storageError", Message: "storage operation failed"}

// KindOf reports the kind of err, or KindStorage for unclassified errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

// HTTPStatus maps an error to the response status used by handlers.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindPrecondition:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// HandleErrors is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError writes err using its kind to pick the status.
func RespondError(c *gin.Context, err error) {
	status := HTTPStatus(err)
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindStorage {
		GetLogger().Warn(appErr.Message, zap.String("code", appErr.Code), zap.String("path", c.FullPath()))
		c.JSON(status, ErrorResponse{Message: appErr.Message, Code: appErr.Code})
		return
	}
	GetLogger().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(status, ErrorResponse{Message: "Internal Server Error", Details: err.Error()})
}
