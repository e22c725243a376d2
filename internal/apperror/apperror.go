// Package apperror defines the error kinds the HTTP layer understands and
// renders them as {"message": "..."} responses.
package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

// Error kinds. KindInternal is the zero value so unclassified errors are 500s.
const (
	KindInternal Kind = iota
	KindValidation
	KindInvalidState
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidState:
		return "invalid_state"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindInvalidState:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified, user-facing error. Domains declare their sentinels
// as *Error values and compare them with errors.Is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation creates a KindValidation error.
func Validation(message string) *Error { return New(KindValidation, message) }

// InvalidState creates a KindInvalidState error.
func InvalidState(message string) *Error { return New(KindInvalidState, message) }

// Unauthorized creates a KindUnauthorized error.
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }

// Forbidden creates a KindForbidden error.
func Forbidden(message string) *Error { return New(KindForbidden, message) }

// NotFound creates a KindNotFound error.
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Conflict creates a KindConflict error.
func Conflict(message string) *Error { return New(KindConflict, message) }

// Unavailable creates a KindUnavailable error.
func Unavailable(message string) *Error { return New(KindUnavailable, message) }

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Response is the body of every error reply.
type Response struct {
	Message string `json:"message"`
}

const internalMessage = "internal server error"

// Respond writes err as a JSON error response and aborts the chain.
// Internal errors only expose their text when gin runs in debug mode.
func Respond(c *gin.Context, logger *zap.SugaredLogger, err error) {
	var appErr *Error
	if errors.As(err, &appErr) {
		logger.Debugw("request failed",
			"kind", appErr.Kind.String(),
			"path", c.FullPath(),
			"error", err,
		)
		c.AbortWithStatusJSON(appErr.Kind.Status(), Response{Message: appErr.Message})
		return
	}

	logger.Errorw("unexpected error",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	message := internalMessage
	if gin.Mode() == gin.DebugMode {
		message = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, Response{Message: message})
}

// BadRequest writes a 400 response, used for request binding failures.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{Message: message})
}

// IsDuplicateKey reports whether err is a unique constraint violation from
// PostgreSQL or SQLite.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint")
}
