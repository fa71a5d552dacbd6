package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error represents an application error with the status it maps to.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinel errors by code and message so wrapped copies still
// compare equal to the variables below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Err: cause}
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Validation error types
var (
	ErrInvalidInput = New(http.StatusBadRequest, "Invalid input", nil)
)

// Authentication error types
var (
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid email or password", nil)
	ErrMissingIdentity    = New(http.StatusUnauthorized, "No user email provided", nil)
)

// Business logic error types
var (
	ErrConflict        = New(http.StatusConflict, "User already exists", nil)
	ErrOutOfStock      = New(http.StatusConflict, "Not enough in stock", nil)
	ErrProductNotFound = New(http.StatusNotFound, "Product not found", nil)
)

// From converts any error into an *Error. Unknown errors become a 500 that
// keeps the cause for logging.
func From(err error) *Error {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer.Wrap(err)
}

// HandleError writes err as a JSON response.
func HandleError(w http.ResponseWriter, err error) {
	appErr := From(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	w.Write([]byte(appErr.JSON()))
}

// ErrorMiddleware renders the last error pushed with c.Error. Server errors
// are logged with their cause; the client only sees the message.
func ErrorMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := From(c.Errors.Last().Err)
		if appErr.Code >= http.StatusInternalServerError && log != nil {
			log.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString("request_id")),
				zap.Error(c.Errors.Last().Err),
			)
		}

		c.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Message})
	}
}
