package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the Gemini endpoint could not be reached.
	ErrUnavailable = errors.New("gemini endpoint unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the reply could not be parsed or lacked
	// the expected candidate fields.
	ErrInvalidOutput = errors.New("invalid llm output format")
)

// ServiceError is an error object reported by the Gemini service itself,
// e.g. an invalid API key or an exhausted quota.
type ServiceError struct {
	HTTPStatus int
	Code       int
	Status     string
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini service error (%d %s): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini service error (%d): %s", e.Code, e.Message)
}

// IsServiceError reports whether err carries a *ServiceError.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}
