package engine

// ErrorCode classifies engine boundary failures.
type ErrorCode string

const (
	ErrInvalidTask       ErrorCode = "INVALID_TASK"
	ErrInvalidReading    ErrorCode = "INVALID_READING"
	ErrUnknownModel      ErrorCode = "UNKNOWN_MODEL"
	ErrInvalidCompletion ErrorCode = "INVALID_COMPLETION"
)

// Error is a typed boundary error with a stable code, so callers can branch
// on Code without string matching.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}
