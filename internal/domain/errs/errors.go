package errs

import "errors"

// Sentinel errors let transport code map use-case outcomes to status codes
// with errors.Is.
var (
	ErrNotFound = errors.New("user not found")
	ErrConflict = errors.New("user already exists")
)

// ValidationError carries the first violated rule for a field. The HTTP
// layer renders Message verbatim and responds 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
