package regexcore

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the sentinel wrapped by every rejected
// pattern/input/configuration value, so callers can test the cause with
// errors.Is regardless of the context fmt.Errorf attaches around it.
var ErrInvalidArgument = errors.New("invalid argument")

// InternalError is defensive: it should never occur in a correct
// implementation. The operations surface raises it when it recovers a
// panic it did not itself anticipate, rather than letting the panic
// escape to the caller.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s", e.Message)
}
