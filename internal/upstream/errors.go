package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	ErrUnexpectedStatus    = errors.New("unexpected upstream status")
	ErrInvalidJSON         = errors.New("upstream returned invalid json")
	ErrUnsupportedEncoding = errors.New("unsupported content-encoding")
)

// Error describes a failed upstream call. Body holds a truncated copy of the
// upstream payload for logging and must not be returned to callers.
type Error struct {
	Op         string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Timeout reports whether the call failed because the deadline expired.
func (e *Error) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}
