package sheets

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse indicates a response without a values array or header row.
var ErrMalformedResponse = errors.New("malformed sheets response")

// NetworkError is a transient fetch failure: transport error or non-2xx status.
type NetworkError struct {
	Range      string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %q: unexpected status %d", e.Range, e.StatusCode)
	}
	return fmt.Sprintf("fetch %q: %v", e.Range, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is worth retrying later.
func IsTransient(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
