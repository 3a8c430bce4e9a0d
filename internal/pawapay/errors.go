package pawapay

import (
	"errors"
	"fmt"
)

// GatewayError is the uniform failure for every gateway call. StatusCode is
// zero when the call never produced an HTTP response (network failure,
// timeout, malformed JSON).
type GatewayError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("pawapay request failed: %v", e.Err)
	}
	return fmt.Sprintf("pawapay returned status %d: %s", e.StatusCode, e.Body)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	ok := errors.As(err, &gwErr)
	return gwErr, ok
}
