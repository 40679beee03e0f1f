package pinata

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

var (
	// ErrMissingCredential means the Pinata JWT was never provided. This
	// is a configuration problem and is surfaced before any network I/O.
	ErrMissingCredential = errors.New("pinata JWT is missing")

	// ErrMalformedResponse wraps failures decoding an upstream body.
	ErrMalformedResponse = errors.New("malformed pinata response")
)

// RemoteError is a non-2xx answer from Pinata. The body is kept verbatim
// so operators can see exactly what the upstream said; this service never
// interprets upstream error payloads.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("pinata API error (%d): %s", e.StatusCode, e.Body)
}

/*
IsRetryable reports whether err is a transport failure worth another
attempt: a request timeout or a connection-level failure. Upstream
rejections (RemoteError), decode failures, and anything else are
terminal.
*/
func IsRetryable(err error) bool {
	var remoteErr *RemoteError

	if errors.As(err, &remoteErr) {
		return false
	}

	var urlErr *url.Error

	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}

		var opErr *net.OpError
		return errors.As(urlErr.Err, &opErr)
	}

	var netErr net.Error

	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}
