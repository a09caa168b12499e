package promo

import "fmt"

// maxErrLen bounds error text surfaced from remote responses so one verbose
// stack trace cannot blow up the log or the report.
const maxErrLen = 200

// AuthError reports a failed login. It is the only error that aborts a whole
// validation run.
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("promo: login failed with status %d: %s", e.StatusCode, e.Body)
}

// TransportError reports a failed page fetch: either the HTTP round trip
// itself, or a non-2xx status. It degrades the affected page only.
type TransportError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("promo: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("promo: %s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// truncate bounds s to maxErrLen characters.
func truncate(s string) string {
	if len(s) > maxErrLen {
		return s[:maxErrLen]
	}
	return s
}
