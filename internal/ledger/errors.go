package ledger

import "fmt"

// APIError is an application-level rejection from the ledger service: the HTTP
// round trip completed but the server refused the operation. Message holds the
// server-supplied error text when the response body carried one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("ledger request failed with status %d", e.StatusCode)
}
