package twitter

import "fmt"

// APIError is returned for any non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("twitter api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("twitter api: status %d: %s", e.StatusCode, e.Message)
}
