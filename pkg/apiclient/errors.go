package apiclient

import "fmt"

// APIError means the server was reached but rejected the request: a non-2xx
// status, or a 2xx body carrying success:false. Message is the
// server-supplied text when present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Request failed: %d", e.Status)
}

// NetworkError means the server was never reached.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError is a client-side required-field failure. It is raised
// before any request is issued and never travels to the server.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}
