package retail

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse marks a success status whose body yields neither
// a basket identifier nor a redirect target. Indicates an API contract
// change, fatal to the current submission.
var ErrMalformedResponse = errors.New("basket response lacks identifier and redirect target")

// ConfigError is raised before any I/O when required configuration (or
// the selected order itself) is missing.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration incomplete: missing %s", strings.Join(e.Missing, ", "))
}

// AuthError is an explicit rejection by the identity endpoint.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("authentication failed with status %d", e.Status)
	}
	return fmt.Sprintf("authentication failed with status %d: %s", e.Status, e.Message)
}

// APIError is a non-success status from the basket endpoint, carrying
// the upstream message verbatim when one was parseable.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("basket API error (status %d): %s", e.Status, e.Message)
}

// TransportError is a network-level failure reaching either endpoint,
// as opposed to an explicit upstream rejection.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
