package strata

import "fmt"

// MissingKeyError is returned by GetRequired when resolution of a key
// yields no value.
type MissingKeyError struct {
	// Key is the exact path that was queried.
	Key string
}

// Error returns the error message, naming the queried path.
func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("required configuration key %q not found", e.Key)
}

// LoadError wraps a failure inside a provider's Load. One failing
// provider fails the entire construction or reload as a unit; no
// partial configuration state is valid.
type LoadError struct {
	// Provider names the provider whose load failed.
	Provider string

	// Err is the underlying parse or resource error.
	Err error
}

// Error returns the error message.
func (e *LoadError) Error() string {
	return fmt.Sprintf("provider %s failed to load: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}
