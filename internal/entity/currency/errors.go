package currency

import "fmt"

// RateFetchError is returned by rate providers when a table cannot be obtained.
type RateFetchError struct {
	Base string
	Err  error
}

func (e *RateFetchError) Error() string {
	return fmt.Sprintf("fetch rates for %s: %v", e.Base, e.Err)
}

func (e *RateFetchError) Unwrap() error {
	return e.Err
}
