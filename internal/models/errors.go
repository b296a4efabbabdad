// Package models defines typed errors for better error handling and context.
package models

import "fmt"

// ValidationError is a client error: the request was rejected before any
// browser interaction took place.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NavigationError wraps a page-load failure, including timeouts.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation failed for %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// SessionError wraps a failure to create or configure a browsing context.
type SessionError struct {
	Step string
	Err  error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s failed: %v", e.Step, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }
