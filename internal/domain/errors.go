package domain

import "errors"

// ErrBadCredentials is returned on a failed login.
var ErrBadCredentials = errors.New("invalid credentials")

// ValidationError covers missing/malformed fields and business-rule
// violations such as insufficient stock or an out-of-range rating.
type ValidationError struct{ Msg string }

func (e ValidationError) Error() string { return e.Msg }

func Invalid(msg string) error { return ValidationError{Msg: msg} }

// NotFoundError is returned when a referenced entity does not exist.
type NotFoundError struct{ Resource string }

func (e NotFoundError) Error() string { return e.Resource + " not found" }

func NotFound(resource string) error { return NotFoundError{Resource: resource} }
