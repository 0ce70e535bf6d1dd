// Package services holds the domain rules of the platform: the content
// hierarchy, the enrollment ledger, the completion recorder and the
// assessment engine. Handlers call into these services and translate the
// sentinel errors below into HTTP statuses; nothing here knows about
// transport.
package services

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is by the boundary layer.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation error")
)

func notFound(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func conflict(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}
