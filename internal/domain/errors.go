package domain

import (
	"errors"
	"fmt"
)

// Error kinds classifying store and platform failures. Every error crossing
// the repository boundary wraps exactly one of these; ErrTransient is the
// only kind callers retry.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConflict         = errors.New("conflict")
	ErrTransient        = errors.New("transient failure")
	ErrUnknown          = errors.New("unknown failure")

	// ErrNoProfile means an authenticated principal has no active portal
	// profile. The session is invalid regardless of the token's validity.
	ErrNoProfile = errors.New("no active profile for principal")
)

// WrapError attaches a kind to a descriptive message so errors.Is works
// against the kind while the message carries the detail.
func WrapError(kind error, format string, args ...any) error {
	args = append(args, kind)
	return fmt.Errorf(format+": %w", args...)
}

func IsTransient(err error) bool { return errors.Is(err, ErrTransient) }

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
