// Package apperr holds error values and types shared across
// pgw-sessiond's packages. Errors specific to one package live beside
// it in that package's errors.go instead.
package apperr

import "errors"

// Cross-package sentinels.
var (
	// ErrUnknownSubscriber names a sid not present in the session map.
	ErrUnknownSubscriber = errors.New("unknown subscriber")

	// ErrUnknownRule names a rule not present in the static store or
	// a session's dynamic rule list.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrSessionMismatch is returned when complete_termination names a
	// session id that does not match the live session.
	ErrSessionMismatch = errors.New("session id mismatch")
)
