package dataplane

import "errors"

// ErrCircuitOpen is the cause logged in the DataPlaneError (and the
// operation reported as failed) when the breaker has tripped on the
// data-plane RPC path.
var ErrCircuitOpen = errors.New("dataplane: circuit breaker open")
