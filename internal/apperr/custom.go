package apperr

import "fmt"

// DataPlaneError wraps a failed or timed-out call to the data-plane
// client.
type DataPlaneError struct {
	Op    string // "activate_flows", "deactivate_flows", "deactivate_all_flows"
	SID   string
	Cause error
}

func (e *DataPlaneError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("dataplane %s failed for %s: %v", e.Op, e.SID, e.Cause)
	}
	return fmt.Sprintf("dataplane %s failed for %s", e.Op, e.SID)
}

func (e *DataPlaneError) Unwrap() error { return e.Cause }

// NewDataPlaneError builds a DataPlaneError.
func NewDataPlaneError(op, sid string, cause error) *DataPlaneError {
	return &DataPlaneError{Op: op, SID: sid, Cause: cause}
}

// StoreError wraps an object-store operation failure.
type StoreError struct {
	Op    string // "set", "get", "get_all", "delete"
	Key   string
	Cause error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store %s failed for key %s: %v", e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("store %s failed for key %s", e.Op, e.Key)
}

func (e *StoreError) Unwrap() error { return e.Cause }

// NewStoreError builds a StoreError.
func NewStoreError(op, key string, cause error) *StoreError {
	return &StoreError{Op: op, Key: key, Cause: cause}
}
