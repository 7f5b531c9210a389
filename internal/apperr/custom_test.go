package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataPlaneError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDataPlaneError("activate_flows", "IMSI1", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "activate_flows")
	assert.Contains(t, err.Error(), "IMSI1")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDataPlaneError_NoCause(t *testing.T) {
	err := NewDataPlaneError("deactivate_flows", "IMSI1", nil)

	assert.Equal(t, "dataplane deactivate_flows failed for IMSI1", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestStoreError(t *testing.T) {
	cause := errors.New("timeout")
	err := NewStoreError("set", "sessiond:sessions", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "set")
	assert.Contains(t, err.Error(), "sessiond:sessions")
}
