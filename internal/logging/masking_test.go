package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSID(t *testing.T) {
	tests := []struct {
		name    string
		sid     string
		enabled bool
		want    string
	}{
		{name: "masked", sid: "440101234567890", enabled: true, want: "440101********0"},
		{name: "disabled", sid: "440101234567890", enabled: false, want: "440101234567890"},
		{name: "too short to mask", sid: "IMSI1", enabled: true, want: "IMSI1"},
		{name: "empty", sid: "", enabled: true, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskSID(tt.sid, tt.enabled))
		})
	}
}

func TestMasker(t *testing.T) {
	on := NewMasker(true)
	off := NewMasker(false)
	assert.Equal(t, "440101********0", on.SID("440101234567890"))
	assert.Equal(t, "440101234567890", off.SID("440101234567890"))
}
