package logging

import "log/slog"

// Common log field names, kept stable so log pipelines can index on them.
const (
	FieldEventID  = "event_id"
	FieldSID      = "sid"
	FieldSession  = "session_id"
	FieldRule     = "rule_id"
	FieldError    = "error"
	FieldLatency  = "latency_ms"
	FieldAttempts = "attempts"
)

// WithEventID returns an slog.Attr for an event id.
func WithEventID(eventID string) slog.Attr {
	return slog.String(FieldEventID, eventID)
}

// WithError returns an slog.Attr for an error, tolerating nil.
func WithError(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}

// WithLatency returns an slog.Attr for a latency in milliseconds.
func WithLatency(ms int64) slog.Attr {
	return slog.Int64(FieldLatency, ms)
}
