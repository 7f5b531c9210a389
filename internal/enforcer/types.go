// Package enforcer implements the local enforcer: the
// orchestrator that ingests create/update/terminate/re-auth messages,
// folds data-plane usage reports into sessions, drives rule
// activation/deactivation, and emits update and termination requests.
package enforcer

import (
	"github.com/ashigaru9/pgw-sessiond/internal/credit"
	"github.com/ashigaru9/pgw-sessiond/internal/monitor"
)

// RuleRecord is one entry of a RuleRecordTable: an absolute per-rule
// byte counter since install.
type RuleRecord struct {
	SID     string
	RuleID  string
	BytesRX uint64
	BytesTX uint64
}

// RuleRecordTable is the batch of usage records pushed by the data
// plane and folded in by AggregateRecords.
type RuleRecordTable struct {
	Records []RuleRecord
}

// UpdateSessionRequest is the batched report emitted by
// CollectUpdates. CreditUpdates/MonitorUpdates reuse credit.Report
// and monitor.Report directly since their shape already matches
// CreditUsage/UsageMonitorUpdate.
type UpdateSessionRequest struct {
	CreditUpdates  []credit.Report
	MonitorUpdates []monitor.Report
}

// CreditGrantMsg is one ChargingCredit entry of an UpdateSessionResponse.
type CreditGrantMsg struct {
	SID         string
	ChargingKey uint32
	RX          uint64
	TX          uint64
	Total       uint64
	IsFinal     bool
	Success     bool
}

// MonitorGrantMsg is one MonitorCredit entry of an UpdateSessionResponse.
type MonitorGrantMsg struct {
	SID           string
	MonitoringKey string
	Level         monitor.Level
	RX            uint64
	TX            uint64
	Total         uint64
	Success       bool
}

// UpdateSessionResponse is the peer reply folded in by
// UpdateSessionCredit.
type UpdateSessionResponse struct {
	CreditGrants  []CreditGrantMsg
	MonitorGrants []MonitorGrantMsg
}

// SessionTerminateRequest is the batched termination report emitted by
// TerminateSubscriber.
type SessionTerminateRequest struct {
	SID           string
	SessionID     string
	CreditUsages  []credit.Report
	MonitorUsages []monitor.Report
}

// ReauthType distinguishes a single-service re-auth from a
// whole-session one.
type ReauthType int

const (
	SingleService ReauthType = iota
	EntireSession
)

// ChargingReAuthRequest is the CHR message folded in by
// InitChargingReauth.
type ChargingReAuthRequest struct {
	SID            string
	ChargingKey    uint32
	HasChargingKey bool
	Type           ReauthType
}

// ReauthResult is the outcome reported in a ChargingReAuthAnswer.
type ReauthResult int

const (
	UpdateInitiated ReauthResult = iota
	UpdateNotNeeded
	SessionNotFound
)

func (r ReauthResult) String() string {
	switch r {
	case UpdateInitiated:
		return "UPDATE_INITIATED"
	case UpdateNotNeeded:
		return "UPDATE_NOT_NEEDED"
	case SessionNotFound:
		return "SESSION_NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// ChargingReAuthAnswer is the CHA reply to a ChargingReAuthRequest.
type ChargingReAuthAnswer struct {
	Result ReauthResult
}
