// Package session implements the per-subscriber session aggregate: the
// per-subscriber owner of credit trackers, monitor trackers, and
// installed rules.
package session

import (
	"time"

	"github.com/ashigaru9/pgw-sessiond/internal/credit"
	"github.com/ashigaru9/pgw-sessiond/internal/monitor"
	"github.com/ashigaru9/pgw-sessiond/internal/ruledb"
)

// Config is the per-session configuration carried in
// CreateSessionResponse.
type Config struct {
	UEIPv4   string
	SPGWIPv4 string
}

// CreditGrant is one ChargingCredit entry.
type CreditGrant struct {
	ChargingKey uint32
	RX          uint64
	TX          uint64
	Total       uint64
	IsFinal     bool
	Success     bool
}

// MonitorGrant is one MonitorCredit entry.
type MonitorGrant struct {
	MonitoringKey string
	Level         monitor.Level
	RX            uint64
	TX            uint64
	Total         uint64
	Success       bool
}

// StaticRuleInstall names a globally registered rule to attach to
// the session, with an optional activation time.
type StaticRuleInstall struct {
	RuleID         string
	ActivationTime time.Time
}

// DynamicRuleInstall carries a rule body by value, with an optional
// activation time.
type DynamicRuleInstall struct {
	Rule           ruledb.Rule
	ActivationTime time.Time
}

// InitRequest is the CreateSessionResponse payload.
type InitRequest struct {
	Credits      []CreditGrant
	Monitors     []MonitorGrant
	StaticRules  []StaticRuleInstall
	DynamicRules []DynamicRuleInstall
}

// ActionKind distinguishes the dataplane action a collect cycle asks
// the caller to execute.
type ActionKind int

const (
	ActivateRules ActionKind = iota
	DeactivateRules
	ScheduleActivation
)

// Action is a deferred dataplane instruction returned by
// CollectReports/ApplyUpdates. StaticRuleIDs/DynamicRules name the
// affected rules; At is only meaningful for ScheduleActivation.
type Action struct {
	Kind          ActionKind
	StaticRuleIDs []string
	DynamicRules  []ruledb.Rule
	At            time.Time
}

// TerminationReport is the batched residual-usage report produced by
// Terminate.
type TerminationReport struct {
	CreditReports  []credit.Report
	MonitorReports []monitor.Report
}
