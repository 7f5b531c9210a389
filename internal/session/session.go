package session

import (
	"time"

	"github.com/ashigaru9/pgw-sessiond/internal/apperr"
	"github.com/ashigaru9/pgw-sessiond/internal/credit"
	"github.com/ashigaru9/pgw-sessiond/internal/monitor"
	"github.com/ashigaru9/pgw-sessiond/internal/ruledb"
	"github.com/ashigaru9/pgw-sessiond/internal/usage"
)

type ruleUsage struct {
	rx uint64
	tx uint64
}

// Session is the per-subscriber aggregate owning credit trackers,
// monitor trackers, and installed rules. It is mutated only by the
// local enforcer; there is no internal locking.
type Session struct {
	SID    string
	ID     string
	Config Config

	rules *ruledb.RuleStore

	staticRuleIDs map[string]struct{}
	dynamicRules  map[string]ruledb.Rule

	creditTrackers  map[uint32]*credit.Tracker
	monitorTrackers map[string]*monitor.Tracker

	ratingGroupRules map[uint32][]string
	deactivated      map[uint32]bool

	lastRuleUsage map[string]ruleUsage

	pendingTermination bool
}

// New returns an empty session. Call Init to populate it from a
// CreateSessionResponse.
func New(sid, sessionID string, cfg Config, rules *ruledb.RuleStore) *Session {
	return &Session{
		SID:              sid,
		ID:               sessionID,
		Config:           cfg,
		rules:            rules,
		staticRuleIDs:    make(map[string]struct{}),
		dynamicRules:     make(map[string]ruledb.Rule),
		creditTrackers:   make(map[uint32]*credit.Tracker),
		monitorTrackers:  make(map[string]*monitor.Tracker),
		ratingGroupRules: make(map[uint32][]string),
		deactivated:      make(map[uint32]bool),
		lastRuleUsage:    make(map[string]ruleUsage),
	}
}

// PendingTermination reports whether Terminate has been called and
// complete_termination is still outstanding.
func (s *Session) PendingTermination() bool { return s.pendingTermination }

// Init populates trackers and installed rules, partitioning rules
// into those to activate immediately and those to schedule for
// later. now is the reference time for that partition.
func (s *Session) Init(now time.Time, req InitRequest) []Action {
	for _, g := range req.Credits {
		tr := credit.NewTracker(s.SID, g.ChargingKey)
		tr.AddAllowance(g.RX, g.TX, g.Total, g.IsFinal)
		s.creditTrackers[g.ChargingKey] = tr
	}
	for _, g := range req.Monitors {
		tr := monitor.NewTracker(s.SID, g.MonitoringKey, g.Level)
		tr.AddAllowance(g.RX, g.TX, g.Total)
		s.monitorTrackers[g.MonitoringKey] = tr
	}

	var immediateStatic, scheduledStatic []string
	var immediateDynamic, scheduledDynamic []ruledb.Rule
	var scheduledAt time.Time

	for _, inst := range req.StaticRules {
		s.staticRuleIDs[inst.RuleID] = struct{}{}
		if rule, ok := s.rules.GetRule(inst.RuleID); ok {
			s.indexRule(rule)
		}
		if inst.ActivationTime.After(now) {
			scheduledStatic = append(scheduledStatic, inst.RuleID)
			scheduledAt = inst.ActivationTime
		} else {
			immediateStatic = append(immediateStatic, inst.RuleID)
		}
	}
	for _, inst := range req.DynamicRules {
		s.dynamicRules[inst.Rule.ID] = inst.Rule
		s.indexRule(inst.Rule)
		if inst.ActivationTime.After(now) {
			scheduledDynamic = append(scheduledDynamic, inst.Rule)
			scheduledAt = inst.ActivationTime
		} else {
			immediateDynamic = append(immediateDynamic, inst.Rule)
		}
	}

	var actions []Action
	if len(immediateStatic) > 0 || len(immediateDynamic) > 0 {
		actions = append(actions, Action{
			Kind: ActivateRules, StaticRuleIDs: immediateStatic, DynamicRules: immediateDynamic,
		})
	}
	if len(scheduledStatic) > 0 || len(scheduledDynamic) > 0 {
		actions = append(actions, Action{
			Kind: ScheduleActivation, StaticRuleIDs: scheduledStatic, DynamicRules: scheduledDynamic, At: scheduledAt,
		})
	}
	return actions
}

// indexRule records a rule's rating group binding so final-unit
// deactivation can find every rule it affects.
func (s *Session) indexRule(rule ruledb.Rule) {
	if rule.HasRatingGroup() {
		s.ratingGroupRules[rule.RatingGroup] = append(s.ratingGroupRules[rule.RatingGroup], rule.ID)
	}
}

// resolveRule finds a rule by id in the dynamic list first, then the
// static store.
func (s *Session) resolveRule(ruleID string) (ruledb.Rule, bool) {
	if rule, ok := s.dynamicRules[ruleID]; ok {
		return rule, true
	}
	if _, installed := s.staticRuleIDs[ruleID]; !installed {
		return ruledb.Rule{}, false
	}
	return s.rules.GetRule(ruleID)
}

// AbsorbRecord routes a per-rule usage record to the matching credit
// and monitor trackers. Records are absolute per-rule counters since
// install; AbsorbRecord converts to a delta against the last observed
// value for this rule.
func (s *Session) AbsorbRecord(ruleID string, cumulativeRX, cumulativeTX uint64) error {
	rule, ok := s.resolveRule(ruleID)
	if !ok {
		return apperr.ErrUnknownRule
	}

	last := s.lastRuleUsage[ruleID]
	deltaRX := delta(last.rx, cumulativeRX)
	deltaTX := delta(last.tx, cumulativeTX)
	s.lastRuleUsage[ruleID] = ruleUsage{rx: cumulativeRX, tx: cumulativeTX}

	if rule.HasRatingGroup() {
		tr := s.creditTrackerFor(rule.RatingGroup)
		tr.AddUsage(deltaRX, deltaTX)
	}
	if rule.HasMonitoringKey() {
		tr := s.monitorTrackerFor(rule.MonitoringKey, monitor.PCCRuleLevel)
		tr.AddUsage(deltaRX, deltaTX)
	}
	for _, tr := range s.monitorTrackers {
		if tr.Level == monitor.SessionLevel {
			tr.AddUsage(deltaRX, deltaTX)
		}
	}
	return nil
}

// delta returns the non-negative increase from last to current,
// treating a decrease (counter reset on the data plane) as a fresh
// start from zero.
func delta(last, current uint64) uint64 {
	if current < last {
		return current
	}
	return current - last
}

func (s *Session) creditTrackerFor(ratingGroup uint32) *credit.Tracker {
	tr, ok := s.creditTrackers[ratingGroup]
	if !ok {
		tr = credit.NewTracker(s.SID, ratingGroup)
		s.creditTrackers[ratingGroup] = tr
	}
	return tr
}

func (s *Session) monitorTrackerFor(key string, level monitor.Level) *monitor.Tracker {
	tr, ok := s.monitorTrackers[key]
	if !ok {
		tr = monitor.NewTracker(s.SID, key, level)
		s.monitorTrackers[key] = tr
	}
	return tr
}

// CollectReports drains eligible trackers and derives any dataplane
// actions their transitions require.
func (s *Session) CollectReports() ([]credit.Report, []monitor.Report, []Action) {
	var creditReports []credit.Report
	var monitorReports []monitor.Report
	var actions []Action

	for rg, tr := range s.creditTrackers {
		if report, ok := tr.GetUpdate(); ok {
			creditReports = append(creditReports, report)
		}
		if tr.IsFinalUnitExhausted() && !s.deactivated[rg] {
			s.deactivated[rg] = true
			if ruleIDs := s.ratingGroupRules[rg]; len(ruleIDs) > 0 {
				actions = append(actions, Action{Kind: DeactivateRules, StaticRuleIDs: ruleIDs})
			}
		}
	}
	for _, tr := range s.monitorTrackers {
		if report, ok := tr.GetUpdate(); ok {
			monitorReports = append(monitorReports, report)
		}
	}
	return creditReports, monitorReports, actions
}

// ApplyUpdates folds peer grant responses into the matching trackers,
// lazily creating a tracker for a grant targeting an unknown key. A
// grant that clears a prior final-unit deactivation, or that tops up
// a spent allowance, reactivates the affected rules.
func (s *Session) ApplyUpdates(credits []CreditGrant, monitors []MonitorGrant) []Action {
	var actions []Action

	for _, g := range credits {
		tr := s.creditTrackerFor(g.ChargingKey)
		if !g.Success {
			tr.MarkExhausted()
			continue
		}
		// A grant unblocks flows that were deactivated on final-unit
		// exhaustion, or that had no usable quota left (never granted,
		// or used up to the allowance).
		blocked := s.deactivated[g.ChargingKey] ||
			tr.Bucket(usage.AllowedTotal) == 0 ||
			tr.UsedTotal() >= tr.Bucket(usage.AllowedTotal)
		tr.AddAllowance(g.RX, g.TX, g.Total, g.IsFinal)
		if blocked && !tr.IsFinalUnitExhausted() {
			s.deactivated[g.ChargingKey] = false
			if ruleIDs := s.ratingGroupRules[g.ChargingKey]; len(ruleIDs) > 0 {
				actions = append(actions, Action{Kind: ActivateRules, StaticRuleIDs: ruleIDs})
			}
		}
	}
	for _, g := range monitors {
		tr := s.monitorTrackerFor(g.MonitoringKey, g.Level)
		if !g.Success {
			tr.MarkExhausted()
			continue
		}
		tr.AddAllowance(g.RX, g.TX, g.Total)
	}
	return actions
}

// Terminate converts every tracker to a terminal report and marks the
// session awaiting complete_termination.
func (s *Session) Terminate() TerminationReport {
	var out TerminationReport
	for _, tr := range s.creditTrackers {
		out.CreditReports = append(out.CreditReports, tr.Terminate())
	}
	for _, tr := range s.monitorTrackers {
		out.MonitorReports = append(out.MonitorReports, tr.Terminate())
	}
	s.pendingTermination = true
	return out
}

// GetChargingCredit is the get_charging_credit read projection; a
// missing tracker returns 0.
func (s *Session) GetChargingCredit(chargingKey uint32, bucket usage.Bucket) uint64 {
	tr, ok := s.creditTrackers[chargingKey]
	if !ok {
		return 0
	}
	return tr.Bucket(bucket)
}

// GetMonitorCredit is the get_monitor_credit read projection; a
// missing tracker returns 0.
func (s *Session) GetMonitorCredit(monitoringKey string, bucket usage.Bucket) uint64 {
	tr, ok := s.monitorTrackers[monitoringKey]
	if !ok {
		return 0
	}
	return tr.Bucket(bucket)
}

// CreditTracker returns the tracker for chargingKey, if any.
func (s *Session) CreditTracker(chargingKey uint32) (*credit.Tracker, bool) {
	tr, ok := s.creditTrackers[chargingKey]
	return tr, ok
}

// CreditTrackers returns every owned credit tracker, for
// ENTIRE_SESSION reauth.
func (s *Session) CreditTrackers() map[uint32]*credit.Tracker { return s.creditTrackers }
