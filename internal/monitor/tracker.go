package monitor

import "github.com/ashigaru9/pgw-sessiond/internal/usage"

// Tracker is the per (subscriber, monitoring-key) usage automaton.
type Tracker struct {
	SID           string
	MonitoringKey string
	Level         Level

	ledger usage.Ledger
}

// NewTracker returns a fresh, ungranted tracker at the given level.
func NewTracker(sid, monitoringKey string, level Level) *Tracker {
	return &Tracker{SID: sid, MonitoringKey: monitoringKey, Level: level}
}

// Bucket reads a single named counter.
func (t *Tracker) Bucket(b usage.Bucket) uint64 { return t.ledger.Bucket(b) }

// UsedTotal returns USED_RX + USED_TX.
func (t *Tracker) UsedTotal() uint64 { return t.ledger.UsedTotal() }

// State reports the tracker's current lifecycle state.
func (t *Tracker) State() State {
	if t.ledger.Exhausted() {
		return Reported
	}
	switch t.ledger.Phase() {
	case usage.Reporting:
		return Reporting
	case usage.Reported:
		return Reported
	case usage.ReauthRequired:
		return ReauthRequired
	default:
		return Fresh
	}
}

// AddAllowance folds in a new grant.
func (t *Tracker) AddAllowance(rxGrant, txGrant, totalGrant uint64) {
	t.ledger.AddAllowance(rxGrant, txGrant, totalGrant)
}

// AddUsage increments USED_RX/USED_TX.
func (t *Tracker) AddUsage(rx, tx uint64) { t.ledger.AddUsage(rx, tx) }

// MarkExhausted force-closes the tracker.
func (t *Tracker) MarkExhausted() { t.ledger.MarkExhausted() }

// GetUpdate returns the pending report, if any.
func (t *Tracker) GetUpdate() (Report, bool) {
	r, ok := t.ledger.GetUpdate()
	if !ok {
		return Report{}, false
	}
	return Report{
		SID: t.SID, MonitoringKey: t.MonitoringKey, Level: t.Level,
		RX: r.RX, TX: r.TX, Reason: r.Reason,
	}, true
}

// Terminate emits all remaining delta usage as TERMINATED.
func (t *Tracker) Terminate() Report {
	r := t.ledger.Terminate()
	return Report{
		SID: t.SID, MonitoringKey: t.MonitoringKey, Level: t.Level,
		RX: r.RX, TX: r.TX, Reason: r.Reason,
	}
}
