package credit

import "github.com/ashigaru9/pgw-sessiond/internal/usage"

// Tracker is the per (subscriber, charging-key) credit automaton.
type Tracker struct {
	SID         string
	ChargingKey uint32

	ledger    usage.Ledger
	finalUnit bool
}

// NewTracker returns a fresh, ungranted tracker.
func NewTracker(sid string, chargingKey uint32) *Tracker {
	return &Tracker{SID: sid, ChargingKey: chargingKey}
}

// Bucket reads a single named counter.
func (t *Tracker) Bucket(b usage.Bucket) uint64 { return t.ledger.Bucket(b) }

// UsedTotal returns USED_RX + USED_TX.
func (t *Tracker) UsedTotal() uint64 { return t.ledger.UsedTotal() }

// State reports the tracker's current lifecycle state.
func (t *Tracker) State() State {
	if t.ledger.Exhausted() {
		return Exhausted
	}
	if t.finalUnit && t.ledger.QuotaExceeded() {
		return Exhausted
	}
	if t.finalUnit {
		return FinalUnit
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

// AddAllowance folds in a new grant. A grant supersedes any prior
// sticky final-unit flag with its own is_final value.
func (t *Tracker) AddAllowance(rxGrant, txGrant, totalGrant uint64, isFinal bool) {
	t.ledger.AddAllowance(rxGrant, txGrant, totalGrant)
	t.finalUnit = isFinal
}

// AddUsage increments USED_RX/USED_TX.
func (t *Tracker) AddUsage(rx, tx uint64) { t.ledger.AddUsage(rx, tx) }

// MarkReauthRequired transitions the tracker toward REAUTH_REQUIRED;
// see usage.Ledger.MarkReauthRequired for the tie-break with an
// in-flight report.
func (t *Tracker) MarkReauthRequired() { t.ledger.MarkReauthRequired() }

// MarkExhausted force-closes the tracker.
func (t *Tracker) MarkExhausted() { t.ledger.MarkExhausted() }

// GetUpdate returns the pending report, if any, transitioning the
// ledger to REPORTING.
func (t *Tracker) GetUpdate() (Report, bool) {
	r, ok := t.ledger.GetUpdate()
	if !ok {
		return Report{}, false
	}
	return Report{SID: t.SID, ChargingKey: t.ChargingKey, RX: r.RX, TX: r.TX, Reason: r.Reason}, true
}

// Terminate emits all remaining delta usage as TERMINATED regardless
// of current phase.
func (t *Tracker) Terminate() Report {
	r := t.ledger.Terminate()
	return Report{SID: t.SID, ChargingKey: t.ChargingKey, RX: r.RX, TX: r.TX, Reason: r.Reason}
}

// IsFinalUnitExhausted reports whether this tracker carries the final
// unit and has reached or exceeded its allowance.
func (t *Tracker) IsFinalUnitExhausted() bool {
	return t.finalUnit && t.ledger.QuotaExceeded()
}
