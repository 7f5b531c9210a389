// Package usage implements the bucket arithmetic and report-eligibility
// state machine shared by the credit and monitor trackers. Both carry
// the same bucket structure, differing only in the extra fields their
// owning package layers on top (final-unit for credit, monitoring
// level for monitor).
package usage

// State is the lifecycle phase of a ledger. FinalUnit/Exhausted are
// derived by the owning tracker's State() method, not stored here,
// since they depend on fields usage.Ledger doesn't own (the final-unit
// flag lives on credit.Tracker).
type State int

const (
	Fresh State = iota
	Reporting
	Reported
	ReauthRequired
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "FRESH"
	case Reporting:
		return "REPORTING"
	case Reported:
		return "REPORTED"
	case ReauthRequired:
		return "REAUTH_REQUIRED"
	default:
		return "UNKNOWN"
	}
}

// Bucket names a single counter exposed as a read-only projection.
type Bucket int

const (
	AllowedTotal Bucket = iota
	UsedRX
	UsedTX
	ReportingRX
	ReportingTX
	ReportedRX
	ReportedTX
)

// Reason tags why a report was generated, matching the CreditUsage
// type enum on the wire.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonQuotaExhausted
	ReasonReauthRequired
	ReasonTerminated
	ReasonValidityTimerExpired
)

func (r Reason) String() string {
	switch r {
	case ReasonQuotaExhausted:
		return "QUOTA_EXHAUSTED"
	case ReasonReauthRequired:
		return "REAUTH_REQUIRED"
	case ReasonTerminated:
		return "TERMINATED"
	case ReasonValidityTimerExpired:
		return "VALIDITY_TIMER_EXPIRED"
	default:
		return "NONE"
	}
}

// Report is the delta-usage message emitted by GetUpdate/Terminate.
type Report struct {
	RX     uint64
	TX     uint64
	Reason Reason
}

// Ledger holds the ALLOWED/USED/REPORTING/REPORTED buckets and the
// report-eligibility phase common to credit and monitor trackers. The
// zero value is a fresh, ungranted ledger.
type Ledger struct {
	allowedTotal uint64
	usedRX       uint64
	usedTX       uint64
	reportingRX  uint64
	reportingTX  uint64
	reportedRX   uint64
	reportedTX   uint64

	phase     State
	reauth    bool
	exhausted bool
}

// UsedTotal returns USED_RX + USED_TX.
func (l *Ledger) UsedTotal() uint64 { return l.usedRX + l.usedTX }

// Bucket reads a single named counter.
func (l *Ledger) Bucket(b Bucket) uint64 {
	switch b {
	case AllowedTotal:
		return l.allowedTotal
	case UsedRX:
		return l.usedRX
	case UsedTX:
		return l.usedTX
	case ReportingRX:
		return l.reportingRX
	case ReportingTX:
		return l.reportingTX
	case ReportedRX:
		return l.reportedRX
	case ReportedTX:
		return l.reportedTX
	default:
		return 0
	}
}

// Phase returns the lifecycle state ignoring final-unit/exhaustion,
// which the owning tracker layers on top via Exhausted/MarkExhausted.
func (l *Ledger) Phase() State {
	if l.reauth {
		return ReauthRequired
	}
	return l.phase
}

// Exhausted reports whether the ledger has been force-closed (e.g. by
// a success=false grant) and will no longer emit reports.
func (l *Ledger) Exhausted() bool { return l.exhausted }

// MarkExhausted force-closes the ledger: no further reports are
// produced until a new allowance arrives.
func (l *Ledger) MarkExhausted() { l.exhausted = true }

// QuotaExceeded reports whether USED_TOTAL has reached ALLOWED_TOTAL.
// A ledger that has never received a grant (ALLOWED_TOTAL == 0) is
// never considered exceeded, even though 0 >= 0.
func (l *Ledger) QuotaExceeded() bool {
	return l.allowedTotal > 0 && l.UsedTotal() >= l.allowedTotal
}

// AddAllowance folds in a new grant: any outstanding REPORTING_* is
// finalized into REPORTED_*, ALLOWED_TOTAL grows by the grant, and the
// ledger becomes reportable again. A pending re-auth is not consumed
// by the grant: it supersedes whatever report the grant answered, so
// the next GetUpdate still emits REAUTH_REQUIRED.
func (l *Ledger) AddAllowance(rxGrant, txGrant, totalGrant uint64) {
	l.reportedRX += l.reportingRX
	l.reportedTX += l.reportingTX
	l.reportingRX, l.reportingTX = 0, 0

	grant := totalGrant
	if grant == 0 {
		grant = rxGrant + txGrant
	}
	l.allowedTotal += grant

	l.exhausted = false
	l.phase = Reported
}

// AddUsage increments USED_RX/USED_TX. Eligibility for reporting is
// derived lazily in GetUpdate from QuotaExceeded.
func (l *Ledger) AddUsage(rx, tx uint64) {
	l.usedRX += rx
	l.usedTX += tx
}

// MarkReauthRequired transitions a non-reporting ledger to
// REAUTH_REQUIRED; if already REPORTING, the re-auth still wins the
// reason on the next GetUpdate. An exhausted ledger ignores it.
func (l *Ledger) MarkReauthRequired() {
	if l.exhausted {
		return
	}
	l.reauth = true
}

// GetUpdate returns a pending report and transitions to REPORTING, or
// reports false if nothing is eligible.
func (l *Ledger) GetUpdate() (Report, bool) {
	if l.exhausted {
		return Report{}, false
	}

	reason := ReasonNone
	switch {
	case l.reauth:
		reason = ReasonReauthRequired
	case l.phase != Reporting && l.QuotaExceeded():
		reason = ReasonQuotaExhausted
	default:
		return Report{}, false
	}

	l.reportingRX = l.usedRX - l.reportedRX
	l.reportingTX = l.usedTX - l.reportedTX
	l.phase = Reporting
	l.reauth = false

	return Report{RX: l.reportingRX, TX: l.reportingTX, Reason: reason}, true
}

// Terminate emits all remaining delta usage regardless of phase,
// preempting any in-flight report.
func (l *Ledger) Terminate() Report {
	rx := l.usedRX - l.reportedRX
	tx := l.usedTX - l.reportedTX
	l.reportedRX = l.usedRX
	l.reportedTX = l.usedTX
	l.reportingRX, l.reportingTX = 0, 0
	l.phase = Reported
	return Report{RX: rx, TX: tx, Reason: ReasonTerminated}
}
