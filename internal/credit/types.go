// Package credit implements the credit tracker: a per (subscriber,
// charging-key) accounting automaton layering a sticky
// final-unit flag and credit-specific report kinds on top of
// usage.Ledger.
package credit

import "github.com/ashigaru9/pgw-sessiond/internal/usage"

// State is the externally observable tracker state, combining
// usage.Ledger's lifecycle phase with the final-unit flag.
type State int

const (
	Fresh State = iota
	Reporting
	Reported
	ReauthRequired
	FinalUnit
	Exhausted
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
	case FinalUnit:
		return "FINAL_UNIT"
	case Exhausted:
		return "EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}

// Report is the CreditUsage message emitted for the policy/charging peer.
type Report struct {
	SID         string
	ChargingKey uint32
	RX          uint64
	TX          uint64
	Reason      usage.Reason
}

// Grant is the ChargingCredit.granted_units payload.
type Grant struct {
	RX      uint64
	TX      uint64
	Total   uint64
	IsFinal bool
	Success bool
}
