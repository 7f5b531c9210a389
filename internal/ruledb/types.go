// Package ruledb implements the static rule store: an
// immutable-after-insert lookup of rule id to rule descriptor.
package ruledb

import "time"

// TrackingType classifies what accounting a rule is subject to,
// derived from whether it carries a rating group and/or a
// monitoring key.
type TrackingType int

const (
	NoTracking TrackingType = iota
	OnlyOCS
	OnlyPCRF
	OCSAndPCRF
)

func (t TrackingType) String() string {
	switch t {
	case NoTracking:
		return "NO_TRACKING"
	case OnlyOCS:
		return "ONLY_OCS"
	case OnlyPCRF:
		return "ONLY_PCRF"
	case OCSAndPCRF:
		return "OCS_AND_PCRF"
	default:
		return "UNKNOWN"
	}
}

// DeriveTrackingType derives a rule's tracking type:
// nonzero rating group / empty monitoring key -> ONLY_OCS;
// zero rating group / nonempty monitoring key -> ONLY_PCRF;
// both set -> OCS_AND_PCRF; neither -> NO_TRACKING.
func DeriveTrackingType(ratingGroup uint32, monitoringKey string) TrackingType {
	hasRG := ratingGroup != 0
	hasMK := monitoringKey != ""
	switch {
	case hasRG && hasMK:
		return OCSAndPCRF
	case hasRG:
		return OnlyOCS
	case hasMK:
		return OnlyPCRF
	default:
		return NoTracking
	}
}

// Rule is a policy rule descriptor. RatingGroup == 0 and
// MonitoringKey == "" both mean the field is not present.
type Rule struct {
	ID             string
	RatingGroup    uint32
	MonitoringKey  string
	TrackingType   TrackingType
	ActivationTime time.Time // zero value means "activate immediately"
}

// NewRule builds a Rule, deriving its TrackingType.
func NewRule(id string, ratingGroup uint32, monitoringKey string, activationTime time.Time) Rule {
	return Rule{
		ID:             id,
		RatingGroup:    ratingGroup,
		MonitoringKey:  monitoringKey,
		TrackingType:   DeriveTrackingType(ratingGroup, monitoringKey),
		ActivationTime: activationTime,
	}
}

// HasRatingGroup reports whether the rule carries a charging key.
func (r Rule) HasRatingGroup() bool { return r.RatingGroup != 0 }

// HasMonitoringKey reports whether the rule carries a monitoring key.
func (r Rule) HasMonitoringKey() bool { return r.MonitoringKey != "" }

// ScheduledForFuture reports whether the rule's activation is strictly
// in the future relative to now.
func (r Rule) ScheduledForFuture(now time.Time) bool {
	return !r.ActivationTime.IsZero() && r.ActivationTime.After(now)
}
