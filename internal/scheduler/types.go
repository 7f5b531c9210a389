// Package scheduler implements the timed-action dispatcher: a
// single-threaded cooperative scheduler for delayed rule activations.
package scheduler

import "github.com/ashigaru9/pgw-sessiond/internal/ruledb"

// Batch is the rule-activation batch a scheduled action fires with.
type Batch struct {
	SID           string
	UEIPv4        string
	StaticRuleIDs []string
	DynamicRules  []ruledb.Rule
}

// FireFunc is invoked on the dispatcher's own goroutine when a
// deadline elapses. Implementations that need to touch enforcer state
// must post back to their own loop; the dispatcher does not do this
// on their behalf.
type FireFunc func(Batch)
