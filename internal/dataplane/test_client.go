package dataplane

import "github.com/ashigaru9/pgw-sessiond/internal/ruledb"

// Call records one invocation against TestClient, in submission
// order, for assertions on the per-sid ordering guarantee.
type Call struct {
	Op      string // "activate", "deactivate", "deactivate_all"
	SID     string
	RuleIDs []string
}

// TestClient is a synchronous Client double: every call invokes its
// callback before returning, and every call is appended to Calls in
// the order submitted.
type TestClient struct {
	Calls  []Call
	Result bool // result returned to every callback, defaults to true (success)
}

// NewTestClient returns a double whose operations succeed by default.
func NewTestClient() *TestClient {
	return &TestClient{Result: true}
}

func (c *TestClient) ActivateFlows(sid, ueIPv4 string, staticRuleIDs []string, dynamicRules []ruledb.Rule, cb Callback) {
	c.Calls = append(c.Calls, Call{Op: "activate", SID: sid, RuleIDs: append([]string{}, staticRuleIDs...)})
	cb(c.Result)
}

func (c *TestClient) DeactivateFlows(sid string, staticRuleIDs []string, dynamicRules []ruledb.Rule, cb Callback) {
	c.Calls = append(c.Calls, Call{Op: "deactivate", SID: sid, RuleIDs: append([]string{}, staticRuleIDs...)})
	cb(c.Result)
}

func (c *TestClient) DeactivateAllFlows(sid string, cb Callback) {
	c.Calls = append(c.Calls, Call{Op: "deactivate_all", SID: sid})
	cb(c.Result)
}
