// Package dataplane implements the data-plane client: a narrow,
// async, callback-based contract for activating and deactivating
// policy flows on the packet-processing component.
package dataplane

//go:generate mockgen -source=types.go -destination=mocks/client_mock.go -package=mocks

import "github.com/ashigaru9/pgw-sessiond/internal/ruledb"

// Callback delivers the boolean result of a flow operation. It may run
// synchronously inside the submitting call (TestClient) or later on
// another goroutine (RPCClient's per-sid worker), so a callback must
// not mutate enforcer state directly; callers trampoline the result
// back onto their own loop.
type Callback func(success bool)

// Client is the capability set every data-plane backend implements:
// a real async RPC client and a synchronous test double, selected by
// composition rather than an inheritance tree.
type Client interface {
	// ActivateFlows installs the given static and dynamic rules for sid
	// at ueIPv4, invoking cb with the outcome once known.
	ActivateFlows(sid, ueIPv4 string, staticRuleIDs []string, dynamicRules []ruledb.Rule, cb Callback)
	// DeactivateFlows tears down the given rules for sid.
	DeactivateFlows(sid string, staticRuleIDs []string, dynamicRules []ruledb.Rule, cb Callback)
	// DeactivateAllFlows tears down every installed flow for sid.
	DeactivateAllFlows(sid string, cb Callback)
}
