package enforcer

import (
	"context"

	"github.com/ashigaru9/pgw-sessiond/internal/scheduler"
	"github.com/ashigaru9/pgw-sessiond/internal/session"
)

// executeActions dispatches the actions a session.Init/CollectReports/
// ApplyUpdates call returned: immediate activation/deactivation goes
// to the data-plane client, scheduled activation goes to the timed
// dispatcher.
func (e *Enforcer) executeActions(sid, ueIPv4 string, actions []session.Action) {
	for _, action := range actions {
		switch action.Kind {
		case session.ActivateRules:
			e.dataplane.ActivateFlows(sid, ueIPv4, action.StaticRuleIDs, action.DynamicRules, func(success bool) {
				e.postActivateResult("activate_flows", sid, success)
			})
		case session.DeactivateRules:
			e.dataplane.DeactivateFlows(sid, action.StaticRuleIDs, action.DynamicRules, func(success bool) {
				e.postActivateResult("deactivate_flows", sid, success)
			})
		case session.ScheduleActivation:
			e.dispatch.Schedule(context.Background(), action.At, scheduler.Batch{
				SID: sid, UEIPv4: ueIPv4, StaticRuleIDs: action.StaticRuleIDs, DynamicRules: action.DynamicRules,
			})
		}
	}
}
