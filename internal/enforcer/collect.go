package enforcer

import "context"

// CollectUpdates walks every session, drains eligible credit and
// monitor reports, executes every action the drain produced (activate/
// deactivate via the data-plane client, schedule via the dispatcher),
// and returns the batched request.
func (e *Enforcer) CollectUpdates(ctx context.Context) (UpdateSessionRequest, error) {
	return exec(ctx, e, func() UpdateSessionRequest {
		var req UpdateSessionRequest
		for sid, sess := range e.sessions {
			creditReports, monitorReports, actions := sess.CollectReports()
			req.CreditUpdates = append(req.CreditUpdates, creditReports...)
			req.MonitorUpdates = append(req.MonitorUpdates, monitorReports...)
			e.executeActions(sid, sess.Config.UEIPv4, actions)
		}
		e.metrics.AddReports("charging", len(req.CreditUpdates))
		e.metrics.AddReports("monitoring", len(req.MonitorUpdates))
		return req
	})
}
