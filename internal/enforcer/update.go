package enforcer

import (
	"context"

	"github.com/ashigaru9/pgw-sessiond/internal/session"
)

// UpdateSessionCredit folds a peer grant response into the matching
// trackers, grouped by sid, and executes any unblock actions a grant
// produces. Grants naming an unknown sid are dropped with a warning:
// there is no session to lazily create one into, unlike a grant
// targeting a known session's unknown tracker.
func (e *Enforcer) UpdateSessionCredit(ctx context.Context, resp UpdateSessionResponse) error {
	_, err := exec(ctx, e, func() error {
		bySID := make(map[string]struct {
			credits  []session.CreditGrant
			monitors []session.MonitorGrant
		})
		for _, g := range resp.CreditGrants {
			entry := bySID[g.SID]
			entry.credits = append(entry.credits, session.CreditGrant{
				ChargingKey: g.ChargingKey, RX: g.RX, TX: g.TX, Total: g.Total, IsFinal: g.IsFinal, Success: g.Success,
			})
			bySID[g.SID] = entry
		}
		for _, g := range resp.MonitorGrants {
			entry := bySID[g.SID]
			entry.monitors = append(entry.monitors, session.MonitorGrant{
				MonitoringKey: g.MonitoringKey, Level: g.Level, RX: g.RX, TX: g.TX, Total: g.Total, Success: g.Success,
			})
			bySID[g.SID] = entry
		}

		for sid, entry := range bySID {
			sess, ok := e.sessions[sid]
			if !ok {
				e.logger.Warn("grant for unknown subscriber dropped",
					"event_id", "UNKNOWN_SID_GRANT", "sid", e.masker.SID(sid))
				continue
			}
			actions := sess.ApplyUpdates(entry.credits, entry.monitors)
			e.executeActions(sid, sess.Config.UEIPv4, actions)
		}
		return nil
	})
	return err
}
