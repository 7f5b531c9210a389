package enforcer

import "context"

// InitChargingReauth marks the addressed tracker(s) REAUTH_REQUIRED.
// SINGLE_SERVICE looks up one tracker by (sid, charging_key);
// ENTIRE_SESSION applies to every credit tracker owned by the
// session.
func (e *Enforcer) InitChargingReauth(ctx context.Context, req ChargingReAuthRequest) (ChargingReAuthAnswer, error) {
	return exec(ctx, e, func() ChargingReAuthAnswer {
		sess, ok := e.sessions[req.SID]
		if !ok {
			return ChargingReAuthAnswer{Result: SessionNotFound}
		}

		if req.Type == EntireSession {
			for _, tr := range sess.CreditTrackers() {
				tr.MarkReauthRequired()
			}
			return ChargingReAuthAnswer{Result: UpdateInitiated}
		}

		if !req.HasChargingKey {
			return ChargingReAuthAnswer{Result: UpdateNotNeeded}
		}
		tr, ok := sess.CreditTracker(req.ChargingKey)
		if !ok {
			return ChargingReAuthAnswer{Result: SessionNotFound}
		}
		tr.MarkReauthRequired()
		return ChargingReAuthAnswer{Result: UpdateInitiated}
	})
}
