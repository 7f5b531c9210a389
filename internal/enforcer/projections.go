package enforcer

import (
	"context"

	"github.com/ashigaru9/pgw-sessiond/internal/usage"
)

// GetChargingCredit is the get_charging_credit read projection. A
// missing session or tracker returns 0.
func (e *Enforcer) GetChargingCredit(ctx context.Context, sid string, chargingKey uint32, bucket usage.Bucket) (uint64, error) {
	return exec(ctx, e, func() uint64 {
		sess, ok := e.sessions[sid]
		if !ok {
			return 0
		}
		return sess.GetChargingCredit(chargingKey, bucket)
	})
}

// GetMonitorCredit is the get_monitor_credit read projection. A
// missing session or tracker returns 0.
func (e *Enforcer) GetMonitorCredit(ctx context.Context, sid, monitoringKey string, bucket usage.Bucket) (uint64, error) {
	return exec(ctx, e, func() uint64 {
		sess, ok := e.sessions[sid]
		if !ok {
			return 0
		}
		return sess.GetMonitorCredit(monitoringKey, bucket)
	})
}
