package enforcer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ashigaru9/pgw-sessiond/internal/session"
)

// InitSessionCredit creates the Session for sid (replacing any
// existing one), populates its trackers, and partitions installed
// rules into immediate and scheduled activation batches. Immediate
// rules are activated via the data-plane client; activation failures
// are logged asynchronously and do not prevent the session from being
// created. A failed initial activation is not retried: CollectUpdates
// only derives final-unit deactivations and does not re-issue it.
// A caller that does not name a session id gets a generated
// one; it is visible again in the termination report.
func (e *Enforcer) InitSessionCredit(ctx context.Context, sid, sessionID string, cfg session.Config, req session.InitRequest) error {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	_, err := exec(ctx, e, func() error {
		sess := session.New(sid, sessionID, cfg, e.rules)
		actions := sess.Init(time.Now(), req)
		e.sessions[sid] = sess
		e.metrics.SetActiveSessions(len(e.sessions))
		e.shadowSession(sid, SessionRecord{SID: sid, SessionID: sessionID, UEIPv4: cfg.UEIPv4})
		e.executeActions(sid, cfg.UEIPv4, actions)
		return nil
	})
	return err
}
