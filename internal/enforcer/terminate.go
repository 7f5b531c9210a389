package enforcer

import (
	"context"

	"github.com/ashigaru9/pgw-sessiond/internal/apperr"
)

// TerminateSubscriber emits a batched termination report with every
// tracker's residual delta, including any tracker currently REPORTING
// (termination preempts in-flight reports), and cancels any pending
// scheduled activations for sid. The session moves to
// PENDING_TERMINATION; it is only removed by CompleteTermination.
func (e *Enforcer) TerminateSubscriber(ctx context.Context, sid string) (SessionTerminateRequest, error) {
	out, err := exec(ctx, e, func() terminateResult {
		sess, ok := e.sessions[sid]
		if !ok {
			return terminateResult{err: apperr.ErrUnknownSubscriber}
		}
		report := sess.Terminate()
		e.dispatch.Cancel(context.Background(), sid)
		e.dataplane.DeactivateAllFlows(sid, func(success bool) {
			e.postActivateResult("deactivate_all_flows", sid, success)
		})
		return terminateResult{req: SessionTerminateRequest{
			SID: sid, SessionID: sess.ID,
			CreditUsages: report.CreditReports, MonitorUsages: report.MonitorReports,
		}}
	})
	if err != nil {
		return SessionTerminateRequest{}, err
	}
	return out.req, out.err
}

// terminateResult adapts TerminateSubscriber's (value, error) outcome
// to the single-return-value exec helper.
type terminateResult struct {
	req SessionTerminateRequest
	err error
}

// CompleteTermination removes sid's session iff sessionID matches and
// it is pending termination. An unknown sid, or a session not yet
// terminating, is a silent no-op (idempotent); naming a live session
// by the wrong id reports ErrSessionMismatch and leaves it untouched.
func (e *Enforcer) CompleteTermination(ctx context.Context, sid, sessionID string) error {
	res, err := exec(ctx, e, func() error {
		sess, ok := e.sessions[sid]
		if !ok {
			return nil
		}
		if sess.ID != sessionID {
			e.logger.Warn("complete_termination for wrong session id",
				"event_id", "TERMINATION_ID_MISMATCH", "sid", e.masker.SID(sid), "session_id", sessionID)
			return apperr.ErrSessionMismatch
		}
		if !sess.PendingTermination() {
			return nil
		}
		delete(e.sessions, sid)
		e.metrics.SetActiveSessions(len(e.sessions))
		e.unshadowSession(sid)
		return nil
	})
	if err != nil {
		return err
	}
	return res
}
