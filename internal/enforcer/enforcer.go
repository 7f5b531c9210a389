package enforcer

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/ashigaru9/pgw-sessiond/internal/dataplane"
	"github.com/ashigaru9/pgw-sessiond/internal/logging"
	"github.com/ashigaru9/pgw-sessiond/internal/metrics"
	"github.com/ashigaru9/pgw-sessiond/internal/objectstore"
	"github.com/ashigaru9/pgw-sessiond/internal/ruledb"
	"github.com/ashigaru9/pgw-sessiond/internal/scheduler"
	"github.com/ashigaru9/pgw-sessiond/internal/session"
)

// SessionRecord is the durable shadow of a live session kept in the
// object-store collaborator when persistence is enabled. It is written
// outside the enforcer loop and is eventually consistent with it.
type SessionRecord struct {
	SID       string `json:"sid"`
	SessionID string `json:"session_id"`
	UEIPv4    string `json:"ue_ipv4"`
}

// SessionRegistry is the object-store collaborator the enforcer
// shadows its session map into. May be nil when persistence is off.
type SessionRegistry = objectstore.ObjectMap[SessionRecord]

// Enforcer is the local enforcement core. All mutation of the session map
// and of sessions themselves happens on the goroutine running Run;
// public methods post a closure onto cmdCh and wait for it to execute,
// so the SID -> Session map needs no locking.
type Enforcer struct {
	rules     *ruledb.RuleStore
	dataplane dataplane.Client
	dispatch  *scheduler.Dispatcher
	logger    *slog.Logger
	masker    *logging.Masker
	metrics   *metrics.Metrics
	registry  SessionRegistry

	cmdCh chan func()

	sessions map[string]*session.Session

	droppedRecords atomic.Uint64
}

// New returns an Enforcer. Call Run in its own goroutine before
// issuing any operation. masker, mx, and registry may all be nil.
func New(rules *ruledb.RuleStore, dp dataplane.Client, dispatch *scheduler.Dispatcher, logger *slog.Logger, masker *logging.Masker, mx *metrics.Metrics, registry SessionRegistry) *Enforcer {
	if logger == nil {
		logger = slog.Default()
	}
	if masker == nil {
		masker = logging.NewMasker(false)
	}
	return &Enforcer{
		rules:     rules,
		dataplane: dp,
		dispatch:  dispatch,
		logger:    logger,
		masker:    masker,
		metrics:   mx,
		registry:  registry,
		cmdCh:     make(chan func(), 256),
		sessions:  make(map[string]*session.Session),
	}
}

// Run drives the enforcer's command loop until ctx is canceled. Every
// mutation of enforcer state happens here, never from a caller's own
// goroutine or a data-plane callback.
func (e *Enforcer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-e.cmdCh:
			cmd()
		}
	}
}

// exec runs fn on the enforcer loop and returns its result, blocking
// the caller (not the loop) until it completes or ctx is canceled.
func exec[T any](ctx context.Context, e *Enforcer, fn func() T) (T, error) {
	var zero T
	resultCh := make(chan T, 1)
	cmd := func() { resultCh <- fn() }
	select {
	case e.cmdCh <- cmd:
	case <-ctx.Done():
		return zero, ctx.Err()
	}
	select {
	case r := <-resultCh:
		return r, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// DroppedRecords returns the running count of usage records dropped
// for an unknown sid or rule.
func (e *Enforcer) DroppedRecords() uint64 { return e.droppedRecords.Load() }

// postActivateResult is the trampoline data-plane callbacks use to
// report an async result back onto the enforcer loop for logging. It
// never mutates tracker state, and a failed operation is only counted
// and logged: nothing re-issues it.
func (e *Enforcer) postActivateResult(op, sid string, success bool) {
	e.metrics.ObserveDataPlaneOp(op, success)
	select {
	case e.cmdCh <- func() {
		if !success {
			e.logger.Warn("dataplane operation failed",
				"event_id", "DATAPLANE_OP_FAILED", "op", op, "sid", e.masker.SID(sid))
		}
	}:
	default:
		// Loop is backed up or stopped; the failure is still visible in
		// the RPC client's own logging, so drop silently here.
	}
}

// shadowSession writes sid's record to the session registry from its
// own goroutine, so the store's latency never stalls the loop. Errors
// are logged; the registry is a shadow, not the source of truth.
func (e *Enforcer) shadowSession(sid string, rec SessionRecord) {
	if e.registry == nil {
		return
	}
	go func() {
		if _, err := e.registry.Set(context.Background(), sid, rec); err != nil {
			e.logger.Warn("session registry write failed",
				"event_id", "REGISTRY_SET_ERR", "sid", sid, "error", err.Error())
		}
	}()
}

// unshadowSession removes sid's record from the session registry.
func (e *Enforcer) unshadowSession(sid string) {
	if e.registry == nil {
		return
	}
	go func() {
		if _, err := e.registry.Delete(context.Background(), sid); err != nil {
			e.logger.Warn("session registry delete failed",
				"event_id", "REGISTRY_DEL_ERR", "sid", sid, "error", err.Error())
		}
	}()
}
