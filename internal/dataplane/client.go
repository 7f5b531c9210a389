package dataplane

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/ashigaru9/pgw-sessiond/internal/apperr"
	"github.com/ashigaru9/pgw-sessiond/internal/config"
	"github.com/ashigaru9/pgw-sessiond/internal/logging"
	"github.com/ashigaru9/pgw-sessiond/internal/metrics"
	"github.com/ashigaru9/pgw-sessiond/internal/ruledb"
)

// RPCClient is the real Client backend: it posts activate/deactivate
// requests to the data-plane peer over HTTP and reports success or
// failure through a circuit breaker.
type RPCClient struct {
	httpClient *resty.Client
	cb         *gobreaker.CircuitBreaker
	baseURL    string

	mu      sync.Mutex
	queues  map[string]chan func()
	wg      sync.WaitGroup
	closing bool
}

// NewRPCClient builds an RPCClient from process configuration. mx may
// be nil.
func NewRPCClient(cfg *config.Config, mx *metrics.Metrics) *RPCClient {
	httpClient := resty.New().SetTimeout(config.DataPlaneRequestTimeout)

	cbSettings := gobreaker.Settings{
		Name:        config.CBName,
		MaxRequests: config.CBMaxRequests,
		Interval:    config.CBInterval,
		Timeout:     config.CBTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.CBFailureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			switch to {
			case gobreaker.StateOpen:
				mx.SetCircuitState(metrics.CircuitOpen)
				slog.Warn("circuit breaker opened", "event_id", "CB_OPEN", "cb_name", name)
			case gobreaker.StateHalfOpen:
				mx.SetCircuitState(metrics.CircuitHalfOpen)
				slog.Info("circuit breaker half-open", "event_id", "CB_HALF_OPEN", "cb_name", name)
			case gobreaker.StateClosed:
				mx.SetCircuitState(metrics.CircuitClosed)
				slog.Info("circuit breaker closed", "event_id", "CB_CLOSE", "cb_name", name)
			}
		},
	}

	return &RPCClient{
		httpClient: httpClient,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		baseURL:    strings.TrimRight(cfg.DataPlaneAddr, "/"),
		queues:     make(map[string]chan func()),
	}
}

// ActivateFlows implements Client.
func (c *RPCClient) ActivateFlows(sid, ueIPv4 string, staticRuleIDs []string, dynamicRules []ruledb.Rule, cb Callback) {
	c.submit(sid, func() {
		body := activateFlowsRequest{
			SID: sid, IPAddr: ueIPv4, RuleIDs: staticRuleIDs, DynamicRules: dynamicRuleBodies(dynamicRules),
		}
		cb(c.post("activate_flows", sid, body))
	})
}

// DeactivateFlows implements Client.
func (c *RPCClient) DeactivateFlows(sid string, staticRuleIDs []string, dynamicRules []ruledb.Rule, cb Callback) {
	c.submit(sid, func() {
		body := deactivateFlowsRequest{
			SID: sid, RuleIDs: staticRuleIDs, DynamicRules: dynamicRuleBodies(dynamicRules),
		}
		cb(c.post("deactivate_flows", sid, body))
	})
}

// DeactivateAllFlows implements Client.
func (c *RPCClient) DeactivateAllFlows(sid string, cb Callback) {
	c.submit(sid, func() {
		cb(c.post("deactivate_all_flows", sid, deactivateAllFlowsRequest{SID: sid}))
	})
}

// submit enqueues op on sid's private worker, starting one lazily.
// One worker per sid guarantees submission order is preserved for
// that sid without blocking other sids.
func (c *RPCClient) submit(sid string, op func()) {
	c.mu.Lock()
	if c.closing {
		c.mu.Unlock()
		return
	}
	q, ok := c.queues[sid]
	if !ok {
		q = make(chan func(), 64)
		c.queues[sid] = q
		c.wg.Add(1)
		go c.drain(q)
	}
	c.mu.Unlock()
	q <- op
}

func (c *RPCClient) drain(q chan func()) {
	defer c.wg.Done()
	for op := range q {
		op()
	}
}

// post executes body against the op's endpoint through the circuit
// breaker, returning true only on a 2xx response. Transport and
// breaker errors are wrapped in apperr.DataPlaneError for logging; a
// non-2xx reply is logged as rejected without one. The caller only
// sees false.
func (c *RPCClient) post(op, sid string, body any) bool {
	ctx, cancel := context.WithTimeout(context.Background(), config.DataPlaneRequestTimeout)
	defer cancel()

	start := time.Now()
	result, err := c.cb.Execute(func() (any, error) {
		resp, err := c.httpClient.R().SetContext(ctx).SetBody(body).Post(c.baseURL + "/" + op)
		if err != nil {
			return false, err
		}
		return resp.IsSuccess(), nil
	})

	latencyMs := time.Since(start).Milliseconds()
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = ErrCircuitOpen
		}
		slog.Warn("dataplane rpc failed",
			logging.WithEventID("DATAPLANE_RPC_ERR"), slog.String("op", op),
			logging.WithError(apperr.NewDataPlaneError(op, sid, err)),
			logging.WithLatency(latencyMs))
		return false
	}
	ok, _ := result.(bool)
	if !ok {
		slog.Warn("dataplane rpc rejected",
			logging.WithEventID("DATAPLANE_RPC_REJECTED"), slog.String("op", op),
			logging.WithLatency(latencyMs))
	}
	return ok
}

func dynamicRuleBodies(rules []ruledb.Rule) []dynamicRuleBody {
	out := make([]dynamicRuleBody, 0, len(rules))
	for _, r := range rules {
		out = append(out, dynamicRuleBody{
			ID: r.ID, RatingGroup: r.RatingGroup, MonitoringKey: r.MonitoringKey,
		})
	}
	return out
}

// Close stops accepting new operations and waits for every per-sid
// worker to drain its queue.
func (c *RPCClient) Close() {
	c.mu.Lock()
	if c.closing {
		c.mu.Unlock()
		return
	}
	c.closing = true
	for _, q := range c.queues {
		close(q)
	}
	c.mu.Unlock()
	c.wg.Wait()
}
