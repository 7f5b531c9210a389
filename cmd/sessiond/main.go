// Package main is the entry point of pgw-sessiond, the per-gateway
// session enforcement daemon.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ashigaru9/pgw-sessiond/internal/config"
	"github.com/ashigaru9/pgw-sessiond/internal/dataplane"
	"github.com/ashigaru9/pgw-sessiond/internal/enforcer"
	"github.com/ashigaru9/pgw-sessiond/internal/logging"
	"github.com/ashigaru9/pgw-sessiond/internal/metrics"
	"github.com/ashigaru9/pgw-sessiond/internal/objectstore"
	"github.com/ashigaru9/pgw-sessiond/internal/ruledb"
	"github.com/ashigaru9/pgw-sessiond/internal/scheduler"
)

func main() {
	// 1. Load configuration from the environment.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. Logger: JSON, INFO and above, tagged with an instance id so
	// log lines from multiple gateway instances stay separable.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With("app", "sessiond", "instance_id", uuid.NewString())
	slog.SetDefault(logger)

	slog.Info("sessiond starting",
		"dataplane_addr", cfg.DataPlaneAddr,
		"metrics_addr", cfg.MetricsAddr,
	)

	// 3. Metrics.
	mx := metrics.New()

	// 4. Session registry: Redis-backed when persistence is enabled,
	// in-process otherwise.
	var registry enforcer.SessionRegistry
	if cfg.PersistSessions {
		redisClient, err := objectstore.NewRedisClient(cfg)
		if err != nil {
			slog.Error("redis connection failed",
				"event_id", "REDIS_CONN_ERR", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		registry = objectstore.NewRedisMap(redisClient, "sessiond:sessions",
			sessionRecordSerializer, sessionRecordDeserializer)
		slog.Info("session registry connected", "addr", cfg.RedisAddr())
	} else {
		registry = objectstore.NewMemoryMap(sessionRecordSerializer, sessionRecordDeserializer)
	}

	// 5. Static rule store, optionally seeded from a rules file.
	rules := ruledb.NewRuleStore()
	if cfg.RulesFile != "" {
		n, err := loadRules(rules, cfg.RulesFile)
		if err != nil {
			slog.Error("failed to load rules file",
				"event_id", "RULES_LOAD_ERR", "path", cfg.RulesFile, "error", err)
			os.Exit(1)
		}
		slog.Info("static rules loaded", "path", cfg.RulesFile, "count", n)
	}

	// 6. Data-plane client.
	dpClient := dataplane.NewRPCClient(cfg, mx)
	defer dpClient.Close()

	// 7. Timed-action dispatcher, firing scheduled activations into
	// the data-plane client.
	dispatch := scheduler.New(func(b scheduler.Batch) {
		dpClient.ActivateFlows(b.SID, b.UEIPv4, b.StaticRuleIDs, b.DynamicRules, func(success bool) {
			if !success {
				slog.Warn("scheduled activation failed",
					"event_id", "SCHEDULED_ACTIVATE_FAILED", "sid", b.SID)
			}
		})
	})

	// 8. Enforcer.
	masker := logging.NewMasker(cfg.LogMaskSID)
	enf := enforcer.New(rules, dpClient, dispatch, logger, masker, mx, registry)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dispatch.Run(ctx)
	go enf.Run(ctx)

	// 9. Metrics endpoint.
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server error", "error", err)
		}
	}()

	// 10. Wait for a signal, then shut down gracefully.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigCh
	slog.Info("signal received, shutting down", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("metrics server shutdown error", "error", err)
	}
	cancel()

	slog.Info("sessiond stopped")
}

func sessionRecordSerializer(rec enforcer.SessionRecord) (string, error) {
	b, err := json.Marshal(rec)
	return string(b), err
}

func sessionRecordDeserializer(s string) (enforcer.SessionRecord, error) {
	var rec enforcer.SessionRecord
	err := json.Unmarshal([]byte(s), &rec)
	return rec, err
}

// ruleSpec is one entry of the static rules file.
type ruleSpec struct {
	ID            string `json:"id"`
	RatingGroup   uint32 `json:"rating_group"`
	MonitoringKey string `json:"monitoring_key"`
}

// loadRules reads a JSON array of rule specs and inserts them into
// the store, returning how many were loaded.
func loadRules(store *ruledb.RuleStore, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var specs []ruleSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return 0, err
	}
	for _, s := range specs {
		store.InsertRule(ruledb.NewRule(s.ID, s.RatingGroup, s.MonitoringKey, time.Time{}))
	}
	return len(specs), nil
}
