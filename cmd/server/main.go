package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"logvault/internal/logstore/handler"
	logmetrics "logvault/internal/logstore/metrics"
	"logvault/internal/logstore/service"
	"logvault/internal/logstore/store"
	"logvault/internal/logstore/workers/checkpoint"
	"logvault/internal/platform/config"
	"logvault/internal/platform/health"
	"logvault/internal/platform/kafka/producer"
	"logvault/internal/platform/logger"
	"logvault/internal/platform/tracer"
	"logvault/internal/usage"
	"logvault/internal/usage/reporter"
	usageworker "logvault/internal/usage/worker"
	"logvault/pkg/platform/circuit"
	"logvault/pkg/platform/middleware/metadata"
	request "logvault/pkg/platform/middleware/request"
)

// main wires dependencies, restores the saved image before serving, and
// saves it again on SIGINT/SIGTERM. Any persistence failure exits non-zero.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("logvault exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("logvault stopped")
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("initializing logvault",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"backend", cfg.Persistence.Backend,
		"default_capacity", cfg.LogStore.DefaultCapacity,
	)
	if cfg.AdminAPIToken == "" && cfg.IsProduction() {
		log.Warn("ADMIN_API_TOKEN is not set; clear and buffer-size routes are unguarded")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	healthHandler := health.New(cfg.Environment)
	trc := tracer.NewOTel()

	backend, err := openBackend(ctx, cfg, reg, healthHandler)
	if err != nil {
		return fmt.Errorf("open %s backend: %w", cfg.Persistence.Backend, err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Warn("failed to close persistence backend", "error", err)
		}
	}()

	logStore, err := store.New(cfg.LogStore.DefaultCapacity, store.WithMaxCapacity(cfg.LogStore.MaxCapacity))
	if err != nil {
		return fmt.Errorf("create log store: %w", err)
	}

	usageOpts := []usage.Option{
		usage.WithPeriod(cfg.Usage.Period),
		usage.WithLogger(log),
		usage.WithMetrics(usage.NewMetrics(reg)),
		usage.WithTracer(trc),
	}
	if cfg.Kafka.Brokers != "" {
		prod, err := producer.New(producer.Config{
			Brokers:         cfg.Kafka.Brokers,
			Acks:            cfg.Kafka.Acks,
			Retries:         cfg.Kafka.Retries,
			DeliveryTimeout: cfg.Kafka.DeliveryTimeout,
		}, log)
		if err != nil {
			return fmt.Errorf("create usage producer: %w", err)
		}
		defer prod.Close() //nolint:errcheck // flushes pending reports; nothing to do on failure
		healthHandler.RegisterCheck("kafka", prod.Health)
		breaker := circuit.New("usage-reporter", circuit.WithCooldown(cfg.Usage.PollInterval*10))
		usageOpts = append(usageOpts, usage.WithReporter(
			reporter.NewGuarded(reporter.NewKafka(prod, cfg.Usage.Topic, "logvault"), breaker, log),
		))
		log.Info("usage reporting enabled", "topic", cfg.Usage.Topic)
	}
	accountant, err := usage.New(storeCounters{store: logStore}, usage.SystemClock{}, usageOpts...)
	if err != nil {
		return fmt.Errorf("create usage accountant: %w", err)
	}

	svc := service.New(logStore, accountant, backend.Snapshotter,
		service.WithLogger(log),
		service.WithMetrics(logmetrics.New(reg)),
		service.WithTracer(trc),
		service.WithBackend(cfg.Persistence.Backend),
	)

	// Restore before the listener starts so no request observes an empty store.
	if _, err := svc.Restore(ctx); err != nil {
		return err
	}

	if cfg.Persistence.CheckpointInterval > 0 {
		healthHandler.RegisterFreshness("checkpoint", svc.LastCheckpoint, 3*cfg.Persistence.CheckpointInterval)
	}

	checkpointWorker, err := checkpoint.New(svc,
		checkpoint.WithInterval(cfg.Persistence.CheckpointInterval),
		checkpoint.WithLogger(log),
	)
	if err != nil {
		return err
	}
	pollWorker, err := usageworker.New(svc,
		usageworker.WithInterval(cfg.Usage.PollInterval),
		usageworker.WithLogger(log),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(cfg, log, reg, svc, healthHandler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error { return ignoreCanceled(checkpointWorker.Start(gctx)) })
	g.Go(func() error { return ignoreCanceled(pollWorker.Start(gctx)) })
	if backend.Background != nil {
		g.Go(func() error { return ignoreCanceled(backend.Background(gctx)) })
	}

	runErr := g.Wait()

	// Final save runs even when the server failed; entries accepted so far
	// must not be lost.
	saveCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := svc.Checkpoint(saveCtx); err != nil {
		return errors.Join(runErr, fmt.Errorf("final checkpoint: %w", err))
	}
	return runErr
}

func newRouter(cfg config.Server, log *slog.Logger, reg *prometheus.Registry, svc *service.Service, healthHandler *health.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(request.Recovery(log))
	r.Use(request.RequestID)
	r.Use(metadata.NewMiddleware(metadata.Config{TrustedProxies: cfg.TrustedProxies}).Handler)
	r.Use(request.RequestTime)
	r.Use(request.Logger(log))
	r.Use(request.LatencyMiddleware(request.NewMetrics(reg), routePattern))
	r.Use(request.ContentTypeJSON)

	healthHandler.Register(r)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	r.Group(func(r chi.Router) {
		r.Use(request.Timeout(30 * time.Second))
		handler.New(svc, log, cfg.AdminAPIToken).Register(r)
	})
	return r
}

// routePattern labels latency by the matched chi route.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
