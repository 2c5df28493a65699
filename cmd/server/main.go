package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pratico/internal/audit"
	"pratico/internal/emoluments"
	emolumentsHandler "pratico/internal/emoluments/handler"
	emolumentsMetrics "pratico/internal/emoluments/metrics"
	"pratico/internal/gateway/asaas"
	"pratico/internal/gateway/contract"
	"pratico/internal/gateway/creci"
	"pratico/internal/gateway/docai"
	"pratico/internal/gateway/evolution"
	"pratico/internal/gateway/media"
	jwttoken "pratico/internal/jwt_token"
	onboardingHandler "pratico/internal/onboarding/handler"
	"pratico/internal/onboarding/locks"
	onboardingMetrics "pratico/internal/onboarding/metrics"
	"pratico/internal/onboarding/models"
	"pratico/internal/onboarding/queue"
	"pratico/internal/onboarding/scheduler"
	"pratico/internal/onboarding/service"
	"pratico/internal/onboarding/store"
	"pratico/internal/platform/config"
	"pratico/internal/platform/httpserver"
	"pratico/internal/platform/logger"
	"pratico/internal/platform/metrics"
	"pratico/internal/platform/middleware"
	"pratico/internal/platform/postgres"
	platformRedis "pratico/internal/platform/redis"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage. Without a database URL everything runs on memory stores,
	// which is how local development and tests operate.
	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to open postgres", "error", err)
		os.Exit(1)
	}
	var registrations store.Store
	var auditStore audit.Store
	var emolumentStore emoluments.Store
	if db != nil {
		defer db.Close()
		registrations = store.NewPostgres(db)
		auditStore = audit.NewPostgresStore(db)
		emolumentStore = emoluments.NewPostgresStore(db)
		log.Info("using postgres storage")
	} else {
		registrations = store.NewMemory()
		auditStore = audit.NewMemoryStore()
		emolumentStore = emoluments.NewMemoryStore()
		log.Warn("DATABASE_URL not set, using in-memory storage")
	}

	redisClient, err := platformRedis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	var locker locks.Locker
	var deduper onboardingHandler.Deduper
	if redisClient != nil {
		defer redisClient.Close()
		locker = locks.NewRedis(redisClient.Client, 30*time.Second)
		deduper = onboardingHandler.NewRedisDeduper(redisClient.Client, 24*time.Hour)
		log.Info("using redis locks")
	} else {
		locker = locks.NewMemory()
		log.Warn("REDIS_URL not set, using in-process locks")
	}

	// Audit pipeline: channel publisher, persistence worker, optional
	// Kafka mirror.
	auditPublisher := audit.NewPublisher(256, log)
	workerOpts := []audit.WorkerOption{}
	if len(cfg.Kafka.Seeds) > 0 {
		sink, err := audit.NewKafkaSink(ctx, cfg.Kafka.Seeds, cfg.Kafka.Topic)
		if err != nil {
			log.Error("failed to start kafka audit sink", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		workerOpts = append(workerOpts, audit.WithSink(sink))
		log.Info("audit events mirrored to kafka", "topic", cfg.Kafka.Topic)
	}
	auditWorker := audit.NewWorker(auditPublisher.Inbox(), auditStore, log, workerOpts...)
	auditWorker.Run(ctx)

	// Onboarding core.
	onbMetrics := onboardingMetrics.New()
	messenger := evolution.NewClient(cfg.Evolution)
	svcDeps := service.Deps{
		Store:     registrations,
		Locker:    locker,
		Messenger: messenger,
		Fetcher:   media.NewFetcher(30 * time.Second),
		Extractor: docai.NewExtractor(cfg.DocAI),
		Validator: creci.NewValidator(cfg.Creci),
		Payments:  asaas.NewProvisioner(cfg.Asaas),
		Contracts: contract.NewRenderer(cfg.StartURL),
	}
	var onboarding *service.Service
	batchTimer := scheduler.NewTimer(cfg.CollectionTimeout, func(ctx context.Context, registrationID string) {
		onboarding.RunBatch(ctx, registrationID)
	}, log)
	defer batchTimer.Close()
	svcDeps.Scheduler = batchTimer
	onboarding = service.New(svcDeps,
		service.WithLogger(log),
		service.WithMetrics(onbMetrics),
		service.WithAuditPublisher(auditPublisher),
	)

	inbound := queue.NewInbound(func(ctx context.Context, phone string, event models.InboundEvent) {
		if err := onboarding.OnInboundEvent(ctx, phone, event); err != nil {
			log.Warn("inbound event not applied", "phone", phone, "error", err)
		}
	}, 4, 512, log)
	for range inbound.Workers() {
		go func() { _ = inbound.Run(ctx) }()
	}

	// Emoluments.
	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer)
	emolumentService := emoluments.NewService(emolumentStore,
		emoluments.WithLogger(log),
		emoluments.WithMetrics(emolumentsMetrics.New()),
	)

	// HTTP surface.
	httpMetrics := metrics.New()
	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Latency(httpMetrics))

	onboardingHandler.New(onboarding, inbound, evolution.NewParser(), deduper, cfg.WebhookSecret, log).Register(router)
	emolumentsHandler.New(emolumentService, jwtService, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, router)
	go func() {
		log.Info("starting pratico server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	auditWorker.Wait()
}
