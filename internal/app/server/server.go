package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"talentos/internal/domain/audit"
	"talentos/internal/domain/auth"
	"talentos/internal/domain/career"
	"talentos/internal/domain/evaluation"
	"talentos/internal/domain/notifications"
	"talentos/internal/domain/pdi"
	"talentos/internal/domain/reports"
	"talentos/internal/platform/config"
	cryptoutil "talentos/internal/platform/crypto"
	"talentos/internal/platform/db"
	"talentos/internal/platform/email"
	"talentos/internal/platform/jobs"
	"talentos/internal/platform/metrics"
	"talentos/internal/transport/http/api"
	audithandler "talentos/internal/transport/http/handlers/audit"
	authhandler "talentos/internal/transport/http/handlers/auth"
	careerhandler "talentos/internal/transport/http/handlers/career"
	evaluationshandler "talentos/internal/transport/http/handlers/evaluations"
	notificationshandler "talentos/internal/transport/http/handlers/notifications"
	pdihandler "talentos/internal/transport/http/handlers/pdi"
	reportshandler "talentos/internal/transport/http/handlers/reports"
	"talentos/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	cryptoSvc, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		log.Fatalf("encryption key invalid: %v", err)
	}

	authStore := auth.NewStore(pool)
	careerStore := career.NewStore(pool)
	evaluationStore := evaluation.NewStore(pool)
	pdiStore := pdi.NewStore(pool)

	careerSvc := career.NewService(careerStore)
	evaluationSvc := evaluation.NewService(evaluationStore)
	validator := career.NewValidator(careerStore, evaluationSvc)
	pdiSvc := pdi.NewService(pdiStore)
	reportsSvc := reports.NewService(reports.NewStore(pool), cryptoSvc, cfg.ReportsDir)
	notifySvc := notifications.New(notifications.NewStore(pool), email.New(cfg))
	auditSvc := audit.New(pool)
	collector := metrics.New()
	idemStore := middleware.NewIdempotencyStore(pool)

	jobRunner := jobs.New(pool, cfg, notifySvc)
	jobRunner.Start(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authStore, cfg.JWTSecret, cryptoSvc)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Post("/auth/refresh", authHandler.HandleRefresh)
		r.Post("/auth/request-reset", authHandler.HandleRequestReset)
		r.Post("/auth/reset", authHandler.HandleResetPassword)
		r.Post("/auth/mfa/setup", authHandler.HandleMFASetup)
		r.Post("/auth/mfa/enable", authHandler.HandleMFAEnable)
		r.Post("/auth/mfa/disable", authHandler.HandleMFADisable)

		careerhandler.NewHandler(careerSvc, validator, authStore, notifySvc, auditSvc, collector, idemStore).RegisterRoutes(r)
		evaluationshandler.NewHandler(evaluationSvc, authStore, notifySvc, auditSvc, collector).RegisterRoutes(r)
		pdihandler.NewHandler(pdiSvc, authStore, notifySvc, auditSvc).RegisterRoutes(r)
		reportshandler.NewHandler(reportsSvc, authStore, jobRunner).RegisterRoutes(r)
		notificationshandler.NewHandler(notifySvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc, authStore).RegisterRoutes(r)

		if cfg.MetricsEnabled {
			r.With(middleware.RequirePermission(auth.PermSystemAdmin, authStore)).Get("/admin/metrics", func(w http.ResponseWriter, r *http.Request) {
				api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
			})
		}
	})

	log.Printf("talentos server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, metricsWrapper(collector, router)); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

type metricsRecorder struct {
	http.ResponseWriter
	status int
}

func (m *metricsRecorder) WriteHeader(code int) {
	m.status = code
	m.ResponseWriter.WriteHeader(code)
}

func metricsWrapper(collector *metrics.Collector, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &metricsRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		collector.Record(recorder.status, time.Since(start))
	})
}
