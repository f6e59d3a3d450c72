package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gatelog/internal/domain/access"
	"gatelog/internal/domain/archive"
	"gatelog/internal/domain/members"
	"gatelog/internal/domain/presence"
	"gatelog/internal/domain/retention"
	"gatelog/internal/platform/clock"
	"gatelog/internal/platform/config"
	"gatelog/internal/platform/db"
	"gatelog/internal/platform/metrics"
	accesshandler "gatelog/internal/transport/http/handlers/access"
	authhandler "gatelog/internal/transport/http/handlers/auth"
	membershandler "gatelog/internal/transport/http/handlers/members"
	presencehandler "gatelog/internal/transport/http/handlers/presence"
	reportshandler "gatelog/internal/transport/http/handlers/reports"
	"gatelog/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	clk := clock.System()
	catalog := archive.NewCatalog(cfg.ReportsDir)
	pipeline := archive.NewPipeline(archive.NewPDFRenderer(), archive.NewFSStore(cfg.ReportsDir))

	accessLedger := access.NewService(access.NewStore(pool), clk, retention.New(cfg.RetentionDays, clk), pipeline, catalog, m)
	presenceLedger := presence.NewService(presence.NewStore(pool), clk, retention.New(cfg.RetentionDays, clk), pipeline, catalog, m)
	memberRegistry := members.NewService(members.NewStore(pool))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Auth(cfg.JWTSecret))

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

	if cfg.MetricsEnabled {
		router.Handle("/metrics", promhttp.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(memberRegistry, cfg.JWTSecret)
		r.Post("/auth/login", authHandler.HandleLogin)

		accesshandler.NewHandler(accessLedger, memberRegistry).RegisterRoutes(r)
		presencehandler.NewHandler(presenceLedger, memberRegistry).RegisterRoutes(r)
		membershandler.NewHandler(memberRegistry).RegisterRoutes(r)
		reportshandler.NewHandler(catalog).RegisterRoutes(r)
	})

	return &App{Config: cfg, DB: pool, Router: router}, nil
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.DB.Close()

	log.Printf("gatelog server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
