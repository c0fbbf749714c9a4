package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/grmcai/grmc-api/internal/application"
	appanalysis "github.com/grmcai/grmc-api/internal/application/analysis"
	appreports "github.com/grmcai/grmc-api/internal/application/reports"
	"github.com/grmcai/grmc-api/internal/config"
	"github.com/grmcai/grmc-api/internal/domain/contracts"
	"github.com/grmcai/grmc-api/internal/domain/faults"
	"github.com/grmcai/grmc-api/internal/domain/history"
	domreports "github.com/grmcai/grmc-api/internal/domain/reports"
	"github.com/grmcai/grmc-api/internal/infra/ai/offline"
	aiopenai "github.com/grmcai/grmc-api/internal/infra/ai/openai"
	"github.com/grmcai/grmc-api/internal/infra/db/mysql"
	"github.com/grmcai/grmc-api/internal/infra/db/postgres"
	"github.com/grmcai/grmc-api/internal/infra/extract"
	"github.com/grmcai/grmc-api/internal/infra/httpserver"
	"github.com/grmcai/grmc-api/internal/infra/localstore"
	"github.com/grmcai/grmc-api/internal/infra/report"
	minioStore "github.com/grmcai/grmc-api/internal/infra/storage"
	"github.com/grmcai/grmc-api/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// history backend + optional fault audit log
	store, faultRepo, checkers, closeDB, err := buildHistory(ctx, cfg)
	if err != nil {
		log.Fatalf("history init error: %v", err)
	}
	defer closeDB()

	// analyzer: model-backed when a key is configured, offline heuristics
	// otherwise
	var analyzer contracts.Analyzer
	if cfg.AI.APIKey != "" {
		analyzer = aiopenai.NewClient(cfg.AI.APIKey, cfg.AI.Model)
	} else {
		log.Printf("no AI api key configured, using offline analyzer")
		analyzer = offline.New()
	}

	// report artifact storage is optional
	var artifacts domreports.ArtifactStore
	if cfg.Minio.Endpoint != "" {
		s, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		artifacts = s
	}

	analysisSvc := &appanalysis.Service{
		Analyzer: analyzer,
		History:  store,
		Faults:   faultRepo,
		Clock:    application.SystemClock{},
	}
	reportsSvc := &appreports.Service{
		Artifacts: artifacts,
		Deliverer: report.NewSender(cfg.Reports.DeliveryURL),
		Clock:     application.SystemClock{},
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(100, 10))
	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(analysisSvc, reportsSvc, extract.New()))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// buildHistory wires the configured history backend. SQL drivers also get a
// fault audit repo and a database health check; the file backend gets
// neither.
func buildHistory(ctx context.Context, cfg *config.Config) (history.Store, faults.Repository, map[string]middleware.HealthChecker, func(), error) {
	checkers := map[string]middleware.HealthChecker{}
	noop := func() {}

	switch cfg.History.Driver {
	case "file":
		return localstore.NewFile(cfg.History.Path), nil, checkers, noop, nil

	case "mysql":
		db, err := mysql.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, nil, noop, err
		}
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
		return mysql.NewHistoryRepository(db), mysql.NewFaultRepository(db), checkers, func() { db.Close() }, nil

	case "postgres":
		db, err := postgres.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, nil, noop, err
		}
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
		return postgres.NewHistoryRepository(db), postgres.NewFaultRepository(db), checkers, func() { db.Close() }, nil

	default:
		return nil, nil, nil, noop, fmt.Errorf("unknown history driver: %s", cfg.History.Driver)
	}
}
