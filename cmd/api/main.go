package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/seongmin2223/resumepro/internal/application"
	appchat "github.com/seongmin2223/resumepro/internal/application/chat"
	appresumes "github.com/seongmin2223/resumepro/internal/application/resumes"
	"github.com/seongmin2223/resumepro/internal/config"
	"github.com/seongmin2223/resumepro/internal/domain/resumes"
	"github.com/seongmin2223/resumepro/internal/infra/ai/openai"
	memoryp "github.com/seongmin2223/resumepro/internal/infra/db/memory"
	mysqlp "github.com/seongmin2223/resumepro/internal/infra/db/mysql"
	postgresp "github.com/seongmin2223/resumepro/internal/infra/db/postgres"
	"github.com/seongmin2223/resumepro/internal/infra/httpserver"
	mailp "github.com/seongmin2223/resumepro/internal/infra/mail"
	"github.com/seongmin2223/resumepro/internal/infra/report"
	minioStore "github.com/seongmin2223/resumepro/internal/infra/storage"
	"github.com/seongmin2223/resumepro/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// history store, driver-selected
	var repo resumes.Repository
	var healthDB *sql.DB
	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			logger.Fatal("postgres connect error", zap.Error(err))
		}
		defer db.Close()
		repo = postgresp.NewHistoryRepository(db)
		healthDB = db
	case "memory":
		repo = memoryp.NewHistoryRepository()
	default:
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			logger.Fatal("mysql connect error", zap.Error(err))
		}
		defer db.Close()
		repo = mysqlp.NewHistoryRepository(db)
		healthDB = db
	}

	gateway := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)

	// the renderer refuses to start without a loadable CJK font
	renderer, err := report.NewRenderer(cfg.Report.FontPath, cfg.Report.Title)
	if err != nil {
		logger.Fatal("report renderer init error", zap.Error(err))
	}

	var archive resumes.ArchiveStore
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			logger.Fatal("minio init error", zap.Error(err))
		}
		archive = store
	}

	svc := &appresumes.Service{
		Repo:     repo,
		AI:       gateway,
		Renderer: renderer,
		Archive:  archive,
		Clock:    application.SystemClock{},
		Log:      logger,
	}
	if cfg.SMTP.Host != "" {
		svc.Mailer = mailp.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	}

	chatSvc := &appchat.Service{
		Repo: repo,
		AI:   gateway,
		Log:  logger,
	}

	mux := chi.NewRouter()
	mux.Use(middleware.Logging(logger))
	mux.Use(middleware.MetricsMiddleware)
	if len(cfg.CORS.AllowedOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}
	if len(cfg.Auth.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	}
	mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Burst, cfg.RateLimit.RequestsPerSecond))

	checkers := map[string]middleware.HealthChecker{}
	if healthDB != nil {
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: healthDB}
	}
	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.New(svc, chatSvc, logger))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
}
