package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/agung037/cv-processor/internal/application"
	appadmin "github.com/agung037/cv-processor/internal/application/admin"
	appauth "github.com/agung037/cv-processor/internal/application/auth"
	appcv "github.com/agung037/cv-processor/internal/application/cv"
	apphistory "github.com/agung037/cv-processor/internal/application/history"
	"github.com/agung037/cv-processor/internal/config"
	"github.com/agung037/cv-processor/internal/domain/cv"
	"github.com/agung037/cv-processor/internal/domain/history"
	"github.com/agung037/cv-processor/internal/domain/users"
	"github.com/agung037/cv-processor/internal/infra/ai/openai"
	mysqlp "github.com/agung037/cv-processor/internal/infra/db/mysql"
	pgp "github.com/agung037/cv-processor/internal/infra/db/postgres"
	"github.com/agung037/cv-processor/internal/infra/extractor"
	"github.com/agung037/cv-processor/internal/infra/httpserver"
	"github.com/agung037/cv-processor/internal/infra/render"
	"github.com/agung037/cv-processor/internal/infra/security"
	"github.com/agung037/cv-processor/internal/infra/storage"
	"github.com/agung037/cv-processor/internal/logger"
	"github.com/agung037/cv-processor/internal/middleware"
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
		zap.NewExample().Fatal("config load error", zap.Error(err))
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		zap.NewExample().Fatal("logger init error", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	// connect database + repos
	db, userRepo, historyRepo, err := openDatabase(ctx, cfg)
	if err != nil {
		log.Fatal("database init error", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close()

	// upload dir
	uploads, err := storage.NewUploadDir(cfg.Upload.Dir)
	if err != nil {
		log.Fatal("upload dir init error", zap.String("dir", cfg.Upload.Dir), zap.Error(err))
	}

	// optional minio archive
	var archive cv.Archive
	if cfg.Minio.Enabled {
		store, err := storage.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.Prefix,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatal("minio init error", zap.Error(err))
		}
		archive = store
	}

	if cfg.LLM.APIKey == "" {
		log.Warn("LLM API key is empty, every analysis will return the fallback document")
	}
	advisor := openai.NewClient(openai.Options{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}, log.Named("llm"))

	metrics := middleware.NewMetrics()
	clock := application.SystemClock{}

	// init services
	authSvc := &appauth.Service{
		Users:  userRepo,
		Tokens: security.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Clock:  clock,
		Logger: log.Named("auth"),
	}
	if a := cfg.Auth.BootstrapAdmin; a.Username != "" {
		created, err := authSvc.EnsureAdmin(ctx, a.Username, a.Email, a.Password)
		if err != nil {
			log.Fatal("bootstrap admin error", zap.Error(err))
		}
		if !created {
			log.Debug("bootstrap admin already present", zap.String("username", a.Username))
		}
	}

	services := httpserver.Services{
		Auth:  authSvc,
		Admin: &appadmin.Service{Users: userRepo, Logger: log.Named("admin")},
		CV: &appcv.Service{
			Store:         uploads,
			Extractor:     extractor.New(log.Named("extractor")),
			Advisor:       advisor,
			History:       historyRepo,
			Archive:       archive,
			Observer:      metrics,
			Clock:         clock,
			Logger:        log.Named("cv"),
			RetainUploads: cfg.RetainUploads(),
		},
		History: &apphistory.Service{Repo: historyRepo, Renderer: render.New()},
	}

	// init router
	handler := httpserver.NewRouter(services, httpserver.Options{
		Logger:  log.Named("http"),
		Metrics: metrics,
		HealthCheckers: map[string]middleware.HealthChecker{
			"database": &middleware.DatabaseHealthChecker{DB: db},
			"uploads":  middleware.DirHealthChecker{Path: cfg.Upload.Dir},
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
		SecureCookies:  cfg.Server.SecureCookies,
		MaxUploadBytes: cfg.Upload.MaxBytes,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		// LLM completions can take close to a minute
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("db_driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}

// openDatabase connects the configured driver and makes sure the tables exist.
func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, users.Repository, history.Repository, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := pgp.Connect(ctx, cfg.DSN())
		if err != nil {
			return nil, nil, nil, err
		}
		if err := pgp.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return db, pgp.NewUserRepository(db), pgp.NewHistoryRepository(db), nil
	default:
		db, err := mysqlp.Connect(ctx, cfg.DSN())
		if err != nil {
			return nil, nil, nil, err
		}
		if err := mysqlp.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return db, mysqlp.NewUserRepository(db), mysqlp.NewHistoryRepository(db), nil
	}
}
