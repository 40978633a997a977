package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/selfviz/analytics-service/internal/auth"
	"github.com/selfviz/analytics-service/internal/config"
	"github.com/selfviz/analytics-service/internal/handler"
	"github.com/selfviz/analytics-service/internal/jobs"
	"github.com/selfviz/analytics-service/internal/middleware"
	"github.com/selfviz/analytics-service/internal/repository"
	"github.com/selfviz/analytics-service/internal/service"
	"github.com/selfviz/analytics-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	if err := repo.Migrate(context.Background()); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	if err != nil {
		logger.Fatalf("Failed to create token service: %v", err)
	}

	var mailer *email.Sender
	if cfg.SMTPConfigured() {
		mailer = email.NewSender(cfg, logger)
	}

	svc := service.NewService(repo, tokens, mailer, logger)
	h := handler.NewHandler(svc, logger)

	// Daily click summary job
	summary := jobs.NewSummary(repo, logger)
	if err := summary.Start(cfg.SummarySchedule); err != nil {
		logger.Fatalf("Failed to start summary job: %v", err)
	}
	defer summary.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics())

	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/users", h.Register).Methods("POST")
	r.HandleFunc("/users/login", h.Login).Methods("POST")

	// Protected routes
	trackRouter := r.PathPrefix("/track").Subrouter()
	trackRouter.Use(middleware.Auth(svc))
	trackRouter.HandleFunc("", h.Track).Methods("POST")
	trackRouter.HandleFunc("/analytics", h.Analytics).Methods("GET")

	// The dashboard frontend is served from a different origin
	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
	)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      cors(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
