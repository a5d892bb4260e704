/*-------------------------------------------------------------------------
 *
 * main.go
 *    Main entry point for the CodeScore server
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/cmd/codescore-server/main.go
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/arjunKumbakkara/codeScore/internal/api"
	"github.com/arjunKumbakkara/codeScore/internal/approval"
	"github.com/arjunKumbakkara/codeScore/internal/auth"
	"github.com/arjunKumbakkara/codeScore/internal/config"
	"github.com/arjunKumbakkara/codeScore/internal/db"
	"github.com/arjunKumbakkara/codeScore/internal/identity"
	"github.com/arjunKumbakkara/codeScore/internal/jobs"
	"github.com/arjunKumbakkara/codeScore/internal/metrics"
	"github.com/arjunKumbakkara/codeScore/internal/notifications"
	"github.com/arjunKumbakkara/codeScore/internal/review"
)

var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

func main() {
	var (
		showVersion      = flag.Bool("version", false, "Show version information")
		showVersionShort = flag.Bool("v", false, "Show version information (short)")
		configPath       = flag.String("c", "", "Path to configuration file")
		configPathLong   = flag.String("config", "", "Path to configuration file")
		showHelp         = flag.Bool("help", false, "Show help message")
		showHelpShort    = flag.Bool("h", false, "Show help message (short)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "CodeScore Server - LLM-backed code review with gated signups\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    Start server with default configuration\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -c config.yaml     Start server with custom config file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --version          Show version information\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nConfiguration:\n")
		fmt.Fprintf(os.Stderr, "  Configuration can be provided via:\n")
		fmt.Fprintf(os.Stderr, "  - Command line flag: -c or --config\n")
		fmt.Fprintf(os.Stderr, "  - Environment variable: CONFIG_PATH\n")
		fmt.Fprintf(os.Stderr, "  - Environment variables (see config package for details)\n")
	}
	flag.Parse()

	/* Handle version flag */
	if *showVersion || *showVersionShort {
		fmt.Printf("codescore version %s\n", version)
		fmt.Printf("Build date: %s\n", buildDate)
		fmt.Printf("Git commit: %s\n", gitCommit)
		os.Exit(0)
	}

	/* Handle help flag */
	if *showHelp || *showHelpShort {
		flag.Usage()
		os.Exit(0)
	}

	/* Load configuration */
	cfg := config.DefaultConfig()

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = *configPathLong
	}
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}

	if cfgPath != "" {
		var err error
		cfg, err = config.LoadConfig(cfgPath)
		if err != nil {
			fmt.Printf("Failed to load config: %v, using defaults\n", err)
		}
	} else {
		config.LoadFromEnv(cfg)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	/* Initialize logging */
	metrics.InitLogging(cfg.Logging.Level, cfg.Logging.Format)

	/* Connect to database */
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Database)

	connMaxIdleTime := 10 * time.Minute
	if cfg.Database.ConnMaxIdleTime > 0 {
		connMaxIdleTime = cfg.Database.ConnMaxIdleTime
	}

	database, err := db.NewDB(connStr, db.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: connMaxIdleTime,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	/* Run migrations */
	migrationRunner := db.NewMigrationRunner(database, "./migrations")
	if err := migrationRunner.Run(context.Background()); err != nil {
		fmt.Printf("Warning: Migration failed: %v\n", err)
	}

	/* Initialize components */
	queries := db.NewQueries(database)

	emailService := notifications.NewEmailService(
		cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	dispatcher := notifications.NewDispatcher(emailService, cfg.Admin.Email, cfg.Admin.BaseURL)

	provisioner := identity.NewDBProvisioner()
	approvalManager := approval.NewManager(queries, provisioner, dispatcher, cfg.Admin.Email)

	providerClient := review.NewProviderClient(
		cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.Model,
		cfg.Provider.MaxTokens, cfg.Provider.Timeout)
	reviewService := review.NewService(queries, providerClient)

	sessions := auth.NewSessionManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	sweeper := jobs.NewSweepService(queries, cfg.Retention.SweepInterval, cfg.Retention.ReviewMaxAge)

	/* Initialize API */
	api.Version = version
	handlers := api.NewHandlers(queries, reviewService, sessions, database, cfg.Admin.BaseURL)
	approvalHandlers := api.NewApprovalHandlers(approvalManager)
	adminHandlers := api.NewAdminHandlers(sweeper)
	sessionAuth := api.NewSessionAuthMiddleware(sessions)
	adminAuth := api.NewAdminAuthMiddleware(cfg.Admin.APIKey)

	/* Setup router */
	router := mux.NewRouter()
	router.Use(api.RequestIDMiddleware)
	router.Use(api.CORSMiddleware)
	router.Use(api.LoggingMiddleware)

	/* Public routes: intake, decision links, sign-in, shared reviews */
	publicRouter := router.PathPrefix("/api/v1").Subrouter()
	publicRouter.HandleFunc("/approvals/request", approvalHandlers.RequestAccess).Methods("POST")
	publicRouter.HandleFunc("/approvals/decide", approvalHandlers.Decide).Methods("GET")
	publicRouter.HandleFunc("/auth/signin", handlers.SignIn).Methods("POST")
	publicRouter.HandleFunc("/shared/{token}", handlers.GetSharedReview).Methods("GET")

	/* Authenticated routes: review history */
	userRouter := router.PathPrefix("/api/v1").Subrouter()
	userRouter.Use(sessionAuth.Middleware)
	userRouter.HandleFunc("/reviews", handlers.SubmitReview).Methods("POST")
	userRouter.HandleFunc("/reviews", handlers.ListReviews).Methods("GET")
	userRouter.HandleFunc("/reviews/{id}", handlers.GetReview).Methods("GET")
	userRouter.HandleFunc("/reviews/{id}", handlers.DeleteReview).Methods("DELETE")
	userRouter.HandleFunc("/reviews/{id}/share", handlers.ShareReview).Methods("POST")

	/* Admin routes */
	adminRouter := router.PathPrefix("/api/v1/admin").Subrouter()
	adminRouter.Use(adminAuth.Middleware)
	adminRouter.HandleFunc("/approvals/pending", approvalHandlers.ListPending).Methods("GET")
	adminRouter.HandleFunc("/sweep", adminHandlers.TriggerSweep).Methods("POST")

	/* Health check */
	router.HandleFunc("/health", handlers.Health).Methods("GET")

	/* Metrics endpoint (no auth required) */
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	/* Start retention sweeper */
	sweeper.Start()
	defer sweeper.Stop()

	/* Export connection pool gauges */
	poolStatsDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				open, idle, inUse := database.GetPoolStats()
				metrics.RecordDBPoolStats(cfg.Database.Database, open, idle, inUse)
			case <-poolStatsDone:
				return
			}
		}
	}()
	defer close(poolStatsDone)

	/* Start server */
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	/* Graceful shutdown */
	go func() {
		fmt.Printf("Server starting on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "FATAL: Server failed to start on %s: %v\n", addr, err)
			os.Exit(1)
		}
	}()

	/* Wait for interrupt signal */
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		fmt.Printf("Server forced to shutdown: %v\n", err)
	}

	fmt.Println("Server exited")
}
