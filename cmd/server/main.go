package main

import (
	"fmt"
	"log"

	"notaryflow/internal/config"
	"notaryflow/internal/email/noop"
	"notaryflow/internal/email/ses"
	"notaryflow/internal/handler"
	"notaryflow/internal/notary"
	"notaryflow/internal/port"
	"notaryflow/internal/repository/postgres"
	"notaryflow/internal/router"
	"notaryflow/internal/service"
	redisstore "notaryflow/internal/session/redis"
	"notaryflow/internal/stamping"
	s3storage "notaryflow/internal/storage/s3"
	"notaryflow/internal/wizard"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	kvStore, err := redisstore.NewKVStore(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer kvStore.Close()

	// Initialize repositories
	submissionRepo := postgres.NewSubmissionRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender()
	}

	// Initialize collaborator clients
	stampingClient := stamping.NewClient(&cfg.Stamping)
	notaryClient := notary.NewClient(&cfg.Notary)

	// Initialize wizard session manager
	session := wizard.NewSession(kvStore, cfg.Redis.SessionTTL)

	// Initialize services
	submissionSvc := service.NewSubmissionService(submissionRepo, session, notaryClient, emailSender)
	signingSvc := service.NewSigningService(submissionRepo, stampingClient)
	authSvc := service.NewAuthService(submissionRepo, &cfg.JWT)
	uploadSvc := service.NewUploadService(s3Client, &cfg.S3)
	reportSvc := service.NewReportService(submissionRepo)

	// Initialize handlers
	wizardH := handler.NewWizardHandler(session)
	uploadH := handler.NewUploadHandler(uploadSvc, session)
	submissionH := handler.NewSubmissionHandler(submissionSvc)
	signingH := handler.NewSigningHandler(signingSvc)
	authH := handler.NewAuthHandler(authSvc)
	downloadH := handler.NewDownloadHandler(signingSvc, uploadSvc)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, authSvc,
		wizardH, uploadH, submissionH, signingH, authH, downloadH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
