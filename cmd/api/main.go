// @title ConfDesk API
// @version 1.0
// @description Conference management backend: events, topics, schedules, registrations, paper submissions, and contact messages.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
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

	_ "github.com/lib/pq"

	"confdesk/config"
	"confdesk/internal/adapters/auth"
	"confdesk/internal/adapters/email"
	"confdesk/internal/adapters/storage"
	deliveryhttp "confdesk/internal/delivery/http"
	"confdesk/internal/delivery/http/controllers"
	"confdesk/internal/delivery/http/middleware"
	"confdesk/internal/domain"
	"confdesk/internal/repository/postgres"
	"confdesk/internal/services"
)

const serviceTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	topicRepo := postgres.NewTopicRepository(db)
	registrationRepo := postgres.NewEventRegistrationRepository(db)
	paperRepo := postgres.NewPaperRepository(db)
	contactRepo := postgres.NewContactMessageRepository(db)

	// Adapters
	tokens := auth.NewJWTTokens(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(0)
	fileStorage, err := storage.NewDiskStorage(cfg.UploadDir)
	if err != nil {
		logger.Error("init file storage", "err", err)
		os.Exit(1)
	}
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("init mailer", "err", err)
		os.Exit(1)
	}
	emailService := email.NewEmailService(mailer, email.NewTemplateRenderer())

	prices := make(domain.PriceTable, len(cfg.RegistrationPrices))
	for plan, price := range cfg.RegistrationPrices {
		prices[domain.RegistrationPlan(plan)] = price
	}

	// Services
	userService := services.NewUserService(userRepo, hasher, tokens, cfg.JWTExpiry)
	eventService := services.NewEventService(eventRepo, serviceTimeout)
	topicService := services.NewTopicService(topicRepo)
	registrationService := services.NewRegistrationService(registrationRepo, eventRepo, prices, emailService, logger)
	paperService := services.NewPaperService(paperRepo, eventRepo, userRepo, fileStorage, emailService, logger)
	contactService := services.NewContactService(contactRepo)

	// HTTP
	requireUser := middleware.RequireUser(tokens, userRepo, logger)
	mux := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Auth:          controllers.NewAuthController(logger, userService),
		Users:         controllers.NewUserController(logger, userService),
		Events:        controllers.NewEventController(logger, eventService),
		Registrations: controllers.NewRegistrationController(logger, registrationService),
		Topics:        controllers.NewTopicController(logger, topicService),
		Papers:        controllers.NewPaperController(logger, paperService),
		Contact:       controllers.NewContactController(logger, contactService),
	}, requireUser)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
