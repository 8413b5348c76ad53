package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/triggerlab/trigger-crm/internal/auth"
	"github.com/triggerlab/trigger-crm/internal/config"
	"github.com/triggerlab/trigger-crm/internal/infra/database"
	"github.com/triggerlab/trigger-crm/internal/infra/http/handlers"
	appmiddleware "github.com/triggerlab/trigger-crm/internal/infra/http/middleware"
	"github.com/triggerlab/trigger-crm/internal/infra/integration/assistant"
	"github.com/triggerlab/trigger-crm/internal/infra/integration/extractor"
	"github.com/triggerlab/trigger-crm/internal/infra/integration/sheets"
	"github.com/triggerlab/trigger-crm/internal/infra/integration/whatsapp"
	"github.com/triggerlab/trigger-crm/internal/infra/mail"
	"github.com/triggerlab/trigger-crm/internal/infra/queue"
	"github.com/triggerlab/trigger-crm/internal/sheet"
	"github.com/triggerlab/trigger-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "trigger-crm").Logger()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("falha ao conectar no banco")
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		logger.Fatal().Err(err).Msg("falha ao conectar no RabbitMQ")
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	profileRepo := database.NewProfileRepository(db)
	aiRepo := database.NewAISettingsRepository(db)

	// 2. Gateways e Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass)
	whatsClient := whatsapp.NewClient()
	assistantClient := assistant.NewClient(cfg.AIWebhookURL)
	extractorClient := extractor.NewClient()
	sheetsClient := sheets.NewClient()
	if cfg.SheetProxyURL != "" {
		sheetsClient.ProxyURL = cfg.SheetProxyURL
	}

	// 3. Worker (consome a fila e envia pelo webhook de automação)
	worker := queue.NewWorker(rabbitMQ.Ch, whatsClient, mailSender, logger)
	go worker.Start(queue.QueueName)

	// 4. UseCases
	importUC := usecase.NewImportLeadsUseCase(sheetsClient, sheet.NewParser(), leadRepo)
	dispatchUC := usecase.NewStartDispatchUseCase(profileRepo, aiRepo, producer)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(leadRepo, importUC)
	dashboardHandler := handlers.NewDashboardHandler(leadRepo)
	settingsHandler := handlers.NewSettingsHandler(profileRepo, aiRepo)
	whatsHandler := handlers.NewWhatsAppHandler(profileRepo, whatsClient)
	chatHandler := handlers.NewChatHandler(aiRepo, assistantClient, sheetsClient)
	dispatchHandler := handlers.NewDispatchHandler(dispatchUC, extractorClient, cfg.ExtractorWebhookURL)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	verifier := auth.NewTokenVerifier(cfg.JWTSecret)

	// 6. Router
	r := chi.NewRouter()
	r.Use(appmiddleware.Logger(logger))
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSAllowed, ","),
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(appmiddleware.Auth(verifier))

		r.Get("/leads", leadHandler.HandleList)
		r.Post("/leads", leadHandler.HandleCreate)
		r.Patch("/leads/{id}", leadHandler.HandleUpdate)
		r.Delete("/leads/{id}", leadHandler.HandleDelete)
		r.Post("/leads/import", leadHandler.HandleImport)

		r.Get("/dashboard/stats", dashboardHandler.HandleStats)

		r.Get("/profile", settingsHandler.HandleGetProfile)
		r.Put("/profile", settingsHandler.HandleUpdateProfile)
		r.Get("/ai/settings", settingsHandler.HandleGetAISettings)
		r.Put("/ai/settings", settingsHandler.HandleUpdateAISettings)

		r.Post("/whatsapp/status", whatsHandler.HandleStatus)
		r.Post("/whatsapp/pair", whatsHandler.HandlePair)

		r.Post("/ai/chat", chatHandler.HandleMessage)
		r.Post("/ai/chat/reset", chatHandler.HandleReset)

		r.Post("/dispatch", dispatchHandler.HandleStart)
		r.Post("/dispatch/extract", dispatchHandler.HandleExtract)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("servidor iniciado")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("erro no servidor")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("servidor encerrado")
}
