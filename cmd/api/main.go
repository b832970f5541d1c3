package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/whatsapp-bridge/internal/config"
	"github.com/xavierca1/whatsapp-bridge/internal/entity"
	"github.com/xavierca1/whatsapp-bridge/internal/infra/database"
	"github.com/xavierca1/whatsapp-bridge/internal/infra/http/handlers"
	metrics "github.com/xavierca1/whatsapp-bridge/internal/infra/http/middleware"
	"github.com/xavierca1/whatsapp-bridge/internal/infra/integration/whatsapp"
	"github.com/xavierca1/whatsapp-bridge/internal/infra/mail"
	"github.com/xavierca1/whatsapp-bridge/internal/infra/queue"
	"github.com/xavierca1/whatsapp-bridge/internal/infra/session"
	"github.com/xavierca1/whatsapp-bridge/internal/logger"
	"github.com/xavierca1/whatsapp-bridge/internal/usecase"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Device store do WhatsApp
	db, err := database.NewDBConnection(cfg.StoreDialect, cfg.StoreDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Falha ao abrir device store")
	}
	defer db.Close()

	container, err := database.NewDeviceStore(ctx, db, cfg.StoreDialect, logger.WhatsApp(log, "Database", cfg.WhatsAppLogLvl))
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Falha ao migrar device store")
	}

	// 2. Sessão
	connector := whatsapp.NewConnector(container, logger.WhatsApp(log, "Client", cfg.WhatsAppLogLvl), log, cfg.ChatCacheTTL)
	manager := session.NewManager(session.NewFileStore(cfg.SessionFile), connector, log)
	defer manager.Close()

	if cfg.MailEnabled() {
		sender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
		manager.Notifier = mail.NewAuthFailureNotifier(sender, cfg.AlertEmailTo, cfg.SessionFile)
	}

	// 3. Envio
	gateway := usecase.NewOutboundGateway(manager, whatsapp.FileMediaLoader{}, cfg.MediaFolder, cfg.DefaultGreeting, log)
	gateway.RestrictMedia = cfg.RestrictMedia
	gateway.Recorder = metrics.Recorder{}

	var (
		dispatcher usecase.Dispatcher
		rabbitConn *amqp091.Connection
	)
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Falha ao conectar no RabbitMQ")
		}
		defer rabbitMQ.Close()
		rabbitConn = rabbitMQ.Conn

		worker := queue.NewWorker(rabbitMQ.Ch, gateway, log)
		worker.Timeout = cfg.SendTimeout
		go func() {
			if err := worker.Start(ctx, queue.QueueName); err != nil {
				log.Error().Err(err).Msg("❌ Worker de envio parou")
			}
		}()
		dispatcher = queue.NewProducer(rabbitMQ.Ch)
		log.Info().Msg("🐇 Envios enfileirados no RabbitMQ")
	} else {
		dispatcher = usecase.NewAsyncDispatcher(gateway, cfg.SendTimeout, log)
	}

	// 4. Respostas automáticas
	router := usecase.NewInboundRouter(dispatcher, log)
	if cfg.NativeAutoReply {
		manager.OnMessage = func(event entity.InboundEvent) {
			if err := router.Process(ctx, event, "WHATSAPP"); err != nil {
				log.Error().Err(err).Str("from", event.From).Msg("❌ Falha ao responder mensagem")
			}
		}
	}

	if err := manager.Start(ctx); err != nil {
		log.Error().Err(err).Msg("⚠️ Cliente WhatsApp não iniciado, envios serão ignorados")
	}

	// 5. HTTP
	handler := newRouter(routes{
		Message: handlers.NewMessageHandler(dispatcher, log),
		Webhook: handlers.NewWebhookHandler(router, log),
		Session: handlers.NewSessionHandler(manager, log),
		Health:  handlers.NewHealthHandler(db, rabbitConn, manager),
	}, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("🔥 Servidor rodando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("❌ Servidor parou")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("🛑 Encerrando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("❌ Falha no shutdown do servidor")
	}
}
