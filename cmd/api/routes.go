package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/whatsapp-bridge/internal/infra/http/handlers"
	metrics "github.com/xavierca1/whatsapp-bridge/internal/infra/http/middleware"
)

type routes struct {
	Message *handlers.MessageHandler
	Webhook *handlers.WebhookHandler
	Session *handlers.SessionHandler
	Health  *handlers.HealthHandler
}

func newRouter(h routes, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Post("/send", h.Message.HandleSend)
	r.Post("/sendMedia", h.Message.HandleSendMedia)
	r.Post("/webhook", h.Webhook.Handle)

	r.Get("/status", h.Session.HandleStatus)
	r.Get("/qr", h.Session.HandleQR)
	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
