package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
	"github.com/xavierca1/whatsapp-bridge/internal/infra/http/middleware"
)

const StatusReceived = "Mensagem recebida!"

type InboundProcessor interface {
	Process(ctx context.Context, event entity.InboundEvent, origin string) error
}

type WebhookHandler struct {
	Router InboundProcessor
	Logger zerolog.Logger
}

func NewWebhookHandler(router InboundProcessor, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		Router: router,
		Logger: logger,
	}
}

// Handle (POST /webhook) confirma o recebimento, não a entrega da resposta.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	f := bindFields(r)
	event := entity.InboundEvent{From: f["from"], Body: f["body"]}

	middleware.RecordWebhook()

	if err := h.Router.Process(r.Context(), event, "WEBHOOK"); err != nil {
		middleware.RecordDispatchError("WEBHOOK")
		h.Logger.Error().Err(err).Str("from", event.From).Msg("❌ Falha ao processar webhook")
	}

	writeStatus(w, StatusReceived)
}
