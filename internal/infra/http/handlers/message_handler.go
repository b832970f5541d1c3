package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
	"github.com/xavierca1/whatsapp-bridge/internal/infra/http/middleware"
	"github.com/xavierca1/whatsapp-bridge/internal/usecase"
)

const (
	StatusTextSent  = "Mensagem enviada!"
	StatusMediaSent = "Mensagem multimídia enviada!"
)

type MessageHandler struct {
	Dispatcher usecase.Dispatcher
	Logger     zerolog.Logger
}

func NewMessageHandler(dispatcher usecase.Dispatcher, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		Dispatcher: dispatcher,
		Logger:     logger,
	}
}

// HandleSend (POST /send) responde antes do envio terminar.
func (h *MessageHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	f := bindFields(r)
	req := entity.OutboundRequest{Number: f["number"], Message: f["message"]}

	h.dispatch(r.Context(), entity.OutboundJob{
		Kind:    entity.JobText,
		Number:  req.Number,
		Message: req.Message,
		Origin:  "API",
	})

	writeStatus(w, StatusTextSent)
}

// HandleSendMedia (POST /sendMedia)
func (h *MessageHandler) HandleSendMedia(w http.ResponseWriter, r *http.Request) {
	f := bindFields(r)
	req := entity.MediaRequest{Number: f["number"], FileName: f["fileName"], Caption: f["caption"]}

	h.dispatch(r.Context(), entity.OutboundJob{
		Kind:     entity.JobMedia,
		Number:   req.Number,
		FileName: req.FileName,
		Caption:  req.Caption,
		Origin:   "API",
	})

	writeStatus(w, StatusMediaSent)
}

func (h *MessageHandler) dispatch(ctx context.Context, job entity.OutboundJob) {
	if err := h.Dispatcher.Dispatch(ctx, job); err != nil {
		middleware.RecordDispatchError(job.Origin)
		h.Logger.Error().Err(err).Str("kind", job.Kind).Str("number", job.Number).Msg("❌ Falha ao despachar envio")
	}
}
