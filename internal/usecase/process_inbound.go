package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
)

type InboundRouter struct {
	Rules      []entity.ReplyRule
	Fallback   string
	Dispatcher Dispatcher
	Logger     zerolog.Logger
}

func NewInboundRouter(dispatcher Dispatcher, logger zerolog.Logger) *InboundRouter {
	return &InboundRouter{
		Rules:      entity.DefaultReplyRules,
		Fallback:   entity.FallbackReply,
		Dispatcher: dispatcher,
		Logger:     logger,
	}
}

// Classify devolve a resposta da primeira regra que casar com o texto.
func (r *InboundRouter) Classify(text string) string {
	for _, rule := range r.Rules {
		if rule.Matches(text) {
			return rule.Response
		}
	}
	return r.Fallback
}

// Process classifica a mensagem recebida e despacha a resposta para o remetente.
func (r *InboundRouter) Process(ctx context.Context, event entity.InboundEvent, origin string) error {
	reply := r.Classify(event.Body)

	r.Logger.Info().
		Str("from", event.From).
		Str("origin", origin).
		Str("reply", reply).
		Msg("📥 Mensagem recebida")

	return r.Dispatcher.Dispatch(ctx, entity.OutboundJob{
		Kind:    entity.JobText,
		Number:  event.From,
		Message: reply,
		Origin:  origin,
	})
}
