package whatsapp

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
	"github.com/xavierca1/whatsapp-bridge/internal/infra/session"
)

func eventHandler(ev session.Events, logger zerolog.Logger) func(any) {
	return func(evt any) {
		switch v := evt.(type) {
		case *events.PairSuccess:
			ev.OnAuthenticated(toSession(v))
		case *events.Connected:
			ev.OnReady()
		case *events.LoggedOut:
			ev.OnAuthFailure(fmt.Sprintf("logged out: %s", v.Reason))
		case *events.PairError:
			ev.OnAuthFailure(fmt.Sprintf("pair error: %v", v.Error))
		case *events.TemporaryBan:
			// O dispositivo continua no store; a sessão volta quando o banimento expira.
			logger.Error().Str("ban", v.String()).Msg("⛔ Conta temporariamente banida")
		case *events.ConnectFailure:
			logger.Error().Str("reason", v.Reason.String()).Str("message", v.Message).Msg("❌ Falha de conexão")
		case *events.Disconnected:
			logger.Warn().Msg("🔌 Desconectado do WhatsApp")
		case *events.Message:
			if ev.OnMessage == nil {
				return
			}
			if inbound, ok := inboundFromMessage(v); ok {
				ev.OnMessage(inbound)
			}
		}
	}
}

func toSession(v *events.PairSuccess) entity.Session {
	sess := entity.Session{
		JID:          v.ID.String(),
		BusinessName: v.BusinessName,
		Platform:     v.Platform,
		PairedAt:     time.Now().UTC(),
	}
	if !v.LID.IsEmpty() {
		sess.LID = v.LID.String()
	}
	return sess
}

// inboundFromMessage aceita apenas texto de conversas individuais recebidas.
func inboundFromMessage(v *events.Message) (entity.InboundEvent, bool) {
	if v.Info.IsFromMe || v.Info.IsGroup || v.Info.Chat.Server == types.BroadcastServer {
		return entity.InboundEvent{}, false
	}

	text := v.Message.GetConversation()
	if text == "" {
		text = v.Message.GetExtendedTextMessage().GetText()
	}
	if text == "" {
		return entity.InboundEvent{}, false
	}

	return entity.InboundEvent{From: v.Info.Chat.ToNonAD().String(), Body: text}, true
}
