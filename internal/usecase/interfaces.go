package usecase

import (
	"context"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
)

// Chat é o destino resolvido pelo cliente de mensagens.
type Chat interface {
	SendText(ctx context.Context, text string) error
	SendMedia(ctx context.Context, media *entity.Media, caption string) error
}

// Client é o handle do cliente WhatsApp já inicializado.
type Client interface {
	GetChatByID(ctx context.Context, chatID string) (Chat, error)
	Close()
}

// ClientProvider devolve o handle atual, ou nil enquanto não existir.
type ClientProvider interface {
	Client() Client
}

type MediaLoader interface {
	FromFilePath(path string) (*entity.Media, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, job entity.OutboundJob) error
}

// Executor executa um job de saída de forma síncrona.
type Executor interface {
	Execute(ctx context.Context, job entity.OutboundJob) error
}

type SendRecorder interface {
	RecordSend(kind, result string)
}

type noopRecorder struct{}

func (noopRecorder) RecordSend(string, string) {}
