package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
)

type OutboundGateway struct {
	Clients         ClientProvider
	Media           MediaLoader
	MediaFolder     string
	RestrictMedia   bool
	DefaultGreeting string
	Recorder        SendRecorder
	Logger          zerolog.Logger
}

func NewOutboundGateway(
	clients ClientProvider,
	media MediaLoader,
	mediaFolder string,
	defaultGreeting string,
	logger zerolog.Logger,
) *OutboundGateway {
	return &OutboundGateway{
		Clients:         clients,
		Media:           media,
		MediaFolder:     mediaFolder,
		DefaultGreeting: defaultGreeting,
		Recorder:        noopRecorder{},
		Logger:          logger,
	}
}

// SendMessage envia texto para o número. Sem cliente inicializado é um no-op.
func (g *OutboundGateway) SendMessage(ctx context.Context, number, text string) error {
	client := g.Clients.Client()
	if client == nil {
		g.Logger.Debug().Str("number", number).Msg("cliente não inicializado, mensagem ignorada")
		return nil
	}
	if text == "" {
		text = g.DefaultGreeting
	}

	chat, err := client.GetChatByID(ctx, entity.ChatID(number))
	if err != nil {
		g.Recorder.RecordSend(entity.JobText, "chat_error")
		return fmt.Errorf("falha ao buscar chat %s: %w", number, err)
	}

	if err := chat.SendText(ctx, text); err != nil {
		g.Recorder.RecordSend(entity.JobText, "error")
		return fmt.Errorf("falha ao enviar texto para %s: %w", number, err)
	}

	g.Recorder.RecordSend(entity.JobText, "sent")
	g.Logger.Info().Str("number", number).Msg("✅ Mensagem enviada")
	return nil
}

// SendMessageMedia envia o arquivo MediaFolder/fileName com legenda.
func (g *OutboundGateway) SendMessageMedia(ctx context.Context, number, fileName, caption string) error {
	client := g.Clients.Client()
	if client == nil {
		g.Logger.Debug().Str("number", number).Msg("cliente não inicializado, mídia ignorada")
		return nil
	}

	chat, err := client.GetChatByID(ctx, entity.ChatID(number))
	if err != nil {
		g.Recorder.RecordSend(entity.JobMedia, "chat_error")
		return fmt.Errorf("falha ao buscar chat %s: %w", number, err)
	}

	path, err := g.mediaPath(fileName)
	if err != nil {
		g.Recorder.RecordSend(entity.JobMedia, "rejected")
		return err
	}

	media, err := g.Media.FromFilePath(path)
	if err != nil {
		g.Recorder.RecordSend(entity.JobMedia, "load_error")
		return fmt.Errorf("falha ao carregar mídia %s: %w", path, err)
	}

	if err := chat.SendMedia(ctx, media, caption); err != nil {
		g.Recorder.RecordSend(entity.JobMedia, "error")
		return fmt.Errorf("falha ao enviar mídia para %s: %w", number, err)
	}

	g.Recorder.RecordSend(entity.JobMedia, "sent")
	g.Logger.Info().Str("number", number).Str("file", fileName).Msg("✅ Mídia enviada")
	return nil
}

// Execute roteia um job para o envio correspondente.
func (g *OutboundGateway) Execute(ctx context.Context, job entity.OutboundJob) error {
	switch job.Kind {
	case entity.JobText:
		return g.SendMessage(ctx, job.Number, job.Message)
	case entity.JobMedia:
		return g.SendMessageMedia(ctx, job.Number, job.FileName, job.Caption)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownJobKind, job.Kind)
	}
}

func (g *OutboundGateway) mediaPath(fileName string) (string, error) {
	path := filepath.Join(g.MediaFolder, fileName)
	if !g.RestrictMedia {
		return path, nil
	}

	rel, err := filepath.Rel(g.MediaFolder, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %s", ErrMediaOutsideFolder, fileName)
	}
	return path, nil
}
