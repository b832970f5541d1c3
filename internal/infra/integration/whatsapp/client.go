package whatsapp

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"google.golang.org/protobuf/proto"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
	"github.com/xavierca1/whatsapp-bridge/internal/usecase"
)

type Client struct {
	wa    *whatsmeow.Client
	chats *cache.Cache
}

// GetChatByID resolve o endereço do chat. Números individuais são confirmados
// com IsOnWhatsApp e o resultado fica em cache.
func (c *Client) GetChatByID(ctx context.Context, chatID string) (usecase.Chat, error) {
	if cached, ok := c.chats.Get(chatID); ok {
		return &Chat{wa: c.wa, jid: cached.(types.JID)}, nil
	}

	jid, err := types.ParseJID(chatID)
	if err != nil || jid.User == "" {
		return nil, fmt.Errorf("%w: %s", usecase.ErrChatNotFound, chatID)
	}
	if jid.Server == types.LegacyUserServer {
		jid.Server = types.DefaultUserServer
	}

	if jid.Server == types.DefaultUserServer {
		resp, err := c.wa.IsOnWhatsApp(ctx, []string{"+" + jid.User})
		if err != nil {
			return nil, fmt.Errorf("erro ao consultar número no WhatsApp: %w", err)
		}
		if len(resp) == 0 || !resp[0].IsIn {
			return nil, fmt.Errorf("%w: %s", usecase.ErrChatNotFound, chatID)
		}
		jid = resp[0].JID
	}

	c.chats.SetDefault(chatID, jid)
	return &Chat{wa: c.wa, jid: jid}, nil
}

func (c *Client) Close() {
	c.wa.Disconnect()
}

type Chat struct {
	wa  *whatsmeow.Client
	jid types.JID
}

func (c *Chat) SendText(ctx context.Context, text string) error {
	_, err := c.wa.SendMessage(ctx, c.jid, &waE2E.Message{
		Conversation: proto.String(text),
	})
	return err
}

func (c *Chat) SendMedia(ctx context.Context, media *entity.Media, caption string) error {
	mediaType := mediaTypeFor(media.Mimetype)

	uploaded, err := c.wa.Upload(ctx, media.Data, mediaType)
	if err != nil {
		return fmt.Errorf("erro ao enviar mídia para o servidor do WhatsApp: %w", err)
	}

	_, err = c.wa.SendMessage(ctx, c.jid, buildMediaMessage(mediaType, uploaded, media, caption))
	return err
}
