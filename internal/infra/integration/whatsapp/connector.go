package whatsapp

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	waLog "go.mau.fi/whatsmeow/util/log"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
	"github.com/xavierca1/whatsapp-bridge/internal/infra/session"
	"github.com/xavierca1/whatsapp-bridge/internal/usecase"
)

// Connector cria clientes whatsmeow sobre o device store.
type Connector struct {
	container    *sqlstore.Container
	clientLog    waLog.Logger
	logger       zerolog.Logger
	chatCacheTTL time.Duration
}

func NewConnector(container *sqlstore.Container, clientLog waLog.Logger, logger zerolog.Logger, chatCacheTTL time.Duration) *Connector {
	return &Connector{
		container:    container,
		clientLog:    clientLog,
		logger:       logger,
		chatCacheTTL: chatCacheTTL,
	}
}

func (c *Connector) Restore(ctx context.Context, sess entity.Session, ev session.Events) (usecase.Client, error) {
	jid, err := types.ParseJID(sess.JID)
	if err != nil {
		return nil, fmt.Errorf("%w: JID inválido %q", session.ErrUnknownDevice, sess.JID)
	}

	device, err := c.container.GetDevice(ctx, jid)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar dispositivo: %w", err)
	}
	if device == nil {
		return nil, fmt.Errorf("%w: %s", session.ErrUnknownDevice, sess.JID)
	}

	client := c.newClient(device, ev)
	if err := client.wa.Connect(); err != nil {
		return nil, fmt.Errorf("erro ao conectar: %w", err)
	}
	return client, nil
}

func (c *Connector) Fresh(ctx context.Context, ev session.Events) (usecase.Client, error) {
	client := c.newClient(c.container.NewDevice(), ev)

	qrChan, err := client.wa.GetQRChannel(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir canal de QR code: %w", err)
	}
	go c.watchQR(qrChan, ev)

	if err := client.wa.Connect(); err != nil {
		return nil, fmt.Errorf("erro ao conectar: %w", err)
	}
	return client, nil
}

func (c *Connector) newClient(device *store.Device, ev session.Events) *Client {
	wa := whatsmeow.NewClient(device, c.clientLog)
	wa.AddEventHandler(eventHandler(ev, c.logger))

	return &Client{
		wa:    wa,
		chats: cache.New(c.chatCacheTTL, 2*c.chatCacheTTL),
	}
}

func (c *Connector) watchQR(qrChan <-chan whatsmeow.QRChannelItem, ev session.Events) {
	for item := range qrChan {
		switch item.Event {
		case whatsmeow.QRChannelEventCode:
			ev.OnPairingCode(item.Code)
		case whatsmeow.QRChannelSuccess.Event:
			c.logger.Info().Msg("📱 QR code escaneado")
		case whatsmeow.QRChannelTimeout.Event:
			c.logger.Warn().Msg("⏱️ QR code expirou sem pareamento, reinicie o processo")
		default:
			c.logger.Warn().Err(item.Error).Str("event", item.Event).Msg("Evento QR")
		}
	}
}
