package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mdp/qrterminal/v3"
	"github.com/rs/zerolog"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
	"github.com/xavierca1/whatsapp-bridge/internal/usecase"
)

type State string

const (
	StateUninitialized   State = "UNINITIALIZED"
	StateAwaitingPairing State = "AWAITING_PAIRING"
	StateAuthenticated   State = "AUTHENTICATED"
	StateReady           State = "READY"
	StateFailed          State = "FAILED"
)

// ErrUnknownDevice indica que o arquivo de sessão aponta para um dispositivo
// que o device store não conhece mais.
var ErrUnknownDevice = errors.New("dispositivo da sessão não encontrado")

// Events são os callbacks que o Connector dispara a partir do cliente.
type Events struct {
	OnPairingCode   func(code string)
	OnAuthenticated func(sess entity.Session)
	OnReady         func()
	OnAuthFailure   func(reason string)
	OnMessage       func(event entity.InboundEvent)
}

// Connector constrói o cliente de mensagens, com ou sem sessão salva.
type Connector interface {
	Restore(ctx context.Context, sess entity.Session, ev Events) (usecase.Client, error)
	Fresh(ctx context.Context, ev Events) (usecase.Client, error)
}

type Notifier interface {
	NotifyAuthFailure(reason string) error
}

type Manager struct {
	Store     Store
	Connector Connector
	Logger    zerolog.Logger

	// QROutput recebe o QR code renderizado. Padrão: os.Stdout.
	QROutput io.Writer
	Notifier Notifier
	// OnMessage recebe mensagens que chegam direto pelo cliente.
	OnMessage func(event entity.InboundEvent)

	mu          sync.RWMutex
	state       State
	generation  uint64
	client      usecase.Client
	session     *entity.Session
	pairingCode string

	// persistMu ordena gravações e exclusões do arquivo de sessão.
	persistMu sync.Mutex
}

func NewManager(store Store, connector Connector, logger zerolog.Logger) *Manager {
	return &Manager{
		Store:     store,
		Connector: connector,
		Logger:    logger,
		QROutput:  os.Stdout,
		state:     StateUninitialized,
	}
}

// Start carrega a sessão salva se existir; senão inicia o fluxo de pareamento.
func (m *Manager) Start(ctx context.Context) error {
	if m.Store.Exists() {
		return m.startWithSession(ctx)
	}
	return m.startWithoutSession(ctx)
}

func (m *Manager) startWithSession(ctx context.Context) error {
	sess, err := m.Store.Load()
	if err != nil {
		m.authFailure(err.Error())
		return err
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.session = &sess
	m.mu.Unlock()

	m.Logger.Info().Str("jid", sess.JID).Msg("🔌 Conectando ao WhatsApp com sessão salva...")

	client, err := m.Connector.Restore(ctx, sess, m.events())
	if err != nil {
		if errors.Is(err, ErrUnknownDevice) {
			m.authFailure(err.Error())
		} else {
			m.resetIf(StateAuthenticated)
		}
		return fmt.Errorf("falha ao restaurar sessão: %w", err)
	}

	m.setClient(client)
	return nil
}

func (m *Manager) startWithoutSession(ctx context.Context) error {
	m.setState(StateAwaitingPairing)
	m.Logger.Info().Msg("🔌 Nenhuma sessão salva, aguardando pareamento via QR code...")

	client, err := m.Connector.Fresh(ctx, m.events())
	if err != nil {
		m.resetIf(StateAwaitingPairing)
		return fmt.Errorf("falha ao iniciar cliente: %w", err)
	}

	m.setClient(client)
	return nil
}

func (m *Manager) events() Events {
	ev := Events{
		OnPairingCode:   m.pairing,
		OnAuthenticated: m.authenticated,
		OnReady:         m.ready,
		OnAuthFailure:   m.authFailure,
	}
	if m.OnMessage != nil {
		ev.OnMessage = m.OnMessage
	}
	return ev
}

func (m *Manager) pairing(code string) {
	m.mu.Lock()
	m.pairingCode = code
	m.mu.Unlock()

	qrterminal.GenerateHalfBlock(code, qrterminal.L, m.QROutput)
	m.Logger.Info().Msg("➡️ Escaneie o QR Code acima com seu WhatsApp")
}

func (m *Manager) authenticated(sess entity.Session) {
	m.mu.Lock()
	m.state = StateAuthenticated
	m.session = &sess
	m.pairingCode = ""
	m.generation++
	gen := m.generation
	m.mu.Unlock()

	m.Logger.Info().Str("jid", sess.JID).Msg("🔐 Autenticado")

	go m.persist(sess, gen)
}

// persist grava a sessão, a menos que outro evento (ex.: auth_failure) já
// tenha acontecido depois da autenticação que a originou.
func (m *Manager) persist(sess entity.Session, gen uint64) {
	m.persistMu.Lock()
	defer m.persistMu.Unlock()

	m.mu.RLock()
	stale := m.generation != gen
	m.mu.RUnlock()
	if stale {
		m.Logger.Debug().Str("jid", sess.JID).Msg("gravação de sessão descartada")
		return
	}

	if err := m.Store.Save(sess); err != nil {
		m.Logger.Error().Err(err).Msg("❌ Falha ao gravar arquivo de sessão")
	}
}

func (m *Manager) ready() {
	m.setState(StateReady)
	m.Logger.Info().Msg("✅ Cliente está pronto!")
}

func (m *Manager) authFailure(reason string) {
	m.mu.Lock()
	m.state = StateFailed
	m.session = nil
	m.pairingCode = ""
	m.generation++
	m.mu.Unlock()

	m.Logger.Warn().
		Str("reason", reason).
		Msg("** O erro de autenticação regenera o QRCODE (arquivo de sessão excluído) **")

	m.persistMu.Lock()
	if err := m.Store.Delete(); err != nil {
		m.Logger.Error().Err(err).Msg("❌ Falha ao excluir arquivo de sessão")
	}
	m.persistMu.Unlock()

	if m.Notifier != nil {
		go func() {
			if err := m.Notifier.NotifyAuthFailure(reason); err != nil {
				m.Logger.Error().Err(err).Msg("⚠️ Falha ao notificar erro de autenticação")
			}
		}()
	}
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// resetIf volta para Uninitialized quando a inicialização falha, sem tocar no
// arquivo de sessão. Estados já avançados por eventos do cliente são mantidos.
func (m *Manager) resetIf(expected State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == expected {
		m.state = StateUninitialized
		m.session = nil
	}
}

func (m *Manager) setClient(c usecase.Client) {
	m.mu.Lock()
	m.client = c
	m.mu.Unlock()
}

// Client devolve o handle atual ou nil.
func (m *Manager) Client() usecase.Client {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) Session() *entity.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil
	}
	sess := *m.session
	return &sess
}

func (m *Manager) PairingCode() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pairingCode
}

func (m *Manager) Close() {
	if c := m.Client(); c != nil {
		c.Close()
	}
}
