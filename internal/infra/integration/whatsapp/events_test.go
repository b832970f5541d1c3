package whatsapp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"google.golang.org/protobuf/proto"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
	"github.com/xavierca1/whatsapp-bridge/internal/infra/session"
)

type recordedEvents struct {
	codes    []string
	sessions []entity.Session
	ready    int
	failures []string
	messages []entity.InboundEvent
}

func (r *recordedEvents) events() session.Events {
	return session.Events{
		OnPairingCode:   func(code string) { r.codes = append(r.codes, code) },
		OnAuthenticated: func(s entity.Session) { r.sessions = append(r.sessions, s) },
		OnReady:         func() { r.ready++ },
		OnAuthFailure:   func(reason string) { r.failures = append(r.failures, reason) },
		OnMessage:       func(ev entity.InboundEvent) { r.messages = append(r.messages, ev) },
	}
}

func userJID(user string) types.JID {
	return types.NewJID(user, types.DefaultUserServer)
}

func textMessage(chat types.JID, text string, fromMe bool) *events.Message {
	return &events.Message{
		Info: types.MessageInfo{MessageSource: types.MessageSource{
			Chat:     chat,
			Sender:   chat,
			IsFromMe: fromMe,
		}},
		Message: &waE2E.Message{Conversation: proto.String(text)},
	}
}

func TestEventHandlerSessionLifecycle(t *testing.T) {
	rec := &recordedEvents{}
	handle := eventHandler(rec.events(), zerolog.Nop())

	handle(&events.PairSuccess{ID: types.JID{User: "5511999999999", Device: 12, Server: types.DefaultUserServer}, Platform: "android"})
	handle(&events.Connected{})
	handle(&events.LoggedOut{Reason: events.ConnectFailureLoggedOut})
	handle(&events.PairError{Error: errors.New("bad signature")})

	require.Len(t, rec.sessions, 1)
	assert.Equal(t, "5511999999999:12@s.whatsapp.net", rec.sessions[0].JID)
	assert.Equal(t, "android", rec.sessions[0].Platform)
	assert.Empty(t, rec.sessions[0].LID)
	assert.Equal(t, 1, rec.ready)
	require.Len(t, rec.failures, 2)
	assert.Contains(t, rec.failures[0], "logged out")
	assert.Contains(t, rec.failures[1], "bad signature")
}

func TestEventHandlerTemporaryBanKeepsSession(t *testing.T) {
	rec := &recordedEvents{}
	handle := eventHandler(rec.events(), zerolog.Nop())

	handle(&events.TemporaryBan{Code: events.TempBanSentToTooManyPeople, Expire: time.Hour})

	assert.Empty(t, rec.failures)
}

func TestEventHandlerForwardsIncomingText(t *testing.T) {
	rec := &recordedEvents{}
	handle := eventHandler(rec.events(), zerolog.Nop())

	handle(textMessage(userJID("5511999999999"), "oi", false))

	extended := textMessage(userJID("5511888888888"), "", false)
	extended.Message = &waE2E.Message{ExtendedTextMessage: &waE2E.ExtendedTextMessage{Text: proto.String("qual o preço?")}}
	handle(extended)

	require.Len(t, rec.messages, 2)
	assert.Equal(t, entity.InboundEvent{From: "5511999999999@s.whatsapp.net", Body: "oi"}, rec.messages[0])
	assert.Equal(t, "qual o preço?", rec.messages[1].Body)
}

func TestEventHandlerIgnoresOwnGroupAndEmptyMessages(t *testing.T) {
	rec := &recordedEvents{}
	handle := eventHandler(rec.events(), zerolog.Nop())

	handle(textMessage(userJID("5511999999999"), "oi", true))

	group := textMessage(types.NewJID("120363000000000000", types.GroupServer), "oi", false)
	group.Info.IsGroup = true
	handle(group)

	handle(textMessage(types.NewJID("status", types.BroadcastServer), "oi", false))
	handle(textMessage(userJID("5511999999999"), "", false))

	assert.Empty(t, rec.messages)
}

func TestEventHandlerWithoutMessageCallback(t *testing.T) {
	ev := (&recordedEvents{}).events()
	ev.OnMessage = nil
	handle := eventHandler(ev, zerolog.Nop())

	assert.NotPanics(t, func() {
		handle(textMessage(userJID("5511999999999"), "oi", false))
	})
}

func TestGetChatByIDUsesCache(t *testing.T) {
	c := &Client{chats: cache.New(time.Minute, time.Minute)}
	c.chats.SetDefault("5511999999999@s.whatsapp.net", userJID("5511999999999"))

	chat, err := c.GetChatByID(context.Background(), "5511999999999@s.whatsapp.net")

	require.NoError(t, err)
	assert.Equal(t, userJID("5511999999999"), chat.(*Chat).jid)
}

func TestGetChatByIDGroupSkipsLookup(t *testing.T) {
	c := &Client{chats: cache.New(time.Minute, time.Minute)}

	chat, err := c.GetChatByID(context.Background(), "120363000000000000@g.us")

	require.NoError(t, err)
	assert.Equal(t, types.GroupServer, chat.(*Chat).jid.Server)
	_, cached := c.chats.Get("120363000000000000@g.us")
	assert.True(t, cached)
}
