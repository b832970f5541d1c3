package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
	"github.com/xavierca1/whatsapp-bridge/internal/infra/http/handlers"
	"github.com/xavierca1/whatsapp-bridge/internal/infra/session"
	"github.com/xavierca1/whatsapp-bridge/internal/usecase"
)

type captureDispatcher struct {
	mu   sync.Mutex
	jobs []entity.OutboundJob
}

func (d *captureDispatcher) Dispatch(_ context.Context, job entity.OutboundJob) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.jobs = append(d.jobs, job)
	return nil
}

type idleSession struct{}

func (idleSession) State() session.State     { return session.StateAwaitingPairing }
func (idleSession) Session() *entity.Session { return nil }
func (idleSession) PairingCode() string      { return "" }

func newTestRouter(d usecase.Dispatcher) http.Handler {
	log := zerolog.Nop()
	return newRouter(routes{
		Message: handlers.NewMessageHandler(d, log),
		Webhook: handlers.NewWebhookHandler(usecase.NewInboundRouter(d, log), log),
		Session: handlers.NewSessionHandler(idleSession{}, log),
		Health:  handlers.NewHealthHandler(nil, nil, idleSession{}),
	}, []string{"*"})
}

func TestRouterServesBridgeRoutes(t *testing.T) {
	d := &captureDispatcher{}
	srv := httptest.NewServer(newTestRouter(d))
	defer srv.Close()

	cases := []struct {
		path string
		body string
		want string
	}{
		{"/send", `{"number":"5511999999999","message":"hi"}`, "Mensagem enviada!"},
		{"/sendMedia", `{"number":"5511999999999","fileName":"a.png"}`, "Mensagem multimídia enviada!"},
		{"/webhook", `{"from":"5511999999999","body":"qual o preço?"}`, "Mensagem recebida!"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := http.Post(srv.URL+tc.path, "application/json", strings.NewReader(tc.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.want, body["status"])
		})
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	require.Len(t, d.jobs, 3)
	assert.Equal(t, entity.PriceReply, d.jobs[2].Message)
}

func TestRouterAuxiliaryRoutes(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(&captureDispatcher{}))
	defer srv.Close()

	for path, want := range map[string]int{
		"/status":  http.StatusOK,
		"/health":  http.StatusOK,
		"/qr":      http.StatusNotFound,
		"/metrics": http.StatusOK,
	} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode, path)
	}
}

func TestRouterRejectsUnknownMethod(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(&captureDispatcher{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/send")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRouterPreflightAllowsAnyHeader(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(&captureDispatcher{}))
	defer srv.Close()

	for _, headers := range []string{
		"Content-Type",
		"Content-Type, X-Requested-With",
		"Authorization",
	} {
		req, err := http.NewRequest(http.MethodOptions, srv.URL+"/send", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://painel.exemplo.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", headers)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"), headers)
		allowed := strings.ToLower(resp.Header.Get("Access-Control-Allow-Headers"))
		for _, h := range strings.Split(headers, ",") {
			assert.Contains(t, allowed, strings.ToLower(strings.TrimSpace(h)), headers)
		}
	}
}
