package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
	"github.com/xavierca1/whatsapp-bridge/internal/infra/session"
)

type SessionStatus interface {
	State() session.State
	Session() *entity.Session
	PairingCode() string
}

type SessionHandler struct {
	Session SessionStatus
	Logger  zerolog.Logger
}

type SessionResponse struct {
	State    string     `json:"state"`
	JID      string     `json:"jid,omitempty"`
	Platform string     `json:"platform,omitempty"`
	PairedAt *time.Time `json:"paired_at,omitempty"`
}

func NewSessionHandler(sess SessionStatus, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{Session: sess, Logger: logger}
}

// HandleStatus (GET /status)
func (h *SessionHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	resp := SessionResponse{State: string(h.Session.State())}
	if sess := h.Session.Session(); sess != nil {
		resp.JID = sess.JID
		resp.Platform = sess.Platform
		if !sess.PairedAt.IsZero() {
			resp.PairedAt = &sess.PairedAt
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleQR (GET /qr) devolve o QR code de pareamento atual em PNG.
func (h *SessionHandler) HandleQR(w http.ResponseWriter, r *http.Request) {
	code := h.Session.PairingCode()
	if code == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "NO_PAIRING_CODE"})
		return
	}

	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		h.Logger.Error().Err(err).Msg("❌ Falha ao gerar QR code")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "QR_ENCODE_FAILED"})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
