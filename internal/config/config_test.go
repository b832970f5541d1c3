package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SESSION_FILE", "MEDIA_FOLDER", "SEND_TIMEOUT", "CORS_ALLOWED_ORIGINS", "RABBITMQ_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, "./session.json", cfg.SessionFile)
	assert.Equal(t, "./media", cfg.MediaFolder)
	assert.Equal(t, time.Duration(0), cfg.SendTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.False(t, cfg.RestrictMedia)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("SEND_TIMEOUT", "30s")
	t.Setenv("MEDIA_RESTRICT_TO_FOLDER", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://painel.exemplo.com")
	t.Setenv("MAIL_PORT", "not-a-number")

	cfg := Load()

	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, 30*time.Second, cfg.SendTimeout)
	assert.True(t, cfg.RestrictMedia)
	assert.Equal(t, []string{"http://localhost:5173", "https://painel.exemplo.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 587, cfg.MailPort)
}

func TestMailEnabled(t *testing.T) {
	cfg := &Config{MailHost: "smtp.exemplo.com"}
	assert.False(t, cfg.MailEnabled())

	cfg.AlertEmailTo = "ops@exemplo.com"
	assert.True(t, cfg.MailEnabled())
}
