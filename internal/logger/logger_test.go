package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriterLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info().Msg("ignorado")
	assert.Empty(t, buf.String())

	log.Warn().Msg("sessão inválida")
	assert.Contains(t, buf.String(), "sessão inválida")
}

func TestNewWithWriterInvalidLevelFallsBackToInfo(t *testing.T) {
	log := NewWithWriter(&bytes.Buffer{}, "barulhento")
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}
