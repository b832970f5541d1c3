package usecase

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
)

func TestClassify(t *testing.T) {
	router := NewInboundRouter(&recordingDispatcher{}, zerolog.Nop())

	cases := []struct {
		name string
		text string
		want string
	}{
		{"saudação", "oi", entity.GreetingReply},
		{"saudação maiúscula", "OI, tudo bem?", entity.GreetingReply},
		{"saudação no meio da palavra", "boa noite", entity.GreetingReply},
		{"preço", "qual o preço?", entity.PriceReply},
		{"preço maiúsculo", "PREÇO", entity.PriceReply},
		{"saudação vence preço", "oi, qual o preço?", entity.GreetingReply},
		{"fallback", "quanto custa?", entity.FallbackReply},
		{"vazio", "", entity.FallbackReply},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, router.Classify(tc.text))
		})
	}
}

func TestProcessDispatchesReplyToSender(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	router := NewInboundRouter(dispatcher, zerolog.Nop())

	err := router.Process(context.Background(), entity.InboundEvent{From: "5511999999999", Body: "oi"}, "WEBHOOK")

	require.NoError(t, err)
	require.Len(t, dispatcher.jobs, 1)
	job := dispatcher.jobs[0]
	assert.Equal(t, entity.JobText, job.Kind)
	assert.Equal(t, "5511999999999", job.Number)
	assert.Equal(t, entity.GreetingReply, job.Message)
	assert.Equal(t, "WEBHOOK", job.Origin)
}
