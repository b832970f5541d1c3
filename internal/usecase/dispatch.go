package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
)

// AsyncDispatcher executa cada job em uma goroutine própria, sem esperar o resultado.
// O contexto é desacoplado da requisição HTTP para o envio sobreviver à resposta.
type AsyncDispatcher struct {
	Executor Executor
	Timeout  time.Duration
	Logger   zerolog.Logger
}

func NewAsyncDispatcher(executor Executor, timeout time.Duration, logger zerolog.Logger) *AsyncDispatcher {
	return &AsyncDispatcher{
		Executor: executor,
		Timeout:  timeout,
		Logger:   logger,
	}
}

func (d *AsyncDispatcher) Dispatch(ctx context.Context, job entity.OutboundJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	ctx = context.WithoutCancel(ctx)

	go func() {
		if d.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d.Timeout)
			defer cancel()
		}

		if err := d.Executor.Execute(ctx, job); err != nil {
			d.Logger.Error().
				Err(err).
				Str("job_id", job.ID).
				Str("kind", job.Kind).
				Str("number", job.Number).
				Msg("❌ Falha no envio")
		}
	}()

	return nil
}
