package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/xavierca1/whatsapp-bridge/internal/entity"
	"github.com/xavierca1/whatsapp-bridge/internal/usecase"
)

// Acknowledger é o pedaço de amqp.Delivery usado pelo Worker.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type Worker struct {
	Channel  *amqp.Channel
	Executor usecase.Executor
	// Timeout limita cada envio. Zero desativa o limite.
	Timeout time.Duration
	Logger  zerolog.Logger
}

func NewWorker(ch *amqp.Channel, executor usecase.Executor, logger zerolog.Logger) *Worker {
	return &Worker{
		Channel:  ch,
		Executor: executor,
		Logger:   logger,
	}
}

// Start consome a fila até o contexto acabar ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.ConsumeWithContext(ctx,
		queueName,
		"",
		false, // ack manual
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	w.Logger.Info().Str("queue", queueName).Msg(" [*] Worker rodando e aguardando na fila")

	return w.consume(ctx, msgs)
}

// consume despacha cada entrega em uma goroutine própria: um envio travado
// não segura os próximos.
func (w *Worker) consume(ctx context.Context, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info().Msg("⚠️ Worker encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("canal do RabbitMQ fechado")
			}
			go w.handle(ctx, d.Body, &d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, body []byte, ack Acknowledger) {
	var job entity.OutboundJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.Error().Err(err).Msg("❌ [WORKER] JSON inválido")
		ack.Nack(false, false)
		return
	}

	if w.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Timeout)
		defer cancel()
	}

	if err := w.Executor.Execute(ctx, job); err != nil {
		w.Logger.Error().Err(err).Str("job_id", job.ID).Str("number", job.Number).Msg("❌ [WORKER] Falha no envio")
		ack.Nack(false, false)
		return
	}

	w.Logger.Info().Str("job_id", job.ID).Msg("✅ [WORKER] Job processado")
	ack.Ack(false)
}
