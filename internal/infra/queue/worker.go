package queue

import (
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// MessengerClient é o contrato do envio individual via webhook de automação.
type MessengerClient interface {
	SendDispatch(ctx context.Context, webhookURL string, payload DispatchPayload, recipient DispatchRecipient, message string) (bool, error)
}

// ReportSender envia o resumo da run por email quando configurado.
type ReportSender interface {
	SendDispatchReport(to, runID string, sent, failed int) error
}

type DispatchResult struct {
	Sent   int
	Failed int
}

type Worker struct {
	Channel   *amqp.Channel
	Messenger MessengerClient
	Reporter  ReportSender
	Logger    zerolog.Logger

	// sleep é trocável nos testes para não esperar o delay real.
	sleep func(time.Duration)
}

func NewWorker(ch *amqp.Channel, messenger MessengerClient, reporter ReportSender, logger zerolog.Logger) *Worker {
	return &Worker{
		Channel:   ch,
		Messenger: messenger,
		Reporter:  reporter,
		Logger:    logger,
		sleep:     time.Sleep,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",
		false, // ack manual
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		w.Logger.Fatal().Err(err).Msg("falha ao registrar consumidor RabbitMQ")
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload DispatchPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				w.Logger.Error().Err(err).Msg("mensagem malformada, rejeitando sem requeue")
				d.Nack(false, false)
				continue
			}

			w.Logger.Info().
				Str("run_id", payload.RunID).
				Int("recipients", len(payload.Recipients)).
				Msg("processando run de disparo")

			result := w.processRun(context.Background(), payload)

			if result.Sent == 0 && result.Failed > 0 {
				// Nenhum envio passou: provavelmente webhook fora do ar.
				// DLQ fica com a run para reprocesso manual.
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}()

	w.Logger.Info().Str("queue", queueName).Msg("worker de disparos aguardando")
	<-forever
}

// processRun envia a mensagem para cada destinatário com delay aleatório
// dentro da janela configurada, igual a um humano mandando um por um.
func (w *Worker) processRun(ctx context.Context, payload DispatchPayload) DispatchResult {
	var result DispatchResult

	for i, recipient := range payload.Recipients {
		message := RenderMessage(payload.Message, recipient.Nome)

		ok, err := w.Messenger.SendDispatch(ctx, payload.WebhookURL, payload, recipient, message)
		if err != nil || !ok {
			result.Failed++
			w.Logger.Warn().Err(err).
				Str("run_id", payload.RunID).
				Str("recipient", recipient.Numero).
				Msg("envio falhou")
		} else {
			result.Sent++
		}

		if i < len(payload.Recipients)-1 {
			w.sleep(randomDelay(payload.DelayMin, payload.DelayMax))
		}
	}

	w.Logger.Info().
		Str("run_id", payload.RunID).
		Int("sent", result.Sent).
		Int("failed", result.Failed).
		Msg("run de disparo concluída")

	if w.Reporter != nil && payload.ReportEmail != "" {
		if err := w.Reporter.SendDispatchReport(payload.ReportEmail, payload.RunID, result.Sent, result.Failed); err != nil {
			w.Logger.Warn().Err(err).Str("run_id", payload.RunID).Msg("relatório de disparo não enviado")
		}
	}
	return result
}

// RenderMessage substitui a variável {nome} do template pelo destinatário.
func RenderMessage(template, nome string) string {
	return strings.ReplaceAll(template, "{nome}", nome)
}

func randomDelay(minSec, maxSec int) time.Duration {
	if minSec < 0 {
		minSec = 0
	}
	if maxSec < minSec {
		maxSec = minSec
	}
	secs := minSec
	if span := maxSec - minSec; span > 0 {
		secs += rand.Intn(span + 1)
	}
	return time.Duration(secs) * time.Second
}
