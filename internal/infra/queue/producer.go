package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DispatchRecipient é um destinatário do disparo em massa. Os nomes de
// campo seguem o contrato do webhook de automação ({nome, numero}).
type DispatchRecipient struct {
	Nome   string `json:"nome"`
	Numero string `json:"numero"`
}

// DispatchPayload é uma run completa de disparo: destinatários, template da
// mensagem e a janela de delay aleatório entre envios.
type DispatchPayload struct {
	RunID      string              `json:"run_id"`
	UserID     string              `json:"user_id"`
	WebhookURL string              `json:"webhook_url"`
	Instance   string              `json:"instance"`
	Message    string              `json:"message"`
	DelayMin   int                 `json:"delay_min"` // segundos
	DelayMax   int                 `json:"delay_max"`
	UseAI      bool                `json:"use_ai"`
	// ReportEmail recebe o resumo da run ao final; vazio desliga o relatório.
	ReportEmail string              `json:"report_email,omitempty"`
	Recipients  []DispatchRecipient `json:"recipients"`
}

type DispatchProducerInterface interface {
	PublishDispatch(ctx context.Context, payload DispatchPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishDispatch(ctx context.Context, payload DispatchPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // run sobrevive a restart do broker
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}
