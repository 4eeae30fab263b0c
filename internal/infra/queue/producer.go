package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PaymentConfirmedPayload é publicado quando um webhook confirma o pagamento
// de um lead. O worker de notificação consome e dispara o email com o link
// do relatório.
type PaymentConfirmedPayload struct {
	LeadID      string    `json:"lead_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PaymentID   string    `json:"payment_id"`
	Provider    string    `json:"provider"` // hotmart | mercadopago
	ConfirmedAt time.Time `json:"confirmed_at"`
}

type NotificationProducerInterface interface {
	PublishPaymentConfirmed(ctx context.Context, payload PaymentConfirmedPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishPaymentConfirmed(ctx context.Context, payload PaymentConfirmedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}

	return nil
}
