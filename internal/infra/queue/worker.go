package queue

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mentisiq/funnel-api/internal/config"
)

// ReportMailer é o contrato do envio do email de relatório pronto.
type ReportMailer interface {
	SendReportReady(to, name, resultsURL string) error
}

type Worker struct {
	Channel       *amqp.Channel
	Mailer        ReportMailer
	PublicBaseURL string
}

func NewWorker(ch *amqp.Channel, mailer ReportMailer, publicBaseURL string) *Worker {
	return &Worker{
		Channel:       ch,
		Mailer:        mailer,
		PublicBaseURL: publicBaseURL,
	}
}

func (w *Worker) Start(queueName string) {
	log := config.Log("notification-worker")

	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload PaymentConfirmedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Errorf("❌ JSON inválido na fila: %s", err)
				// Mensagem podre. Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Infof("📥 Pagamento confirmado na fila: lead %s via %s", payload.LeadID, payload.Provider)

			if err := w.process(payload); err != nil {
				log.Errorf("❌ Erro ao notificar lead %s: %s", payload.LeadID, err)
				d.Nack(false, false)
			} else {
				log.Infof("✅ Email de relatório enviado para %s", payload.Email)
				d.Ack(false)
			}
		}
	}()

	log.Infof(" [*] Worker de notificações aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) process(payload PaymentConfirmedPayload) error {
	if payload.Email == "" {
		return fmt.Errorf("payload sem email")
	}

	resultsURL := fmt.Sprintf("%s/resultado?leadId=%s", w.PublicBaseURL, payload.LeadID)
	return w.Mailer.SendReportReady(payload.Email, payload.Name, resultsURL)
}
