package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mentisiq/funnel-api/internal/entity"
	"github.com/mentisiq/funnel-api/internal/infra/queue"
)

// PaymentEvent é a forma interna comum dos callbacks dos dois provedores,
// já com o status traduzido para o vocabulário do funil.
type PaymentEvent struct {
	Provider   string // hotmart | mercadopago
	EventID    string
	LeadID     string
	PaymentID  string
	Status     string
	Confirmed  bool
	OccurredAt time.Time
}

// MapHotmartEvent traduz o par (event, status) da Hotmart. O tipo do evento
// tem precedência sobre o campo status: um PURCHASE_APPROVED confirma o
// pagamento mesmo que o status diga pending.
func MapHotmartEvent(event, status string) (string, bool) {
	switch {
	case event == "PURCHASE_COMPLETE" || event == "PURCHASE_APPROVED" || status == "approved":
		return entity.PaymentApproved, true
	case status == "refunded" || event == "PURCHASE_REFUNDED":
		return entity.PaymentRefunded, false
	case status == "cancelled" || event == "PURCHASE_CANCELLED":
		return entity.PaymentCancelled, false
	default:
		return entity.PaymentPending, false
	}
}

// MapMercadoPagoStatus traduz o status retornado pela API de pagamentos.
func MapMercadoPagoStatus(status string) (string, bool) {
	switch status {
	case "approved":
		return entity.PaymentApproved, true
	case "refunded":
		return entity.PaymentRefunded, false
	case "cancelled":
		return entity.PaymentCancelled, false
	default:
		return entity.PaymentPending, false
	}
}

// ApplyPaymentEventUseCase aplica exatamente uma atualização no lead por
// evento. Replays (mesmo event id) e eventos mais antigos que o último
// aplicado são descartados em vez de sobrescrever o estado atual.
type ApplyPaymentEventUseCase struct {
	Leads    entity.LeadRepositoryInterface
	Producer queue.NotificationProducerInterface // opcional; nil desliga a notificação
}

func NewApplyPaymentEventUseCase(leads entity.LeadRepositoryInterface, producer queue.NotificationProducerInterface) *ApplyPaymentEventUseCase {
	return &ApplyPaymentEventUseCase{Leads: leads, Producer: producer}
}

// Execute retorna applied=false quando o evento foi reconhecido mas
// descartado (replay ou fora de ordem). ErrLeadNotFound sobe para o handler
// responder 404.
func (uc *ApplyPaymentEventUseCase) Execute(ctx context.Context, ev PaymentEvent) (bool, error) {
	log := logrus.WithFields(logrus.Fields{
		"provider": ev.Provider,
		"lead_id":  ev.LeadID,
		"event_id": ev.EventID,
	})

	lead, err := uc.Leads.FindByID(ctx, ev.LeadID)
	if err != nil {
		return false, err
	}

	if lead.LastEventID != nil && *lead.LastEventID == ev.EventID {
		log.Info("🔁 Evento já aplicado, ignorando replay")
		return false, nil
	}
	if lead.LastEventAt != nil && ev.OccurredAt.Before(*lead.LastEventAt) {
		log.Infof("⏭️ Evento mais antigo que o estado atual (%s < %s), ignorando", ev.OccurredAt, *lead.LastEventAt)
		return false, nil
	}

	applied, err := uc.Leads.ApplyPaymentEvent(ctx, entity.PaymentUpdate{
		LeadID:     ev.LeadID,
		Status:     ev.Status,
		Confirmed:  ev.Confirmed,
		PaymentID:  ev.PaymentID,
		EventID:    ev.EventID,
		OccurredAt: ev.OccurredAt,
	})
	if err != nil {
		return false, fmt.Errorf("erro ao aplicar evento de pagamento: %w", err)
	}
	if !applied {
		// A condição do UPDATE barrou uma corrida entre webhooks
		log.Info("⏭️ Escrita descartada pela condição de ordenação")
		return false, nil
	}

	log.Infof("💰 Pagamento do lead atualizado para %s (confirmado=%t)", ev.Status, ev.Confirmed)

	// Notifica só na transição para confirmado. Falha na fila não derruba o
	// webhook: o estado no banco é o que vale, o provedor não deve reenviar.
	if ev.Confirmed && !lead.PaymentConfirmed && uc.Producer != nil {
		payload := queue.PaymentConfirmedPayload{
			LeadID:      lead.ID,
			Name:        lead.Name,
			Email:       lead.Email,
			PaymentID:   ev.PaymentID,
			Provider:    ev.Provider,
			ConfirmedAt: ev.OccurredAt,
		}
		if err := uc.Producer.PublishPaymentConfirmed(ctx, payload); err != nil {
			log.Warnf("⚠️ Confirmado no banco, mas falha ao publicar notificação: %v", err)
		}
	}

	return true, nil
}
