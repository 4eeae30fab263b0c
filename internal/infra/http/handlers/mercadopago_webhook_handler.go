package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mentisiq/funnel-api/internal/entity"
	"github.com/mentisiq/funnel-api/internal/infra/http/middleware"
	"github.com/mentisiq/funnel-api/internal/usecase"
)

// MercadoPagoWebhookHandler processa as notificações do Mercado Pago. O
// payload só carrega o id do pagamento; os detalhes (status e o
// external_reference com o lead) vêm de uma consulta autenticada à API do
// provedor. Falha nessa consulta é terminal para o evento.
type MercadoPagoWebhookHandler struct {
	Gateway usecase.PaymentLookupGateway
	ApplyUC *usecase.ApplyPaymentEventUseCase
}

func NewMercadoPagoWebhookHandler(gateway usecase.PaymentLookupGateway, applyUC *usecase.ApplyPaymentEventUseCase) *MercadoPagoWebhookHandler {
	return &MercadoPagoWebhookHandler{Gateway: gateway, ApplyUC: applyUC}
}

type mercadoPagoNotification struct {
	ID          json.Number `json:"id"`
	Type        string      `json:"type"` // só "payment" interessa
	Action      string      `json:"action"`
	DateCreated *time.Time  `json:"date_created"`
	Data        struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

func (h *MercadoPagoWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var notification mercadoPagoNotification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Notificações de outros tipos (plan, invoice...) são só confirmadas
	if notification.Type != "payment" {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}

	paymentID := notification.Data.ID.String()
	if paymentID == "" {
		writeError(w, http.StatusBadRequest, "No payment id provided")
		return
	}

	payment, err := h.Gateway.GetPayment(r.Context(), paymentID)
	if err != nil {
		logrus.Errorf("❌ Erro ao buscar pagamento %s no Mercado Pago: %v", paymentID, err)
		middleware.RecordIntegrationError("mercadopago")
		writeError(w, http.StatusInternalServerError, "Failed to fetch payment details")
		return
	}

	leadID := payment.ExternalReference
	logrus.Infof("📨 Webhook Mercado Pago: pagamento=%s status=%s lead=%s", paymentID, payment.Status, leadID)

	if !usecase.IsCanonicalLeadID(leadID) {
		writeError(w, http.StatusBadRequest, "No leadId provided")
		return
	}

	status, confirmed := usecase.MapMercadoPagoStatus(payment.Status)

	eventID := notification.ID.String()
	if eventID == "" {
		eventID = fmt.Sprintf("%s:%s", notification.Action, paymentID)
	}

	occurredAt := time.Now()
	if payment.DateApproved != nil {
		occurredAt = *payment.DateApproved
	} else if notification.DateCreated != nil {
		occurredAt = *notification.DateCreated
	}

	applied, err := h.ApplyUC.Execute(r.Context(), usecase.PaymentEvent{
		Provider:   "mercadopago",
		EventID:    eventID,
		LeadID:     leadID,
		PaymentID:  paymentID,
		Status:     status,
		Confirmed:  confirmed,
		OccurredAt: occurredAt,
	})
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "Lead not found")
			return
		}
		logrus.Errorf("❌ Erro no webhook Mercado Pago: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update lead")
		return
	}

	middleware.RecordWebhookEvent("mercadopago", status)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"applied": applied,
	})
}
