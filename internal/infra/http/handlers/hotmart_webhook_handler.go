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

type HotmartWebhookHandler struct {
	ApplyUC *usecase.ApplyPaymentEventUseCase
}

func NewHotmartWebhookHandler(applyUC *usecase.ApplyPaymentEventUseCase) *HotmartWebhookHandler {
	return &HotmartWebhookHandler{ApplyUC: applyUC}
}

// hotmartPayload é o recorte do evento que o funil consome. O id do lead
// viaja em data.purchase.origin.sck conforme a doc da Hotmart, com fallback
// para purchase.sck e para o metadata custom.
type hotmartPayload struct {
	ID           string `json:"id"`
	Event        string `json:"event"` // PURCHASE_COMPLETE, PURCHASE_APPROVED, ...
	CreationDate int64  `json:"creation_date"`
	Data         struct {
		Buyer struct {
			Email string `json:"email"`
		} `json:"buyer"`
		Purchase struct {
			Transaction string `json:"transaction"`
			OrderID     string `json:"order_id"`
			Status      string `json:"status"`
			Sck         string `json:"sck"`
			Origin      struct {
				Sck string `json:"sck"`
			} `json:"origin"`
			Metadata struct {
				LeadID string `json:"leadId"`
			} `json:"metadata"`
		} `json:"purchase"`
	} `json:"data"`
}

func (p *hotmartPayload) leadID() string {
	if p.Data.Purchase.Origin.Sck != "" {
		return p.Data.Purchase.Origin.Sck
	}
	if p.Data.Purchase.Sck != "" {
		return p.Data.Purchase.Sck
	}
	return p.Data.Purchase.Metadata.LeadID
}

func (h *HotmartWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var payload hotmartPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	leadID := payload.leadID()
	logrus.Infof("📨 Webhook Hotmart: evento=%s status=%s lead=%s", payload.Event, payload.Data.Purchase.Status, leadID)

	// Guarda contra o template de redirect sem substituição: um {sck}
	// literal (ou qualquer coisa fora do formato canônico) é payload malformado.
	if !usecase.IsCanonicalLeadID(leadID) {
		writeError(w, http.StatusBadRequest, "No leadId provided")
		return
	}

	status, confirmed := usecase.MapHotmartEvent(payload.Event, payload.Data.Purchase.Status)

	paymentID := payload.Data.Purchase.Transaction
	if paymentID == "" {
		paymentID = payload.Data.Purchase.OrderID
	}

	eventID := payload.ID
	if eventID == "" {
		eventID = fmt.Sprintf("%s:%s", payload.Event, paymentID)
	}

	occurredAt := time.Now()
	if payload.CreationDate > 0 {
		occurredAt = time.UnixMilli(payload.CreationDate)
	}

	applied, err := h.ApplyUC.Execute(r.Context(), usecase.PaymentEvent{
		Provider:   "hotmart",
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
		logrus.Errorf("❌ Erro no webhook Hotmart: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update lead")
		return
	}

	middleware.RecordWebhookEvent("hotmart", status)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"applied": applied,
	})
}
