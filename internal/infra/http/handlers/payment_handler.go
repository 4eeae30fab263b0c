package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/mentisiq/funnel-api/internal/entity"
	"github.com/mentisiq/funnel-api/internal/session"
	"github.com/mentisiq/funnel-api/internal/usecase"
)

type PaymentHandler struct {
	Leads    entity.LeadRepositoryInterface
	AwaitUC  *usecase.AwaitConfirmationUseCase
	Sessions *session.Store
}

func NewPaymentHandler(leads entity.LeadRepositoryInterface, awaitUC *usecase.AwaitConfirmationUseCase, sessions *session.Store) *PaymentHandler {
	return &PaymentHandler{Leads: leads, AwaitUC: awaitUC, Sessions: sessions}
}

// HandleGetStatus é a consulta pontual que a página de espera usa a cada
// verificação.
func (h *PaymentHandler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadId")
	if !usecase.IsCanonicalLeadID(leadID) {
		writeError(w, http.StatusBadRequest, "ID do lead inválido")
		return
	}

	lead, err := h.Leads.FindByID(r.Context(), leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "Lead não encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "Erro ao consultar pagamento")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"lead_id":           lead.ID,
		"payment_confirmed": lead.PaymentConfirmed,
		"payment_status":    lead.PaymentStatus,
	})
}

// HandleWait segura a requisição enquanto o loop de verificação roda: até 12
// checagens em intervalo fixo, cancelado junto com a conexão do cliente.
func (h *PaymentHandler) HandleWait(w http.ResponseWriter, r *http.Request) {
	sess := visitorSession(w, r, h.Sessions)

	outcome, err := h.AwaitUC.Execute(r.Context(), usecase.ResolveLeadInput{
		Path:    "/obrigado",
		Query:   r.URL.Query(),
		Session: sess,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Cliente desistiu; nada a responder
			return
		}
		logrus.Errorf("❌ Erro na espera de confirmação: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro ao verificar pagamento")
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}
