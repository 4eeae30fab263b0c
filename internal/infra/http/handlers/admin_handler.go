package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mentisiq/funnel-api/internal/entity"
)

// AdminHandler expõe a visão administrativa do funil: leads mais recentes
// primeiro, cada um com o placar do último teste, mais os agregados. Somente
// leitura.
type AdminHandler struct {
	Leads entity.LeadRepositoryInterface
}

func NewAdminHandler(leads entity.LeadRepositoryInterface) *AdminHandler {
	return &AdminHandler{Leads: leads}
}

func (h *AdminHandler) HandleListLeads(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Leads.Stats(r.Context())
	if err != nil {
		logrus.Errorf("❌ Erro ao agregar estatísticas: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro ao carregar estatísticas")
		return
	}

	leads, err := h.Leads.ListWithLatestResult(r.Context())
	if err != nil {
		logrus.Errorf("❌ Erro ao listar leads: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro ao listar leads")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stats": stats,
		"leads": leads,
	})
}
