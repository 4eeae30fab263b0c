package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mentisiq/funnel-api/internal/entity"
	"github.com/mentisiq/funnel-api/internal/score"
	"github.com/mentisiq/funnel-api/internal/session"
	"github.com/mentisiq/funnel-api/internal/usecase"
)

// ResultsHandler monta o relatório interpretado da página de resultados.
// Nunca trava o visitante: se o banco falhar ou o id não resolver, cai para
// o espelho local da sessão antes de desistir.
type ResultsHandler struct {
	ResolverUC *usecase.ResolveLeadUseCase
	Leads      entity.LeadRepositoryInterface
	Results    entity.TestResultRepositoryInterface
	Sessions   *session.Store
}

func NewResultsHandler(
	resolverUC *usecase.ResolveLeadUseCase,
	leads entity.LeadRepositoryInterface,
	results entity.TestResultRepositoryInterface,
	sessions *session.Store,
) *ResultsHandler {
	return &ResultsHandler{
		ResolverUC: resolverUC,
		Leads:      leads,
		Results:    results,
		Sessions:   sessions,
	}
}

type resultsResponse struct {
	Report           score.Report `json:"report"`
	LeadID           string       `json:"lead_id,omitempty"`
	PaymentConfirmed bool         `json:"payment_confirmed"`
	PaymentStatus    string       `json:"payment_status,omitempty"`
	CanonicalURL     string       `json:"canonical_url,omitempty"`
	Degraded         bool         `json:"degraded,omitempty"`
	Warning          string       `json:"warning,omitempty"`
}

func (h *ResultsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	sess := visitorSession(w, r, h.Sessions)

	resolution, err := h.ResolverUC.Execute(r.Context(), usecase.ResolveLeadInput{
		Path:    "/resultado",
		Query:   r.URL.Query(),
		Session: sess,
	})
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":    "ID do lead não encontrado ou inválido.",
			"redirect": "/",
		})
		return
	}

	// Modo degradado: nenhum id resolveu, mas a sessão guarda o placar
	if resolution.LocalResults != nil {
		local := resolution.LocalResults
		writeJSON(w, http.StatusOK, resultsResponse{
			Report:   score.BuildReport(local.Score, local.TotalQuestions),
			LeadID:   local.LeadID,
			Degraded: true,
		})
		return
	}

	resp := resultsResponse{
		LeadID:       resolution.LeadID,
		CanonicalURL: resolution.CorrectedURL,
	}

	result, err := h.Results.LatestByLeadID(r.Context(), resolution.LeadID)
	if err != nil {
		if !errors.Is(err, entity.ErrResultNotFound) {
			logrus.Errorf("❌ Erro ao carregar resultado do lead %s: %v", resolution.LeadID, err)
		}
		// Fallback local mesmo com id resolvido
		if local := sess.LastTestResults(); local != nil {
			resp.Report = score.BuildReport(local.Score, local.TotalQuestions)
			resp.Degraded = true
			resp.Warning = "Resultados carregados do cache local."
			writeJSON(w, http.StatusOK, resp)
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":    "Não encontramos resultados de teste para este ID.",
			"redirect": "/",
		})
		return
	}

	resp.Report = score.BuildReport(result.Score, result.TotalQuestions)

	// payment_confirmed controla o acesso ao relatório completo; melhor
	// esforço, a página renderiza o placar mesmo sem essa leitura.
	if lead, err := h.Leads.FindByID(r.Context(), resolution.LeadID); err == nil {
		resp.PaymentConfirmed = lead.PaymentConfirmed
		resp.PaymentStatus = lead.PaymentStatus
	}

	writeJSON(w, http.StatusOK, resp)
}
