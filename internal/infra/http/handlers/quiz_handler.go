package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mentisiq/funnel-api/internal/infra/http/middleware"
	"github.com/mentisiq/funnel-api/internal/quiz"
	"github.com/mentisiq/funnel-api/internal/session"
	"github.com/mentisiq/funnel-api/internal/usecase"
)

// Runs inativos além deste prazo são descartados pela limpeza periódica.
const quizRunTTL = time.Hour

// QuizHandler conduz o teste questão a questão. Cada visitante ganha um run
// com sua própria máquina de estados; avançar exige uma resposta e a última
// resposta dispara o cálculo e a persistência do resultado.
type QuizHandler struct {
	Bank     quiz.Bank
	SubmitUC *usecase.SubmitQuizUseCase
	Sessions *session.Store

	mu   sync.Mutex
	runs map[string]*quizRun
}

// quizRun serializa o acesso ao runner: duplo clique ou retry do cliente
// gera requisições concorrentes para o mesmo run.
type quizRun struct {
	mu           sync.Mutex
	runner       *quiz.Runner
	leadID       string
	sessionToken string
	lastSeen     time.Time
}

func NewQuizHandler(bank quiz.Bank, submitUC *usecase.SubmitQuizUseCase, sessions *session.Store) *QuizHandler {
	h := &QuizHandler{
		Bank:     bank,
		SubmitUC: submitUC,
		Sessions: sessions,
		runs:     make(map[string]*quizRun),
	}
	go h.cleanup()
	return h
}

type questionView struct {
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Selected string   `json:"selected,omitempty"`
	Progress float64  `json:"progress"`
}

// view lê o estado do runner; o chamador segura run.mu.
func (h *QuizHandler) view(run *quizRun) questionView {
	idx, q, selected := run.runner.Current()
	return questionView{
		Index:    idx,
		Total:    run.runner.Total(),
		Question: q.Text,
		Options:  q.Options,
		Selected: selected,
		Progress: run.runner.Progress(),
	}
}

func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	var input struct {
		LeadID string `json:"lead_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if !usecase.IsCanonicalLeadID(input.LeadID) {
		writeError(w, http.StatusBadRequest, "ID do lead não encontrado")
		return
	}

	sess := visitorSession(w, r, h.Sessions)
	sess.SetCurrentLeadID(input.LeadID)

	token := w.Header().Get(SessionTokenHeader)
	quizID := uuid.New().String()

	run := &quizRun{
		runner:       quiz.NewRunner(h.Bank),
		leadID:       input.LeadID,
		sessionToken: token,
		lastSeen:     time.Now(),
	}

	view := h.view(run) // ainda não publicado no mapa, sem concorrência

	h.mu.Lock()
	h.runs[quizID] = run
	h.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{
		"quiz_id":  quizID,
		"question": view,
	})
}

func (h *QuizHandler) run(w http.ResponseWriter, r *http.Request) *quizRun {
	quizID := chi.URLParam(r, "quizId")

	h.mu.Lock()
	run, ok := h.runs[quizID]
	if ok {
		run.lastSeen = time.Now()
	}
	h.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Teste não encontrado")
		return nil
	}
	return run
}

func (h *QuizHandler) drop(quizID string) {
	h.mu.Lock()
	delete(h.runs, quizID)
	h.mu.Unlock()
}

func (h *QuizHandler) evictIdle(cutoff time.Time) {
	h.mu.Lock()
	for id, run := range h.runs {
		if run.lastSeen.Before(cutoff) {
			delete(h.runs, id)
		}
	}
	h.mu.Unlock()
}

func (h *QuizHandler) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		h.evictIdle(time.Now().Add(-quizRunTTL))
	}
}

func (h *QuizHandler) Current(w http.ResponseWriter, r *http.Request) {
	run := h.run(w, r)
	if run == nil {
		return
	}

	run.mu.Lock()
	if run.runner.Completed() {
		run.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"completed": true})
		return
	}
	view := h.view(run)
	run.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"question": view})
}

func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	run := h.run(w, r)
	if run == nil {
		return
	}

	var input struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	run.mu.Lock()
	completed, err := run.runner.Answer(input.Answer)
	if err != nil {
		run.mu.Unlock()
		if errors.Is(err, quiz.ErrNoSelection) {
			writeError(w, http.StatusBadRequest, "Selecione uma resposta antes de continuar")
			return
		}
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	if !completed {
		view := h.view(run)
		run.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{
			"completed": false,
			"question":  view,
		})
		return
	}

	answers := run.runner.Answers()
	run.mu.Unlock()

	// Última resposta registrada: fecha a tentativa e descarta o run
	_, sess := h.Sessions.GetOrCreate(run.sessionToken)
	output := h.SubmitUC.Execute(r.Context(), sess, run.leadID, answers)
	middleware.RecordQuizCompleted()
	h.drop(chi.URLParam(r, "quizId"))

	writeJSON(w, http.StatusOK, map[string]any{
		"completed": true,
		"result":    output,
	})
}

func (h *QuizHandler) Previous(w http.ResponseWriter, r *http.Request) {
	run := h.run(w, r)
	if run == nil {
		return
	}

	run.mu.Lock()
	if _, _, _, err := run.runner.Previous(); err != nil {
		run.mu.Unlock()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view := h.view(run)
	run.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"question": view})
}
