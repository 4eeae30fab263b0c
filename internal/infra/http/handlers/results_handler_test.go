package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mentisiq/funnel-api/internal/entity"
	"github.com/mentisiq/funnel-api/internal/session"
	"github.com/mentisiq/funnel-api/internal/usecase"
)

func TestResultsHandlerResolvedLead(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", mock.Anything, leadA).
		Return(&entity.Lead{ID: leadA, PaymentConfirmed: true, PaymentStatus: entity.PaymentApproved}, nil)

	mockResults := new(MockTestResultRepository)
	mockResults.On("LatestByLeadID", mock.Anything, leadA).
		Return(&entity.TestResult{LeadID: leadA, Score: 12, TotalQuestions: 16}, nil)

	handler := NewResultsHandler(
		usecase.NewResolveLeadUseCase(mockRepo), mockRepo, mockResults, session.NewStore(time.Hour),
	)

	req := httptest.NewRequest(http.MethodGet, "/resultado?leadId="+leadA, nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp resultsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, leadA, resp.LeadID)
	assert.Equal(t, 12, resp.Report.Score)
	assert.Equal(t, 115, resp.Report.IQ) // 70 + 75*0.6
	assert.True(t, resp.PaymentConfirmed)
	assert.False(t, resp.Degraded)
}

func TestResultsHandlerDegradedFromSession(t *testing.T) {
	handler := NewResultsHandler(
		usecase.NewResolveLeadUseCase(new(MockLeadRepository)),
		new(MockLeadRepository), new(MockTestResultRepository), session.NewStore(time.Hour),
	)

	// Primeira passada cria a sessão e guarda o espelho local
	store := handler.Sessions
	token, sess := store.GetOrCreate("")
	sess.SetLastTestResults(session.TestResults{Score: 9, TotalQuestions: 16})

	req := httptest.NewRequest(http.MethodGet, "/resultado", nil)
	req.Header.Set(SessionTokenHeader, token)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp resultsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Degraded)
	assert.Equal(t, 9, resp.Report.Score)
	assert.False(t, resp.PaymentConfirmed)
}

func TestResultsHandlerUnresolvable(t *testing.T) {
	handler := NewResultsHandler(
		usecase.NewResolveLeadUseCase(new(MockLeadRepository)),
		new(MockLeadRepository), new(MockTestResultRepository), session.NewStore(time.Hour),
	)

	req := httptest.NewRequest(http.MethodGet, "/resultado?leadId={leadId}", nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/", resp["redirect"])
}

func TestResultsHandlerNoResultForLead(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockResults := new(MockTestResultRepository)
	mockResults.On("LatestByLeadID", mock.Anything, leadA).
		Return(nil, entity.ErrResultNotFound)

	handler := NewResultsHandler(
		usecase.NewResolveLeadUseCase(mockRepo), mockRepo, mockResults, session.NewStore(time.Hour),
	)

	req := httptest.NewRequest(http.MethodGet, "/resultado?leadId="+leadA, nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Não encontramos resultados")
}

func TestResultsHandlerDBFailureFallsBackToSession(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockResults := new(MockTestResultRepository)
	mockResults.On("LatestByLeadID", mock.Anything, leadA).
		Return(nil, errors.New("banco fora"))

	handler := NewResultsHandler(
		usecase.NewResolveLeadUseCase(mockRepo), mockRepo, mockResults, session.NewStore(time.Hour),
	)

	token, sess := handler.Sessions.GetOrCreate("")
	sess.SetLastTestResults(session.TestResults{Score: 7, TotalQuestions: 16, LeadID: leadA})

	req := httptest.NewRequest(http.MethodGet, "/resultado?leadId="+leadA, nil)
	req.Header.Set(SessionTokenHeader, token)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp resultsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Degraded)
	assert.Equal(t, 7, resp.Report.Score)
	assert.NotEmpty(t, resp.Warning)
}

func TestPaymentStatusHandler(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", mock.Anything, leadA).
		Return(&entity.Lead{ID: leadA, PaymentConfirmed: true, PaymentStatus: entity.PaymentApproved}, nil)

	handler := NewPaymentHandler(mockRepo, nil, session.NewStore(time.Hour))

	router := chi.NewRouter()
	router.Get("/payments/{leadId}/status", handler.HandleGetStatus)

	req := httptest.NewRequest(http.MethodGet, "/payments/"+leadA+"/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["payment_confirmed"])
	assert.Equal(t, "approved", resp["payment_status"])

	// Id fora do formato canônico
	req = httptest.NewRequest(http.MethodGet, "/payments/nope/status", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
