package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mentisiq/funnel-api/internal/entity"
	"github.com/mentisiq/funnel-api/internal/usecase"
)

const leadA = "11111111-1111-4111-8111-111111111111"

func hotmartBody(event, status, sck string) string {
	return fmt.Sprintf(`{
		"id": "evt-abc",
		"event": %q,
		"creation_date": 1700000000000,
		"data": {
			"buyer": {"email": "maria@example.com"},
			"purchase": {
				"transaction": "HP12345",
				"status": %q,
				"origin": {"sck": %q}
			}
		}
	}`, event, status, sck)
}

func postHotmart(t *testing.T, handler *HotmartWebhookHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/hotmart", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestHotmartWebhookEventBeatsStatus(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", mock.Anything, leadA).
		Return(&entity.Lead{ID: leadA, PaymentStatus: entity.PaymentPending}, nil)
	mockRepo.On("ApplyPaymentEvent", mock.Anything, mock.MatchedBy(func(u entity.PaymentUpdate) bool {
		return u.Status == entity.PaymentApproved && u.Confirmed && u.PaymentID == "HP12345" && u.EventID == "evt-abc"
	})).Return(true, nil)

	handler := NewHotmartWebhookHandler(usecase.NewApplyPaymentEventUseCase(mockRepo, nil))

	// Evento aprovado com status ainda pending: o evento vence
	rec := postHotmart(t, handler, hotmartBody("PURCHASE_APPROVED", "pending", leadA))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, true, resp["applied"])
	mockRepo.AssertExpectations(t)
}

func TestHotmartWebhookRejectsPlaceholderSck(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	handler := NewHotmartWebhookHandler(usecase.NewApplyPaymentEventUseCase(mockRepo, nil))

	rec := postHotmart(t, handler, hotmartBody("PURCHASE_APPROVED", "approved", "{sck}"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No leadId provided")
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestHotmartWebhookMissingLeadID(t *testing.T) {
	handler := NewHotmartWebhookHandler(usecase.NewApplyPaymentEventUseCase(new(MockLeadRepository), nil))

	rec := postHotmart(t, handler, hotmartBody("PURCHASE_APPROVED", "approved", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHotmartWebhookLeadNotFound(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", mock.Anything, leadA).Return(nil, entity.ErrLeadNotFound)

	handler := NewHotmartWebhookHandler(usecase.NewApplyPaymentEventUseCase(mockRepo, nil))

	rec := postHotmart(t, handler, hotmartBody("PURCHASE_APPROVED", "approved", leadA))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lead not found")
}

func TestHotmartWebhookReplayReportsNotApplied(t *testing.T) {
	eventID := "evt-abc"
	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", mock.Anything, leadA).
		Return(&entity.Lead{ID: leadA, LastEventID: &eventID, PaymentConfirmed: true}, nil)

	handler := NewHotmartWebhookHandler(usecase.NewApplyPaymentEventUseCase(mockRepo, nil))

	rec := postHotmart(t, handler, hotmartBody("PURCHASE_APPROVED", "approved", leadA))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["applied"])
	mockRepo.AssertNotCalled(t, "ApplyPaymentEvent", mock.Anything, mock.Anything)
}

func TestHotmartWebhookInvalidJSON(t *testing.T) {
	handler := NewHotmartWebhookHandler(usecase.NewApplyPaymentEventUseCase(new(MockLeadRepository), nil))

	rec := postHotmart(t, handler, "{nope")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
