package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mentisiq/funnel-api/internal/entity"
	"github.com/mentisiq/funnel-api/internal/infra/integration/mercadopago"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) (bool, error) {
	args := m.Called(ctx, lead)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if lead := args.Get(0); lead != nil {
		return lead.(*entity.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadRepository) FindByPaymentID(ctx context.Context, paymentID string) (*entity.Lead, error) {
	args := m.Called(ctx, paymentID)
	if lead := args.Get(0); lead != nil {
		return lead.(*entity.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadRepository) ApplyPaymentEvent(ctx context.Context, update entity.PaymentUpdate) (bool, error) {
	args := m.Called(ctx, update)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) ListWithLatestResult(ctx context.Context) ([]*entity.LeadWithScore, error) {
	args := m.Called(ctx)
	if leads := args.Get(0); leads != nil {
		return leads.([]*entity.LeadWithScore), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadRepository) Stats(ctx context.Context) (*entity.FunnelStats, error) {
	args := m.Called(ctx)
	if stats := args.Get(0); stats != nil {
		return stats.(*entity.FunnelStats), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTestResultRepository
type MockTestResultRepository struct {
	mock.Mock
}

func (m *MockTestResultRepository) Create(ctx context.Context, result *entity.TestResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockTestResultRepository) LatestByLeadID(ctx context.Context, leadID string) (*entity.TestResult, error) {
	args := m.Called(ctx, leadID)
	if result := args.Get(0); result != nil {
		return result.(*entity.TestResult), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error) {
	args := m.Called(ctx, paymentID)
	if payment := args.Get(0); payment != nil {
		return payment.(*mercadopago.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}
