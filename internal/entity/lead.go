package entity

import (
	"context"
	"time"
)

// Status interno de pagamento do lead.
const (
	PaymentPending   = "pending"
	PaymentApproved  = "approved"
	PaymentRefunded  = "refunded"
	PaymentCancelled = "cancelled"
)

type Lead struct {
	ID               string     `json:"id"`
	Name             string     `json:"name,omitempty"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	PaymentStatus    string     `json:"payment_status"` // pending, approved, refunded, cancelled
	PaymentConfirmed bool       `json:"payment_confirmed"`
	PaymentID        *string    `json:"payment_id,omitempty"`
	LastEventID      *string    `json:"last_event_id,omitempty"`
	LastEventAt      *time.Time `json:"last_event_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// PaymentUpdate é a mutação única que um webhook aplica sobre o lead.
// EventID/OccurredAt servem para descartar replays e eventos fora de ordem.
type PaymentUpdate struct {
	LeadID     string
	Status     string
	Confirmed  bool
	PaymentID  string
	EventID    string
	OccurredAt time.Time
}

// LeadWithScore é a projeção usada pela listagem administrativa.
type LeadWithScore struct {
	Lead
	Score          *int `json:"score,omitempty"`
	TotalQuestions *int `json:"total_questions,omitempty"`
}

type FunnelStats struct {
	TotalLeads        int `json:"total_leads"`
	CompletedTests    int `json:"completed_tests"`
	ConfirmedPayments int `json:"confirmed_payments"`
}

type LeadRepositoryInterface interface {
	// Upsert insere o lead ou, se o email já existir, devolve o registro
	// existente. Retorna true quando o email já estava cadastrado.
	Upsert(ctx context.Context, lead *Lead) (bool, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*Lead, error)
	// ApplyPaymentEvent grava o status de pagamento de forma condicional:
	// retorna false se o evento já foi aplicado ou é mais antigo que o atual.
	ApplyPaymentEvent(ctx context.Context, update PaymentUpdate) (bool, error)
	ListWithLatestResult(ctx context.Context) ([]*LeadWithScore, error)
	Stats(ctx context.Context) (*FunnelStats, error)
}
