package mercadopago

import "time"

// Payment é o recorte da resposta de GET /v1/payments/{id} que o funil usa.
// external_reference carrega o identificador do lead embutido no checkout.
type Payment struct {
	ID                int64      `json:"id"`
	Status            string     `json:"status"` // approved, pending, rejected, refunded, cancelled...
	StatusDetail      string     `json:"status_detail"`
	ExternalReference string     `json:"external_reference"`
	PaymentMethodID   string     `json:"payment_method_id"`
	TransactionAmount float64    `json:"transaction_amount"`
	DateCreated       *time.Time `json:"date_created"`
	DateApproved      *time.Time `json:"date_approved"`
}
