package usecase

import (
	"context"

	"github.com/mentisiq/funnel-api/internal/infra/integration/mercadopago"
)

// PaymentLookupGateway é a consulta autenticada ao provedor de pagamento.
// O webhook do Mercado Pago só carrega o id do pagamento; os detalhes (e o
// external_reference com o lead) vêm daqui.
type PaymentLookupGateway interface {
	GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error)
}
