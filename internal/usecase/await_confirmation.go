package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mentisiq/funnel-api/internal/entity"
)

const (
	// 12 tentativas a cada 5s = 1 minuto de espera pelo webhook
	DefaultMaxAttempts          = 12
	DefaultConfirmationInterval = 5 * time.Second
)

type ConfirmationOutcome struct {
	Confirmed   bool   `json:"confirmed"`
	LeadID      string `json:"lead_id,omitempty"`
	Attempts    int    `json:"attempts"`
	RedirectURL string `json:"redirect_url"`
}

// AwaitConfirmationUseCase é a espera pós-checkout: verifica periodicamente
// se o webhook já confirmou o pagamento, com no máximo MaxAttempts
// verificações e uma única em voo por vez. Esgotadas as tentativas, redireciona
// para os resultados mesmo assim (a página de resultados não exige
// confirmação para mostrar o placar) ou para a landing se nenhum id resolveu.
type AwaitConfirmationUseCase struct {
	Leads       entity.LeadRepositoryInterface
	Resolver    *ResolveLeadUseCase
	MaxAttempts int
	Interval    time.Duration
}

func NewAwaitConfirmationUseCase(leads entity.LeadRepositoryInterface, resolver *ResolveLeadUseCase) *AwaitConfirmationUseCase {
	return &AwaitConfirmationUseCase{
		Leads:       leads,
		Resolver:    resolver,
		MaxAttempts: DefaultMaxAttempts,
		Interval:    DefaultConfirmationInterval,
	}
}

func (uc *AwaitConfirmationUseCase) Execute(ctx context.Context, input ResolveLeadInput) (*ConfirmationOutcome, error) {
	ticker := time.NewTicker(uc.Interval)
	defer ticker.Stop()

	var leadID string

	// Primeira verificação imediata, as seguintes no ritmo do ticker.
	for attempt := 1; ; attempt++ {
		if id := uc.resolveOnce(ctx, input); id != "" {
			leadID = id
		}

		if leadID != "" {
			lead, err := uc.Leads.FindByID(ctx, leadID)
			if err != nil && !errors.Is(err, entity.ErrLeadNotFound) {
				logrus.Warnf("⚠️ Falha ao verificar pagamento (tentativa %d/%d): %v", attempt, uc.MaxAttempts, err)
			}
			if err == nil && lead.PaymentConfirmed {
				input.Session.ClearPendingLeadID()
				return &ConfirmationOutcome{
					Confirmed:   true,
					LeadID:      leadID,
					Attempts:    attempt,
					RedirectURL: fmt.Sprintf("/resultado?leadId=%s", leadID),
				}, nil
			}
		}

		if attempt >= uc.MaxAttempts {
			if leadID != "" {
				// Otimista: o relatório resolve o placar sem confirmação
				return &ConfirmationOutcome{
					LeadID:      leadID,
					Attempts:    attempt,
					RedirectURL: fmt.Sprintf("/resultado?leadId=%s", leadID),
				}, nil
			}
			return &ConfirmationOutcome{
				Attempts:    attempt,
				RedirectURL: "/",
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (uc *AwaitConfirmationUseCase) resolveOnce(ctx context.Context, input ResolveLeadInput) string {
	res, err := uc.Resolver.Execute(ctx, input)
	if err != nil || res == nil {
		return ""
	}
	return res.LeadID
}
