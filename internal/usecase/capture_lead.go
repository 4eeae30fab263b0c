package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mentisiq/funnel-api/internal/entity"
)

type CaptureLeadInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CaptureLeadOutput struct {
	LeadID string `json:"lead_id"`
	// Existing indica que o email já tinha um teste iniciado; o front
	// redireciona para o teste existente em vez de criar outro lead.
	Existing bool   `json:"existing"`
	TestURL  string `json:"test_url"`
}

type CaptureLeadUseCase struct {
	Leads entity.LeadRepositoryInterface
}

func NewCaptureLeadUseCase(leads entity.LeadRepositoryInterface) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{Leads: leads}
}

func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*CaptureLeadOutput, error) {
	if errs := ValidateCaptureLeadInput(input); len(errs) > 0 {
		return nil, errs
	}

	lead := &entity.Lead{
		Name:  strings.TrimSpace(input.Name),
		Email: strings.ToLower(strings.TrimSpace(input.Email)),
		Phone: strings.TrimSpace(input.Phone),
	}

	existing, err := uc.Leads.Upsert(ctx, lead)
	if err != nil {
		return nil, fmt.Errorf("erro ao capturar lead: %w", err)
	}

	if existing {
		logrus.Infof("🔁 Lead já cadastrado para %s, reaproveitando id %s", lead.Email, lead.ID)
	} else {
		logrus.Infof("✨ Novo lead capturado: %s", lead.ID)
	}

	return &CaptureLeadOutput{
		LeadID:   lead.ID,
		Existing: existing,
		TestURL:  fmt.Sprintf("/teste?leadId=%s", lead.ID),
	}, nil
}
