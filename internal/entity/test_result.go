package entity

import (
	"context"
	"time"
)

// TestResult é uma tentativa concluída do teste. Imutável após a criação;
// a leitura sempre pega a mais recente por created_at.
type TestResult struct {
	ID             string         `json:"id"`
	LeadID         string         `json:"lead_id"`
	Answers        map[int]string `json:"answers"` // índice da questão -> opção escolhida
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	CreatedAt      time.Time      `json:"created_at"`
}

type TestResultRepositoryInterface interface {
	Create(ctx context.Context, result *TestResult) error
	LatestByLeadID(ctx context.Context, leadID string) (*TestResult, error)
}
