package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mentisiq/funnel-api/internal/entity"
)

type TestResultRepository struct {
	DB *sql.DB
}

func NewTestResultRepository(db *sql.DB) *TestResultRepository {
	return &TestResultRepository{DB: db}
}

func (r *TestResultRepository) Create(ctx context.Context, result *entity.TestResult) error {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return fmt.Errorf("erro ao serializar respostas: %w", err)
	}

	query := `
		INSERT INTO iq_test_results (lead_id, answers, score, total_questions)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = r.DB.QueryRowContext(ctx, query,
		result.LeadID,
		answers,
		result.Score,
		result.TotalQuestions,
	).Scan(&result.ID, &result.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// FK violada: o lead_id não existe
			return entity.ErrLeadNotFound
		}
		return fmt.Errorf("erro ao gravar resultado do teste: %w", err)
	}

	return nil
}

// LatestByLeadID devolve o resultado mais recente do lead. Um lead pode ter
// mais de uma tentativa; a leitura sempre pega a última por created_at.
func (r *TestResultRepository) LatestByLeadID(ctx context.Context, leadID string) (*entity.TestResult, error) {
	query := `
		SELECT id, lead_id, answers, score, total_questions, created_at
		FROM iq_test_results
		WHERE lead_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var (
		result  entity.TestResult
		rawJSON []byte
	)
	err := r.DB.QueryRowContext(ctx, query, leadID).Scan(
		&result.ID,
		&result.LeadID,
		&rawJSON,
		&result.Score,
		&result.TotalQuestions,
		&result.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar resultado: %w", err)
	}

	if err := json.Unmarshal(rawJSON, &result.Answers); err != nil {
		return nil, fmt.Errorf("erro ao decodificar respostas: %w", err)
	}

	return &result, nil
}
