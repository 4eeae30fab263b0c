package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mentisiq/funnel-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Upsert insere o lead ou devolve o registro existente quando o email já foi
// cadastrado. A unicidade fica no banco (constraint em email), então não há
// janela de corrida entre verificação e inserção. O (xmax <> 0) indica se a
// linha veio de um UPDATE, ou seja, se o lead já existia.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) (bool, error) {
	query := `
		INSERT INTO leads (name, email, phone)
		VALUES ($1, $2, $3)
		ON CONFLICT (email)
		DO UPDATE SET
			name = COALESCE(NULLIF(EXCLUDED.name, ''), leads.name),
			phone = COALESCE(NULLIF(EXCLUDED.phone, ''), leads.phone),
			updated_at = NOW()
		RETURNING id, payment_status, payment_confirmed, created_at, updated_at, (xmax <> 0)
	`

	var existing bool
	err := r.DB.QueryRowContext(
		ctx,
		query,
		nullString(lead.Name),
		lead.Email,
		nullString(lead.Phone),
	).Scan(
		&lead.ID,
		&lead.PaymentStatus,
		&lead.PaymentConfirmed,
		&lead.CreatedAt,
		&lead.UpdatedAt,
		&existing,
	)
	if err != nil {
		return false, fmt.Errorf("erro ao gravar lead: %w", err)
	}

	return existing, nil
}

const leadColumns = `
	id, COALESCE(name, ''), email, COALESCE(phone, ''),
	payment_status, payment_confirmed, payment_id,
	last_event_id, last_event_at, created_at, updated_at
`

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return r.scanLead(r.DB.QueryRowContext(ctx, query, id))
}

// FindByPaymentID localiza o lead pelo identificador de transação do provedor
// de pagamento. É o último recurso do resolvedor de identidade, quando o
// redirect do checkout só preservou o parâmetro transaction.
func (r *LeadRepository) FindByPaymentID(ctx context.Context, paymentID string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE payment_id = $1`
	return r.scanLead(r.DB.QueryRowContext(ctx, query, paymentID))
}

func (r *LeadRepository) scanLead(row *sql.Row) (*entity.Lead, error) {
	var lead entity.Lead
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.PaymentStatus,
		&lead.PaymentConfirmed,
		&lead.PaymentID,
		&lead.LastEventID,
		&lead.LastEventAt,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar lead: %w", err)
	}
	return &lead, nil
}

// ApplyPaymentEvent grava o status de pagamento de forma condicional: um
// evento já aplicado (mesmo event id) ou mais antigo que o último gravado não
// sobrescreve nada. Retorna false quando a escrita foi descartada.
func (r *LeadRepository) ApplyPaymentEvent(ctx context.Context, up entity.PaymentUpdate) (bool, error) {
	query := `
		UPDATE leads SET
			payment_status = $2,
			payment_confirmed = $3,
			payment_id = COALESCE(NULLIF($4, ''), payment_id),
			last_event_id = $5,
			last_event_at = $6,
			updated_at = NOW()
		WHERE id = $1
		  AND (last_event_id IS NULL OR last_event_id <> $5)
		  AND (last_event_at IS NULL OR last_event_at <= $6)
	`

	res, err := r.DB.ExecContext(ctx, query,
		up.LeadID,
		up.Status,
		up.Confirmed,
		up.PaymentID,
		up.EventID,
		up.OccurredAt,
	)
	if err != nil {
		return false, fmt.Errorf("erro ao atualizar pagamento do lead: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// ListWithLatestResult devolve os leads mais recentes primeiro, cada um com o
// placar do último teste concluído (se houver).
func (r *LeadRepository) ListWithLatestResult(ctx context.Context) ([]*entity.LeadWithScore, error) {
	query := `
		SELECT l.id, COALESCE(l.name, ''), l.email, COALESCE(l.phone, ''),
		       l.payment_status, l.payment_confirmed, l.payment_id,
		       l.created_at, l.updated_at,
		       r.score, r.total_questions
		FROM leads l
		LEFT JOIN LATERAL (
			SELECT score, total_questions
			FROM iq_test_results
			WHERE lead_id = l.id
			ORDER BY created_at DESC
			LIMIT 1
		) r ON true
		ORDER BY l.created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar leads: %w", err)
	}
	defer rows.Close()

	var out []*entity.LeadWithScore
	for rows.Next() {
		var l entity.LeadWithScore
		if err := rows.Scan(
			&l.ID,
			&l.Name,
			&l.Email,
			&l.Phone,
			&l.PaymentStatus,
			&l.PaymentConfirmed,
			&l.PaymentID,
			&l.CreatedAt,
			&l.UpdatedAt,
			&l.Score,
			&l.TotalQuestions,
		); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}

	return out, rows.Err()
}

func (r *LeadRepository) Stats(ctx context.Context) (*entity.FunnelStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM leads),
			(SELECT COUNT(DISTINCT lead_id) FROM iq_test_results),
			(SELECT COUNT(*) FROM leads WHERE payment_confirmed)
	`

	var stats entity.FunnelStats
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&stats.TotalLeads,
		&stats.CompletedTests,
		&stats.ConfirmedPayments,
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar estatísticas: %w", err)
	}
	return &stats, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
