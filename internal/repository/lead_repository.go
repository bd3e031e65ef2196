package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/connect-inmobiliaria/crm-service/internal/domain"
)

// LeadRepository encapsulates lead persistence. Update operations report the
// number of rows touched; updating by email is a blind overwrite of every
// matching row, which is the contract the legacy CRM clients rely on.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	List(ctx context.Context) ([]domain.Lead, error)
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	UpdateStatusByEmail(ctx context.Context, email string, status domain.LeadStatus, notes *string) (int64, error)
	UpdateStatusByID(ctx context.Context, id string, status domain.LeadStatus, notes *string) (int64, error)
	CountByStatus(ctx context.Context, status domain.LeadStatus) (int64, error)
}

type leadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository instantiates the postgres-backed repository.
func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &leadRepository{pool: pool}
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	const query = `
        INSERT INTO leads (name, email, phone, message, property_id, status, notes, priority)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Message,
		lead.PropertyID,
		lead.Status,
		lead.Notes,
		lead.Priority,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
}

func (r *leadRepository) List(ctx context.Context) ([]domain.Lead, error) {
	const query = `
        SELECT id, name, email, phone, message, property_id, status, notes, priority, created_at, updated_at
        FROM leads ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeads(rows)
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	const query = `
        SELECT id, name, email, phone, message, property_id, status, notes, priority, created_at, updated_at
        FROM leads WHERE id=$1`
	var lead domain.Lead
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Message,
		&lead.PropertyID,
		&lead.Status,
		&lead.Notes,
		&lead.Priority,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) UpdateStatusByEmail(ctx context.Context, email string, status domain.LeadStatus, notes *string) (int64, error) {
	const query = `
        UPDATE leads SET status=$1, notes=COALESCE($2, notes), updated_at=NOW()
        WHERE email=$3`
	cmd, err := r.pool.Exec(ctx, query, status, notes, email)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *leadRepository) UpdateStatusByID(ctx context.Context, id string, status domain.LeadStatus, notes *string) (int64, error) {
	const query = `
        UPDATE leads SET status=$1, notes=COALESCE($2, notes), updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, status, notes, id)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *leadRepository) CountByStatus(ctx context.Context, status domain.LeadStatus) (int64, error) {
	const query = `SELECT COUNT(*) FROM leads WHERE status=$1`
	var count int64
	if err := r.pool.QueryRow(ctx, query, status).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanLeads(rows pgx.Rows) ([]domain.Lead, error) {
	var result []domain.Lead
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.Name,
			&lead.Email,
			&lead.Phone,
			&lead.Message,
			&lead.PropertyID,
			&lead.Status,
			&lead.Notes,
			&lead.Priority,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, lead)
	}
	return result, rows.Err()
}
