package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/connect-inmobiliaria/crm-service/internal/domain"
)

// LeadActivityRepository records audited changes on leads.
type LeadActivityRepository interface {
	Create(ctx context.Context, entry *domain.LeadActivity) error
	ListByLead(ctx context.Context, leadID string, limit int) ([]domain.LeadActivity, error)
}

type leadActivityRepository struct {
	pool *pgxpool.Pool
}

// NewLeadActivityRepository instantiates the postgres-backed repository.
func NewLeadActivityRepository(pool *pgxpool.Pool) LeadActivityRepository {
	return &leadActivityRepository{pool: pool}
}

func (r *leadActivityRepository) Create(ctx context.Context, entry *domain.LeadActivity) error {
	const query = `
        INSERT INTO lead_activity (lead_id, change_type, old_value, new_value)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.LeadID,
		entry.ChangeType,
		entry.OldValue,
		entry.NewValue,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *leadActivityRepository) ListByLead(ctx context.Context, leadID string, limit int) ([]domain.LeadActivity, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, lead_id, change_type, old_value, new_value, created_at
        FROM lead_activity WHERE lead_id=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, leadID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.LeadActivity
	for rows.Next() {
		var entry domain.LeadActivity
		if err := rows.Scan(
			&entry.ID,
			&entry.LeadID,
			&entry.ChangeType,
			&entry.OldValue,
			&entry.NewValue,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

// memoryLeadActivityRepository mirrors the postgres repository for the
// in-memory deployment mode.
type memoryLeadActivityRepository struct {
	mu      sync.RWMutex
	entries []domain.LeadActivity
}

// NewMemoryLeadActivityRepository builds an empty in-memory activity log.
func NewMemoryLeadActivityRepository() LeadActivityRepository {
	return &memoryLeadActivityRepository{}
}

func (r *memoryLeadActivityRepository) Create(_ context.Context, entry *domain.LeadActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.entries = append([]domain.LeadActivity{*entry}, r.entries...)
	return nil
}

func (r *memoryLeadActivityRepository) ListByLead(_ context.Context, leadID string, limit int) ([]domain.LeadActivity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	var result []domain.LeadActivity
	for _, entry := range r.entries {
		if entry.LeadID != leadID {
			continue
		}
		result = append(result, entry)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}
