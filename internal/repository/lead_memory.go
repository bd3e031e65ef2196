package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/connect-inmobiliaria/crm-service/internal/domain"
)

// memoryLeadRepository is the in-process store used when no database is
// configured, and by tests. Leads are held newest-first.
type memoryLeadRepository struct {
	mu    sync.RWMutex
	leads []domain.Lead
}

// NewMemoryLeadRepository builds an empty in-memory lead store.
func NewMemoryLeadRepository() LeadRepository {
	return &memoryLeadRepository{}
}

func (r *memoryLeadRepository) Create(_ context.Context, lead *domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = now
	}
	lead.UpdatedAt = now
	r.leads = append([]domain.Lead{*lead}, r.leads...)
	return nil
}

func (r *memoryLeadRepository) List(_ context.Context) ([]domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Lead, len(r.leads))
	copy(out, r.leads)
	return out, nil
}

func (r *memoryLeadRepository) GetByID(_ context.Context, id string) (*domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.leads {
		if r.leads[i].ID == id {
			lead := r.leads[i]
			return &lead, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryLeadRepository) UpdateStatusByEmail(_ context.Context, email string, status domain.LeadStatus, notes *string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var updated int64
	for i := range r.leads {
		if r.leads[i].Email != email {
			continue
		}
		r.leads[i].Status = status
		if notes != nil {
			r.leads[i].Notes = *notes
		}
		r.leads[i].UpdatedAt = time.Now()
		updated++
	}
	return updated, nil
}

func (r *memoryLeadRepository) UpdateStatusByID(_ context.Context, id string, status domain.LeadStatus, notes *string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.leads {
		if r.leads[i].ID != id {
			continue
		}
		r.leads[i].Status = status
		if notes != nil {
			r.leads[i].Notes = *notes
		}
		r.leads[i].UpdatedAt = time.Now()
		return 1, nil
	}
	return 0, nil
}

func (r *memoryLeadRepository) CountByStatus(_ context.Context, status domain.LeadStatus) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for i := range r.leads {
		if r.leads[i].Status == status {
			count++
		}
	}
	return count, nil
}
