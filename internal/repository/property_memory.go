package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/connect-inmobiliaria/crm-service/internal/domain"
)

// memoryPropertyRepository serves the catalog from process memory, seeded
// with the agency's static listings. Used when no database is configured.
type memoryPropertyRepository struct {
	mu         sync.RWMutex
	properties []domain.Property
}

// NewMemoryPropertyRepository builds an in-memory catalog seeded with the
// provided listings.
func NewMemoryPropertyRepository(seed []domain.Property) PropertyRepository {
	properties := make([]domain.Property, len(seed))
	copy(properties, seed)
	return &memoryPropertyRepository{properties: properties}
}

func (r *memoryPropertyRepository) Create(_ context.Context, property *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if property.ID == "" {
		property.ID = uuid.NewString()
	}
	if property.CreatedAt.IsZero() {
		property.CreatedAt = now
	}
	property.UpdatedAt = now
	r.properties = append([]domain.Property{*property}, r.properties...)
	return nil
}

func (r *memoryPropertyRepository) List(_ context.Context, filter PropertyFilter) ([]domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Property
	for _, p := range r.properties {
		if filter.Type != nil && p.Type != *filter.Type {
			continue
		}
		if filter.Transaction != nil && p.Transaction != *filter.Transaction {
			continue
		}
		if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
			term := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
			if !strings.Contains(strings.ToLower(p.Title), term) &&
				!strings.Contains(strings.ToLower(p.Address), term) {
				continue
			}
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *memoryPropertyRepository) GetByID(_ context.Context, id string) (*domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.properties {
		if r.properties[i].ID == id {
			p := r.properties[i]
			return &p, nil
		}
	}
	return nil, pgx.ErrNoRows
}
