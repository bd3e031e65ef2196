package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connect-inmobiliaria/crm-service/internal/domain"
)

func TestMemoryLeadsAreNewestFirst(t *testing.T) {
	repo := NewMemoryLeadRepository()
	ctx := context.Background()

	first := &domain.Lead{Name: "first", Email: "a@example.com", Status: domain.LeadStatusNew}
	second := &domain.Lead{Name: "second", Email: "b@example.com", Status: domain.LeadStatusNew}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	leads, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "second", leads[0].Name)
	assert.Equal(t, "first", leads[1].Name)
}

func TestMemoryUpdateStatusByEmailTouchesAllMatches(t *testing.T) {
	repo := NewMemoryLeadRepository()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Lead{Email: "ana@example.com", Status: domain.LeadStatusNew}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Lead{Email: "otro@example.com", Status: domain.LeadStatusNew}))

	notes := "seguimiento"
	rows, err := repo.UpdateStatusByEmail(ctx, "ana@example.com", domain.LeadStatusContacted, &notes)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)

	leads, err := repo.List(ctx)
	require.NoError(t, err)
	for _, lead := range leads {
		if lead.Email == "ana@example.com" {
			assert.Equal(t, domain.LeadStatusContacted, lead.Status)
			assert.Equal(t, "seguimiento", lead.Notes)
		} else {
			assert.Equal(t, domain.LeadStatusNew, lead.Status)
		}
	}
}

func TestMemoryGetByIDMissingReturnsNoRows(t *testing.T) {
	repo := NewMemoryLeadRepository()
	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestMemoryPropertyFilterSearchesTitleAndAddress(t *testing.T) {
	repo := NewMemoryPropertyRepository(SeedProperties())
	ctx := context.Background()

	term := "nueva córdoba"
	properties, err := repo.List(ctx, PropertyFilter{SearchTerm: &term})
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, "2", properties[0].ID)
}
