package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connect-inmobiliaria/crm-service/internal/domain"
	"github.com/connect-inmobiliaria/crm-service/internal/events"
	"github.com/connect-inmobiliaria/crm-service/internal/repository"
)

type stubLookup struct {
	record *domain.CadastralData
	err    error
}

func (s stubLookup) Parcel(_ context.Context, parcelID string) (*domain.CadastralData, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.record != nil {
		record := *s.record
		return &record, nil
	}
	return &domain.CadastralData{ParcelID: parcelID, Verified: false, Source: "IDECOR"}, nil
}

func newTestPropertyService(lookup stubLookup) *PropertyService {
	return NewPropertyService(PropertyDependencies{
		PropertyRepo: repository.NewMemoryPropertyRepository(repository.SeedProperties()),
		Cadastral:    lookup,
		Dispatcher:   events.NewInMemoryDispatcher(),
		Logger:       zap.NewNop(),
	})
}

func TestListServesSeededCatalog(t *testing.T) {
	s := newTestPropertyService(stubLookup{})
	properties := s.List(context.Background(), repository.PropertyFilter{})
	assert.Len(t, properties, 3)
}

func TestListFiltersByTypeAndTransaction(t *testing.T) {
	s := newTestPropertyService(stubLookup{})

	houses := domain.PropertyTypeHouse
	filtered := s.List(context.Background(), repository.PropertyFilter{Type: &houses})
	for _, p := range filtered {
		assert.Equal(t, domain.PropertyTypeHouse, p.Type)
	}

	rent := domain.TransactionRent
	rentals := s.List(context.Background(), repository.PropertyFilter{Transaction: &rent})
	for _, p := range rentals {
		assert.Equal(t, domain.TransactionRent, p.Transaction)
	}
}

func TestPublishAttachesVerifiedParcel(t *testing.T) {
	record := &domain.CadastralData{
		ParcelID:      "11-05-021-099",
		AssessedValue: 42000000,
		LandUse:       "Urbano",
		AreaM2:        450,
		Verified:      true,
		Source:        "IDECOR",
	}
	s := newTestPropertyService(stubLookup{record: record})

	property, err := s.Publish(context.Background(), PropertyPublishInput{
		Title:       "Casa en Villa Allende",
		Price:       180000,
		Type:        domain.PropertyTypeHouse,
		Transaction: domain.TransactionSale,
		Address:     "Los Nogales 450",
		ParcelID:    "11-05-021-099",
	})
	require.NoError(t, err)
	assert.True(t, property.Cadastral.Verified)
	assert.Equal(t, int64(42000000), property.Cadastral.AssessedValue)
}

func TestPublishSurvivesRegistryOutage(t *testing.T) {
	s := newTestPropertyService(stubLookup{err: errors.New("wfs timeout")})

	property, err := s.Publish(context.Background(), PropertyPublishInput{
		Title:       "Casa en Villa Allende",
		Price:       180000,
		Type:        domain.PropertyTypeHouse,
		Transaction: domain.TransactionSale,
		Address:     "Los Nogales 450",
		ParcelID:    "11-05-021-099",
	})
	require.NoError(t, err)
	assert.False(t, property.Cadastral.Verified)
	assert.Equal(t, "11-05-021-099", property.Cadastral.ParcelID)
}

func TestEnrichedCadastralFallsBackToCatalogValues(t *testing.T) {
	s := newTestPropertyService(stubLookup{err: errors.New("wfs timeout")})

	record, err := s.EnrichedCadastral(context.Background(), "1")
	require.NoError(t, err)
	assert.False(t, record.Verified)
	assert.NotEmpty(t, record.ParcelID)
	assert.Positive(t, record.AssessedValue)
}

func TestCatalogSummaries(t *testing.T) {
	s := newTestPropertyService(stubLookup{})
	summaries := s.CatalogSummaries(context.Background())
	require.Len(t, summaries, 3)
	for _, summary := range summaries {
		assert.NotEmpty(t, summary.Title)
		assert.Positive(t, summary.Price)
	}
}
