package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/connect-inmobiliaria/crm-service/internal/domain"
	"github.com/connect-inmobiliaria/crm-service/internal/events"
	"github.com/connect-inmobiliaria/crm-service/internal/integration/idecor"
	"github.com/connect-inmobiliaria/crm-service/internal/observability"
	"github.com/connect-inmobiliaria/crm-service/internal/repository"
)

// VisitCounter bumps the per-day visit counter.
type VisitCounter interface {
	IncrVisit(ctx context.Context) error
}

// PropertyService serves the public catalog and the publish flow.
type PropertyService struct {
	properties repository.PropertyRepository
	cadastral  idecor.Lookup
	counter    VisitCounter
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// PropertyDependencies bundles requirements for the property service.
type PropertyDependencies struct {
	PropertyRepo repository.PropertyRepository
	Cadastral    idecor.Lookup
	Counter      VisitCounter
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// PropertyPublishInput describes a listing submitted from the back office.
type PropertyPublishInput struct {
	Title       string
	Price       int64
	Type        domain.PropertyType
	Transaction domain.TransactionType
	Latitude    float64
	Longitude   float64
	Address     string
	Description string
	Images      []string
	Features    []string
	ParcelID    string
}

// NewPropertyService constructs the service.
func NewPropertyService(deps PropertyDependencies) *PropertyService {
	return &PropertyService{
		properties: deps.PropertyRepo,
		cadastral:  deps.Cadastral,
		counter:    deps.Counter,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// List returns the filtered catalog newest-first, empty when the store is
// unreachable.
func (s *PropertyService) List(ctx context.Context, filter repository.PropertyFilter) []domain.Property {
	properties, err := s.properties.List(ctx, filter)
	if err != nil {
		s.logger.Warn("property store unavailable, serving empty catalog", zap.Error(err))
		return []domain.Property{}
	}
	return properties
}

// GetByID fetches one listing.
func (s *PropertyService) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	return s.properties.GetByID(ctx, id)
}

// Publish stores a new listing. When the submission carries a parcel
// nomenclature the registry is consulted and its record attached; a failed
// lookup leaves the listing unverified rather than blocking publication.
func (s *PropertyService) Publish(ctx context.Context, input PropertyPublishInput) (*domain.Property, error) {
	property := &domain.Property{
		Title:       strings.TrimSpace(input.Title),
		Price:       input.Price,
		Type:        input.Type,
		Transaction: input.Transaction,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Address:     strings.TrimSpace(input.Address),
		Description: input.Description,
		Images:      input.Images,
		Features:    input.Features,
	}

	if parcel := strings.TrimSpace(input.ParcelID); parcel != "" {
		property.Cadastral = s.resolveCadastral(ctx, parcel, domain.CadastralData{ParcelID: parcel})
	}

	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventPropertyPublished,
		SubjectID: property.ID,
		Payload: events.PropertyPublishedPayload{
			Title:       property.Title,
			Type:        property.Type,
			Transaction: property.Transaction,
			Price:       property.Price,
		},
	})
	return property, nil
}

// EnrichedCadastral returns the listing's parcel record refreshed from the
// registry. The catalog values stand in when the registry cannot confirm.
func (s *PropertyService) EnrichedCadastral(ctx context.Context, propertyID string) (*domain.CadastralData, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	record := s.resolveCadastral(ctx, property.Cadastral.ParcelID, property.Cadastral)
	return &record, nil
}

// LookupParcel queries the registry directly by nomenclature.
func (s *PropertyService) LookupParcel(ctx context.Context, parcelID string) (*domain.CadastralData, error) {
	if s.cadastral == nil {
		return &domain.CadastralData{ParcelID: parcelID, Verified: false}, nil
	}
	record, err := s.cadastral.Parcel(ctx, parcelID)
	if err != nil {
		observability.RecordIntegrationError("idecor")
		s.logger.Warn("cadastral lookup failed", zap.String("parcel_id", parcelID), zap.Error(err))
		return &domain.CadastralData{ParcelID: parcelID, Verified: false}, nil
	}
	return record, nil
}

// RecordVisit bumps today's visit counter, best effort.
func (s *PropertyService) RecordVisit(ctx context.Context) {
	if s.counter == nil {
		return
	}
	if err := s.counter.IncrVisit(ctx); err != nil {
		s.logger.Debug("visit counter unavailable", zap.Error(err))
	}
}

// CatalogSummary is the compact listing form handed to the advisor so its
// answers stay anchored to the actual portfolio.
type CatalogSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Price       int64  `json:"price"`
	Type        string `json:"type"`
	Transaction string `json:"transaction"`
	Address     string `json:"address"`
}

// CatalogSummaries renders the whole catalog in summary form.
func (s *PropertyService) CatalogSummaries(ctx context.Context) []CatalogSummary {
	properties := s.List(ctx, repository.PropertyFilter{})
	summaries := make([]CatalogSummary, 0, len(properties))
	for _, p := range properties {
		summaries = append(summaries, CatalogSummary{
			ID:          p.ID,
			Title:       p.Title,
			Price:       p.Price,
			Type:        string(p.Type),
			Transaction: string(p.Transaction),
			Address:     p.Address,
		})
	}
	return summaries
}

func (s *PropertyService) resolveCadastral(ctx context.Context, parcelID string, fallback domain.CadastralData) domain.CadastralData {
	if parcelID == "" || s.cadastral == nil {
		fallback.Verified = false
		return fallback
	}

	record, err := s.cadastral.Parcel(ctx, parcelID)
	if err != nil {
		observability.RecordIntegrationError("idecor")
		s.logger.Warn("cadastral lookup failed", zap.String("parcel_id", parcelID), zap.Error(err))
		fallback.Verified = false
		return fallback
	}
	if !record.Verified {
		// Registry reachable but parcel unknown: keep what the catalog has.
		if fallback.AssessedValue > 0 || fallback.AreaM2 > 0 {
			fallback.Verified = false
			return fallback
		}
	}
	return *record
}

func (s *PropertyService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
