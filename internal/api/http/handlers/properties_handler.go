package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/connect-inmobiliaria/crm-service/internal/api/dto"
	"github.com/connect-inmobiliaria/crm-service/internal/domain"
	"github.com/connect-inmobiliaria/crm-service/internal/integration/advisor"
	"github.com/connect-inmobiliaria/crm-service/internal/repository"
	"github.com/connect-inmobiliaria/crm-service/internal/service"
	apperrors "github.com/connect-inmobiliaria/crm-service/pkg/util"
)

// PropertiesHandler serves the public catalog and the gated publish flow.
type PropertiesHandler struct {
	service *service.PropertyService
	advisor advisor.Advisor
}

// NewPropertiesHandler constructs handler.
func NewPropertiesHandler(propertyService *service.PropertyService, adv advisor.Advisor) *PropertiesHandler {
	return &PropertiesHandler{service: propertyService, advisor: adv}
}

// List GET /properties. Supports ?q=, ?type=, ?transaction=. Every request
// counts as a site visit.
func (h *PropertiesHandler) List(c *fiber.Ctx) error {
	h.service.RecordVisit(c.UserContext())

	filter := repository.PropertyFilter{}
	if q := c.Query("q"); q != "" {
		filter.SearchTerm = &q
	}
	if raw := c.Query("type"); raw != "" {
		t := domain.PropertyType(raw)
		filter.Type = &t
	}
	if raw := c.Query("transaction"); raw != "" {
		t := domain.TransactionType(raw)
		filter.Transaction = &t
	}

	properties := h.service.List(c.UserContext(), filter)
	items := make([]dto.PropertyResponse, 0, len(properties))
	for i := range properties {
		items = append(items, propertyResponse(&properties[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /properties/:id.
func (h *PropertiesHandler) Get(c *fiber.Ctx) error {
	property, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": propertyResponse(property)})
}

// Advice GET /properties/:id/advice.
func (h *PropertiesHandler) Advice(c *fiber.Ctx) error {
	property, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	advice := h.advisor.PropertyAdvice(c.UserContext(), property.Title, property.Price, string(property.Transaction))
	return c.JSON(fiber.Map{"data": fiber.Map{"property_id": property.ID, "advice": advice}})
}

// Publish POST /properties.
func (h *PropertiesHandler) Publish(c *fiber.Ctx) error {
	var req dto.PublishPropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	property, err := h.service.Publish(c.UserContext(), service.PropertyPublishInput{
		Title:       req.Title,
		Price:       req.Price,
		Type:        req.Type,
		Transaction: req.Transaction,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Address:     req.Address,
		Description: req.Description,
		Images:      req.Images,
		Features:    req.Features,
		ParcelID:    req.ParcelID,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": propertyResponse(property)})
}

// Cadastral GET /properties/:id/cadastral.
func (h *PropertiesHandler) Cadastral(c *fiber.Ctx) error {
	record, err := h.service.EnrichedCadastral(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": cadastralResponse(*record)})
}

// LookupParcel GET /cadastral/:parcelId.
func (h *PropertiesHandler) LookupParcel(c *fiber.Ctx) error {
	record, err := h.service.LookupParcel(c.UserContext(), c.Params("parcelId"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": cadastralResponse(*record)})
}

func propertyResponse(p *domain.Property) dto.PropertyResponse {
	resp := dto.PropertyResponse{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Type:        p.Type,
		Transaction: p.Transaction,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Address:     p.Address,
		Description: p.Description,
		Images:      p.Images,
		Features:    p.Features,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Cadastral.ParcelID != "" {
		record := cadastralResponse(p.Cadastral)
		resp.Cadastral = &record
	}
	return resp
}

func cadastralResponse(record domain.CadastralData) dto.CadastralResponse {
	return dto.CadastralResponse{
		ParcelID:      record.ParcelID,
		AssessedValue: record.AssessedValue,
		LandUse:       record.LandUse,
		AreaM2:        record.AreaM2,
		Verified:      record.Verified,
		Source:        record.Source,
	}
}
