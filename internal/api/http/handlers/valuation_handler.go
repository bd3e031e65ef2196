package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/connect-inmobiliaria/crm-service/internal/api/dto"
	"github.com/connect-inmobiliaria/crm-service/internal/service"
	apperrors "github.com/connect-inmobiliaria/crm-service/pkg/util"
)

// ValuationHandler exposes the online valuation flow.
type ValuationHandler struct {
	service *service.ValuationService
}

// NewValuationHandler constructs handler.
func NewValuationHandler(valuationService *service.ValuationService) *ValuationHandler {
	return &ValuationHandler{service: valuationService}
}

// Run POST /valuation.
func (h *ValuationHandler) Run(c *fiber.Ctx) error {
	var req dto.ValuationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	result, err := h.service.Run(c.UserContext(), service.ValuationInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
		AreaM2:       req.AreaM2,
		Rooms:        req.Rooms,
		Condition:    req.Condition,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.ValuationResponse{
		Valuation: result.Valuation,
		LeadID:    result.LeadID,
		EmailSent: result.EmailSent,
	}})
}
