package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/connect-inmobiliaria/crm-service/internal/api/dto"
	"github.com/connect-inmobiliaria/crm-service/internal/domain"
	"github.com/connect-inmobiliaria/crm-service/internal/service"
	apperrors "github.com/connect-inmobiliaria/crm-service/pkg/util"
)

// LeadsHandler exposes lead capture and the CRM triage surface. Capture is
// public; everything else sits behind the unlocked-session middleware.
type LeadsHandler struct {
	service *service.LeadService
}

// NewLeadsHandler constructs handler.
func NewLeadsHandler(leadService *service.LeadService) *LeadsHandler {
	return &LeadsHandler{service: leadService}
}

// Create POST /leads.
func (h *LeadsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	lead, err := h.service.CreateLead(c.UserContext(), service.LeadCreateInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		PropertyID: req.PropertyID,
		Source:     req.Source,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": leadResponse(lead)})
}

// List GET /leads. Accepts ?q= for the case-insensitive triage filter.
func (h *LeadsHandler) List(c *fiber.Ctx) error {
	leads := service.FilterLeads(h.service.ListLeads(c.UserContext()), c.Query("q"))
	items := make([]dto.LeadResponse, 0, len(leads))
	for i := range leads {
		items = append(items, leadResponse(&leads[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Board GET /leads/board.
func (h *LeadsHandler) Board(c *fiber.Ctx) error {
	board := h.service.PipelineBoard(c.UserContext(), c.Query("q"))
	columns := make([]dto.PipelineColumnResponse, 0, len(board))
	for _, col := range board {
		leads := make([]dto.LeadResponse, 0, len(col.Leads))
		for i := range col.Leads {
			leads = append(leads, leadResponse(&col.Leads[i]))
		}
		columns = append(columns, dto.PipelineColumnResponse{
			Status: col.Status,
			Label:  col.Label,
			Leads:  leads,
		})
	}
	return c.JSON(fiber.Map{"data": columns})
}

// UpdateStatusByEmail PATCH /leads/by-email/:email. Every lead sharing the
// email gets the new status; the response only says whether anything changed.
func (h *LeadsHandler) UpdateStatusByEmail(c *fiber.Ctx) error {
	req, err := parseStatusUpdate(c)
	if err != nil {
		return err
	}
	updated, err := h.service.UpdateStatusByEmail(c.UserContext(), c.Params("email"), req.Status, req.Notes)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), map[string]any{"status": req.Status})
	}
	return c.JSON(fiber.Map{"data": dto.UpdateLeadStatusResponse{Updated: updated}})
}

// UpdateStatusByID PATCH /leads/:id/status.
func (h *LeadsHandler) UpdateStatusByID(c *fiber.Ctx) error {
	req, err := parseStatusUpdate(c)
	if err != nil {
		return err
	}
	updated, err := h.service.UpdateStatusByID(c.UserContext(), c.Params("id"), req.Status, req.Notes)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), map[string]any{"status": req.Status})
	}
	return c.JSON(fiber.Map{"data": dto.UpdateLeadStatusResponse{Updated: updated}})
}

// Activity GET /leads/:id/activity.
func (h *LeadsHandler) Activity(c *fiber.Ctx) error {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	entries := h.service.ActivityForLead(c.UserContext(), c.Params("id"), limit)
	items := make([]dto.LeadActivityResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.LeadActivityResponse{
			ID:         entry.ID,
			ChangeType: entry.ChangeType,
			OldValue:   entry.OldValue,
			NewValue:   entry.NewValue,
			CreatedAt:  entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseStatusUpdate(c *fiber.Ctx) (dto.UpdateLeadStatusRequest, error) {
	var req dto.UpdateLeadStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return req, apperrors.NewValidationError(err.Error(), nil)
	}
	return req, nil
}

func leadResponse(lead *domain.Lead) dto.LeadResponse {
	return dto.LeadResponse{
		ID:         lead.ID,
		Name:       lead.Name,
		Email:      lead.Email,
		Phone:      lead.Phone,
		Message:    lead.Message,
		PropertyID: lead.PropertyID,
		Status:     lead.Status,
		Notes:      lead.Notes,
		Priority:   lead.Priority,
		CreatedAt:  lead.CreatedAt,
		UpdatedAt:  lead.UpdatedAt,
	}
}
