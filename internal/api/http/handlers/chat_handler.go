package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/connect-inmobiliaria/crm-service/internal/api/dto"
	"github.com/connect-inmobiliaria/crm-service/internal/integration/advisor"
	"github.com/connect-inmobiliaria/crm-service/internal/service"
	apperrors "github.com/connect-inmobiliaria/crm-service/pkg/util"
)

// ChatHandler serves the public property assistant. Replies are anchored to
// the live catalog and never fail; a broken advisor answers with its apology.
type ChatHandler struct {
	advisor    advisor.Advisor
	properties *service.PropertyService
}

// NewChatHandler constructs handler.
func NewChatHandler(adv advisor.Advisor, propertyService *service.PropertyService) *ChatHandler {
	return &ChatHandler{advisor: adv, properties: propertyService}
}

// Chat POST /chat.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	history := make([]advisor.ChatMessage, 0, len(req.Messages))
	for _, turn := range req.Messages {
		history = append(history, advisor.ChatMessage{Role: turn.Role, Text: turn.Text})
	}

	summaries := h.properties.CatalogSummaries(c.UserContext())
	catalog := make([]advisor.PropertySummary, 0, len(summaries))
	for _, s := range summaries {
		catalog = append(catalog, advisor.PropertySummary{
			Title:       s.Title,
			Price:       s.Price,
			Transaction: s.Transaction,
			Address:     s.Address,
		})
	}

	reply := h.advisor.Chat(c.UserContext(), history, catalog)
	return c.JSON(fiber.Map{"data": dto.ChatResponse{Reply: reply}})
}
