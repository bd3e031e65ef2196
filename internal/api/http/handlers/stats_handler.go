package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/connect-inmobiliaria/crm-service/internal/api/dto"
	"github.com/connect-inmobiliaria/crm-service/internal/service"
)

// StatsHandler serves the dashboard counters.
type StatsHandler struct {
	service *service.LeadService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(leadService *service.LeadService) *StatsHandler {
	return &StatsHandler{service: leadService}
}

// Get GET /stats.
func (h *StatsHandler) Get(c *fiber.Ctx) error {
	stats := h.service.Stats(c.UserContext())
	return c.JSON(fiber.Map{"data": dto.StatsResponse{
		VisitasHoy:   stats.VisitsToday,
		LeadsTotales: stats.TotalLeads,
		LeadsNuevos:  stats.NewLeads,
	}})
}
