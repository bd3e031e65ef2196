package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/connect-inmobiliaria/crm-service/internal/api/dto"
	"github.com/connect-inmobiliaria/crm-service/internal/domain"
	"github.com/connect-inmobiliaria/crm-service/internal/session"
	apperrors "github.com/connect-inmobiliaria/crm-service/pkg/util"
)

// SessionHandler exposes the shell: session creation, view routing, the
// passcode gate and the back-office badge.
type SessionHandler struct {
	sessions *session.Manager
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create POST /session.
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	snap := h.sessions.Create()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": sessionResponse(snap)})
}

// Get GET /session/:id.
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	snap, err := h.sessions.Snapshot(c.Params("id"))
	if err != nil {
		return mapSessionError(err)
	}
	return c.JSON(fiber.Map{"data": sessionResponse(snap)})
}

// Navigate POST /session/:id/navigate.
func (h *SessionHandler) Navigate(c *fiber.Ctx) error {
	var req dto.NavigateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !req.View.Valid() {
		return apperrors.NewValidationError("unknown view", map[string]any{"view": string(req.View)})
	}
	if req.Tab != nil && !req.Tab.Valid() {
		return apperrors.NewValidationError("unknown dashboard tab", map[string]any{"tab": string(*req.Tab)})
	}

	result, err := h.sessions.Navigate(c.UserContext(), c.Params("id"), req.View, req.Tab)
	if err != nil {
		return mapSessionError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NavigateResponse{
		Challenged: result.Challenged,
		View:       result.View.Current,
		Tab:        result.View.DashboardTab,
	}})
}

// Challenge POST /session/:id/challenge.
func (h *SessionHandler) Challenge(c *fiber.Ctx) error {
	var req dto.ChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	token, expiresAt, view, err := h.sessions.SubmitChallenge(c.UserContext(), c.Params("id"), req.Passcode)
	if err != nil {
		return mapSessionError(err)
	}
	return c.JSON(fiber.Map{"data": dto.ChallengeResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		View:      view.Current,
		Tab:       view.DashboardTab,
	}})
}

// DismissChallenge POST /session/:id/challenge/dismiss.
func (h *SessionHandler) DismissChallenge(c *fiber.Ctx) error {
	if err := h.sessions.DismissChallenge(c.Params("id")); err != nil {
		return mapSessionError(err)
	}
	snap, err := h.sessions.Snapshot(c.Params("id"))
	if err != nil {
		return mapSessionError(err)
	}
	return c.JSON(fiber.Map{"data": sessionResponse(snap)})
}

// Logout POST /session/:id/logout.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	view, err := h.sessions.Logout(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapSessionError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"view": view.Current,
	}})
}

// SelectProperty POST /session/:id/select-property.
func (h *SessionHandler) SelectProperty(c *fiber.Ctx) error {
	var req dto.SelectPropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.sessions.SelectProperty(c.Params("id"), req.PropertyID); err != nil {
		return mapSessionError(err)
	}
	snap, err := h.sessions.Snapshot(c.Params("id"))
	if err != nil {
		return mapSessionError(err)
	}
	return c.JSON(fiber.Map{"data": sessionResponse(snap)})
}

func sessionResponse(snap session.Snapshot) dto.SessionResponse {
	resp := dto.SessionResponse{
		SessionID: snap.SessionID,
		Gate:      snap.Gate,
		View:      snap.View.Current,
		NewLeads:  snap.NewLeads,
	}
	if snap.View.Current == domain.ViewDashboard {
		resp.Tab = snap.View.DashboardTab
	}
	resp.PropertyID = snap.View.SelectedPropertyID
	return resp
}

func mapSessionError(err error) error {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return apperrors.NewNotFound("session", nil)
	case errors.Is(err, session.ErrInvalidPasscode):
		return apperrors.NewUnauthorized("incorrect passcode")
	case errors.Is(err, session.ErrNotUnlocked):
		return apperrors.NewForbidden("session not unlocked")
	default:
		return err
	}
}
