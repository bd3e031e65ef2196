package dto

import (
	"time"

	"github.com/connect-inmobiliaria/crm-service/internal/domain"
	"github.com/connect-inmobiliaria/crm-service/internal/session"
)

// SessionResponse mirrors one session's shell state.
type SessionResponse struct {
	SessionID  string               `json:"session_id"`
	Gate       session.GateState    `json:"gate"`
	View       domain.View          `json:"view"`
	Tab        domain.DashboardTab  `json:"tab,omitempty"`
	PropertyID *string              `json:"selected_property_id,omitempty"`
	NewLeads   int64                `json:"new_leads"`
}

// NavigateRequest payload.
type NavigateRequest struct {
	View domain.View          `json:"view"`
	Tab  *domain.DashboardTab `json:"tab"`
}

// NavigateResponse reports the routing outcome. When the gate challenged the
// navigation, View still holds the unchanged current view.
type NavigateResponse struct {
	Challenged bool                `json:"challenged"`
	View       domain.View         `json:"view"`
	Tab        domain.DashboardTab `json:"tab,omitempty"`
}

// ChallengeRequest payload.
type ChallengeRequest struct {
	Passcode string `json:"passcode"`
}

// ChallengeResponse carries the session token minted on unlock.
type ChallengeResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	View      domain.View         `json:"view"`
	Tab       domain.DashboardTab `json:"tab,omitempty"`
}

// SelectPropertyRequest payload; a null id clears the selection.
type SelectPropertyRequest struct {
	PropertyID *string `json:"property_id"`
}
