package events

import (
	"time"

	"github.com/connect-inmobiliaria/crm-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeadCreated       EventType = "lead_created"
	EventLeadStatusChanged EventType = "lead_status_changed"
	EventPropertyPublished EventType = "property_published"
	EventViewChanged       EventType = "view_change"
	EventAdminLogin        EventType = "admin_login_success"
	EventAdminLogout       EventType = "admin_logout"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LeadCreatedPayload payload.
type LeadCreatedPayload struct {
	Email      string `json:"email"`
	PropertyID string `json:"property_id,omitempty"`
	Source     string `json:"source,omitempty"`
}

// LeadStatusChangedPayload payload.
type LeadStatusChangedPayload struct {
	Email     string            `json:"email"`
	OldStatus domain.LeadStatus `json:"old_status"`
	NewStatus domain.LeadStatus `json:"new_status"`
	Notes     string            `json:"notes,omitempty"`
}

// PropertyPublishedPayload payload.
type PropertyPublishedPayload struct {
	Title       string                 `json:"title"`
	Type        domain.PropertyType    `json:"type"`
	Transaction domain.TransactionType `json:"transaction"`
	Price       int64                  `json:"price"`
}

// ViewChangedPayload payload.
type ViewChangedPayload struct {
	View domain.View         `json:"view"`
	Tab  domain.DashboardTab `json:"tab,omitempty"`
}
