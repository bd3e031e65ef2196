package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/connect-inmobiliaria/crm-service/internal/domain"
)

// CreateLeadRequest payload for the public capture form.
type CreateLeadRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	PropertyID string `json:"property_id"`
	Source     string `json:"source"`
}

// Validate enforces the capture form contract.
func (r CreateLeadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Phone, validation.Length(0, 50)),
		validation.Field(&r.Message, validation.Length(0, 5000)),
	)
}

// UpdateLeadStatusRequest payload for both mutation endpoints.
type UpdateLeadStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// Validate enforces presence of a status; value parsing happens downstream.
func (r UpdateLeadStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required),
	)
}

// LeadResponse response.
type LeadResponse struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Email      string               `json:"email"`
	Phone      string               `json:"phone,omitempty"`
	Message    string               `json:"message,omitempty"`
	PropertyID string               `json:"property_id,omitempty"`
	Status     domain.LeadStatus    `json:"status"`
	Notes      string               `json:"notes,omitempty"`
	Priority   *domain.LeadPriority `json:"priority,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// UpdateLeadStatusResponse reports whether the mutation applied.
type UpdateLeadStatusResponse struct {
	Updated bool `json:"updated"`
}

// PipelineColumnResponse is one kanban bucket.
type PipelineColumnResponse struct {
	Status domain.LeadStatus `json:"status"`
	Label  string            `json:"label"`
	Leads  []LeadResponse    `json:"leads"`
}

// LeadActivityResponse is an audit entry.
type LeadActivityResponse struct {
	ID         string                `json:"id"`
	ChangeType domain.LeadChangeType `json:"change_type"`
	OldValue   map[string]any        `json:"old_value,omitempty"`
	NewValue   map[string]any        `json:"new_value,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}

// StatsResponse carries the dashboard counters.
type StatsResponse struct {
	VisitasHoy   int64 `json:"visitas_hoy"`
	LeadsTotales int64 `json:"leads_totales"`
	LeadsNuevos  int64 `json:"leads_nuevos"`
}
