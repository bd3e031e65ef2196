package domain

import (
	"fmt"
	"time"
)

// LeadStatus enumerates pipeline states for captured leads. The wire values
// are the Spanish labels the agency's CRM has always used.
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "Nuevo"
	LeadStatusContacted   LeadStatus = "Contactado"
	LeadStatusVisit       LeadStatus = "Visita Programada"
	LeadStatusNegotiation LeadStatus = "En Negociación"
	LeadStatusWon         LeadStatus = "Cerrado Ganado"
	LeadStatusLost        LeadStatus = "Cerrado Perdido"
)

// AllLeadStatuses lists every valid status in pipeline order.
var AllLeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusVisit,
	LeadStatusNegotiation,
	LeadStatusWon,
	LeadStatusLost,
}

// Valid reports whether the status is one of the enumerated values.
func (s LeadStatus) Valid() bool {
	for _, candidate := range AllLeadStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// ParseLeadStatus validates a raw status value. Passing anything outside the
// enumeration is a caller contract violation and is rejected outright.
func ParseLeadStatus(raw string) (LeadStatus, error) {
	status := LeadStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("invalid lead status %q", raw)
	}
	return status, nil
}

// LeadPriority is an optional triage hint set by agents.
type LeadPriority string

const (
	LeadPriorityLow    LeadPriority = "Baja"
	LeadPriorityMedium LeadPriority = "Media"
	LeadPriorityHigh   LeadPriority = "Alta"
)

// Lead is the aggregate for a captured prospect. Email doubles as the
// legacy mutation key for status updates; ID is the preferred one.
type Lead struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Message    string
	PropertyID string
	Status     LeadStatus
	Notes      string
	Priority   *LeadPriority
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LeadChangeType enumerates audited changes on a lead.
type LeadChangeType string

const (
	ChangeTypeStatus LeadChangeType = "STATUS"
	ChangeTypeNotes  LeadChangeType = "NOTES"
)

// LeadActivity is one audited change on a lead's record.
type LeadActivity struct {
	ID         string
	LeadID     string
	ChangeType LeadChangeType
	OldValue   map[string]any
	NewValue   map[string]any
	CreatedAt  time.Time
}
