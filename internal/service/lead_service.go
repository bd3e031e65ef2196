package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/connect-inmobiliaria/crm-service/internal/config"
	"github.com/connect-inmobiliaria/crm-service/internal/domain"
	"github.com/connect-inmobiliaria/crm-service/internal/events"
	"github.com/connect-inmobiliaria/crm-service/internal/observability"
	"github.com/connect-inmobiliaria/crm-service/internal/repository"
)

// VisitSource reads the per-day visit counter backing the dashboard.
type VisitSource interface {
	VisitsToday(ctx context.Context) (int64, error)
}

// LeadService owns the lead pipeline: it is the only writer of lead status
// and the sole creation path. Store failures degrade to empty results and
// unapplied updates rather than surfacing errors, so the site keeps rendering.
type LeadService struct {
	leads      repository.LeadRepository
	activity   repository.LeadActivityRepository
	dispatcher events.Dispatcher
	visits     VisitSource
	stats      config.StatsConfig
	logger     *zap.Logger
}

// LeadDependencies bundles requirements for the lead service.
type LeadDependencies struct {
	LeadRepo     repository.LeadRepository
	ActivityRepo repository.LeadActivityRepository
	Dispatcher   events.Dispatcher
	Visits       VisitSource
	Stats        config.StatsConfig
	Logger       *zap.Logger
}

// LeadCreateInput describes a lead capture payload. Required-field checks
// belong to the submitting form (the HTTP layer); the service applies none.
type LeadCreateInput struct {
	Name       string
	Email      string
	Phone      string
	Message    string
	PropertyID string
	Source     string
}

// DashboardStats are the dashboard headline counters.
type DashboardStats struct {
	VisitsToday int64
	TotalLeads  int64
	NewLeads    int64
}

// PipelineColumn is one kanban bucket.
type PipelineColumn struct {
	Status domain.LeadStatus
	Label  string
	Leads  []domain.Lead
}

// The four working stages shown on the board; won/lost are terminal and live
// only in the flat list.
var pipelineColumns = []struct {
	status domain.LeadStatus
	label  string
}{
	{domain.LeadStatusNew, "Nuevos"},
	{domain.LeadStatusContacted, "Contactados"},
	{domain.LeadStatusVisit, "Citas"},
	{domain.LeadStatusNegotiation, "Cierre"},
}

// NewLeadService constructs the service.
func NewLeadService(deps LeadDependencies) *LeadService {
	return &LeadService{
		leads:      deps.LeadRepo,
		activity:   deps.ActivityRepo,
		dispatcher: deps.Dispatcher,
		visits:     deps.Visits,
		stats:      deps.Stats,
		logger:     deps.Logger,
	}
}

// CreateLead appends a new lead with status Nuevo and generated identity.
func (s *LeadService) CreateLead(ctx context.Context, input LeadCreateInput) (*domain.Lead, error) {
	lead := &domain.Lead{
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		Message:    strings.TrimSpace(input.Message),
		PropertyID: strings.TrimSpace(input.PropertyID),
		Status:     domain.LeadStatusNew,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	observability.RecordLeadCaptured(sourceOrDefault(input.Source))
	s.publishEvent(ctx, events.Event{
		Type:      events.EventLeadCreated,
		SubjectID: lead.ID,
		Payload: events.LeadCreatedPayload{
			Email:      lead.Email,
			PropertyID: lead.PropertyID,
			Source:     sourceOrDefault(input.Source),
		},
	})
	return lead, nil
}

// ListLeads returns every known lead newest-first. A store failure yields an
// empty list, logged for diagnostics only.
func (s *LeadService) ListLeads(ctx context.Context) []domain.Lead {
	leads, err := s.leads.List(ctx)
	if err != nil {
		s.logger.Warn("lead store unavailable, serving empty list", zap.Error(err))
		return []domain.Lead{}
	}
	return leads
}

// FilterLeads narrows leads by a case-insensitive substring across name,
// email and property reference. An empty term matches everything.
func FilterLeads(leads []domain.Lead, term string) []domain.Lead {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return leads
	}

	filtered := make([]domain.Lead, 0, len(leads))
	for _, lead := range leads {
		if strings.Contains(strings.ToLower(lead.Name), term) ||
			strings.Contains(strings.ToLower(lead.Email), term) ||
			strings.Contains(strings.ToLower(lead.PropertyID), term) {
			filtered = append(filtered, lead)
		}
	}
	return filtered
}

// UpdateStatusByEmail overwrites the status of every lead matching the email.
// An unknown status is a caller contract violation and is rejected with an
// error; an unknown email or an unreachable store reports false with no
// changes applied.
func (s *LeadService) UpdateStatusByEmail(ctx context.Context, email, rawStatus string, notes *string) (bool, error) {
	status, err := domain.ParseLeadStatus(rawStatus)
	if err != nil {
		return false, err
	}

	matched := s.matchByEmail(ctx, email)

	rows, err := s.leads.UpdateStatusByEmail(ctx, email, status, notes)
	if err != nil {
		s.logger.Warn("lead status update failed", zap.String("email", email), zap.Error(err))
		return false, nil
	}
	if rows == 0 {
		return false, nil
	}

	for _, lead := range matched {
		s.recordStatusChange(ctx, lead, status, notes)
	}
	observability.RecordStatusChange(string(status))
	return true, nil
}

// UpdateStatusByID is the preferred mutation path, keyed by the unique id.
func (s *LeadService) UpdateStatusByID(ctx context.Context, id, rawStatus string, notes *string) (bool, error) {
	status, err := domain.ParseLeadStatus(rawStatus)
	if err != nil {
		return false, err
	}

	var before *domain.Lead
	if lead, err := s.leads.GetByID(ctx, id); err == nil {
		before = lead
	}

	rows, err := s.leads.UpdateStatusByID(ctx, id, status, notes)
	if err != nil {
		s.logger.Warn("lead status update failed", zap.String("id", id), zap.Error(err))
		return false, nil
	}
	if rows == 0 {
		return false, nil
	}

	if before != nil {
		s.recordStatusChange(ctx, *before, status, notes)
	}
	observability.RecordStatusChange(string(status))
	return true, nil
}

// PipelineBoard buckets the (optionally filtered) leads into the kanban
// columns. Buckets are disjoint; order within a bucket stays newest-first.
func (s *LeadService) PipelineBoard(ctx context.Context, searchTerm string) []PipelineColumn {
	leads := FilterLeads(s.ListLeads(ctx), searchTerm)

	board := make([]PipelineColumn, 0, len(pipelineColumns))
	for _, col := range pipelineColumns {
		column := PipelineColumn{Status: col.status, Label: col.label, Leads: []domain.Lead{}}
		for _, lead := range leads {
			if lead.Status == col.status {
				column.Leads = append(column.Leads, lead)
			}
		}
		board = append(board, column)
	}
	return board
}

// ActivityForLead returns the audited changes of one lead, newest-first.
func (s *LeadService) ActivityForLead(ctx context.Context, leadID string, limit int) []domain.LeadActivity {
	entries, err := s.activity.ListByLead(ctx, leadID, limit)
	if err != nil {
		s.logger.Warn("lead activity unavailable", zap.String("lead_id", leadID), zap.Error(err))
		return []domain.LeadActivity{}
	}
	return entries
}

// Stats computes the dashboard counters, substituting safe defaults for any
// collaborator that is down.
func (s *LeadService) Stats(ctx context.Context) DashboardStats {
	leads := s.ListLeads(ctx)

	var newCount int64
	for _, lead := range leads {
		if lead.Status == domain.LeadStatusNew {
			newCount++
		}
	}

	visits := s.stats.FallbackVisitsToday
	if s.visits != nil {
		if count, err := s.visits.VisitsToday(ctx); err == nil && count > 0 {
			visits = count
		}
	}

	return DashboardStats{
		VisitsToday: visits,
		TotalLeads:  int64(len(leads)),
		NewLeads:    newCount,
	}
}

// NewLeadCount returns the number of leads still in Nuevo, zero when the
// store is unreachable. Used by the badge poller.
func (s *LeadService) NewLeadCount(ctx context.Context) int64 {
	count, err := s.leads.CountByStatus(ctx, domain.LeadStatusNew)
	if err != nil {
		s.logger.Warn("new-lead count unavailable", zap.Error(err))
		return 0
	}
	return count
}

func (s *LeadService) matchByEmail(ctx context.Context, email string) []domain.Lead {
	leads, err := s.leads.List(ctx)
	if err != nil {
		return nil
	}
	var matched []domain.Lead
	for _, lead := range leads {
		if lead.Email == email {
			matched = append(matched, lead)
		}
	}
	return matched
}

func (s *LeadService) recordStatusChange(ctx context.Context, before domain.Lead, status domain.LeadStatus, notes *string) {
	if s.activity != nil {
		entry := &domain.LeadActivity{
			LeadID:     before.ID,
			ChangeType: domain.ChangeTypeStatus,
			OldValue:   map[string]any{"status": before.Status},
			NewValue:   map[string]any{"status": status},
		}
		if notes != nil {
			entry.NewValue["notes"] = *notes
		}
		if err := s.activity.Create(ctx, entry); err != nil {
			s.logger.Warn("lead activity write failed", zap.String("lead_id", before.ID), zap.Error(err))
		}
	}

	payload := events.LeadStatusChangedPayload{
		Email:     before.Email,
		OldStatus: before.Status,
		NewStatus: status,
	}
	if notes != nil {
		payload.Notes = *notes
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventLeadStatusChanged,
		SubjectID: before.ID,
		Payload:   payload,
	})
}

func (s *LeadService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func sourceOrDefault(source string) string {
	if source == "" {
		return "form"
	}
	return source
}
