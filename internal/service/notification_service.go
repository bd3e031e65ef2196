package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/connect-inmobiliaria/crm-service/internal/events"
	"github.com/connect-inmobiliaria/crm-service/internal/integration/telemetry"
)

// NotificationService listens for domain events and fans them out to the
// analytics recorder and the structured log. Handlers never fail; a lost
// analytics hit is not an application error.
type NotificationService struct {
	telemetry telemetry.Recorder
	logger    *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(recorder telemetry.Recorder, logger *zap.Logger) *NotificationService {
	return &NotificationService{telemetry: recorder, logger: logger}
}

// Register subscribes the handlers on the dispatcher.
func (s *NotificationService) Register(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventLeadCreated, s.onLeadCreated)
	dispatcher.Subscribe(events.EventLeadStatusChanged, s.onLeadStatusChanged)
	dispatcher.Subscribe(events.EventPropertyPublished, s.onPropertyPublished)
	dispatcher.Subscribe(events.EventViewChanged, s.onViewChanged)
	dispatcher.Subscribe(events.EventAdminLogin, s.onAdminLogin)
	dispatcher.Subscribe(events.EventAdminLogout, s.onAdminLogout)
}

func (s *NotificationService) onLeadCreated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.LeadCreatedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("lead captured",
		zap.String("lead_id", event.SubjectID),
		zap.String("email", payload.Email),
		zap.String("property_id", payload.PropertyID),
		zap.String("source", payload.Source))
	s.telemetry.Record("generar_lead", map[string]any{"property_id": payload.PropertyID})
	return nil
}

func (s *NotificationService) onLeadStatusChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.LeadStatusChangedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("lead status changed",
		zap.String("lead_id", event.SubjectID),
		zap.String("old_status", string(payload.OldStatus)),
		zap.String("new_status", string(payload.NewStatus)))
	return nil
}

func (s *NotificationService) onPropertyPublished(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PropertyPublishedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("property published",
		zap.String("property_id", event.SubjectID),
		zap.String("title", payload.Title),
		zap.Int64("price", payload.Price))
	return nil
}

func (s *NotificationService) onViewChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ViewChangedPayload)
	if !ok {
		return nil
	}
	params := map[string]any{"view": string(payload.View)}
	if payload.Tab != "" {
		params["tab"] = string(payload.Tab)
	}
	s.telemetry.Record("view_change", params)
	return nil
}

func (s *NotificationService) onAdminLogin(_ context.Context, event events.Event) error {
	s.logger.Info("back office unlocked", zap.String("session_id", event.SubjectID))
	s.telemetry.Record("admin_login_success", nil)
	return nil
}

func (s *NotificationService) onAdminLogout(_ context.Context, event events.Event) error {
	s.logger.Info("back office locked", zap.String("session_id", event.SubjectID))
	s.telemetry.Record("admin_logout", nil)
	return nil
}
