package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/connect-inmobiliaria/crm-service/internal/integration/advisor"
	"github.com/connect-inmobiliaria/crm-service/internal/mail"
)

// valuationPropertyID tags leads captured through the online valuation flow
// so they are distinguishable from listing inquiries in the pipeline.
const valuationPropertyID = "TASACIÓN_ONLINE"

// ValuationService runs the online valuation flow: estimate, compose the
// report, capture the lead, deliver the email. The estimate always comes
// back; delivery is best effort.
type ValuationService struct {
	advisor advisor.Advisor
	leads   *LeadService
	mailer  mail.Sender
	logger  *zap.Logger
}

// ValuationInput is the form submitted from the valuation page.
type ValuationInput struct {
	Name         string
	Email        string
	Phone        string
	Address      string
	Neighborhood string
	AreaM2       float64
	Rooms        int
	Condition    string
}

// ValuationResult is the flow outcome.
type ValuationResult struct {
	Valuation string
	LeadID    string
	EmailSent bool
}

// NewValuationService constructs the service.
func NewValuationService(adv advisor.Advisor, leads *LeadService, mailer mail.Sender, logger *zap.Logger) *ValuationService {
	return &ValuationService{advisor: adv, leads: leads, mailer: mailer, logger: logger}
}

// Run executes the valuation flow in order. The lead is captured before the
// email goes out so a delivery failure never loses the contact.
func (s *ValuationService) Run(ctx context.Context, input ValuationInput) (*ValuationResult, error) {
	valuation := s.advisor.Valuation(ctx, advisor.ValuationFacts{
		Address:      input.Address,
		Neighborhood: input.Neighborhood,
		AreaM2:       input.AreaM2,
		Rooms:        input.Rooms,
		Condition:    input.Condition,
	})

	body := s.advisor.ComposeValuationEmail(ctx, input.Name, valuation)

	lead, err := s.leads.CreateLead(ctx, LeadCreateInput{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Message:    valuationMessage(input.Address, valuation),
		PropertyID: valuationPropertyID,
		Source:     "valuation",
	})
	if err != nil {
		return nil, err
	}

	result := &ValuationResult{Valuation: valuation, LeadID: lead.ID}
	if s.mailer != nil {
		if err := s.mailer.SendValuationReport(input.Email, input.Name, body); err != nil {
			s.logger.Warn("valuation report delivery failed",
				zap.String("email", input.Email), zap.Error(err))
		} else {
			result.EmailSent = true
		}
	}
	return result, nil
}

// valuationMessage summarizes the request for the CRM, keeping only a short
// preview of the estimate.
func valuationMessage(address, valuation string) string {
	preview := []rune(valuation)
	if len(preview) > 50 {
		preview = preview[:50]
	}
	return fmt.Sprintf("Solicitud de tasación online. Propiedad: %s. Estimación: %s...", address, string(preview))
}
