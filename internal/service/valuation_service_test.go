package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connect-inmobiliaria/crm-service/internal/domain"
	"github.com/connect-inmobiliaria/crm-service/internal/integration/advisor"
	"github.com/connect-inmobiliaria/crm-service/internal/repository"
)

type stubAdvisor struct {
	valuation string
	email     string
}

func (s stubAdvisor) PropertyAdvice(context.Context, string, int64, string) string {
	return advisor.FallbackAdvice
}
func (s stubAdvisor) Valuation(context.Context, advisor.ValuationFacts) string { return s.valuation }
func (s stubAdvisor) ComposeValuationEmail(context.Context, string, string) string {
	return s.email
}
func (s stubAdvisor) Chat(context.Context, []advisor.ChatMessage, []advisor.PropertySummary) string {
	return advisor.FallbackChat
}

type stubMailer struct {
	err  error
	sent []string
}

func (m *stubMailer) SendValuationReport(to, _, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func newTestValuationService(adv advisor.Advisor, mailer *stubMailer) (*ValuationService, *LeadService) {
	leads := newTestLeadService(repository.NewMemoryLeadRepository(), nil)
	return NewValuationService(adv, leads, mailer, zap.NewNop()), leads
}

func TestValuationFlowCapturesLeadAndSendsReport(t *testing.T) {
	mailer := &stubMailer{}
	estimate := "Estimamos un valor de mercado entre USD 140.000 y USD 155.000 para la propiedad."
	s, leads := newTestValuationService(stubAdvisor{valuation: estimate, email: "informe"}, mailer)

	result, err := s.Run(context.Background(), ValuationInput{
		Name:    "Ana García",
		Email:   "ana@example.com",
		Address: "Av. Colón 1234",
		AreaM2:  120,
		Rooms:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, estimate, result.Valuation)
	assert.True(t, result.EmailSent)
	assert.Equal(t, []string{"ana@example.com"}, mailer.sent)

	captured := leads.ListLeads(context.Background())
	require.Len(t, captured, 1)
	lead := captured[0]
	assert.Equal(t, "TASACIÓN_ONLINE", lead.PropertyID)
	assert.Equal(t, domain.LeadStatusNew, lead.Status)
	assert.Contains(t, lead.Message, "Av. Colón 1234")
	assert.True(t, strings.HasSuffix(lead.Message, "..."))
}

func TestValuationMessageTruncatesEstimate(t *testing.T) {
	long := strings.Repeat("á", 120)
	msg := valuationMessage("Av. Colón 1234", long)
	assert.Contains(t, msg, strings.Repeat("á", 50))
	assert.NotContains(t, msg, strings.Repeat("á", 51))
}

func TestValuationFlowSurvivesMailFailure(t *testing.T) {
	mailer := &stubMailer{err: errors.New("smtp down")}
	s, leads := newTestValuationService(stubAdvisor{valuation: "estimación", email: "informe"}, mailer)

	result, err := s.Run(context.Background(), ValuationInput{
		Name:    "Ana García",
		Email:   "ana@example.com",
		Address: "Av. Colón 1234",
	})
	require.NoError(t, err)
	assert.False(t, result.EmailSent)
	assert.Len(t, leads.ListLeads(context.Background()), 1)
}

func TestValuationFlowUsesAdvisorFallback(t *testing.T) {
	mailer := &stubMailer{}
	s, _ := newTestValuationService(stubAdvisor{
		valuation: advisor.FallbackValuation,
		email:     advisor.FallbackEmail,
	}, mailer)

	result, err := s.Run(context.Background(), ValuationInput{
		Name:    "Ana García",
		Email:   "ana@example.com",
		Address: "Av. Colón 1234",
	})
	require.NoError(t, err)
	assert.Equal(t, advisor.FallbackValuation, result.Valuation)
	assert.NotEmpty(t, result.LeadID)
}
