package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/connect-inmobiliaria/crm-service/internal/observability"
)

// Static fallbacks. The advisor never surfaces an error to its callers: a
// failing or unconfigured model answers with one of these instead.
const (
	FallbackAdvice    = "Consulte con nuestros agentes para un asesoramiento personalizado."
	FallbackValuation = "No pudimos calcular una tasación automática en este momento. Un agente se pondrá en contacto para coordinar una tasación presencial sin cargo."
	FallbackEmail     = "Gracias por confiar en Connect Inmobiliaria. Un agente revisará los datos de tu propiedad y te enviará el informe de tasación a la brevedad."
	FallbackChat      = "Lo siento, tuve un problema al procesar tu mensaje. ¿Podemos intentar de nuevo?"
)

// Advisor produces free-text guidance from property facts and conversations.
type Advisor interface {
	PropertyAdvice(ctx context.Context, title string, price int64, transaction string) string
	Valuation(ctx context.Context, facts ValuationFacts) string
	ComposeValuationEmail(ctx context.Context, name, valuation string) string
	Chat(ctx context.Context, history []ChatMessage, catalog []PropertySummary) string
}

// Client talks to a hosted generative-text model over its REST surface.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds the advisor client. An empty base URL or API key leaves
// the advisor disabled; every call then answers with its fallback.
func NewClient(baseURL, apiKey, model string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// PropertyAdvice returns a short investment note for a listing.
func (c *Client) PropertyAdvice(ctx context.Context, title string, price int64, transaction string) string {
	prompt := fmt.Sprintf(
		"Proporciona un breve consejo de inversión (max 30 palabras) para una propiedad de %s llamada \"%s\" con un precio de %d. Menciona algo relevante sobre el mercado inmobiliario de Córdoba, Argentina.",
		transaction, title, price)
	return c.generate(ctx, "advice", FallbackAdvice, content{Role: "user", Parts: []part{{Text: prompt}}})
}

// Valuation returns a market-value estimate narrative for the given facts.
func (c *Client) Valuation(ctx context.Context, facts ValuationFacts) string {
	prompt := fmt.Sprintf(
		"Actúa como tasador inmobiliario de Córdoba, Argentina. Estima un rango de valor de mercado en USD para una propiedad en %s, barrio %s, de %.0f m2, %d ambientes, estado %s. Responde en un párrafo breve con el rango y su justificación.",
		facts.Address, facts.Neighborhood, facts.AreaM2, facts.Rooms, facts.Condition)
	return c.generate(ctx, "valuation", FallbackValuation, content{Role: "user", Parts: []part{{Text: prompt}}})
}

// ComposeValuationEmail drafts the report email sent after an online valuation.
func (c *Client) ComposeValuationEmail(ctx context.Context, name, valuation string) string {
	prompt := fmt.Sprintf(
		"Redacta un email breve y cordial en español para %s con el resultado de su tasación online: %s. Firma como Connect Inmobiliaria.",
		name, valuation)
	return c.generate(ctx, "compose_email", FallbackEmail, content{Role: "user", Parts: []part{{Text: prompt}}})
}

// Chat answers the site assistant with the catalog as grounding context.
func (c *Client) Chat(ctx context.Context, history []ChatMessage, catalog []PropertySummary) string {
	var sb strings.Builder
	sb.WriteString("Eres ConnectBot, asistente de Connect Inmobiliaria en Córdoba, Argentina. Catálogo actual:\n")
	for _, p := range catalog {
		fmt.Fprintf(&sb, "- %s (%s) USD %d - %s\n", p.Title, p.Transaction, p.Price, p.Address)
	}

	contents := []content{{Role: "user", Parts: []part{{Text: sb.String()}}}}
	for _, msg := range history {
		role := "user"
		if msg.Role == "model" {
			role = "model"
		}
		contents = append(contents, content{Role: role, Parts: []part{{Text: msg.Text}}})
	}
	return c.generate(ctx, "chat", FallbackChat, contents...)
}

func (c *Client) generate(ctx context.Context, operation, fallback string, contents ...content) string {
	text, err := c.call(ctx, contents)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("advisor call failed", zap.String("operation", operation), zap.Error(err))
		}
		observability.RecordAdvisorFallback(operation)
		observability.RecordIntegrationError("advisor")
		return fallback
	}
	if strings.TrimSpace(text) == "" {
		observability.RecordAdvisorFallback(operation)
		return fallback
	}
	return text
}

func (c *Client) call(ctx context.Context, contents []content) (string, error) {
	if c.baseURL == "" || c.apiKey == "" {
		return "", errors.New("advisor not configured")
	}

	body, err := json.Marshal(generateRequest{Contents: contents})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advisor returned status %d", resp.StatusCode)
	}

	var payload generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	return payload.text(), nil
}
