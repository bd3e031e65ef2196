package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connect-inmobiliaria/crm-service/internal/api/http/handlers"
	"github.com/connect-inmobiliaria/crm-service/internal/auth"
	"github.com/connect-inmobiliaria/crm-service/internal/config"
	"github.com/connect-inmobiliaria/crm-service/internal/events"
	"github.com/connect-inmobiliaria/crm-service/internal/integration/advisor"
	"github.com/connect-inmobiliaria/crm-service/internal/integration/idecor"
	"github.com/connect-inmobiliaria/crm-service/internal/repository"
	"github.com/connect-inmobiliaria/crm-service/internal/service"
	"github.com/connect-inmobiliaria/crm-service/internal/session"
)

type fixture struct {
	app      *fiber.App
	sessions *session.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher()

	leadService := service.NewLeadService(service.LeadDependencies{
		LeadRepo:     repository.NewMemoryLeadRepository(),
		ActivityRepo: repository.NewMemoryLeadActivityRepository(),
		Dispatcher:   dispatcher,
		Stats:        config.StatsConfig{NewLeadsPollSeconds: 30, FallbackVisitsToday: 1420},
		Logger:       logger,
	})

	wfs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"features": []}`))
	}))
	t.Cleanup(wfs.Close)

	propertyService := service.NewPropertyService(service.PropertyDependencies{
		PropertyRepo: repository.NewMemoryPropertyRepository(repository.SeedProperties()),
		Cadastral:    idecor.NewClient(wfs.URL, time.Second),
		Dispatcher:   dispatcher,
		Logger:       logger,
	})

	authCfg := config.AuthConfig{Passcode: "1234", JWTSecret: "test-secret", SessionTTLMinutes: 60}
	sessions := session.NewManager(authCfg, auth.NewTokenManager(authCfg.JWTSecret, time.Hour), dispatcher, logger)

	// Unconfigured advisor answers every call with its fallback text.
	adv := advisor.NewClient("", "", "", time.Second, logger)
	valuationService := service.NewValuationService(adv, leadService, nil, logger)

	app := fiber.New()
	RegisterMiddlewares(app, logger, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:     handlers.NewHealthHandler("crm-service", "test", nil, nil),
		Sessions:   handlers.NewSessionHandler(sessions),
		Leads:      handlers.NewLeadsHandler(leadService),
		Properties: handlers.NewPropertiesHandler(propertyService, adv),
		Stats:      handlers.NewStatsHandler(leadService),
		Valuation:  handlers.NewValuationHandler(valuationService),
		Chat:       handlers.NewChatHandler(adv, propertyService),
		Gate:       session.NewMiddleware(sessions),
	})
	return &fixture{app: app, sessions: sessions}
}

func (f *fixture) request(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func (f *fixture) unlock(t *testing.T) string {
	t.Helper()
	snap := f.sessions.Create()
	resp, body := f.request(t, fiber.MethodPost, fmt.Sprintf("/api/session/%s/challenge", snap.SessionID), "", map[string]any{
		"passcode": "1234",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	return data["token"].(string)
}

func TestLeadCaptureIsPublic(t *testing.T) {
	f := newFixture(t)
	resp, body := f.request(t, fiber.MethodPost, "/api/leads", "", map[string]any{
		"name":  "Ana García",
		"email": "ana@example.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Nuevo", data["status"])
}

func TestLeadCaptureValidatesPayload(t *testing.T) {
	f := newFixture(t)
	resp, body := f.request(t, fiber.MethodPost, "/api/leads", "", map[string]any{
		"name":  "Ana García",
		"email": "no-es-un-email",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.NotEmpty(t, errBody["code"])
}

func TestLeadListRequiresUnlockedSession(t *testing.T) {
	f := newFixture(t)
	resp, _ := f.request(t, fiber.MethodGet, "/api/leads", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLeadListWithToken(t *testing.T) {
	f := newFixture(t)
	token := f.unlock(t)

	_, _ = f.request(t, fiber.MethodPost, "/api/leads", "", map[string]any{
		"name":  "Ana García",
		"email": "ana@example.com",
	})

	resp, body := f.request(t, fiber.MethodGet, "/api/leads?q=ANA", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].([]any)
	require.Len(t, data, 1)
}

func TestStatusUpdateByEmail(t *testing.T) {
	f := newFixture(t)
	token := f.unlock(t)
	_, _ = f.request(t, fiber.MethodPost, "/api/leads", "", map[string]any{
		"name":  "Ana García",
		"email": "ana@example.com",
	})

	resp, body := f.request(t, fiber.MethodPatch, "/api/leads/by-email/ana@example.com", token, map[string]any{
		"status": "Contactado",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["updated"])
}

func TestStatusUpdateRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	token := f.unlock(t)

	resp, _ := f.request(t, fiber.MethodPatch, "/api/leads/by-email/ana@example.com", token, map[string]any{
		"status": "Pendiente",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPropertyCatalogIsPublic(t *testing.T) {
	f := newFixture(t)
	resp, body := f.request(t, fiber.MethodGet, "/api/properties", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].([]any)
	assert.Len(t, data, 3)
}

func TestPropertyAdviceUsesFallbackWhenAdvisorDisabled(t *testing.T) {
	f := newFixture(t)
	resp, body := f.request(t, fiber.MethodGet, "/api/properties/1/advice", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "1", data["property_id"])
	assert.NotEmpty(t, data["advice"])
}

func TestPublishRequiresUnlockedSession(t *testing.T) {
	f := newFixture(t)
	resp, _ := f.request(t, fiber.MethodPost, "/api/properties", "", map[string]any{
		"title": "Casa",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStatsBehindGate(t *testing.T) {
	f := newFixture(t)
	token := f.unlock(t)

	resp, body := f.request(t, fiber.MethodGet, "/api/stats", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1420), data["visitas_hoy"])
}

func TestGatedNavigationFlow(t *testing.T) {
	f := newFixture(t)
	snap := f.sessions.Create()

	resp, body := f.request(t, fiber.MethodPost, fmt.Sprintf("/api/session/%s/navigate", snap.SessionID), "", map[string]any{
		"view": "dashboard",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["challenged"])
	assert.Equal(t, "home", data["view"])

	resp, _ = f.request(t, fiber.MethodPost, fmt.Sprintf("/api/session/%s/challenge", snap.SessionID), "", map[string]any{
		"passcode": "0000",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = f.request(t, fiber.MethodPost, fmt.Sprintf("/api/session/%s/challenge", snap.SessionID), "", map[string]any{
		"passcode": "1234",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]any)
	assert.Equal(t, "dashboard", data["view"])
	assert.NotEmpty(t, data["token"])
}

func TestValuationAnswersWithFallbackWhenAdvisorDisabled(t *testing.T) {
	f := newFixture(t)
	resp, body := f.request(t, fiber.MethodPost, "/api/valuation", "", map[string]any{
		"name":    "Ana García",
		"email":   "ana@example.com",
		"address": "Av. Colón 1234",
		"area_m2": 120,
		"rooms":   3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["valuation"])
	assert.NotEmpty(t, data["lead_id"])
	assert.Equal(t, false, data["email_sent"])
}

func TestChatNeverFails(t *testing.T) {
	f := newFixture(t)
	resp, body := f.request(t, fiber.MethodPost, "/api/chat", "", map[string]any{
		"messages": []map[string]any{{"role": "user", "text": "Busco un departamento en alquiler"}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["reply"])
}

func TestHealthLive(t *testing.T) {
	f := newFixture(t)
	resp, body := f.request(t, fiber.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])
}

func TestUnknownViewRejected(t *testing.T) {
	f := newFixture(t)
	snap := f.sessions.Create()
	resp, _ := f.request(t, fiber.MethodPost, fmt.Sprintf("/api/session/%s/navigate", snap.SessionID), "", map[string]any{
		"view": "settings",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
