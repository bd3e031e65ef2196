package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connect-inmobiliaria/crm-service/internal/auth"
	"github.com/connect-inmobiliaria/crm-service/internal/config"
	"github.com/connect-inmobiliaria/crm-service/internal/events"
	"github.com/connect-inmobiliaria/crm-service/internal/repository"
	"github.com/connect-inmobiliaria/crm-service/internal/service"
	"github.com/connect-inmobiliaria/crm-service/internal/session"
)

func newPollerFixture(t *testing.T) (*BadgePoller, *service.LeadService, *session.Manager) {
	t.Helper()
	logger := zap.NewNop()
	leads := service.NewLeadService(service.LeadDependencies{
		LeadRepo:     repository.NewMemoryLeadRepository(),
		ActivityRepo: repository.NewMemoryLeadActivityRepository(),
		Dispatcher:   events.NewInMemoryDispatcher(),
		Stats:        config.StatsConfig{NewLeadsPollSeconds: 30, FallbackVisitsToday: 1420},
		Logger:       logger,
	})
	cfg := config.AuthConfig{Passcode: "1234", JWTSecret: "test-secret", SessionTTLMinutes: 60}
	sessions := session.NewManager(cfg, auth.NewTokenManager(cfg.JWTSecret, time.Hour), events.NewInMemoryDispatcher(), logger)
	return NewBadgePoller(leads, sessions, time.Second, logger), leads, sessions
}

func TestTickSkipsWhenNoSessionUnlocked(t *testing.T) {
	poller, leads, sessions := newPollerFixture(t)
	snap := sessions.Create()
	_, err := leads.CreateLead(context.Background(), service.LeadCreateInput{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	poller.tick(context.Background())

	current, err := sessions.Snapshot(snap.SessionID)
	require.NoError(t, err)
	assert.Zero(t, current.NewLeads)
}

func TestTickPushesCountToUnlockedSessions(t *testing.T) {
	poller, leads, sessions := newPollerFixture(t)
	snap := sessions.Create()
	_, _, _, err := sessions.SubmitChallenge(context.Background(), snap.SessionID, "1234")
	require.NoError(t, err)

	for _, email := range []string{"ana@example.com", "carlos@example.com"} {
		_, err := leads.CreateLead(context.Background(), service.LeadCreateInput{Name: "x", Email: email})
		require.NoError(t, err)
	}

	poller.tick(context.Background())

	current, err := sessions.Snapshot(snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), current.NewLeads)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	poller, _, _ := newPollerFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancellation")
	}
}
