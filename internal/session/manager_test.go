package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connect-inmobiliaria/crm-service/internal/auth"
	"github.com/connect-inmobiliaria/crm-service/internal/config"
	"github.com/connect-inmobiliaria/crm-service/internal/domain"
	"github.com/connect-inmobiliaria/crm-service/internal/events"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	cfg := config.AuthConfig{Passcode: "1234", JWTSecret: "test-secret", SessionTTLMinutes: 60}
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Hour)
	return NewManager(cfg, tokens, events.NewInMemoryDispatcher(), zap.NewNop())
}

func TestCreateStartsLockedAtHome(t *testing.T) {
	m := newTestManager(t)
	snap := m.Create()

	assert.Equal(t, GateLocked, snap.Gate)
	assert.Equal(t, domain.ViewHome, snap.View.Current)
	assert.Zero(t, snap.NewLeads)
}

func TestNavigateToPublicView(t *testing.T) {
	m := newTestManager(t)
	snap := m.Create()

	result, err := m.Navigate(context.Background(), snap.SessionID, domain.ViewListings, nil)
	require.NoError(t, err)
	assert.False(t, result.Challenged)
	assert.Equal(t, domain.ViewListings, result.View.Current)
}

func TestGatedNavigationChallengesWithoutMovingView(t *testing.T) {
	m := newTestManager(t)
	snap := m.Create()

	result, err := m.Navigate(context.Background(), snap.SessionID, domain.ViewDashboard, nil)
	require.NoError(t, err)
	assert.True(t, result.Challenged)
	assert.Equal(t, domain.ViewHome, result.View.Current)

	current, err := m.Snapshot(snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, GateChallengePrompted, current.Gate)
	assert.Equal(t, domain.ViewHome, current.View.Current)
}

func TestWrongPasscodeKeepsPromptOpen(t *testing.T) {
	m := newTestManager(t)
	snap := m.Create()
	_, err := m.Navigate(context.Background(), snap.SessionID, domain.ViewDashboard, nil)
	require.NoError(t, err)

	_, _, _, err = m.SubmitChallenge(context.Background(), snap.SessionID, "0000")
	assert.ErrorIs(t, err, ErrInvalidPasscode)

	current, err := m.Snapshot(snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, GateChallengePrompted, current.Gate)
	assert.Equal(t, domain.ViewHome, current.View.Current)
}

func TestCorrectPasscodeUnlocksAndCompletesPendingNavigation(t *testing.T) {
	m := newTestManager(t)
	snap := m.Create()
	tab := domain.TabCRM
	_, err := m.Navigate(context.Background(), snap.SessionID, domain.ViewDashboard, &tab)
	require.NoError(t, err)

	token, expiresAt, view, err := m.SubmitChallenge(context.Background(), snap.SessionID, "1234")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.Equal(t, domain.ViewDashboard, view.Current)
	assert.Equal(t, domain.TabCRM, view.DashboardTab)

	sessionID, err := m.Authorize(token)
	require.NoError(t, err)
	assert.Equal(t, snap.SessionID, sessionID)
}

func TestUnlockWithoutPendingDefaultsToDashboardAnalytics(t *testing.T) {
	m := newTestManager(t)
	snap := m.Create()

	_, _, view, err := m.SubmitChallenge(context.Background(), snap.SessionID, "1234")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewDashboard, view.Current)
	assert.Equal(t, domain.TabAnalytics, view.DashboardTab)
}

func TestDismissChallengeReturnsToLocked(t *testing.T) {
	m := newTestManager(t)
	snap := m.Create()
	_, err := m.Navigate(context.Background(), snap.SessionID, domain.ViewPublish, nil)
	require.NoError(t, err)

	require.NoError(t, m.DismissChallenge(snap.SessionID))

	current, err := m.Snapshot(snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, GateLocked, current.Gate)
	assert.Equal(t, domain.ViewHome, current.View.Current)
}

func TestLogoutResetsGateViewAndBadge(t *testing.T) {
	m := newTestManager(t)
	snap := m.Create()
	_, _, _, err := m.SubmitChallenge(context.Background(), snap.SessionID, "1234")
	require.NoError(t, err)
	m.SetBadgeForUnlocked(7)

	view, err := m.Logout(context.Background(), snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewHome, view.Current)

	current, err := m.Snapshot(snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, GateLocked, current.Gate)
	assert.Zero(t, current.NewLeads)
}

func TestAuthorizeRejectsTokenAfterLogout(t *testing.T) {
	m := newTestManager(t)
	snap := m.Create()
	token, _, _, err := m.SubmitChallenge(context.Background(), snap.SessionID, "1234")
	require.NoError(t, err)

	_, err = m.Logout(context.Background(), snap.SessionID)
	require.NoError(t, err)

	_, err = m.Authorize(token)
	assert.ErrorIs(t, err, ErrNotUnlocked)
}

func TestNavigationClearsSelectedProperty(t *testing.T) {
	m := newTestManager(t)
	snap := m.Create()
	id := "2"
	require.NoError(t, m.SelectProperty(snap.SessionID, &id))

	current, err := m.Snapshot(snap.SessionID)
	require.NoError(t, err)
	require.NotNil(t, current.View.SelectedPropertyID)

	// Re-selecting the current view still drops the detail selection.
	result, err := m.Navigate(context.Background(), snap.SessionID, current.View.Current, nil)
	require.NoError(t, err)
	assert.Nil(t, result.View.SelectedPropertyID)
}

func TestBadgeOnlyReachesUnlockedSessions(t *testing.T) {
	m := newTestManager(t)
	locked := m.Create()
	unlocked := m.Create()
	_, _, _, err := m.SubmitChallenge(context.Background(), unlocked.SessionID, "1234")
	require.NoError(t, err)

	m.SetBadgeForUnlocked(3)

	lockedSnap, err := m.Snapshot(locked.SessionID)
	require.NoError(t, err)
	assert.Zero(t, lockedSnap.NewLeads)

	unlockedSnap, err := m.Snapshot(unlocked.SessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unlockedSnap.NewLeads)
}

func TestHasUnlocked(t *testing.T) {
	m := newTestManager(t)
	snap := m.Create()
	assert.False(t, m.HasUnlocked())

	_, _, _, err := m.SubmitChallenge(context.Background(), snap.SessionID, "1234")
	require.NoError(t, err)
	assert.True(t, m.HasUnlocked())
}

func TestUnknownSessionReported(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Snapshot("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
