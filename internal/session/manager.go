package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/connect-inmobiliaria/crm-service/internal/auth"
	"github.com/connect-inmobiliaria/crm-service/internal/config"
	"github.com/connect-inmobiliaria/crm-service/internal/domain"
	"github.com/connect-inmobiliaria/crm-service/internal/events"
)

// Errors reported by the manager.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidPasscode = errors.New("invalid passcode")
	ErrNotUnlocked     = errors.New("session not unlocked")
)

// Snapshot is a read-only copy of a session's shell state.
type Snapshot struct {
	SessionID string
	Gate      GateState
	View      domain.ViewState
	NewLeads  int64
}

// Manager owns every live shell and serializes all mutations behind one
// mutex. It is the only writer path for gate state, view state and the badge
// counter.
type Manager struct {
	mu         sync.Mutex
	sessions   map[string]*Shell
	cfg        config.AuthConfig
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewManager constructs the session registry.
func NewManager(cfg config.AuthConfig, tokens *auth.TokenManager, dispatcher events.Dispatcher, logger *zap.Logger) *Manager {
	return &Manager{
		sessions:   make(map[string]*Shell),
		cfg:        cfg,
		tokens:     tokens,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create registers a new locked session and returns its snapshot.
func (m *Manager) Create() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	shell := NewShell()
	m.sessions[id] = shell
	return snapshot(id, shell)
}

// Snapshot returns the current state of a session.
func (m *Manager) Snapshot(sessionID string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	shell, ok := m.sessions[sessionID]
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}
	return snapshot(sessionID, shell), nil
}

// Navigate routes a view change through the gate. Applied navigations emit a
// view_change event; challenged ones only flip the gate.
func (m *Manager) Navigate(ctx context.Context, sessionID string, target domain.View, tab *domain.DashboardTab) (NavResult, error) {
	m.mu.Lock()
	shell, ok := m.sessions[sessionID]
	if !ok {
		m.mu.Unlock()
		return NavResult{}, ErrSessionNotFound
	}
	result := shell.Navigate(target, tab)
	m.mu.Unlock()

	if !result.Challenged {
		payload := events.ViewChangedPayload{View: target}
		if tab != nil {
			payload.Tab = *tab
		}
		m.publish(ctx, events.Event{
			Type:      events.EventViewChanged,
			SubjectID: sessionID,
			Payload:   payload,
		})
	}
	return result, nil
}

// SubmitChallenge answers the passcode prompt. A correct answer unlocks the
// session, completes the pending navigation and returns a signed session
// token. A wrong answer leaves the gate at ChallengePrompted.
func (m *Manager) SubmitChallenge(ctx context.Context, sessionID, passcode string) (string, time.Time, domain.ViewState, error) {
	m.mu.Lock()
	shell, ok := m.sessions[sessionID]
	if !ok {
		m.mu.Unlock()
		return "", time.Time{}, domain.ViewState{}, ErrSessionNotFound
	}

	if !auth.VerifyPasscode(m.cfg, passcode) {
		// Keep the prompt open; the caller shows the rejection notice.
		if shell.gate != GateUnlocked {
			shell.gate = GateChallengePrompted
		}
		m.mu.Unlock()
		return "", time.Time{}, domain.ViewState{}, ErrInvalidPasscode
	}

	view := shell.Unlock()
	m.mu.Unlock()

	token, expiresAt, err := m.tokens.GenerateToken(sessionID)
	if err != nil {
		return "", time.Time{}, domain.ViewState{}, err
	}

	m.publish(ctx, events.Event{
		Type:      events.EventAdminLogin,
		SubjectID: sessionID,
	})
	return token, expiresAt, view, nil
}

// DismissChallenge closes an unanswered prompt.
func (m *Manager) DismissChallenge(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	shell, ok := m.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	shell.DismissChallenge()
	return nil
}

// Logout locks the session and resets view and badge state.
func (m *Manager) Logout(ctx context.Context, sessionID string) (domain.ViewState, error) {
	m.mu.Lock()
	shell, ok := m.sessions[sessionID]
	if !ok {
		m.mu.Unlock()
		return domain.ViewState{}, ErrSessionNotFound
	}
	view := shell.Logout()
	m.mu.Unlock()

	m.publish(ctx, events.Event{
		Type:      events.EventAdminLogout,
		SubjectID: sessionID,
	})
	return view, nil
}

// SelectProperty records (or clears, with nil) the detail-view selection.
func (m *Manager) SelectProperty(sessionID string, propertyID *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	shell, ok := m.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	shell.SelectProperty(propertyID)
	return nil
}

// Authorize validates a bearer token and returns the session id when the
// backing session is still unlocked.
func (m *Manager) Authorize(tokenStr string) (string, error) {
	claims, err := m.tokens.ParseToken(tokenStr)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	shell, ok := m.sessions[claims.SessionID]
	if !ok {
		return "", ErrSessionNotFound
	}
	if shell.Gate() != GateUnlocked {
		return "", ErrNotUnlocked
	}
	return claims.SessionID, nil
}

// SetBadgeForUnlocked pushes the latest new-leads count to every unlocked
// session (last write wins).
func (m *Manager) SetBadgeForUnlocked(count int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, shell := range m.sessions {
		if shell.Gate() == GateUnlocked {
			shell.SetNewLeadsBadge(count)
		}
	}
}

// HasUnlocked reports whether any session is currently unlocked; the badge
// poller skips its read entirely when none is.
func (m *Manager) HasUnlocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, shell := range m.sessions {
		if shell.Gate() == GateUnlocked {
			return true
		}
	}
	return false
}

func (m *Manager) publish(ctx context.Context, event events.Event) {
	if m.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = m.dispatcher.Publish(ctx, event)
}

func snapshot(id string, shell *Shell) Snapshot {
	return Snapshot{
		SessionID: id,
		Gate:      shell.Gate(),
		View:      shell.View(),
		NewLeads:  shell.NewLeadsBadge(),
	}
}
