package session

import (
	"github.com/connect-inmobiliaria/crm-service/internal/domain"
)

// GateState enumerates the access gate's states.
type GateState string

const (
	GateLocked            GateState = "locked"
	GateChallengePrompted GateState = "challenge_prompted"
	GateUnlocked          GateState = "unlocked"
)

// pendingNav remembers where a visitor was headed when the gate stopped them,
// so a successful challenge can finish the navigation.
type pendingNav struct {
	view domain.View
	tab  domain.DashboardTab
}

// Shell is the application-shell state for one browser session: gate state,
// current view, selection sub-state and the new-leads badge. Methods are not
// safe for concurrent use; the Manager serializes access, which preserves the
// original single-writer discipline.
type Shell struct {
	gate     GateState
	view     domain.ViewState
	pending  *pendingNav
	newLeads int64
}

// NewShell returns a locked shell at the default public view.
func NewShell() *Shell {
	return &Shell{
		gate: GateLocked,
		view: domain.DefaultViewState(),
	}
}

// Gate returns the current gate state.
func (s *Shell) Gate() GateState { return s.gate }

// View returns a copy of the current view state.
func (s *Shell) View() domain.ViewState { return s.view }

// NewLeadsBadge returns the badge counter.
func (s *Shell) NewLeadsBadge() int64 { return s.newLeads }

// NavResult reports the outcome of a navigation request.
type NavResult struct {
	Challenged bool
	View       domain.ViewState
}

// Navigate applies a navigation request. Gated targets while the gate is not
// unlocked never change the view; they flip the gate to ChallengePrompted and
// remember the target. Every applied navigation clears the selected property,
// even when the target equals the current view.
func (s *Shell) Navigate(target domain.View, tab *domain.DashboardTab) NavResult {
	if target.Gated() && s.gate != GateUnlocked {
		pending := pendingNav{view: target, tab: domain.TabAnalytics}
		if tab != nil {
			pending.tab = *tab
		}
		s.pending = &pending
		s.gate = GateChallengePrompted
		return NavResult{Challenged: true, View: s.view}
	}

	s.view.Current = target
	if tab != nil {
		s.view.DashboardTab = *tab
	}
	s.view.SelectedPropertyID = nil
	return NavResult{View: s.view}
}

// Unlock transitions ChallengePrompted (or Locked) to Unlocked and completes
// the pending navigation, defaulting to the dashboard analytics tab.
func (s *Shell) Unlock() domain.ViewState {
	s.gate = GateUnlocked

	target := pendingNav{view: domain.ViewDashboard, tab: domain.TabAnalytics}
	if s.pending != nil {
		target = *s.pending
		s.pending = nil
	}
	s.view.Current = target.view
	s.view.DashboardTab = target.tab
	s.view.SelectedPropertyID = nil
	return s.view
}

// DismissChallenge returns an unanswered challenge prompt to Locked. The
// current view is untouched.
func (s *Shell) DismissChallenge() {
	if s.gate == GateChallengePrompted {
		s.gate = GateLocked
		s.pending = nil
	}
}

// Logout locks the gate, returns to the default public view and zeroes the
// new-leads badge.
func (s *Shell) Logout() domain.ViewState {
	s.gate = GateLocked
	s.pending = nil
	s.newLeads = 0
	s.view = domain.DefaultViewState()
	return s.view
}

// SelectProperty records the property open in the detail view. A nil id
// clears the selection.
func (s *Shell) SelectProperty(id *string) {
	s.view.SelectedPropertyID = id
}

// SetNewLeadsBadge overwrites the badge counter (last write wins).
func (s *Shell) SetNewLeadsBadge(count int64) {
	s.newLeads = count
}
