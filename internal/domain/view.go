package domain

// View tags the screens of the hosting application shell.
type View string

const (
	ViewHome      View = "home"
	ViewListings  View = "listings"
	ViewDashboard View = "dashboard"
	ViewPublish   View = "publish"
	ViewValuation View = "valuation"
)

// Valid reports whether the view is one of the known tags.
func (v View) Valid() bool {
	switch v {
	case ViewHome, ViewListings, ViewDashboard, ViewPublish, ViewValuation:
		return true
	}
	return false
}

// Gated reports whether navigating to the view requires an unlocked session.
func (v View) Gated() bool {
	return v == ViewDashboard || v == ViewPublish
}

// DashboardTab is the secondary tag carried only by the dashboard view.
type DashboardTab string

const (
	TabAnalytics DashboardTab = "analytics"
	TabCRM       DashboardTab = "crm"
)

// Valid reports whether the tab is a known dashboard tab.
func (t DashboardTab) Valid() bool {
	return t == TabAnalytics || t == TabCRM
}

// ViewState is the current screen plus its sub-state. Selecting a new view
// always clears SelectedPropertyID so no stale detail leaks across navigation.
type ViewState struct {
	Current            View
	DashboardTab       DashboardTab
	SelectedPropertyID *string
}

// DefaultViewState is the state every session starts in.
func DefaultViewState() ViewState {
	return ViewState{Current: ViewHome, DashboardTab: TabAnalytics}
}
