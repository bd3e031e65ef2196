package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLeadStatus(t *testing.T) {
	for _, status := range AllLeadStatuses {
		parsed, err := ParseLeadStatus(string(status))
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}
}

func TestParseLeadStatusRejectsUnknownValues(t *testing.T) {
	for _, raw := range []string{"", "nuevo", "Pendiente", "NUEVO", "Cerrado"} {
		_, err := ParseLeadStatus(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestViewGated(t *testing.T) {
	assert.True(t, ViewDashboard.Gated())
	assert.True(t, ViewPublish.Gated())
	assert.False(t, ViewHome.Gated())
	assert.False(t, ViewListings.Gated())
	assert.False(t, ViewValuation.Gated())
}

func TestViewValid(t *testing.T) {
	assert.True(t, ViewListings.Valid())
	assert.False(t, View("settings").Valid())
}

func TestDefaultViewState(t *testing.T) {
	state := DefaultViewState()
	assert.Equal(t, ViewHome, state.Current)
	assert.Equal(t, TabAnalytics, state.DashboardTab)
	assert.Nil(t, state.SelectedPropertyID)
}
