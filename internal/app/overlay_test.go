package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
)

func TestOverlay_StartsClosed(t *testing.T) {
	o := NewOverlay()

	assert.Equal(t, OverlayClosed, o.State())
	assert.Zero(t, o.Listeners())
}

func TestOverlay_EveryTriggerClosesTheSameWay(t *testing.T) {
	for _, trigger := range DismissTriggers {
		t.Run(string(trigger), func(t *testing.T) {
			o := NewOverlay()
			o.Open(7)

			require.Equal(t, OverlayOpen, o.State())
			require.Equal(t, 3, o.Listeners())

			assert.True(t, o.Dismiss(trigger))
			assert.Equal(t, OverlaySnapshot{State: OverlayClosed}, o.Snapshot())
		})
	}
}

func TestOverlay_NoResidualListenersAfterOutsideClick(t *testing.T) {
	o := NewOverlay()
	o.Open(1)

	require.True(t, o.Dismiss(TriggerOutsideClick))
	assert.Zero(t, o.Listeners())

	// A later cancel key finds nothing to remove.
	assert.False(t, o.Dismiss(TriggerCancelKey))
	assert.False(t, o.Dismiss(TriggerCloseButton))
	assert.Equal(t, OverlayClosed, o.State())
}

func TestOverlay_ReopenKeepsOneListenerPerTrigger(t *testing.T) {
	o := NewOverlay()
	o.Open(1)
	o.Open(2)

	assert.Equal(t, 3, o.Listeners())
	assert.Equal(t, 2, o.Snapshot().QuoteID)

	assert.True(t, o.Dismiss(TriggerCancelKey))
	assert.Zero(t, o.Listeners())
}

func TestParseDismissTrigger(t *testing.T) {
	for _, want := range DismissTriggers {
		got, err := ParseDismissTrigger(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseDismissTrigger("double-click")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}
