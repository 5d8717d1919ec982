//go:build linux

package notify

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBusNotifyReplaces(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	notifier, err := New()
	require.NoError(t, err)
	if _, ok := notifier.(Nop); ok {
		t.Skip("session bus not reachable")
	}

	first, err := notifier.Notify(Notification{Title: "Track 1", Body: "Artist - Album", Timeout: 2000})
	require.NoError(t, err)
	assert.NotZero(t, first)

	second, err := notifier.Notify(Notification{Title: "Track 2", Timeout: 1000, ReplacesID: first})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.NoError(t, notifier.Close(second))
}
