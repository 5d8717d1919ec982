package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUrgencyMatchesFreedesktopLevels(t *testing.T) {
	assert.Equal(t, byte(0), byte(UrgencyLow))
	assert.Equal(t, byte(1), byte(UrgencyNormal))
	assert.Equal(t, byte(2), byte(UrgencyCritical))
}

func TestNop(t *testing.T) {
	var n Notifier = Nop{}

	id, err := n.Notify(Notification{Title: "x"})
	assert.NoError(t, err)
	assert.Zero(t, id)
	assert.NoError(t, n.Close(1))
}
