package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/spotwave/internal/spotify"
)

type mutableSource struct{ pc *spotify.PlaybackContext }

func (m *mutableSource) PlaybackContext() *spotify.PlaybackContext { return m.pc.Clone() }

func (m *mutableSource) play(id, name string) {
	m.pc = &spotify.PlaybackContext{IsPlaying: true, Item: &spotify.Track{
		ID: id, Name: name, Artists: []string{"Artist"}, Album: "Album",
	}}
}

type fakeNotifier struct {
	sent []Notification
	err  error
}

func (f *fakeNotifier) Notify(n Notification) (uint32, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.sent = append(f.sent, n)
	return uint32(len(f.sent)), nil
}

func (f *fakeNotifier) Close(uint32) error { return nil }

func TestTrackWatcher_NotifiesOnChange(t *testing.T) {
	src := &mutableSource{}
	n := &fakeNotifier{}
	w := NewTrackWatcher(src, n, nil)

	w.Check()
	src.play("a", "First")
	w.Check()
	assert.Empty(t, n.sent, "first track is not announced")

	w.Check()
	assert.Empty(t, n.sent, "same track is not announced twice")

	src.play("b", "Second")
	w.Check()
	require.Len(t, n.sent, 1)
	assert.Equal(t, "Second", n.sent[0].Title)
	assert.Equal(t, "Artist - Album", n.sent[0].Body)
	assert.Zero(t, n.sent[0].ReplacesID)

	src.play("c", "Third")
	w.Check()
	require.Len(t, n.sent, 2)
	assert.Equal(t, uint32(1), n.sent[1].ReplacesID)
}

func TestTrackWatcher_NotifyError(t *testing.T) {
	src := &mutableSource{}
	n := &fakeNotifier{err: errors.New("no daemon")}
	w := NewTrackWatcher(src, n, nil)

	src.play("a", "First")
	w.Check()
	src.play("b", "Second")
	w.Check()
	assert.Equal(t, "b", w.lastID)
	assert.Zero(t, w.notifyID)
}

func TestTrackBody(t *testing.T) {
	assert.Equal(t, "Album", trackBody(&spotify.Track{Album: "Album"}))
	assert.Equal(t, "A, B", trackBody(&spotify.Track{Artists: []string{"A", "B"}}))
}
