//go:build linux

package mpris

import (
	"testing"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/spotwave/internal/event"
	"github.com/llehouerou/spotwave/internal/spotify"
)

type fixedSource struct{ pc *spotify.PlaybackContext }

func (f fixedSource) PlaybackContext() *spotify.PlaybackContext { return f.pc.Clone() }

type recorder struct{ sent []event.Event }

func (r *recorder) Send(e event.Event) { r.sent = append(r.sent, e) }

func newPlayer(pc *spotify.PlaybackContext) (*playerAdapter, *recorder) {
	rec := &recorder{}
	return &playerAdapter{source: fixedSource{pc: pc}, events: rec}, rec
}

func TestPlaybackStatus(t *testing.T) {
	p, _ := newPlayer(nil)
	status, _ := p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusStopped, status)

	p, _ = newPlayer(&spotify.PlaybackContext{IsPlaying: true})
	status, _ = p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPlaying, status)

	p, _ = newPlayer(&spotify.PlaybackContext{})
	status, _ = p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPaused, status)
}

func TestPlayPauseOnlyWhenNeeded(t *testing.T) {
	p, rec := newPlayer(&spotify.PlaybackContext{IsPlaying: true})
	assert.NoError(t, p.Play())
	assert.Empty(t, rec.sent)
	assert.NoError(t, p.Pause())
	assert.Equal(t, []event.Event{event.ResumePause{}}, rec.sent)

	p, rec = newPlayer(&spotify.PlaybackContext{})
	assert.NoError(t, p.Stop())
	assert.Empty(t, rec.sent)
	assert.NoError(t, p.Play())
	assert.Equal(t, []event.Event{event.ResumePause{}}, rec.sent)
}

func TestNextPrevious(t *testing.T) {
	p, rec := newPlayer(nil)
	assert.NoError(t, p.Next())
	assert.NoError(t, p.Previous())
	assert.Equal(t, []event.Event{event.NextSong{}, event.PreviousSong{}}, rec.sent)
}

func TestMetadata(t *testing.T) {
	p, _ := newPlayer(&spotify.PlaybackContext{Item: &spotify.Track{
		ID:       "t1",
		Name:     "Song",
		Artists:  []string{"A", "B"},
		Album:    "Record",
		Duration: 3 * time.Minute,
	}})
	meta, err := p.Metadata()
	assert.NoError(t, err)
	assert.Equal(t, "Song", meta.Title)
	assert.Equal(t, []string{"A", "B"}, meta.Artist)
	assert.Equal(t, "Record", meta.Album)
	assert.Equal(t, types.Microseconds(180_000_000), meta.Length)
	assert.Equal(t, formatTrackID("t1"), string(meta.TrackId))
}

func TestSetLoopStatusLandsOnRequestedMode(t *testing.T) {
	tests := []struct {
		name string
		from spotify.RepeatState
		to   types.LoopStatus
		want []event.Event
	}{
		{"same", spotify.RepeatOff, types.LoopStatusNone, nil},
		{"off to track", spotify.RepeatOff, types.LoopStatusTrack, []event.Event{event.SetRepeat{State: spotify.RepeatTrack}}},
		{"off to playlist", spotify.RepeatOff, types.LoopStatusPlaylist, []event.Event{event.SetRepeat{State: spotify.RepeatContext}}},
		{"playlist to off", spotify.RepeatContext, types.LoopStatusNone, []event.Event{event.SetRepeat{State: spotify.RepeatOff}}},
		{"track to track", spotify.RepeatTrack, types.LoopStatusTrack, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, rec := newPlayer(&spotify.PlaybackContext{RepeatState: tt.from})
			assert.NoError(t, p.SetLoopStatus(tt.to))
			assert.Equal(t, tt.want, rec.sent)
		})
	}
}

func TestSetShuffle(t *testing.T) {
	p, rec := newPlayer(&spotify.PlaybackContext{ShuffleState: true})
	assert.NoError(t, p.SetShuffle(true))
	assert.Empty(t, rec.sent)
	assert.NoError(t, p.SetShuffle(false))
	assert.Equal(t, []event.Event{event.Shuffle{}}, rec.sent)

	got, _ := p.Shuffle()
	assert.True(t, got)
}

func TestFormatTrackIDStable(t *testing.T) {
	assert.Equal(t, formatTrackID("abc"), formatTrackID("abc"))
	assert.NotEqual(t, formatTrackID("abc"), formatTrackID("abd"))
}
