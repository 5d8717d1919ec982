//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/spotwave/internal/event"
	"github.com/llehouerou/spotwave/internal/spotify"
)

// PlaybackSource exposes the cached playback context.
type PlaybackSource interface {
	PlaybackContext() *spotify.PlaybackContext
}

// Adapter publishes the cached playback state over MPRIS and turns media
// key calls into events.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(source PlaybackSource, sender event.Sender) (*Adapter, error) {
	a := &Adapter{}
	a.server = server.NewServer("spotwave", &rootAdapter{}, &playerAdapter{source: source, events: sender})

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil
}

func (r *rootAdapter) Quit() error {
	return nil // the TUI owns its lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "spotwave", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// LoopStatus and Shuffle extensions. Reads come from the store, writes
// become events so they follow the same path as key presses.
type playerAdapter struct {
	source PlaybackSource
	events event.Sender
}

func (p *playerAdapter) Next() error {
	p.events.Send(event.NextSong{})
	return nil
}

func (p *playerAdapter) Previous() error {
	p.events.Send(event.PreviousSong{})
	return nil
}

func (p *playerAdapter) Pause() error {
	if pc := p.source.PlaybackContext(); pc != nil && pc.IsPlaying {
		p.events.Send(event.ResumePause{})
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.events.Send(event.ResumePause{})
	return nil
}

// Stop pauses; the service has no stopped state.
func (p *playerAdapter) Stop() error {
	return p.Pause()
}

func (p *playerAdapter) Play() error {
	if pc := p.source.PlaybackContext(); pc != nil && !pc.IsPlaying {
		p.events.Send(event.ResumePause{})
	}
	return nil
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	pc := p.source.PlaybackContext()
	switch {
	case pc == nil:
		return types.PlaybackStatusStopped, nil
	case pc.IsPlaying:
		return types.PlaybackStatusPlaying, nil
	default:
		return types.PlaybackStatusPaused, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	pc := p.source.PlaybackContext()
	if pc == nil || pc.Item == nil {
		return types.Metadata{}, nil
	}
	track := pc.Item

	return types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.ID)),
		Length:  types.Microseconds(track.Duration.Microseconds()),
		Title:   track.Name,
		Artist:  track.Artists,
		Album:   track.Album,
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	pc := p.source.PlaybackContext()
	if pc == nil {
		return 1.0, nil
	}
	return float64(pc.Device.Volume) / 100, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	pc := p.source.PlaybackContext()
	if pc == nil {
		return 0, nil
	}
	return pc.Progress.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.source.PlaybackContext() != nil, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.source.PlaybackContext() != nil, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.source.PlaybackContext() != nil, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.source.PlaybackContext() != nil, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	pc := p.source.PlaybackContext()
	if pc == nil {
		return types.LoopStatusNone, nil
	}
	return loopStatus(pc.RepeatState), nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	want := repeatState(status)
	if pc := p.source.PlaybackContext(); pc != nil && pc.RepeatState != want {
		p.events.Send(event.SetRepeat{State: want})
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	pc := p.source.PlaybackContext()
	return pc != nil && pc.ShuffleState, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	if pc := p.source.PlaybackContext(); pc != nil && pc.ShuffleState != shuffle {
		p.events.Send(event.Shuffle{})
	}
	return nil
}

func loopStatus(r spotify.RepeatState) types.LoopStatus {
	switch r {
	case spotify.RepeatTrack:
		return types.LoopStatusTrack
	case spotify.RepeatContext:
		return types.LoopStatusPlaylist
	case spotify.RepeatOff:
		return types.LoopStatusNone
	}
	return types.LoopStatusNone
}

func repeatState(s types.LoopStatus) spotify.RepeatState {
	switch s {
	case types.LoopStatusTrack:
		return spotify.RepeatTrack
	case types.LoopStatusPlaylist:
		return spotify.RepeatContext
	case types.LoopStatusNone:
		return spotify.RepeatOff
	}
	return spotify.RepeatOff
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
