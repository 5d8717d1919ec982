package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/spotwave/internal/auth"
	"github.com/llehouerou/spotwave/internal/event"
	"github.com/llehouerou/spotwave/internal/spotify"
	"github.com/llehouerou/spotwave/internal/state"
)

type fakeRemote struct {
	mu    sync.Mutex
	calls []string
	err   error

	playback  *spotify.PlaybackContext
	playlist  *spotify.Playlist
	tracks    []spotify.Track
	playlists []spotify.SimplePlaylist
	devices   []spotify.Device

	// beforePlayback runs inside CurrentPlayback, before it returns.
	beforePlayback func()
	// beforePlaylist runs inside Playlist, before it returns.
	beforePlaylist func(id string)
}

func (f *fakeRemote) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeRemote) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRemote) CurrentPlayback(context.Context) (*spotify.PlaybackContext, error) {
	if f.beforePlayback != nil {
		f.beforePlayback()
	}
	if err := f.record("current_playback"); err != nil {
		return nil, err
	}
	return f.playback, nil
}

func (f *fakeRemote) NextTrack(context.Context) error     { return f.record("next") }
func (f *fakeRemote) PreviousTrack(context.Context) error { return f.record("previous") }
func (f *fakeRemote) Resume(context.Context) error        { return f.record("resume") }
func (f *fakeRemote) Pause(context.Context) error         { return f.record("pause") }

func (f *fakeRemote) SetShuffle(_ context.Context, s bool) error {
	return f.record(fmt.Sprintf("shuffle(%t)", s))
}

func (f *fakeRemote) SetRepeat(_ context.Context, r spotify.RepeatState) error {
	return f.record("repeat(" + r.String() + ")")
}

func (f *fakeRemote) Playlist(_ context.Context, id string) (*spotify.Playlist, error) {
	if f.beforePlaylist != nil {
		f.beforePlaylist(id)
	}
	if err := f.record("playlist(" + id + ")"); err != nil {
		return nil, err
	}
	if f.playlist != nil {
		return f.playlist, nil
	}
	return &spotify.Playlist{ID: id}, nil
}

func (f *fakeRemote) FullPlaylistTracks(_ context.Context, seed *spotify.Playlist) ([]spotify.Track, error) {
	if err := f.record("tracks(" + seed.ID + ")"); err != nil {
		return nil, err
	}
	return f.tracks, nil
}

func (f *fakeRemote) UserPlaylists(context.Context) ([]spotify.SimplePlaylist, error) {
	if err := f.record("user_playlists"); err != nil {
		return nil, err
	}
	return f.playlists, nil
}

func (f *fakeRemote) Devices(context.Context) ([]spotify.Device, error) {
	if err := f.record("devices"); err != nil {
		return nil, err
	}
	return f.devices, nil
}

func (f *fakeRemote) TransferPlayback(_ context.Context, id string, play bool) error {
	return f.record(fmt.Sprintf("transfer(%s, %t)", id, play))
}

func (f *fakeRemote) PlayContext(_ context.Context, contextURI, trackURI string) error {
	return f.record("play(" + contextURI + ", " + trackURI + ")")
}

type fakeSession struct {
	err   error
	calls int
}

func (f *fakeSession) Refresh(context.Context) (auth.Session, error) {
	f.calls++
	return auth.Session{}, f.err
}

func withPlayback(s *state.Store, pc *spotify.PlaybackContext) {
	s.SetPlaybackContext(s.BeginPlaybackFetch(), pc)
}

func TestHandle_ResumePause(t *testing.T) {
	tests := []struct {
		name     string
		playback *spotify.PlaybackContext
		want     []string
		wantErr  error
	}{
		{"playing pauses", &spotify.PlaybackContext{IsPlaying: true}, []string{"pause"}, nil},
		{"paused resumes", &spotify.PlaybackContext{IsPlaying: false}, []string{"resume"}, nil},
		{"no context", nil, nil, ErrNoPlayback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &fakeRemote{}
			store := state.New()
			if tt.playback != nil {
				withPlayback(store, tt.playback)
			}
			err := New(remote, &fakeSession{}, store).Handle(context.Background(), event.ResumePause{})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, remote.recorded())
		})
	}
}

func TestHandle_ShuffleSendsNegatedState(t *testing.T) {
	for _, current := range []bool{true, false} {
		remote := &fakeRemote{}
		store := state.New()
		withPlayback(store, &spotify.PlaybackContext{ShuffleState: current})

		require.NoError(t, New(remote, nil, store).Handle(context.Background(), event.Shuffle{}))
		assert.Equal(t, []string{fmt.Sprintf("shuffle(%t)", !current)}, remote.recorded())
	}
}

func TestHandle_RepeatCycles(t *testing.T) {
	tests := []struct {
		current spotify.RepeatState
		want    string
	}{
		{spotify.RepeatOff, "repeat(track)"},
		{spotify.RepeatTrack, "repeat(context)"},
		{spotify.RepeatContext, "repeat(off)"},
	}
	for _, tt := range tests {
		remote := &fakeRemote{}
		store := state.New()
		withPlayback(store, &spotify.PlaybackContext{RepeatState: tt.current})

		require.NoError(t, New(remote, nil, store).Handle(context.Background(), event.Repeat{}))
		assert.Equal(t, []string{tt.want}, remote.recorded())
	}
}

func TestHandle_PlaybackDependentEventsNeedContext(t *testing.T) {
	for _, ev := range []event.Event{event.ResumePause{}, event.Shuffle{}, event.Repeat{}} {
		remote := &fakeRemote{}
		err := New(remote, nil, state.New()).Handle(context.Background(), ev)

		var pre *PreconditionError
		require.ErrorAs(t, err, &pre, ev.String())
		assert.Equal(t, "no active playback context", pre.Reason)
		assert.Empty(t, remote.recorded(), "%s must not call the service", ev)
	}
}

func TestHandle_SimpleControls(t *testing.T) {
	remote := &fakeRemote{}
	d := New(remote, nil, state.New())

	require.NoError(t, d.Handle(context.Background(), event.NextSong{}))
	require.NoError(t, d.Handle(context.Background(), event.PreviousSong{}))
	assert.Equal(t, []string{"next", "previous"}, remote.recorded())
}

func TestHandle_GetCurrentPlaybackContext(t *testing.T) {
	remote := &fakeRemote{playback: &spotify.PlaybackContext{IsPlaying: true}}
	store := state.New()

	require.NoError(t, New(remote, nil, store).Handle(context.Background(), event.GetCurrentPlaybackContext{}))
	require.NotNil(t, store.PlaybackContext())
	assert.True(t, store.PlaybackContext().IsPlaying)

	// Nothing playing clears the cached context.
	remote.playback = nil
	require.NoError(t, New(remote, nil, store).Handle(context.Background(), event.GetCurrentPlaybackContext{}))
	assert.Nil(t, store.PlaybackContext())
}

func TestHandle_StalePlaybackFetchIsDiscarded(t *testing.T) {
	store := state.New()
	slow := &fakeRemote{playback: &spotify.PlaybackContext{IsPlaying: false}}
	fast := &fakeRemote{playback: &spotify.PlaybackContext{IsPlaying: true}}

	// While the slow fetch is in flight, a later fetch starts and completes.
	slow.beforePlayback = func() {
		require.NoError(t, New(fast, nil, store).Handle(context.Background(), event.GetCurrentPlaybackContext{}))
	}
	require.NoError(t, New(slow, nil, store).Handle(context.Background(), event.GetCurrentPlaybackContext{}))

	assert.True(t, store.PlaybackContext().IsPlaying, "later fetch wins")
}

func TestHandle_RemoteErrorLeavesStateUnchanged(t *testing.T) {
	store := state.New()
	withPlayback(store, &spotify.PlaybackContext{IsPlaying: true})
	store.SetCurrentPlaylist(&spotify.Playlist{ID: "keep"})

	remote := &fakeRemote{err: &spotify.RemoteError{Op: "x", Message: "down", Status: 503}}
	d := New(remote, nil, store)

	for _, ev := range []event.Event{
		event.GetCurrentPlaybackContext{},
		event.GetPlaylist{ID: "other"},
		event.GetCurrentPlaylistTracks{},
		event.GetUserPlaylists{},
	} {
		err := d.Handle(context.Background(), ev)
		assert.Equal(t, KindRemote, Classify(err), ev.String())
	}

	assert.True(t, store.PlaybackContext().IsPlaying)
	assert.Equal(t, "keep", store.CurrentPlaylist().ID)
	assert.Nil(t, store.PlaylistTracks())
	assert.Nil(t, store.Playlists())
}

func TestHandle_Playlists(t *testing.T) {
	remote := &fakeRemote{
		playlist:  &spotify.Playlist{ID: "p1", Name: "Mix", Next: "http://next"},
		tracks:    []spotify.Track{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		playlists: []spotify.SimplePlaylist{{ID: "p1"}, {ID: "p2"}},
	}
	store := state.New()
	d := New(remote, nil, store)
	ctx := context.Background()

	err := d.Handle(ctx, event.GetCurrentPlaylistTracks{})
	require.ErrorIs(t, err, ErrNoPlaylist)

	require.NoError(t, d.Handle(ctx, event.GetPlaylist{ID: "p1"}))
	assert.Equal(t, "Mix", store.CurrentPlaylist().Name)

	require.NoError(t, d.Handle(ctx, event.GetCurrentPlaylistTracks{}))
	assert.Len(t, store.PlaylistTracks(), 3)

	require.NoError(t, d.Handle(ctx, event.GetUserPlaylists{}))
	assert.Len(t, store.Playlists(), 2)

	assert.Equal(t, []string{"playlist(p1)", "tracks(p1)", "user_playlists"}, remote.recorded())
}

func TestHandle_StalePlaylistIsDiscarded(t *testing.T) {
	store := state.New()
	remote := &fakeRemote{}
	d := New(remote, nil, store)

	// p1 is still in flight when p2 is requested and lands.
	remote.beforePlaylist = func(id string) {
		if id != "p1" {
			return
		}
		remote.beforePlaylist = nil
		require.NoError(t, d.Handle(context.Background(), event.GetPlaylist{ID: "p2"}))
	}
	require.NoError(t, d.Handle(context.Background(), event.GetPlaylist{ID: "p1"}))

	assert.Equal(t, "p2", store.CurrentPlaylist().ID)
}

func TestHandle_SetRepeat(t *testing.T) {
	remote := &fakeRemote{}
	d := New(remote, nil, state.New())

	require.NoError(t, d.Handle(context.Background(), event.SetRepeat{State: spotify.RepeatContext}))
	assert.Equal(t, []string{"repeat(context)"}, remote.recorded())
}

func TestHandle_Devices(t *testing.T) {
	remote := &fakeRemote{devices: []spotify.Device{{ID: "d1"}, {ID: "d2"}}}
	store := state.New()
	d := New(remote, nil, store)
	ctx := context.Background()

	require.NoError(t, d.Handle(ctx, event.GetDevices{}))
	assert.Len(t, store.Devices(), 2)

	require.NoError(t, d.Handle(ctx, event.TransferPlayback{DeviceID: "d2"}))
	withPlayback(store, &spotify.PlaybackContext{IsPlaying: true})
	require.NoError(t, d.Handle(ctx, event.TransferPlayback{DeviceID: "d1"}))

	assert.Equal(t, []string{"devices", "transfer(d2, false)", "transfer(d1, true)"}, remote.recorded())
}

func TestHandle_PlayTrack(t *testing.T) {
	remote := &fakeRemote{}
	d := New(remote, nil, state.New())

	ev := event.PlayTrack{ContextURI: spotify.PlaylistURI("p1"), TrackURI: "spotify:track:t"}
	require.NoError(t, d.Handle(context.Background(), ev))
	assert.Equal(t, []string{"play(spotify:playlist:p1, spotify:track:t)"}, remote.recorded())
}

func TestHandle_RefreshToken(t *testing.T) {
	session := &fakeSession{}
	d := New(&fakeRemote{}, session, state.New())
	require.NoError(t, d.Handle(context.Background(), event.RefreshToken{}))
	assert.Equal(t, 1, session.calls)

	session.err = fmt.Errorf("%w: no token", auth.ErrAuthFailure)
	err := d.Handle(context.Background(), event.RefreshToken{})
	assert.Equal(t, KindAuth, Classify(err))
}

func TestHandle_QuitIsTerminal(t *testing.T) {
	store := state.New()
	remote := &fakeRemote{playback: &spotify.PlaybackContext{}}
	d := New(remote, &fakeSession{}, store)
	ctx := context.Background()

	require.NoError(t, d.Handle(ctx, event.Quit{}))
	assert.False(t, store.IsRunning())

	for _, ev := range []event.Event{event.GetCurrentPlaybackContext{}, event.NextSong{}, event.RefreshToken{}, event.Quit{}} {
		_ = d.Handle(ctx, ev)
		assert.False(t, store.IsRunning())
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{fmt.Errorf("wrap: %w", auth.ErrAuthFailure), KindAuth},
		{&spotify.RemoteError{Op: "x"}, KindRemote},
		{fmt.Errorf("wrap: %w", ErrNoPlayback), KindPrecondition},
		{errors.New("other"), KindOther},
	}
	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
