package state

// Page is one of *LibraryPage or *ContextPage.
type Page interface {
	Selection() *Selection
	isPage()
}

// LibraryPage lists the user's playlists.
type LibraryPage struct {
	sel Selection
}

// ContextPage lists the tracks of a playlist.
type ContextPage struct {
	sel        Selection
	PlaylistID string
}

func (p *LibraryPage) Selection() *Selection { return &p.sel }
func (p *ContextPage) Selection() *Selection { return &p.sel }

func (*LibraryPage) isPage() {}
func (*ContextPage) isPage() {}

// Popup is one of *SearchPopup, *CommandHelpPopup, *PlaylistListPopup or
// *DeviceListPopup.
type Popup interface {
	isPopup()
}

// SearchPopup filters the current page. It does not take focus.
type SearchPopup struct {
	Query string
}

// CommandHelpPopup lists the key bindings.
type CommandHelpPopup struct {
	sel Selection
}

// PlaylistListPopup lets the user switch playlist.
type PlaylistListPopup struct {
	sel Selection
}

// DeviceListPopup lets the user move playback to another device.
type DeviceListPopup struct {
	sel Selection
}

func (p *CommandHelpPopup) Selection() *Selection  { return &p.sel }
func (p *PlaylistListPopup) Selection() *Selection { return &p.sel }
func (p *DeviceListPopup) Selection() *Selection   { return &p.sel }

func (*SearchPopup) isPopup()       {}
func (*CommandHelpPopup) isPopup()  {}
func (*PlaylistListPopup) isPopup() {}
func (*DeviceListPopup) isPopup()   {}
