// Package state holds the navigation state read by the renderer: page
// history, the active popup and the search filter.
package state

// Stack is the UI navigation state. Its history always holds at least the
// root page, and at most one popup is open at a time. Stack is not safe for
// concurrent use; wrap it in a Store.
type Stack struct {
	history []Page
	popup   Popup
	matcher Matcher
	stopped bool
}

// NewStack returns a stack rooted at the library page. A nil matcher
// selects SubstringMatcher.
func NewStack(m Matcher) *Stack {
	if m == nil {
		m = SubstringMatcher{}
	}
	return &Stack{
		history: []Page{&LibraryPage{}},
		matcher: m,
	}
}

// CurrentPage returns the top of the history.
func (s *Stack) CurrentPage() Page {
	return s.history[len(s.history)-1]
}

// Depth returns the number of pages in the history.
func (s *Stack) Depth() int {
	return len(s.history)
}

// PushPage navigates to p and dismisses any popup.
func (s *Stack) PushPage(p Page) {
	s.history = append(s.history, p)
	s.popup = nil
}

// PopPage returns to the previous page. The root page is never removed;
// PopPage reports whether a page was popped.
func (s *Stack) PopPage() bool {
	if len(s.history) <= 1 {
		return false
	}
	s.history[len(s.history)-1] = nil
	s.history = s.history[:len(s.history)-1]
	s.popup = nil
	return true
}

// Popup returns the active popup, or nil.
func (s *Stack) Popup() Popup {
	return s.popup
}

// OpenPopup replaces the active popup with p.
func (s *Stack) OpenPopup(p Popup) {
	s.popup = p
}

// ClosePopup dismisses the active popup.
func (s *Stack) ClosePopup() {
	s.popup = nil
}

// OpenSearchPopup starts an empty search over the current page and moves
// its selection to the first item.
func (s *Stack) OpenSearchPopup() {
	s.CurrentPage().Selection().Reset()
	s.popup = &SearchPopup{}
}

// IsPopupFocused reports whether key input belongs to the popup rather
// than the page beneath it. The search popup never takes focus.
func (s *Stack) IsPopupFocused() bool {
	switch s.popup.(type) {
	case nil, *SearchPopup:
		return false
	default:
		return true
	}
}

// SearchQuery returns the active search query, or "" without a search popup.
func (s *Stack) SearchQuery() string {
	if p, ok := s.popup.(*SearchPopup); ok {
		return p.Query
	}
	return ""
}

// SetSearchQuery updates the query of the active search popup. It reports
// false when no search is open.
func (s *Stack) SetSearchQuery(q string) bool {
	p, ok := s.popup.(*SearchPopup)
	if !ok {
		return false
	}
	p.Query = q
	s.CurrentPage().Selection().Reset()
	return true
}

// IsRunning reports whether Quit has not been called.
func (s *Stack) IsRunning() bool {
	return !s.stopped
}

// Quit marks the UI as finished.
func (s *Stack) Quit() {
	s.stopped = true
}
