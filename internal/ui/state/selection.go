package state

// Selection is a list cursor with a scroll offset. The list length and
// viewport height are passed in because they change between frames.
type Selection struct {
	index  int
	offset int
}

// Index returns the selected position.
func (s *Selection) Index() int {
	return s.index
}

// Offset returns the first visible position.
func (s *Selection) Offset() int {
	return s.offset
}

// Reset selects the first item.
func (s *Selection) Reset() {
	s.index = 0
	s.offset = 0
}

// Move shifts the selection by delta within a list of n items.
func (s *Selection) Move(delta, n, height int) {
	if n == 0 {
		return
	}
	s.index = clamp(s.index+delta, n-1)
	s.follow(height)
}

// Jump selects position i within a list of n items.
func (s *Selection) Jump(i, n, height int) {
	if n == 0 {
		return
	}
	s.index = clamp(i, n-1)
	s.follow(height)
}

// Clamp keeps the selection inside a list that may have shrunk.
func (s *Selection) Clamp(n, height int) {
	if n == 0 {
		s.Reset()
		return
	}
	s.index = clamp(s.index, n-1)
	s.follow(height)
}

func (s *Selection) follow(height int) {
	if height <= 0 {
		s.offset = s.index
		return
	}
	if s.index < s.offset {
		s.offset = s.index
	}
	if s.index >= s.offset+height {
		s.offset = s.index - height + 1
	}
}

func clamp(v, maxV int) int {
	if v > maxV {
		v = maxV
	}
	if v < 0 {
		v = 0
	}
	return v
}
