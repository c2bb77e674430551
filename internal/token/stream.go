package token

// Entry is one pending item of a Stream. Explicit marks a value that was
// split off an "--opt=value" or attached short form: it must be consumed by
// the option that produced it, whatever it looks like.
type Entry struct {
	Text     string
	Explicit bool
}

// Stream is a double-ended queue of pending command-line tokens.
// Tokens are consumed from the front; Unshift pushes a token back so the
// parser can re-examine it. A Stream belongs to a single parse and is not
// safe for concurrent use.
type Stream struct {
	// items holds the queue reversed: the front of the queue is the last
	// element, so both Shift and Unshift are O(1) slice operations.
	items []Entry
}

// NewStream creates a stream over tokens in command-line order
func NewStream(tokens []string) *Stream {
	items := make([]Entry, len(tokens))
	for i, t := range tokens {
		items[len(tokens)-1-i] = Entry{Text: t}
	}
	return &Stream{items: items}
}

// Len returns the number of pending tokens
func (s *Stream) Len() int {
	return len(s.items)
}

// Shift removes and returns the first token. ok is false on an empty stream.
func (s *Stream) Shift() (string, bool) {
	e, ok := s.ShiftEntry()
	return e.Text, ok
}

// ShiftEntry removes and returns the first entry
func (s *Stream) ShiftEntry() (Entry, bool) {
	if len(s.items) == 0 {
		return Entry{}, false
	}
	last := len(s.items) - 1
	e := s.items[last]
	s.items = s.items[:last]
	return e, true
}

// Peek returns the first token without consuming it
func (s *Stream) Peek() (string, bool) {
	e, ok := s.PeekEntry()
	return e.Text, ok
}

// PeekEntry returns the first entry without consuming it
func (s *Stream) PeekEntry() (Entry, bool) {
	if len(s.items) == 0 {
		return Entry{}, false
	}
	return s.items[len(s.items)-1], true
}

// Unshift pushes a token back to the front of the stream
func (s *Stream) Unshift(t string) {
	s.items = append(s.items, Entry{Text: t})
}

// UnshiftValue pushes an explicit option value to the front of the stream
func (s *Stream) UnshiftValue(v string) {
	s.items = append(s.items, Entry{Text: v, Explicit: true})
}

// Remaining returns the pending tokens in command-line order
func (s *Stream) Remaining() []string {
	out := make([]string, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		out = append(out, s.items[i].Text)
	}
	return out
}
