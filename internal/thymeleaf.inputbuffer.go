package internal

import (
	"regexp"
)

// Group is a single capture group of a Match.
// Present is false when an optional group did not participate in the match,
// which distinguishes it from a group that matched the empty string.
type Group struct {
	Text    string
	Present bool
}

// Match is the result of a successful InputBuffer.Read.
type Match struct {
	Text   string  // Full matched text
	Groups []Group // Capture groups 1..n, in order
}

// InputBuffer is a cursor over a piece of text that supports anchored regular
// expression reads and transactional marks for speculative parsing.
// An InputBuffer is owned by a single parse and must not be shared.
type InputBuffer struct {
	text     string
	position int
	marks    []int
}

// NewInputBuffer creates a buffer positioned at the start of text.
func NewInputBuffer(text string) *InputBuffer {
	return &InputBuffer{text: text}
}

// Position returns the current byte offset into the text.
func (b *InputBuffer) Position() int {
	return b.position
}

// Remaining returns the unread portion of the text.
func (b *InputBuffer) Remaining() string {
	return b.text[b.position:]
}

// AtEnd reports whether the whole text has been consumed.
func (b *InputBuffer) AtEnd() bool {
	return b.position >= len(b.text)
}

// Depth returns the number of open marks.
func (b *InputBuffer) Depth() int {
	return len(b.marks)
}

// Read matches pattern at the current position. The match must begin exactly
// at the cursor; a match found further ahead is a failure. On success the
// cursor moves past the full match. On failure the cursor does not move.
func (b *InputBuffer) Read(pattern *regexp.Regexp) (*Match, bool) {
	if pattern == nil {
		return nil, false
	}
	remaining := b.text[b.position:]

	// Leftmost-first semantics: if any match starts at offset 0, it is the one found.
	loc := pattern.FindStringSubmatchIndex(remaining)
	if loc == nil || loc[0] != 0 {
		return nil, false
	}

	groupCount := len(loc)/2 - 1
	match := &Match{
		Text:   remaining[loc[0]:loc[1]],
		Groups: make([]Group, groupCount),
	}
	for i := 0; i < groupCount; i++ {
		start, end := loc[2*(i+1)], loc[2*(i+1)+1]
		if start < 0 {
			continue
		}
		match.Groups[i] = Group{Text: remaining[start:end], Present: true}
	}

	b.position += loc[1]
	return match, true
}

func (b *InputBuffer) mark() {
	b.marks = append(b.marks, b.position)
}

// clear drops the most recent mark, keeping the current position.
func (b *InputBuffer) clear() {
	b.marks = b.marks[:len(b.marks)-1]
}

// reset drops the most recent mark and moves the cursor back to it.
func (b *InputBuffer) reset() {
	last := len(b.marks) - 1
	b.position = b.marks[last]
	b.marks = b.marks[:last]
}

// MarkAndClearOrReset runs body inside a transactional region of buffer.
// If body reports success the mark is discarded and its result returned.
// Otherwise the cursor is restored to where it was when the region opened and
// the zero value is returned. A panic inside body also restores the cursor
// before it continues to unwind.
func MarkAndClearOrReset[T any](buffer *InputBuffer, body func() (T, bool)) (result T, ok bool) {
	buffer.mark()
	committed := false
	defer func() {
		if !committed {
			buffer.reset()
		}
	}()

	result, ok = body()
	if !ok {
		var zero T
		return zero, false
	}
	committed = true
	buffer.clear()
	return result, true
}
