package reconform

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrNoMatch is returned by group accessors when the matcher holds no
// successful match.
var ErrNoMatch = errors.New("no current match")

// GroupIndexError reports a capture-group index outside [0, GroupCount].
type GroupIndexError struct {
	Index int
	Count int
}

func (e *GroupIndexError) Error() string {
	return fmt.Sprintf("group index %d out of range [0, %d]", e.Index, e.Count)
}

// Matcher holds the mutable state of applying one Pattern to one Input.
// It advances through the input as Find is called and remembers the
// boundaries of the most recent match. A Matcher must not be shared
// across goroutines or reused for another input.
type Matcher struct {
	p     *Pattern
	input Input
	text  string

	// pos is the byte offset in text where the next Find starts.
	pos int
	// loc holds the submatch byte boundaries of the most recent
	// successful operation, nil when there is none.
	loc []int
}

// Matcher constructs a fresh matcher bound to p and in.
func (p *Pattern) Matcher(in Input) *Matcher {
	return &Matcher{p: p, input: in, text: in.String()}
}

// Pattern returns the pattern the matcher was built from.
func (m *Matcher) Pattern() *Pattern { return m.p }

// Input returns the input the matcher is bound to.
func (m *Matcher) Input() Input { return m.input }

// GroupCount reports the number of capturing groups in the pattern.
func (m *Matcher) GroupCount() int { return m.p.GroupCount() }

// ProgramSize reports the compiled-form size of the pattern.
func (m *Matcher) ProgramSize() int { return m.p.ProgramSize() }

// Reset discards the current match and moves the search position back
// to the start of the input.
func (m *Matcher) Reset() {
	m.pos = 0
	m.loc = nil
}

// Matches reports whether the pattern matches the entire input. On
// success the capture groups are available through Group.
func (m *Matcher) Matches() bool {
	m.loc = m.p.full.FindStringSubmatchIndex(m.text)
	return m.loc != nil
}

// LookingAt reports whether the pattern matches a prefix of the input,
// without requiring the whole input to match.
func (m *Matcher) LookingAt() bool {
	m.loc = m.p.prefix.FindStringSubmatchIndex(m.text)
	return m.loc != nil
}

// Find searches for the next match, starting where the previous one
// ended. A zero-width match advances the search position by one rune so
// repeated calls always make progress.
func (m *Matcher) Find() bool {
	if m.pos > len(m.text) {
		m.loc = nil
		return false
	}
	loc := m.p.search.FindStringSubmatchIndex(m.text[m.pos:])
	if loc == nil {
		m.loc = nil
		m.pos = len(m.text) + 1
		return false
	}
	for i, v := range loc {
		if v >= 0 {
			loc[i] = v + m.pos
		}
	}
	m.loc = loc
	if loc[0] == loc[1] {
		_, size := utf8.DecodeRuneInString(m.text[loc[1]:])
		if size == 0 {
			size = 1
		}
		m.pos = loc[1] + size
	} else {
		m.pos = loc[1]
	}
	return true
}

// FindStartingAt resets the matcher and searches from the given rune
// offset into the logical text. Offsets outside [0, rune length] are an
// error.
func (m *Matcher) FindStartingAt(start int) (bool, error) {
	byteOff, ok := byteOffsetOfRune(m.text, start)
	if !ok {
		return false, fmt.Errorf("find start %d out of range [0, %d]", start, utf8.RuneCountInString(m.text))
	}
	m.Reset()
	m.pos = byteOff
	return m.Find(), nil
}

// Group returns the text captured by group i in the most recent match.
// Group 0 is the whole match. A valid group that did not participate in
// the match yields the empty string. An index outside [0, GroupCount]
// yields a GroupIndexError regardless of the match state; with a valid
// index but no current match the error is ErrNoMatch.
func (m *Matcher) Group(i int) (string, error) {
	if i < 0 || i > m.GroupCount() {
		return "", &GroupIndexError{Index: i, Count: m.GroupCount()}
	}
	if m.loc == nil {
		return "", ErrNoMatch
	}
	if m.loc[2*i] < 0 {
		return "", nil
	}
	return m.text[m.loc[2*i]:m.loc[2*i+1]], nil
}

// Start reports the start boundary of group i in the input's own
// indexing: a code-unit offset for UTF-16 inputs, a byte offset for
// UTF-8 inputs. A group that did not participate reports -1.
func (m *Matcher) Start(i int) (int, error) {
	if i < 0 || i > m.GroupCount() {
		return 0, &GroupIndexError{Index: i, Count: m.GroupCount()}
	}
	if m.loc == nil {
		return 0, ErrNoMatch
	}
	if m.loc[2*i] < 0 {
		return -1, nil
	}
	return m.input.nativeOffset(m.loc[2*i]), nil
}

// End reports the end boundary of group i, following the same rules as
// Start.
func (m *Matcher) End(i int) (int, error) {
	if i < 0 || i > m.GroupCount() {
		return 0, &GroupIndexError{Index: i, Count: m.GroupCount()}
	}
	if m.loc == nil {
		return 0, ErrNoMatch
	}
	if m.loc[2*i+1] < 0 {
		return -1, nil
	}
	return m.input.nativeOffset(m.loc[2*i+1]), nil
}

// ReplaceAll returns the input text with every non-overlapping match
// replaced by the literal repl. The matcher is reset afterwards.
func (m *Matcher) ReplaceAll(repl string) string {
	m.Reset()
	var b strings.Builder
	last := 0
	replaced := false
	for m.Find() {
		// an empty match directly after the previous match splits
		// nothing; skip it
		if replaced && m.loc[0] == m.loc[1] && m.loc[0] == last {
			continue
		}
		b.WriteString(m.text[last:m.loc[0]])
		b.WriteString(repl)
		last = m.loc[1]
		replaced = true
	}
	b.WriteString(m.text[last:])
	m.Reset()
	return b.String()
}

// ReplaceFirst returns the input text with only the first match
// replaced by the literal repl. The matcher is reset afterwards.
func (m *Matcher) ReplaceFirst(repl string) string {
	m.Reset()
	defer m.Reset()
	if !m.Find() {
		return m.text
	}
	return m.text[:m.loc[0]] + repl + m.text[m.loc[1]:]
}

// byteOffsetOfRune maps a rune offset to a byte offset in text.
func byteOffsetOfRune(text string, runeOff int) (int, bool) {
	if runeOff < 0 {
		return 0, false
	}
	n := 0
	for i := range text {
		if n == runeOff {
			return i, true
		}
		n++
	}
	if n == runeOff {
		return len(text), true
	}
	return 0, false
}
