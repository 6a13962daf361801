package reconform

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func TestFindIteration(t *testing.T) {
	m := MustCompile(`a+`).Matcher(UTF8("caaab caa"))

	assert.Assert(t, m.Find())
	g, err := m.Group(0)
	assert.NilError(t, err)
	assert.Equal(t, g, "aaa")

	assert.Assert(t, m.Find())
	g, err = m.Group(0)
	assert.NilError(t, err)
	assert.Equal(t, g, "aa")

	assert.Assert(t, !m.Find())
	// once exhausted the matcher stays exhausted
	assert.Assert(t, !m.Find())

	m.Reset()
	assert.Assert(t, m.Find())
	g, err = m.Group(0)
	assert.NilError(t, err)
	assert.Equal(t, g, "aaa")
}

func TestFindEmptyMatchAdvances(t *testing.T) {
	m := MustCompile(`a*`).Matcher(UTF8("b"))

	assert.Assert(t, m.Find())
	start, err := m.Start(0)
	assert.NilError(t, err)
	assert.Equal(t, start, 0)

	assert.Assert(t, m.Find())
	start, err = m.Start(0)
	assert.NilError(t, err)
	assert.Equal(t, start, 1)

	assert.Assert(t, !m.Find())
}

func TestGroupState(t *testing.T) {
	m := MustCompile(`(a)(b)?`).Matcher(UTF8("a"))

	_, err := m.Group(0)
	assert.ErrorIs(t, err, ErrNoMatch)

	assert.Assert(t, m.Find())
	g, err := m.Group(1)
	assert.NilError(t, err)
	assert.Equal(t, g, "a")
	g, err = m.Group(2)
	assert.NilError(t, err)
	assert.Equal(t, g, "")

	start, err := m.Start(2)
	assert.NilError(t, err)
	assert.Equal(t, start, -1)
	end, err := m.End(2)
	assert.NilError(t, err)
	assert.Equal(t, end, -1)

	_, err = m.Group(3)
	var gie *GroupIndexError
	assert.Assert(t, errors.As(err, &gie))
	assert.Equal(t, gie.Index, 3)
	assert.Equal(t, gie.Count, 2)

	m.Reset()
	_, err = m.Group(0)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestFindStartingAt(t *testing.T) {
	m := MustCompile(`a+`).Matcher(UTF8("caaab"))

	ok, err := m.FindStartingAt(2)
	assert.NilError(t, err)
	assert.Assert(t, ok)
	g, err := m.Group(0)
	assert.NilError(t, err)
	assert.Equal(t, g, "aa")

	_, err = m.FindStartingAt(-1)
	assert.ErrorContains(t, err, "out of range")
	_, err = m.FindStartingAt(6)
	assert.ErrorContains(t, err, "out of range")

	// the end of the text is a valid start with nothing left to match
	ok, err = m.FindStartingAt(5)
	assert.NilError(t, err)
	assert.Assert(t, !ok)
}

func TestBoundariesAgreeAcrossEncodings(t *testing.T) {
	p := MustCompile(`a+`)
	for _, in := range Inputs("x🐱aaa🐱y") {
		m := p.Matcher(in)
		assert.Assert(t, m.Find(), "encoding %s", in.Encoding())

		start, err := m.Start(0)
		assert.NilError(t, err)
		end, err := m.End(0)
		assert.NilError(t, err)

		// native offsets differ per encoding but agree as rune offsets
		assert.Equal(t, in.RuneOffset(start), 2, "encoding %s", in.Encoding())
		assert.Equal(t, in.RuneOffset(end), 5, "encoding %s", in.Encoding())
	}
}

func TestMatcherReplace(t *testing.T) {
	m := MustCompile(`b`).Matcher(UTF8("abcb"))

	assert.Equal(t, m.ReplaceAll("X"), "aXcX")
	assert.Equal(t, m.ReplaceFirst("X"), "aXcb")

	// replacement resets the matcher, so iteration starts over
	assert.Assert(t, m.Find())
	start, err := m.Start(0)
	assert.NilError(t, err)
	assert.Equal(t, start, 1)
}

func TestMatchesPopulatesGroups(t *testing.T) {
	m := MustCompile(`(a+)(b+)`).Matcher(UTF16("aabb"))

	assert.Assert(t, m.Matches())
	g, err := m.Group(1)
	assert.NilError(t, err)
	assert.Equal(t, g, "aa")
	g, err = m.Group(2)
	assert.NilError(t, err)
	assert.Equal(t, g, "bb")
}

func TestLookingAtMatcher(t *testing.T) {
	p := MustCompile(`ab`)
	assert.Assert(t, p.Matcher(UTF8("abc")).LookingAt())
	assert.Assert(t, !p.Matcher(UTF8("cab")).LookingAt())
	assert.Assert(t, !p.Matcher(UTF8("abc")).Matches())

	m := p.Matcher(UTF16("abc"))
	assert.Assert(t, m.LookingAt())
	g, err := m.Group(0)
	assert.NilError(t, err)
	assert.Equal(t, g, "ab")
}

func TestMatcherAccessors(t *testing.T) {
	p := MustCompile(`(a)`)
	in := UTF16("a")
	m := p.Matcher(in)

	assert.Equal(t, m.Pattern(), p)
	assert.Equal(t, m.Input().Encoding(), EncodingUTF16)
	assert.Equal(t, m.GroupCount(), 1)
	assert.Equal(t, m.ProgramSize(), p.ProgramSize())
}
