package reconform

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

// compileAll compiles expr for the reference engine and for the engine
// under test, and returns one binding per engine. A pattern either
// engine rejects fails the test immediately: the harness only compares
// behavior of patterns both engines accept.
func compileAll(t testing.TB, expr string) []engineCase {
	t.Helper()
	ref, err := compileRef(expr, 0)
	assert.NilError(t, err, "reference engine rejected pattern %q", expr)
	p, err := Compile(expr)
	assert.NilError(t, err, "engine under test rejected pattern %q", expr)
	return []engineCase{
		{name: "reference", ops: ref},
		{name: "utf16", ops: underTest{p: p, enc: EncodingUTF16}},
		{name: "utf8", ops: underTest{p: p, enc: EncodingUTF8}},
	}
}

// CheckMatches asserts that expr fully matches match and does not match
// nonMatch under the reference engine and under both input encodings of
// the engine under test, routed through the stateless Matches entry
// point. CheckMatcherMatches covers the stateful route.
func CheckMatches(t testing.TB, expr, match, nonMatch string) {
	t.Helper()
	ref, err := compileRef(expr, 0)
	assert.NilError(t, err, "reference engine rejected pattern %q", expr)
	if !ref.matches(match) {
		t.Fatalf("reference: pattern %q doesn't match %q", expr, match)
	}
	if ref.matches(nonMatch) {
		t.Fatalf("reference: pattern %q matches %q", expr, nonMatch)
	}
	for _, in := range Inputs(match) {
		ok, err := Matches(expr, in)
		assert.NilError(t, err, "engine under test rejected pattern %q", expr)
		if !ok {
			t.Fatalf("pattern %q (%s) doesn't match %q", expr, in.Encoding(), match)
		}
	}
	for _, in := range Inputs(nonMatch) {
		ok, err := Matches(expr, in)
		assert.NilError(t, err, "engine under test rejected pattern %q", expr)
		if ok {
			t.Fatalf("pattern %q (%s) matches %q", expr, in.Encoding(), nonMatch)
		}
	}
}

// CheckMatcherMatch asserts the full-match property of CheckMatches,
// routed through a constructed Matcher on every engine.
func CheckMatcherMatch(t testing.TB, expr, match string) {
	t.Helper()
	for _, e := range compileAll(t, expr) {
		if !e.ops.matches(match) {
			t.Fatalf("pattern %q (%s): matcher doesn't match %q", expr, e.name, match)
		}
	}
}

// CheckMatcherNonMatch asserts that no engine's matcher matches
// nonMatch in full.
func CheckMatcherNonMatch(t testing.TB, expr, nonMatch string) {
	t.Helper()
	for _, e := range compileAll(t, expr) {
		if e.ops.matches(nonMatch) {
			t.Fatalf("pattern %q (%s): matcher matches %q", expr, e.name, nonMatch)
		}
	}
}

// CheckMatcherMatches combines CheckMatcherMatch and
// CheckMatcherNonMatch.
func CheckMatcherMatches(t testing.TB, expr, match, nonMatch string) {
	t.Helper()
	CheckMatcherMatch(t, expr, match)
	CheckMatcherNonMatch(t, expr, nonMatch)
}

// CheckMatchesFlags asserts match and nonMatch outcomes for a pattern
// compiled with explicit flags, on both encodings of the engine under
// test. The reference engine is deliberately left out: flag sets do not
// correspond 1:1 across engines.
func CheckMatchesFlags(t testing.TB, expr string, flags Flags, match, nonMatch string) {
	t.Helper()
	p, err := CompileFlags(expr, flags)
	assert.NilError(t, err, "engine under test rejected pattern %q with flags %v", expr, flags)
	for _, in := range Inputs(match) {
		if !p.Matcher(in).Matches() {
			t.Fatalf("pattern %q with flags %v (%s) doesn't match %q", expr, flags, in.Encoding(), match)
		}
	}
	for _, in := range Inputs(nonMatch) {
		if p.Matcher(in).Matches() {
			t.Fatalf("pattern %q with flags %v (%s) matches %q", expr, flags, in.Encoding(), nonMatch)
		}
	}
}

// CheckSplit asserts that splitting text on expr yields exactly the
// expected tokens on every engine. A limit of 0 means unlimited.
func CheckSplit(t testing.TB, expr, text string, limit int, expected []string) {
	t.Helper()
	for _, e := range compileAll(t, expr) {
		got := e.ops.split(text, limit)
		if diff := cmp.Diff(expected, got); diff != "" {
			t.Fatalf("pattern %q (%s): split %q with limit %d mismatch (-want +got):\n%s", expr, e.name, text, limit, diff)
		}
	}
}

// CheckReplaceAll asserts that replacing every match of expr in text
// with the literal repl produces want on every engine.
func CheckReplaceAll(t testing.TB, text, expr, repl, want string) {
	t.Helper()
	for _, e := range compileAll(t, expr) {
		if got := e.ops.replaceAll(text, repl); got != want {
			t.Fatalf("pattern %q (%s): replaceAll(%q, %q) = %q, want %q", expr, e.name, text, repl, got, want)
		}
	}
}

// CheckReplaceFirst asserts that replacing only the first match of expr
// in text with the literal repl produces want on every engine.
func CheckReplaceFirst(t testing.TB, text, expr, repl, want string) {
	t.Helper()
	for _, e := range compileAll(t, expr) {
		if got := e.ops.replaceFirst(text, repl); got != want {
			t.Fatalf("pattern %q (%s): replaceFirst(%q, %q) = %q, want %q", expr, e.name, text, repl, got, want)
		}
	}
}

// CheckGroupCount asserts that the compiled pattern, matchers over both
// encodings, and the reference engine all report want capturing groups.
func CheckGroupCount(t testing.TB, expr string, want int) {
	t.Helper()
	ref, err := compileRef(expr, 0)
	assert.NilError(t, err, "reference engine rejected pattern %q", expr)
	p, err := Compile(expr)
	assert.NilError(t, err, "engine under test rejected pattern %q", expr)
	counts := []struct {
		name string
		got  int
	}{
		{"reference", ref.groupCount()},
		{"pattern", p.GroupCount()},
		{"matcher(utf16)", p.Matcher(UTF16("x")).GroupCount()},
		{"matcher(utf8)", p.Matcher(UTF8("x")).GroupCount()},
	}
	for _, c := range counts {
		if c.got != want {
			t.Fatalf("pattern %q: %s group count = %d, want %d", expr, c.name, c.got, want)
		}
	}
}

// CheckProgramSize asserts that the compiled pattern and matchers built
// from it report the expected program size. There is no reference
// comparison: the metric is internal to the engine under test.
func CheckProgramSize(t testing.TB, expr string, want int) {
	t.Helper()
	p, err := Compile(expr)
	assert.NilError(t, err, "engine under test rejected pattern %q", expr)
	sizes := []struct {
		name string
		got  int
	}{
		{"pattern", p.ProgramSize()},
		{"matcher(utf16)", p.Matcher(UTF16("foo")).ProgramSize()},
		{"matcher(utf8)", p.Matcher(UTF8("foo")).ProgramSize()},
	}
	for _, s := range sizes {
		if s.got != want {
			t.Fatalf("pattern %q: %s program size = %d, want %d", expr, s.name, s.got, want)
		}
	}
}

// CheckGroup finds the first match of expr in text on every engine and
// asserts each capture group against want, where want[0] is the whole
// match and a group that did not participate is expected as "". The
// pattern must declare exactly len(want)-1 groups.
func CheckGroup(t testing.TB, text, expr string, want []string) {
	t.Helper()
	for _, e := range compileAll(t, expr) {
		if got := e.ops.groupCount(); got != len(want)-1 {
			t.Fatalf("pattern %q (%s): group count = %d, want %d", expr, e.name, got, len(want)-1)
		}
		got, ok := e.ops.groups(text)
		if !ok {
			t.Fatalf("pattern %q (%s) not found in %q", expr, e.name, text)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("pattern %q (%s): groups in %q mismatch (-want +got):\n%s", expr, e.name, text, diff)
		}
	}
}

// CheckFind asserts that searching from the given rune offset succeeds
// on every engine and yields want as the matched text.
func CheckFind(t testing.TB, text, expr string, start int, want string) {
	t.Helper()
	for _, e := range compileAll(t, expr) {
		got, ok := e.ops.findAt(text, start)
		if !ok {
			t.Fatalf("pattern %q (%s) not found in %q from offset %d", expr, e.name, text, start)
		}
		if got != want {
			t.Fatalf("pattern %q (%s): find in %q from offset %d = %q, want %q", expr, e.name, text, start, got, want)
		}
	}
}

// CheckFindNoMatch asserts that searching from the given rune offset
// fails on every engine.
func CheckFindNoMatch(t testing.TB, text, expr string, start int) {
	t.Helper()
	for _, e := range compileAll(t, expr) {
		if got, ok := e.ops.findAt(text, start); ok {
			t.Fatalf("pattern %q (%s): unexpected match %q in %q from offset %d", expr, e.name, got, text, start)
		}
	}
}

// CheckInvalidGroup asserts that after a successful find, requesting a
// group index outside [0, GroupCount] yields a GroupIndexError on both
// encodings. A missing error is itself a failure.
func CheckInvalidGroup(t testing.TB, text, expr string, group int) {
	t.Helper()
	p, err := Compile(expr)
	assert.NilError(t, err, "engine under test rejected pattern %q", expr)
	for _, in := range Inputs(text) {
		m := p.Matcher(in)
		if !m.Find() {
			t.Fatalf("pattern %q (%s) not found in %q", expr, in.Encoding(), text)
		}
		_, err := m.Group(group)
		if err == nil {
			t.Fatalf("pattern %q (%s): group(%d) returned no error, want GroupIndexError", expr, in.Encoding(), group)
		}
		var gie *GroupIndexError
		if !errors.As(err, &gie) {
			t.Fatalf("pattern %q (%s): group(%d) error = %v, want GroupIndexError", expr, in.Encoding(), group, err)
		}
	}
}

// CheckLookingAt asserts that matching a prefix of text yields want on
// every engine.
func CheckLookingAt(t testing.TB, text, expr string, want bool) {
	t.Helper()
	for _, e := range compileAll(t, expr) {
		if got := e.ops.lookingAt(text); got != want {
			t.Fatalf("pattern %q (%s): lookingAt(%q) = %v, want %v", expr, e.name, text, got, want)
		}
	}
}
