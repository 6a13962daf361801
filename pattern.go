package reconform

import (
	"fmt"
	"regexp/syntax"

	"github.com/coregx/coregex"
)

// Flags is a bitmask of compile-time pattern options. The zero value
// compiles the pattern exactly as written.
type Flags uint8

const (
	// Case-insensitive matching ("i" flag).
	FlagCaseInsensitive Flags = 1 << iota

	// "^" and "$" match line boundaries ("m" flag).
	FlagMultiline

	// "." matches line terminators ("s" flag).
	FlagDotAll
)

var flagLetters = []struct {
	flag   Flags
	letter byte
}{
	{FlagCaseInsensitive, 'i'},
	{FlagMultiline, 'm'},
	{FlagDotAll, 's'},
}

func (f Flags) String() string {
	res := make([]byte, 0, len(flagLetters))
	for _, fl := range flagLetters {
		if f&fl.flag != 0 {
			res = append(res, fl.letter)
		}
	}
	return string(res)
}

// inline renders the flags as an inline flag group understood by both
// engines, e.g. "(?is)".
func (f Flags) inline() string {
	if f == 0 {
		return ""
	}
	return "(?" + f.String() + ")"
}

// ParseFlags converts a flag string such as "im" into Flags.
func ParseFlags(str string) (Flags, error) {
	var flags Flags
	for _, char := range str {
		var m Flags
		switch char {
		case 'i':
			m = FlagCaseInsensitive
		case 'm':
			m = FlagMultiline
		case 's':
			m = FlagDotAll
		default:
			return 0, fmt.Errorf("invalid flag %q", char)
		}
		if flags&m != 0 {
			return 0, fmt.Errorf("duplicate flag %q", char)
		}
		flags |= m
	}
	return flags, nil
}

// Pattern is an immutable compiled regular expression. It carries three
// compiled forms of the same expression: the search form used by Find,
// and two anchored forms backing Matches and LookingAt, because the
// engine API takes no anchor parameters. A Pattern is safe for
// concurrent use by multiple goroutines.
type Pattern struct {
	expr  string
	flags Flags

	search *coregex.Regex // expr as written
	full   *coregex.Regex // \A(?:expr)\z
	prefix *coregex.Regex // \A(?:expr)

	groups int
	prog   int
}

// Compile parses a regular expression pattern with no flags.
func Compile(expr string) (*Pattern, error) {
	return CompileFlags(expr, 0)
}

// CompileFlags parses a regular expression pattern under the given flags.
func CompileFlags(expr string, flags Flags) (*Pattern, error) {
	src := flags.inline() + expr
	search, err := coregex.Compile(src)
	if err != nil {
		return nil, err
	}
	// the (?:) wrapper keeps group numbering identical across forms
	full, err := coregex.Compile(flags.inline() + `\A(?:` + expr + `)\z`)
	if err != nil {
		return nil, err
	}
	prefix, err := coregex.Compile(flags.inline() + `\A(?:` + expr + `)`)
	if err != nil {
		return nil, err
	}
	prog, err := programSize(src)
	if err != nil {
		return nil, err
	}
	return &Pattern{
		expr:   expr,
		flags:  flags,
		search: search,
		full:   full,
		prefix: prefix,
		// NumSubexp counts the whole match as capture 0
		groups: search.NumSubexp() - 1,
		prog:   prog,
	}, nil
}

// MustCompile is like [Compile] but panics if the expression cannot be
// parsed. It simplifies safe initialization of global variables
// containing patterns.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic("reconform: MustCompile: " + err.Error())
	}
	return p
}

// String returns the pattern source as passed to Compile, without the
// flag prefix.
func (p *Pattern) String() string { return p.expr }

// Flags returns the compile-time options the pattern was built with.
func (p *Pattern) Flags() Flags { return p.flags }

// GroupCount reports the number of capturing groups in the pattern.
// The whole match, group 0, is not counted.
func (p *Pattern) GroupCount() int { return p.groups }

// ProgramSize reports the number of instructions in the RE2 program
// form of the pattern. The metric has no reference-engine counterpart;
// it only guards against unintended growth of the compiled form across
// engine changes.
func (p *Pattern) ProgramSize() int { return p.prog }

// Split slices text around each match of the pattern. A limit of 0
// means unlimited tokens; a positive limit yields at most limit tokens,
// the last one holding the unsplit remainder.
func (p *Pattern) Split(text string, limit int) []string {
	if limit == 0 {
		limit = -1
	}
	return p.search.Split(text, limit)
}

// Matches reports whether the whole input matches expr. It is the
// stateless counterpart of [Matcher.Matches].
func Matches(expr string, in Input) (bool, error) {
	p, err := Compile(expr)
	if err != nil {
		return false, err
	}
	return p.Matcher(in).Matches(), nil
}

func programSize(expr string) (int, error) {
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return 0, err
	}
	prog, err := syntax.Compile(re.Simplify())
	if err != nil {
		return 0, err
	}
	return len(prog.Inst), nil
}
