package reconform

import "regexp"

// refPattern adapts the standard library's regexp package to the
// operation set the checks compare differentially. The standard engine
// is trusted and serves only as an oracle; the harness never inspects
// its internals.
type refPattern struct {
	search *regexp.Regexp
	full   *regexp.Regexp
	prefix *regexp.Regexp
}

func compileRef(expr string, flags Flags) (*refPattern, error) {
	search, err := regexp.Compile(flags.inline() + expr)
	if err != nil {
		return nil, err
	}
	full, err := regexp.Compile(flags.inline() + `\A(?:` + expr + `)\z`)
	if err != nil {
		return nil, err
	}
	prefix, err := regexp.Compile(flags.inline() + `\A(?:` + expr + `)`)
	if err != nil {
		return nil, err
	}
	return &refPattern{search: search, full: full, prefix: prefix}, nil
}

func (r *refPattern) matches(text string) bool {
	return r.full.MatchString(text)
}

func (r *refPattern) lookingAt(text string) bool {
	return r.prefix.MatchString(text)
}

func (r *refPattern) groupCount() int {
	return r.search.NumSubexp()
}

func (r *refPattern) groups(text string) ([]string, bool) {
	gs := r.search.FindStringSubmatch(text)
	if gs == nil {
		return nil, false
	}
	return gs, true
}

func (r *refPattern) findAt(text string, start int) (string, bool) {
	byteOff, ok := byteOffsetOfRune(text, start)
	if !ok {
		return "", false
	}
	loc := r.search.FindStringIndex(text[byteOff:])
	if loc == nil {
		return "", false
	}
	return text[byteOff+loc[0] : byteOff+loc[1]], true
}

func (r *refPattern) split(text string, limit int) []string {
	if limit == 0 {
		limit = -1
	}
	return r.search.Split(text, limit)
}

func (r *refPattern) replaceAll(text, repl string) string {
	return r.search.ReplaceAllLiteralString(text, repl)
}

func (r *refPattern) replaceFirst(text, repl string) string {
	loc := r.search.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + repl + text[loc[1]:]
}
