package reconform

// matchOps is the narrow capability surface shared by the engine under
// test and the reference engine. The assertion procedures are written
// once against this interface and run per engine binding.
type matchOps interface {
	matches(text string) bool
	lookingAt(text string) bool
	groupCount() int
	groups(text string) ([]string, bool)
	findAt(text string, start int) (string, bool)
	split(text string, limit int) []string
	replaceAll(text, repl string) string
	replaceFirst(text, repl string) string
}

// engineCase names one engine binding for diagnostics.
type engineCase struct {
	name string
	ops  matchOps
}

// underTest binds the engine under test to one input encoding. Every
// operation constructs a fresh Matcher, so a binding carries no mutable
// state of its own.
type underTest struct {
	p   *Pattern
	enc Encoding
}

func (u underTest) encode(text string) Input {
	if u.enc == EncodingUTF16 {
		return UTF16(text)
	}
	return UTF8(text)
}

func (u underTest) matches(text string) bool {
	return u.p.Matcher(u.encode(text)).Matches()
}

func (u underTest) lookingAt(text string) bool {
	return u.p.Matcher(u.encode(text)).LookingAt()
}

func (u underTest) groupCount() int {
	return u.p.GroupCount()
}

func (u underTest) groups(text string) ([]string, bool) {
	m := u.p.Matcher(u.encode(text))
	if !m.Find() {
		return nil, false
	}
	gs := make([]string, u.p.GroupCount()+1)
	for i := range gs {
		g, err := m.Group(i)
		if err != nil {
			return nil, false
		}
		gs[i] = g
	}
	return gs, true
}

func (u underTest) findAt(text string, start int) (string, bool) {
	m := u.p.Matcher(u.encode(text))
	ok, err := m.FindStartingAt(start)
	if err != nil || !ok {
		return "", false
	}
	g, _ := m.Group(0)
	return g, true
}

func (u underTest) split(text string, limit int) []string {
	return u.p.Split(text, limit)
}

func (u underTest) replaceAll(text, repl string) string {
	return u.p.Matcher(u.encode(text)).ReplaceAll(repl)
}

func (u underTest) replaceFirst(text, repl string) string {
	return u.p.Matcher(u.encode(text)).ReplaceFirst(repl)
}
