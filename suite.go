package reconform

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"
	"gotest.tools/v3/assert"
)

// Scenario is one conformance fixture: a pattern, a subject, and the
// literal outcome one assertion procedure must observe. Scenarios are
// ground truth supplied by the fixture author; they are never derived
// from either engine.
type Scenario struct {
	Kind    string `yaml:"kind"`
	Pattern string `yaml:"pattern"`
	Flags   string `yaml:"flags"`

	Text     string `yaml:"text"`
	Match    string `yaml:"match"`
	NonMatch string `yaml:"nonMatch"`

	Start       int      `yaml:"start"`
	Limit       int      `yaml:"limit"`
	Group       int      `yaml:"group"`
	Replacement string   `yaml:"replacement"`
	Output      string   `yaml:"output"`
	Tokens      []string `yaml:"tokens"`
	Groups      []string `yaml:"groups"`
	Count       int      `yaml:"count"`
	Matched     bool     `yaml:"matched"`
}

// Name returns a stable subtest name for the scenario.
func (sc Scenario) Name() string {
	return sc.Kind + "/" + sc.Pattern
}

// LoadScenarios reads one YAML fixture file holding a list of
// scenarios.
func LoadScenarios(path string) ([]Scenario, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var scenarios []Scenario
	if err := yaml.Unmarshal(content, &scenarios); err != nil {
		return nil, fmt.Errorf("parsing %s: %v", path, err)
	}
	return scenarios, nil
}

// Run dispatches the scenario to its assertion procedure. An unknown
// kind fails the test: a fixture that checks nothing must not pass
// silently.
func (sc Scenario) Run(t testing.TB) {
	t.Helper()
	switch sc.Kind {
	case "matches":
		CheckMatches(t, sc.Pattern, sc.Match, sc.NonMatch)
	case "matcher-matches":
		CheckMatcherMatches(t, sc.Pattern, sc.Match, sc.NonMatch)
	case "matches-flags":
		flags, err := ParseFlags(sc.Flags)
		assert.NilError(t, err)
		CheckMatchesFlags(t, sc.Pattern, flags, sc.Match, sc.NonMatch)
	case "split":
		CheckSplit(t, sc.Pattern, sc.Text, sc.Limit, sc.Tokens)
	case "replace-all":
		CheckReplaceAll(t, sc.Text, sc.Pattern, sc.Replacement, sc.Output)
	case "replace-first":
		CheckReplaceFirst(t, sc.Text, sc.Pattern, sc.Replacement, sc.Output)
	case "group-count":
		CheckGroupCount(t, sc.Pattern, sc.Count)
	case "program-size":
		CheckProgramSize(t, sc.Pattern, sc.Count)
	case "group":
		CheckGroup(t, sc.Text, sc.Pattern, sc.Groups)
	case "find":
		CheckFind(t, sc.Text, sc.Pattern, sc.Start, sc.Output)
	case "find-no-match":
		CheckFindNoMatch(t, sc.Text, sc.Pattern, sc.Start)
	case "invalid-group":
		CheckInvalidGroup(t, sc.Text, sc.Pattern, sc.Group)
	case "looking-at":
		CheckLookingAt(t, sc.Text, sc.Pattern, sc.Matched)
	default:
		t.Fatalf("unknown scenario kind %q", sc.Kind)
	}
}

// RunDir loads every .yaml fixture under dir and runs each scenario as
// its own parallel subtest.
func RunDir(t *testing.T, dir string) {
	t.Helper()
	assert.NilError(t, filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d == nil || !d.Type().IsRegular() || !strings.HasSuffix(path, ".yaml") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		scenarios, err := LoadScenarios(path)
		if err != nil {
			return err
		}
		t.Run(strings.TrimSuffix(rel, ".yaml"), func(t *testing.T) {
			for _, sc := range scenarios {
				sc := sc
				t.Run(sc.Name(), func(t *testing.T) {
					t.Parallel()
					sc.Run(t)
				})
			}
		})
		return nil
	}))
}
