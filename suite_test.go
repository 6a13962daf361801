package reconform

import (
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestSuite(t *testing.T) {
	RunDir(t, filepath.Join("testdata", "suite"))
}

func TestLoadScenariosMissingFile(t *testing.T) {
	_, err := LoadScenarios(filepath.Join("testdata", "does-not-exist.yaml"))
	assert.Assert(t, err != nil)
}

func TestLoadScenariosBadYAML(t *testing.T) {
	_, err := LoadScenarios(filepath.Join("testdata", "bad.yaml"))
	assert.ErrorContains(t, err, "parsing")
}

func TestScenarioName(t *testing.T) {
	sc := Scenario{Kind: "find", Pattern: `a+`}
	assert.Equal(t, sc.Name(), "find/a+")
}

func TestScenarioUnknownKind(t *testing.T) {
	out := expectFailure(t, func(t testing.TB) {
		Scenario{Kind: "frobnicate"}.Run(t)
	})
	assert.Assert(t, strings.Contains(out, "frobnicate"))
}

func TestScenarioProgramSize(t *testing.T) {
	sc := Scenario{
		Kind:    "program-size",
		Pattern: `(a)(b)?`,
		Count:   MustCompile(`(a)(b)?`).ProgramSize(),
	}
	sc.Run(t)
}
