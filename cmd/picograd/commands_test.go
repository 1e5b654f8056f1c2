package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picograd-ml/picograd/internal/scenario"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "picograd "+version+"\n", out)
}

func TestDemo_AllPass(t *testing.T) {
	for _, precision := range []string{"float32", "float64"} {
		t.Run(precision, func(t *testing.T) {
			out, _, err := execute(t, "demo", "--precision", precision, "--color", "never")
			require.NoError(t, err)

			for _, name := range scenario.Names() {
				assert.Contains(t, out, name+" ("+precision+")")
			}
			assert.NotContains(t, out, "FAIL")
			assert.Contains(t, out, "  ok   x.grad = 46 (want 46)")
		})
	}
}

func TestDemo_SelectedWithGraph(t *testing.T) {
	out, _, err := execute(t, "demo", "log", "--graph", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, out, "log (float64)")
	assert.NotContains(t, out, "more-ops")
	assert.Contains(t, out, " |__Node(7, grad=0.14285714285714285, op=leaf)")
}

func TestDemo_FailingTolerance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strict.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: float32\ntolerance: 1e-12\nscenarios: [more-ops]\n"), 0o644))

	out, _, err := execute(t, "demo", "--config", path, "--color", "never")
	require.ErrorIs(t, err, errScenarioFailed)
	assert.Contains(t, out, "FAIL")
}

func TestDemo_UnknownScenario(t *testing.T) {
	_, _, err := execute(t, "demo", "nope")
	assert.ErrorIs(t, err, scenario.ErrUnknown)
}

func TestGraph(t *testing.T) {
	out, _, err := execute(t, "graph", "log")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "op=log")

	_, _, err = execute(t, "graph")
	assert.Error(t, err, "graph requires a scenario")
}

func TestInvalidFlags(t *testing.T) {
	_, _, err := execute(t, "demo", "--precision", "float16")
	assert.ErrorContains(t, err, "invalid flags")
}

func TestVerbose_LogsToStderr(t *testing.T) {
	out, errOut, err := execute(t, "demo", "log", "--verbose", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, errOut, "msg=forward op=log")
	assert.Contains(t, errOut, "msg=\"scenario finished\" scenario=log passed=true")
	assert.NotContains(t, out, "msg=")
}
