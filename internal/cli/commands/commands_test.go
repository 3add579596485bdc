package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	assert.Equal(t, "validate PATTERN [FLAGS]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.Error(t, cmd.Args(cmd, nil), "pattern is required")
	assert.Error(t, cmd.Args(cmd, []string{"a", "g", "x"}))
}

func TestNewInspectCommand(t *testing.T) {
	cmd := NewInspectCommand()

	assert.Equal(t, "inspect PATTERN [FLAGS]", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("compile"))
}

func TestNewExecCommand(t *testing.T) {
	cmd := NewExecCommand()

	assert.Equal(t, "exec PATTERN [FLAGS]", cmd.Use)
	for _, flag := range []string{"input", "from", "parallel"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

// Commands run outside the root tree use the default configuration.
func TestExecDefaults(t *testing.T) {
	cmd := NewExecCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"b+", "-i", "abbc"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "[1,3)")
}

func TestNewVersionCommand(t *testing.T) {
	for _, version := range []string{"0.1.0", "dev"} {
		cmd := NewVersionCommand(version)
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)

		require.NoError(t, cmd.Execute())
		assert.True(t, strings.HasPrefix(buf.String(), "polyregex v"+version), buf.String())
	}
}

func TestSpan(t *testing.T) {
	spans := []int{0, 4, -1, -1, 2, 4}
	assert.Equal(t, "[0,4)", span(spans, 0))
	assert.Equal(t, "-", span(spans, 1))
	assert.Equal(t, "[2,4)", span(spans, 2))
}
