package piopack

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutorCapturesStreamsAndExitCode(t *testing.T) {
	execCtx := NewExecutor(context.Background())

	res := execCtx.Run("sh", "-c", "echo out; echo err >&2; exit 3")
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "out\n", res.Out)
	assert.Equal(t, "err\n", string(res.Err))
}

func TestExecutorUnstartableCommand(t *testing.T) {
	execCtx := NewExecutor(context.Background())

	res := execCtx.Run("definitely-not-a-real-binary-xyz")
	assert.Equal(t, -1, res.ExitCode)
	assert.NotEmpty(t, res.Err)
}

func TestExecutorDir(t *testing.T) {
	dir := t.TempDir()
	execCtx := NewExecutor(context.Background())
	execCtx.Dir = dir

	res := execCtx.Run("pwd")
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Out, dir)
}

func TestExecutorTee(t *testing.T) {
	var tee bytes.Buffer
	execCtx := NewExecutor(context.Background())
	execCtx.Tee = &tee

	res := execCtx.Run("sh", "-c", "echo hello")
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello\n", res.Out)
	assert.Equal(t, "hello\n", tee.String())
}

func TestValidateExecResult(t *testing.T) {
	require.NoError(t, validateExecResult(ExecResult{ExitCode: 0}, "fine"))

	err := validateExecResult(ExecResult{ExitCode: 2, Out: "boom"}, "Command failed")
	require.ErrorContains(t, err, "Command failed")
	require.ErrorContains(t, err, "exit code 2")
}
