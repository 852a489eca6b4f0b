package piopack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ExecResult holds the outcome of a finished external command. Both output
// streams are captured so a failure can be replayed to the operator in full.
type ExecResult struct {
	ExitCode int
	Out      string
	Err      []byte
}

// Executor provides a consistent interface for executing the external
// tools the pipeline shells out to (cmake, ninja, ldd, pio, git).
type Executor struct {
	Context context.Context // The context to use for cancellation
	Dir     string          // Working directory for spawned commands
	Tee     io.Writer       // Receives a live copy of both streams when set
}

func NewExecutor(ctx context.Context) *Executor {
	return &Executor{Context: ctx}
}

// Run executes the command synchronously and never returns an error: the
// caller inspects the ExecResult and decides what is fatal. A command that
// could not even be started is reported as exit code -1 with the spawn
// error on the Err stream.
func (e *Executor) Run(name string, args ...string) ExecResult {
	ctx := e.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.Dir

	var out, errBuf bytes.Buffer
	if e.Tee != nil {
		cmd.Stdout = io.MultiWriter(&out, e.Tee)
		cmd.Stderr = io.MultiWriter(&errBuf, e.Tee)
	} else {
		cmd.Stdout = &out
		cmd.Stderr = &errBuf
	}

	err := cmd.Run()
	res := ExecResult{Out: out.String(), Err: errBuf.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
			res.Err = append(res.Err, []byte(err.Error())...)
		}
	}
	return res
}

// validateExecResult is the single escalation point for external command
// failures: on a non-zero exit it prints the message plus everything the
// command wrote and returns an error that aborts the whole pipeline.
func validateExecResult(res ExecResult, onErrMsg string) error {
	if res.ExitCode == 0 {
		return nil
	}
	colError.Println(onErrMsg)
	if res.Out != "" {
		fmt.Println(res.Out)
	}
	if len(res.Err) > 0 {
		fmt.Fprintln(os.Stderr, string(res.Err))
	}
	return fmt.Errorf("%s (exit code %d)", onErrMsg, res.ExitCode)
}
