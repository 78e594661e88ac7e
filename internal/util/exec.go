package util

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command describes one child process invocation.
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Env    []string // appended to os.Environ()
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes a Command. Tests substitute their own.
type Runner interface {
	Run(ctx context.Context, c Command) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	Log.Debugf("Executing: %s %s", c.Name, strings.Join(c.Args, " "))
	if err := cmd.Run(); err != nil {
		Log.Debugf("Command '%s' finished with error: %v", c.Name, err)
		return err
	}
	return nil
}

// Output runs c and returns its captured stdout. Stderr is captured too and
// folded into the returned error on failure.
func Output(ctx context.Context, r Runner, c Command) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := r.Run(ctx, c); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return stdout.Bytes(), err
		}
		return stdout.Bytes(), fmt.Errorf("%w: %s", err, msg)
	}
	return stdout.Bytes(), nil
}

// ExitCoder is implemented by errors that carry a process exit status,
// *exec.ExitError among them.
type ExitCoder interface {
	ExitCode() int
}

// ExitCode extracts the process exit status from err, or -1 if err does not
// carry one.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coded ExitCoder
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return -1
}
