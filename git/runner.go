package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes a command in a directory and returns its stdout.
// Implementations must include stderr in the returned error when the
// command fails.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

// NewExecRunner creates a runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements CommandRunner.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg != "" {
			return "", fmt.Errorf("%s %s: %s: %w", name, strings.Join(args, " "), msg, err)
		}
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Call records one invocation seen by a mock runner.
type Call struct {
	Dir  string
	Name string
	Args []string
}

type mockResult struct {
	stdout string
	err    error
}

// SequentialMockRunner returns scripted outputs in order.
// Used in tests to avoid a real git checkout.
type SequentialMockRunner struct {
	results []mockResult
	Calls   []Call
}

// NewSequentialMockRunner creates an empty scripted runner.
func NewSequentialMockRunner() *SequentialMockRunner {
	return &SequentialMockRunner{}
}

// AddOutput scripts the next invocation's stdout and error.
func (r *SequentialMockRunner) AddOutput(stdout string, err error) {
	r.results = append(r.results, mockResult{stdout: stdout, err: err})
}

// AddOutputError scripts a failing invocation whose error carries stderr,
// mirroring how ExecRunner reports command failures.
func (r *SequentialMockRunner) AddOutputError(stdout, stderr string, err error) {
	if err == nil {
		err = errors.New(stderr)
	} else {
		err = fmt.Errorf("%s: %w", stderr, err)
	}
	r.results = append(r.results, mockResult{stdout: stdout, err: err})
}

// Run implements CommandRunner by replaying scripted results.
func (r *SequentialMockRunner) Run(_ context.Context, dir, name string, args ...string) (string, error) {
	r.Calls = append(r.Calls, Call{Dir: dir, Name: name, Args: args})
	if len(r.results) == 0 {
		return "", fmt.Errorf("unexpected call: %s %s", name, strings.Join(args, " "))
	}
	next := r.results[0]
	r.results = r.results[1:]
	return next.stdout, next.err
}
