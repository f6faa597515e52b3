package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"github.com/runnerhq/runnerd/pkg/types"
)

// Run spawns the requested command and blocks until it exits, capturing
// stdout and stderr in full. It returns a RunResult whenever the process
// actually ran, regardless of its exit code; a non-nil error means the OS
// could not start the process at all (executable missing, permission
// denied). There is no timeout: a child that never exits holds its request.
func (r *Runner) Run(ctx context.Context, req types.RunRequest) (*types.RunResult, error) {
	dir, err := r.root.ResolveDir(req.Cwd)
	if err != nil {
		return nil, fmt.Errorf("cwd: %w", err)
	}

	cmd := exec.CommandContext(ctx, req.Command, req.Args...)
	cmd.Dir = dir
	if len(req.Stdin) > 0 {
		cmd.Stdin = bytes.NewReader(req.Stdin)
	}

	// Buffer sinks; os/exec drains both pipes on its own goroutines, so a
	// chatty child cannot deadlock against us.
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// Start-level failure: the child never ran.
		return nil, err
	}

	res := &types.RunResult{
		ExitCode:   cmd.ProcessState.ExitCode(),
		Signal:     termSignal(cmd.ProcessState.Sys()),
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMs: elapsed.Milliseconds(),
	}
	return res, nil
}

// termSignal names the signal that killed the process, or "" if it exited.
func termSignal(sys any) string {
	ws, ok := sys.(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return ""
	}
	return ws.Signal().String()
}
