// Package runner turns run and script requests into exactly one subprocess
// each, waits for it, and captures the full output. It is the synchronous
// core of runnerd: a call blocks its handler until the child exits, and no
// shell ever sits between the request and the process.
package runner

import (
	"github.com/runnerhq/runnerd/internal/workdir"
)

// Runner spawns subprocesses inside a fixed working root.
type Runner struct {
	root *workdir.Root
	// interpreters maps an interpreter name from a script request to the
	// binary to invoke, e.g. "bash" -> "/opt/homebrew/bin/bash". Names not
	// in the map are looked up on PATH as-is.
	interpreters map[string]string
}

// New creates a Runner rooted at root. interpreters may be nil.
func New(root *workdir.Root, interpreters map[string]string) *Runner {
	return &Runner{root: root, interpreters: interpreters}
}

// Root returns the working root all runs execute in.
func (r *Runner) Root() *workdir.Root { return r.root }
