package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/runnerhq/runnerd/pkg/types"
)

// ErrScriptWrite marks a failure to materialize the script body on disk.
// No process is spawned when this happens.
var ErrScriptWrite = errors.New("write script")

// scriptExt maps interpreter names to a file extension for the materialized
// script. Some interpreters (and their scripts' shebang-less cousins on
// Windows) care about the suffix; everyone else ignores it.
var scriptExt = map[string]string{
	"sh":         "sh",
	"bash":       "sh",
	"zsh":        "sh",
	"cmd":        "bat",
	"powershell": "ps1",
	"pwsh":       "ps1",
	"python":     "py",
	"python3":    "py",
	"node":       "js",
	"ruby":       "rb",
	"perl":       "pl",
}

// RunScript writes the script body to a uniquely named file inside the
// working root and runs it as `interpreter <file> args...` via Run. The
// file is deliberately left behind; cleanup belongs to the client (or the
// opt-in janitor).
func (r *Runner) RunScript(ctx context.Context, req types.ScriptRequest) (*types.RunResult, error) {
	if strings.TrimSpace(req.Interpreter) == "" {
		return nil, fmt.Errorf("interpreter must not be empty")
	}

	name := fmt.Sprintf("script_%s.%s", uuid.NewString(), extFor(req.Interpreter))
	path := filepath.Join(r.root.Path(), name)
	if err := os.WriteFile(path, req.Script, 0o700); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrScriptWrite, name, err)
	}

	run := types.RunRequest{
		Command: r.interpreterPath(req.Interpreter),
		Args:    append([]string{path}, req.Args...),
	}
	return r.Run(ctx, run)
}

func (r *Runner) interpreterPath(name string) string {
	if p, ok := r.interpreters[name]; ok {
		return p
	}
	return name
}

func extFor(interpreter string) string {
	// "python3.12" still counts as python.
	base := filepath.Base(interpreter)
	for name, ext := range scriptExt {
		if base == name || strings.HasPrefix(base, name) {
			return ext
		}
	}
	return "script"
}
