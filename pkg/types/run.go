// Package types defines the JSON wire schema shared by the runnerd server
// and the pkg/client HTTP client. All shapes are field-name keyed; optional
// fields carry omitempty so new fields never break old clients.
package types

// RunRequest is the request body for POST /api/run.
//
// Args are passed to the executable as a literal vector. No shell is ever
// involved, so nothing needs quoting or escaping.
type RunRequest struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
	Stdin   []byte   `json:"stdin,omitempty"`
	// Cwd optionally overrides the working directory for this run. It is
	// relative and must resolve inside the server's working root.
	Cwd string `json:"cwd,omitempty"`
}

// ScriptRequest is the request body for POST /api/runscript. The script body
// is written to a file inside the working root and run as
// `interpreter <file> args...`.
type ScriptRequest struct {
	Interpreter string   `json:"interpreter"`
	Script      []byte   `json:"script"`
	Args        []string `json:"args,omitempty"`
}

// RunResult is the captured outcome of a completed process.
type RunResult struct {
	// ExitCode is the process exit code, or -1 if Signal is set.
	ExitCode int `json:"exitCode"`
	// Signal names the signal that terminated the process ("killed",
	// "terminated", ...). Empty when the process exited on its own.
	Signal     string `json:"signal,omitempty"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	DurationMs int64  `json:"durationMs"`
}

// RunStatus values. The set is closed: every run maps to exactly one.
const (
	// StatusSuccess: the process ran and exited zero.
	StatusSuccess = "success"
	// StatusFailure: the process ran but exited nonzero or was signaled.
	// The call itself succeeded; the command did not.
	StatusFailure = "failure"
	// StatusError: the process could not be started at all.
	StatusError = "error"
)

// RunStatus is the response body for /api/run and /api/runscript, tagged by
// the Status field.
type RunStatus struct {
	Status string `json:"status"`
	// Result carries the captured output for success and failure.
	Result *RunResult `json:"result,omitempty"`
	// Reason describes a failure (exit code or signal), set with Result.
	Reason string `json:"reason,omitempty"`
	// Message is the spawn-level diagnostic for error status.
	Message string `json:"message,omitempty"`
}

// Success wraps a zero-exit result.
func Success(r *RunResult) RunStatus {
	return RunStatus{Status: StatusSuccess, Result: r}
}

// Failure wraps a nonzero or signaled result.
func Failure(r *RunResult, reason string) RunStatus {
	return RunStatus{Status: StatusFailure, Result: r, Reason: reason}
}

// SpawnError reports that the process never started.
func SpawnError(message string) RunStatus {
	return RunStatus{Status: StatusError, Message: message}
}
