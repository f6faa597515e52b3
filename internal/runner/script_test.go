package runner

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/runnerhq/runnerd/internal/workdir"
	"github.com/runnerhq/runnerd/pkg/types"
)

func TestRunScript(t *testing.T) {
	r := newRunner(t)

	res, err := r.RunScript(context.Background(), types.ScriptRequest{
		Interpreter: "sh",
		Script:      []byte("echo hi"),
	})
	if err != nil {
		t.Fatalf("RunScript() error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", res.ExitCode)
	}
	if res.Stdout != "hi\n" {
		t.Errorf("stdout = %q, want %q", res.Stdout, "hi\n")
	}
}

func TestRunScriptPassesArgs(t *testing.T) {
	r := newRunner(t)

	res, err := r.RunScript(context.Background(), types.ScriptRequest{
		Interpreter: "sh",
		Script:      []byte(`echo "$1-$2"`),
		Args:        []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("RunScript() error: %v", err)
	}
	if res.Stdout != "a-b\n" {
		t.Errorf("stdout = %q, want %q", res.Stdout, "a-b\n")
	}
}

func TestRunScriptMissingInterpreter(t *testing.T) {
	r := newRunner(t)

	_, err := r.RunScript(context.Background(), types.ScriptRequest{
		Interpreter: "/no/such/interpreter",
		Script:      []byte("echo hi"),
	})
	if err == nil {
		t.Fatal("RunScript() with missing interpreter must fail to spawn")
	}
}

func TestRunScriptEmptyInterpreter(t *testing.T) {
	r := newRunner(t)

	_, err := r.RunScript(context.Background(), types.ScriptRequest{Script: []byte("echo hi")})
	if err == nil {
		t.Fatal("RunScript() with empty interpreter must be rejected")
	}
}

func TestRunScriptLeavesFileBehind(t *testing.T) {
	r := newRunner(t)

	if _, err := r.RunScript(context.Background(), types.ScriptRequest{
		Interpreter: "sh",
		Script:      []byte("true"),
	}); err != nil {
		t.Fatalf("RunScript() error: %v", err)
	}

	entries, err := os.ReadDir(r.Root().Path())
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "script_") && strings.HasSuffix(e.Name(), ".sh") {
			found = true
		}
	}
	if !found {
		t.Error("materialized script file is expected to persist")
	}
}

func TestRunScriptInterpreterOverride(t *testing.T) {
	root, err := workdir.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := New(root, map[string]string{"mysh": "/no/such/mysh"})

	_, err = r.RunScript(context.Background(), types.ScriptRequest{
		Interpreter: "mysh",
		Script:      []byte("true"),
	})
	if err == nil {
		t.Fatal("expected spawn error through the override path")
	}
	if !strings.Contains(err.Error(), "/no/such/mysh") {
		t.Errorf("error %v does not mention the overridden path", err)
	}
}

func TestExtFor(t *testing.T) {
	cases := map[string]string{
		"sh":              "sh",
		"bash":            "sh",
		"/usr/bin/bash":   "sh",
		"python3":         "py",
		"python3.12":      "py",
		"pwsh":            "ps1",
		"cmd":             "bat",
		"some-odd-binary": "script",
	}
	for in, want := range cases {
		if got := extFor(in); got != want {
			t.Errorf("extFor(%q) = %q, want %q", in, got, want)
		}
	}
}
