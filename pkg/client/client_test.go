package client

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/runnerhq/runnerd/internal/api"
	"github.com/runnerhq/runnerd/internal/runner"
	"github.com/runnerhq/runnerd/internal/workdir"
	"github.com/runnerhq/runnerd/pkg/types"
)

// startServer runs a real API server on a test listener so the client is
// exercised against the same routing tree production uses.
func startServer(t *testing.T) (*Client, *workdir.Root) {
	t.Helper()
	root, err := workdir.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := api.NewServer(runner.New(root, nil), "test")
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return New(ts.URL), root
}

func TestClientInfo(t *testing.T) {
	c, root := startServer(t)

	info, err := c.Info(context.Background())
	if err != nil {
		t.Fatalf("Info() error: %v", err)
	}
	if info.WorkDir != root.Path() {
		t.Errorf("workDir = %q, want %q", info.WorkDir, root.Path())
	}
	if info.APIVersion != types.APIVersion {
		t.Errorf("apiVersion = %q, want %q", info.APIVersion, types.APIVersion)
	}
}

func TestClientRun(t *testing.T) {
	c, _ := startServer(t)

	status, err := c.Run(context.Background(), types.RunRequest{
		Command: "echo",
		Args:    []string{"over", "the", "wire"},
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if status.Status != types.StatusSuccess {
		t.Fatalf("status = %q, want success", status.Status)
	}
	if status.Result.Stdout != "over the wire\n" {
		t.Errorf("stdout = %q", status.Result.Stdout)
	}
}

func TestClientRunFailureIsNotAnError(t *testing.T) {
	c, _ := startServer(t)

	status, err := c.Run(context.Background(), types.RunRequest{Command: "false"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if status.Status != types.StatusFailure {
		t.Errorf("status = %q, want failure", status.Status)
	}
}

func TestClientRunScript(t *testing.T) {
	c, _ := startServer(t)

	status, err := c.RunScript(context.Background(), types.ScriptRequest{
		Interpreter: "sh",
		Script:      []byte("echo hi"),
	})
	if err != nil {
		t.Fatalf("RunScript() error: %v", err)
	}
	if status.Status != types.StatusSuccess {
		t.Fatalf("status = %q, want success", status.Status)
	}
	if status.Result.Stdout != "hi\n" {
		t.Errorf("stdout = %q, want %q", status.Result.Stdout, "hi\n")
	}
}

func TestClientFetchFile(t *testing.T) {
	c, root := startServer(t)
	want := []byte("artifact")
	if err := os.WriteFile(filepath.Join(root.Path(), "a.bin"), want, 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	n, err := c.FetchFile(context.Background(), "a.bin", &buf)
	if err != nil {
		t.Fatalf("FetchFile() error: %v", err)
	}
	if n != int64(len(want)) || !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got %d bytes %q, want %q", n, buf.Bytes(), want)
	}
}

func TestClientFetchFileForbidden(t *testing.T) {
	c, _ := startServer(t)

	var buf bytes.Buffer
	_, err := c.FetchFile(context.Background(), "../../etc/passwd", &buf)
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error %v does not carry the 403 status", err)
	}
	if buf.Len() != 0 {
		t.Error("no bytes may be returned for a forbidden path")
	}
}

func TestClientHealth(t *testing.T) {
	c, _ := startServer(t)
	if err := c.Health(context.Background()); err != nil {
		t.Errorf("Health() error: %v", err)
	}
}

func TestClientAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"command is required"}`))
	}))
	t.Cleanup(ts.Close)

	_, err := New(ts.URL).Run(context.Background(), types.RunRequest{})
	if err == nil {
		t.Fatal("expected API error")
	}
	if !strings.Contains(err.Error(), "command is required") {
		t.Errorf("error %v does not surface the server message", err)
	}
}
