package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRunRequestRoundTrip(t *testing.T) {
	in := RunRequest{
		Command: "tar",
		Args:    []string{"-czf", "out.tar.gz", "."},
		Stdin:   []byte{0x1f, 0x8b, 0x00},
		Cwd:     "task-9ae4ef2b",
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out RunRequest
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch: %+v vs %+v", in, out)
	}
}

func TestRunStatusRoundTrip(t *testing.T) {
	statuses := []RunStatus{
		Success(&RunResult{ExitCode: 0, Stdout: "ok\n", DurationMs: 12}),
		Failure(&RunResult{ExitCode: 3, Stderr: "boom"}, "exit code 3"),
		Failure(&RunResult{ExitCode: -1, Signal: "killed"}, "terminated by signal: killed"),
		SpawnError("fork/exec: no such file or directory"),
	}

	for _, in := range statuses {
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatal(err)
		}
		var out RunStatus
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Errorf("round trip mismatch: %+v vs %+v", in, out)
		}
	}
}

func TestRunStatusTag(t *testing.T) {
	data, err := json.Marshal(Success(&RunResult{}))
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if string(m["status"]) != `"success"` {
		t.Errorf("status tag = %s, want \"success\"", m["status"])
	}
	if _, ok := m["message"]; ok {
		t.Error("success must not serialize an error message")
	}
}

func TestInfoResponseRoundTrip(t *testing.T) {
	in := InfoResponse{
		Version:    "0.3.0",
		APIVersion: APIVersion,
		Hostname:   "build-runner-2",
		OS:         "linux",
		WorkDir:    "/tmp/runnerd",
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out InfoResponse
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if in != out {
		t.Errorf("round trip mismatch: %+v vs %+v", in, out)
	}
}

func TestUnknownFieldsIgnored(t *testing.T) {
	// Old clients must survive fields added later.
	var status RunStatus
	err := json.Unmarshal([]byte(`{"status":"success","result":{"exitCode":0},"futureField":42}`), &status)
	if err != nil {
		t.Fatalf("unmarshal with unknown field: %v", err)
	}
	if status.Status != StatusSuccess {
		t.Errorf("status = %q, want success", status.Status)
	}
}
