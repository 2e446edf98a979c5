package errors

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ""},
		{"plain error", errors.New("database locked"), "Error: database locked"},
		{"wrapped chain", errors.New("failed to load store: no such file"), "Error: failed to load store: no such file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("year %d is not tracked", 2026)
	want := "Error: year 2026 is not tracked"
	if got != want {
		t.Errorf("Formatf = %q, want %q", got, want)
	}
}

// Fatal exits the process, so it runs in a subprocess re-invocation of the
// test binary.
func TestFatal(t *testing.T) {
	if os.Getenv("ROUTINELY_TEST_FATAL") == "1" {
		Fatal(errors.New("boom"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal")
	cmd.Env = append(os.Environ(), "ROUTINELY_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("Fatal did not exit with an error: %v", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(stderr.String(), "Error: boom") {
		t.Errorf("stderr = %q, want it to contain %q", stderr.String(), "Error: boom")
	}
}

func TestFatalNilIsNoOp(t *testing.T) {
	if os.Getenv("ROUTINELY_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatalNilIsNoOp")
	cmd.Env = append(os.Environ(), "ROUTINELY_TEST_FATAL_NIL=1")
	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should return normally, subprocess failed: %v", err)
	}
}
