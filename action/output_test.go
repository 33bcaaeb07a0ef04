package action

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetOutput(t *testing.T) {
	var sb strings.Builder

	if err := SetOutput(&sb, RangeOutputName, "a^1...b"); err != nil {
		t.Fatalf("SetOutput failed: %v", err)
	}
	if sb.String() != "commit-range=a^1...b\n" {
		t.Errorf("output = %q, want %q", sb.String(), "commit-range=a^1...b\n")
	}
}

func TestSetOutput_EmptyValue(t *testing.T) {
	var sb strings.Builder

	if err := SetOutput(&sb, RangeOutputName, ""); err != nil {
		t.Fatalf("SetOutput failed: %v", err)
	}
	if sb.String() != "commit-range=\n" {
		t.Errorf("output = %q, want empty value published", sb.String())
	}
}

func TestSetOutput_Multiline(t *testing.T) {
	var sb strings.Builder

	if err := SetOutput(&sb, "notes", "line1\nline2"); err != nil {
		t.Fatalf("SetOutput failed: %v", err)
	}

	out := sb.String()
	if !strings.HasPrefix(out, "notes<<ghadelimiter_") {
		t.Fatalf("output = %q, want heredoc form", out)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	delimiter := strings.TrimPrefix(lines[0], "notes<<")
	if lines[len(lines)-1] != delimiter {
		t.Errorf("heredoc not closed by delimiter %q: %q", delimiter, out)
	}
	if lines[1] != "line1" || lines[2] != "line2" {
		t.Errorf("value lines = %v, want [line1 line2]", lines[1:3])
	}
}

func TestSetOutput_NoName(t *testing.T) {
	var sb strings.Builder
	if err := SetOutput(&sb, "", "v"); err == nil {
		t.Error("empty name accepted, want error")
	}
}

func TestPublish_GithubOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	t.Setenv("GITHUB_OUTPUT", path)

	if err := Publish(RangeOutputName, "x...y"); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if err := Publish("determined", "true"); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "commit-range=x...y\ndetermined=true\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q (appended outputs)", data, want)
	}
}
