package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const page = `package views

import "github.com/vango-dev/zx/pkg/zx"

func Page(title string) zx.Component {
	return (<h1>{title}</h1>)
}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := rootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version --short = %q, want %q", out, version)
	}

	out, err = run(t, "version")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if !strings.Contains(out, "Go version:") {
		t.Errorf("version output missing Go version:\n%s", out)
	}
}

func TestBuildAndResolve(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "page.zx"), []byte(page), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "build", dir, "--sourcemaps", "--metrics-file", "build.prom")
	if err != nil {
		t.Fatalf("build error: %v", err)
	}
	if !strings.Contains(out, "Compiled 1 files") {
		t.Errorf("unexpected build output:\n%s", out)
	}

	metrics, err := os.ReadFile(filepath.Join(dir, "build.prom"))
	if err != nil {
		t.Fatalf("metrics file missing: %v", err)
	}
	if !strings.Contains(string(metrics), `zx_build_files_total{result="success"} 1`) {
		t.Errorf("metrics file missing files_total:\n%s", metrics)
	}

	generated := filepath.Join(dir, "page.go")
	code, err := os.ReadFile(generated)
	if err != nil {
		t.Fatalf("generated file missing: %v", err)
	}
	line, col := 0, 0
	for i, l := range strings.Split(string(code), "\n") {
		if j := strings.Index(l, `zx.Element("h1"`); j >= 0 {
			line, col = i+1, j+1
			break
		}
	}
	if line == 0 {
		t.Fatalf("h1 constructor not found:\n%s", code)
	}

	out, err = run(t, "resolve", generated+":"+strconv.Itoa(line)+":"+strconv.Itoa(col))
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if want := "page.zx:6:"; !strings.Contains(out, want) {
		t.Errorf("resolve = %q, want it to contain %q", out, want)
	}
}

func TestBuildFailure(t *testing.T) {
	dir := t.TempDir()
	bad := strings.Replace(page, "</h1>", "</h2>", 1)
	if err := os.WriteFile(filepath.Join(dir, "bad.zx"), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := run(t, "build", dir)
	if err == nil || !strings.Contains(err.Error(), "E140") {
		t.Errorf("Expected E140, got %v", err)
	}
}

func TestBuildPublishWithoutBucket(t *testing.T) {
	_, err := run(t, "build", t.TempDir(), "--publish")
	if err == nil || !strings.Contains(err.Error(), "E142") {
		t.Errorf("Expected E142, got %v", err)
	}
}

func TestResolveMissingMap(t *testing.T) {
	_, err := run(t, "resolve", filepath.Join(t.TempDir(), "none.go")+":1:1")
	if err == nil || !strings.Contains(err.Error(), "E141") {
		t.Errorf("Expected E141, got %v", err)
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in        string
		file      string
		line, col int
		wantErr   bool
	}{
		{"a.go:3:7", "a.go", 3, 7, false},
		{"a.go:3", "a.go", 3, 1, false},
		{`C:\x\a.go:12:4`, `C:\x\a.go`, 12, 4, false},
		{"a.go", "", 0, 0, true},
		{`C:\a.go:12`, `C:\a.go`, 12, 1, false},
		{"a.go:3:x", "", 0, 0, true},
		{"a.go:0:1", "", 0, 0, true},
		{":3:1", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			file, line, col, err := parsePosition(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parsePosition(%q) should fail", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePosition(%q) error: %v", tt.in, err)
			}
			if file != tt.file || line != tt.line || col != tt.col {
				t.Errorf("parsePosition(%q) = %q, %d, %d", tt.in, file, line, col)
			}
		})
	}
}
