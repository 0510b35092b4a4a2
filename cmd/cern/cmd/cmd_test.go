package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.ce")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

// run executes the command tree with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestParseCommand(t *testing.T) {
	path := writeSource(t, "var a = 1 + 2 * 3\nif (a) { a = 0 }")

	tests := []struct {
		format string
		want   string
	}{
		{"expr", "var a = (1 + (2 * 3))\nif (a) { a = 0 }\n"},
		{"tree", "Program\n  VarDeclare a\n    Add : int\n"},
		{"yaml", "kind: Program\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, _, err := run(t, "parse", "--format", tt.format, path)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if !strings.HasPrefix(out, tt.want) {
				t.Errorf("expected output starting with %q, got:\n%s", tt.want, out)
			}
		})
	}

	if _, _, err := run(t, "parse", "--format", "xml", path); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestTokensCommand(t *testing.T) {
	path := writeSource(t, "x = 'q'")
	out, _, err := run(t, "tokens", path)
	if err != nil {
		t.Fatalf("tokens failed: %v", err)
	}
	if !strings.HasPrefix(out, "Tokens (3)\n") || !strings.Contains(out, "CHAR_LIT") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestBuildEmitOnly(t *testing.T) {
	path := writeSource(t, "var a = 2\nreturn a * 21")
	dir := t.TempDir()

	if _, _, err := run(t, "build", "--emit-only", "-d", dir, path); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "main.cpp"))
	if err != nil {
		t.Fatalf("generated source missing: %v", err)
	}
	for _, want := range []string{"from prog.ce", "// build ", "int a = 2;", "return (a * 21);"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("generated source missing %q:\n%s", want, data)
		}
	}
}

func TestCommandReportsDiagnostics(t *testing.T) {
	path := writeSource(t, "var x = 1\nreturn (x")

	_, stderr, err := run(t, "parse", "--format", "tree", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected a reported error, got %v", err)
	}
	want := "prog.ce:2: [Parse Error] missing ')' (found end of input) on line 2"
	if !strings.Contains(stderr, want) {
		t.Errorf("expected %q in stderr, got:\n%s", want, stderr)
	}
	if !strings.Contains(stderr, "|> return (x") {
		t.Errorf("expected the source line in stderr, got:\n%s", stderr)
	}
}

func TestMissingSource(t *testing.T) {
	_, _, err := run(t, "tokens", filepath.Join(t.TempDir(), "nope.ce"))
	if err == nil || errors.Is(err, errReported) {
		t.Errorf("expected an unreported read error, got %v", err)
	}
}

func TestReadSourceResolvesPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "prog.ce"), []byte("return 1"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	chdirTest(t, dir)

	full, src, err := readSource(filepath.Join(".", "sub", "..", "prog.ce"))
	if err != nil {
		t.Fatalf("readSource failed: %v", err)
	}
	if !filepath.IsAbs(full) || filepath.Base(full) != "prog.ce" || strings.Contains(full, "..") {
		t.Errorf("expected a clean absolute path, got %q", full)
	}
	if src != "return 1" {
		t.Errorf("contents: got %q", src)
	}
}

// chdirTest changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirTest(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
