package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Toolchain hands generated C++ to an external compiler.
type Toolchain struct {
	Command    string   // compiler executable, e.g. "g++"
	Args       []string // flags placed before the source file
	SourceName string   // file name of the written artifact
	BinaryName string   // file name passed to -o
	Timeout    time.Duration
	Stdout     io.Writer // compiler stdout; discarded when nil
}

// BuildResult records where a build put its files.
type BuildResult struct {
	SourcePath string
	BinaryPath string
	Command    []string
}

// DefaultToolchain mirrors a plain `g++ -std=c++23 -Wall -Wextra main.cpp -o app`.
func DefaultToolchain() *Toolchain {
	return &Toolchain{
		Command:    "g++",
		Args:       []string{"-std=c++23", "-Wall", "-Wextra"},
		SourceName: "main.cpp",
		BinaryName: "app",
		Timeout:    2 * time.Minute,
	}
}

// WriteSource writes the generated source into dir and returns its path.
func (tc *Toolchain) WriteSource(dir, source string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, tc.SourceName)
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// commandLine is the full argv of the compiler invocation.
func (tc *Toolchain) commandLine(srcPath, binPath string) []string {
	argv := append([]string{tc.Command}, tc.Args...)
	return append(argv, srcPath, "-o", binPath)
}

// Build writes source into dir and runs the compiler on it. A non-zero
// compiler exit is returned as an error carrying the compiler's stderr.
func (tc *Toolchain) Build(ctx context.Context, dir, source string) (*BuildResult, error) {
	if tc.Command == "" {
		return nil, errors.New("no compiler command configured")
	}

	srcPath, err := tc.WriteSource(dir, source)
	if err != nil {
		return nil, err
	}
	res := &BuildResult{
		SourcePath: srcPath,
		BinaryPath: filepath.Join(dir, tc.BinaryName),
	}
	res.Command = tc.commandLine(res.SourcePath, res.BinaryPath)

	if tc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, tc.Timeout)
		defer cancel()
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, res.Command[0], res.Command[1:]...)
	cmd.Stdout = tc.Stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return res, fmt.Errorf("%s: %w\n%s", tc.Command, err, msg)
		}
		return res, fmt.Errorf("%s: %w", tc.Command, err)
	}
	return res, nil
}
