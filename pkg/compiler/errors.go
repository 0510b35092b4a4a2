package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// Stage names the pipeline step that produced a Diagnostic.
type Stage string

const (
	StageLex      Stage = "Error"
	StageParse    Stage = "Parse Error"
	StageGenerate Stage = "Generation Error"
)

// ErrArenaExhausted is returned when a parse needs more node storage than the
// arena was created with.
var ErrArenaExhausted = errors.New("arena exhausted")

// Diagnostic is a fatal, line-tagged compilation failure. Once a Diagnostic is
// returned the compilation is over; no partial tree or output accompanies it.
type Diagnostic struct {
	Stage   Stage
	Line    int
	Message string
	Snippet string // trimmed source line, when the source text is known
	Err     error  // underlying cause, if any
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("[%s] %s on line %d", d.Stage, d.Message, d.Line)
}

func (d *Diagnostic) Unwrap() error { return d.Err }

// sourceLines splits raw source into lines for snippet lookup.
type sourceLines []string

func newSourceLines(src string) sourceLines {
	if src == "" {
		return nil
	}
	return strings.Split(src, "\n")
}

// snippet returns the trimmed text of 1-based line n, or "" when unavailable.
func (s sourceLines) snippet(n int) string {
	idx := n - 1
	if idx < 0 || idx >= len(s) {
		return ""
	}
	return strings.TrimSpace(s[idx])
}

func (s sourceLines) diag(stage Stage, line int, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Stage:   stage,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
		Snippet: s.snippet(line),
	}
}
