package compiler

import (
	"fmt"
	"strings"
	"text/template"
)

// programTemplate wraps the generated statements in a C++ translation unit.
// Top-level statements form the body of main; a top-level return therefore
// sets the process exit status.
var programTemplate = template.Must(template.New("program").Parse(
	`// Generated by cern{{if .SourceName}} from {{.SourceName}}{{end}}. Do not edit.
{{- if .BuildID}}
// build {{.BuildID}}
{{- end}}
#include <cstdlib>

int main()
{
{{.Body}}    return EXIT_SUCCESS;
}
`))

// GenerateOptions controls the header of the emitted file.
type GenerateOptions struct {
	SourceName string // shown in the header comment
	BuildID    string // shown in the header comment when set
	Source     string // raw source text, used for diagnostic snippets
}

// CodeGen walks a Program and emits C++ source text.
type CodeGen struct {
	arena  *Arena
	syms   *SymbolTable
	out    strings.Builder
	indent int
	lines  sourceLines
}

func newCodeGen(arena *Arena, syms *SymbolTable, src string) *CodeGen {
	return &CodeGen{arena: arena, syms: syms, indent: 1, lines: newSourceLines(src)}
}

func (cg *CodeGen) line(format string, args ...any) {
	cg.out.WriteString(strings.Repeat("    ", cg.indent))
	fmt.Fprintf(&cg.out, format+"\n", args...)
}

func (cg *CodeGen) errorf(line int, format string, args ...any) error {
	return cg.lines.diag(StageGenerate, line, format, args...)
}

// genExpr renders an expression. Binary expressions are always wrapped in
// parentheses so the C++ compiler sees exactly the parsed tree.
func (cg *CodeGen) genExpr(b *strings.Builder, id ExprID) error {
	e := cg.arena.Expr(id)
	switch e.Kind {
	case ExprTerm:
		return cg.genTerm(b, e.Term)
	case ExprBin:
		bin := cg.arena.BinExpr(e.Bin)
		b.WriteByte('(')
		if err := cg.genExpr(b, bin.LHS); err != nil {
			return err
		}
		fmt.Fprintf(b, " %s ", bin.Op.Symbol())
		if err := cg.genExpr(b, bin.RHS); err != nil {
			return err
		}
		b.WriteByte(')')
		return nil
	default:
		return fmt.Errorf("unknown expression kind %d", e.Kind)
	}
}

func (cg *CodeGen) genTerm(b *strings.Builder, id TermID) error {
	t := cg.arena.Term(id)
	switch t.Kind {
	case TermIntLit:
		b.WriteString(t.Tok.Lexeme)
	case TermCharLit:
		fmt.Fprintf(b, "'%s'", t.Tok.Lexeme)
	case TermIdent:
		sym, ok := cg.syms.Lookup(t.Tok.Lexeme)
		if !ok {
			return cg.errorf(t.Tok.Line, "undeclared identifier `%s`", t.Tok.Lexeme)
		}
		b.WriteString(sym.CName)
	case TermParen:
		// The inner expression carries its own parentheses when it needs them.
		return cg.genExpr(b, t.Inner)
	default:
		return fmt.Errorf("unknown term kind %d", t.Kind)
	}
	return nil
}

func (cg *CodeGen) exprString(id ExprID) (string, error) {
	var b strings.Builder
	if err := cg.genExpr(&b, id); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (cg *CodeGen) genScope(id ScopeID) error {
	cg.line("{")
	cg.indent++
	cg.syms.EnterScope()
	for _, s := range cg.arena.Scope(id).Stmts {
		if err := cg.genStmt(s); err != nil {
			return err
		}
	}
	cg.syms.ExitScope()
	cg.indent--
	cg.line("}")
	return nil
}

func (cg *CodeGen) genPred(id IfPredID) error {
	pred := cg.arena.IfPred(id)
	switch pred.Kind {
	case PredElif:
		cond, err := cg.exprString(pred.Cond)
		if err != nil {
			return err
		}
		cg.line("else if (%s)", cond)
	case PredElse:
		cg.line("else")
	}
	if err := cg.genScope(pred.Scope); err != nil {
		return err
	}
	if pred.Kind == PredElif && pred.Next != NoNode {
		return cg.genPred(pred.Next)
	}
	return nil
}

func (cg *CodeGen) genStmt(id StmtID) error {
	s := cg.arena.Stmt(id)
	switch s.Kind {

	case StmtReturn:
		val, err := cg.exprString(s.Expr)
		if err != nil {
			return err
		}
		cg.line("return %s;", val)

	case StmtVarDeclare:
		// The initializer sees the enclosing declarations only; a shadowing
		// declaration gets its own C++ name from Declare.
		val, err := cg.exprString(s.Expr)
		if err != nil {
			return err
		}
		typ := s.Annotation
		if typ == TypeNone {
			typ = cg.arena.Expr(s.Expr).Type
		}
		name := s.Ident.Lexeme
		sym, exists := cg.syms.Declare(name, s.Ident.Line, typ)
		if exists {
			return cg.errorf(s.Ident.Line, "redeclaration of `%s` (declared on line %d)", name, sym.Line)
		}
		cg.line("%s %s = %s;", typ.cppName(), sym.CName, val)

	case StmtVarAssign:
		name := s.Ident.Lexeme
		sym, ok := cg.syms.Lookup(name)
		if !ok {
			return cg.errorf(s.Ident.Line, "undeclared identifier `%s`", name)
		}
		val, err := cg.exprString(s.Expr)
		if err != nil {
			return err
		}
		cg.line("%s = %s;", sym.CName, val)

	case StmtScope:
		return cg.genScope(s.Scope)

	case StmtIf:
		cond, err := cg.exprString(s.Expr)
		if err != nil {
			return err
		}
		cg.line("if (%s)", cond)
		if err := cg.genScope(s.Scope); err != nil {
			return err
		}
		if s.Pred != NoNode {
			return cg.genPred(s.Pred)
		}

	default:
		return fmt.Errorf("unknown statement kind %d", s.Kind)
	}
	return nil
}

// Generate emits a complete C++ translation unit for prog. A nil syms gets a
// fresh table; passing one in lets callers inspect the declarations afterwards
// (only the program-level scope survives generation).
func Generate(prog *Program, syms *SymbolTable, opts GenerateOptions) (string, error) {
	if syms == nil {
		syms = NewSymbolTable()
	}
	cg := newCodeGen(prog.Arena, syms, opts.Source)

	for _, s := range prog.Stmts {
		if err := cg.genStmt(s); err != nil {
			return "", err
		}
	}

	var out strings.Builder
	err := programTemplate.Execute(&out, struct {
		SourceName string
		BuildID    string
		Body       string
	}{opts.SourceName, opts.BuildID, cg.out.String()})
	if err != nil {
		return "", fmt.Errorf("render program: %w", err)
	}
	return out.String(), nil
}
