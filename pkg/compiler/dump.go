package compiler

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FormatExpr renders an expression fully parenthesized, e.g. "(a + (b * c))".
// Parenthesized terms are rendered as their inner expression, so grouping in
// the output always reflects tree shape rather than source spelling.
func (a *Arena) FormatExpr(id ExprID) string {
	var b strings.Builder
	a.formatExpr(&b, id)
	return b.String()
}

func (a *Arena) formatExpr(b *strings.Builder, id ExprID) {
	e := a.Expr(id)
	switch e.Kind {
	case ExprTerm:
		t := a.Term(e.Term)
		switch t.Kind {
		case TermIntLit, TermIdent:
			b.WriteString(t.Tok.Lexeme)
		case TermCharLit:
			fmt.Fprintf(b, "'%s'", t.Tok.Lexeme)
		case TermParen:
			a.formatExpr(b, t.Inner)
		}
	case ExprBin:
		bin := a.BinExpr(e.Bin)
		b.WriteByte('(')
		a.formatExpr(b, bin.LHS)
		fmt.Fprintf(b, " %s ", bin.Op.Symbol())
		a.formatExpr(b, bin.RHS)
		b.WriteByte(')')
	}
}

// FormatStmt renders a statement on a single line, e.g.
// "if (x) { y = 1 } elif (z) { } else { return 0 }".
func (a *Arena) FormatStmt(id StmtID) string {
	var b strings.Builder
	a.formatStmt(&b, id)
	return b.String()
}

func (a *Arena) formatStmt(b *strings.Builder, id StmtID) {
	s := a.Stmt(id)
	switch s.Kind {
	case StmtReturn:
		b.WriteString("return ")
		a.formatExpr(b, s.Expr)
	case StmtVarDeclare:
		fmt.Fprintf(b, "var %s", s.Ident.Lexeme)
		if s.Annotation != TypeNone {
			fmt.Fprintf(b, ": %s", s.Annotation)
		}
		b.WriteString(" = ")
		a.formatExpr(b, s.Expr)
	case StmtVarAssign:
		fmt.Fprintf(b, "%s = ", s.Ident.Lexeme)
		a.formatExpr(b, s.Expr)
	case StmtScope:
		a.formatScope(b, s.Scope)
	case StmtIf:
		b.WriteString("if (")
		a.formatExpr(b, s.Expr)
		b.WriteString(") ")
		a.formatScope(b, s.Scope)
		for pid := s.Pred; pid != NoNode; {
			p := a.IfPred(pid)
			if p.Kind == PredElif {
				b.WriteString(" elif (")
				a.formatExpr(b, p.Cond)
				b.WriteString(") ")
			} else {
				b.WriteString(" else ")
			}
			a.formatScope(b, p.Scope)
			pid = p.Next
		}
	}
}

func (a *Arena) formatScope(b *strings.Builder, id ScopeID) {
	stmts := a.Scope(id).Stmts
	if len(stmts) == 0 {
		b.WriteString("{ }")
		return
	}
	b.WriteString("{ ")
	for i, s := range stmts {
		if i > 0 {
			b.WriteString("; ")
		}
		a.formatStmt(b, s)
	}
	b.WriteString(" }")
}

// TreeNode is a plain, arena-free view of a syntax tree used for dumps.
type TreeNode struct {
	Kind     string      `yaml:"kind"`
	Name     string      `yaml:"name,omitempty"`
	Value    string      `yaml:"value,omitempty"`
	Type     string      `yaml:"type,omitempty"`
	Line     int         `yaml:"line,omitempty"`
	Children []*TreeNode `yaml:"children,omitempty"`
}

// Tree converts prog into a TreeNode hierarchy rooted at a "Program" node.
func (prog *Program) Tree() *TreeNode {
	root := &TreeNode{Kind: "Program"}
	for _, id := range prog.Stmts {
		root.Children = append(root.Children, prog.Arena.stmtTree(id))
	}
	return root
}

func typeLabel(v VarType) string {
	if v == TypeNone {
		return ""
	}
	return v.String()
}

func (a *Arena) exprTree(id ExprID) *TreeNode {
	e := a.Expr(id)
	if e.Kind == ExprBin {
		bin := a.BinExpr(e.Bin)
		return &TreeNode{
			Kind:     bin.Op.String(),
			Type:     typeLabel(e.Type),
			Children: []*TreeNode{a.exprTree(bin.LHS), a.exprTree(bin.RHS)},
		}
	}

	t := a.Term(e.Term)
	n := &TreeNode{Kind: t.Kind.String(), Type: typeLabel(t.Type), Line: t.Tok.Line}
	switch t.Kind {
	case TermIdent:
		n.Name = t.Tok.Lexeme
	case TermIntLit, TermCharLit:
		n.Value = t.Tok.Lexeme
	case TermParen:
		n.Children = []*TreeNode{a.exprTree(t.Inner)}
	}
	return n
}

func (a *Arena) scopeTree(id ScopeID) *TreeNode {
	n := &TreeNode{Kind: "Scope"}
	for _, s := range a.Scope(id).Stmts {
		n.Children = append(n.Children, a.stmtTree(s))
	}
	return n
}

func (a *Arena) predTree(id IfPredID) *TreeNode {
	p := a.IfPred(id)
	n := &TreeNode{Kind: p.Kind.String()}
	if p.Kind == PredElif {
		n.Children = append(n.Children, a.exprTree(p.Cond))
	}
	n.Children = append(n.Children, a.scopeTree(p.Scope))
	if p.Next != NoNode {
		n.Children = append(n.Children, a.predTree(p.Next))
	}
	return n
}

func (a *Arena) stmtTree(id StmtID) *TreeNode {
	s := a.Stmt(id)
	n := &TreeNode{Kind: s.Kind.String()}
	switch s.Kind {
	case StmtReturn:
		n.Children = []*TreeNode{a.exprTree(s.Expr)}
	case StmtVarDeclare:
		n.Name, n.Line, n.Type = s.Ident.Lexeme, s.Ident.Line, typeLabel(s.Annotation)
		n.Children = []*TreeNode{a.exprTree(s.Expr)}
	case StmtVarAssign:
		n.Name, n.Line = s.Ident.Lexeme, s.Ident.Line
		n.Children = []*TreeNode{a.exprTree(s.Expr)}
	case StmtScope:
		return a.scopeTree(s.Scope)
	case StmtIf:
		n.Children = []*TreeNode{a.exprTree(s.Expr), a.scopeTree(s.Scope)}
		if s.Pred != NoNode {
			n.Children = append(n.Children, a.predTree(s.Pred))
		}
	}
	return n
}

// String renders the tree one node per line, indented by depth.
func (n *TreeNode) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *TreeNode) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Kind)
	if n.Name != "" {
		fmt.Fprintf(b, " %s", n.Name)
	}
	if n.Value != "" {
		fmt.Fprintf(b, " %s", n.Value)
	}
	if n.Type != "" {
		fmt.Fprintf(b, " : %s", n.Type)
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.write(b, depth+1)
	}
}

// DumpYAML renders prog as a YAML document.
func DumpYAML(prog *Program) ([]byte, error) {
	out, err := yaml.Marshal(prog.Tree())
	if err != nil {
		return nil, fmt.Errorf("marshal tree: %w", err)
	}
	return out, nil
}
