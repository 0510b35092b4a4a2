package compiler

import (
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestTree(t *testing.T) {
	prog := mustParse(t, "var x: int = (1 + 2)\nif (x) { return 'c' } else {}")

	want := &TreeNode{Kind: "Program", Children: []*TreeNode{
		{Kind: "VarDeclare", Name: "x", Type: "int", Line: 1, Children: []*TreeNode{
			{Kind: "Paren", Type: "int", Line: 1, Children: []*TreeNode{
				{Kind: "Add", Type: "int", Children: []*TreeNode{
					{Kind: "IntLit", Value: "1", Type: "int", Line: 1},
					{Kind: "IntLit", Value: "2", Type: "int", Line: 1},
				}},
			}},
		}},
		{Kind: "If", Children: []*TreeNode{
			{Kind: "Ident", Name: "x", Line: 2},
			{Kind: "Scope", Children: []*TreeNode{
				{Kind: "Return", Children: []*TreeNode{
					{Kind: "CharLit", Value: "c", Type: "char", Line: 2},
				}},
			}},
			{Kind: "Else", Children: []*TreeNode{
				{Kind: "Scope"},
			}},
		}},
	}}

	if got := prog.Tree(); !reflect.DeepEqual(got, want) {
		t.Errorf("Tree mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTreeString(t *testing.T) {
	prog := mustParse(t, "a = b * 2")
	want := "Program\n" +
		"  VarAssign a\n" +
		"    Mul\n" +
		"      Ident b\n" +
		"      IntLit 2 : int\n"
	if got := prog.Tree().String(); got != want {
		t.Errorf("String mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpYAML(t *testing.T) {
	prog := mustParse(t, "{ var n = 3 }")
	out, err := DumpYAML(prog)
	if err != nil {
		t.Fatalf("DumpYAML failed: %v", err)
	}

	var back TreeNode
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, out)
	}
	if !reflect.DeepEqual(&back, prog.Tree()) {
		t.Errorf("YAML does not describe the tree:\n%s", out)
	}
	if !strings.Contains(string(out), "kind: VarDeclare") {
		t.Errorf("expected a VarDeclare node in:\n%s", out)
	}
}

func TestFormatCharLiteral(t *testing.T) {
	prog := mustParse(t, "return ('a' + 'b')")
	if got := prog.Arena.FormatExpr(onlyExpr(t, prog)); got != "('a' + 'b')" {
		t.Errorf("expected ('a' + 'b'), got %s", got)
	}
}
