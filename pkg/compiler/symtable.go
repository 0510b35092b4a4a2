package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// Symbol is a declared variable.
type Symbol struct {
	Name  string
	CName string  // name used in the generated C++
	Line  int     // line of the declaration
	Type  VarType // annotation, else the initializer type, else TypeNone
	Depth int     // 0 for the program body, +1 per nested scope
}

// SymbolTable maps variable names to declarations for the generator.
// Declarations are visible in their own scope and every nested scope; a
// nested scope may shadow an outer name but not redeclare one of its own.
//
// A C++ name is in scope from its own declarator, so `int x = x + 1;` would
// read the new x. Every symbol therefore gets a CName that differs from all
// CNames visible where it is declared, and generated C++ never shadows.
type SymbolTable struct {
	// Stack of scopes, innermost last. Each scope maps name -> Symbol.
	scopes []map[string]Symbol
}

// NewSymbolTable returns a table holding the program-level scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{scopes: []map[string]Symbol{make(map[string]Symbol)}}
}

// EnterScope opens a nested scope.
func (s *SymbolTable) EnterScope() {
	s.scopes = append(s.scopes, make(map[string]Symbol))
}

// ExitScope drops the innermost scope. The program-level scope is never dropped.
func (s *SymbolTable) ExitScope() {
	if len(s.scopes) > 1 {
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
}

// Depth is the nesting level of the current scope.
func (s *SymbolTable) Depth() int { return len(s.scopes) - 1 }

// Declare adds name to the CURRENT scope. If name is already declared there,
// the existing symbol is returned with exists=true and nothing changes.
func (s *SymbolTable) Declare(name string, line int, typ VarType) (sym Symbol, exists bool) {
	current := s.scopes[len(s.scopes)-1]
	if prev, ok := current[name]; ok {
		return prev, true
	}
	sym = Symbol{Name: name, CName: s.freeCName(name), Line: line, Type: typ, Depth: s.Depth()}
	current[name] = sym
	return sym, false
}

// freeCName returns name, or name_N with the smallest N, such that no visible
// symbol already uses it in the generated code.
func (s *SymbolTable) freeCName(name string) string {
	cname := name
	for n := 1; s.cnameVisible(cname); n++ {
		cname = fmt.Sprintf("%s_%d", name, n)
	}
	return cname
}

func (s *SymbolTable) cnameVisible(cname string) bool {
	for _, scope := range s.scopes {
		for _, sym := range scope {
			if sym.CName == cname {
				return true
			}
		}
	}
	return false
}

// Lookup returns the innermost visible symbol for name.
func (s *SymbolTable) Lookup(name string) (Symbol, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if sym, ok := s.scopes[i][name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// String returns a deterministically ordered dump of the active scopes.
func (s *SymbolTable) String() string {
	var sb strings.Builder
	for i, scope := range s.scopes {
		fmt.Fprintf(&sb, "Scope %d:\n", i)
		if len(scope) == 0 {
			sb.WriteString("  (empty)\n")
			continue
		}
		names := make([]string, 0, len(scope))
		for name := range scope {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sym := scope[name]
			fmt.Fprintf(&sb, "  %-20s  Type: %s (line %d)", name, sym.Type, sym.Line)
			if sym.CName != name {
				fmt.Fprintf(&sb, " as %s", sym.CName)
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
