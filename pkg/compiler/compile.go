package compiler

// Options configures a Compile run.
type Options struct {
	ArenaCapacity int // bytes; <= 0 selects DefaultArenaCapacity
	Generate      GenerateOptions
}

// Result holds every intermediate product of a successful Compile.
type Result struct {
	Tokens  []Token
	Program *Program
	Symbols *SymbolTable
	Output  string // generated C++ source
}

// Compile runs Lex, Parse and Generate over src. The first failure ends the
// run and is returned as is (a *Diagnostic for any source error).
func Compile(src string, opts Options) (*Result, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}

	prog, err := NewParser(tokens, src, NewArena(opts.ArenaCapacity)).ParseProgram()
	if err != nil {
		return nil, err
	}

	genOpts := opts.Generate
	if genOpts.Source == "" {
		genOpts.Source = src
	}
	syms := NewSymbolTable()
	out, err := Generate(prog, syms, genOpts)
	if err != nil {
		return nil, err
	}

	return &Result{Tokens: tokens, Program: prog, Symbols: syms, Output: out}, nil
}
