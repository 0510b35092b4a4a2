package compiler

// Parser consumes the flat token slice produced by the Lexer and builds a
// Program whose nodes live in an Arena.
//
// Grammar:
//
//	program    = statement*
//	statement  = "return" expression
//	           | "var" IDENTIFIER "=" expression
//	           | "var" IDENTIFIER ":" ("int" | "char") "=" expression
//	           | IDENTIFIER "=" expression
//	           | scope
//	           | "if" "(" expression ")" scope ifPred?
//	scope      = "{" statement* "}"
//	ifPred     = "elif" "(" expression ")" scope ifPred?
//	           | "else" scope
//	expression = term (binop term)*       precedence climbing, see parseExpr
//	term       = INTEGER | CHAR_LIT | IDENTIFIER | "(" expression ")"
//
// Every parse function returns NoNode with a nil error when its construct is
// simply not present, and a *Diagnostic when a construct was started but is
// malformed. The first diagnostic ends the parse.
type Parser struct {
	ts    *TokenStream
	arena *Arena
}

// NewParser returns a parser over tokens that allocates into arena.
// A nil arena gets a fresh one with DefaultArenaCapacity.
func NewParser(tokens []Token, rawSource string, arena *Arena) *Parser {
	if arena == nil {
		arena = NewArena(DefaultArenaCapacity)
	}
	return &Parser{ts: NewTokenStream(tokens, rawSource), arena: arena}
}

// Parse builds a Program from tokens using a default-sized arena.
func Parse(tokens []Token, rawSource string) (*Program, error) {
	return NewParser(tokens, rawSource, nil).ParseProgram()
}

// outOfStorage turns an arena failure into a parse diagnostic.
func (p *Parser) outOfStorage(err error) error {
	d := p.ts.errorf("out of node storage")
	d.Err = err
	return d
}

func (p *Parser) term(t Term) (TermID, error) {
	id, err := p.arena.newTerm(t)
	if err != nil {
		return NoNode, p.outOfStorage(err)
	}
	return id, nil
}

func (p *Parser) expr(e Expr) (ExprID, error) {
	id, err := p.arena.newExpr(e)
	if err != nil {
		return NoNode, p.outOfStorage(err)
	}
	return id, nil
}

func (p *Parser) stmt(s Stmt) (StmtID, error) {
	id, err := p.arena.newStmt(s)
	if err != nil {
		return NoNode, p.outOfStorage(err)
	}
	return id, nil
}

//  Expressions

// parseTerm recognises, in order, an integer literal, a char literal, an
// identifier and a parenthesized expression.
func (p *Parser) parseTerm() (TermID, error) {
	if tok, ok := p.ts.TryConsume(INTEGER); ok {
		return p.term(Term{Kind: TermIntLit, Tok: tok, Inner: NoNode, Type: varTypeOf(tok.Type)})
	}

	if tok, ok := p.ts.TryConsume(CHAR_LIT); ok {
		return p.term(Term{Kind: TermCharLit, Tok: tok, Inner: NoNode, Type: varTypeOf(tok.Type)})
	}

	if tok, ok := p.ts.TryConsume(IDENTIFIER); ok {
		return p.term(Term{Kind: TermIdent, Tok: tok, Inner: NoNode, Type: varTypeOf(tok.Type)})
	}

	if open, ok := p.ts.TryConsume(LPAREN); ok {
		inner, err := p.requireExpr("expression")
		if err != nil {
			return NoNode, err
		}
		if _, err := p.ts.Expect(RPAREN); err != nil {
			return NoNode, err
		}
		return p.term(Term{Kind: TermParen, Tok: open, Inner: inner, Type: p.arena.Expr(inner).Type})
	}

	return NoNode, nil
}

// parseExpr parses an expression by precedence climbing. Only operators whose
// precedence is at least minPrec are folded at this level; the right operand
// is parsed with minPrec = prec+1, which makes every operator left-associative.
//
// The running left operand keeps its ExprID for the whole loop. Each fold
// copies the current left Expr into a fresh slot, builds a BinExpr over that
// copy and the right operand, and rewrites the original slot to point at it.
func (p *Parser) parseExpr(minPrec int) (ExprID, error) {
	lterm, err := p.parseTerm()
	if err != nil || lterm == NoNode {
		return NoNode, err
	}

	expr, err := p.expr(Expr{Kind: ExprTerm, Term: lterm, Bin: NoNode, Type: p.arena.Term(lterm).Type})
	if err != nil {
		return NoNode, err
	}

	for {
		cur, ok := p.ts.Peek(0)
		if !ok {
			break
		}
		prec, isOp := binPrec(cur.Type)
		if !isOp || prec < minPrec {
			break
		}

		opTok := p.ts.Consume()
		op, _ := binOpFor(opTok.Type)

		rhs, err := p.parseExpr(prec + 1)
		if err != nil {
			return NoNode, err
		}
		if rhs == NoNode {
			return NoNode, p.ts.missing("expression")
		}

		left := p.arena.Expr(expr)
		right := p.arena.Expr(rhs)
		if left.Type != TypeNone && right.Type != TypeNone && left.Type != right.Type {
			return NoNode, p.ts.lines.diag(StageParse, opTok.Line,
				"wrong operation: %s %s %s", left.Type, op.Symbol(), right.Type)
		}

		lhs, err := p.expr(left)
		if err != nil {
			return NoNode, err
		}
		bin, err := p.arena.newBinExpr(BinExpr{Op: op, LHS: lhs, RHS: rhs})
		if err != nil {
			return NoNode, p.outOfStorage(err)
		}
		p.arena.setExpr(expr, Expr{Kind: ExprBin, Term: NoNode, Bin: bin, Type: combine(left.Type, right.Type)})
	}

	return expr, nil
}

// requireExpr parses an expression that must be present; what names the
// construct in the diagnostic.
func (p *Parser) requireExpr(what string) (ExprID, error) {
	id, err := p.parseExpr(0)
	if err != nil {
		return NoNode, err
	}
	if id == NoNode {
		return NoNode, p.ts.missing(what)
	}
	return id, nil
}

//  Statements

// parseScope parses { statement* }.
func (p *Parser) parseScope() (ScopeID, error) {
	if _, ok := p.ts.TryConsume(LBRACE); !ok {
		return NoNode, nil
	}

	var stmts []StmtID
	for {
		stmt, err := p.parseStmt()
		if err != nil {
			return NoNode, err
		}
		if stmt == NoNode {
			break
		}
		stmts = append(stmts, stmt)
	}

	if _, err := p.ts.Expect(RBRACE); err != nil {
		return NoNode, err
	}

	id, err := p.arena.newScope(stmts)
	if err != nil {
		return NoNode, p.outOfStorage(err)
	}
	return id, nil
}

func (p *Parser) requireScope() (ScopeID, error) {
	id, err := p.parseScope()
	if err != nil {
		return NoNode, err
	}
	if id == NoNode {
		return NoNode, p.ts.missing("scope")
	}
	return id, nil
}

// parseCondition parses ( expression ).
func (p *Parser) parseCondition() (ExprID, error) {
	if _, err := p.ts.Expect(LPAREN); err != nil {
		return NoNode, err
	}
	cond, err := p.requireExpr("expression")
	if err != nil {
		return NoNode, err
	}
	if _, err := p.ts.Expect(RPAREN); err != nil {
		return NoNode, err
	}
	return cond, nil
}

// parseIfPred parses the elif/else chain after an if body. A missing chain is
// not an error.
func (p *Parser) parseIfPred() (IfPredID, error) {
	var pred IfPred

	if _, ok := p.ts.TryConsume(ELIF); ok {
		cond, err := p.parseCondition()
		if err != nil {
			return NoNode, err
		}
		scope, err := p.requireScope()
		if err != nil {
			return NoNode, err
		}
		next, err := p.parseIfPred()
		if err != nil {
			return NoNode, err
		}
		pred = IfPred{Kind: PredElif, Cond: cond, Scope: scope, Next: next}
	} else if _, ok := p.ts.TryConsume(ELSE); ok {
		scope, err := p.requireScope()
		if err != nil {
			return NoNode, err
		}
		pred = IfPred{Kind: PredElse, Cond: NoNode, Scope: scope, Next: NoNode}
	} else {
		return NoNode, nil
	}

	id, err := p.arena.newIfPred(pred)
	if err != nil {
		return NoNode, p.outOfStorage(err)
	}
	return id, nil
}

// parseStmt tries each statement form in a fixed order and returns NoNode
// when none of them starts at the cursor.
func (p *Parser) parseStmt() (StmtID, error) {
	if p.ts.Done() {
		return NoNode, nil
	}

	// return <expr>
	if p.ts.peekType(RETURN, 0) {
		p.ts.Consume()
		val, err := p.requireExpr("return value")
		if err != nil {
			return NoNode, err
		}
		return p.stmt(Stmt{Kind: StmtReturn, Expr: val, Scope: NoNode, Pred: NoNode})
	}

	// var <ident> = <expr>
	if p.ts.peekType(VAR, 0) && p.ts.peekType(IDENTIFIER, 1) && p.ts.peekType(ASSIGN, 2) {
		p.ts.Consume() // var
		ident := p.ts.Consume()
		p.ts.Consume() // =
		value, err := p.requireExpr("expression")
		if err != nil {
			return NoNode, err
		}
		return p.stmt(Stmt{Kind: StmtVarDeclare, Ident: ident, Annotation: TypeNone, Expr: value, Scope: NoNode, Pred: NoNode})
	}

	// var <ident> : <type> = <expr>
	if p.ts.peekType(VAR, 0) && p.ts.peekType(IDENTIFIER, 1) && p.ts.peekType(COLON, 2) {
		return p.parseTypedDecl()
	}

	// <ident> = <expr>
	if p.ts.peekType(IDENTIFIER, 0) && p.ts.peekType(ASSIGN, 1) {
		ident := p.ts.Consume()
		p.ts.Consume() // =
		val, err := p.requireExpr("expression")
		if err != nil {
			return NoNode, err
		}
		return p.stmt(Stmt{Kind: StmtVarAssign, Ident: ident, Expr: val, Scope: NoNode, Pred: NoNode})
	}

	// { <stmt>* }
	if p.ts.peekType(LBRACE, 0) {
		scope, err := p.requireScope()
		if err != nil {
			return NoNode, err
		}
		return p.stmt(Stmt{Kind: StmtScope, Expr: NoNode, Scope: scope, Pred: NoNode})
	}

	// if (<expr>) <scope> [pred]
	if _, ok := p.ts.TryConsume(IF); ok {
		cond, err := p.parseCondition()
		if err != nil {
			return NoNode, err
		}
		body, err := p.requireScope()
		if err != nil {
			return NoNode, err
		}
		pred, err := p.parseIfPred()
		if err != nil {
			return NoNode, err
		}
		return p.stmt(Stmt{Kind: StmtIf, Expr: cond, Scope: body, Pred: pred})
	}

	return NoNode, nil
}

// parseTypedDecl parses var <ident> : <type> = <expr>. A resolved initializer
// type must match the annotation.
func (p *Parser) parseTypedDecl() (StmtID, error) {
	p.ts.Consume() // var
	ident := p.ts.Consume()
	p.ts.Consume() // :

	typeTok, ok := p.ts.Peek(0)
	if !ok {
		return NoNode, p.ts.missing("type")
	}
	declared, ok := annotationType(typeTok.Type)
	if !ok {
		return NoNode, p.ts.missing("type")
	}
	p.ts.Consume()

	if _, err := p.ts.Expect(ASSIGN); err != nil {
		return NoNode, err
	}
	value, err := p.requireExpr("expression")
	if err != nil {
		return NoNode, err
	}

	if got := p.arena.Expr(value).Type; got != TypeNone && got != declared {
		return NoNode, p.ts.lines.diag(StageParse, ident.Line,
			"wrong initializer: %s `%s` = %s", declared, ident.Lexeme, got)
	}

	return p.stmt(Stmt{Kind: StmtVarDeclare, Ident: ident, Annotation: declared, Expr: value, Scope: NoNode, Pred: NoNode})
}

// ParseProgram parses statements until the token stream is exhausted. Tokens
// that remain but start no statement are a diagnostic.
func (p *Parser) ParseProgram() (*Program, error) {
	prog := &Program{Arena: p.arena}
	for !p.ts.Done() {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		if stmt == NoNode {
			return nil, p.ts.missing("statement")
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	return prog, nil
}
