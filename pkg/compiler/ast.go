package compiler

// Every node lives in an Arena and refers to its children by typed index.
// A node variant is selected by its Kind tag; only the fields documented for
// that kind are meaningful. Consumers dispatch with a switch over Kind.

// NoNode is the "absent" value for every node ID type.
const NoNode = -1

type (
	TermID    int32
	ExprID    int32
	BinExprID int32
	StmtID    int32
	ScopeID   int32
	IfPredID  int32
)

//  Expression nodes

// TermKind selects the Term variant.
type TermKind uint8

const (
	TermIntLit  TermKind = iota // Tok holds the INTEGER token
	TermCharLit                 // Tok holds the CHAR_LIT token
	TermIdent                   // Tok holds the IDENTIFIER token
	TermParen                   // Inner holds the parenthesized expression
)

func (k TermKind) String() string {
	switch k {
	case TermIntLit:
		return "IntLit"
	case TermCharLit:
		return "CharLit"
	case TermIdent:
		return "Ident"
	case TermParen:
		return "Paren"
	default:
		return "Term?"
	}
}

// Term is the smallest expression unit.
//
//	var x = (a + 1)
//	        ^^^^^^^  Term{Kind: TermParen, Inner: <a + 1>}
type Term struct {
	Kind  TermKind
	Tok   Token
	Inner ExprID
	Type  VarType
}

// BinOp selects the BinExpr variant.
type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
)

// binOpFor maps an operator token to its BinOp.
func binOpFor(tt TokenType) (BinOp, bool) {
	switch tt {
	case PLUS:
		return OpAdd, true
	case MINUS:
		return OpSub, true
	case STAR:
		return OpMul, true
	case SLASH:
		return OpDiv, true
	default:
		return 0, false
	}
}

// Symbol is the operator as written in source.
func (op BinOp) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMul:
		return "Mul"
	case OpDiv:
		return "Div"
	default:
		return "BinOp?"
	}
}

// BinExpr represents LHS Op RHS.
//
//	a - b
//	^ ^ ^
//	| | RHS
//	| Op
//	LHS
type BinExpr struct {
	Op  BinOp
	LHS ExprID
	RHS ExprID
}

// ExprKind selects the Expr variant.
type ExprKind uint8

const (
	ExprTerm ExprKind = iota // Term is set
	ExprBin                  // Bin is set
)

// Expr is either a Term or a BinExpr, with the type propagated from it.
type Expr struct {
	Kind ExprKind
	Term TermID
	Bin  BinExprID
	Type VarType
}

//  Statement nodes

// StmtKind selects the Stmt variant.
type StmtKind uint8

const (
	StmtReturn     StmtKind = iota // return Expr
	StmtVarDeclare                 // var Ident [: Annotation] = Expr
	StmtVarAssign                  // Ident = Expr
	StmtScope                      // { Scope }
	StmtIf                         // if (Expr) Scope [Pred]
)

func (k StmtKind) String() string {
	switch k {
	case StmtReturn:
		return "Return"
	case StmtVarDeclare:
		return "VarDeclare"
	case StmtVarAssign:
		return "VarAssign"
	case StmtScope:
		return "Scope"
	case StmtIf:
		return "If"
	default:
		return "Stmt?"
	}
}

// Stmt is a single statement.
type Stmt struct {
	Kind StmtKind

	// Ident is the variable token of a VarDeclare or VarAssign.
	Ident Token
	// Annotation is the declared type of a VarDeclare; TypeNone when omitted.
	Annotation VarType

	Expr  ExprID   // Return value, initializer, assigned value or If condition
	Scope ScopeID  // Scope body or If body
	Pred  IfPredID // If predicate chain, NoNode for a plain if
}

// Scope is a block; statement order is execution order.
type Scope struct {
	Stmts []StmtID
}

// IfPredKind selects the IfPred variant.
type IfPredKind uint8

const (
	PredElif IfPredKind = iota // elif (Cond) Scope [Next]
	PredElse                   // else Scope
)

func (k IfPredKind) String() string {
	if k == PredElif {
		return "Elif"
	}
	return "Else"
}

// IfPred is one link in the elif/else chain hanging off an if statement.
type IfPred struct {
	Kind  IfPredKind
	Cond  ExprID
	Scope ScopeID
	Next  IfPredID
}

// Program is a parsed source file. The arena owns every node the statement
// IDs reach and must outlive any use of the tree.
type Program struct {
	Stmts []StmtID
	Arena *Arena
}
