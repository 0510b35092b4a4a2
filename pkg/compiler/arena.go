package compiler

import (
	"fmt"
	"unsafe"
)

// DefaultArenaCapacity is the node storage budget of a parse, in bytes.
const DefaultArenaCapacity = 4 << 20

// Per-node storage charges.
var (
	termSize    = int(unsafe.Sizeof(Term{}))
	exprSize    = int(unsafe.Sizeof(Expr{}))
	binExprSize = int(unsafe.Sizeof(BinExpr{}))
	stmtSize    = int(unsafe.Sizeof(Stmt{}))
	scopeSize   = int(unsafe.Sizeof(Scope{}))
	stmtIDSize  = int(unsafe.Sizeof(StmtID(0)))
	ifPredSize  = int(unsafe.Sizeof(IfPred{}))
)

// Arena owns every syntax-tree node of one parse. Nodes are stored in
// per-kind tables and referenced by index, so the tables may grow or be
// inspected without invalidating references. There is no per-node free;
// Reset reclaims everything at once.
//
// The byte capacity is fixed at construction. An allocation that would
// exceed it fails with ErrArenaExhausted and leaves the arena unchanged.
type Arena struct {
	capacity int
	used     int

	terms  []Term
	exprs  []Expr
	bins   []BinExpr
	stmts  []Stmt
	scopes []Scope
	preds  []IfPred
}

// ArenaStats is a snapshot of arena occupancy.
type ArenaStats struct {
	Capacity int
	Used     int
	Terms    int
	Exprs    int
	BinExprs int
	Stmts    int
	Scopes   int
	IfPreds  int
}

// NewArena returns an empty arena with the given capacity in bytes.
// A non-positive capacity selects DefaultArenaCapacity.
func NewArena(capacity int) *Arena {
	if capacity <= 0 {
		capacity = DefaultArenaCapacity
	}
	return &Arena{capacity: capacity}
}

// reserve charges size bytes against the capacity.
func (a *Arena) reserve(size int) error {
	if a.used+size > a.capacity {
		return fmt.Errorf("%w: need %d bytes, %d of %d in use", ErrArenaExhausted, size, a.used, a.capacity)
	}
	a.used += size
	return nil
}

func (a *Arena) newTerm(t Term) (TermID, error) {
	if err := a.reserve(termSize); err != nil {
		return NoNode, err
	}
	a.terms = append(a.terms, t)
	return TermID(len(a.terms) - 1), nil
}

func (a *Arena) newExpr(e Expr) (ExprID, error) {
	if err := a.reserve(exprSize); err != nil {
		return NoNode, err
	}
	a.exprs = append(a.exprs, e)
	return ExprID(len(a.exprs) - 1), nil
}

func (a *Arena) newBinExpr(b BinExpr) (BinExprID, error) {
	if err := a.reserve(binExprSize); err != nil {
		return NoNode, err
	}
	a.bins = append(a.bins, b)
	return BinExprID(len(a.bins) - 1), nil
}

func (a *Arena) newStmt(s Stmt) (StmtID, error) {
	if err := a.reserve(stmtSize); err != nil {
		return NoNode, err
	}
	a.stmts = append(a.stmts, s)
	return StmtID(len(a.stmts) - 1), nil
}

// newScope stores a finished block. The statement list is copied into the
// arena's accounting; the caller must not modify stmts afterwards.
func (a *Arena) newScope(stmts []StmtID) (ScopeID, error) {
	if err := a.reserve(scopeSize + len(stmts)*stmtIDSize); err != nil {
		return NoNode, err
	}
	a.scopes = append(a.scopes, Scope{Stmts: stmts})
	return ScopeID(len(a.scopes) - 1), nil
}

func (a *Arena) newIfPred(p IfPred) (IfPredID, error) {
	if err := a.reserve(ifPredSize); err != nil {
		return NoNode, err
	}
	a.preds = append(a.preds, p)
	return IfPredID(len(a.preds) - 1), nil
}

// setExpr overwrites an existing expression slot. The parser uses it only to
// fold a running left operand into a binary expression.
func (a *Arena) setExpr(id ExprID, e Expr) {
	a.exprs[id] = e
}

// Term returns the term stored at id.
func (a *Arena) Term(id TermID) Term { return a.terms[id] }

// Expr returns the expression stored at id.
func (a *Arena) Expr(id ExprID) Expr { return a.exprs[id] }

// BinExpr returns the binary expression stored at id.
func (a *Arena) BinExpr(id BinExprID) BinExpr { return a.bins[id] }

// Stmt returns the statement stored at id.
func (a *Arena) Stmt(id StmtID) Stmt { return a.stmts[id] }

// Scope returns the block stored at id.
func (a *Arena) Scope(id ScopeID) Scope { return a.scopes[id] }

// IfPred returns the if or elif predicate stored at id.
func (a *Arena) IfPred(id IfPredID) IfPred { return a.preds[id] }

// Used reports the bytes charged so far.
func (a *Arena) Used() int { return a.used }

// Cap reports the byte capacity.
func (a *Arena) Cap() int { return a.capacity }

// Stats counts the nodes of each kind and the bytes charged.
func (a *Arena) Stats() ArenaStats {
	return ArenaStats{
		Capacity: a.capacity,
		Used:     a.used,
		Terms:    len(a.terms),
		Exprs:    len(a.exprs),
		BinExprs: len(a.bins),
		Stmts:    len(a.stmts),
		Scopes:   len(a.scopes),
		IfPreds:  len(a.preds),
	}
}

// Reset drops every node. IDs handed out before the reset are invalid.
func (a *Arena) Reset() {
	a.used = 0
	a.terms = a.terms[:0]
	a.exprs = a.exprs[:0]
	a.bins = a.bins[:0]
	a.stmts = a.stmts[:0]
	a.scopes = a.scopes[:0]
	a.preds = a.preds[:0]
}
