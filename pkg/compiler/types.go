package compiler

// VarType is the type tag the parser attaches to terms and expressions.
// TypeNone means the type could not be determined at parse time.
type VarType uint8

const (
	TypeNone VarType = iota
	TypeInt
	TypeChar
)

func (v VarType) String() string {
	switch v {
	case TypeNone:
		return "none"
	case TypeInt:
		return "int"
	case TypeChar:
		return "char"
	default:
		return "auto"
	}
}

// cppName is the C++ spelling used for declarations; unresolved types are
// left to the C++ compiler.
func (v VarType) cppName() string {
	switch v {
	case TypeInt:
		return "int"
	case TypeChar:
		return "char"
	default:
		return "auto"
	}
}

// varTypeOf derives a VarType from the kind of token that produced a term.
// Identifiers are never resolved here; there is no symbol table at parse time.
func varTypeOf(tt TokenType) VarType {
	switch tt {
	case INTEGER:
		return TypeInt
	case CHAR_LIT:
		return TypeChar
	default:
		return TypeNone
	}
}

// annotationType maps a type keyword (int, char) to its VarType.
func annotationType(tt TokenType) (VarType, bool) {
	switch tt {
	case INT:
		return TypeInt, true
	case CHAR:
		return TypeChar, true
	default:
		return TypeNone, false
	}
}

// combine returns the type of a binary expression whose operands already
// passed the mismatch check.
func combine(l, r VarType) VarType {
	if l == TypeNone || r == TypeNone {
		return TypeNone
	}
	return l
}
