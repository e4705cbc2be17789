package cst

import "strconv"

// Kind classifies a syntax node.
type Kind uint8

const (
	KindInvalid Kind = iota
	File

	// statements
	SimpleLine // small statements joined by ';' and the NEWLINE
	ExprStmt
	Assign
	AugAssign
	AnnAssign
	Return
	Raise
	Pass
	Break
	Continue
	Del
	Global
	Nonlocal
	Assert
	Import
	ImportFrom
	ImportAlias
	DottedName
	TypeAlias

	// compound statements and clauses
	FuncDef
	ClassDef
	Decorator
	If
	ElifClause
	ElseClause
	While
	For
	Try
	ExceptClause
	FinallyClause
	With
	WithItem
	Match
	CaseClause
	AsPattern
	Suite
	Params
	Param
	TypeParams

	// expressions
	Name
	Literal
	StringConcat
	Ellipsis
	Attribute
	Call
	ArgList
	Arg
	Subscript
	Slice
	Binary
	Unary
	BoolOp
	Not
	Compare
	Conditional
	Lambda
	Await
	Yield
	YieldFrom
	Starred
	NamedExpr
	Paren
	Tuple
	List
	Dict
	Set
	KeyValue
	Comprehension
	CompFor
	CompIf
)

var kindNames = [...]string{
	KindInvalid:   "Invalid",
	File:          "File",
	SimpleLine:    "SimpleLine",
	ExprStmt:      "ExprStmt",
	Assign:        "Assign",
	AugAssign:     "AugAssign",
	AnnAssign:     "AnnAssign",
	Return:        "Return",
	Raise:         "Raise",
	Pass:          "Pass",
	Break:         "Break",
	Continue:      "Continue",
	Del:           "Del",
	Global:        "Global",
	Nonlocal:      "Nonlocal",
	Assert:        "Assert",
	Import:        "Import",
	ImportFrom:    "ImportFrom",
	ImportAlias:   "ImportAlias",
	DottedName:    "DottedName",
	TypeAlias:     "TypeAlias",
	FuncDef:       "FuncDef",
	ClassDef:      "ClassDef",
	Decorator:     "Decorator",
	If:            "If",
	ElifClause:    "ElifClause",
	ElseClause:    "ElseClause",
	While:         "While",
	For:           "For",
	Try:           "Try",
	ExceptClause:  "ExceptClause",
	FinallyClause: "FinallyClause",
	With:          "With",
	WithItem:      "WithItem",
	Match:         "Match",
	CaseClause:    "CaseClause",
	AsPattern:     "AsPattern",
	Suite:         "Suite",
	Params:        "Params",
	Param:         "Param",
	TypeParams:    "TypeParams",
	Name:          "Name",
	Literal:       "Literal",
	StringConcat:  "StringConcat",
	Ellipsis:      "Ellipsis",
	Attribute:     "Attribute",
	Call:          "Call",
	ArgList:       "ArgList",
	Arg:           "Arg",
	Subscript:     "Subscript",
	Slice:         "Slice",
	Binary:        "Binary",
	Unary:         "Unary",
	BoolOp:        "BoolOp",
	Not:           "Not",
	Compare:       "Compare",
	Conditional:   "Conditional",
	Lambda:        "Lambda",
	Await:         "Await",
	Yield:         "Yield",
	YieldFrom:     "YieldFrom",
	Starred:       "Starred",
	NamedExpr:     "NamedExpr",
	Paren:         "Paren",
	Tuple:         "Tuple",
	List:          "List",
	Dict:          "Dict",
	Set:           "Set",
	KeyValue:      "KeyValue",
	Comprehension: "Comprehension",
	CompFor:       "CompFor",
	CompIf:        "CompIf",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsStatement reports whether nodes of kind k appear directly in a statement list.
func (k Kind) IsStatement() bool {
	switch k {
	case SimpleLine, FuncDef, ClassDef, If, While, For, Try, With, Match:
		return true
	default:
		return false
	}
}

// IsScope reports whether k opens a new function scope.
func (k Kind) IsScope() bool { return k == FuncDef || k == Lambda }
