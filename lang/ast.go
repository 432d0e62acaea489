package lang

import (
	"strconv"
	"strings"
)

// Op is a binary operator.
type Op int

const (
	OpAdd         Op = iota // +
	OpSub                   // -
	OpMul                   // *
	OpDiv                   // /
	OpDivisibleBy           // |
)

// ops lists the operators in the order the parser tries them.
var ops = [...]Op{OpAdd, OpSub, OpMul, OpDiv, OpDivisibleBy}

// Expr is an expression node.
//
// The set of implementations is closed: [*NumberLit], [*Operation],
// [*BindingUsage], [*FuncCall], and [*Block].
type Expr interface {
	exprNode()
	String() string
}

// Statement is a statement node.
//
// The set of implementations is closed: [*BindingDef], [*FuncDef], and
// [*ExprStmt].
type Statement interface {
	stmtNode()
	String() string
}

type (
	// NumberLit is an integer literal.
	NumberLit struct {
		Value int64
	}

	// Operation applies Op to the values of LHS and RHS.
	Operation struct {
		LHS Expr
		RHS Expr
		Op  Op
	}

	// BindingUsage refers to a binding, or to a zero-argument function.
	BindingUsage struct {
		Name string
	}

	// FuncCall calls Callee with positional arguments.
	FuncCall struct {
		Callee string
		Params []Expr
	}

	// Block evaluates Statements in a child scope.
	Block struct {
		Statements []Statement
	}
)

type (
	// BindingDef binds Name to the value of Value in the current scope.
	BindingDef struct {
		Value Expr
		Name  string
	}

	// FuncDef defines a function in the current scope.
	FuncDef struct {
		Body   Statement
		Name   string
		Params []string
	}

	// ExprStmt is an expression used as a statement.
	ExprStmt struct {
		Expr Expr
	}
)

func (*NumberLit) exprNode()    {}
func (*Operation) exprNode()    {}
func (*BindingUsage) exprNode() {}
func (*FuncCall) exprNode()     {}
func (*Block) exprNode()        {}

func (*BindingDef) stmtNode() {}
func (*FuncDef) stmtNode()    {}
func (*ExprStmt) stmtNode()   {}

// String methods render nodes in source syntax on a single line.

func (n *NumberLit) String() string { return strconv.FormatInt(n.Value, 10) }

func (o *Operation) String() string {
	return o.LHS.String() + " " + o.Op.String() + " " + o.RHS.String()
}

func (b *BindingUsage) String() string { return b.Name }

func (c *FuncCall) String() string {
	var sb strings.Builder

	sb.WriteString(c.Callee)

	for _, p := range c.Params {
		sb.WriteByte(' ')
		sb.WriteString(p.String())
	}

	return sb.String()
}

func (b *Block) String() string {
	if len(b.Statements) == 0 {
		return "{ }"
	}

	var sb strings.Builder

	sb.WriteString("{")

	for _, s := range b.Statements {
		sb.WriteByte(' ')
		sb.WriteString(s.String())
	}

	sb.WriteString(" }")

	return sb.String()
}

func (d *BindingDef) String() string {
	return "let " + d.Name + " = " + d.Value.String()
}

func (d *FuncDef) String() string {
	var sb strings.Builder

	sb.WriteString("fn ")
	sb.WriteString(d.Name)

	for _, p := range d.Params {
		sb.WriteByte(' ')
		sb.WriteString(p)
	}

	sb.WriteString(" => ")
	sb.WriteString(d.Body.String())

	return sb.String()
}

func (s *ExprStmt) String() string { return s.Expr.String() }

// Signature returns the call form of a function definition, e.g. "add x y".
func (d *FuncDef) Signature() string {
	if len(d.Params) == 0 {
		return d.Name
	}

	return d.Name + " " + strings.Join(d.Params, " ")
}
