// Package ast defines the OScript language AST node types.
package ast

// Span represents a source location range.
type Span struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	StartCol  int    `json:"startCol"`
	EndLine   int    `json:"endLine"`
	EndCol    int    `json:"endCol"`
}

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() string
	NodeSpan() Span
}

// BinaryOp represents a binary operator.
type BinaryOp string

const (
	OpAssign BinaryOp = "="
	OpAdd    BinaryOp = "+"
	OpSub    BinaryOp = "-"
	OpMul    BinaryOp = "*"
	OpDiv    BinaryOp = "/"
	OpEqEq   BinaryOp = "=="
	OpNeq    BinaryOp = "!="
	OpGt     BinaryOp = ">"
	OpLt     BinaryOp = "<"
	OpGtEq   BinaryOp = ">="
	OpLtEq   BinaryOp = "<="
)

// --- Expr is the interface for all expression nodes ---

type Expr interface {
	Node
	exprNode() // sealed marker
}

// --- Stmt is the interface for all statement nodes ---

type Stmt interface {
	Node
	stmtNode() // sealed marker
}

// --- Literal Expressions ---

type NumberLiteral struct {
	Span  Span
	Value float64
}

func (n *NumberLiteral) Kind() string   { return "NumberLiteral" }
func (n *NumberLiteral) NodeSpan() Span { return n.Span }
func (n *NumberLiteral) exprNode()      {}

type StringLiteral struct {
	Span  Span
	Value string
}

func (n *StringLiteral) Kind() string   { return "StringLiteral" }
func (n *StringLiteral) NodeSpan() Span { return n.Span }
func (n *StringLiteral) exprNode()      {}

type BoolLiteral struct {
	Span  Span
	Value bool
}

func (n *BoolLiteral) Kind() string   { return "BoolLiteral" }
func (n *BoolLiteral) NodeSpan() Span { return n.Span }
func (n *BoolLiteral) exprNode()      {}

type NullLiteral struct {
	Span Span
}

func (n *NullLiteral) Kind() string   { return "NullLiteral" }
func (n *NullLiteral) NodeSpan() Span { return n.Span }
func (n *NullLiteral) exprNode()      {}

// --- Identifiers ---

type Identifier struct {
	Span Span
	Name string
}

func (n *Identifier) Kind() string   { return "Identifier" }
func (n *Identifier) NodeSpan() Span { return n.Span }
func (n *Identifier) exprNode()      {}

// --- Compound Expressions ---

type BinaryExpression struct {
	Span  Span
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (n *BinaryExpression) Kind() string   { return "BinaryExpression" }
func (n *BinaryExpression) NodeSpan() Span { return n.Span }
func (n *BinaryExpression) exprNode()      {}

// CallExpression is a call of a bare identifier: callee(args...).
type CallExpression struct {
	Span   Span
	Callee *Identifier
	Args   []Expr
}

func (n *CallExpression) Kind() string   { return "CallExpression" }
func (n *CallExpression) NodeSpan() Span { return n.Span }
func (n *CallExpression) exprNode()      {}

// --- Statements ---

type ExpressionStatement struct {
	Span Span
	Expr Expr
}

func (n *ExpressionStatement) Kind() string   { return "ExpressionStatement" }
func (n *ExpressionStatement) NodeSpan() Span { return n.Span }
func (n *ExpressionStatement) stmtNode()      {}

type VariableDeclaration struct {
	Span Span
	Name string
	Init Expr
}

func (n *VariableDeclaration) Kind() string   { return "VariableDeclaration" }
func (n *VariableDeclaration) NodeSpan() Span { return n.Span }
func (n *VariableDeclaration) stmtNode()      {}

type BlockStatement struct {
	Span       Span
	Statements []Stmt
}

func (n *BlockStatement) Kind() string   { return "BlockStatement" }
func (n *BlockStatement) NodeSpan() Span { return n.Span }
func (n *BlockStatement) stmtNode()      {}

// IfStatement has an optional Else block; there is no `else if` sugar, so
// chained conditionals are nested blocks.
type IfStatement struct {
	Span Span
	Test Expr
	Then *BlockStatement
	Else *BlockStatement
}

func (n *IfStatement) Kind() string   { return "IfStatement" }
func (n *IfStatement) NodeSpan() Span { return n.Span }
func (n *IfStatement) stmtNode()      {}

type WhileStatement struct {
	Span Span
	Test Expr
	Body *BlockStatement
}

func (n *WhileStatement) Kind() string   { return "WhileStatement" }
func (n *WhileStatement) NodeSpan() Span { return n.Span }
func (n *WhileStatement) stmtNode()      {}

type FunctionDeclaration struct {
	Span   Span
	Name   string
	Params []string
	Body   *BlockStatement
}

func (n *FunctionDeclaration) Kind() string   { return "FunctionDeclaration" }
func (n *FunctionDeclaration) NodeSpan() Span { return n.Span }
func (n *FunctionDeclaration) stmtNode()      {}

// ReturnStatement carries an optional argument; Value is nil for a bare
// `return;`.
type ReturnStatement struct {
	Span  Span
	Value Expr
}

func (n *ReturnStatement) Kind() string   { return "ReturnStatement" }
func (n *ReturnStatement) NodeSpan() Span { return n.Span }
func (n *ReturnStatement) stmtNode()      {}

type ImportStatement struct {
	Span Span
	Path string
}

func (n *ImportStatement) Kind() string   { return "ImportStatement" }
func (n *ImportStatement) NodeSpan() Span { return n.Span }
func (n *ImportStatement) stmtNode()      {}

// --- Program ---

type Program struct {
	Span       Span
	Statements []Stmt
}

func (n *Program) Kind() string   { return "Program" }
func (n *Program) NodeSpan() Span { return n.Span }
