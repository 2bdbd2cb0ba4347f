// Package formatter implements the OScript canonical source formatter.
package formatter

import (
	"math"
	"strconv"
	"strings"

	"github.com/oscript-lang/oscript/pkg/ast"
)

const indent = "  "

// Precedence table for binary operators (higher = tighter binding)
var precedence = map[ast.BinaryOp]int{
	ast.OpAssign: 0,
	ast.OpEqEq:   1, ast.OpNeq: 1,
	ast.OpGt: 1, ast.OpLt: 1, ast.OpGtEq: 1, ast.OpLtEq: 1,
	ast.OpAdd: 2, ast.OpSub: 2,
	ast.OpMul: 3, ast.OpDiv: 3,
}

func needsParens(child ast.Expr, parentOp ast.BinaryOp, isRight bool) bool {
	bin, ok := child.(*ast.BinaryExpression)
	if !ok {
		return false
	}
	childPrec := precedence[bin.Op]
	parentPrec := precedence[parentOp]
	if childPrec < parentPrec {
		return true
	}
	// Assignment is right-associative, everything else associates left.
	if childPrec == parentPrec {
		if parentOp == ast.OpAssign {
			return !isRight
		}
		return isRight
	}
	return false
}

// Format pretty-prints an OScript AST back to canonical source code.
func Format(program *ast.Program) string {
	var lines []string
	for _, s := range program.Statements {
		lines = append(lines, formatStmt(s, 0))
	}
	return strings.Join(lines, "\n") + "\n"
}

func formatStmt(s ast.Stmt, depth int) string {
	prefix := strings.Repeat(indent, depth)
	switch stmt := s.(type) {
	case *ast.VariableDeclaration:
		return prefix + "let " + stmt.Name + " = " + formatExpr(stmt.Init, depth) + ";"
	case *ast.ExpressionStatement:
		return prefix + formatExpr(stmt.Expr, depth) + ";"
	case *ast.ReturnStatement:
		if stmt.Value == nil {
			return prefix + "return;"
		}
		return prefix + "return " + formatExpr(stmt.Value, depth) + ";"
	case *ast.ImportStatement:
		return prefix + "import \"" + stmt.Path + "\";"
	case *ast.FunctionDeclaration:
		params := strings.Join(stmt.Params, ", ")
		return prefix + "func " + stmt.Name + "(" + params + ") " + formatBlock(stmt.Body, depth)
	case *ast.BlockStatement:
		return prefix + formatBlock(stmt, depth)
	case *ast.IfStatement:
		out := prefix + "if (" + formatExpr(stmt.Test, depth) + ") " + formatBlock(stmt.Then, depth)
		if stmt.Else != nil {
			out += " else " + formatBlock(stmt.Else, depth)
		}
		return out
	case *ast.WhileStatement:
		return prefix + "while (" + formatExpr(stmt.Test, depth) + ") " + formatBlock(stmt.Body, depth)
	}
	return ""
}

// formatBlock renders a braced block without the leading indent prefix so
// callers can splice it after a statement header.
func formatBlock(block *ast.BlockStatement, depth int) string {
	if len(block.Statements) == 0 {
		return "{}"
	}
	prefix := strings.Repeat(indent, depth)
	lines := make([]string, len(block.Statements))
	for i, s := range block.Statements {
		lines[i] = formatStmt(s, depth+1)
	}
	return "{\n" + strings.Join(lines, "\n") + "\n" + prefix + "}"
}

func formatExpr(e ast.Expr, depth int) string {
	switch expr := e.(type) {
	case *ast.NumberLiteral:
		return formatNumberLiteral(expr.Value)
	case *ast.BoolLiteral:
		if expr.Value {
			return "true"
		}
		return "false"
	case *ast.StringLiteral:
		// OScript strings carry no escapes, so the raw text round-trips.
		return "\"" + expr.Value + "\""
	case *ast.NullLiteral:
		return "null"
	case *ast.Identifier:
		return expr.Name
	case *ast.CallExpression:
		args := make([]string, len(expr.Args))
		for i, a := range expr.Args {
			args[i] = formatExpr(a, depth)
		}
		return expr.Callee.Name + "(" + strings.Join(args, ", ") + ")"
	case *ast.BinaryExpression:
		leftStr := formatExpr(expr.Left, depth)
		rightStr := formatExpr(expr.Right, depth)
		if needsParens(expr.Left, expr.Op, false) {
			leftStr = "(" + leftStr + ")"
		}
		if needsParens(expr.Right, expr.Op, true) {
			rightStr = "(" + rightStr + ")"
		}
		return leftStr + " " + string(expr.Op) + " " + rightStr
	}
	return ""
}

func formatNumberLiteral(value float64) string {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	if value == math.Trunc(value) && math.Abs(value) < 1e15 {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
