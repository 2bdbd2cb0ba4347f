package ast

import (
	"encoding/json"
	"math"
)

// The artifact serialization is a type-tagged JSON rendering of the tree.
// Spans are a diagnostic aid and are not part of the wire form; literal
// variants collapse into a single "Literal" node whose value carries the
// type, mirroring the shape consumers parse back into.

type jsonProgram struct {
	Type       string `json:"type"`
	Statements []any  `json:"statements"`
}

type jsonExprStmt struct {
	Type string `json:"type"`
	Expr any    `json:"expression"`
}

type jsonVarDecl struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Init any    `json:"initializer"`
}

type jsonBlock struct {
	Type       string `json:"type"`
	Statements []any  `json:"statements"`
}

type jsonIf struct {
	Type       string `json:"type"`
	Test       any    `json:"test"`
	Consequent any    `json:"consequent"`
	Alternate  any    `json:"alternate"`
}

type jsonWhile struct {
	Type string `json:"type"`
	Test any    `json:"test"`
	Body any    `json:"body"`
}

type jsonFuncDecl struct {
	Type   string   `json:"type"`
	Name   string   `json:"name"`
	Params []string `json:"params"`
	Body   any      `json:"body"`
}

type jsonReturn struct {
	Type     string `json:"type"`
	Argument any    `json:"argument"`
}

type jsonImport struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

type jsonIdent struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type jsonLiteral struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type jsonBinary struct {
	Type     string `json:"type"`
	Operator string `json:"operator"`
	Left     any    `json:"left"`
	Right    any    `json:"right"`
}

type jsonCall struct {
	Type   string `json:"type"`
	Callee any    `json:"callee"`
	Args   []any  `json:"arguments"`
}

// MarshalJSON encodes the program in the artifact wire form.
func (n *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonProgram{Type: "Program", Statements: stmtsToRaw(n.Statements)})
}

func stmtsToRaw(stmts []Stmt) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = stmtToRaw(s)
	}
	return out
}

func stmtToRaw(s Stmt) any {
	switch st := s.(type) {
	case *ExpressionStatement:
		return jsonExprStmt{Type: "ExpressionStatement", Expr: exprToRaw(st.Expr)}
	case *VariableDeclaration:
		return jsonVarDecl{Type: "VariableDeclaration", Name: st.Name, Init: exprToRaw(st.Init)}
	case *BlockStatement:
		return jsonBlock{Type: "BlockStatement", Statements: stmtsToRaw(st.Statements)}
	case *IfStatement:
		var alt any
		if st.Else != nil {
			alt = stmtToRaw(st.Else)
		}
		return jsonIf{Type: "IfStatement", Test: exprToRaw(st.Test), Consequent: stmtToRaw(st.Then), Alternate: alt}
	case *WhileStatement:
		return jsonWhile{Type: "WhileStatement", Test: exprToRaw(st.Test), Body: stmtToRaw(st.Body)}
	case *FunctionDeclaration:
		params := st.Params
		if params == nil {
			params = []string{}
		}
		return jsonFuncDecl{Type: "FunctionDeclaration", Name: st.Name, Params: params, Body: stmtToRaw(st.Body)}
	case *ReturnStatement:
		var arg any
		if st.Value != nil {
			arg = exprToRaw(st.Value)
		}
		return jsonReturn{Type: "ReturnStatement", Argument: arg}
	case *ImportStatement:
		return jsonImport{Type: "ImportStatement", Path: st.Path}
	}
	return nil
}

func exprToRaw(e Expr) any {
	switch ex := e.(type) {
	case *Identifier:
		return jsonIdent{Type: "Identifier", Name: ex.Name}
	case *NumberLiteral:
		return jsonLiteral{Type: "Literal", Value: numberToRaw(ex.Value)}
	case *StringLiteral:
		return jsonLiteral{Type: "Literal", Value: ex.Value}
	case *BoolLiteral:
		return jsonLiteral{Type: "Literal", Value: ex.Value}
	case *NullLiteral:
		return jsonLiteral{Type: "Literal", Value: nil}
	case *BinaryExpression:
		return jsonBinary{Type: "BinaryExpression", Operator: string(ex.Op), Left: exprToRaw(ex.Left), Right: exprToRaw(ex.Right)}
	case *CallExpression:
		args := make([]any, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = exprToRaw(a)
		}
		return jsonCall{Type: "CallExpression", Callee: exprToRaw(ex.Callee), Args: args}
	}
	return nil
}

// numberToRaw outputs whole numbers without a decimal point. The magnitude
// bound keeps the int64 conversion exact.
func numberToRaw(v float64) any {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return int64(v)
	}
	return v
}
