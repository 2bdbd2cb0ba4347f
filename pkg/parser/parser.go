// Package parser implements the OScript language parser.
package parser

import (
	"fmt"
	"strconv"

	"github.com/oscript-lang/oscript/pkg/ast"
	"github.com/oscript-lang/oscript/pkg/diagnostics"
	"github.com/oscript-lang/oscript/pkg/lexer"
)

type parser struct {
	tokens []lexer.Token
	pos    int
	diags  []diagnostics.Diagnostic
}

// Parse tokenizes source and parses it into an AST.
func Parse(source, filename string) (*ast.Program, []diagnostics.Diagnostic) {
	tokens, err := lexer.Tokenize(source, filename)
	if err != nil {
		if le, ok := err.(*lexer.LexError); ok {
			return nil, []diagnostics.Diagnostic{le.Diag}
		}
		return nil, []diagnostics.Diagnostic{diagnostics.MakeDiag(diagnostics.ELex, err.Error(), nil, "")}
	}
	return ParseTokens(tokens)
}

// ParseTokens parses a token stream (as produced by lexer.Tokenize) into an
// AST. The stream must be terminated by an EOF token.
func ParseTokens(tokens []lexer.Token) (*ast.Program, []diagnostics.Diagnostic) {
	p := &parser{tokens: tokens, pos: 0}
	prog := p.parseProgram()
	if len(p.diags) > 0 {
		return nil, p.diags
	}
	return prog, nil
}

func (p *parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *parser) peek() lexer.TokenType {
	return p.current().Type
}

func (p *parser) peekAt(offset int) lexer.TokenType {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return lexer.TokEOF
	}
	return p.tokens[idx].Type
}

func (p *parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) expect(typ lexer.TokenType, context string) (lexer.Token, bool) {
	tok := p.current()
	if tok.Type != typ {
		p.addError(fmt.Sprintf("%s: expected %s, got '%s'", context, tokenName(typ), describeToken(tok)), &tok.Span)
		return tok, false
	}
	return p.advance(), true
}

func (p *parser) addError(msg string, span *ast.Span) {
	p.diags = append(p.diags, diagnostics.MakeDiag(diagnostics.EParse, msg, span, ""))
}

func (p *parser) spanFromTo(start, end ast.Span) ast.Span {
	return ast.Span{
		File:      start.File,
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

func tokenName(t lexer.TokenType) string {
	switch t {
	case lexer.TokLParen:
		return "'('"
	case lexer.TokRParen:
		return "')'"
	case lexer.TokLBrace:
		return "'{'"
	case lexer.TokRBrace:
		return "'}'"
	case lexer.TokSemicolon:
		return "';'"
	case lexer.TokComma:
		return "','"
	case lexer.TokEquals:
		return "'='"
	case lexer.TokIdent:
		return "identifier"
	case lexer.TokString:
		return "string"
	case lexer.TokNumber:
		return "number"
	case lexer.TokEOF:
		return "end of file"
	default:
		return fmt.Sprintf("token(%d)", t)
	}
}

func describeToken(tok lexer.Token) string {
	if tok.Type == lexer.TokEOF {
		return "end of file"
	}
	return tok.Value
}

// --- Program ---

func (p *parser) parseProgram() *ast.Program {
	startSpan := p.current().Span

	var stmts []ast.Stmt
	for p.peek() != lexer.TokEOF {
		stmt := p.parseStmt()
		if stmt == nil {
			return nil
		}
		stmts = append(stmts, stmt)
	}

	return &ast.Program{
		Span:       p.spanFromTo(startSpan, p.current().Span),
		Statements: stmts,
	}
}

// --- Statements ---

func (p *parser) parseStmt() ast.Stmt {
	switch p.peek() {
	case lexer.TokLet:
		s := p.parseVariableDeclaration()
		if s == nil {
			return nil
		}
		return s
	case lexer.TokFunc:
		s := p.parseFunctionDeclaration()
		if s == nil {
			return nil
		}
		return s
	case lexer.TokIf:
		s := p.parseIfStmt()
		if s == nil {
			return nil
		}
		return s
	case lexer.TokWhile:
		s := p.parseWhileStmt()
		if s == nil {
			return nil
		}
		return s
	case lexer.TokReturn:
		s := p.parseReturnStmt()
		if s == nil {
			return nil
		}
		return s
	case lexer.TokImport:
		s := p.parseImportStmt()
		if s == nil {
			return nil
		}
		return s
	case lexer.TokLBrace:
		s := p.parseBlock()
		if s == nil {
			return nil
		}
		return s
	default:
		s := p.parseExprStmt()
		if s == nil {
			return nil
		}
		return s
	}
}

func (p *parser) parseVariableDeclaration() *ast.VariableDeclaration {
	start := p.advance() // consume 'let'
	nameTok, ok := p.expect(lexer.TokIdent, "variable declaration")
	if !ok {
		return nil
	}
	if _, ok := p.expect(lexer.TokEquals, "variable declaration"); !ok {
		return nil
	}
	init := p.parseExpr()
	if init == nil {
		return nil
	}
	end, ok := p.expect(lexer.TokSemicolon, "variable declaration")
	if !ok {
		return nil
	}
	return &ast.VariableDeclaration{
		Span: p.spanFromTo(start.Span, end.Span),
		Name: nameTok.Value,
		Init: init,
	}
}

func (p *parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	start := p.advance() // consume 'func'
	nameTok, ok := p.expect(lexer.TokIdent, "function declaration")
	if !ok {
		return nil
	}

	if _, ok := p.expect(lexer.TokLParen, "function declaration"); !ok {
		return nil
	}
	var params []string
	for p.peek() != lexer.TokRParen && p.peek() != lexer.TokEOF {
		paramTok, ok := p.expect(lexer.TokIdent, "parameter list")
		if !ok {
			return nil
		}
		params = append(params, paramTok.Value)
		if p.peek() == lexer.TokComma {
			p.advance()
		} else {
			break
		}
	}
	if _, ok := p.expect(lexer.TokRParen, "function declaration"); !ok {
		return nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	return &ast.FunctionDeclaration{
		Span:   p.spanFromTo(start.Span, body.Span),
		Name:   nameTok.Value,
		Params: params,
		Body:   body,
	}
}

func (p *parser) parseIfStmt() *ast.IfStatement {
	start := p.advance() // consume 'if'
	if _, ok := p.expect(lexer.TokLParen, "if statement"); !ok {
		return nil
	}
	test := p.parseExpr()
	if test == nil {
		return nil
	}
	if _, ok := p.expect(lexer.TokRParen, "if statement"); !ok {
		return nil
	}

	then := p.parseBlock()
	if then == nil {
		return nil
	}

	var alt *ast.BlockStatement
	endSpan := then.Span
	if p.peek() == lexer.TokElse {
		p.advance() // consume 'else'
		alt = p.parseBlock()
		if alt == nil {
			return nil
		}
		endSpan = alt.Span
	}

	return &ast.IfStatement{
		Span: p.spanFromTo(start.Span, endSpan),
		Test: test,
		Then: then,
		Else: alt,
	}
}

func (p *parser) parseWhileStmt() *ast.WhileStatement {
	start := p.advance() // consume 'while'
	if _, ok := p.expect(lexer.TokLParen, "while statement"); !ok {
		return nil
	}
	test := p.parseExpr()
	if test == nil {
		return nil
	}
	if _, ok := p.expect(lexer.TokRParen, "while statement"); !ok {
		return nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	return &ast.WhileStatement{
		Span: p.spanFromTo(start.Span, body.Span),
		Test: test,
		Body: body,
	}
}

func (p *parser) parseReturnStmt() *ast.ReturnStatement {
	start := p.advance() // consume 'return'

	var value ast.Expr
	if p.peek() != lexer.TokSemicolon {
		value = p.parseExpr()
		if value == nil {
			return nil
		}
	}

	end, ok := p.expect(lexer.TokSemicolon, "return statement")
	if !ok {
		return nil
	}
	return &ast.ReturnStatement{
		Span:  p.spanFromTo(start.Span, end.Span),
		Value: value,
	}
}

func (p *parser) parseImportStmt() *ast.ImportStatement {
	start := p.advance() // consume 'import'
	pathTok, ok := p.expect(lexer.TokString, "import statement")
	if !ok {
		return nil
	}
	end, ok := p.expect(lexer.TokSemicolon, "import statement")
	if !ok {
		return nil
	}
	return &ast.ImportStatement{
		Span: p.spanFromTo(start.Span, end.Span),
		Path: pathTok.Value,
	}
}

func (p *parser) parseBlock() *ast.BlockStatement {
	start, ok := p.expect(lexer.TokLBrace, "block")
	if !ok {
		return nil
	}
	var stmts []ast.Stmt
	for p.peek() != lexer.TokRBrace && p.peek() != lexer.TokEOF {
		stmt := p.parseStmt()
		if stmt == nil {
			return nil
		}
		stmts = append(stmts, stmt)
	}
	end, ok := p.expect(lexer.TokRBrace, "block")
	if !ok {
		return nil
	}
	return &ast.BlockStatement{
		Span:       p.spanFromTo(start.Span, end.Span),
		Statements: stmts,
	}
}

func (p *parser) parseExprStmt() *ast.ExpressionStatement {
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	end, ok := p.expect(lexer.TokSemicolon, "expression statement")
	if !ok {
		return nil
	}
	return &ast.ExpressionStatement{
		Span: p.spanFromTo(expr.NodeSpan(), end.Span),
		Expr: expr,
	}
}

// --- Precedence climbing ---

func (p *parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

// parseAssignment handles `ident = expr`, right-associative. The assignment
// shares the BinaryExpression shape with operator "=", and the left side
// must be a bare identifier.
func (p *parser) parseAssignment() ast.Expr {
	left := p.parseComparison()
	if left == nil {
		return nil
	}

	if p.peek() == lexer.TokEquals {
		eqTok := p.current()
		if _, ok := left.(*ast.Identifier); !ok {
			p.addError("invalid assignment target: left side must be an identifier", &eqTok.Span)
			return nil
		}
		p.advance() // consume '='
		right := p.parseAssignment()
		if right == nil {
			return nil
		}
		return &ast.BinaryExpression{
			Span:  p.spanFromTo(left.NodeSpan(), right.NodeSpan()),
			Op:    ast.OpAssign,
			Left:  left,
			Right: right,
		}
	}

	return left
}

func (p *parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	if left == nil {
		return nil
	}

	for {
		var op ast.BinaryOp
		switch p.peek() {
		case lexer.TokEqEq:
			op = ast.OpEqEq
		case lexer.TokBangEq:
			op = ast.OpNeq
		case lexer.TokGt:
			op = ast.OpGt
		case lexer.TokLt:
			op = ast.OpLt
		case lexer.TokGtEq:
			op = ast.OpGtEq
		case lexer.TokLtEq:
			op = ast.OpLtEq
		default:
			return left
		}
		p.advance()
		right := p.parseAdditive()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpression{
			Span:  p.spanFromTo(left.NodeSpan(), right.NodeSpan()),
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

func (p *parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	if left == nil {
		return nil
	}

	for {
		var op ast.BinaryOp
		switch p.peek() {
		case lexer.TokPlus:
			op = ast.OpAdd
		case lexer.TokMinus:
			op = ast.OpSub
		default:
			return left
		}
		p.advance()
		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpression{
			Span:  p.spanFromTo(left.NodeSpan(), right.NodeSpan()),
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

func (p *parser) parseMultiplicative() ast.Expr {
	left := p.parseCall()
	if left == nil {
		return nil
	}

	for {
		var op ast.BinaryOp
		switch p.peek() {
		case lexer.TokStar:
			op = ast.OpMul
		case lexer.TokSlash:
			op = ast.OpDiv
		default:
			return left
		}
		p.advance()
		right := p.parseCall()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpression{
			Span:  p.spanFromTo(left.NodeSpan(), right.NodeSpan()),
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

// parseCall recognizes `ident(args...)`. The callee must be a bare
// identifier immediately followed by '('; the result of a call is not
// itself callable, so `f()()` is a parse error.
func (p *parser) parseCall() ast.Expr {
	if p.peek() == lexer.TokIdent && p.peekAt(1) == lexer.TokLParen {
		calleeTok := p.advance()
		callee := &ast.Identifier{Span: calleeTok.Span, Name: calleeTok.Value}

		p.advance() // consume '('
		var args []ast.Expr
		for p.peek() != lexer.TokRParen && p.peek() != lexer.TokEOF {
			arg := p.parseExpr()
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if p.peek() == lexer.TokComma {
				p.advance()
			} else {
				break
			}
		}
		end, ok := p.expect(lexer.TokRParen, "call expression")
		if !ok {
			return nil
		}

		if p.peek() == lexer.TokLParen {
			tok := p.current()
			p.addError("cannot call the result of a call expression", &tok.Span)
			return nil
		}

		return &ast.CallExpression{
			Span:   p.spanFromTo(calleeTok.Span, end.Span),
			Callee: callee,
			Args:   args,
		}
	}

	return p.parsePrimary()
}

func (p *parser) parsePrimary() ast.Expr {
	switch p.peek() {
	case lexer.TokLParen:
		// Transparent grouping: no AST node is retained.
		p.advance()
		expr := p.parseExpr()
		if expr == nil {
			return nil
		}
		if _, ok := p.expect(lexer.TokRParen, "grouped expression"); !ok {
			return nil
		}
		return expr

	case lexer.TokNumber:
		tok := p.advance()
		val, _ := strconv.ParseFloat(tok.Value, 64)
		return &ast.NumberLiteral{Span: tok.Span, Value: val}

	case lexer.TokString:
		tok := p.advance()
		return &ast.StringLiteral{Span: tok.Span, Value: tok.Value}

	case lexer.TokTrue:
		tok := p.advance()
		return &ast.BoolLiteral{Span: tok.Span, Value: true}

	case lexer.TokFalse:
		tok := p.advance()
		return &ast.BoolLiteral{Span: tok.Span, Value: false}

	case lexer.TokNull:
		tok := p.advance()
		return &ast.NullLiteral{Span: tok.Span}

	case lexer.TokIdent:
		tok := p.advance()
		return &ast.Identifier{Span: tok.Span, Name: tok.Value}

	default:
		tok := p.current()
		p.addError(fmt.Sprintf("unexpected token '%s'", describeToken(tok)), &tok.Span)
		return nil
	}
}
