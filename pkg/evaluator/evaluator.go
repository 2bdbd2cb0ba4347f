package evaluator

import (
	"fmt"
	"strings"

	"github.com/oscript-lang/oscript/pkg/ast"
	"github.com/oscript-lang/oscript/pkg/diagnostics"
)

// Sink receives one line of program output per print call. The interpreter
// never buffers output itself.
type Sink func(line string)

// RuntimeError represents a fatal error during program execution.
type RuntimeError struct {
	Code    string
	Message string
	Span    *ast.Span
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// outcome is the tagged result of statement evaluation. A Return outcome
// passes untouched through block and loop evaluation and is consumed only
// at the nearest function-call boundary.
type outcome struct {
	value    Value
	isReturn bool
}

// Interpreter evaluates programs against a persistent global environment.
type Interpreter struct {
	global   *Env
	builtins map[string]*Builtin
	sink     Sink
}

// New creates an interpreter whose print built-in forwards to sink.
func New(sink Sink) *Interpreter {
	in := &Interpreter{
		global:   NewEnv(nil),
		builtins: make(map[string]*Builtin),
		sink:     sink,
	}
	in.builtins["print"] = &Builtin{
		Name: "print",
		Call: func(args []Value) (Value, *RuntimeError) {
			parts := make([]string, len(args))
			for i, a := range args {
				parts[i] = Stringify(a)
			}
			if in.sink != nil {
				in.sink(strings.Join(parts, " "))
			}
			return NewNull(), nil
		},
	}
	return in
}

// Interpret executes a linked program: top-level function declarations are
// hoisted into the global scope first, the remaining top-level statements
// run in order, and finally the global `main` function is invoked with zero
// arguments. All output flows through sink.
func Interpret(program *ast.Program, sink Sink) error {
	return New(sink).Run(program)
}

// Run implements the two-pass top-level evaluation on this interpreter's
// global environment.
func (in *Interpreter) Run(program *ast.Program) error {
	// Pass 1: hoist function declarations so top-level functions can call
	// each other regardless of declaration order.
	for _, stmt := range program.Statements {
		fn, ok := stmt.(*ast.FunctionDeclaration)
		if !ok {
			continue
		}
		if err := in.declareFunction(fn, in.global); err != nil {
			return err
		}
	}

	// Pass 2: run the remaining top-level statements, then enter main.
	for _, stmt := range program.Statements {
		if _, ok := stmt.(*ast.FunctionDeclaration); ok {
			continue // already hoisted
		}
		o, err := in.execStmt(stmt, in.global)
		if err != nil {
			return err
		}
		if o.isReturn {
			break
		}
	}

	mainVal, ok := in.global.Lookup("main")
	if !ok {
		return &RuntimeError{Code: diagnostics.ENoMain, Message: "main function not found or is not a function"}
	}
	mainFn, ok := mainVal.(*Closure)
	if !ok {
		return &RuntimeError{Code: diagnostics.ENoMain, Message: "main function not found or is not a function"}
	}

	// A typed-nil *RuntimeError must not escape through the error
	// interface, so the success path returns an untyped nil.
	if _, err := in.callClosure(mainFn, nil); err != nil {
		return err
	}
	return nil
}

// ExecStatements evaluates statements directly in the global environment
// and returns the last statement's value. Used by the REPL, which has no
// main entry point.
func (in *Interpreter) ExecStatements(stmts []ast.Stmt) (Value, error) {
	var last Value = NewNull()
	for _, stmt := range stmts {
		o, err := in.execStmt(stmt, in.global)
		if err != nil {
			return nil, err
		}
		last = o.value
		if o.isReturn {
			break
		}
	}
	return last, nil
}

func (in *Interpreter) declareFunction(fn *ast.FunctionDeclaration, env *Env) *RuntimeError {
	closure := &Closure{
		Name:   fn.Name,
		Params: fn.Params,
		Body:   fn.Body,
		Env:    env,
	}
	if !env.Declare(fn.Name, closure) {
		span := fn.Span
		return &RuntimeError{
			Code:    diagnostics.EDupBinding,
			Message: fmt.Sprintf("duplicate declaration of '%s' in the same scope", fn.Name),
			Span:    &span,
		}
	}
	return nil
}

func (in *Interpreter) execStmt(stmt ast.Stmt, env *Env) (outcome, *RuntimeError) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		val, err := in.evalExpr(s.Expr, env)
		if err != nil {
			return outcome{}, err
		}
		return outcome{value: val}, nil

	case *ast.VariableDeclaration:
		val, err := in.evalExpr(s.Init, env)
		if err != nil {
			return outcome{}, err
		}
		if !env.Declare(s.Name, val) {
			span := s.Span
			return outcome{}, &RuntimeError{
				Code:    diagnostics.EDupBinding,
				Message: fmt.Sprintf("duplicate declaration of '%s' in the same scope", s.Name),
				Span:    &span,
			}
		}
		return outcome{value: val}, nil

	case *ast.BlockStatement:
		// Exactly one fresh child scope per block.
		return in.execBlock(s.Statements, env.Child())

	case *ast.IfStatement:
		test, err := in.evalExpr(s.Test, env)
		if err != nil {
			return outcome{}, err
		}
		if Truthiness(test) {
			return in.execBlock(s.Then.Statements, env.Child())
		}
		if s.Else != nil {
			return in.execBlock(s.Else.Statements, env.Child())
		}
		return outcome{value: NewNull()}, nil

	case *ast.WhileStatement:
		for {
			test, err := in.evalExpr(s.Test, env)
			if err != nil {
				return outcome{}, err
			}
			if !Truthiness(test) {
				break
			}
			o, err := in.execBlock(s.Body.Statements, env.Child())
			if err != nil {
				return outcome{}, err
			}
			if o.isReturn {
				return o, nil
			}
		}
		return outcome{value: NewNull()}, nil

	case *ast.FunctionDeclaration:
		if err := in.declareFunction(s, env); err != nil {
			return outcome{}, err
		}
		return outcome{value: NewNull()}, nil

	case *ast.ReturnStatement:
		var val Value = NewNull()
		if s.Value != nil {
			var err *RuntimeError
			val, err = in.evalExpr(s.Value, env)
			if err != nil {
				return outcome{}, err
			}
		}
		return outcome{value: val, isReturn: true}, nil

	case *ast.ImportStatement:
		// Imports are resolved away by the linker; interpreting one directly
		// is a program structure error.
		span := s.Span
		return outcome{}, &RuntimeError{
			Code:    diagnostics.EImport,
			Message: fmt.Sprintf("unresolved import '%s': programs must be linked before interpretation", s.Path),
			Span:    &span,
		}
	}

	span := stmt.NodeSpan()
	return outcome{}, &RuntimeError{
		Code:    diagnostics.EType,
		Message: fmt.Sprintf("unsupported statement type: %T", stmt),
		Span:    &span,
	}
}

// execBlock evaluates statements sequentially in env, yielding the last
// statement's value. A Return outcome propagates upward unmodified.
func (in *Interpreter) execBlock(stmts []ast.Stmt, env *Env) (outcome, *RuntimeError) {
	last := outcome{value: NewNull()}
	for _, stmt := range stmts {
		o, err := in.execStmt(stmt, env)
		if err != nil {
			return outcome{}, err
		}
		if o.isReturn {
			return o, nil
		}
		last = o
	}
	return last, nil
}

func (in *Interpreter) evalExpr(expr ast.Expr, env *Env) (Value, *RuntimeError) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return NewNumber(e.Value), nil

	case *ast.StringLiteral:
		return NewString(e.Value), nil

	case *ast.BoolLiteral:
		return NewBool(e.Value), nil

	case *ast.NullLiteral:
		return NewNull(), nil

	case *ast.Identifier:
		if val, ok := env.Lookup(e.Name); ok {
			return val, nil
		}
		if b, ok := in.builtins[e.Name]; ok {
			return b, nil
		}
		span := e.Span
		return nil, &RuntimeError{
			Code:    diagnostics.EUnbound,
			Message: fmt.Sprintf("unknown identifier '%s'", e.Name),
			Span:    &span,
		}

	case *ast.BinaryExpression:
		return in.evalBinary(e, env)

	case *ast.CallExpression:
		return in.evalCall(e, env)
	}

	span := expr.NodeSpan()
	return nil, &RuntimeError{
		Code:    diagnostics.EType,
		Message: fmt.Sprintf("unsupported expression type: %T", expr),
		Span:    &span,
	}
}

func (in *Interpreter) evalBinary(e *ast.BinaryExpression, env *Env) (Value, *RuntimeError) {
	if e.Op == ast.OpAssign {
		return in.evalAssign(e, env)
	}

	left, err := in.evalExpr(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.evalExpr(e.Right, env)
	if err != nil {
		return nil, err
	}

	span := e.Span

	switch e.Op {
	case ast.OpAdd:
		// Numeric addition, degrading to string concatenation of both
		// sides' textual form when either operand is non-numeric.
		if lNum, ok := left.(Number); ok {
			if rNum, ok := right.(Number); ok {
				return NewNumber(lNum.Value + rNum.Value), nil
			}
		}
		return NewString(Stringify(left) + Stringify(right)), nil

	case ast.OpSub, ast.OpMul, ast.OpDiv:
		lNum, lOk := left.(Number)
		rNum, rOk := right.(Number)
		if !lOk || !rOk {
			return nil, &RuntimeError{
				Code:    diagnostics.EType,
				Message: fmt.Sprintf("operator '%s' requires numeric operands, got %s and %s", string(e.Op), TypeName(left), TypeName(right)),
				Span:    &span,
			}
		}
		switch e.Op {
		case ast.OpSub:
			return NewNumber(lNum.Value - rNum.Value), nil
		case ast.OpMul:
			return NewNumber(lNum.Value * rNum.Value), nil
		case ast.OpDiv:
			return NewNumber(lNum.Value / rNum.Value), nil
		}

	case ast.OpEqEq:
		return NewBool(Equal(left, right)), nil

	case ast.OpNeq:
		return NewBool(!Equal(left, right)), nil

	case ast.OpGt, ast.OpLt, ast.OpGtEq, ast.OpLtEq:
		if lNum, ok := left.(Number); ok {
			if rNum, ok := right.(Number); ok {
				switch e.Op {
				case ast.OpGt:
					return NewBool(lNum.Value > rNum.Value), nil
				case ast.OpLt:
					return NewBool(lNum.Value < rNum.Value), nil
				case ast.OpGtEq:
					return NewBool(lNum.Value >= rNum.Value), nil
				case ast.OpLtEq:
					return NewBool(lNum.Value <= rNum.Value), nil
				}
			}
		}
		if lStr, ok := left.(String); ok {
			if rStr, ok := right.(String); ok {
				switch e.Op {
				case ast.OpGt:
					return NewBool(lStr.Value > rStr.Value), nil
				case ast.OpLt:
					return NewBool(lStr.Value < rStr.Value), nil
				case ast.OpGtEq:
					return NewBool(lStr.Value >= rStr.Value), nil
				case ast.OpLtEq:
					return NewBool(lStr.Value <= rStr.Value), nil
				}
			}
		}
		return nil, &RuntimeError{
			Code:    diagnostics.EType,
			Message: fmt.Sprintf("operator '%s' requires two numbers or two strings, got %s and %s", string(e.Op), TypeName(left), TypeName(right)),
			Span:    &span,
		}
	}

	return nil, &RuntimeError{
		Code:    diagnostics.EType,
		Message: fmt.Sprintf("unhandled binary operator: %s", string(e.Op)),
		Span:    &span,
	}
}

// evalAssign mutates the nearest scope owning the target name. The parser
// guarantees the left side is a bare identifier.
func (in *Interpreter) evalAssign(e *ast.BinaryExpression, env *Env) (Value, *RuntimeError) {
	target, ok := e.Left.(*ast.Identifier)
	if !ok {
		span := e.Span
		return nil, &RuntimeError{
			Code:    diagnostics.EType,
			Message: "assignment target must be an identifier",
			Span:    &span,
		}
	}

	val, err := in.evalExpr(e.Right, env)
	if err != nil {
		return nil, err
	}

	if !env.Assign(target.Name, val) {
		span := target.Span
		return nil, &RuntimeError{
			Code:    diagnostics.EUnbound,
			Message: fmt.Sprintf("assignment to undeclared variable '%s'", target.Name),
			Span:    &span,
		}
	}
	return val, nil
}

func (in *Interpreter) evalCall(e *ast.CallExpression, env *Env) (Value, *RuntimeError) {
	name := e.Callee.Name
	span := e.Span

	// Resolve the callee before evaluating arguments: user bindings first,
	// then host built-ins.
	var callee Value
	if val, ok := env.Lookup(name); ok {
		callee = val
	} else if b, ok := in.builtins[name]; ok {
		callee = b
	} else {
		return nil, &RuntimeError{
			Code:    diagnostics.EUnbound,
			Message: fmt.Sprintf("unknown identifier '%s'", name),
			Span:    &span,
		}
	}

	args := make([]Value, len(e.Args))
	for i, argExpr := range e.Args {
		val, err := in.evalExpr(argExpr, env)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}

	switch fn := callee.(type) {
	case *Closure:
		return in.callClosure(fn, args)
	case *Builtin:
		return fn.Call(args)
	default:
		return nil, &RuntimeError{
			Code:    diagnostics.ENotCallable,
			Message: fmt.Sprintf("'%s' is not a function", name),
			Span:    &span,
		}
	}
}

// callClosure invokes a user-defined function: a fresh child of the
// captured declaration environment (never the caller's), positional
// parameter binding with missing trailing arguments bound to null, and the
// body's Return outcome consumed here. Falling off the end yields null.
func (in *Interpreter) callClosure(fn *Closure, args []Value) (Value, *RuntimeError) {
	callEnv := fn.Env.Child()
	for i, param := range fn.Params {
		var val Value = NewNull()
		if i < len(args) {
			val = args[i]
		}
		if !callEnv.Declare(param, val) {
			span := fn.Body.Span
			return nil, &RuntimeError{
				Code:    diagnostics.EDupBinding,
				Message: fmt.Sprintf("duplicate parameter '%s' in function '%s'", param, fn.Name),
				Span:    &span,
			}
		}
	}

	o, err := in.execBlock(fn.Body.Statements, callEnv)
	if err != nil {
		return nil, err
	}
	if o.isReturn {
		return o.value, nil
	}
	return NewNull(), nil
}
