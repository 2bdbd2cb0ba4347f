// Package evaluator implements the OScript tree-walking interpreter.
package evaluator

import (
	"math"
	"strconv"
	"strings"

	"github.com/oscript-lang/oscript/pkg/ast"
)

// Value is the interface for all OScript runtime values.
// Use the sealed marker method to restrict implementations to this package.
type Value interface {
	value() // sealed marker
}

// Null represents the null value.
type Null struct{}

func (Null) value() {}

// Bool represents a boolean value.
type Bool struct {
	Value bool
}

func (Bool) value() {}

// Number represents a numeric value.
type Number struct {
	Value float64
}

func (Number) value() {}

// String represents a string value.
type String struct {
	Value string
}

func (String) value() {}

// Closure is a user-defined function value: its parameters and body bundled
// with the environment in force at its declaration. Invoking it always
// chains off Env, never the caller's scope.
type Closure struct {
	Name   string
	Params []string
	Body   *ast.BlockStatement
	Env    *Env
}

func (*Closure) value() {}

// Builtin is a host-provided function value.
type Builtin struct {
	Name string
	Call func(args []Value) (Value, *RuntimeError)
}

func (*Builtin) value() {}

// NewNull creates a null value.
func NewNull() Value {
	return Null{}
}

// NewBool creates a boolean value.
func NewBool(b bool) Value {
	return Bool{Value: b}
}

// NewNumber creates a numeric value.
func NewNumber(n float64) Value {
	return Number{Value: n}
}

// NewString creates a string value.
func NewString(s string) Value {
	return String{Value: s}
}

// Truthiness returns the boolean interpretation of a value.
// null, false, 0, and "" are falsy; everything else is truthy.
func Truthiness(v Value) bool {
	switch val := v.(type) {
	case Null:
		return false
	case Bool:
		return val.Value
	case Number:
		return val.Value != 0
	case String:
		return val.Value != ""
	default:
		return true
	}
}

// Stringify renders a value in its natural textual form, as used by print
// and by '+' concatenation. Function values get a structured dump.
func Stringify(v Value) string {
	switch val := v.(type) {
	case Null:
		return "null"
	case Bool:
		if val.Value {
			return "true"
		}
		return "false"
	case Number:
		return FormatNumber(val.Value)
	case String:
		return val.Value
	case *Closure:
		return "func " + val.Name + "(" + strings.Join(val.Params, ", ") + ")"
	case *Builtin:
		return "builtin " + val.Name
	}
	return "null"
}

// FormatNumber formats a float64 as an integer string if it is a whole
// number small enough to convert exactly. Larger magnitudes, Inf, and NaN
// fall through to float formatting.
func FormatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Equal compares two values with no coercion: differing types are unequal,
// scalars compare by value, function values by identity.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.Value == bv.Value
	case Number:
		bv, ok := b.(Number)
		return ok && av.Value == bv.Value
	case String:
		bv, ok := b.(String)
		return ok && av.Value == bv.Value
	case *Closure:
		bv, ok := b.(*Closure)
		return ok && av == bv
	case *Builtin:
		bv, ok := b.(*Builtin)
		return ok && av == bv
	}
	return false
}

// TypeName returns the language-level type name for error messages.
func TypeName(v Value) string {
	switch v.(type) {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case *Closure, *Builtin:
		return "function"
	default:
		return "unknown"
	}
}
