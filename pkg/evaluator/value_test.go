package evaluator

import (
	"math"
	"testing"
)

// ---------------------------------------------------------------------------
// Test: number formatting
// ---------------------------------------------------------------------------
func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"zero", 0, "0"},
		{"whole", 42, "42"},
		{"negative whole", -7, "-7"},
		{"whole float", 2.0, "2"},
		{"fraction", 3.5, "3.5"},
		{"small fraction", 0.25, "0.25"},
		{"negative fraction", -0.5, "-0.5"},
		{"positive infinity", math.Inf(1), "+Inf"},
		{"negative infinity", math.Inf(-1), "-Inf"},
		{"large whole beyond exact int range", 1e20, "100000000000000000000"},
		{"large negative whole", -1e20, "-100000000000000000000"},
		{"largest exact whole", 1e15 - 1, "999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatNumber(tt.input)
			if got != tt.want {
				t.Errorf("FormatNumber(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatNumberNaN(t *testing.T) {
	got := FormatNumber(math.NaN())
	if got != "NaN" {
		t.Errorf("FormatNumber(NaN) = %q, want %q", got, "NaN")
	}
}

// ---------------------------------------------------------------------------
// Test: stringify
// ---------------------------------------------------------------------------
func TestStringify(t *testing.T) {
	tests := []struct {
		name  string
		input Value
		want  string
	}{
		{"null", NewNull(), "null"},
		{"true", NewBool(true), "true"},
		{"false", NewBool(false), "false"},
		{"number", NewNumber(1.5), "1.5"},
		{"string passes through without quotes", NewString("hi"), "hi"},
		{"empty string", NewString(""), ""},
		{"closure", &Closure{Name: "add", Params: []string{"a", "b"}}, "func add(a, b)"},
		{"builtin", &Builtin{Name: "print"}, "builtin print"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Stringify(tt.input)
			if got != tt.want {
				t.Errorf("Stringify = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: truthiness
// ---------------------------------------------------------------------------
func TestTruthinessTable(t *testing.T) {
	tests := []struct {
		name  string
		input Value
		want  bool
	}{
		{"null", NewNull(), false},
		{"false", NewBool(false), false},
		{"true", NewBool(true), true},
		{"zero", NewNumber(0), false},
		{"nonzero", NewNumber(0.1), true},
		{"negative", NewNumber(-1), true},
		{"empty string", NewString(""), false},
		{"nonempty string", NewString("0"), true},
		{"closure", &Closure{Name: "f"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthiness(tt.input); got != tt.want {
				t.Errorf("Truthiness = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: equality
// ---------------------------------------------------------------------------
func TestEqual(t *testing.T) {
	f := &Closure{Name: "f"}
	g := &Closure{Name: "f"}

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same numbers", NewNumber(1), NewNumber(1), true},
		{"different numbers", NewNumber(1), NewNumber(2), false},
		{"same strings", NewString("a"), NewString("a"), true},
		{"nulls", NewNull(), NewNull(), true},
		{"bools", NewBool(true), NewBool(true), true},
		{"number vs string", NewNumber(1), NewString("1"), false},
		{"zero vs null", NewNumber(0), NewNull(), false},
		{"false vs null", NewBool(false), NewNull(), false},
		{"same closure identity", f, f, true},
		{"distinct closures are unequal", f, g, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: type names used in error messages
// ---------------------------------------------------------------------------
func TestTypeName(t *testing.T) {
	tests := []struct {
		input Value
		want  string
	}{
		{NewNull(), "null"},
		{NewBool(true), "boolean"},
		{NewNumber(1), "number"},
		{NewString("s"), "string"},
		{&Closure{}, "function"},
		{&Builtin{}, "function"},
	}

	for _, tt := range tests {
		if got := TypeName(tt.input); got != tt.want {
			t.Errorf("TypeName(%T) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
