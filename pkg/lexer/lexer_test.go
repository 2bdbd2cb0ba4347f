package lexer

import (
	"strings"
	"testing"
)

// helper to tokenize and fail on error
func mustTokenize(t *testing.T, source string) []Token {
	t.Helper()
	tokens, err := Tokenize(source, "test.os")
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	return tokens
}

// helper that strips the trailing EOF for easier assertions
func mustTokenizeNoEOF(t *testing.T, source string) []Token {
	t.Helper()
	tokens := mustTokenize(t, source)
	if len(tokens) == 0 {
		t.Fatal("expected at least one token (EOF)")
	}
	if tokens[len(tokens)-1].Type != TokEOF {
		t.Fatal("last token is not EOF")
	}
	return tokens[:len(tokens)-1]
}

// ---------------------------------------------------------------------------
// Test: empty input produces only EOF
// ---------------------------------------------------------------------------
func TestEmptyInput(t *testing.T) {
	tokens := mustTokenize(t, "")
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token (EOF), got %d", len(tokens))
	}
	if tokens[0].Type != TokEOF {
		t.Errorf("expected TokEOF, got %v", tokens[0].Type)
	}
}

// ---------------------------------------------------------------------------
// Test: all keywords
// ---------------------------------------------------------------------------
func TestKeywords(t *testing.T) {
	tests := []struct {
		keyword  string
		expected TokenType
	}{
		{"let", TokLet},
		{"func", TokFunc},
		{"if", TokIf},
		{"else", TokElse},
		{"while", TokWhile},
		{"return", TokReturn},
		{"import", TokImport},
		{"true", TokTrue},
		{"false", TokFalse},
		{"null", TokNull},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			tokens := mustTokenizeNoEOF(t, tt.keyword)
			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Type != tt.expected {
				t.Errorf("expected token type %d, got %d", tt.expected, tokens[0].Type)
			}
			if tokens[0].Value != tt.keyword {
				t.Errorf("expected value %q, got %q", tt.keyword, tokens[0].Value)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: keyword vs identifier disambiguation
// ---------------------------------------------------------------------------
func TestKeywordVsIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected TokenType
	}{
		{"let keyword", "let", TokLet},
		{"letter is ident", "letter", TokIdent},
		{"if keyword", "if", TokIf},
		{"iffy is ident", "iffy", TokIdent},
		{"while keyword", "while", TokWhile},
		{"whiler is ident", "whiler", TokIdent},
		{"func keyword", "func", TokFunc},
		{"funcs is ident", "funcs", TokIdent},
		{"true keyword", "true", TokTrue},
		{"trueish is ident", "trueish", TokIdent},
		{"false keyword", "false", TokFalse},
		{"falsehood is ident", "falsehood", TokIdent},
		{"null keyword", "null", TokNull},
		{"nullable is ident", "nullable", TokIdent},
		{"return keyword", "return", TokReturn},
		{"returns is ident", "returns", TokIdent},
		{"import keyword", "import", TokImport},
		{"imports is ident", "imports", TokIdent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := mustTokenizeNoEOF(t, tt.input)
			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Type != tt.expected {
				t.Errorf("expected type %d for %q, got %d", tt.expected, tt.input, tokens[0].Type)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: identifiers
// ---------------------------------------------------------------------------
func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"x", "x"},
		{"foo", "foo"},
		{"myVar", "myVar"},
		{"_private", "_private"},
		{"name123", "name123"},
		{"_", "_"},
		{"__init__", "__init__"},
		{"camelCase", "camelCase"},
		{"PascalCase", "PascalCase"},
		{"a1b2c3", "a1b2c3"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := mustTokenizeNoEOF(t, tt.input)
			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Type != TokIdent {
				t.Errorf("expected TokIdent, got %d", tokens[0].Type)
			}
			if tokens[0].Value != tt.expected {
				t.Errorf("expected value %q, got %q", tt.expected, tokens[0].Value)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: number literals
// ---------------------------------------------------------------------------
func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		value string
	}{
		{"0", "0"},
		{"1", "1"},
		{"42", "42"},
		{"1234567890", "1234567890"},
		{"007", "007"},
		{"3.14", "3.14"},
		{"0.5", "0.5"},
		{"100.0", "100.0"},
		{"1.23456789", "1.23456789"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := mustTokenizeNoEOF(t, tt.input)
			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Type != TokNumber {
				t.Errorf("expected TokNumber, got %d", tokens[0].Type)
			}
			if tokens[0].Value != tt.value {
				t.Errorf("expected value %q, got %q", tt.value, tokens[0].Value)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: a trailing dot is not part of the number
// ---------------------------------------------------------------------------
func TestNumberTrailingDot(t *testing.T) {
	// "1." should produce Number(1) and then fail on the stray '.'
	_, err := Tokenize("1.", "test.os")
	if err == nil {
		t.Fatal("expected error for stray '.'")
	}
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %T", err)
	}
	if !strings.Contains(lexErr.Diag.Message, "unexpected character '.'") {
		t.Errorf("expected message about '.', got %q", lexErr.Diag.Message)
	}
}

// ---------------------------------------------------------------------------
// Test: string literals with various content
// ---------------------------------------------------------------------------
func TestStringLiterals(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", `""`, ""},
		{"simple", `"hello"`, "hello"},
		{"with spaces", `"hello world"`, "hello world"},
		{"with digits", `"abc123"`, "abc123"},
		{"single char", `"x"`, "x"},
		{"backslash is literal", `"a\nb"`, `a\nb`},
		{"spans newline", "\"line1\nline2\"", "line1\nline2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := mustTokenizeNoEOF(t, tt.input)
			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Type != TokString {
				t.Errorf("expected TokString, got %d", tokens[0].Type)
			}
			if tokens[0].Value != tt.expected {
				t.Errorf("expected value %q, got %q", tt.expected, tokens[0].Value)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: single-character punctuation and operators
// ---------------------------------------------------------------------------
func TestSingleCharTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{"(", TokLParen},
		{")", TokRParen},
		{"{", TokLBrace},
		{"}", TokRBrace},
		{";", TokSemicolon},
		{",", TokComma},
		{"+", TokPlus},
		{"-", TokMinus},
		{"*", TokStar},
		{"/", TokSlash},
		{"=", TokEquals},
		{">", TokGt},
		{"<", TokLt},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := mustTokenizeNoEOF(t, tt.input)
			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Type != tt.expected {
				t.Errorf("expected type %d for %q, got %d", tt.expected, tt.input, tokens[0].Type)
			}
			if tokens[0].Value != tt.input {
				t.Errorf("expected value %q, got %q", tt.input, tokens[0].Value)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: multi-character operators
// ---------------------------------------------------------------------------
func TestMultiCharOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
		value    string
	}{
		{"==", TokEqEq, "=="},
		{"!=", TokBangEq, "!="},
		{">=", TokGtEq, ">="},
		{"<=", TokLtEq, "<="},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := mustTokenizeNoEOF(t, tt.input)
			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Type != tt.expected {
				t.Errorf("expected type %d for %q, got %d", tt.expected, tt.input, tokens[0].Type)
			}
			if tokens[0].Value != tt.value {
				t.Errorf("expected value %q, got %q", tt.value, tokens[0].Value)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: multi-char operators should not be greedily consumed beyond their length
// ---------------------------------------------------------------------------
func TestMultiCharOperatorDisambiguation(t *testing.T) {
	// "==" should be TokEqEq not TokEquals + TokEquals
	tokens := mustTokenizeNoEOF(t, "==")
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token for '==', got %d", len(tokens))
	}
	if tokens[0].Type != TokEqEq {
		t.Errorf("expected TokEqEq, got %d", tokens[0].Type)
	}

	// "= =" should be TokEquals + TokEquals
	tokens = mustTokenizeNoEOF(t, "= =")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens for '= =', got %d", len(tokens))
	}
	if tokens[0].Type != TokEquals || tokens[1].Type != TokEquals {
		t.Errorf("expected TokEquals + TokEquals, got %d + %d", tokens[0].Type, tokens[1].Type)
	}

	// "===" should be TokEqEq + TokEquals
	tokens = mustTokenizeNoEOF(t, "===")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens for '===', got %d", len(tokens))
	}
	if tokens[0].Type != TokEqEq || tokens[1].Type != TokEquals {
		t.Errorf("expected TokEqEq + TokEquals, got %d + %d", tokens[0].Type, tokens[1].Type)
	}

	// "<=" single token, "< =" two tokens
	tokens = mustTokenizeNoEOF(t, "< =")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens for '< =', got %d", len(tokens))
	}
	if tokens[0].Type != TokLt || tokens[1].Type != TokEquals {
		t.Errorf("expected TokLt + TokEquals, got %d + %d", tokens[0].Type, tokens[1].Type)
	}
}

// ---------------------------------------------------------------------------
// Test: comments
// ---------------------------------------------------------------------------
func TestComments(t *testing.T) {
	t.Run("comment only", func(t *testing.T) {
		tokens := mustTokenize(t, "// this is a comment")
		if len(tokens) != 1 || tokens[0].Type != TokEOF {
			t.Errorf("expected only EOF for comment-only input, got %d tokens", len(tokens))
		}
	})

	t.Run("comment after token", func(t *testing.T) {
		tokens := mustTokenizeNoEOF(t, "42 // the answer")
		if len(tokens) != 1 {
			t.Fatalf("expected 1 token, got %d", len(tokens))
		}
		if tokens[0].Type != TokNumber || tokens[0].Value != "42" {
			t.Errorf("expected Number(42), got type=%d value=%q", tokens[0].Type, tokens[0].Value)
		}
	})

	t.Run("comment between tokens on separate lines", func(t *testing.T) {
		tokens := mustTokenizeNoEOF(t, "let\n// comment\nx")
		if len(tokens) != 2 {
			t.Fatalf("expected 2 tokens, got %d", len(tokens))
		}
		if tokens[0].Type != TokLet {
			t.Errorf("expected TokLet, got %d", tokens[0].Type)
		}
		if tokens[1].Type != TokIdent || tokens[1].Value != "x" {
			t.Errorf("expected Ident(x), got type=%d value=%q", tokens[1].Type, tokens[1].Value)
		}
	})

	t.Run("multiple comment lines", func(t *testing.T) {
		input := "// first comment\n// second comment\n42"
		tokens := mustTokenizeNoEOF(t, input)
		if len(tokens) != 1 {
			t.Fatalf("expected 1 token, got %d", len(tokens))
		}
		if tokens[0].Type != TokNumber {
			t.Errorf("expected TokNumber, got %d", tokens[0].Type)
		}
	})

	t.Run("slashes inside string are not a comment", func(t *testing.T) {
		tokens := mustTokenizeNoEOF(t, `"https://example.com"`)
		if len(tokens) != 1 {
			t.Fatalf("expected 1 token, got %d", len(tokens))
		}
		if tokens[0].Type != TokString {
			t.Errorf("expected TokString, got %d", tokens[0].Type)
		}
		if tokens[0].Value != "https://example.com" {
			t.Errorf("expected %q, got %q", "https://example.com", tokens[0].Value)
		}
	})

	t.Run("single slash is division", func(t *testing.T) {
		tokens := mustTokenizeNoEOF(t, "a / b")
		if len(tokens) != 3 {
			t.Fatalf("expected 3 tokens, got %d", len(tokens))
		}
		if tokens[1].Type != TokSlash {
			t.Errorf("expected TokSlash, got %d", tokens[1].Type)
		}
	})
}

// ---------------------------------------------------------------------------
// Test: whitespace handling
// ---------------------------------------------------------------------------
func TestWhitespace(t *testing.T) {
	t.Run("spaces between tokens", func(t *testing.T) {
		tokens := mustTokenizeNoEOF(t, "let   x   =   42")
		if len(tokens) != 4 {
			t.Fatalf("expected 4 tokens, got %d", len(tokens))
		}
		expected := []TokenType{TokLet, TokIdent, TokEquals, TokNumber}
		for i, e := range expected {
			if tokens[i].Type != e {
				t.Errorf("token %d: expected type %d, got %d", i, e, tokens[i].Type)
			}
		}
	})

	t.Run("tabs between tokens", func(t *testing.T) {
		tokens := mustTokenizeNoEOF(t, "let\tx\t=\t42")
		if len(tokens) != 4 {
			t.Fatalf("expected 4 tokens, got %d", len(tokens))
		}
	})

	t.Run("newlines between tokens", func(t *testing.T) {
		tokens := mustTokenizeNoEOF(t, "let\nx\n=\n42")
		if len(tokens) != 4 {
			t.Fatalf("expected 4 tokens, got %d", len(tokens))
		}
	})

	t.Run("carriage return and newline", func(t *testing.T) {
		tokens := mustTokenizeNoEOF(t, "let\r\nx\r\n=\r\n42")
		if len(tokens) != 4 {
			t.Fatalf("expected 4 tokens, got %d", len(tokens))
		}
	})

	t.Run("whitespace only", func(t *testing.T) {
		tokens := mustTokenize(t, "   \t\n  \r\n  ")
		if len(tokens) != 1 || tokens[0].Type != TokEOF {
			t.Errorf("expected only EOF for whitespace input")
		}
	})
}

// ---------------------------------------------------------------------------
// Test: span/position tracking
// ---------------------------------------------------------------------------
func TestSpanTracking(t *testing.T) {
	t.Run("first token on line 1 col 1", func(t *testing.T) {
		tokens := mustTokenizeNoEOF(t, "let")
		if tokens[0].Span.StartLine != 1 || tokens[0].Span.StartCol != 1 {
			t.Errorf("expected start (1,1), got (%d,%d)",
				tokens[0].Span.StartLine, tokens[0].Span.StartCol)
		}
	})

	t.Run("second token on same line", func(t *testing.T) {
		tokens := mustTokenizeNoEOF(t, "let x")
		if tokens[1].Span.StartLine != 1 || tokens[1].Span.StartCol != 5 {
			t.Errorf("expected x at (1,5), got (%d,%d)",
				tokens[1].Span.StartLine, tokens[1].Span.StartCol)
		}
	})

	t.Run("token on second line", func(t *testing.T) {
		tokens := mustTokenizeNoEOF(t, "let\nx")
		if tokens[1].Span.StartLine != 2 || tokens[1].Span.StartCol != 1 {
			t.Errorf("expected x at (2,1), got (%d,%d)",
				tokens[1].Span.StartLine, tokens[1].Span.StartCol)
		}
	})

	t.Run("multiple lines position tracking", func(t *testing.T) {
		input := "let x = 42;\nreturn x;"
		tokens := mustTokenizeNoEOF(t, input)
		expectations := []struct {
			tokType   TokenType
			value     string
			startLine int
			startCol  int
		}{
			{TokLet, "let", 1, 1},
			{TokIdent, "x", 1, 5},
			{TokEquals, "=", 1, 7},
			{TokNumber, "42", 1, 9},
			{TokSemicolon, ";", 1, 11},
			{TokReturn, "return", 2, 1},
			{TokIdent, "x", 2, 8},
			{TokSemicolon, ";", 2, 9},
		}

		if len(tokens) != len(expectations) {
			t.Fatalf("expected %d tokens, got %d", len(expectations), len(tokens))
		}

		for i, exp := range expectations {
			tok := tokens[i]
			if tok.Type != exp.tokType {
				t.Errorf("token %d: expected type %d, got %d", i, exp.tokType, tok.Type)
			}
			if tok.Value != exp.value {
				t.Errorf("token %d: expected value %q, got %q", i, exp.value, tok.Value)
			}
			if tok.Span.StartLine != exp.startLine || tok.Span.StartCol != exp.startCol {
				t.Errorf("token %d (%q): expected start (%d,%d), got (%d,%d)",
					i, exp.value, exp.startLine, exp.startCol, tok.Span.StartLine, tok.Span.StartCol)
			}
		}
	})

	t.Run("filename propagated to span", func(t *testing.T) {
		tokens, err := Tokenize("42", "myfile.os")
		if err != nil {
			t.Fatal(err)
		}
		if tokens[0].Span.File != "myfile.os" {
			t.Errorf("expected file %q, got %q", "myfile.os", tokens[0].Span.File)
		}
	})

	t.Run("end position tracking for multi-char tokens", func(t *testing.T) {
		tokens := mustTokenizeNoEOF(t, "return")
		tok := tokens[0]
		if tok.Span.StartLine != 1 || tok.Span.StartCol != 1 {
			t.Errorf("expected start (1,1), got (%d,%d)", tok.Span.StartLine, tok.Span.StartCol)
		}
		if tok.Span.EndLine != 1 || tok.Span.EndCol != 7 {
			t.Errorf("expected end (1,7), got (%d,%d)", tok.Span.EndLine, tok.Span.EndCol)
		}
	})

	t.Run("string literal span covers quotes", func(t *testing.T) {
		tokens := mustTokenizeNoEOF(t, `"hello"`)
		tok := tokens[0]
		if tok.Span.StartCol != 1 {
			t.Errorf("expected string start col 1, got %d", tok.Span.StartCol)
		}
		if tok.Span.EndCol != 8 {
			t.Errorf("expected string end col 8, got %d", tok.Span.EndCol)
		}
	})
}

// ---------------------------------------------------------------------------
// Test: error cases
// ---------------------------------------------------------------------------
func TestUnterminatedString(t *testing.T) {
	_, err := Tokenize(`"hello`, "test.os")
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %T", err)
	}
	if lexErr.Diag.Code != "E_LEX" {
		t.Errorf("expected code E_LEX, got %q", lexErr.Diag.Code)
	}
	if !strings.Contains(lexErr.Diag.Message, "unterminated") {
		t.Errorf("expected 'unterminated' in message, got %q", lexErr.Diag.Message)
	}
}

func TestInvalidCharacter(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"at sign", "@"},
		{"tilde", "~"},
		{"backtick", "`"},
		{"question mark", "?"},
		{"ampersand", "&"},
		{"pipe", "|"},
		{"caret", "^"},
		{"percent", "%"},
		{"colon", ":"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input, "test.os")
			if err == nil {
				t.Fatal("expected error for invalid character")
			}
			lexErr, ok := err.(*LexError)
			if !ok {
				t.Fatalf("expected *LexError, got %T", err)
			}
			if lexErr.Diag.Code != "E_LEX" {
				t.Errorf("expected code E_LEX, got %q", lexErr.Diag.Code)
			}
		})
	}
}

func TestBangRequiresEquals(t *testing.T) {
	_, err := Tokenize("!", "test.os")
	if err == nil {
		t.Fatal("expected error for standalone '!'")
	}
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %T", err)
	}
	if !strings.Contains(lexErr.Diag.Message, "unexpected character '!'") {
		t.Errorf("expected message about '!', got %q", lexErr.Diag.Message)
	}

	// "!x" is also an error since only "!=" is valid
	if _, err := Tokenize("!x", "test.os"); err == nil {
		t.Error("expected error for '!x'")
	}
}

func TestErrorSpanPosition(t *testing.T) {
	_, err := Tokenize("let x\n@", "test.os")
	if err == nil {
		t.Fatal("expected error")
	}
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %T", err)
	}
	if lexErr.Diag.Span == nil {
		t.Fatal("expected span in diagnostic")
	}
	if lexErr.Diag.Span.StartLine != 2 || lexErr.Diag.Span.StartCol != 1 {
		t.Errorf("expected error at (2,1), got (%d,%d)",
			lexErr.Diag.Span.StartLine, lexErr.Diag.Span.StartCol)
	}
}

// ---------------------------------------------------------------------------
// Test: complete token sequences (realistic OScript code)
// ---------------------------------------------------------------------------
func TestTokenizeLetStatement(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, `let x = 42;`)
	expected := []struct {
		typ TokenType
		val string
	}{
		{TokLet, "let"},
		{TokIdent, "x"},
		{TokEquals, "="},
		{TokNumber, "42"},
		{TokSemicolon, ";"},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, e := range expected {
		if tokens[i].Type != e.typ || tokens[i].Value != e.val {
			t.Errorf("token %d: expected (%d, %q), got (%d, %q)",
				i, e.typ, e.val, tokens[i].Type, tokens[i].Value)
		}
	}
}

func TestTokenizeFunctionDeclaration(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, "func add(a, b) {\n  return a + b;\n}")
	expected := []struct {
		typ TokenType
		val string
	}{
		{TokFunc, "func"},
		{TokIdent, "add"},
		{TokLParen, "("},
		{TokIdent, "a"},
		{TokComma, ","},
		{TokIdent, "b"},
		{TokRParen, ")"},
		{TokLBrace, "{"},
		{TokReturn, "return"},
		{TokIdent, "a"},
		{TokPlus, "+"},
		{TokIdent, "b"},
		{TokSemicolon, ";"},
		{TokRBrace, "}"},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, e := range expected {
		if tokens[i].Type != e.typ || tokens[i].Value != e.val {
			t.Errorf("token %d: expected (%d, %q), got (%d, %q)",
				i, e.typ, e.val, tokens[i].Type, tokens[i].Value)
		}
	}
}

func TestTokenizeArithmeticExpression(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, `(a + b) * c - d / e`)
	expected := []struct {
		typ TokenType
		val string
	}{
		{TokLParen, "("},
		{TokIdent, "a"},
		{TokPlus, "+"},
		{TokIdent, "b"},
		{TokRParen, ")"},
		{TokStar, "*"},
		{TokIdent, "c"},
		{TokMinus, "-"},
		{TokIdent, "d"},
		{TokSlash, "/"},
		{TokIdent, "e"},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, e := range expected {
		if tokens[i].Type != e.typ || tokens[i].Value != e.val {
			t.Errorf("token %d: expected (%d, %q), got (%d, %q)",
				i, e.typ, e.val, tokens[i].Type, tokens[i].Value)
		}
	}
}

func TestTokenizeComparisonExpression(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, `a >= b != c <= d == e > f < g`)
	expected := []struct {
		typ TokenType
		val string
	}{
		{TokIdent, "a"},
		{TokGtEq, ">="},
		{TokIdent, "b"},
		{TokBangEq, "!="},
		{TokIdent, "c"},
		{TokLtEq, "<="},
		{TokIdent, "d"},
		{TokEqEq, "=="},
		{TokIdent, "e"},
		{TokGt, ">"},
		{TokIdent, "f"},
		{TokLt, "<"},
		{TokIdent, "g"},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, e := range expected {
		if tokens[i].Type != e.typ || tokens[i].Value != e.val {
			t.Errorf("token %d: expected (%d, %q), got (%d, %q)",
				i, e.typ, e.val, tokens[i].Type, tokens[i].Value)
		}
	}
}

func TestTokenizeImportStatement(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, `import "lib/utils.os";`)
	expected := []struct {
		typ TokenType
		val string
	}{
		{TokImport, "import"},
		{TokString, "lib/utils.os"},
		{TokSemicolon, ";"},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, e := range expected {
		if tokens[i].Type != e.typ || tokens[i].Value != e.val {
			t.Errorf("token %d: expected (%d, %q), got (%d, %q)",
				i, e.typ, e.val, tokens[i].Type, tokens[i].Value)
		}
	}
}

func TestTokenizeWhileLoop(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, `while (i < 10) { i = i + 1; }`)
	expected := []struct {
		typ TokenType
		val string
	}{
		{TokWhile, "while"},
		{TokLParen, "("},
		{TokIdent, "i"},
		{TokLt, "<"},
		{TokNumber, "10"},
		{TokRParen, ")"},
		{TokLBrace, "{"},
		{TokIdent, "i"},
		{TokEquals, "="},
		{TokIdent, "i"},
		{TokPlus, "+"},
		{TokNumber, "1"},
		{TokSemicolon, ";"},
		{TokRBrace, "}"},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, e := range expected {
		if tokens[i].Type != e.typ || tokens[i].Value != e.val {
			t.Errorf("token %d: expected (%d, %q), got (%d, %q)",
				i, e.typ, e.val, tokens[i].Type, tokens[i].Value)
		}
	}
}

// ---------------------------------------------------------------------------
// Test: EOF token always present and last
// ---------------------------------------------------------------------------
func TestEOFAlwaysLast(t *testing.T) {
	inputs := []string{
		"",
		"42",
		"let x = 1;",
		"// comment only",
		"   ",
	}
	for _, input := range inputs {
		tokens := mustTokenize(t, input)
		last := tokens[len(tokens)-1]
		if last.Type != TokEOF {
			t.Errorf("for input %q: expected last token to be EOF, got %d", input, last.Type)
		}
	}
}
