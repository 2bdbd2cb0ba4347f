// Package runtime provides the top-level OScript runtime orchestrator.
package runtime

import (
	"fmt"
	"strings"

	"github.com/oscript-lang/oscript/pkg/compiler"
	"github.com/oscript-lang/oscript/pkg/diagnostics"
	"github.com/oscript-lang/oscript/pkg/evaluator"
	"github.com/oscript-lang/oscript/pkg/filestore"
	"github.com/oscript-lang/oscript/pkg/formatter"
	"github.com/oscript-lang/oscript/pkg/parser"
)

// Runtime wires together the OScript components for program execution.
type Runtime struct {
	store filestore.Store
	sink  evaluator.Sink
}

// Option is a functional option for configuring the Runtime.
type Option func(*Runtime)

// WithStore sets the file store used for compilation.
func WithStore(s filestore.Store) Option {
	return func(rt *Runtime) {
		rt.store = s
	}
}

// WithOutput sets the sink that receives print output.
func WithOutput(sink evaluator.Sink) Option {
	return func(rt *Runtime) {
		rt.sink = sink
	}
}

// New creates a new Runtime with the given options.
// By default it reads files from disk and prints to stdout.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		store: filestore.NewDisk(),
		sink:  func(line string) { fmt.Println(line) },
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Run parses and executes a single-file OScript program.
func (rt *Runtime) Run(source, filename string) error {
	program, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return &DiagnosticError{Diagnostics: diags}
	}
	return evaluator.Interpret(program, rt.sink)
}

// Check parses an OScript program without executing it.
func (rt *Runtime) Check(source, filename string) []diagnostics.Diagnostic {
	_, diags := parser.Parse(source, filename)
	return diags
}

// Format parses and formats an OScript program.
func (rt *Runtime) Format(source, filename string) (string, error) {
	program, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return "", &DiagnosticError{Diagnostics: diags}
	}
	return formatter.Format(program), nil
}

// CompileFile links the module graph rooted at entryPath and writes the
// executable artifact to outputPath.
func (rt *Runtime) CompileFile(entryPath, outputPath string) compiler.Result {
	return compiler.New(rt.store).Compile(entryPath, outputPath)
}

// DiagnosticError wraps diagnostics as an error.
type DiagnosticError struct {
	Diagnostics []diagnostics.Diagnostic
}

func (e *DiagnosticError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return strings.Join(msgs, "; ")
}
