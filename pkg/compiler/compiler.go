// Package compiler implements the OScript module linker and artifact writer.
//
// Compile parses the entry file and, depth-first, every file it imports,
// splicing imported statements ahead of the statements of whichever file
// imported them. The merged program is serialized to JSON, gzip-compressed,
// prefixed with the OEXEC tag, and written through the file store.
package compiler

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/oscript-lang/oscript/pkg/ast"
	"github.com/oscript-lang/oscript/pkg/diagnostics"
	"github.com/oscript-lang/oscript/pkg/filestore"
	"github.com/oscript-lang/oscript/pkg/parser"
)

// Magic is the 5-byte ASCII tag prefixed to every artifact. It is a
// sniffable marker only, not a validity guarantee.
const Magic = "OEXEC"

// Result is the structured outcome of a Compile call. Compile never lets a
// failure escape as an error or panic; every internal failure becomes a
// Result with Success false.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Compiler links multi-file programs through a file store.
type Compiler struct {
	store filestore.Store
}

// New creates a Compiler reading and writing through store.
func New(store filestore.Store) *Compiler {
	return &Compiler{store: store}
}

// compileError aborts linking; it is caught at the Compile boundary.
type compileError struct {
	message string
}

func (e *compileError) Error() string {
	return e.message
}

// Compile links the module graph rooted at entryPath and writes the
// artifact to outputPath. No partial artifact is ever written: the single
// output write happens only after the whole graph has linked.
func (c *Compiler) Compile(entryPath, outputPath string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Success: false, Message: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	entry, err := resolveEntry(entryPath)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}

	// The visited set lives for exactly one Compile call.
	ld := &linker{store: c.store, visited: map[string]bool{entry: true}}

	stmts, err := ld.linkFile(entry)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}

	merged := &ast.Program{Statements: stmts}
	artifact, err := Encode(merged)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("failed to encode program: %s", err)}
	}

	if !c.store.WriteFile(outputPath, artifact) {
		return Result{Success: false, Message: fmt.Sprintf("failed to write output file '%s'", outputPath)}
	}

	return Result{Success: true, Message: fmt.Sprintf("compiled '%s' to '%s'", entryPath, outputPath)}
}

type linker struct {
	store   filestore.Store
	visited map[string]bool
}

// linkFile parses path and returns its linked statement list: the merged
// statements of its imports (depth-first, in order of appearance) followed
// by its own non-import statements. Already-visited paths are skipped
// silently, which makes diamond imports and cycles safe.
func (ld *linker) linkFile(path string) ([]ast.Stmt, error) {
	source, ok := ld.store.ReadFile(path)
	if !ok {
		return nil, &compileError{message: fmt.Sprintf("cannot read file '%s'", path)}
	}

	program, diags := parser.Parse(source, path)
	if len(diags) > 0 {
		return nil, &compileError{message: fmt.Sprintf("parse error in '%s': %s", path, diagnostics.FormatDiagnostics(diags, true))}
	}

	var merged []ast.Stmt
	var own []ast.Stmt
	for _, stmt := range program.Statements {
		imp, isImport := stmt.(*ast.ImportStatement)
		if !isImport {
			own = append(own, stmt)
			continue
		}

		// Import paths resolve against the importing file's own directory.
		target := filepath.Clean(filepath.Join(filepath.Dir(path), imp.Path))
		if ld.visited[target] {
			continue
		}
		ld.visited[target] = true

		sub, err := ld.linkFile(target)
		if err != nil {
			return nil, err
		}
		merged = append(merged, sub...)
	}

	return append(merged, own...), nil
}

func resolveEntry(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &compileError{message: fmt.Sprintf("cannot resolve entry path '%s': %s", path, err)}
	}
	return abs, nil
}

// Encode serializes a program into artifact bytes: the 5-byte Magic tag
// concatenated directly with the gzip-compressed UTF-8 JSON rendering.
// There is no length prefix, version, or checksum.
func Encode(program *ast.Program) ([]byte, error) {
	jsonBytes, err := json.Marshal(program)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(Magic)
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(jsonBytes); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
