// Package testutil provides shared test helpers for OScript Go tests.
package testutil

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// WriteTree writes a set of relative path -> source pairs under dir,
// creating parent directories as needed.
func WriteTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, src := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

// DecodeArtifact strips the OEXEC tag, gunzips the payload, and decodes the
// JSON document inside an executable artifact.
func DecodeArtifact(t *testing.T, artifact []byte) map[string]any {
	t.Helper()
	const magic = "OEXEC"
	if len(artifact) < len(magic) || string(artifact[:len(magic)]) != magic {
		t.Fatalf("artifact does not start with %q: got %q", magic, artifact[:min(len(artifact), 8)])
	}
	zr, err := gzip.NewReader(bytes.NewReader(artifact[len(magic):]))
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer zr.Close()
	payload, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("gunzip: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		t.Fatalf("decode artifact JSON: %v", err)
	}
	return doc
}

// ProgramStatements extracts the top-level statement list from a decoded
// artifact document.
func ProgramStatements(t *testing.T, doc map[string]any) []any {
	t.Helper()
	if typ, _ := doc["type"].(string); typ != "Program" {
		t.Fatalf("artifact root type = %v, want Program", doc["type"])
	}
	stmts, ok := doc["statements"].([]any)
	if !ok {
		t.Fatalf("artifact root has no statements array")
	}
	return stmts
}
