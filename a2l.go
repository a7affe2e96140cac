// Package a2l parses ASAM MCD-2 MC (A2L) calibration description
// files: the lexer, grammar parser, embedded A2ML type-grammar parser,
// and schema-driven IF_DATA interpreter are internal; this file is
// the thin public facade over them, in the same spirit as a root
// library file that wires its internal packages together and exposes
// nothing else.
package a2l

import (
	"github.com/spf13/afero"

	"github.com/a2l-go/a2l/internal/ast"
	"github.com/a2l-go/a2l/internal/lexer"
	"github.com/a2l-go/a2l/internal/parser"
	"github.com/a2l-go/a2l/internal/source"
)

// Parse parses src as a complete A2L document. Any "/include" it
// contains is resolved against includeSearchPaths on the real
// filesystem; overrides lets a caller substitute its own Node
// implementation for one or more kind names (nil uses the built-in
// node for every kind).
func Parse(src string, includeSearchPaths []string, overrides map[string]ast.NodeFactory) (*ast.AST, error) {
	const rootPath = "<source>"
	mem := afero.NewMemMapFs()
	if err := afero.WriteFile(mem, rootPath, []byte(src), 0o644); err != nil {
		return nil, err
	}
	fs := afero.NewCopyOnWriteFs(afero.NewOsFs(), mem)
	return ParseFile(fs, rootPath, includeSearchPaths, overrides)
}

// ParseFile parses the file at rootPath on fs, resolving "/include"
// against includeSearchPaths on the same fs. Callers that want
// includes resolved against an in-memory or otherwise virtual
// filesystem (for tests, or for sandboxing) construct fs themselves;
// Parse is the convenience entry point for real-filesystem includes.
func ParseFile(fs afero.Fs, rootPath string, includeSearchPaths []string, overrides map[string]ast.NodeFactory) (*ast.AST, error) {
	unified, pm, err := source.Load(fs, rootPath, includeSearchPaths)
	if err != nil {
		return nil, err
	}
	toks, err := lexer.Lex(unified, pm)
	if err != nil {
		return nil, err
	}
	return parser.Parse(toks, overrides)
}
