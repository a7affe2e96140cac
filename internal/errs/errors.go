// Package errs defines the error model shared by every parsing stage:
// lexing, A2L grammar parsing, A2ML grammar parsing, and IF_DATA
// interpretation. Every error carries a Position so the caller can
// report file, line and column without re-deriving them. A root file
// that cannot be read has no source position and reports the zero
// Position.
package errs

import "fmt"

// Position identifies a byte in source text by file, line and column.
// Line and Column are 1-based and refer to the file that produced the
// token; Offset is the 0-based byte offset into the include-spliced
// virtual source built by internal/source.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// LexerError reports an unrecognized byte or malformed literal.
type LexerError struct {
	Pos     Position
	Message string
}

func (e LexerError) Error() string {
	return fmt.Sprintf("lexer error at %s: %s", e.Pos, e.Message)
}

// FormatError reports an A2L grammar violation: missing or extra
// token, unbalanced /begin.../end, duplicate singleton, wrong scalar
// kind.
type FormatError struct {
	Pos     Position
	Message string
}

func (e FormatError) Error() string {
	return fmt.Sprintf("format error at %s: %s", e.Pos, e.Message)
}

// A2mlFormatError reports a violation of the A2ML type grammar itself
// (inside /begin A2ML ... /end A2ML).
type A2mlFormatError struct {
	Pos     Position
	Message string
}

func (e A2mlFormatError) Error() string {
	return fmt.Sprintf("A2ML format error at %s: %s", e.Pos, e.Message)
}

// SchemaError reports IF_DATA content that does not conform to the
// A2ML schema declared for the enclosing module.
type SchemaError struct {
	Pos     Position
	Message string
}

func (e SchemaError) Error() string {
	return fmt.Sprintf("schema error at %s: %s", e.Pos, e.Message)
}

// IncludeNotFound reports a /include directive whose target could not
// be located in any search path.
type IncludeNotFound struct {
	Pos  Position
	Path string
}

func (e IncludeNotFound) Error() string {
	return fmt.Sprintf("include error at %s: file %q not found in any search path", e.Pos, e.Path)
}

// IncludeCycle reports a /include directive that would re-include a
// file already open on the current inclusion stack.
type IncludeCycle struct {
	Pos  Position
	Path string
}

func (e IncludeCycle) Error() string {
	return fmt.Sprintf("include error at %s: cyclic include of %q", e.Pos, e.Path)
}
