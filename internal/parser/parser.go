// Package parser implements the A2L grammar parser: a single
// table-driven recursive-descent block reader over internal/schema's
// keyword table, plus the file-scope top-level loop for
// A2ML_VERSION/ASAP2_VERSION/PROJECT. It delegates to internal/a2ml
// for "/begin A2ML" content and to internal/ifdata for "/begin
// IF_DATA" content — neither of those can be expressed as entries in
// the same static schema table, since one parses a type grammar and
// the other is driven by the result.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a2l-go/a2l/internal/a2ml"
	"github.com/a2l-go/a2l/internal/ast"
	"github.com/a2l-go/a2l/internal/errs"
	"github.com/a2l-go/a2l/internal/ifdata"
	"github.com/a2l-go/a2l/internal/lexer"
	"github.com/a2l-go/a2l/internal/schema"
)

// Parse consumes the full token stream and produces the AST. toks
// must end with a single EOF token, as produced by lexer.Lex.
func Parse(toks []lexer.Token, overrides map[string]ast.NodeFactory) (*ast.AST, error) {
	c := &cursor{toks: toks, overrides: overrides}
	out := &ast.AST{}
	seenA2mlVersion, seenAsap2Version, seenProject := false, false, false

	for {
		tok := c.peek()
		if tok.Kind == lexer.EOF {
			return out, nil
		}

		switch {
		case tok.Lexeme == "A2ML_VERSION":
			if seenA2mlVersion {
				return nil, errs.FormatError{Pos: tok.Pos, Message: "duplicate A2ML_VERSION"}
			}
			seenA2mlVersion = true
			vp, err := c.parseVersionPair()
			if err != nil {
				return nil, err
			}
			out.A2mlVersion = vp

		case tok.Lexeme == "ASAP2_VERSION":
			if seenAsap2Version {
				return nil, errs.FormatError{Pos: tok.Pos, Message: "duplicate ASAP2_VERSION"}
			}
			seenAsap2Version = true
			vp, err := c.parseVersionPair()
			if err != nil {
				return nil, err
			}
			out.Asap2Version = vp

		case tok.Kind == lexer.BeginBlock:
			beginPos := tok.Pos
			c.advance()
			kwTok := c.peek()
			if kwTok.Lexeme != "PROJECT" {
				return nil, errs.FormatError{Pos: kwTok.Pos, Message: "expected PROJECT at file scope, found " + kwTok.Lexeme}
			}
			if seenProject {
				return nil, errs.FormatError{Pos: beginPos, Message: "duplicate PROJECT"}
			}
			seenProject = true
			c.advance()
			node, err := c.parseBlock("PROJECT", beginPos)
			if err != nil {
				return nil, err
			}
			out.Project = node

		default:
			return nil, errs.FormatError{Pos: tok.Pos, Message: "unexpected token at file scope: " + tok.Lexeme}
		}
	}
}

type cursor struct {
	toks      []lexer.Token
	pos       int
	overrides map[string]ast.NodeFactory
}

func (c *cursor) peek() lexer.Token {
	return c.toks[c.pos]
}

func (c *cursor) advance() lexer.Token {
	tok := c.toks[c.pos]
	if c.pos < len(c.toks)-1 {
		c.pos++
	}
	return tok
}

func (c *cursor) parseVersionPair() (*ast.VersionPair, error) {
	c.advance() // the directive keyword itself
	vTok := c.peek()
	v, err := coerceToken(vTok, schema.FInt)
	if err != nil {
		return nil, errs.FormatError{Pos: vTok.Pos, Message: "expected version number"}
	}
	c.advance()
	uTok := c.peek()
	u, err := coerceToken(uTok, schema.FInt)
	if err != nil {
		return nil, errs.FormatError{Pos: uTok.Pos, Message: "expected upgrade number"}
	}
	c.advance()
	return &ast.VersionPair{VersionNo: int(v.(int64)), UpgradeNo: int(u.(int64))}, nil
}

// parseBlock parses one block's body. It assumes the caller has
// already consumed "/begin" and the keyword identifier; beginPos is
// the position of the "/begin" token.
func (c *cursor) parseBlock(kw string, beginPos errs.Position) (*ast.Node, error) {
	sc, ok := schema.Lookup(kw)
	if !ok {
		return nil, errs.FormatError{Pos: beginPos, Message: "unknown block keyword " + kw}
	}
	node := ast.Make(c.overrides, kw, beginPos)

	for _, f := range sc.Positional {
		tok := c.peek()
		val, err := coerceToken(tok, f.Kind)
		if err != nil {
			return nil, errs.FormatError{Pos: tok.Pos, Message: fmt.Sprintf("%s.%s: %v", kw, f.Attr, err)}
		}
		c.advance()
		node.SetPositional(f.Attr, val)
	}

	if sc.CountedGroup != nil {
		if err := c.parseCountedGroup(kw, sc.CountedGroup, node); err != nil {
			return nil, err
		}
	}

	seenSingleton := map[string]bool{}
	seenA2ml := false

	for {
		tok := c.peek()

		switch {
		case tok.Kind == lexer.EndBlock:
			c.advance()
			endTok := c.peek()
			if endTok.Lexeme != kw {
				return nil, errs.FormatError{Pos: endTok.Pos, Message: fmt.Sprintf("mismatched /end %s, expected /end %s", endTok.Lexeme, kw)}
			}
			c.advance()
			return node, nil

		case tok.Kind == lexer.EOF:
			return nil, errs.FormatError{Pos: tok.Pos, Message: "unexpected end of input inside " + kw}

		case tok.Kind == lexer.BeginBlock:
			nestedBeginPos := tok.Pos
			c.advance()
			nameTok := c.peek()

			switch {
			case sc.A2ML && nameTok.Lexeme == "A2ML":
				if seenA2ml {
					return nil, errs.FormatError{Pos: nestedBeginPos, Message: "duplicate A2ML block"}
				}
				seenA2ml = true
				c.advance()
				bodyTok := c.peek()
				if bodyTok.Kind != lexer.A2mlContent {
					return nil, errs.FormatError{Pos: bodyTok.Pos, Message: "missing A2ML block body"}
				}
				c.advance()
				a2mlSchema, err := a2ml.Parse(bodyTok.Lexeme, bodyTok.Pos)
				if err != nil {
					return nil, err
				}
				if err := c.expectEnd("A2ML"); err != nil {
					return nil, err
				}
				node.SetA2ml(a2mlSchema, strings.TrimSpace(bodyTok.Lexeme))

			case sc.IfData && nameTok.Lexeme == "IF_DATA":
				c.advance()
				a2mlSchema := node.A2mlSchema()
				if a2mlSchema == nil {
					return nil, errs.SchemaError{Pos: nestedBeginPos, Message: "IF_DATA with no preceding A2ML schema in this module"}
				}
				start := c.pos
				val, newPos, err := ifdata.Interpret(a2mlSchema, c.toks, c.pos)
				if err != nil {
					return nil, err
				}
				c.pos = newPos
				if next := c.peek(); next.Kind != lexer.EndBlock {
					return nil, errs.SchemaError{Pos: next.Pos, Message: "content not covered by the IF_DATA schema: " + next.Lexeme}
				}
				if err := c.expectEnd("IF_DATA"); err != nil {
					return nil, err
				}
				node.AppendIfData(ast.IfData{Raw: renderTokens(c.toks[start:newPos]), Value: val})

			default:
				childKw := nameTok.Lexeme
				if spec, ok := sc.Singletons[childKw]; ok && spec.Block {
					if seenSingleton[childKw] {
						return nil, errs.FormatError{Pos: nestedBeginPos, Message: "duplicate " + childKw}
					}
					seenSingleton[childKw] = true
					c.advance()
					child, err := c.parseBlock(spec.Kind, nestedBeginPos)
					if err != nil {
						return nil, err
					}
					node.SetSingleton(spec.Attr, child)
				} else if spec, ok := sc.Repeatables[childKw]; ok {
					c.advance()
					child, err := c.parseBlock(spec.Kind, nestedBeginPos)
					if err != nil {
						return nil, err
					}
					node.AppendRepeatable(spec.Attr, child)
				} else {
					return nil, errs.FormatError{Pos: nestedBeginPos, Message: "unexpected nested block " + childKw + " inside " + kw}
				}
			}

		default:
			kwLex := tok.Lexeme
			spec, ok := sc.Singletons[kwLex]
			if !ok || spec.Block {
				return nil, errs.FormatError{Pos: tok.Pos, Message: "unexpected token " + kwLex + " inside " + kw}
			}
			if seenSingleton[kwLex] {
				return nil, errs.FormatError{Pos: tok.Pos, Message: "duplicate " + kwLex}
			}
			seenSingleton[kwLex] = true
			c.advance()
			if spec.Flag {
				node.SetSingleton(spec.Attr, spec.Keyword)
				continue
			}
			vals, err := c.readScalarTuple(kw, spec.Keyword, spec.Fields)
			if err != nil {
				return nil, err
			}
			switch {
			case len(spec.NamedFields) > 0:
				node.SetSingleton(spec.Attr, ast.NewNamedScalarGroup(spec.NamedFields, vals))
			case len(vals) == 1:
				node.SetSingleton(spec.Attr, vals[0])
			default:
				node.SetSingleton(spec.Attr, vals)
			}
		}
	}
}

func (c *cursor) parseCountedGroup(kw string, cg *schema.CountedGroup, node *ast.Node) error {
	countTok := c.peek()
	countVal, err := coerceToken(countTok, schema.FInt)
	if err != nil {
		return errs.FormatError{Pos: countTok.Pos, Message: kw + "." + cg.CountAttr + ": " + err.Error()}
	}
	c.advance()
	n := int(countVal.(int64))

	rows := make([]any, 0, n)
	for i := 0; i < n; i++ {
		row := make([]any, len(cg.Shape))
		for j, fk := range cg.Shape {
			tok := c.peek()
			val, err := coerceToken(tok, fk)
			if err != nil {
				return errs.FormatError{Pos: tok.Pos, Message: fmt.Sprintf("%s.%s[%d]: %v", kw, cg.GroupAttr, i, err)}
			}
			c.advance()
			row[j] = val
		}
		rows = append(rows, row)
	}
	node.SetGroup(cg.GroupAttr, rows)
	return nil
}

func (c *cursor) readScalarTuple(kw, keyword string, fields []schema.FieldKind) ([]any, error) {
	vals := make([]any, len(fields))
	for i, fk := range fields {
		tok := c.peek()
		val, err := coerceToken(tok, fk)
		if err != nil {
			return nil, errs.FormatError{Pos: tok.Pos, Message: fmt.Sprintf("%s.%s: %v", kw, keyword, err)}
		}
		c.advance()
		vals[i] = val
	}
	return vals, nil
}

func (c *cursor) expectEnd(kw string) error {
	tok := c.peek()
	if tok.Kind != lexer.EndBlock {
		return errs.FormatError{Pos: tok.Pos, Message: "expected /end " + kw}
	}
	c.advance()
	nameTok := c.peek()
	if nameTok.Lexeme != kw {
		return errs.FormatError{Pos: nameTok.Pos, Message: "mismatched /end " + nameTok.Lexeme + ", expected /end " + kw}
	}
	c.advance()
	return nil
}

// renderTokens flattens a token span back into parseable source text.
// String lexemes are re-wrapped in quotes verbatim (A2L strings have
// no escape processing, so wrapping alone round-trips them).
func renderTokens(toks []lexer.Token) string {
	var b strings.Builder
	for _, tok := range toks {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if tok.Kind == lexer.String {
			b.WriteByte('"')
			b.WriteString(tok.Lexeme)
			b.WriteByte('"')
		} else {
			b.WriteString(tok.Lexeme)
		}
	}
	return b.String()
}

func coerceToken(tok lexer.Token, kind schema.FieldKind) (any, error) {
	switch kind {
	case schema.FIdent:
		if tok.Kind == lexer.Ident || tok.Kind == lexer.Keyword {
			return tok.Lexeme, nil
		}
	case schema.FString:
		if tok.Kind == lexer.String {
			return tok.Lexeme, nil
		}
	case schema.FInt:
		switch tok.Kind {
		case lexer.Int:
			n, err := strconv.ParseInt(tok.Lexeme, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed integer literal %q", tok.Lexeme)
			}
			return n, nil
		case lexer.Float:
			f, err := strconv.ParseFloat(tok.Lexeme, 64)
			if err == nil && f == float64(int64(f)) {
				return int64(f), nil
			}
		}
	case schema.FFloat:
		switch tok.Kind {
		case lexer.Float:
			f, err := strconv.ParseFloat(tok.Lexeme, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed float literal %q", tok.Lexeme)
			}
			return f, nil
		case lexer.Int:
			n, err := strconv.ParseInt(tok.Lexeme, 0, 64)
			if err == nil {
				return float64(n), nil
			}
		}
	}
	return nil, fmt.Errorf("expected %s, found %q", fieldKindName(kind), tok.Lexeme)
}

func fieldKindName(kind schema.FieldKind) string {
	switch kind {
	case schema.FIdent:
		return "an identifier"
	case schema.FString:
		return "a string"
	case schema.FInt:
		return "an integer"
	case schema.FFloat:
		return "a float"
	default:
		return "a value"
	}
}
