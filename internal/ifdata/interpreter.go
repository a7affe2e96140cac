package ifdata

import (
	"strconv"
	"strings"

	"github.com/a2l-go/a2l/internal/a2ml"
	"github.com/a2l-go/a2l/internal/errs"
	"github.com/a2l-go/a2l/internal/lexer"
)

// Interpret parses the token stream starting at pos (positioned at
// the IF_DATA tag identifier, i.e. just past the already-consumed
// "/begin IF_DATA" tokens) against the module schema's "IF_DATA"
// block, and returns the resulting Value together with the index of
// the first unconsumed token. The caller is responsible for then
// expecting "/end IF_DATA".
func Interpret(schema *a2ml.Schema, toks []lexer.Token, pos int) (Value, int, error) {
	blockType, ok := schema.BlockByTag("IF_DATA")
	if !ok {
		return Value{}, pos, errs.SchemaError{Pos: posAt(toks, pos), Message: `A2ML schema declares no "IF_DATA" block`}
	}
	val, next := Value{}, pos
	t, err := resolve(blockType.BlockType, schema)
	if err == nil {
		val, next, err = interpretType(t, schema, toks, pos)
	}
	// Errors raised with no token at hand (an undefined type reference,
	// content ending early) are attributed to the start of the content.
	if se, ok := err.(errs.SchemaError); ok && se.Pos == (errs.Position{}) {
		se.Pos = posAt(toks, pos)
		return Value{}, next, se
	}
	return val, next, err
}

func resolve(t *a2ml.Type, schema *a2ml.Schema) (*a2ml.Type, error) {
	if t.Tag != a2ml.TRef {
		return t, nil
	}
	named, ok := schema.Lookup(t.Ref)
	if !ok {
		return nil, errs.SchemaError{Message: "undefined A2ML type reference " + t.Ref}
	}
	return named, nil
}

func interpretType(t *a2ml.Type, schema *a2ml.Schema, toks []lexer.Token, pos int) (Value, int, error) {
	rt, err := resolve(t, schema)
	if err != nil {
		return Value{}, pos, err
	}
	switch rt.Tag {
	case a2ml.TPredefined:
		return interpretPredefined(rt, false, toks, pos)
	case a2ml.TEnum:
		return interpretEnum(rt, toks, pos)
	case a2ml.TStruct:
		return interpretStruct(rt, schema, toks, pos)
	case a2ml.TTaggedStruct:
		return interpretTaggedStruct(rt, schema, toks, pos)
	case a2ml.TTaggedUnion:
		return interpretTaggedUnion(rt, schema, toks, pos)
	default:
		return Value{}, pos, errs.SchemaError{Pos: posAt(toks, pos), Message: "unsupported A2ML type in IF_DATA position"}
	}
}

func interpretPredefined(t *a2ml.Type, isCharArray bool, toks []lexer.Token, pos int) (Value, int, error) {
	if pos >= len(toks) {
		return Value{}, pos, errs.SchemaError{Message: "unexpected end of IF_DATA content"}
	}
	tok := toks[pos]

	if isCharArray {
		switch tok.Kind {
		case lexer.String, lexer.Ident, lexer.Keyword:
			return Value{Kind: Scalar, Scalar: tok.Lexeme}, pos + 1, nil
		default:
			return Value{}, pos, errs.SchemaError{Pos: tok.Pos, Message: "expected string value for char array"}
		}
	}

	switch t.Predefined {
	case "float", "double":
		switch tok.Kind {
		case lexer.Float:
			f, _ := strconv.ParseFloat(tok.Lexeme, 64)
			return Value{Kind: Scalar, Scalar: f}, pos + 1, nil
		case lexer.Int:
			i, _ := strconv.ParseInt(tok.Lexeme, 0, 64)
			return Value{Kind: Scalar, Scalar: float64(i)}, pos + 1, nil
		default:
			return Value{}, pos, errs.SchemaError{Pos: tok.Pos, Message: "expected numeric value"}
		}
	default: // char, uchar, int, uint, long, ulong
		switch tok.Kind {
		case lexer.Int:
			i, _ := strconv.ParseInt(tok.Lexeme, 0, 64)
			return Value{Kind: Scalar, Scalar: i}, pos + 1, nil
		case lexer.Float:
			f, _ := strconv.ParseFloat(tok.Lexeme, 64)
			if f != float64(int64(f)) {
				return Value{}, pos, errs.SchemaError{Pos: tok.Pos, Message: "expected integer value"}
			}
			return Value{Kind: Scalar, Scalar: int64(f)}, pos + 1, nil
		default:
			return Value{}, pos, errs.SchemaError{Pos: tok.Pos, Message: "expected numeric value"}
		}
	}
}

func interpretEnum(t *a2ml.Type, toks []lexer.Token, pos int) (Value, int, error) {
	if pos >= len(toks) {
		return Value{}, pos, errs.SchemaError{Message: "unexpected end of IF_DATA content"}
	}
	tok := toks[pos]
	lexeme := strings.Trim(tok.Lexeme, `"`)
	for _, e := range t.Enumerators {
		if e.Name == lexeme {
			return Value{Kind: Scalar, Scalar: e.Name}, pos + 1, nil
		}
	}
	return Value{}, pos, errs.SchemaError{Pos: tok.Pos, Message: "value " + lexeme + " is not a member of this enum"}
}

// interpretStruct sequentially parses a struct's members. An
// anonymous (unnamed) nested struct or taggedstruct member splices
// its own items/fields directly into the result rather than nesting
// another Value, since it has no name of its own to nest under.
func interpretStruct(t *a2ml.Type, schema *a2ml.Schema, toks []lexer.Token, pos int) (Value, int, error) {
	v := newRecord()
	for _, m := range t.StructMembers {
		mt, err := resolve(m.Type, schema)
		if err != nil {
			return Value{}, pos, err
		}

		if m.ArraySize > 0 {
			if mt.Tag == a2ml.TPredefined && (mt.Predefined == "char" || mt.Predefined == "uchar") {
				val, next, err := interpretPredefined(mt, true, toks, pos)
				if err != nil {
					return Value{}, pos, err
				}
				v.Items = append(v.Items, val)
				pos = next
				continue
			}
			for i := 0; i < m.ArraySize; i++ {
				val, next, err := interpretType(mt, schema, toks, pos)
				if err != nil {
					return Value{}, pos, err
				}
				v.Items = append(v.Items, val)
				pos = next
			}
			continue
		}

		switch mt.Tag {
		case a2ml.TStruct:
			sub, next, err := interpretStruct(mt, schema, toks, pos)
			pos = next
			if err != nil {
				return Value{}, pos, err
			}
			if mt.Name == "" {
				v.Items = append(v.Items, sub.Items...)
				mergeFields(&v, sub)
			} else {
				v.Items = append(v.Items, sub)
			}
		case a2ml.TTaggedStruct:
			sub, next, err := interpretTaggedStruct(mt, schema, toks, pos)
			pos = next
			if err != nil {
				return Value{}, pos, err
			}
			if mt.Name == "" {
				mergeFields(&v, sub)
			} else {
				v.Items = append(v.Items, sub)
			}
		default:
			val, next, err := interpretType(mt, schema, toks, pos)
			if err != nil {
				return Value{}, pos, err
			}
			v.Items = append(v.Items, val)
			pos = next
		}
	}
	return v, pos, nil
}

func mergeFields(dst *Value, src Value) {
	for k, f := range src.Fields {
		dst.Fields[k] = f
	}
	for k, r := range src.Repeated {
		dst.Repeated[k] = r
	}
}

// interpretTaggedStruct repeatedly reads the next IDENT as a tag and
// parses the matching member's inner type, in whatever order the
// tags appear. It stops, without error, at the first token that does
// not name one of its members — the enclosing block's own /end check
// (or the enclosing struct's next member) surfaces any real mismatch.
func interpretTaggedStruct(t *a2ml.Type, schema *a2ml.Schema, toks []lexer.Token, pos int) (Value, int, error) {
	v := newRecord()
	for {
		tag, memberPos, ok := peekTag(toks, pos)
		if !ok {
			break
		}
		member, mIdx := findTaggedStructMember(t, tag)
		if mIdx < 0 {
			break
		}

		if member.Block {
			if toks[pos].Kind != lexer.BeginBlock {
				break
			}
			pos = memberPos // past "/begin" and the tag ident
			var val Value
			var err error
			if member.Inner != nil {
				val, pos, err = interpretType(member.Inner, schema, toks, pos)
				if err != nil {
					return Value{}, pos, err
				}
			}
			if pos >= len(toks) || toks[pos].Kind != lexer.EndBlock {
				return Value{}, pos, errs.SchemaError{Pos: posAt(toks, pos), Message: "expected /end " + tag}
			}
			pos++
			if pos >= len(toks) || toks[pos].Lexeme != tag {
				return Value{}, pos, errs.SchemaError{Pos: posAt(toks, pos), Message: "mismatched /end " + tag}
			}
			pos++
			val = withRecordDefaults(val)
			appendTagged(&v, tag, member.Repeatable, val)
			continue
		}

		if !isTagToken(toks[pos]) {
			break
		}
		pos = memberPos
		var val Value
		var err error
		if member.Inner != nil {
			val, pos, err = interpretType(member.Inner, schema, toks, pos)
			if err != nil {
				return Value{}, pos, err
			}
		}
		appendTagged(&v, tag, member.Repeatable, val)
	}
	return v, pos, nil
}

func withRecordDefaults(v Value) Value {
	if v.Fields == nil {
		v.Fields = map[string]Value{}
	}
	if v.Repeated == nil {
		v.Repeated = map[string][]Value{}
	}
	return v
}

func appendTagged(v *Value, tag string, repeatable bool, val Value) {
	if repeatable {
		v.Repeated[tag] = append(v.Repeated[tag], val)
		return
	}
	v.Fields[tag] = val
}

func findTaggedStructMember(t *a2ml.Type, tag string) (a2ml.TaggedStructMember, int) {
	for i, m := range t.TaggedStructMembers {
		if m.Tag == tag {
			return m, i
		}
	}
	return a2ml.TaggedStructMember{}, -1
}

// peekTag reports the tag identifier the parse head names — either a
// bare IDENT, or the IDENT following a "/begin" (for a block member)
// — and the token index where the member's own content begins.
func peekTag(toks []lexer.Token, pos int) (string, int, bool) {
	if pos >= len(toks) {
		return "", pos, false
	}
	if toks[pos].Kind == lexer.BeginBlock {
		if pos+1 >= len(toks) || !isTagToken(toks[pos+1]) {
			return "", pos, false
		}
		return toks[pos+1].Lexeme, pos + 2, true
	}
	if isTagToken(toks[pos]) {
		return toks[pos].Lexeme, pos + 1, true
	}
	return "", pos, false
}

// isTagToken reports whether tok can name an A2ML tag. Tags lex as
// Ident in general, but a tag that collides with an A2L reserved word
// (IF_DATA's own top-level "MODULE" arm being the canonical case)
// arrives re-classified as Keyword; both carry the tag in Lexeme.
func isTagToken(tok lexer.Token) bool {
	return tok.Kind == lexer.Ident || tok.Kind == lexer.Keyword
}

func interpretTaggedUnion(t *a2ml.Type, schema *a2ml.Schema, toks []lexer.Token, pos int) (Value, int, error) {
	if pos >= len(toks) || !isTagToken(toks[pos]) {
		return Value{}, pos, errs.SchemaError{Pos: posAt(toks, pos), Message: "expected a tag identifier"}
	}
	tag := toks[pos].Lexeme
	for _, m := range t.TaggedUnionMembers {
		if m.Tag == tag {
			val, next, err := interpretType(m.Type, schema, toks, pos+1)
			if err != nil {
				return Value{}, pos, err
			}
			v := newRecord()
			v.Fields[tag] = val
			return v, next, nil
		}
	}
	return Value{}, pos, errs.SchemaError{Pos: toks[pos].Pos, Message: "tag " + tag + " is not a member of this taggedunion"}
}

func posAt(toks []lexer.Token, pos int) errs.Position {
	if pos < len(toks) {
		return toks[pos].Pos
	}
	if len(toks) > 0 {
		return toks[len(toks)-1].Pos
	}
	return errs.Position{}
}
