package ast

import (
	"iter"
	"strconv"
	"strings"

	"github.com/a2l-go/a2l/internal/schema"
)

// Lines yields a (depth, text) pair for every line of the canonical
// text rendering of the AST, in document order. The full text is
// never materialized before the first pair is produced: callers that
// only need the first few lines (or that abort early) do not pay for
// the rest.
func (a *AST) Lines() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		if a.Asap2Version != nil {
			if !yield(0, "ASAP2_VERSION "+strconv.Itoa(a.Asap2Version.VersionNo)+" "+strconv.Itoa(a.Asap2Version.UpgradeNo)) {
				return
			}
		}
		if a.A2mlVersion != nil {
			if !yield(0, "A2ML_VERSION "+strconv.Itoa(a.A2mlVersion.VersionNo)+" "+strconv.Itoa(a.A2mlVersion.UpgradeNo)) {
				return
			}
		}
		dumpNode(a.Project, 0, yield)
	}
}

// Dump renders the full text, joining Lines with lineEnding and
// prefixing each line with indentChar repeated indentSpaces*depth
// times.
func (a *AST) Dump(indentSpaces int, lineEnding, indentChar string) string {
	unit := strings.Repeat(indentChar, indentSpaces)
	var b strings.Builder
	first := true
	for depth, line := range a.Lines() {
		if !first {
			b.WriteString(lineEnding)
		}
		first = false
		if depth > 0 {
			b.WriteString(strings.Repeat(unit, depth))
		}
		b.WriteString(line)
	}
	return b.String()
}

// DumpDefault renders with the defaults of 4-space indent and "\n"
// line endings.
func (a *AST) DumpDefault() string {
	return a.Dump(4, "\n", " ")
}

func dumpNode(n *Node, depth int, yield func(int, string) bool) bool {
	if n == nil {
		return true
	}

	header := "/begin " + n.Kind
	if vals := positionalValues(n); len(vals) > 0 {
		header += " " + strings.Join(vals, " ")
	}
	if !yield(depth, header) {
		return false
	}

	if cg := n.Schema.CountedGroup; cg != nil {
		rows := n.groups[cg.GroupAttr]
		if !yield(depth+1, strconv.Itoa(len(rows))) {
			return false
		}
		for _, row := range rows {
			parts := scalarRowParts(cg.Shape, row)
			if !yield(depth+1, strings.Join(parts, " ")) {
				return false
			}
		}
	}

	if n.a2mlSchema != nil {
		if !yield(depth+1, "/begin A2ML") {
			return false
		}
		// The raw body keeps its original source text; only the
		// per-line leading whitespace is replaced by dump indentation.
		for _, line := range strings.Split(n.a2mlRaw, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !yield(depth+2, line) {
				return false
			}
		}
		if !yield(depth+1, "/end A2ML") {
			return false
		}
	}

	for _, kw := range n.Schema.SingletonOrder {
		spec := n.Schema.Singletons[kw]
		v, present := n.singletons[spec.Attr]
		if !present {
			continue
		}
		switch {
		case spec.Flag:
			if !yield(depth+1, spec.Keyword) {
				return false
			}
		case spec.Block:
			child, _ := v.(*Node)
			if !dumpNode(child, depth+1, yield) {
				return false
			}
		default:
			line := spec.Keyword
			if parts := scalarRowParts(spec.Fields, v); len(parts) > 0 {
				line += " " + strings.Join(parts, " ")
			}
			if !yield(depth+1, line) {
				return false
			}
		}
	}

	for _, d := range n.ifData {
		if !yield(depth+1, "/begin IF_DATA") {
			return false
		}
		if d.Raw != "" && !yield(depth+2, d.Raw) {
			return false
		}
		if !yield(depth+1, "/end IF_DATA") {
			return false
		}
	}

	for _, kw := range n.Schema.RepeatableOrder {
		spec := n.Schema.Repeatables[kw]
		for _, child := range n.repeatables[spec.Attr] {
			if !dumpNode(child, depth+1, yield) {
				return false
			}
		}
	}

	return yield(depth, "/end "+n.Kind)
}

// positionalValues renders a node's positional fields in schema order.
func positionalValues(n *Node) []string {
	if len(n.Schema.Positional) == 0 {
		return nil
	}
	out := make([]string, 0, len(n.Schema.Positional))
	for _, f := range n.Schema.Positional {
		out = append(out, formatScalar(f.Kind, n.positional[f.Attr]))
	}
	return out
}

// scalarRowParts renders a []FieldKind-shaped scalar tuple stored as
// []any. A single-field tuple is also accepted unwrapped, since
// SetSingleton callers pass a bare value for one-field singletons.
func scalarRowParts(shape []schema.FieldKind, v any) []string {
	if len(shape) == 0 || v == nil {
		return nil
	}
	var row []any
	switch val := v.(type) {
	case *NamedScalarGroup:
		row = make([]any, len(val.names))
		for i, name := range val.names {
			row[i] = val.values[name]
		}
	case []any:
		row = val
	default:
		row = []any{v}
	}
	out := make([]string, len(shape))
	for i, k := range shape {
		var val any
		if i < len(row) {
			val = row[i]
		}
		out[i] = formatScalar(k, val)
	}
	return out
}

func formatScalar(kind schema.FieldKind, v any) string {
	switch kind {
	case schema.FString:
		// A2L strings carry their bytes verbatim, with no escape
		// processing, so re-emission is plain quote wrapping.
		s, _ := v.(string)
		return `"` + s + `"`
	case schema.FIdent:
		s, _ := v.(string)
		return s
	case schema.FInt:
		switch n := v.(type) {
		case int64:
			return strconv.FormatInt(n, 10)
		case int:
			return strconv.Itoa(n)
		default:
			return "0"
		}
	case schema.FFloat:
		f, _ := v.(float64)
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	default:
		return ""
	}
}
