// Package ast implements the AST model: a single uniform Node type
// whose attribute set is described by a static per-kind
// schema.KindSchema rather than by one Go type per A2L keyword.
// Attribute access and Properties resolve through that descriptor.
package ast

import (
	"github.com/a2l-go/a2l/internal/a2ml"
	"github.com/a2l-go/a2l/internal/errs"
	"github.com/a2l-go/a2l/internal/ifdata"
	"github.com/a2l-go/a2l/internal/schema"
)

// NodeFactory constructs a Node for kind at pos. The root Parse
// operation accepts a map of these keyed by kind name so callers can
// substitute their own node construction; NewNode is the default.
type NodeFactory func(kind string, pos errs.Position) *Node

// Node is a tagged record: a kind name, its positional attribute
// values, its singleton attributes keyed by name, and its repeatable
// attributes as ordered child sequences. Every attribute the node's
// schema declares is present (positional fields always populated,
// optional singletons/repeatables present as empty when absent).
type Node struct {
	Kind   string
	Pos    errs.Position
	Schema schema.KindSchema

	positional  map[string]any
	singletons  map[string]any
	repeatables map[string][]*Node
	groups      map[string][]any

	a2mlSchema *a2ml.Schema
	a2mlRaw    string
	ifData     []IfData
}

// IfData is one interpreted "/begin IF_DATA ... /end IF_DATA" block of
// a module: the schema-conformant value produced by internal/ifdata,
// plus the token-faithful raw content text Dump re-emits.
type IfData struct {
	Raw   string
	Value ifdata.Value
}

// NewNode is the default NodeFactory.
func NewNode(kind string, pos errs.Position) *Node {
	sc, _ := schema.Lookup(kind)
	return &Node{
		Kind:        kind,
		Pos:         pos,
		Schema:      sc,
		positional:  map[string]any{},
		singletons:  map[string]any{},
		repeatables: map[string][]*Node{},
		groups:      map[string][]any{},
	}
}

// Make applies overrides (which may be nil) to construct a Node for
// kind, falling back to NewNode when no override is registered.
func Make(overrides map[string]NodeFactory, kind string, pos errs.Position) *Node {
	if f, ok := overrides[kind]; ok {
		return f(kind, pos)
	}
	return NewNode(kind, pos)
}

func (n *Node) SetPositional(attr string, v any) { n.positional[attr] = v }
func (n *Node) SetSingleton(attr string, v any)  { n.singletons[attr] = v }
func (n *Node) SetGroup(attr string, v []any)    { n.groups[attr] = v }

func (n *Node) AppendRepeatable(attr string, child *Node) {
	n.repeatables[attr] = append(n.repeatables[attr], child)
}

// SetA2ml stores the schema parsed from this node's "/begin A2ML"
// block together with its raw content text.
func (n *Node) SetA2ml(s *a2ml.Schema, raw string) {
	n.a2mlSchema = s
	n.a2mlRaw = raw
}

// A2mlSchema returns the schema declared by this node's A2ML block, or
// nil when the node has none.
func (n *Node) A2mlSchema() *a2ml.Schema { return n.a2mlSchema }

// AppendIfData appends one interpreted IF_DATA block, preserving
// parse order.
func (n *Node) AppendIfData(d IfData) { n.ifData = append(n.ifData, d) }

// IfData returns this node's interpreted IF_DATA blocks in parse
// order.
func (n *Node) IfData() []IfData { return n.ifData }

// Repeatable returns the ordered child sequence for attr, or nil.
func (n *Node) Repeatable(attr string) []*Node { return n.repeatables[attr] }

// Attribute returns the value of the named attribute, resolving
// through positional fields, counted groups, singletons, repeatables
// and the a2ml/if_data attrs in that order. A declared-but-absent
// optional singleton returns nil; a declared-but-empty repeatable
// returns an empty slice.
func (n *Node) Attribute(name string) any {
	if v, ok := n.positional[name]; ok {
		return v
	}
	if cg := n.Schema.CountedGroup; cg != nil {
		rows := n.groups[cg.GroupAttr]
		if name == cg.CountAttr {
			return len(rows)
		}
		if name == cg.GroupAttr {
			return rows
		}
	}
	if v, ok := n.singletons[name]; ok {
		return v
	}
	if v, ok := n.repeatables[name]; ok {
		return v
	}
	if name == "a2ml" && n.Schema.A2ML {
		if n.a2mlSchema == nil {
			return nil
		}
		return n.a2mlSchema
	}
	if name == "if_data" && n.Schema.IfData {
		return n.ifData
	}
	for _, spec := range n.Schema.Singletons {
		if spec.Attr == name {
			return nil
		}
	}
	for _, spec := range n.Schema.Repeatables {
		if spec.Attr == name {
			return []*Node{}
		}
	}
	return nil
}

// Properties returns the ordered list of attribute names this node
// declares: positional fields, counted-group attrs, the a2ml/if_data
// attrs for kinds that carry them, then singletons and repeatables in
// schema order.
func (n *Node) Properties() []string {
	var props []string
	for _, f := range n.Schema.Positional {
		props = append(props, f.Attr)
	}
	if n.Schema.CountedGroup != nil {
		props = append(props, n.Schema.CountedGroup.CountAttr, n.Schema.CountedGroup.GroupAttr)
	}
	if n.Schema.A2ML {
		props = append(props, "a2ml")
	}
	if n.Schema.IfData {
		props = append(props, "if_data")
	}
	for _, kw := range n.Schema.SingletonOrder {
		props = append(props, n.Schema.Singletons[kw].Attr)
	}
	for _, kw := range n.Schema.RepeatableOrder {
		props = append(props, n.Schema.Repeatables[kw].Attr)
	}
	return props
}

// NamedScalarGroup is the value of a singleton whose fixed-arity
// scalar tuple is exposed by name rather than by position, the way
// "COEFFS 0 1 2 3 4 5" binds six floats to a..f. It is not an ast.Node: it never
// appears in child traversal or FindByKind, since it carries no kind
// of its own, only named scalars.
type NamedScalarGroup struct {
	names  []string
	values map[string]any
}

// NewNamedScalarGroup pairs names with vals positionally, by index.
func NewNamedScalarGroup(names []string, vals []any) *NamedScalarGroup {
	g := &NamedScalarGroup{names: names, values: make(map[string]any, len(names))}
	for i, name := range names {
		if i < len(vals) {
			g.values[name] = vals[i]
		}
	}
	return g
}

// Attribute returns the named scalar, or nil if name isn't one of g's
// declared names.
func (g *NamedScalarGroup) Attribute(name string) any { return g.values[name] }

// Properties returns the declared names in binding order.
func (g *NamedScalarGroup) Properties() []string { return g.names }

// AST is the root container produced by a successful parse.
type AST struct {
	A2mlVersion  *VersionPair
	Asap2Version *VersionPair
	Project      *Node
}

// VersionPair is the value of the file-scope A2ML_VERSION and
// ASAP2_VERSION directives.
type VersionPair struct {
	VersionNo int
	UpgradeNo int
}

// FindByKind returns every descendant node whose kind equals kind, in
// preorder, visiting only declared child attributes (nested singleton
// and repeatable blocks) — never scalar fields, and never content
// inside /begin A2ML (which never becomes an ast.Node at all).
func (a *AST) FindByKind(kind string) []*Node {
	var out []*Node
	var visit func(n *Node)
	visit = func(n *Node) {
		if n == nil {
			return
		}
		if n.Kind == kind {
			out = append(out, n)
		}
		for _, kw := range n.Schema.SingletonOrder {
			spec := n.Schema.Singletons[kw]
			if !spec.Block {
				continue
			}
			if child, ok := n.singletons[spec.Attr].(*Node); ok {
				visit(child)
			}
		}
		for _, kw := range n.Schema.RepeatableOrder {
			spec := n.Schema.Repeatables[kw]
			for _, child := range n.repeatables[spec.Attr] {
				visit(child)
			}
		}
	}
	visit(a.Project)
	return out
}
