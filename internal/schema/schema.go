// Package schema holds the static, compiled-in A2L keyword tree: one
// descriptor per block keyword, consulted by internal/parser, which is
// otherwise a single generic block-parsing function driven entirely by
// this table.
package schema

// FieldKind is the scalar shape a positional field, singleton value,
// or counted-group element coerces to.
type FieldKind int

const (
	FIdent FieldKind = iota
	FString
	FInt
	FFloat
)

// PositionalField is one mandatory, fixed-order scalar attribute of a
// block, read immediately after the block keyword.
type PositionalField struct {
	Attr string
	Kind FieldKind
}

// CountedGroup describes a count-prefixed positional tail: an integer
// count N followed by N fixed-shape groups of scalars, e.g.
// COMPU_TAB's {InVal OutVal} pairs or COMPU_VTAB_RANGE's
// {InValMin InValMax OutVal} triples.
type CountedGroup struct {
	CountAttr string
	GroupAttr string
	Shape     []FieldKind
}

// SingletonSpec describes an optional, at-most-once block attribute:
// either a nested /begin...{/end block (Block == true, Kind names the
// nested schema), a scalar tuple read immediately after the keyword
// (Flag == false, Block == false), or a terminal flag keyword whose
// mere presence sets the attribute to the keyword string (Flag ==
// true). NamedFields, when non-empty, names each Fields[i] so the
// value is exposed as an ast.NamedScalarGroup keyed by name rather
// than a plain tuple, the way COEFFS binds six floats to a..f.
type SingletonSpec struct {
	Keyword     string
	Attr        string
	Block       bool
	Kind        string
	Flag        bool
	Fields      []FieldKind
	NamedFields []string
}

// RepeatableSpec describes a zero-or-more nested block attribute,
// preserved in parse order.
type RepeatableSpec struct {
	Keyword string
	Attr    string
	Kind    string
}

// KindSchema is one A2L block keyword's full descriptor.
type KindSchema struct {
	Name         string
	Positional   []PositionalField
	CountedGroup *CountedGroup

	Singletons     map[string]SingletonSpec
	SingletonOrder []string

	Repeatables     map[string]RepeatableSpec
	RepeatableOrder []string

	// A2ML and IfData mark a block as accepting the two specially
	// handled nested blocks whose content is not read via the generic
	// positional/singleton/repeatable loop at all.
	A2ML   bool
	IfData bool
}

// Table is the compiled-in set of supported A2L block kinds, keyed by
// keyword.
var Table = map[string]KindSchema{}

func register(k KindSchema) {
	Table[k.Name] = k
}

// Lookup returns the schema for keyword, and whether it is known.
func Lookup(keyword string) (KindSchema, bool) {
	k, ok := Table[keyword]
	return k, ok
}
