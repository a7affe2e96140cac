// Package a2ml parses the A2ML type-definition mini-language found
// inside "/begin A2ML ... /end A2ML" blocks. Unlike the A2L grammar
// itself (hand-rolled in internal/parser, since its true driver is a
// runtime schema rather than a static grammar), A2ML's own grammar is
// small and genuinely fixed, so it is expressed declaratively with
// Participle struct tags and lowered to the semantic Type/Schema model
// in convert.go.
package a2ml

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var cstLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
	{Name: "Keyword", Pattern: `\b(block|struct|enum|taggedstruct|taggedunion|char|uchar|int|uint|long|ulong|float|double)\b`},
	{Name: "Int", Pattern: `[+-]?[0-9]+`},
	{Name: "String", Pattern: `"([^"\\]|\\.)*"`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[{}\[\]();,=*]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// File is the root CST node: a sequence of top-level declarations.
type File struct {
	Decls []*Decl `parser:"@@*"`
}

// Decl is either a block tag declaration or a named/anonymous type
// definition, per the "decl := type_def ';' | block ';'" production.
type Decl struct {
	Block *BlockDecl `parser:"(  \"block\" @@"`
	Type  *TypeDef   `parser:" | @@ ) \";\""`
}

// BlockDecl: 'block' STRING type_name.
type BlockDecl struct {
	Tag  string    `parser:"@String"`
	Type *TypeName `parser:"@@"`
}

// TypeDef is a top-level type definition; it excludes the bare IDENT
// reference form that TypeName allows.
type TypeDef struct {
	Predef       string           `parser:"  @(\"char\"|\"uchar\"|\"int\"|\"uint\"|\"long\"|\"ulong\"|\"float\"|\"double\")"`
	Struct       *StructDef       `parser:"| @@"`
	Enum         *EnumDef         `parser:"| @@"`
	TaggedStruct *TaggedStructDef `parser:"| @@"`
	TaggedUnion  *TaggedUnionDef  `parser:"| @@"`
}

// TypeName is a type reference appearing inside another declaration:
// any TypeDef form, or a bare IDENT naming a previously declared type.
type TypeName struct {
	Predef       string           `parser:"  @(\"char\"|\"uchar\"|\"int\"|\"uint\"|\"long\"|\"ulong\"|\"float\"|\"double\")"`
	Struct       *StructDef       `parser:"| @@"`
	Enum         *EnumDef         `parser:"| @@"`
	TaggedStruct *TaggedStructDef `parser:"| @@"`
	TaggedUnion  *TaggedUnionDef  `parser:"| @@"`
	Ref          string           `parser:"| @Ident"`
}

// StructDef: 'struct' [IDENT] '{' { type_name ['[' INT ']'] ';' } '}'.
type StructDef struct {
	Name    string          `parser:"\"struct\" @Ident?"`
	Members []*CSTStructMember `parser:"\"{\" @@* \"}\""`
}

type CSTStructMember struct {
	Type      *TypeName `parser:"@@"`
	ArraySize *int      `parser:"( \"[\" @Int \"]\" )? \";\""`
}

// EnumDef: 'enum' [IDENT] '{' enumerator { ',' enumerator } '}'.
type EnumDef struct {
	Name        string        `parser:"\"enum\" @Ident?"`
	Enumerators []*CSTEnumerator `parser:"\"{\" @@ ( \",\" @@ )* \"}\""`
}

type CSTEnumerator struct {
	Name  string `parser:"@String"`
	Value *int   `parser:"( \"=\" @Int )?"`
}

// TaggedStructDef: 'taggedstruct' [IDENT] '{' { ts_member ';' } '}'.
type TaggedStructDef struct {
	Name    string                `parser:"\"taggedstruct\" @Ident?"`
	Members []*CSTTaggedStructMember `parser:"\"{\" ( @@ \";\" )* \"}\""`
}

// TaggedStructMember: [ '(' ts_inner ')' '*' ] | ts_inner. Real files
// write a semicolon before the closing parenthesis of a repeated
// member ("(block ... };)*;"), so it is admitted there too.
type CSTTaggedStructMember struct {
	Repeated *TaggedStructInner `parser:"(  \"(\" @@ \";\"? \")\" \"*\""`
	Single   *TaggedStructInner `parser:" | @@ )"`
}

// TaggedStructInner: STRING [type_name] | 'block' STRING type_name.
type TaggedStructInner struct {
	Block *BlockTag   `parser:"  \"block\" @@"`
	Tag   *TaggedItem `parser:"| @@"`
}

type BlockTag struct {
	Tag  string    `parser:"@String"`
	Type *TypeName `parser:"@@"`
}

type TaggedItem struct {
	Tag  string    `parser:"@String"`
	Type *TypeName `parser:"@@?"`
}

// TaggedUnionDef: 'taggedunion' [IDENT] '{' { STRING type_name ';' } '}'.
type TaggedUnionDef struct {
	Name    string               `parser:"\"taggedunion\" @Ident?"`
	Members []*CSTTaggedUnionMember `parser:"\"{\" ( @@ \";\" )* \"}\""`
}

type CSTTaggedUnionMember struct {
	Tag  string    `parser:"@String"`
	Type *TypeName `parser:"@@"`
}

var cstParser = participle.MustBuild[File](
	participle.Lexer(cstLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)
