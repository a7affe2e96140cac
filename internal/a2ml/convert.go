package a2ml

import (
	"fmt"

	"github.com/a2l-go/a2l/internal/errs"
)

func convertFile(f *File, pos errs.Position) (*Schema, error) {
	schema := &Schema{Named: map[string]*Type{}, Blocks: map[string]*Type{}}
	for _, decl := range f.Decls {
		switch {
		case decl.Block != nil:
			inner, err := convertTypeName(decl.Block.Type)
			if err != nil {
				return nil, err
			}
			tag := unquote(decl.Block.Tag)
			if _, dup := schema.Blocks[tag]; dup {
				return nil, errs.A2mlFormatError{Pos: pos, Message: fmt.Sprintf("duplicate block tag %q", tag)}
			}
			schema.Blocks[tag] = &Type{Tag: TBlock, BlockTag: tag, BlockType: inner}

		case decl.Type != nil:
			t, err := convertTypeDef(decl.Type)
			if err != nil {
				return nil, err
			}
			if t.Name != "" {
				if _, dup := schema.Named[t.Name]; dup {
					return nil, errs.A2mlFormatError{Pos: pos, Message: fmt.Sprintf("duplicate type name %q", t.Name)}
				}
				schema.Named[t.Name] = t
			}
		}
	}
	return schema, nil
}

func convertTypeDef(td *TypeDef) (*Type, error) {
	switch {
	case td.Predef != "":
		return &Type{Tag: TPredefined, Predefined: td.Predef}, nil
	case td.Struct != nil:
		return convertStructDef(td.Struct)
	case td.Enum != nil:
		return convertEnumDef(td.Enum)
	case td.TaggedStruct != nil:
		return convertTaggedStructDef(td.TaggedStruct)
	case td.TaggedUnion != nil:
		return convertTaggedUnionDef(td.TaggedUnion)
	}
	return nil, errs.A2mlFormatError{Message: "empty type definition"}
}

func convertTypeName(tn *TypeName) (*Type, error) {
	switch {
	case tn.Predef != "":
		return &Type{Tag: TPredefined, Predefined: tn.Predef}, nil
	case tn.Struct != nil:
		return convertStructDef(tn.Struct)
	case tn.Enum != nil:
		return convertEnumDef(tn.Enum)
	case tn.TaggedStruct != nil:
		return convertTaggedStructDef(tn.TaggedStruct)
	case tn.TaggedUnion != nil:
		return convertTaggedUnionDef(tn.TaggedUnion)
	case tn.Ref != "":
		return &Type{Tag: TRef, Ref: tn.Ref}, nil
	}
	return nil, errs.A2mlFormatError{Message: "empty type reference"}
}

func convertStructDef(sd *StructDef) (*Type, error) {
	members := make([]StructMember, 0, len(sd.Members))
	for _, m := range sd.Members {
		t, err := convertTypeName(m.Type)
		if err != nil {
			return nil, err
		}
		size := 0
		if m.ArraySize != nil {
			size = *m.ArraySize
		}
		members = append(members, StructMember{Type: t, ArraySize: size})
	}
	return &Type{Tag: TStruct, Name: sd.Name, StructMembers: members}, nil
}

func convertEnumDef(ed *EnumDef) (*Type, error) {
	enums := make([]Enumerator, 0, len(ed.Enumerators))
	for _, e := range ed.Enumerators {
		enums = append(enums, Enumerator{Name: unquote(e.Name), Value: e.Value})
	}
	return &Type{Tag: TEnum, Name: ed.Name, Enumerators: enums}, nil
}

func convertTaggedStructDef(tsd *TaggedStructDef) (*Type, error) {
	members := make([]TaggedStructMember, 0, len(tsd.Members))
	for _, m := range tsd.Members {
		tm, err := convertTaggedStructMember(m)
		if err != nil {
			return nil, err
		}
		members = append(members, tm)
	}
	return &Type{Tag: TTaggedStruct, Name: tsd.Name, TaggedStructMembers: members}, nil
}

func convertTaggedStructMember(m *CSTTaggedStructMember) (TaggedStructMember, error) {
	inner := m.Single
	repeatable := false
	if m.Repeated != nil {
		inner = m.Repeated
		repeatable = true
	}
	if inner == nil {
		return TaggedStructMember{}, errs.A2mlFormatError{Message: "empty taggedstruct member"}
	}
	if inner.Block != nil {
		t, err := convertTypeName(inner.Block.Type)
		if err != nil {
			return TaggedStructMember{}, err
		}
		return TaggedStructMember{Tag: unquote(inner.Block.Tag), Repeatable: repeatable, Block: true, Inner: t}, nil
	}
	item := inner.Tag
	var t *Type
	if item.Type != nil {
		var err error
		t, err = convertTypeName(item.Type)
		if err != nil {
			return TaggedStructMember{}, err
		}
	}
	return TaggedStructMember{Tag: unquote(item.Tag), Repeatable: repeatable, Inner: t}, nil
}

func convertTaggedUnionDef(tud *TaggedUnionDef) (*Type, error) {
	members := make([]TaggedUnionMember, 0, len(tud.Members))
	for _, m := range tud.Members {
		t, err := convertTypeName(m.Type)
		if err != nil {
			return nil, err
		}
		members = append(members, TaggedUnionMember{Tag: unquote(m.Tag), Type: t})
	}
	return &Type{Tag: TTaggedUnion, Name: tud.Name, TaggedUnionMembers: members}, nil
}

// unquote strips the surrounding double quotes the lexer's String
// token retains; A2ML string literals carry no escape sequences that
// need unescaping beyond that.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
