package a2l

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/a2l-go/a2l/internal/ast"
	"github.com/a2l-go/a2l/internal/errs"
)

func TestParseFile_ResolvesIncludes(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "root.a2l", []byte("/begin PROJECT p \"\"\n/include \"mod.a2l\"\n/end PROJECT"), 0o644)
	afero.WriteFile(fs, "lib/mod.a2l", []byte("/begin MODULE m \"\"\n/end MODULE"), 0o644)

	tree, err := ParseFile(fs, "root.a2l", []string{"lib"}, nil)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	modules := tree.FindByKind("MODULE")
	if len(modules) != 1 {
		t.Fatalf("len(MODULE) = %d", len(modules))
	}
	if modules[0].Pos.File != "lib/mod.a2l" {
		t.Fatalf("included node position = %+v", modules[0].Pos)
	}
}

func TestParse_A2mlVersionDecimal(t *testing.T) {
	tree, err := Parse("A2ML_VERSION 2 3", nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tree.A2mlVersion == nil || tree.A2mlVersion.VersionNo != 2 || tree.A2mlVersion.UpgradeNo != 3 {
		t.Fatalf("A2mlVersion = %+v", tree.A2mlVersion)
	}
}

func TestParse_A2mlVersionHex(t *testing.T) {
	tree, err := Parse("A2ML_VERSION 0x2 0x3", nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tree.A2mlVersion.VersionNo != 2 || tree.A2mlVersion.UpgradeNo != 3 {
		t.Fatalf("A2mlVersion = %+v", tree.A2mlVersion)
	}
}

func TestParse_A2mlVersionFloat(t *testing.T) {
	tree, err := Parse("A2ML_VERSION 2.0 3.0", nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tree.A2mlVersion.VersionNo != 2 || tree.A2mlVersion.UpgradeNo != 3 {
		t.Fatalf("A2mlVersion = %+v", tree.A2mlVersion)
	}
}

func TestParse_A2mlVersionMissingUpgradeNo(t *testing.T) {
	_, err := Parse("A2ML_VERSION 1", nil, nil)
	if _, ok := err.(errs.FormatError); !ok {
		t.Fatalf("expected FormatError, got %v (%T)", err, err)
	}
}

func TestParse_ProjectEmpty(t *testing.T) {
	tree, err := Parse(`/begin PROJECT p "" /end PROJECT`, nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tree.Project.Attribute("name") != "p" {
		t.Fatalf("name = %v", tree.Project.Attribute("name"))
	}
	if tree.Project.Attribute("long_identifier") != "" {
		t.Fatalf("long_identifier = %v", tree.Project.Attribute("long_identifier"))
	}
	modules, ok := tree.Project.Attribute("module").([]*ast.Node)
	if !ok || len(modules) != 0 {
		t.Fatalf("module attribute = %v", tree.Project.Attribute("module"))
	}
	if got := tree.Project.Attribute("header"); got != nil {
		t.Fatalf("header should be absent, got %v", got)
	}
}

func TestParse_DuplicateSingletonIsFormatError(t *testing.T) {
	src := `
		/begin PROJECT p ""
			/begin HEADER "c1"
			/end HEADER
			/begin HEADER "c2"
			/end HEADER
		/end PROJECT`
	_, err := Parse(src, nil, nil)
	if _, ok := err.(errs.FormatError); !ok {
		t.Fatalf("expected FormatError, got %v (%T)", err, err)
	}
}

func TestParse_MismatchedEndIsFormatError(t *testing.T) {
	src := `/begin PROJECT p "" /end MODULE`
	_, err := Parse(src, nil, nil)
	if _, ok := err.(errs.FormatError); !ok {
		t.Fatalf("expected FormatError, got %v (%T)", err, err)
	}
}

func TestParse_NonAsciiIsLexerError(t *testing.T) {
	_, err := Parse("A2ML_VERSION こ 3", nil, nil)
	if _, ok := err.(errs.LexerError); !ok {
		t.Fatalf("expected LexerError, got %v (%T)", err, err)
	}
}

func TestParse_NestedModuleWithCharacteristic(t *testing.T) {
	src := `
		/begin PROJECT proj "long id"
			/begin MODULE m ""
				/begin CHARACTERISTIC c "long" VALUE 0x1000 DAMOS_SST 0.0 conv 0.0 100.0
					READ_ONLY
				/end CHARACTERISTIC
			/end MODULE
		/end PROJECT`
	tree, err := Parse(src, nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	chars := tree.FindByKind("CHARACTERISTIC")
	if len(chars) != 1 {
		t.Fatalf("len(CHARACTERISTIC) = %d", len(chars))
	}
	c := chars[0]
	if c.Attribute("name") != "c" {
		t.Fatalf("name = %v", c.Attribute("name"))
	}
	if c.Attribute("address") != int64(0x1000) {
		t.Fatalf("address = %v", c.Attribute("address"))
	}
	if c.Attribute("read_only") != "READ_ONLY" {
		t.Fatalf("read_only = %v", c.Attribute("read_only"))
	}
}

func TestParse_CompuMethodCoeffsNamedFields(t *testing.T) {
	src := `
		/begin PROJECT proj "d"
			/begin MODULE m ""
				/begin COMPU_METHOD cm "long" TAB_INTP "%d" "-"
					COEFFS 0 1 2 3 4 5
				/end COMPU_METHOD
			/end MODULE
		/end PROJECT`
	tree, err := Parse(src, nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cm := tree.FindByKind("COMPU_METHOD")[0]
	coeffs, ok := cm.Attribute("coeffs").(*ast.NamedScalarGroup)
	if !ok {
		t.Fatalf("coeffs = %v (%T)", cm.Attribute("coeffs"), cm.Attribute("coeffs"))
	}
	want := map[string]float64{"a": 0, "b": 1, "c": 2, "d": 3, "e": 4, "f": 5}
	for name, w := range want {
		if got := coeffs.Attribute(name); got != w {
			t.Fatalf("coeffs.%s = %v, want %v", name, got, w)
		}
	}
}

func TestParse_CharacteristicMatrixDim(t *testing.T) {
	src := `
		/begin PROJECT proj "d"
			/begin MODULE m ""
				/begin CHARACTERISTIC c "long" VALUE 0x1000 DAMOS_SST 0.0 conv 0.0 100.0
					MATRIX_DIM 0 1 2
				/end CHARACTERISTIC
			/end MODULE
		/end PROJECT`
	tree, err := Parse(src, nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := tree.FindByKind("CHARACTERISTIC")[0]
	dims, ok := c.Attribute("matrix_dim").([]any)
	if !ok || len(dims) != 3 {
		t.Fatalf("matrix_dim = %v", c.Attribute("matrix_dim"))
	}
	if dims[0] != int64(0) || dims[1] != int64(1) || dims[2] != int64(2) {
		t.Fatalf("matrix_dim = %v", dims)
	}
}

func TestParse_EmptySource(t *testing.T) {
	tree, err := Parse("", nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tree.A2mlVersion != nil || tree.Asap2Version != nil || tree.Project != nil {
		t.Fatalf("empty source should yield an empty AST, got %+v", tree)
	}
}

func TestParse_NestedBlockCommentIsError(t *testing.T) {
	_, err := Parse("/* /* */ */ A2ML_VERSION 2 3", nil, nil)
	if _, ok := err.(errs.LexerError); !ok {
		t.Fatalf("expected LexerError for non-nesting comment remainder, got %v (%T)", err, err)
	}
}

func TestParse_HeaderOptionalSingletons(t *testing.T) {
	src := `
		/begin PROJECT p ""
			/begin HEADER "c"
				VERSION "v1"
				PROJECT_NO P71
			/end HEADER
		/end PROJECT`
	tree, err := Parse(src, nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	header := tree.FindByKind("HEADER")[0]
	if header.Attribute("version") != "v1" {
		t.Fatalf("version = %v", header.Attribute("version"))
	}
	if header.Attribute("project_no") != "P71" {
		t.Fatalf("project_no = %v", header.Attribute("project_no"))
	}

	src = `/begin PROJECT p "" /begin HEADER "c" PROJECT_NO P71 /end HEADER /end PROJECT`
	tree, err = Parse(src, nil, nil)
	if err != nil {
		t.Fatalf("Parse without VERSION: %v", err)
	}
	header = tree.FindByKind("HEADER")[0]
	if header.Attribute("version") != nil {
		t.Fatalf("absent version should be nil, got %v", header.Attribute("version"))
	}
}

func TestParse_CompuVtabValuePairs(t *testing.T) {
	src := `
		/begin PROJECT p ""
			/begin MODULE m ""
				/begin COMPU_VTAB vt "vt" TAB_VERB 2
					0 "zero"
					1 "one"
				/end COMPU_VTAB
			/end MODULE
		/end PROJECT`
	tree, err := Parse(src, nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	vt := tree.FindByKind("COMPU_VTAB")[0]
	if vt.Attribute("number_value_pairs") != 2 {
		t.Fatalf("number_value_pairs = %v", vt.Attribute("number_value_pairs"))
	}
	pairs := vt.Attribute("value_pairs").([]any)
	first := pairs[0].([]any)
	if first[0] != float64(0) || first[1] != "zero" {
		t.Fatalf("value_pairs[0] = %v", first)
	}
}

const ifDataSource = `
	/begin PROJECT project ""
		/begin MODULE module ""
			/begin A2ML
				block "IF_DATA" taggedunion {
					"MODULE" struct {
						taggedstruct {
							(block "SOURCE" struct {
								struct {
									char[100];
									int;
									long;
								};
								taggedstruct {
									"QP_BLOB" struct {
										int;
										long;
									};
								};
							};)*;
						};
					};
				};
			/end A2ML
			/begin IF_DATA MODULE
				/begin SOURCE s0 1 2
				/end SOURCE
				/begin SOURCE s1 3 4 QP_BLOB 5 6
				/end SOURCE
			/end IF_DATA
		/end MODULE
	/end PROJECT`

func TestParse_ModuleIfDataSourceNode(t *testing.T) {
	tree, err := Parse(ifDataSource, nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	module := tree.FindByKind("MODULE")[0]
	entries, ok := module.Attribute("if_data").([]ast.IfData)
	if !ok || len(entries) != 1 {
		t.Fatalf("if_data = %v", module.Attribute("if_data"))
	}
	arm, ok := entries[0].Value.Field("MODULE")
	if !ok {
		t.Fatalf("missing MODULE arm")
	}
	sources := arm.RepeatedField("SOURCE")
	if len(sources) != 2 {
		t.Fatalf("len(SOURCE) = %d", len(sources))
	}
	s0, s1 := sources[0], sources[1]
	if s0.At(0).Scalar != "s0" || s0.At(1).Scalar != int64(1) || s0.At(2).Scalar != int64(2) {
		t.Fatalf("SOURCE[0] = %+v", s0)
	}
	if _, ok := s0.Field("QP_BLOB"); ok {
		t.Fatalf("SOURCE[0].QP_BLOB should be absent")
	}
	blob, ok := s1.Field("QP_BLOB")
	if !ok {
		t.Fatalf("SOURCE[1].QP_BLOB should be present")
	}
	if blob.At(0).Scalar != int64(5) || blob.At(1).Scalar != int64(6) {
		t.Fatalf("SOURCE[1].QP_BLOB = %+v", blob)
	}
}

func TestParse_IfDataWithoutSchemaIsSchemaError(t *testing.T) {
	src := `
		/begin PROJECT p ""
			/begin MODULE m ""
				/begin IF_DATA MODULE
				/end IF_DATA
			/end MODULE
		/end PROJECT`
	_, err := Parse(src, nil, nil)
	if _, ok := err.(errs.SchemaError); !ok {
		t.Fatalf("expected SchemaError, got %v (%T)", err, err)
	}
}

func TestParse_IfDataUnknownTagIsSchemaError(t *testing.T) {
	src := `
	/begin PROJECT p ""
		/begin MODULE m ""
			/begin A2ML
				block "IF_DATA" taggedunion {
					"MODULE" struct {
						taggedstruct {
							"KNOWN" int;
						};
					};
				};
			/end A2ML
			/begin IF_DATA MODULE KNOWN 1 BOGUS 2
			/end IF_DATA
		/end MODULE
	/end PROJECT`
	_, err := Parse(src, nil, nil)
	if _, ok := err.(errs.SchemaError); !ok {
		t.Fatalf("expected SchemaError, got %v (%T)", err, err)
	}
}

func TestParse_IfDataEnumMismatchIsSchemaError(t *testing.T) {
	src := `
	/begin PROJECT p ""
		/begin MODULE m ""
			/begin A2ML
				block "IF_DATA" taggedunion {
					"MODULE" struct {
						enum { "ON" = 1, "OFF" = 0 };
					};
				};
			/end A2ML
			/begin IF_DATA MODULE MAYBE
			/end IF_DATA
		/end MODULE
	/end PROJECT`
	_, err := Parse(src, nil, nil)
	if _, ok := err.(errs.SchemaError); !ok {
		t.Fatalf("expected SchemaError, got %v (%T)", err, err)
	}
}

func TestParse_DumpRoundTripFullDocument(t *testing.T) {
	src := "ASAP2_VERSION 1 61\nA2ML_VERSION 2 3\n" + ifDataSource
	tree, err := Parse(src, nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	reparsed, err := Parse(tree.DumpDefault(), nil, nil)
	if err != nil {
		t.Fatalf("re-parse of dump: %v\n%s", err, tree.DumpDefault())
	}
	if *reparsed.A2mlVersion != (ast.VersionPair{VersionNo: 2, UpgradeNo: 3}) {
		t.Fatalf("A2mlVersion = %+v", reparsed.A2mlVersion)
	}
	if *reparsed.Asap2Version != (ast.VersionPair{VersionNo: 1, UpgradeNo: 61}) {
		t.Fatalf("Asap2Version = %+v", reparsed.Asap2Version)
	}
	module := reparsed.FindByKind("MODULE")[0]
	entries := module.Attribute("if_data").([]ast.IfData)
	arm, ok := entries[0].Value.Field("MODULE")
	if !ok {
		t.Fatalf("re-parsed dump lost the MODULE arm")
	}
	sources := arm.RepeatedField("SOURCE")
	if len(sources) != 2 || sources[1].At(0).Scalar != "s1" {
		t.Fatalf("re-parsed SOURCE = %+v", sources)
	}
}

func TestParse_FindByKindPreorder(t *testing.T) {
	src := `
		/begin PROJECT p ""
			/begin MODULE m1 ""
				/begin MEASUREMENT a "" UBYTE conv 0 0.0 0.0 1.0
				/end MEASUREMENT
				/begin MEASUREMENT b "" UBYTE conv 0 0.0 0.0 1.0
				/end MEASUREMENT
			/end MODULE
			/begin MODULE m2 ""
				/begin MEASUREMENT c "" UBYTE conv 0 0.0 0.0 1.0
				/end MEASUREMENT
			/end MODULE
		/end PROJECT`
	tree, err := Parse(src, nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var names []string
	for _, m := range tree.FindByKind("MEASUREMENT") {
		names = append(names, m.Attribute("name").(string))
	}
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Fatalf("preorder names = %v", names)
	}
}

func TestParse_NodeOverrideFactory(t *testing.T) {
	made := map[string]int{}
	overrides := map[string]ast.NodeFactory{
		"MODULE": func(kind string, pos errs.Position) *ast.Node {
			made[kind]++
			return ast.NewNode(kind, pos)
		},
	}
	src := `/begin PROJECT p "" /begin MODULE m "" /end MODULE /end PROJECT`
	if _, err := Parse(src, nil, overrides); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if made["MODULE"] != 1 {
		t.Fatalf("override factory called %d times, want 1", made["MODULE"])
	}
}

func TestParse_DumpRoundTripsPositionalFields(t *testing.T) {
	src := `/begin PROJECT proj "d" /end PROJECT`
	tree, err := Parse(src, nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := tree.DumpDefault()
	want := "/begin PROJECT proj \"d\"\n/end PROJECT"
	if got != want {
		t.Fatalf("Dump() = %q, want %q", got, want)
	}
}
