package ifdata

import (
	"testing"

	"github.com/a2l-go/a2l/internal/a2ml"
	"github.com/a2l-go/a2l/internal/errs"
	"github.com/a2l-go/a2l/internal/lexer"
	"github.com/a2l-go/a2l/internal/source"
	"github.com/spf13/afero"
)

func lexText(t *testing.T, text string) []lexer.Token {
	t.Helper()
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "t.a2l", []byte(text), 0o644)
	unified, pm, err := source.Load(fs, "t.a2l", nil)
	if err != nil {
		t.Fatalf("source.Load: %v", err)
	}
	toks, err := lexer.Lex(unified, pm)
	if err != nil {
		t.Fatalf("lexer.Lex: %v", err)
	}
	return toks
}

func TestInterpret_SourceBlockWithOptionalQpBlob(t *testing.T) {
	a2mlText := `
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
	`
	schema, err := a2ml.Parse(a2mlText, errs.Position{})
	if err != nil {
		t.Fatalf("a2ml.Parse: %v", err)
	}

	toks := lexText(t, `MODULE
		/begin SOURCE s0 1 2
		/end SOURCE
		/begin SOURCE s1 3 4 QP_BLOB 5 6
		/end SOURCE`)

	val, pos, err := Interpret(schema, toks, 0)
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if pos != len(toks)-1 { // everything but the trailing EOF token consumed
		t.Fatalf("Interpret consumed %d of %d tokens", pos, len(toks))
	}

	module, ok := val.Field("MODULE")
	if !ok {
		t.Fatalf("missing MODULE arm")
	}
	sources := module.RepeatedField("SOURCE")
	if len(sources) != 2 {
		t.Fatalf("len(SOURCE) = %d, want 2", len(sources))
	}

	s0 := sources[0]
	if s0.At(0).Scalar != "s0" || s0.At(1).Scalar != int64(1) || s0.At(2).Scalar != int64(2) {
		t.Fatalf("s0 = %+v", s0)
	}
	if _, ok := s0.Field("QP_BLOB"); ok {
		t.Fatalf("s0.QP_BLOB should be absent")
	}

	s1 := sources[1]
	if s1.At(0).Scalar != "s1" || s1.At(1).Scalar != int64(3) || s1.At(2).Scalar != int64(4) {
		t.Fatalf("s1 = %+v", s1)
	}
	blob, ok := s1.Field("QP_BLOB")
	if !ok {
		t.Fatalf("s1.QP_BLOB should be present")
	}
	if blob.At(0).Scalar != int64(5) || blob.At(1).Scalar != int64(6) {
		t.Fatalf("s1.QP_BLOB = %+v", blob)
	}
}
