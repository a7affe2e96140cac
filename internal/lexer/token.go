package lexer

import "github.com/a2l-go/a2l/internal/errs"

// Kind classifies a Token.
type Kind int

const (
	Ident Kind = iota
	Int
	Float
	String
	Keyword
	BeginBlock // "/begin"
	EndBlock   // "/end"
	// A2mlContent carries the raw body between "/begin A2ML" and its
	// "/end A2ML" as a single token. A2ML is a different language with
	// its own punctuation, so its body cannot be tokenized by A2L
	// rules; the parser hands the lexeme to internal/a2ml whole.
	A2mlContent
	EOF
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "Ident"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	case Keyword:
		return "Keyword"
	case BeginBlock:
		return "BeginBlock"
	case EndBlock:
		return "EndBlock"
	case A2mlContent:
		return "A2mlContent"
	case EOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// Token is one lexical unit together with the position it started at.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    errs.Position
}

// reservedWords are identifier-shaped lexemes re-classified as Keyword
// tokens: the A2L block keywords of this module's schema table plus
// A2ML, IF_DATA and the ANNOTATION family, the file-scope version
// directives, and a set of flag and scalar singleton keywords. Unlisted
// words (A2ML-declared IF_DATA tags, singleton keywords such as COEFFS
// or MATRIX_DIM, enumerated scalar values such as the DAMOS_SST deposit
// of a CHARACTERISTIC) are deliberately left as Ident: the parser and the IF_DATA interpreter match those by
// lexeme, not by Kind, so misclassifying them here cannot affect
// parsing correctness — Kind==Keyword is diagnostic sugar only.
var reservedWords = map[string]bool{
	"A2ML_VERSION": true, "ASAP2_VERSION": true, "PROJECT": true, "HEADER": true,
	"MODULE": true, "A2ML": true, "IF_DATA": true, "MOD_PAR": true, "MOD_COMMON": true,
	"CHARACTERISTIC": true, "AXIS_PTS": true, "MEASUREMENT": true, "COMPU_METHOD": true,
	"COMPU_TAB": true, "COMPU_VTAB": true, "COMPU_VTAB_RANGE": true, "FUNCTION": true,
	"GROUP": true, "RECORD_LAYOUT": true, "VARIANT_CODING": true, "FRAME": true,
	"USER_RIGHTS": true, "UNIT": true, "ANNOTATION": true, "ANNOTATION_LABEL": true,
	"ANNOTATION_ORIGIN": true, "VERSION": true, "PROJECT_NO": true,
	"READ_ONLY": true, "GUARD_RAILS": true, "READ_WRITE": true, "ROOT": true,
	"DERIVED": true, "EXTENDED_LIMITS": true, "FORMAT": true, "BIT_MASK": true,
}

func classifyIdent(lexeme string) Kind {
	if reservedWords[lexeme] {
		return Keyword
	}
	return Ident
}
