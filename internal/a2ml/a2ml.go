package a2ml

import (
	"strings"

	"github.com/a2l-go/a2l/internal/errs"
)

// Parse parses the text between "/begin A2ML" and "/end A2ML" into a
// Schema. pos is the position where the A2ML block's body text begins
// (just after "/begin A2ML"), used for errors Participle itself cannot attribute to an exact
// A2L-file location.
func Parse(text string, pos errs.Position) (*Schema, error) {
	if strings.TrimSpace(text) == "" {
		return &Schema{Named: map[string]*Type{}, Blocks: map[string]*Type{}}, nil
	}
	file, err := cstParser.ParseString("", text)
	if err != nil {
		return nil, errs.A2mlFormatError{Pos: pos, Message: err.Error()}
	}
	return convertFile(file, pos)
}
