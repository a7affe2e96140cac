// Package source implements the A2L Source Manager: it reads a root
// file, splices in /include'd files (searched across a configurable
// ordered list of directories, with cycle detection), and hands back a
// single virtual source string together with a PositionMap that
// resolves any offset in that string back to the originating file's
// line and column.
package source

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/a2l-go/a2l/internal/errs"
)

// chunk is one contiguous run of virtual-source text contributed by a
// single real file. Nested /include directives split their parent
// file's contribution into the chunk before and the chunk after the
// inclusion point.
type chunk struct {
	file          string
	virtualOffset int
	startLine     int
	startColumn   int
	text          string
}

// PositionMap resolves offsets into the virtual source produced by
// Load back to the file/line/column that produced them.
type PositionMap struct {
	chunks []chunk
}

// Resolve returns the Position in the originating file for byte offset
// off of the virtual source. Offsets past the end resolve to the tail
// of the last chunk.
func (m *PositionMap) Resolve(off int) errs.Position {
	if len(m.chunks) == 0 {
		return errs.Position{Line: 1, Column: 1, Offset: off}
	}
	idx := 0
	for i, c := range m.chunks {
		if c.virtualOffset > off {
			break
		}
		idx = i
	}
	c := m.chunks[idx]
	local := off - c.virtualOffset
	if local < 0 {
		local = 0
	}
	if local > len(c.text) {
		local = len(c.text)
	}
	line, col := c.startLine, c.startColumn
	for i := 0; i < local; i++ {
		if c.text[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return errs.Position{File: c.file, Line: line, Column: col, Offset: off}
}

// Load reads rootPath from fs, resolves every /include directive it
// (transitively) contains against searchPaths in order, and returns
// the concatenated virtual source plus a PositionMap over it.
func Load(fs afero.Fs, rootPath string, searchPaths []string) (string, *PositionMap, error) {
	var out strings.Builder
	pm := &PositionMap{}
	visited := map[string]bool{}

	var splice func(path string) error
	splice = func(path string) error {
		clean := filepath.Clean(path)
		if visited[clean] {
			return errs.IncludeCycle{Path: path}
		}
		visited[clean] = true
		defer delete(visited, clean)

		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return errs.IncludeNotFound{Path: path}
		}
		text := string(data)

		line, col := 1, 1
		chunkStart := 0
		chunkLine, chunkCol := line, col

		flush := func(end int) {
			if end > chunkStart {
				pm.chunks = append(pm.chunks, chunk{
					file:          path,
					virtualOffset: out.Len(),
					startLine:     chunkLine,
					startColumn:   chunkCol,
					text:          text[chunkStart:end],
				})
				out.WriteString(text[chunkStart:end])
			}
		}

		state := scanStart
		i := 0
		for i < len(text) {
			b := text[i]
			switch state {
			case scanInString:
				if b == '"' {
					state = scanStart
				}
				advance(&line, &col, b)
				i++
				continue
			case scanInLineComment:
				if b == '\n' {
					state = scanStart
				}
				advance(&line, &col, b)
				i++
				continue
			case scanInBlockComment:
				if b == '*' && i+1 < len(text) && text[i+1] == '/' {
					advance(&line, &col, b)
					i++
					advance(&line, &col, text[i])
					i++
					state = scanStart
					continue
				}
				advance(&line, &col, b)
				i++
				continue
			}

			switch {
			case b == '"':
				state = scanInString
				advance(&line, &col, b)
				i++
			case b == '/' && i+1 < len(text) && text[i+1] == '/':
				state = scanInLineComment
				advance(&line, &col, b)
				i++
			case b == '/' && i+1 < len(text) && text[i+1] == '*':
				state = scanInBlockComment
				advance(&line, &col, b)
				i++
			case strings.HasPrefix(text[i:], "/include") && wordBoundary(text, i+len("/include")):
				directiveStart := i
				j := i + len("/include")
				for j < len(text) && isSpace(text[j]) {
					j++
				}
				if j >= len(text) || text[j] != '"' {
					// not a genuine include directive (e.g. a keyword
					// that merely starts with this prefix); treat as
					// ordinary text.
					advance(&line, &col, b)
					i++
					continue
				}
				j++
				pathStart := j
				for j < len(text) && text[j] != '"' {
					j++
				}
				incPath := text[pathStart:j]
				if j < len(text) {
					j++ // consume closing quote
				}

				flush(directiveStart)
				dirPos := errs.Position{File: path, Line: line, Column: col, Offset: out.Len()}
				resolved, ferr := resolveInclude(fs, incPath, searchPaths)
				if ferr != nil {
					return errs.IncludeNotFound{Pos: dirPos, Path: incPath}
				}
				if err := splice(resolved); err != nil {
					switch e := err.(type) {
					case errs.IncludeCycle:
						if e.Pos == (errs.Position{}) {
							e.Pos = dirPos
							return e
						}
					case errs.IncludeNotFound:
						if e.Pos == (errs.Position{}) {
							e.Pos = dirPos
							return e
						}
					}
					return err
				}

				for k := directiveStart; k < j; k++ {
					advance(&line, &col, text[k])
				}
				chunkStart = j
				chunkLine, chunkCol = line, col
				i = j
			default:
				advance(&line, &col, b)
				i++
			}
		}
		flush(len(text))
		return nil
	}

	if err := splice(rootPath); err != nil {
		return "", nil, err
	}
	return out.String(), pm, nil
}

type scanState int

const (
	scanStart scanState = iota
	scanInString
	scanInLineComment
	scanInBlockComment
)

func advance(line, col *int, b byte) {
	if b == '\n' {
		*line++
		*col = 1
	} else {
		*col++
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func wordBoundary(text string, at int) bool {
	return at >= len(text) || isSpace(text[at])
}

func resolveInclude(fs afero.Fs, incPath string, searchPaths []string) (string, error) {
	if len(searchPaths) == 0 {
		if ok, _ := afero.Exists(fs, incPath); ok {
			return incPath, nil
		}
		return "", errs.IncludeNotFound{Path: incPath}
	}
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, incPath)
		if ok, _ := afero.Exists(fs, candidate); ok {
			return candidate, nil
		}
	}
	return "", errs.IncludeNotFound{Path: incPath}
}
