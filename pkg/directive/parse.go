package directive

import (
	"fmt"
	"strings"
)

// Marker is the fixed literal prefix identifying a generate directive
// within a comment line.
const Marker = "//genrun:generate"

// Directive is one parsed occurrence of the generate comment: either an
// alias definition or a runnable command, never both.
type Directive struct {
	// Line and Character are the 1-based source position of the marker's
	// first byte.
	Line      int
	Character int

	// Original is the full untrimmed source line, kept for regex filtering.
	Original string

	// AliasName is non-empty when the comment defines an alias rather than
	// a runnable command.
	AliasName string

	Command string
	Args    []string
}

// IsAlias reports whether d defines an alias rather than a runnable command.
func (d *Directive) IsAlias() bool {
	return d.AliasName != ""
}

// CommandLine returns the command and its arguments as one display string.
func (d *Directive) CommandLine() string {
	if len(d.Args) == 0 {
		return d.Command
	}
	return d.Command + " " + strings.Join(d.Args, " ")
}

// ParseError is a parse-time failure pinned to a source position.
type ParseError struct {
	Line      int
	Character int
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d:%d: %v", e.Line, e.Character, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse scans source line by line for generate directives and returns them
// in source order. A tokenizing failure or a malformed alias definition
// aborts the scan and surfaces as a ParseError; directives found before the
// failure are discarded with it.
func Parse(source string) ([]Directive, error) {
	var out []Directive
	for n, raw := range strings.Split(source, "\n") {
		line := strings.TrimSuffix(raw, "\r")
		trimmed := strings.TrimLeft(line, " \t")
		if !strings.HasPrefix(trimmed, Marker) {
			continue
		}
		rest := trimmed[len(Marker):]
		if rest != "" && !isSpaceByte(rest[0]) {
			// Marker immediately followed by more text is a different comment.
			continue
		}

		d := Directive{
			Line:      n + 1,
			Character: len(line) - len(trimmed) + 1,
			Original:  raw,
		}

		tokens, err := Split(rest)
		if err != nil {
			return nil, &ParseError{Line: d.Line, Character: d.Character, Err: err}
		}
		if len(tokens) == 0 {
			// Bare marker with no command; nothing to record.
			continue
		}

		if i := strings.IndexByte(tokens[0], '='); i >= 0 {
			d.AliasName = tokens[0][:i]
			if d.AliasName == "" {
				return nil, &ParseError{
					Line:      d.Line,
					Character: d.Character,
					Err:       fmt.Errorf("alias definition %q has no name", tokens[0]),
				}
			}
			if cmd := tokens[0][i+1:]; cmd != "" {
				tokens = append([]string{cmd}, tokens[1:]...)
			} else {
				tokens = tokens[1:]
			}
			if len(tokens) == 0 {
				return nil, &ParseError{
					Line:      d.Line,
					Character: d.Character,
					Err:       fmt.Errorf("alias %q has no command", d.AliasName),
				}
			}
		}

		d.Command = tokens[0]
		d.Args = tokens[1:]
		out = append(out, d)
	}
	return out, nil
}
