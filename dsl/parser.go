package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// 小票模板中可出现的段落名。
const (
	SectionHeader = "header"
	SectionFooter = "footer"
)

// Document is the root AST node of a slip template.
//
//	slip Street v1 {
//	  vars { store: "Street Food" }
//	  header {
//	    center bold-large "${store}"
//	    center "Fresh & Tasty"
//	  }
//	  footer { center "Thank You!" }
//	}
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'slip' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is either a variable block or a header/footer line block.
type Section struct {
	Vars  *VarsSection  `parser:"  @@"`
	Lines *LinesSection `parser:"| @@"`
}

// Kind returns the human-readable section type.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Vars != nil:
		return "vars"
	case s.Lines != nil:
		return s.Lines.Name
	default:
		return "unknown"
	}
}

// VarsSection declares default values for ${name} placeholders.
type VarsSection struct {
	Entries []*Assignment `parser:"'vars' '{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Assignment uses colon syntax (key: "value").
type Assignment struct {
	Key   string        `parser:"@Ident"`
	Value StringLiteral `parser:"':' Newline* @String"`
}

// LinesSection lists the lines printed in the header or footer.
type LinesSection struct {
	Pos   lexer.Position   `parser:"" json:"-"`
	Name  string           `parser:"@( 'header' | 'footer' )"`
	Lines []*LineStatement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// LineStatement is a single printed line: optional alignment/style words followed by the text.
type LineStatement struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Words []string       `parser:"@Ident*"`
	Text  StringLiteral  `parser:"@String"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Vars flattens every vars block into one map; later entries win.
func (d *Document) Vars() map[string]string {
	out := map[string]string{}
	if d == nil {
		return out
	}
	for _, sec := range d.Sections {
		if sec == nil || sec.Vars == nil {
			continue
		}
		for _, a := range sec.Vars.Entries {
			out[a.Key] = string(a.Value)
		}
	}
	return out
}

// Lines returns the statements of every block with the given name, in source order.
func (d *Document) Lines(name string) []*LineStatement {
	if d == nil {
		return nil
	}
	var out []*LineStatement
	for _, sec := range d.Sections {
		if sec == nil || sec.Lines == nil || sec.Lines.Name != name {
			continue
		}
		out = append(out, sec.Lines.Lines...)
	}
	return out
}

// Parse parses template content from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses template content from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
