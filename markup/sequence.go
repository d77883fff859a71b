package markup

import "strings"

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Sequence 是一个小票分段内按顺序排列的行。
type Sequence []Line

// Section 标识三段中的一段。
type Section string

const (
	SectionHeader Section = "header"
	SectionBody   Section = "body"
	SectionFooter Section = "footer"
)

// Sections 依固定顺序（header、body、footer）拼接。
type Sections struct {
	Header Sequence `json:"header"`
	Body   Sequence `json:"body"`
	Footer Sequence `json:"footer"`
}

// Append 追加一行并返回新的序列。
func (s Sequence) Append(align Alignment, style Style, text string) Sequence {
	return append(s, New(align, style, text))
}

// Tokens 返回每一行的标记串。
func (s Sequence) Tokens() []string {
	out := make([]string, 0, len(s))
	for _, l := range s {
		out = append(out, l.String())
	}
	return out
}

// Each 依次访问三段中的每一行，fn 返回 false 时停止。
func (s Sections) Each(fn func(section Section, index int, line Line) bool) {
	for _, part := range s.ordered() {
		for i, l := range part.lines {
			if !fn(part.name, i, l) {
				return
			}
		}
	}
}

// Len 返回三段的总行数。
func (s Sections) Len() int { return len(s.Header) + len(s.Body) + len(s.Footer) }

type namedSequence struct {
	name  Section
	lines Sequence
}

func (s Sections) ordered() []namedSequence {
	return []namedSequence{
		{name: SectionHeader, lines: s.Header},
		{name: SectionBody, lines: s.Body},
		{name: SectionFooter, lines: s.Footer},
	}
}
