// Package text renders receipt sections as ESC/POS formatted text, the markup
// understood by common thermal-printer libraries: a leading [L], [C] or [R]
// sets the alignment, <b> makes text bold and <font size='big'> doubles it.
package text

import (
	"bufio"
	"io"
	"strings"

	"github.com/ByLCY/slip/markup"
)

var alignPrefix = map[markup.Alignment]string{
	markup.Left:   "[L]",
	markup.Center: "[C]",
	markup.Right:  "[R]",
}

// escaper 避免正文被当成格式标签。
var escaper = strings.NewReplacer("[", "(", "]", ")", "<", "‹", ">", "›")

// FormatLine converts one markup line. Blank lines become a bare "[L]".
func FormatLine(l markup.Line) string {
	l = l.Normalize()
	if l.Blank() {
		return "[L]"
	}
	body := escaper.Replace(l.Text)
	font := l.Style.Font()
	if font.Bold {
		body = "<b>" + body + "</b>"
	}
	if font.Size >= markup.LargeSize {
		body = "<font size='big'>" + body + "</font>"
	}
	return alignPrefix[l.Align] + body
}

// Write emits every line of header, body and footer, one per row.
func Write(w io.Writer, sections markup.Sections) error {
	bw := bufio.NewWriter(w)
	var err error
	sections.Each(func(_ markup.Section, _ int, l markup.Line) bool {
		_, err = bw.WriteString(FormatLine(l) + "\n")
		return err == nil
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// Format returns the formatted text of all sections.
func Format(sections markup.Sections) string {
	var sb strings.Builder
	_ = Write(&sb, sections)
	return sb.String()
}
