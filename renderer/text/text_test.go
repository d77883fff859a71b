package text

import (
	"errors"
	"strings"
	"testing"

	"github.com/ByLCY/slip/markup"
)

func TestFormatLine(t *testing.T) {
	cases := []struct {
		line markup.Line
		want string
	}{
		{markup.Line{Align: markup.Center, Style: markup.BoldLarge, Text: "CAFE"}, "[C]<font size='big'><b>CAFE</b></font>"},
		{markup.Line{Align: markup.Right, Style: markup.Large, Text: "BIG"}, "[R]<font size='big'>BIG</font>"},
		{markup.Line{Align: markup.Left, Style: markup.EmphasisMedium, Text: "Item"}, "[L]<b>Item</b>"},
		{markup.Line{Align: markup.Left, Style: markup.Normal, Text: "Tea"}, "[L]Tea"},
		{markup.Line{Align: markup.Center, Style: markup.Normal, Text: ""}, "[L]"},
		{markup.Line{Align: markup.Alignment(9), Style: markup.Style(9), Text: "x"}, "[L]x"},
		{markup.Line{Align: markup.Left, Style: markup.Normal, Text: "[R]<b>"}, "[L](R)‹b›"},
	}
	for _, c := range cases {
		if got := FormatLine(c.line); got != c.want {
			t.Fatalf("FormatLine(%+v) 期望 %q，实际 %q", c.line, c.want, got)
		}
	}
}

func TestFormatOrder(t *testing.T) {
	s := markup.Sections{
		Header: markup.Sequence{}.Append(markup.Center, markup.Normal, "H"),
		Body:   markup.Sequence{}.Append(markup.Right, markup.Normal, "B"),
		Footer: markup.Sequence{}.Append(markup.Center, markup.Normal, "."),
	}
	want := "[C]H\n[R]B\n[C].\n"
	if got := Format(s); got != want {
		t.Fatalf("输出顺序错误: %q", got)
	}
	if strings.Count(Format(markup.Sections{}), "\n") != 0 {
		t.Fatalf("空小票不应输出任何行")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriteError(t *testing.T) {
	s := markup.Sections{Body: markup.Sequence{}.Append(markup.Left, markup.Normal, "x")}
	if err := Write(failingWriter{}, s); err == nil {
		t.Fatalf("写入失败应返回错误")
	}
}
