package receipt

import (
	"fmt"
	"os"
	"strings"

	"github.com/ByLCY/slip/dsl"
	"github.com/ByLCY/slip/markup"
)

// TemplateLine is one branding line; Text may contain ${path} placeholders.
type TemplateLine struct {
	Align markup.Alignment
	Style markup.Style
	Text  string
}

// Template holds the store branding printed around the order details.
type Template struct {
	Name   string
	Header []TemplateLine // 标题行，位于第一条分隔线之前
	Footer []TemplateLine // 致谢行，位于空行与结束标记之前
	Vars   map[string]string
}

// DefaultTemplate returns the built-in street food branding.
func DefaultTemplate() *Template {
	return &Template{
		Name: "default",
		Header: []TemplateLine{
			{Align: markup.Center, Style: markup.BoldLarge, Text: "STREET FOOD & CAFE"},
			{Align: markup.Center, Style: markup.Normal, Text: "Fresh & Tasty"},
		},
		Footer: []TemplateLine{
			{Align: markup.Center, Style: markup.Normal, Text: "Thank You!"},
			{Align: markup.Center, Style: markup.Normal, Text: "Please Visit Again"},
		},
		Vars: map[string]string{},
	}
}

var alignWords = map[string]markup.Alignment{
	"left":   markup.Left,
	"center": markup.Center,
	"right":  markup.Right,
}

var styleWords = map[string]markup.Style{
	"normal":          markup.Normal,
	"large":           markup.Large,
	"bold-large":      markup.BoldLarge,
	"emphasis":        markup.EmphasisMedium,
	"emphasis-medium": markup.EmphasisMedium,
}

// CompileTemplate converts a parsed template document. Lines default to CENTER NORMAL;
// an unknown alignment or style word is an error.
func CompileTemplate(doc *dsl.Document) (*Template, error) {
	if doc == nil {
		return nil, fmt.Errorf("模板文档不能为空")
	}
	tpl := &Template{Name: doc.Name, Vars: doc.Vars()}
	var err error
	if tpl.Header, err = compileLines(doc.Lines(dsl.SectionHeader)); err != nil {
		return nil, err
	}
	if tpl.Footer, err = compileLines(doc.Lines(dsl.SectionFooter)); err != nil {
		return nil, err
	}
	return tpl, nil
}

func compileLines(stmts []*dsl.LineStatement) ([]TemplateLine, error) {
	out := make([]TemplateLine, 0, len(stmts))
	for _, st := range stmts {
		line := TemplateLine{Align: markup.Center, Style: markup.Normal, Text: string(st.Text)}
		for _, w := range st.Words {
			key := strings.ToLower(w)
			if a, ok := alignWords[key]; ok {
				line.Align = a
				continue
			}
			if s, ok := styleWords[key]; ok {
				line.Style = s
				continue
			}
			return nil, fmt.Errorf("模板第 %d 行: 未知的对齐或字体 %q", st.Pos.Line, w)
		}
		out = append(out, line)
	}
	return out, nil
}

// LoadTemplate parses and compiles a template file.
func LoadTemplate(path string) (*Template, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开模板文件 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析模板失败: %w", err)
	}
	return CompileTemplate(doc)
}
