package markup

import (
	"unicode/utf8"
)

// 该文件定义小票中间标记的行编码：第 0 个字符为对齐标记，第 1 个字符为字体标记，其余为正文。

// Alignment 表示一行的水平对齐方式。
type Alignment int

const (
	Left Alignment = iota
	Center
	Right
)

// Style 选择字号与字重，同时决定该行的纵向步进。
type Style int

const (
	Normal Style = iota
	BoldLarge
	Large
	EmphasisMedium
)

// 标记字符沿用热敏小票的文本格式。
const (
	tagCenter = '0'
	tagLeft   = '1'
	tagRight  = '2'

	tagNormal   = '3'
	tagLarge    = '4'
	tagEmphasis = '5'
	tagBold     = '6'
)

// Line 是中间表示中的一行：对齐 + 字体 + 正文。
type Line struct {
	Align Alignment `json:"align"`
	Style Style     `json:"style"`
	Text  string    `json:"text"`
}

// Valid 报告对齐与字体是否都在已知集合内。
func (a Alignment) Valid() bool { return a >= Left && a <= Right }

// Valid 报告字体是否在已知集合内。
func (s Style) Valid() bool { return s >= Normal && s <= EmphasisMedium }

func (a Alignment) String() string {
	switch a {
	case Center:
		return "center"
	case Right:
		return "right"
	case Left:
		return "left"
	default:
		return "left"
	}
}

func (s Style) String() string {
	switch s {
	case BoldLarge:
		return "bold-large"
	case Large:
		return "large"
	case EmphasisMedium:
		return "emphasis"
	default:
		return "normal"
	}
}

// Normalize 把未知的对齐/字体回退为 Left/Normal。
// 估高与绘制都必须经过这里，两者的回退决策才能保持一致。
func (l Line) Normalize() Line {
	if !l.Align.Valid() {
		l.Align = Left
	}
	if !l.Style.Valid() {
		l.Style = Normal
	}
	return l
}

// Blank 表示该行没有可绘制的正文。
func (l Line) Blank() bool { return l.Text == "" }

// New 构造一行并做一次归一化；正文中的换行替换为空格，一行标记只占一行。
func New(align Alignment, style Style, text string) Line {
	return Line{Align: align, Style: style, Text: lineBreaks.Replace(text)}.Normalize()
}

// Encode 将一行编码为标记串。非法的对齐/字体先归一化，因此输出总带两个合法标记。
func Encode(align Alignment, style Style, text string) string {
	l := New(align, style, text)
	buf := make([]byte, 0, len(text)+2)
	buf = append(buf, alignTag(l.Align), styleTag(l.Style))
	buf = append(buf, l.Text...)
	return string(buf)
}

// String 返回该行的标记串形式。
func (l Line) String() string { return Encode(l.Align, l.Style, l.Text) }

// Decode 是全函数：任何输入都能得到一行。
//   - 空串：空白占位行（Left/Normal）；
//   - 单字符：对齐取第 0 个字符（未知回退 Left），字体回退 Normal，正文为其后内容；
//   - 其余：对齐取第 0 个字符，字体取第 1 个字符（未知回退 Normal），正文从第 2 个字符开始。
func Decode(token string) Line {
	if token == "" {
		return Line{Align: Left, Style: Normal}
	}
	r0, n0 := utf8.DecodeRuneInString(token)
	line := Line{Align: alignFromTag(r0), Style: Normal}
	rest := token[n0:]
	if rest == "" {
		return line
	}
	r1, n1 := utf8.DecodeRuneInString(rest)
	line.Style = styleFromTag(r1)
	line.Text = rest[n1:]
	return line
}

func alignTag(a Alignment) byte {
	switch a {
	case Center:
		return tagCenter
	case Right:
		return tagRight
	default:
		return tagLeft
	}
}

func styleTag(s Style) byte {
	switch s {
	case BoldLarge:
		return tagBold
	case Large:
		return tagLarge
	case EmphasisMedium:
		return tagEmphasis
	default:
		return tagNormal
	}
}

func alignFromTag(r rune) Alignment {
	switch r {
	case tagCenter:
		return Center
	case tagRight:
		return Right
	default:
		return Left
	}
}

func styleFromTag(r rune) Style {
	switch r {
	case tagBold:
		return BoldLarge
	case tagLarge:
		return Large
	case tagEmphasis:
		return EmphasisMedium
	default:
		return Normal
	}
}
