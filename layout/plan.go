package layout

import (
	"fmt"

	"github.com/ByLCY/slip/markup"
)

// Plan 依 header、body、footer 的顺序为每一行计算落点。
// 游标从 TopInset 开始，基线即当前游标；空白行不绘制，只按 BlankAdvance 推进。
// 超出画布的行照常给出落点，由渲染器画在可见区域之外。
func Plan(s markup.Sections, opts PlanOptions) (*Result, error) {
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	width := opts.Width
	if width <= 0 {
		width = Width
	}
	height := opts.Height
	if height < MinHeight {
		height = MinHeight
	}

	res := &Result{
		Width:      width,
		Height:     height,
		Placements: make([]Placement, 0, s.Len()),
	}
	cursorY := float64(TopInset)
	s.Each(func(section markup.Section, index int, line markup.Line) bool {
		line = line.Normalize()
		p := Placement{
			Section:  section,
			Index:    index,
			Line:     line,
			Class:    markup.Classify(line),
			Baseline: cursorY,
		}
		if p.Class == markup.ClassBlank {
			p.Advance = markup.BlankAdvance
		} else {
			p.Width = opts.Typesetter.TextWidth(line.Style, line.Text)
			p.X = alignOffset(width, p.Width, line.Align)
			p.Advance = opts.Typesetter.LineAdvance(line.Style)
			p.Drawn = true
		}
		res.Placements = append(res.Placements, p)
		cursorY += p.Advance
		return true
	})
	res.Bottom = cursorY
	return res, nil
}

// alignOffset 返回正文左边缘的 x 坐标。
func alignOffset(container, width float64, align markup.Alignment) float64 {
	switch align {
	case markup.Center:
		return (container - width) / 2
	case markup.Right:
		return container - width - SideInset
	default:
		return SideInset
	}
}
