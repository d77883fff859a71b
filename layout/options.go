package layout

import "github.com/ByLCY/slip/markup"

// Typesetter 提供真实字体的度量：正文宽度与行推进（ascent+descent），单位均为 px。
type Typesetter interface {
	TextWidth(style markup.Style, text string) float64
	LineAdvance(style markup.Style) float64
}

// PlanOptions 配置排版阶段的画布与度量后端。
type PlanOptions struct {
	Typesetter Typesetter
	Width      float64
	Height     float64
}
