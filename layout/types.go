package layout

import "github.com/ByLCY/slip/markup"

// 该文件定义画布常量与排版结果，供估高、排版、渲染与调试 JSON 共用。

// 画布尺寸与留白（px）。
const (
	Width          = 384  // 热敏打印头的可寻址宽度
	MinHeight      = 400  // 画布最小高度
	PaddingTop     = 100  // 估高时的顶部留白
	PaddingBottom  = 100  // 估高时的底部留白
	FallbackHeight = 1200 // 估高失败时的保守高度
	TopInset       = 40   // 第一行基线的起始位置
	SideInset      = 10   // 左对齐与右对齐时距边缘的距离
)

// Result 保存一次排版的全部落点。
type Result struct {
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Placements []Placement `json:"placements"`
	// Bottom 为最后一行推进后的游标位置，可能超过 Height。
	Bottom float64 `json:"bottom"`
}

// Placement 记录某一行的绘制位置与实际推进量。
type Placement struct {
	Section  markup.Section `json:"section"`
	Index    int            `json:"index"`
	Line     markup.Line    `json:"line"`
	Class    markup.Class   `json:"class"`
	X        float64        `json:"x"`
	Baseline float64        `json:"baseline"`
	Width    float64        `json:"width"`
	Advance  float64        `json:"advance"`
	Drawn    bool           `json:"drawn"`
}

// Overflow 报告是否有内容落在画布之外。
func (r Result) Overflow() bool { return r.Bottom > r.Height }
