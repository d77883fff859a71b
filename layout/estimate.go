package layout

import "github.com/ByLCY/slip/markup"

// advanceOf 是估高使用的单行步进，测试中可替换。
var advanceOf = markup.EstimatedAdvance

// Estimate 在不绘制的前提下计算画布高度：
// 顶部留白 + 各行估算步进之和 + 底部留白，且不低于 MinHeight。
// 求和过程中出现 panic 时返回 FallbackHeight。
func Estimate(s markup.Sections) (height int) {
	defer func() {
		if recover() != nil {
			height = FallbackHeight
		}
	}()

	total := PaddingTop
	s.Each(func(_ markup.Section, _ int, line markup.Line) bool {
		total += advanceOf(line)
		return true
	})
	total += PaddingBottom
	return CanvasHeight(total)
}

// CanvasHeight 把任意高度抬升到 MinHeight。
func CanvasHeight(h int) int {
	if h < MinHeight {
		return MinHeight
	}
	return h
}
