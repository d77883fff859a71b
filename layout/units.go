package layout

// 画布以 1 个单位 = 1 px 建立，并以每毫米 1 点光栅化，因此画布单位在字体系统看来就是毫米。
// 字体接口使用 pt，这里提供 px↔pt 换算。

// Conversion constants between pt and canvas units (px).
const (
	PtToPx = 0.352777
	PxToPt = 1.0 / PtToPx
)

// ToPt 将 px 字号转换为 pt。
func ToPt(px float64) float64 { return px * PxToPt }

// ToPx 将 pt 转换为 px。
func ToPx(pt float64) float64 { return pt * PtToPx }
