package markup

// 该文件是估高与绘制共享的契约：每种字体的估算步进、字号与字重。

// Class 是一行在纵向上的归类。
type Class int

const (
	ClassBlank Class = iota
	ClassNormal
	ClassEmphasis
	ClassLarge
)

// 估算步进（px）。
const (
	BlankAdvance    = 20
	NormalAdvance   = 30
	EmphasisAdvance = 35
	LargeAdvance    = 40
)

// Font 描述某种 Style 对应的字号（px）与是否加粗。
type Font struct {
	Size float64
	Bold bool
}

// 字号（px）。等宽字体每列 0.6em：26 列在 Normal 下约 343px，在 EmphasisMedium 下约 359px，
// 均不超过左右各留 10px 后的 364px。
const (
	SmallSize  = 22.0
	MediumSize = 23.0
	LargeSize  = 30.0
)

// Classify 对归一化后的行归类，空正文优先归为 ClassBlank。
func Classify(l Line) Class {
	l = l.Normalize()
	if l.Blank() {
		return ClassBlank
	}
	switch l.Style {
	case BoldLarge, Large:
		return ClassLarge
	case EmphasisMedium:
		return ClassEmphasis
	default:
		return ClassNormal
	}
}

// EstimatedAdvance 返回估高阶段使用的固定步进。
func EstimatedAdvance(l Line) int {
	switch Classify(l) {
	case ClassBlank:
		return BlankAdvance
	case ClassLarge:
		return LargeAdvance
	case ClassEmphasis:
		return EmphasisAdvance
	default:
		return NormalAdvance
	}
}

// Font 返回绘制该字体时使用的字号与字重；未知值按 Normal 处理。
func (s Style) Font() Font {
	switch s {
	case BoldLarge:
		return Font{Size: LargeSize, Bold: true}
	case Large:
		return Font{Size: LargeSize}
	case EmphasisMedium:
		return Font{Size: MediumSize, Bold: true}
	default:
		return Font{Size: SmallSize}
	}
}
