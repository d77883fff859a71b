package layout

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/ByLCY/slip/markup"
)

// stubTypesetter 是一个最小实现，仅用于测试，避免引入渲染器造成循环依赖。
// 每个字符宽 0.6em，行推进为 1.2em。
type stubTypesetter struct{}

func (stubTypesetter) TextWidth(style markup.Style, text string) float64 {
	return 0.6 * style.Font().Size * float64(utf8.RuneCountInString(text))
}

func (stubTypesetter) LineAdvance(style markup.Style) float64 {
	return 1.2 * style.Font().Size
}

func planOf(t *testing.T, s markup.Sections) *Result {
	t.Helper()
	res, err := Plan(s, PlanOptions{Typesetter: stubTypesetter{}, Height: float64(Estimate(s))})
	if err != nil {
		t.Fatalf("排版失败: %v", err)
	}
	return res
}

func TestPlanAlignment(t *testing.T) {
	s := markup.Sections{Body: markup.Sequence{}.
		Append(markup.Center, markup.Normal, "Thank You!").
		Append(markup.Right, markup.BoldLarge, "TOTAL: 7.00").
		Append(markup.Left, markup.Normal, "Name: Guest")}
	res := planOf(t, s)
	if len(res.Placements) != 3 {
		t.Fatalf("期望 3 个落点，实际 %d", len(res.Placements))
	}

	center, right, left := res.Placements[0], res.Placements[1], res.Placements[2]
	if want := (Width - center.Width) / 2; math.Abs(center.X-want) > 1e-9 {
		t.Fatalf("居中 x 期望 %g，实际 %g", want, center.X)
	}
	if want := Width - right.Width - 10; math.Abs(right.X-want) > 1e-9 {
		t.Fatalf("右对齐 x 期望 %g，实际 %g", want, right.X)
	}
	if left.X != 10 {
		t.Fatalf("左对齐 x 期望 10，实际 %g", left.X)
	}
}

func TestPlanCursorAdvance(t *testing.T) {
	s := markup.Sections{
		Header: markup.Sequence{}.Append(markup.Center, markup.BoldLarge, "TITLE"),
		Body:   markup.Sequence{}.Append(markup.Center, markup.Normal, ""),
		Footer: markup.Sequence{}.Append(markup.Center, markup.Normal, "."),
	}
	res := planOf(t, s)
	p := res.Placements
	if p[0].Baseline != TopInset {
		t.Fatalf("首行基线应为 %d，实际 %g", TopInset, p[0].Baseline)
	}
	if want := TopInset + 1.2*markup.LargeSize; math.Abs(p[1].Baseline-want) > 1e-9 {
		t.Fatalf("第二行基线期望 %g，实际 %g", want, p[1].Baseline)
	}
	if p[1].Drawn || p[1].Advance != markup.BlankAdvance {
		t.Fatalf("空白行不应绘制且推进 %d，实际 drawn=%v advance=%g", markup.BlankAdvance, p[1].Drawn, p[1].Advance)
	}
	if want := p[1].Baseline + markup.BlankAdvance; math.Abs(p[2].Baseline-want) > 1e-9 {
		t.Fatalf("第三行基线期望 %g，实际 %g", want, p[2].Baseline)
	}
	if p[2].Section != markup.SectionFooter {
		t.Fatalf("第三行应属于 footer，实际 %s", p[2].Section)
	}
}

// TestPlanAndEstimateShareFallbacks 断言估高与排版对畸形行作出相同的回退决策。
func TestPlanAndEstimateShareFallbacks(t *testing.T) {
	tokens := []string{"", "0", "1", "x", "2Zpayload", "?6TOTAL", "ab", "05", "15Item", "24x"}
	var body markup.Sequence
	for _, tok := range tokens {
		body = append(body, markup.Decode(tok))
	}
	body = append(body, markup.Line{Align: markup.Alignment(7), Style: markup.Style(9), Text: "raw"})

	res := planOf(t, markup.Sections{Body: body})
	for i, p := range res.Placements {
		line := body[i]
		if p.Class != markup.Classify(line) {
			t.Fatalf("第 %d 行归类不一致: plan=%v estimate=%v", i, p.Class, markup.Classify(line))
		}
		if p.Drawn == (markup.EstimatedAdvance(line) == markup.BlankAdvance) {
			t.Fatalf("第 %d 行（%q）绘制决策与估高不一致", i, line.Text)
		}
		if p.Line != line.Normalize() {
			t.Fatalf("第 %d 行归一化不一致: %+v", i, p.Line)
		}
	}
}

func TestPlanRequiresTypesetter(t *testing.T) {
	if _, err := Plan(markup.Sections{}, PlanOptions{}); err == nil {
		t.Fatalf("缺少 Typesetter 时应返回错误")
	}
}

func TestPlanAllowsOverflow(t *testing.T) {
	var body markup.Sequence
	for i := 0; i < 40; i++ {
		body = body.Append(markup.Left, markup.BoldLarge, "big")
	}
	res, err := Plan(markup.Sections{Body: body}, PlanOptions{Typesetter: stubTypesetter{}, Height: MinHeight})
	if err != nil {
		t.Fatalf("排版失败: %v", err)
	}
	if !res.Overflow() {
		t.Fatalf("期望内容超出画布: bottom=%g height=%g", res.Bottom, res.Height)
	}
	if len(res.Placements) != 40 {
		t.Fatalf("超出画布的行也应给出落点，实际 %d", len(res.Placements))
	}
}
