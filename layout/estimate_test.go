package layout

import (
	"testing"

	"github.com/ByLCY/slip/markup"
)

func TestEstimateSumsStyleAdvances(t *testing.T) {
	s := markup.Sections{
		Header: markup.Sequence{}.
			Append(markup.Center, markup.BoldLarge, "TITLE"). // 40
			Append(markup.Center, markup.Normal, "").          // 20
			Append(markup.Left, markup.Normal, "Name: Guest"), // 30
		Body: markup.Sequence{}.
			Append(markup.Left, markup.EmphasisMedium, "Item"). // 35
			Append(markup.Right, markup.Large, "x"),            // 40
		Footer: markup.Sequence{}.
			Append(markup.Center, markup.Normal, "."), // 30
	}
	// 100 + 195 + 100
	if got := Estimate(s); got != 400 {
		t.Fatalf("期望高度 400，实际 %d", got)
	}

	for i := 0; i < 10; i++ {
		s.Body = s.Body.Append(markup.Left, markup.Normal, "row")
	}
	if got := Estimate(s); got != 695 {
		t.Fatalf("期望高度 695，实际 %d", got)
	}
}

func TestEstimateFloorsAtMinimum(t *testing.T) {
	if got := Estimate(markup.Sections{}); got != MinHeight {
		t.Fatalf("空输入应得到最小高度 %d，实际 %d", MinHeight, got)
	}
	one := markup.Sections{Body: markup.Sequence{markup.Decode("1")}}
	if got := Estimate(one); got != MinHeight {
		t.Fatalf("期望最小高度 %d，实际 %d", MinHeight, got)
	}
}

func TestEstimateDeterministic(t *testing.T) {
	s := markup.Sections{Body: markup.Sequence{}}
	for i := 0; i < 30; i++ {
		s.Body = s.Body.Append(markup.Left, markup.Style(i%6), "line")
	}
	first := Estimate(s)
	if second := Estimate(s); first != second {
		t.Fatalf("两次估高不一致: %d != %d", first, second)
	}
}

func TestEstimateFallsBackOnPanic(t *testing.T) {
	orig := advanceOf
	t.Cleanup(func() { advanceOf = orig })
	advanceOf = func(markup.Line) int { panic("broken line") }

	s := markup.Sections{Body: markup.Sequence{}.Append(markup.Left, markup.Normal, "x")}
	if got := Estimate(s); got != FallbackHeight {
		t.Fatalf("期望回退高度 %d，实际 %d", FallbackHeight, got)
	}
}
