package layout

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/slip/markup"
)

func TestWriteDebugJSON(t *testing.T) {
	s := markup.Sections{Body: markup.Sequence{}.
		Append(markup.Left, markup.Normal, "Tea").
		Append(markup.Center, markup.Normal, "")}
	est := Estimate(s)
	res := planOf(t, s)

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteDebugJSON(res, est, path); err != nil {
		t.Fatalf("写调试 JSON 失败: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取调试 JSON 失败: %v", err)
	}
	var got struct {
		Estimate   int              `json:"estimate"`
		Canvas     int              `json:"canvas"`
		Overflow   bool             `json:"overflow"`
		Slack      float64          `json:"slack"`
		Placements []map[string]any `json:"placements"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("调试 JSON 无法解析: %v", err)
	}
	if got.Estimate != est || got.Canvas != MinHeight {
		t.Fatalf("估高字段错误: %+v", got)
	}
	if got.Overflow || got.Slack <= 0 {
		t.Fatalf("不应溢出: %+v", got)
	}
	if len(got.Placements) != 2 {
		t.Fatalf("期望 2 个落点，实际 %d", len(got.Placements))
	}

	if err := WriteDebugJSON(nil, est, path); err != nil {
		t.Fatalf("空结果应被忽略: %v", err)
	}
}
