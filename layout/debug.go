package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// Debug 是调试 JSON 的顶层结构：估算高度与实际排版并列，便于发现两遍不一致。
type Debug struct {
	Estimate int     `json:"estimate"`
	Canvas   int     `json:"canvas"`
	Bottom   float64 `json:"bottom"`
	Overflow bool    `json:"overflow"`
	Slack    float64 `json:"slack"` // 画布高度减去实际占用，负数即溢出
	*Result
}

// NewDebug 汇总一次排版。estimate 为估高阶段给出的高度。
func NewDebug(res *Result, estimate int) Debug {
	d := Debug{Estimate: estimate, Canvas: CanvasHeight(estimate), Result: res}
	if res != nil {
		d.Bottom = res.Bottom
		d.Overflow = res.Overflow()
		d.Slack = res.Height - res.Bottom
	}
	return d
}

// WriteDebugJSON 将排版结果与估高一起输出为 JSON。
func WriteDebugJSON(res *Result, estimate int, path string) error {
	if res == nil {
		return nil
	}
	data, err := json.MarshalIndent(NewDebug(res, estimate), "", "  ")
	if err != nil {
		return fmt.Errorf("序列化调试信息失败: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
