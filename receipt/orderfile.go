package receipt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadOrder reads an order summary from a .json, .yaml or .yml file.
func LoadOrder(path string) (Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Order{}, fmt.Errorf("无法读取订单文件 %s: %w", path, err)
	}
	return DecodeOrder(data, filepath.Ext(path))
}

// DecodeOrder decodes order bytes; format is a file extension such as ".json" or "yaml".
func DecodeOrder(data []byte, format string) (Order, error) {
	var order Order
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "json":
		if err := json.Unmarshal(data, &order); err != nil {
			return Order{}, fmt.Errorf("解析订单 JSON 失败: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &order); err != nil {
			return Order{}, fmt.Errorf("解析订单 YAML 失败: %w", err)
		}
	default:
		return Order{}, fmt.Errorf("不支持的订单格式 %q", format)
	}
	return order, nil
}
