package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
)

// 内置字体名称。
const (
	Regular = "regular"
	Bold    = "bold"
)

var builtin = map[string][]byte{
	Regular: gomono.TTF,
	Bold:    gomonobold.TTF,
}

// Load 返回内置等宽字体的字节数据，name 可写为 "embed:bold" 或直接 "bold"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimPrefix(name, "embed:"))
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 不存在", name)
	}
	return data, nil
}
