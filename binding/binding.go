package binding

import (
	"fmt"
	"regexp"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Vars 是模板插值使用的变量树，叶子通常为字符串，子节点为 Vars 或 map[string]any。
type Vars map[string]any

// Set 按点号路径写入变量，中间节点不存在时自动创建。
func (v Vars) Set(path, value string) {
	segments := strings.Split(strings.TrimSpace(path), ".")
	node := v
	for _, seg := range segments[:len(segments)-1] {
		next, ok := node[seg].(Vars)
		if !ok {
			next = Vars{}
			node[seg] = next
		}
		node = next
	}
	node[segments[len(segments)-1]] = value
}

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 若 data 为空或路径不存在，则保留原占位符。
func Interpolate(text string, data any) string {
	out, _ := expand(text, data)
	return out
}

// Unresolved 返回文本中无法解析的占位符路径，按出现顺序去重。
func Unresolved(text string, data any) []string {
	_, missing := expand(text, data)
	return missing
}

func expand(text string, data any) (string, []string) {
	var missing []string
	seen := map[string]bool{}
	out := exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path != "" {
			if val, ok := resolvePath(data, path); ok {
				return fmt.Sprint(val)
			}
		}
		if !seen[path] {
			seen[path] = true
			missing = append(missing, path)
		}
		return match
	})
	return out, missing
}

func resolvePath(data any, path string) (any, bool) {
	if data == nil {
		return nil, false
	}
	current := data
	for _, segment := range strings.Split(path, ".") {
		var ok bool
		if current, ok = descend(current, segment); !ok {
			return nil, false
		}
	}
	switch current.(type) {
	case Vars, map[string]any, map[string]string:
		return nil, false // 路径停在中间节点
	}
	return current, true
}

func descend(current any, key string) (any, bool) {
	switch c := current.(type) {
	case Vars:
		val, ok := c[key]
		return val, ok
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}
