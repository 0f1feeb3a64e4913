package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// data 为空或路径不存在时保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if val, ok := Lookup(data, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// Lookup 按 a.b[0].c 形式的路径在 data 中取值。
// 支持 JSON 与 YAML 解码得到的 map/slice 结构。
func Lookup(data any, path string) (any, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, false
	}
	current := data
	for _, step := range strings.Split(path, ".") {
		key, indexes, ok := splitStep(step)
		if !ok {
			return nil, false
		}
		if key != "" {
			if current, ok = field(current, key); !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			if current, ok = element(current, idx); !ok {
				return nil, false
			}
		}
	}
	return current, true
}

// Number 取出路径对应的数值，数字字符串也可接受。
func Number(data any, path string) (float64, error) {
	val, ok := Lookup(data, path)
	if !ok {
		return 0, fmt.Errorf("数据中不存在 %s", path)
	}
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%s 的值 %q 不是数字", path, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%s 的值类型 %T 不是数字", path, val)
	}
}

// splitStep 把 "layers[0][1]" 拆成 "layers" 与下标 [0 1]。
func splitStep(step string) (string, []int, bool) {
	key, rest, found := strings.Cut(step, "[")
	if !found {
		return key, nil, key != ""
	}
	var indexes []int
	rest = "[" + rest
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		inner, tail, ok := strings.Cut(rest[1:], "]")
		if !ok {
			return "", nil, false
		}
		idx, err := strconv.Atoi(strings.TrimSpace(inner))
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = tail
	}
	return key, indexes, true
}

func field(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case map[any]any:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}

func element(current any, idx int) (any, bool) {
	c, ok := current.([]any)
	if !ok || idx < 0 || idx >= len(c) {
		return nil, false
	}
	return c[idx], true
}
