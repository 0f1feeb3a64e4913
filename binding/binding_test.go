package binding

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

const sampleJSON = `{"name": "Nested", "inner": 35, "layers": [{"r": 12.5}, {"r": "7"}], "bad": true}`

func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	var data any
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		t.Fatalf("解析 JSON 失败: %v", err)
	}
	return data
}

func TestInterpolate(t *testing.T) {
	data := decodeJSON(t, sampleJSON)
	if got := Interpolate("Hello ${ name }!", data); got != "Hello Nested!" {
		t.Fatalf("插值结果错误: %q", got)
	}
	if got := Interpolate("${missing} stays", data); got != "${missing} stays" {
		t.Fatalf("不存在的路径应保留占位符: %q", got)
	}
	if got := Interpolate("${name}", nil); got != "${name}" {
		t.Fatalf("data 为空时应原样返回: %q", got)
	}
}

func TestNumber(t *testing.T) {
	data := decodeJSON(t, sampleJSON)
	cases := map[string]float64{
		"inner":       35,
		"layers[0].r": 12.5,
		"layers[1].r": 7,
	}
	for path, want := range cases {
		got, err := Number(data, path)
		if err != nil || got != want {
			t.Fatalf("Number(%q) = %g, %v；期望 %g", path, got, err, want)
		}
	}
	for _, path := range []string{"bad", "layers[2].r", "layers[x]", "name", "", "layers[0"} {
		if _, err := Number(data, path); err == nil {
			t.Fatalf("Number(%q) 应返回错误", path)
		}
	}
}

func TestNumberFromYAML(t *testing.T) {
	var data any
	src := "inner: 35\nlayers:\n  - r: 12\n  - r: 2.5\n"
	if err := yaml.Unmarshal([]byte(src), &data); err != nil {
		t.Fatalf("解析 YAML 失败: %v", err)
	}
	if got, err := Number(data, "layers[0].r"); err != nil || got != 12 {
		t.Fatalf("YAML 整数应可转换: %g %v", got, err)
	}
	if got, err := Number(data, "layers[1].r"); err != nil || got != 2.5 {
		t.Fatalf("YAML 浮点应可读取: %g %v", got, err)
	}
}
