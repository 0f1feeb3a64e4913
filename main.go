package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/spirograph/dsl"
	"github.com/ByLCY/spirograph/roulette"
	"github.com/ByLCY/spirograph/scene"
	"github.com/ByLCY/spirograph/spirograph"
	canvassurface "github.com/ByLCY/spirograph/surface/canvas"
)

// config 汇总一次运行所需的全部参数。
type config struct {
	input    string
	output   string
	debug    string
	debugRaw bool
	rosette  string
	samples  int
	data     any
}

func main() {
	input := flag.String("in", "examples/demo.spiro", "DSL 文件路径")
	output := flag.String("out", "output/demo.pdf", "输出路径，按扩展名选择 pdf/svg/png 等格式")
	debug := flag.String("debug", "", "场景调试 JSON 输出路径")
	debugRaw := flag.Bool("debug-raw", false, "在调试 JSON 中保留属性的原始写法")
	dataJSON := flag.String("data", "", "绑定到 DSL 的 JSON 数据")
	dataFile := flag.String("data-file", "", "绑定到 DSL 的 YAML/JSON 数据文件")
	rosette := flag.String("rosette", "", "额外输出固定玫瑰线 SVG 的路径")
	samples := flag.Int("samples", roulette.DefaultSamples, "未声明 samples 时的每圈采样数")
	verbose := flag.Bool("v", false, "输出曲线计算的调试日志")
	flag.Parse()

	if *verbose {
		roulette.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	data, err := loadData(*dataJSON, *dataFile)
	if err != nil {
		log.Fatalf("读取绑定数据失败: %v", err)
	}

	cfg := config{
		input:    *input,
		output:   *output,
		debug:    *debug,
		debugRaw: *debugRaw,
		rosette:  *rosette,
		samples:  *samples,
		data:     data,
	}
	if err := run(cfg); err != nil {
		log.Fatalf("生成图案失败: %v", err)
	}
	fmt.Printf("已生成：%s\n", *output)
	if *rosette != "" {
		fmt.Printf("已生成玫瑰线：%s\n", *rosette)
	}
}

// loadData 合并 -data 与 -data-file，两者同时给出时以 -data 为准。
func loadData(dataJSON, dataFile string) (any, error) {
	var data any
	if dataFile != "" {
		raw, err := os.ReadFile(dataFile)
		if err != nil {
			return nil, fmt.Errorf("无法读取 %s: %w", dataFile, err)
		}
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("解析 %s 失败: %w", dataFile, err)
		}
	}
	if dataJSON != "" {
		if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
			return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}
	return data, nil
}

// run 串联解析、场景构建、绘制与导出。
func run(cfg config) error {
	file, err := os.Open(cfg.input)
	if err != nil {
		return fmt.Errorf("无法打开 DSL 文件 %s: %w", cfg.input, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(cfg.input, file)
	if err != nil {
		return fmt.Errorf("解析 DSL 失败: %w", err)
	}

	result, err := scene.Build(doc, cfg.data, scene.Options{
		DefaultSamples: cfg.samples,
		Debug:          scene.DebugOptions{RawValues: cfg.debugRaw},
	})
	if err != nil {
		return fmt.Errorf("场景构建失败: %w", err)
	}

	if cfg.debug != "" {
		if err := writeDebug(result, cfg.debug); err != nil {
			return err
		}
	}

	surf := canvassurface.New(result.Surface.Width, result.Surface.Height, canvassurface.Options{
		Background: result.Surface.Background,
		Resolution: result.Surface.Resolution,
	})
	surf.SetMeta(canvassurface.Meta{
		Title:    result.Meta.Title,
		Author:   result.Meta.Author,
		Subject:  result.Meta.Subject,
		Creator:  result.Meta.Creator,
		Keywords: result.Meta.Keywords,
	})

	sp, err := spirograph.New(surf, spirograph.WithDefaultSamples(cfg.samples))
	if err != nil {
		return err
	}
	if err := sp.Play(result); err != nil {
		return fmt.Errorf("绘制失败: %w", err)
	}

	if err := ensureDir(cfg.output); err != nil {
		return err
	}
	if err := surf.WriteFile(cfg.output); err != nil {
		return err
	}

	if cfg.rosette != "" {
		if err := ensureDir(cfg.rosette); err != nil {
			return err
		}
		if err := os.WriteFile(cfg.rosette, []byte(spirograph.GenerateRosettePath()), 0o644); err != nil {
			return fmt.Errorf("写入玫瑰线 SVG 失败: %w", err)
		}
	}
	return nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	return nil
}

func writeDebug(result *scene.Result, debugPath string) error {
	if err := ensureDir(debugPath); err != nil {
		return err
	}
	if err := scene.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
