package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ByLCY/slip/config"
	"github.com/ByLCY/slip/fonts"
	"github.com/ByLCY/slip/layout"
	"github.com/ByLCY/slip/logger"
	"github.com/ByLCY/slip/pipeline"
	"github.com/ByLCY/slip/printer"
	"github.com/ByLCY/slip/receipt"
	canvasrenderer "github.com/ByLCY/slip/renderer/canvas"
	"github.com/ByLCY/slip/renderer/text"
)

func main() {
	input := flag.String("in", "examples/order.json", "订单文件路径（.json/.yaml）")
	output := flag.String("out", "", "PNG 输出目录，默认取配置 output.dir")
	configPath := flag.String("config", "", "配置文件路径")
	templatePath := flag.String("template", "", "品牌模板文件路径，覆盖配置 slip.template")
	debug := flag.String("debug", "", "排版调试 JSON 输出路径")
	textOut := flag.String("text", "", "ESC/POS 格式文本输出路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if *output != "" {
		cfg.Output.Dir = *output
	}
	if *templatePath != "" {
		cfg.Slip.Template = *templatePath
	}

	zl, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zl.Sync()

	job, err := run(context.Background(), cfg, *input, *debug, *textOut, zl)
	if err != nil {
		log.Fatalf("生成小票失败: %v", err)
	}
	fmt.Printf("已生成小票：%s\n", filepath.Join(cfg.Output.Dir, job+".png"))
}

// run 串联订单读取、生成、估高、光栅化与输出。
func run(ctx context.Context, cfg *config.Config, inputPath, debugPath, textPath string, zl *zap.Logger) (string, error) {
	order, err := receipt.LoadOrder(inputPath)
	if err != nil {
		return "", err
	}

	genOpts := []receipt.Option{receipt.WithLogger(zl.Named("receipt")), receipt.WithVars(cfg.Slip.Vars)}
	if cfg.Slip.Template != "" {
		tpl, err := receipt.LoadTemplate(cfg.Slip.Template)
		if err != nil {
			return "", err
		}
		genOpts = append(genOpts, receipt.WithTemplate(tpl))
	}

	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Fonts: fontOverrides(cfg.Render)})

	sinks := printer.Multi{printer.NewPNGFile(cfg.Output.Dir, zl.Named("png"))}
	if cfg.Storage.Enabled {
		archive, err := printer.NewS3ArchiveFromConfig(ctx, &cfg.Storage, printer.WithS3Logger(zl.Named("archive")))
		if err != nil {
			return "", err
		}
		sinks = append(sinks, archive)
	}

	driver, err := pipeline.New(r,
		pipeline.WithLogger(zl.Named("pipeline")),
		pipeline.WithGenerator(receipt.NewGenerator(genOpts...)),
		pipeline.WithPrinter(sinks),
		pipeline.WithStagingDir(cfg.Pipeline.StagingDir),
		pipeline.WithValidation(cfg.Pipeline.Validate),
	)
	if err != nil {
		return "", err
	}

	res, err := driver.Submit(ctx, order)
	if err != nil {
		return "", err
	}

	if debugPath != "" {
		if err := writeDebug(res.Raster.Layout, res.Height, debugPath); err != nil {
			return "", err
		}
	}
	if textPath != "" {
		if err := writeText(res, textPath); err != nil {
			return "", err
		}
	}
	return res.Job, nil
}

func fontOverrides(cfg config.RenderConfig) map[string]canvasrenderer.Resource {
	out := map[string]canvasrenderer.Resource{}
	if cfg.RegularFont != "" {
		out[fonts.Regular] = canvasrenderer.Resource{Path: cfg.RegularFont}
	}
	if cfg.BoldFont != "" {
		out[fonts.Bold] = canvasrenderer.Resource{Path: cfg.BoldFont}
	}
	return out
}

func writeDebug(result *layout.Result, estimate int, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, estimate, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func writeText(res *pipeline.Result, textPath string) error {
	if err := os.MkdirAll(filepath.Dir(textPath), 0o755); err != nil {
		return fmt.Errorf("创建文本输出目录失败: %w", err)
	}
	if err := os.WriteFile(textPath, []byte(text.Format(res.Sections)), 0o644); err != nil {
		return fmt.Errorf("写入格式文本失败: %w", err)
	}
	return nil
}
